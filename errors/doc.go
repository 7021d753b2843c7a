// Package errors provides structured error types for the opaque containers.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the requested and actual type names for projection
// failures, a human readable detail and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseProject, errors.KindTypeMismatch).
//		Want("uint32").
//		Got("string").
//		Detail("erased handle holds a different allocator").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.AllocationFailed(errors.PhaseAlloc, 4096, 8)
//	err := errors.CapacityOverflow(errors.PhaseGrow, required, elemSize)
//
// Recoverable failures (allocation, capacity overflow, type mismatch on the
// Try APIs) are returned. Contract violations (out-of-bounds indices, invalid
// layouts) are raised with panic(*Error) because they indicate caller bugs.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
