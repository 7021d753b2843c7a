// Package growth computes capacity growth for homogeneous buffers.
//
// Growth is geometric so that a sequence of N single-element pushes performs
// O(log N) reallocations. All arithmetic saturates and reports
// errors.KindCapacityOverflow instead of wrapping.
package growth

import (
	"github.com/wippyai/opaque/errors"
	"github.com/wippyai/opaque/layout"
)

// Policy configures capacity growth.
type Policy struct {
	// Factor multiplies the old capacity on growth. Values below 2 mean 2.
	Factor int

	// MinNonZero is the smallest capacity allocated once a buffer grows from
	// empty. 0 selects a size-dependent default: 8 for 1-byte elements, 4 for
	// elements up to 1 KiB and 1 above that.
	MinNonZero int
}

// Default returns the doubling policy.
func Default() Policy {
	return Policy{Factor: 2}
}

// Next returns the capacity to grow to from old so that at least required
// elements of l fit.
func (p Policy) Next(old, required int, l layout.Layout) (int, error) {
	if required < 0 {
		return 0, errors.CapacityOverflow(errors.PhaseGrow, required, l.Size)
	}
	limit := l.MaxElems()
	if required > limit {
		return 0, errors.CapacityOverflow(errors.PhaseGrow, required, l.Size)
	}
	if required <= old {
		return old, nil
	}

	factor := p.Factor
	if factor < 2 {
		factor = 2
	}

	next := limit
	if old <= limit/factor {
		next = old * factor
	}
	if next < required {
		next = required
	}
	if m := p.minNonZero(l.Size); next < m {
		next = m
	}
	if next > limit {
		next = limit
	}
	return next, nil
}

// Exact returns required if it fits, for reserve-exact callers.
func (p Policy) Exact(old, required int, l layout.Layout) (int, error) {
	if required < 0 || required > l.MaxElems() {
		return 0, errors.CapacityOverflow(errors.PhaseGrow, required, l.Size)
	}
	if required <= old {
		return old, nil
	}
	return required, nil
}

func (p Policy) minNonZero(elemSize uintptr) int {
	if p.MinNonZero > 0 {
		return p.MinNonZero
	}
	switch {
	case elemSize == 1:
		return 8
	case elemSize <= 1024:
		return 4
	default:
		return 1
	}
}

// Next applies the default policy.
func Next(old, required int, l layout.Layout) (int, error) {
	return Default().Next(old, required, l)
}
