package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseProject,
				Kind:   KindTypeMismatch,
				Want:   "uint32",
				Got:    "string",
				Detail: "erased value holds another type",
			},
			contains: []string{"[project]", "type_mismatch", "want uint32", "got string", "erased value"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseBuffer,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[buffer]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAlloc,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[alloc]", "allocation", "memory full", "caused by", "underlying error"},
		},
		{
			name:     "sentinel without phase",
			err:      ErrCapacityOverflow,
			contains: []string{"capacity_overflow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseAlloc,
		Kind:  KindAllocation,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseGrow,
		Kind:  KindCapacityOverflow,
	}

	if !err.Is(&Error{Phase: PhaseGrow, Kind: KindCapacityOverflow}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseAlloc, Kind: KindCapacityOverflow}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseGrow, Kind: KindAllocation}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrCapacityOverflow) {
		t.Error("errors.Is should match the phase-less sentinel")
	}
	if errors.Is(err, ErrAllocation) {
		t.Error("errors.Is should not match a sentinel of another kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseProject, KindTypeMismatch).
		Want("alloc.Global").
		Got("*linear.Allocator").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "global", "linear").
		Build()

	if err.Phase != PhaseProject {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseProject)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if err.Want != "alloc.Global" {
		t.Errorf("Want = %v, want 'alloc.Global'", err.Want)
	}
	if err.Got != "*linear.Allocator" {
		t.Errorf("Got = %v, want '*linear.Allocator'", err.Got)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected global, got linear" {
		t.Errorf("Detail = %v, want 'expected global, got linear'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseProject, "int", "string")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if err.Want != "int" || err.Got != "string" {
			t.Errorf("Want=%v Got=%v", err.Want, err.Got)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseAlloc, 1024, 8)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})

	t.Run("CapacityOverflow", func(t *testing.T) {
		err := CapacityOverflow(PhaseGrow, 1<<40, 1<<30)
		if err.Kind != KindCapacityOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindCapacityOverflow)
		}
		if err.Value != 1<<40 {
			t.Errorf("Value = %v, want %d", err.Value, 1<<40)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseBuffer, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("InvalidLayout", func(t *testing.T) {
		err := InvalidLayout(6, 4, "size is not a multiple of align")
		if err.Phase != PhaseLayout || err.Kind != KindInvalidLayout {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseAlloc, "mmap")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseRegistry, "handle", 7)
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Error(), "handle 7 not found") {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("mmap failed")
		err := Wrap(PhaseAlloc, KindAllocation, cause, "map pages")
		if !errors.Is(err, cause) {
			t.Error("Wrap should keep the cause in the chain")
		}
		if !errors.Is(err, ErrAllocation) {
			t.Error("Wrap should match the allocation sentinel")
		}
	})
}
