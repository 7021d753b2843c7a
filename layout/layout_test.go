package layout

import (
	"errors"
	"math"
	"reflect"
	"testing"

	opaqueerrors "github.com/wippyai/opaque/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		size    uintptr
		align   uintptr
		wantErr bool
	}{
		{"i32", 4, 4, false},
		{"zero size", 0, 8, false},
		{"byte", 1, 1, false},
		{"padded", 12, 4, false},
		{"align zero", 4, 0, true},
		{"align three", 6, 3, true},
		{"size not multiple", 6, 4, true},
		{"too large", MaxBytes, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.size, tt.align)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%d, %d) = %+v, want error", tt.size, tt.align, l)
				}
				if !errors.Is(err, opaqueerrors.ErrInvalidLayout) {
					t.Errorf("error %v should be an invalid layout error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d, %d): %v", tt.size, tt.align, err)
			}
			if l.Size != tt.size || l.Align != tt.align {
				t.Errorf("got %+v", l)
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew should panic on an invalid layout")
		}
	}()
	MustNew(3, 2)
}

func TestOf(t *testing.T) {
	type rec struct {
		a uint8
		b uint64
	}

	tests := []struct {
		name string
		got  Layout
		want Layout
	}{
		{"int32", Of[int32](), Layout{4, 4}},
		{"uint8", Of[uint8](), Layout{1, 1}},
		{"empty", Of[struct{}](), Layout{0, 1}},
		{"rec", Of[rec](), Layout{16, 8}},
		{"array", Of[[3]uint16](), Layout{6, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
			if !tt.got.Valid() {
				t.Errorf("%+v should be valid", tt.got)
			}
		})
	}
}

func TestArray(t *testing.T) {
	l := Layout{Size: 4, Align: 4}

	arr, err := l.Array(10)
	if err != nil {
		t.Fatalf("Array(10): %v", err)
	}
	if arr.Size != 40 || arr.Align != 4 {
		t.Errorf("got %+v, want {40 4}", arr)
	}

	if _, err := l.Array(-1); !errors.Is(err, opaqueerrors.ErrCapacityOverflow) {
		t.Errorf("Array(-1) error = %v, want capacity overflow", err)
	}
	if _, err := l.Array(math.MaxInt); !errors.Is(err, opaqueerrors.ErrCapacityOverflow) {
		t.Errorf("Array(MaxInt) error = %v, want capacity overflow", err)
	}
	if _, err := l.Array(l.MaxElems()); err != nil {
		t.Errorf("Array(MaxElems()) should fit: %v", err)
	}

	zst := Layout{Size: 0, Align: 1}
	if zst.MaxElems() != math.MaxInt {
		t.Errorf("zero-size MaxElems = %d, want MaxInt", zst.MaxElems())
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		offset, align, want uintptr
	}{
		{5, 0, 5},
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 4, 12},
		{13, 16, 16},
	}
	for _, tt := range tests {
		if got := AlignUp(tt.offset, tt.align); got != tt.want {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", tt.offset, tt.align, got, tt.want)
		}
	}
}

func TestOverflowHelpers(t *testing.T) {
	top := ^uintptr(0)
	if _, ok := MulOverflow(top, 2); ok {
		t.Error("MulOverflow(top, 2) should overflow")
	}
	if v, ok := MulOverflow(1<<20, 1<<10); !ok || v != 1<<30 {
		t.Errorf("MulOverflow(1<<20, 1<<10) = %d, %v", v, ok)
	}
	if _, ok := AddOverflow(top, 1); ok {
		t.Error("AddOverflow(top, 1) should overflow")
	}
	if v, ok := AddOverflow(3, 4); !ok || v != 7 {
		t.Errorf("AddOverflow(3, 4) = %d, %v", v, ok)
	}
}

func TestHasPointers(t *testing.T) {
	type flat struct {
		a int32
		b [4]float64
	}
	type nested struct {
		f flat
		p *int
	}

	tests := []struct {
		name string
		typ  reflect.Type
		want bool
	}{
		{"int", reflect.TypeFor[int](), false},
		{"flat", reflect.TypeFor[flat](), false},
		{"empty array of pointers", reflect.TypeFor[[0]*int](), false},
		{"string", reflect.TypeFor[string](), true},
		{"slice", reflect.TypeFor[[]byte](), true},
		{"nested", reflect.TypeFor[nested](), true},
		{"map", reflect.TypeFor[map[int]int](), true},
		{"func", reflect.TypeFor[func()](), true},
		{"interface", reflect.TypeFor[any](), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPointers(tt.typ); got != tt.want {
				t.Errorf("HasPointers(%v) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestDangling(t *testing.T) {
	if Dangling() == nil {
		t.Error("Dangling should not be nil")
	}
	if Dangling() != Dangling() {
		t.Error("Dangling should be stable")
	}
}
