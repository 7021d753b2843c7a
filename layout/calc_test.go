package layout

import (
	"testing"

	"go.bytecodealliance.org/wit"
)

func TestCalculatePrimitives(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		typ   wit.Type
		name  string
		size  uintptr
		align uintptr
	}{
		{wit.Bool{}, "bool", 1, 1},
		{wit.U8{}, "u8", 1, 1},
		{wit.S8{}, "s8", 1, 1},
		{wit.U16{}, "u16", 2, 2},
		{wit.S16{}, "s16", 2, 2},
		{wit.U32{}, "u32", 4, 4},
		{wit.S32{}, "s32", 4, 4},
		{wit.U64{}, "u64", 8, 8},
		{wit.S64{}, "s64", 8, 8},
		{wit.F32{}, "f32", 4, 4},
		{wit.F64{}, "f64", 8, 8},
		{wit.Char{}, "char", 4, 4},
		{wit.String{}, "string", 8, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := c.Calculate(tc.typ)
			if l.Size != tc.size {
				t.Errorf("size: got %d, want %d", l.Size, tc.size)
			}
			if l.Align != tc.align {
				t.Errorf("align: got %d, want %d", l.Align, tc.align)
			}
		})
	}
}

func TestCalculateDefined(t *testing.T) {
	inner := &wit.TypeDef{Kind: &wit.Record{
		Fields: []wit.Field{
			{Name: "a", Type: wit.U32{}},
			{Name: "b", Type: wit.U64{}},
		},
	}}

	tests := []struct {
		name  string
		kind  wit.TypeDefKind
		size  uintptr
		align uintptr
	}{
		{"empty_record", &wit.Record{Fields: []wit.Field{}}, 0, 1},
		{"record_u32", &wit.Record{Fields: []wit.Field{{Name: "x", Type: wit.U32{}}}}, 4, 4},
		{"record_mixed", &wit.Record{Fields: []wit.Field{
			{Name: "a", Type: wit.U8{}},
			{Name: "b", Type: wit.U32{}},
			{Name: "c", Type: wit.U8{}},
		}}, 12, 4},
		{"record_nested", &wit.Record{Fields: []wit.Field{
			{Name: "inner", Type: inner},
			{Name: "flag", Type: wit.Bool{}},
		}}, 24, 8},
		{"list", &wit.List{Type: wit.U32{}}, 8, 4},
		{"tuple_empty", &wit.Tuple{Types: []wit.Type{}}, 0, 1},
		{"tuple_mixed", &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.U64{}, wit.U8{}}}, 24, 8},
		{"option_u8", &wit.Option{Type: wit.U8{}}, 2, 1},
		{"option_u32", &wit.Option{Type: wit.U32{}}, 8, 4},
		{"option_u64", &wit.Option{Type: wit.U64{}}, 16, 8},
		{"result_u32_string", &wit.Result{OK: wit.U32{}, Err: wit.String{}}, 12, 4},
		{"result_unit_unit", &wit.Result{}, 1, 1},
		{"variant_empty", &wit.Variant{Cases: []wit.Case{}}, 0, 1},
		{"variant_unit", &wit.Variant{Cases: []wit.Case{{Name: "a"}, {Name: "b"}}}, 1, 1},
		{"variant_payload", &wit.Variant{Cases: []wit.Case{{Name: "none"}, {Name: "some", Type: wit.U32{}}}}, 8, 4},
		{"alias", wit.U32{}, 4, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCalculator()
			l := c.Calculate(&wit.TypeDef{Kind: tc.kind})
			if l.Size != tc.size {
				t.Errorf("size: got %d, want %d", l.Size, tc.size)
			}
			if l.Align != tc.align {
				t.Errorf("align: got %d, want %d", l.Align, tc.align)
			}
			if !l.Valid() {
				t.Errorf("layout %+v violates invariants", l)
			}
		})
	}
}

func TestCalculateEnum(t *testing.T) {
	tests := []struct {
		name     string
		numCases int
		want     uintptr
	}{
		{"1_case", 1, 1},
		{"256_cases", 256, 1},
		{"257_cases", 257, 2},
		{"65536_cases", 65536, 2},
		{"65537_cases", 65537, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cases := make([]wit.EnumCase, tc.numCases)
			for i := range cases {
				cases[i] = wit.EnumCase{Name: "case"}
			}
			l := NewCalculator().Calculate(&wit.TypeDef{Kind: &wit.Enum{Cases: cases}})
			if l.Size != tc.want || l.Align != tc.want {
				t.Errorf("got %+v, want size=align=%d", l, tc.want)
			}
		})
	}
}

func TestCalculateFlags(t *testing.T) {
	tests := []struct {
		name      string
		numFlags  int
		wantSize  uintptr
		wantAlign uintptr
	}{
		{"0_flags", 0, 0, 1},
		{"8_flags", 8, 1, 1},
		{"9_flags", 9, 2, 2},
		{"17_flags", 17, 4, 4},
		{"33_flags", 33, 8, 8},
		{"65_flags", 65, 12, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fl := make([]wit.Flag, tc.numFlags)
			for i := range fl {
				fl[i] = wit.Flag{Name: "flag"}
			}
			l := NewCalculator().Calculate(&wit.TypeDef{Kind: &wit.Flags{Flags: fl}})
			if l.Size != tc.wantSize {
				t.Errorf("size: got %d, want %d", l.Size, tc.wantSize)
			}
			if l.Align != tc.wantAlign {
				t.Errorf("align: got %d, want %d", l.Align, tc.wantAlign)
			}
		})
	}
}

func TestCaching(t *testing.T) {
	c := NewCalculator()
	typedef := &wit.TypeDef{Kind: &wit.Record{
		Fields: []wit.Field{{Name: "x", Type: wit.U32{}}},
	}}

	first := c.Calculate(typedef)
	if !c.cache.Contains(typedef) {
		t.Fatal("typedef should be cached after first calculation")
	}
	if second := c.Calculate(typedef); second != first {
		t.Errorf("cached layout %+v differs from %+v", second, first)
	}
}

func TestCacheBounded(t *testing.T) {
	c, err := NewCalculatorSize(2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		c.Calculate(&wit.TypeDef{Kind: &wit.Record{
			Fields: []wit.Field{{Name: "x", Type: wit.U8{}}},
		}})
	}
	if got := c.Cached(); got != 2 {
		t.Errorf("cached: got %d, want 2", got)
	}

	if _, err := NewCalculatorSize(0); err == nil {
		t.Error("size 0 should be rejected")
	}
}

func TestCalculateHandles(t *testing.T) {
	res := &wit.TypeDef{Name: ptr("conn"), Kind: &wit.Resource{}}
	own := &wit.TypeDef{Kind: &wit.Own{Type: res}}
	borrow := &wit.TypeDef{Kind: &wit.Borrow{Type: res}}

	tests := []struct {
		name  string
		typ   *wit.TypeDef
		size  uintptr
		align uintptr
	}{
		{"own", own, 4, 4},
		{"borrow", borrow, 4, 4},
		{"record_own_borrow", &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "a", Type: own},
			{Name: "b", Type: borrow},
		}}}, 8, 4},
		{"record_u8_own", &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "tag", Type: wit.U8{}},
			{Name: "h", Type: own},
		}}}, 8, 4},
		{"option_own", &wit.TypeDef{Kind: &wit.Option{Type: own}}, 8, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewCalculator().Calculate(tc.typ)
			if l.Size != tc.size || l.Align != tc.align {
				t.Errorf("got %+v, want size=%d align=%d", l, tc.size, tc.align)
			}
			if l.Size != tc.typ.Size() || l.Align != tc.typ.Align() {
				t.Errorf("got %+v, wit reports size=%d align=%d", l, tc.typ.Size(), tc.typ.Align())
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
