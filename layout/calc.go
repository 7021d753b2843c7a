package layout

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.bytecodealliance.org/wit"
)

// DefaultCacheSize is the number of type definitions NewCalculator keeps.
const DefaultCacheSize = 1024

// Calculator computes Canonical ABI layouts for WIT types, caching the most
// recently used type definitions.
type Calculator struct {
	cache *lru.Cache[*wit.TypeDef, Layout]
}

// NewCalculator returns a calculator with a DefaultCacheSize cache.
func NewCalculator() *Calculator {
	c, _ := NewCalculatorSize(DefaultCacheSize)
	return c
}

// NewCalculatorSize returns a calculator caching up to size definitions.
func NewCalculatorSize(size int) (*Calculator, error) {
	cache, err := lru.New[*wit.TypeDef, Layout](size)
	if err != nil {
		return nil, err
	}
	return &Calculator{cache: cache}, nil
}

// Cached returns the number of cached type definitions.
func (c *Calculator) Cached() int {
	return c.cache.Len()
}

// Calculate returns the in-memory layout of t. Lists and strings occupy a
// (ptr, len) pair of u32; their contents live elsewhere.
func (c *Calculator) Calculate(t wit.Type) Layout {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Layout{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Layout{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Layout{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Layout{Size: 8, Align: 8}
	case wit.String:
		return Layout{Size: 8, Align: 4}
	case *wit.TypeDef:
		return c.typeDef(typ)
	default:
		return Layout{Size: 0, Align: 1}
	}
}

func (c *Calculator) typeDef(t *wit.TypeDef) Layout {
	if cached, ok := c.cache.Get(t); ok {
		return cached
	}

	var l Layout
	switch kind := t.Kind.(type) {
	case *wit.Record:
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			types[i] = f.Type
		}
		l = c.sequence(types)
	case *wit.Tuple:
		l = c.sequence(kind.Types)
	case *wit.Variant:
		var payloads []wit.Type
		for _, cs := range kind.Cases {
			if cs.Type != nil {
				payloads = append(payloads, cs.Type)
			}
		}
		if len(kind.Cases) == 0 {
			l = Layout{Size: 0, Align: 1}
		} else {
			l = c.tagged(discriminantSize(len(kind.Cases)), payloads)
		}
	case *wit.Enum:
		size := discriminantSize(len(kind.Cases))
		l = Layout{Size: uintptr(size), Align: uintptr(size)}
	case *wit.List:
		l = Layout{Size: 8, Align: 4}
	case *wit.Option:
		l = c.tagged(1, []wit.Type{kind.Type})
	case *wit.Result:
		var payloads []wit.Type
		if kind.OK != nil {
			payloads = append(payloads, kind.OK)
		}
		if kind.Err != nil {
			payloads = append(payloads, kind.Err)
		}
		l = c.tagged(1, payloads)
	case *wit.Flags:
		l = flags(len(kind.Flags))
	case *wit.Own, *wit.Borrow, *wit.Resource:
		// Handles are i32 table indices.
		l = Layout{Size: 4, Align: 4}
	case wit.Type:
		l = c.Calculate(kind)
	default:
		l = Layout{Size: 0, Align: 1}
	}

	c.cache.Add(t, l)
	return l
}

// sequence lays out types one after another, as records and tuples do.
func (c *Calculator) sequence(types []wit.Type) Layout {
	if len(types) == 0 {
		return Layout{Size: 0, Align: 1}
	}

	maxAlign := uint32(1)
	offset := uint32(0)
	for _, typ := range types {
		fl := c.Calculate(typ)
		offset = alignTo32(offset, uint32(fl.Align))
		if uint32(fl.Align) > maxAlign {
			maxAlign = uint32(fl.Align)
		}
		offset += uint32(fl.Size)
	}

	return Layout{Size: uintptr(alignTo32(offset, maxAlign)), Align: uintptr(maxAlign)}
}

// tagged lays out a discriminant followed by the largest payload.
func (c *Calculator) tagged(discSize uint32, payloads []wit.Type) Layout {
	maxAlign := discSize
	maxSize := uint32(0)
	for _, p := range payloads {
		pl := c.Calculate(p)
		if uint32(pl.Align) > maxAlign {
			maxAlign = uint32(pl.Align)
		}
		if uint32(pl.Size) > maxSize {
			maxSize = uint32(pl.Size)
		}
	}

	payloadOffset := alignTo32(discSize, maxAlign)
	return Layout{
		Size:  uintptr(alignTo32(payloadOffset+maxSize, maxAlign)),
		Align: uintptr(maxAlign),
	}
}

func flags(n int) Layout {
	switch {
	case n == 0:
		return Layout{Size: 0, Align: 1}
	case n <= 8:
		return Layout{Size: 1, Align: 1}
	case n <= 16:
		return Layout{Size: 2, Align: 2}
	case n <= 32:
		return Layout{Size: 4, Align: 4}
	case n <= 64:
		return Layout{Size: 8, Align: 8}
	}
	// >64 flags: multiple u32s
	return Layout{Size: uintptr((n + 31) / 32 * 4), Align: 4}
}
