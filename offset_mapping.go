package moneyfield

import "fmt"

// OffsetMapping translates cursor offsets between the raw text a user typed
// and the transformed text shown to them. Offsets are rune offsets; offset i
// means "cursor before character i", and the length of the text is a valid
// offset meaning "cursor at end".
//
// Passing an offset outside [0, len] is a caller bug and panics, the same way
// indexing a slice out of range does.
type OffsetMapping interface {
	OriginalToTransformed(offset int) int
	TransformedToOriginal(offset int) int
}

// BoundedMapping is an OffsetMapping that knows the lengths of both texts.
type BoundedMapping interface {
	OffsetMapping
	OriginalLen() int
	TransformedLen() int
}

// IdentityMapping maps every offset of an n rune text to itself.
func IdentityMapping(n int) BoundedMapping {
	return identityMapping{n: n}
}

type identityMapping struct {
	n int
}

func (m identityMapping) OriginalToTransformed(offset int) int {
	mustBeInRange("original", offset, m.n)
	return offset
}

func (m identityMapping) TransformedToOriginal(offset int) int {
	mustBeInRange("transformed", offset, m.n)
	return offset
}

func (m identityMapping) OriginalLen() int    { return m.n }
func (m identityMapping) TransformedLen() int { return m.n }

// tableMapping is backed by the two lookup tables built during Transform.
// Both tables hold one entry per offset, so their lengths are text length + 1.
type tableMapping struct {
	originalToTransformed []int
	transformedToOriginal []int
}

var _ BoundedMapping = (*tableMapping)(nil)

func (m *tableMapping) OriginalToTransformed(offset int) int {
	mustBeInRange("original", offset, len(m.originalToTransformed)-1)
	return m.originalToTransformed[offset]
}

func (m *tableMapping) TransformedToOriginal(offset int) int {
	mustBeInRange("transformed", offset, len(m.transformedToOriginal)-1)
	return m.transformedToOriginal[offset]
}

func (m *tableMapping) OriginalLen() int    { return len(m.originalToTransformed) - 1 }
func (m *tableMapping) TransformedLen() int { return len(m.transformedToOriginal) - 1 }

func mustBeInRange(space string, offset, n int) {
	if offset < 0 || offset > n {
		panic(fmt.Sprintf("moneyfield: %s offset %d out of range [0, %d]", space, offset, n))
	}
}

// CheckOriginalOffset returns ErrOffsetOutOfRange when offset cannot be passed
// to m.OriginalToTransformed.
func CheckOriginalOffset(m BoundedMapping, offset int) error {
	if offset < 0 || offset > m.OriginalLen() {
		return fmt.Errorf("%w: original offset %d not in [0, %d]", ErrOffsetOutOfRange, offset, m.OriginalLen())
	}
	return nil
}

// CheckTransformedOffset returns ErrOffsetOutOfRange when offset cannot be
// passed to m.TransformedToOriginal.
func CheckTransformedOffset(m BoundedMapping, offset int) error {
	if offset < 0 || offset > m.TransformedLen() {
		return fmt.Errorf("%w: transformed offset %d not in [0, %d]", ErrOffsetOutOfRange, offset, m.TransformedLen())
	}
	return nil
}

// OriginalTable returns a copy of the original→transformed table.
func OriginalTable(m BoundedMapping) []int {
	out := make([]int, m.OriginalLen()+1)
	for i := range out {
		out[i] = m.OriginalToTransformed(i)
	}
	return out
}

// TransformedTable returns a copy of the transformed→original table.
func TransformedTable(m BoundedMapping) []int {
	out := make([]int, m.TransformedLen()+1)
	for i := range out {
		out[i] = m.TransformedToOriginal(i)
	}
	return out
}
