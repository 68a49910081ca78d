package moneyfield

// Selection is a text selection in one coordinate space. Anchor is where the
// selection started; Head is where typing happens. Anchor == Head is a plain
// cursor. Selection is an immutable value type.
type Selection struct {
	Anchor int
	Head   int
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head int) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a collapsed selection at offset.
func NewCursorSelection(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty reports whether the selection is just a cursor.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() int {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection.
func (s Selection) End() int {
	if s.Anchor >= s.Head {
		return s.Anchor
	}
	return s.Head
}

// Range returns the selection as a range (always Start <= End).
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// Clamp limits both ends to [0, n].
func (s Selection) Clamp(n int) Selection {
	return Selection{Anchor: clampOffset(s.Anchor, n), Head: clampOffset(s.Head, n)}
}

// MapSelectionToTransformed converts a raw-text selection to display coordinates.
func MapSelectionToTransformed(m OffsetMapping, sel Selection) Selection {
	return Selection{
		Anchor: m.OriginalToTransformed(sel.Anchor),
		Head:   m.OriginalToTransformed(sel.Head),
	}
}

// MapSelectionToOriginal converts a display selection back to raw coordinates.
func MapSelectionToOriginal(m OffsetMapping, sel Selection) Selection {
	return Selection{
		Anchor: m.TransformedToOriginal(sel.Anchor),
		Head:   m.TransformedToOriginal(sel.Head),
	}
}

func clampOffset(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}
