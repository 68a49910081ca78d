package moneyfield

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// InputFilter decides which typed runes a field keeps.
type InputFilter func(r rune) bool

// DigitsOnly keeps ASCII digits.
func DigitsOnly(r rune) bool {
	return r >= '0' && r <= '9'
}

// DecimalInput keeps ASCII digits, the decimal point and signs.
func DecimalInput(r rune) bool {
	return DigitsOnly(r) || r == '.' || r == '-' || r == '+'
}

// Field holds the state of one currency text input: the raw value, the
// selection in raw coordinates and the currency it is displayed in.
//
// The transformation for the current currency is memoized and rebuilt only
// when the currency changes. A Field is owned by a single UI loop and is not
// safe for concurrent use.
type Field struct {
	resolver Resolver
	style    StyleFunc
	filter   InputFilter
	logger   *zap.Logger

	currency       string
	transformation *Transformation

	value     string
	selection Selection
}

// FieldOption configures a Field
type FieldOption func(*Field)

func WithFieldStyle(style StyleFunc) FieldOption {
	return func(f *Field) {
		f.style = style
	}
}

func WithFieldFilter(filter InputFilter) FieldOption {
	return func(f *Field) {
		f.filter = filter
	}
}

func WithFieldLogger(logger *zap.Logger) FieldOption {
	return func(f *Field) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewField creates a field showing currencyCode. Resolution errors (unknown
// currency, invalid configuration) are returned here rather than while typing.
func NewField(resolver Resolver, currencyCode string, opts ...FieldOption) (*Field, error) {
	f := &Field{
		resolver: resolver,
		style:    PlainStyle,
		filter:   DecimalInput,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if err := f.SetCurrency(currencyCode); err != nil {
		return nil, err
	}
	return f, nil
}

// Currency returns the current currency code.
func (f *Field) Currency() string {
	return f.currency
}

// Transformation returns the memoized transformation.
func (f *Field) Transformation() *Transformation {
	return f.transformation
}

// SetCurrency switches the displayed currency. The memoized transformation
// is reused when the code did not change.
func (f *Field) SetCurrency(currencyCode string) error {
	code := normalizeCurrencyCode(currencyCode)
	if f.transformation != nil && code == f.currency {
		return nil
	}

	format, err := f.resolver.Resolve(code)
	if err != nil {
		return err
	}
	transformation, err := NewTransformation(format, f.style)
	if err != nil {
		return err
	}

	f.logger.Debug("field currency changed",
		zap.String("op", "set_currency"),
		zap.String("from", f.currency),
		zap.String("to", code),
	)
	f.currency = code
	f.transformation = transformation
	return nil
}

// Value returns the raw text.
func (f *Field) Value() string {
	return f.value
}

// Selection returns the selection in raw coordinates.
func (f *Field) Selection() Selection {
	return f.selection
}

// SetValue replaces the raw text as a text input change callback would. Runes
// rejected by the input filter are dropped and the selection is shifted so
// it stays on the same kept characters.
func (f *Field) SetValue(raw string, sel Selection) {
	filtered, anchor, head := f.filterValue(raw, sel.Anchor, sel.Head)
	f.value = filtered
	f.selection = NewSelection(anchor, head).Clamp(utf8.RuneCountInString(filtered))
}

func (f *Field) filterValue(raw string, anchor, head int) (string, int, int) {
	if f.filter == nil {
		return raw, anchor, head
	}

	var b strings.Builder
	newAnchor, newHead := anchor, head
	index := 0
	for _, r := range raw {
		if !f.filter(r) {
			if index < anchor {
				newAnchor--
			}
			if index < head {
				newHead--
			}
		} else {
			b.WriteRune(r)
		}
		index++
	}
	return b.String(), newAnchor, newHead
}

// Render transforms the current value and maps the selection to display
// coordinates.
func (f *Field) Render() (TransformedText, Selection, error) {
	text, err := f.transformation.Transform(f.value)
	if err != nil {
		return TransformedText{}, Selection{}, err
	}
	if text.Identity {
		f.logger.Debug("value shown unformatted",
			zap.String("op", "render"),
			zap.String("value", f.value),
		)
	}
	return text, MapSelectionToTransformed(text.Mapping, f.selection), nil
}

// ReplaceDisplay applies an edit expressed in display coordinates: the
// display range [start, end) is replaced by text. The range is mapped back to
// raw coordinates first, and the cursor ends after the inserted runes.
func (f *Field) ReplaceDisplay(start, end int, text string) error {
	current, err := f.transformation.Transform(f.value)
	if err != nil {
		return err
	}

	bounded, ok := current.Mapping.(BoundedMapping)
	if ok {
		if err := CheckTransformedOffset(bounded, start); err != nil {
			return err
		}
		if err := CheckTransformedOffset(bounded, end); err != nil {
			return err
		}
	}

	raw := MapSelectionToOriginal(current.Mapping, NewSelection(start, end)).Range()
	f.replaceRaw(raw.Start, raw.End, text)
	return nil
}

// Backspace deletes the selection, or the raw character before the cursor.
func (f *Field) Backspace() {
	if !f.selection.IsEmpty() {
		r := f.selection.Range()
		f.replaceRaw(r.Start, r.End, "")
		return
	}
	if f.selection.Head == 0 {
		return
	}
	f.replaceRaw(f.selection.Head-1, f.selection.Head, "")
}

// Delete removes the selection, or the raw character after the cursor.
func (f *Field) Delete() {
	if !f.selection.IsEmpty() {
		r := f.selection.Range()
		f.replaceRaw(r.Start, r.End, "")
		return
	}
	if f.selection.Head >= utf8.RuneCountInString(f.value) {
		return
	}
	f.replaceRaw(f.selection.Head, f.selection.Head+1, "")
}

// Insert types text at the selection.
func (f *Field) Insert(text string) {
	r := f.selection.Range()
	f.replaceRaw(r.Start, r.End, text)
}

func (f *Field) replaceRaw(start, end int, text string) {
	runes := []rune(f.value)
	start = clampOffset(start, len(runes))
	end = clampOffset(end, len(runes))
	if end < start {
		start, end = end, start
	}

	inserted := []rune(text)
	next := make([]rune, 0, len(runes)-(end-start)+len(inserted))
	next = append(next, runes[:start]...)
	next = append(next, inserted...)
	next = append(next, runes[end:]...)

	cursor := start + len(inserted)
	f.SetValue(string(next), NewCursorSelection(cursor))
}

// MoveCursor moves the display cursor by delta runes and snaps it to the
// nearest position the raw text can represent. It returns the new display
// offset.
func (f *Field) MoveCursor(delta int) (int, error) {
	current, err := f.transformation.Transform(f.value)
	if err != nil {
		return 0, err
	}

	display := current.Mapping.OriginalToTransformed(f.selection.Head)
	if delta == 0 {
		return display, nil
	}
	length := utf8.RuneCountInString(current.Formatted)
	original := f.selection.Head

	// Step until the raw offset changes, so separators and affixes are skipped.
	for display+delta >= 0 && display+delta <= length {
		display += delta
		original = current.Mapping.TransformedToOriginal(display)
		if original != f.selection.Head {
			break
		}
	}

	f.selection = NewCursorSelection(original)
	return current.Mapping.OriginalToTransformed(original), nil
}

// SetDisplayCursor places the cursor at a display offset, e.g. from a click.
func (f *Field) SetDisplayCursor(offset int) error {
	current, err := f.transformation.Transform(f.value)
	if err != nil {
		return err
	}
	length := utf8.RuneCountInString(current.Formatted)
	offset = clampOffset(offset, length)
	f.selection = NewCursorSelection(current.Mapping.TransformedToOriginal(offset))
	return nil
}
