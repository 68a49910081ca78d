package moneyfield

// DecimalFormatSymbols holds the characters a currency uses around its digits
type DecimalFormatSymbols struct {
	GroupingSeparator rune
	DecimalSeparator  rune
	CurrencySymbol    string
}

// DecimalFormat describes how one currency is displayed. It is an immutable
// value; copies are shared freely between fields.
type DecimalFormat struct {
	PositivePrefix string
	PositiveSuffix string
	NegativePrefix string
	NegativeSuffix string
	// GroupingSize is the number of integer digits between grouping separators.
	GroupingSize int
	Symbols      DecimalFormatSymbols
}

// Range is a half-open [Start, End) interval of rune offsets.
type Range struct {
	Start int
	End   int
}

// EmptyRange returns an empty range anchored at offset.
func EmptyRange(offset int) Range {
	return Range{Start: offset, End: offset}
}

// Len returns the number of runes covered by the range.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no runes.
func (r Range) IsEmpty() bool {
	return r.Len() == 0
}

// Contains reports whether offset falls inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Ranges locates the styled sub-parts of a formatted amount. All offsets are
// rune offsets into the formatted text.
type Ranges struct {
	IntegerPart  Range
	FractionPart Range
	// DecimalSeparatorIndex is -1 when the raw text has no decimal point.
	DecimalSeparatorIndex int
	CurrencySymbol        Range
}

// NoRanges is the value reported for text that was passed through unformatted.
var NoRanges = Ranges{DecimalSeparatorIndex: -1}

// HasDecimalSeparator reports whether a decimal separator was emitted.
func (r Ranges) HasDecimalSeparator() bool {
	return r.DecimalSeparatorIndex >= 0
}

// DecimalSeparator returns the separator position as a one rune range.
func (r Ranges) DecimalSeparator() Range {
	if !r.HasDecimalSeparator() {
		return Range{}
	}
	return Range{Start: r.DecimalSeparatorIndex, End: r.DecimalSeparatorIndex + 1}
}

// TransformedText is the output of a single Transform call.
type TransformedText struct {
	// Formatted is the structural text before styling.
	Formatted string
	// Styled is what the caller's StyleFunc produced; its text has the same
	// rune length as Formatted.
	Styled  StyledText
	Mapping OffsetMapping
	Ranges  Ranges
	// Identity is true when the raw text was not a number and passed through.
	Identity bool
}

// Text returns the styled display text.
func (t TransformedText) Text() string {
	return t.Styled.Text
}
