package moneyfield

import (
	"strings"
	"unicode/utf8"
)

// Transform formats raw as a currency amount described by format, styles it
// with style and returns the display text together with its offset mapping.
//
// Text that is not a finite decimal number (including partially typed values
// such as "-" or ".") is returned unchanged with an identity mapping; that is
// not an error. The returned error is non-nil only for configuration faults in
// format and for a style that breaks the StyleFunc length contract.
func Transform(raw string, format DecimalFormat, style StyleFunc) (TransformedText, error) {
	if err := format.Validate(); err != nil {
		return TransformedText{}, err
	}

	number, ok := parseRawNumber(raw)
	if !ok {
		return identityText(raw), nil
	}

	// raw is ASCII from here on.
	rawLen := len(raw)
	negative := number.sign < 0
	prefix := []rune(format.Prefix(negative))
	suffix := []rune(format.Suffix(negative))
	groupingSize := format.GroupingSize

	integerStart := number.signLen
	integerEnd := rawLen
	decimalLen := 0
	fractionStart := rawLen
	if number.decimalIndex >= 0 {
		integerEnd = number.decimalIndex
		decimalLen = 1
		fractionStart = number.decimalIndex + 1
	}
	integerLen := integerEnd - integerStart
	fractionLen := rawLen - fractionStart

	transformedLen := len(prefix) +
		integerLen +
		groupingSeparatorCount(integerLen, groupingSize) +
		decimalLen +
		fractionLen +
		len(suffix)

	out := make([]rune, 0, transformedLen)
	originalToTransformed := make([]int, rawLen+1)
	transformedToOriginal := make([]int, transformedLen+1)
	ranges := Ranges{DecimalSeparatorIndex: -1}

	offset := 0

	out = append(out, prefix...)
	for range prefix {
		transformedToOriginal[offset] = 0
		offset++
	}

	// The slot right after the prefix keeps the cursor between prefix and
	// first digit. A typed sign is absorbed into the prefix, so both offsets
	// around it land on this slot.
	originalToTransformed[0] = offset
	if number.signLen > 0 {
		originalToTransformed[number.signLen] = offset
	}
	// Maps back past the sign, not to 0: the sign itself has no transformed
	// position of its own.
	transformedToOriginal[offset] = number.signLen
	offset++

	ranges.IntegerPart = EmptyRange(len(out))
	for index := integerStart; index < integerEnd; index++ {
		reversedIndex := integerEnd - 1 - index

		out = append(out, rune(raw[index]))
		originalToTransformed[index+1] = offset
		transformedToOriginal[offset] = index + 1
		offset++

		if reversedIndex != 0 && reversedIndex%groupingSize == 0 {
			out = append(out, format.Symbols.GroupingSeparator)
			transformedToOriginal[offset] = index + 1
			offset++
		}
	}
	ranges.IntegerPart.End = len(out)

	if number.decimalIndex >= 0 {
		ranges.DecimalSeparatorIndex = len(out)
		out = append(out, format.Symbols.DecimalSeparator)
		originalToTransformed[number.decimalIndex+1] = offset
		transformedToOriginal[offset] = number.decimalIndex + 1
		offset++
	}

	ranges.FractionPart = EmptyRange(len(out))
	for index := fractionStart; index < rawLen; index++ {
		out = append(out, rune(raw[index]))
		originalToTransformed[index+1] = offset
		transformedToOriginal[offset] = index + 1
		offset++
	}
	ranges.FractionPart.End = len(out)

	out = append(out, suffix...)
	for range suffix {
		transformedToOriginal[offset] = rawLen
		offset++
	}

	formatted := string(out)
	ranges.CurrencySymbol = findSymbol(formatted, format.Symbols.CurrencySymbol)

	styled, err := applyStyle(style, formatted, len(out), ranges)
	if err != nil {
		return TransformedText{}, err
	}

	return TransformedText{
		Formatted: formatted,
		Styled:    styled,
		Mapping: &tableMapping{
			originalToTransformed: originalToTransformed,
			transformedToOriginal: transformedToOriginal,
		},
		Ranges: ranges,
	}, nil
}

// identityText passes raw through untouched and unstyled.
func identityText(raw string) TransformedText {
	return TransformedText{
		Formatted: raw,
		Styled:    StyledText{Text: raw},
		Mapping:   IdentityMapping(utf8.RuneCountInString(raw)),
		Ranges:    NoRanges,
		Identity:  true,
	}
}

// findSymbol returns the rune range of the first occurrence of symbol.
func findSymbol(formatted, symbol string) Range {
	if symbol == "" {
		return Range{}
	}
	idx := strings.Index(formatted, symbol)
	if idx < 0 {
		return Range{}
	}
	start := utf8.RuneCountInString(formatted[:idx])
	return Range{Start: start, End: start + utf8.RuneCountInString(symbol)}
}
