package moneyfield

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/xuri/nfp"
)

// ParsePattern builds a DecimalFormat from a spreadsheet style number format
// such as `"$"#,##0.00;-"$"#,##0.00`. Literal text before the first digit
// placeholder becomes the prefix and literal text after the last one the
// suffix. The second section, when present, gives the negative affixes;
// otherwise negatives get a leading '-'. The grouping size is the number of
// integer placeholders after the last thousands separator.
//
// Separators in the pattern are abstract: the emitted characters come from
// symbols. When symbols.CurrencySymbol is empty it is taken from the
// positive affixes.
func ParsePattern(pattern string, symbols DecimalFormatSymbols) (DecimalFormat, error) {
	if strings.TrimSpace(pattern) == "" {
		return DecimalFormat{}, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	ps := nfp.NumberFormatParser()
	sections := ps.Parse(pattern)
	if len(sections) == 0 {
		return DecimalFormat{}, fmt.Errorf("%w: %q has no sections", ErrInvalidPattern, pattern)
	}

	positive, err := parsePatternSection(sections[0])
	if err != nil {
		return DecimalFormat{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
	}
	if positive.groupingSize <= 0 {
		return DecimalFormat{}, fmt.Errorf("%w: %q does not group integer digits", ErrInvalidPattern, pattern)
	}

	negative := patternSection{prefix: "-" + positive.prefix, suffix: positive.suffix}
	if len(sections) >= 2 {
		negative, err = parsePatternSection(sections[1])
		if err != nil {
			return DecimalFormat{}, fmt.Errorf("%w: %q: negative section: %v", ErrInvalidPattern, pattern, err)
		}
	}

	if symbols.GroupingSeparator == 0 {
		symbols.GroupingSeparator = ','
	}
	if symbols.DecimalSeparator == 0 {
		symbols.DecimalSeparator = '.'
	}
	if symbols.CurrencySymbol == "" {
		symbols.CurrencySymbol = positive.currency
	}
	if symbols.CurrencySymbol == "" {
		symbols.CurrencySymbol = affixSymbol(positive.prefix + positive.suffix)
	}

	return NewDecimalFormat(positive.prefix, positive.suffix, negative.prefix, negative.suffix, positive.groupingSize, symbols)
}

type patternSection struct {
	prefix       string
	suffix       string
	currency     string
	groupingSize int
}

func parsePatternSection(section nfp.Section) (patternSection, error) {
	var (
		out          patternSection
		prefix       strings.Builder
		suffix       strings.Builder
		seenDigits   bool
		afterDecimal bool
		hasGrouping  bool
		sinceGroup   int
	)

	for _, tok := range section.Items {
		switch tok.TType {
		case nfp.TokenTypeLiteral:
			if seenDigits {
				suffix.WriteString(tok.TValue)
			} else {
				prefix.WriteString(tok.TValue)
			}

		case nfp.TokenTypeCurrencyLanguage:
			// [$€-407]: only the currency string is shown, the locale id is dropped.
			symbol := currencyString(tok)
			if symbol == "" {
				continue
			}
			if out.currency == "" {
				out.currency = symbol
			}
			if seenDigits {
				suffix.WriteString(symbol)
			} else {
				prefix.WriteString(symbol)
			}

		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder:
			// A literal between placeholders is not an affix.
			suffix.Reset()
			seenDigits = true
			if !afterDecimal {
				sinceGroup += len(tok.TValue)
			}

		case nfp.TokenTypeThousandsSeparator:
			suffix.Reset()
			if !afterDecimal && seenDigits {
				hasGrouping = true
				sinceGroup = 0
			}

		case nfp.TokenTypeDecimalPoint:
			suffix.Reset()
			afterDecimal = true
			seenDigits = true

		case nfp.TokenTypePercent:
			return out, fmt.Errorf("percent formats are not currency formats")

		case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
			return out, fmt.Errorf("date formats are not currency formats")

		case nfp.TokenTypeColor, nfp.TokenTypeCondition, nfp.TokenTypeAlignment:
			// Ignore formatting-only tokens.
		}
	}

	if !seenDigits {
		return out, fmt.Errorf("no digit placeholders")
	}

	out.prefix = prefix.String()
	out.suffix = suffix.String()
	if hasGrouping {
		out.groupingSize = sinceGroup
	}
	return out, nil
}

func currencyString(tok nfp.Token) string {
	for _, part := range tok.Parts {
		if part.Token.TType == nfp.TokenSubTypeCurrencyString {
			return part.Token.TValue
		}
	}
	return ""
}

// affixSymbol strips signs, brackets and spacing from affix text.
func affixSymbol(affixes string) string {
	return strings.TrimFunc(strings.Map(func(r rune) rune {
		switch {
		case r == '-' || r == '+' || r == '(' || r == ')':
			return -1
		case unicode.IsSpace(r):
			return ' '
		}
		return r
	}, affixes), unicode.IsSpace)
}

// PatternResolver serves formats built from per-currency number patterns.
type PatternResolver struct {
	patterns map[string]string
	symbols  DecimalFormatSymbols
}

var _ Resolver = &PatternResolver{}

// NewPatternResolver creates a resolver for patterns keyed by currency code.
// symbols supplies the separator characters; its CurrencySymbol, when set,
// applies to every currency.
func NewPatternResolver(patterns map[string]string, symbols DecimalFormatSymbols) *PatternResolver {
	normalized := make(map[string]string, len(patterns))
	for code, pattern := range patterns {
		normalized[normalizeCurrencyCode(code)] = pattern
	}
	return &PatternResolver{patterns: normalized, symbols: symbols}
}

// Resolve implements Resolver.
func (r *PatternResolver) Resolve(currencyCode string) (DecimalFormat, error) {
	code := normalizeCurrencyCode(currencyCode)
	pattern, ok := r.patterns[code]
	if !ok {
		return DecimalFormat{}, unknownCurrency(code)
	}
	format, err := ParsePattern(pattern, r.symbols)
	if err != nil {
		return DecimalFormat{}, fmt.Errorf("resolve %s: %w", code, err)
	}
	return format, nil
}
