package moneyfield

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	symbolPlaceholder = "{symbol}"
	amountPlaceholder = "{amount}"
)

// CurrencyFormatRules defines how a locale lays out currency amounts
type CurrencyFormatRules struct {
	// PositivePattern and NegativePattern use the placeholders {symbol} and
	// {amount}, e.g. "{symbol}{amount}" and "-{symbol}{amount}".
	PositivePattern   string `json:"positive_pattern" yaml:"positive_pattern"`
	NegativePattern   string `json:"negative_pattern" yaml:"negative_pattern"`
	DecimalSeparator  string `json:"decimal_separator" yaml:"decimal_separator"`
	GroupingSeparator string `json:"grouping_separator" yaml:"grouping_separator"`
	GroupingSize      int    `json:"grouping_size" yaml:"grouping_size"`
	// Symbols overrides the currency symbol per ISO code.
	Symbols map[string]string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}

// formatRulesData contains the currency layout of the locales shipped by default.
var formatRulesData = map[string]CurrencyFormatRules{
	"en": {
		PositivePattern:   "{symbol}{amount}",
		NegativePattern:   "-{symbol}{amount}",
		DecimalSeparator:  ".",
		GroupingSeparator: ",",
		GroupingSize:      3,
	},
	"en-GB": {
		PositivePattern:   "{symbol}{amount}",
		NegativePattern:   "-{symbol}{amount}",
		DecimalSeparator:  ".",
		GroupingSeparator: ",",
		GroupingSize:      3,
	},
	"es": {
		PositivePattern:   "{amount}\u00a0{symbol}",
		NegativePattern:   "-{amount}\u00a0{symbol}",
		DecimalSeparator:  ",",
		GroupingSeparator: ".",
		GroupingSize:      3,
	},
	"de": {
		PositivePattern:   "{amount}\u00a0{symbol}",
		NegativePattern:   "-{amount}\u00a0{symbol}",
		DecimalSeparator:  ",",
		GroupingSeparator: ".",
		GroupingSize:      3,
	},
	"de-CH": {
		PositivePattern:   "{symbol}\u00a0{amount}",
		NegativePattern:   "{symbol}-{amount}",
		DecimalSeparator:  ".",
		GroupingSeparator: "’",
		GroupingSize:      3,
	},
	"fr": {
		PositivePattern:   "{amount}\u00a0{symbol}",
		NegativePattern:   "-{amount}\u00a0{symbol}",
		DecimalSeparator:  ",",
		GroupingSeparator: "\u202f",
		GroupingSize:      3,
	},
	"ja": {
		PositivePattern:   "{symbol}{amount}",
		NegativePattern:   "-{symbol}{amount}",
		DecimalSeparator:  ".",
		GroupingSeparator: ",",
		GroupingSize:      3,
		Symbols: map[string]string{
			"JPY": "￥",
		},
	},
}

// DefaultFormatRules returns a copy of the built-in rules.
func DefaultFormatRules() map[string]CurrencyFormatRules {
	out := make(map[string]CurrencyFormatRules, len(formatRulesData))
	for locale, rules := range formatRulesData {
		out[locale] = rules.clone()
	}
	return out
}

func (r CurrencyFormatRules) clone() CurrencyFormatRules {
	out := r
	if len(r.Symbols) > 0 {
		out.Symbols = make(map[string]string, len(r.Symbols))
		for code, symbol := range r.Symbols {
			out.Symbols[code] = symbol
		}
	}
	return out
}

// Validate checks that the rules can produce a DecimalFormat.
func (r CurrencyFormatRules) Validate() error {
	if r.GroupingSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidGroupingSize, r.GroupingSize)
	}
	for name, pattern := range map[string]string{"positive": r.PositivePattern, "negative": r.NegativePattern} {
		if strings.Count(pattern, amountPlaceholder) != 1 {
			return fmt.Errorf("%w: %s pattern %q needs exactly one %s", ErrInvalidPattern, name, pattern, amountPlaceholder)
		}
	}
	if utf8.RuneCountInString(r.DecimalSeparator) != 1 {
		return fmt.Errorf("%w: decimal separator %q must be a single character", ErrInvalidPattern, r.DecimalSeparator)
	}
	if utf8.RuneCountInString(r.GroupingSeparator) != 1 {
		return fmt.Errorf("%w: grouping separator %q must be a single character", ErrInvalidPattern, r.GroupingSeparator)
	}
	return nil
}

// DecimalFormat expands the rules for one currency symbol.
func (r CurrencyFormatRules) DecimalFormat(symbol string) (DecimalFormat, error) {
	if err := r.Validate(); err != nil {
		return DecimalFormat{}, err
	}

	positivePrefix, positiveSuffix := splitAmountPattern(r.PositivePattern, symbol)
	negativePrefix, negativeSuffix := splitAmountPattern(r.NegativePattern, symbol)
	decimal, _ := utf8.DecodeRuneInString(r.DecimalSeparator)
	grouping, _ := utf8.DecodeRuneInString(r.GroupingSeparator)

	return NewDecimalFormat(positivePrefix, positiveSuffix, negativePrefix, negativeSuffix, r.GroupingSize, DecimalFormatSymbols{
		GroupingSeparator: grouping,
		DecimalSeparator:  decimal,
		CurrencySymbol:    symbol,
	})
}

// splitAmountPattern returns the text around {amount} with {symbol} expanded.
func splitAmountPattern(pattern, symbol string) (string, string) {
	idx := strings.Index(pattern, amountPlaceholder)
	prefix := strings.ReplaceAll(pattern[:idx], symbolPlaceholder, symbol)
	suffix := strings.ReplaceAll(pattern[idx+len(amountPlaceholder):], symbolPlaceholder, symbol)
	return prefix, suffix
}

// FormatRulesProvider looks up currency rules for locales
type FormatRulesProvider struct {
	rules    map[string]CurrencyFormatRules
	resolver FallbackResolver
}

// NewFormatRulesProvider merges overrides over the built-in rules.
func NewFormatRulesProvider(overrides map[string]CurrencyFormatRules, resolver FallbackResolver) *FormatRulesProvider {
	rules := DefaultFormatRules()
	for locale, value := range overrides {
		locale = normalizeLocale(locale)
		if locale == "" {
			continue
		}
		rules[locale] = value.clone()
	}

	return &FormatRulesProvider{
		rules:    rules,
		resolver: resolver,
	}
}

// Lookup returns the rules for locale, trying the exact locale, configured
// fallbacks, then language parents. ok is false when nothing matched.
func (p *FormatRulesProvider) Lookup(locale string) (CurrencyFormatRules, string, bool) {
	if p == nil {
		return CurrencyFormatRules{}, "", false
	}
	for _, candidate := range localeCandidates(locale, p.resolver) {
		if rules, ok := p.rules[candidate]; ok {
			return rules, candidate, true
		}
	}
	return CurrencyFormatRules{}, "", false
}

// Get is like Lookup but falls back to English.
func (p *FormatRulesProvider) Get(locale string) CurrencyFormatRules {
	if rules, _, ok := p.Lookup(locale); ok {
		return rules
	}
	if p != nil {
		if rules, ok := p.rules["en"]; ok {
			return rules
		}
	}
	return formatRulesData["en"]
}

// Locales lists the locales the provider has rules for.
func (p *FormatRulesProvider) Locales() []string {
	if p == nil {
		return nil
	}
	locales := make([]string, 0, len(p.rules))
	for locale := range p.rules {
		locales = append(locales, locale)
	}
	return normalizeLocales(locales)
}
