package moneyfield

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// XTextResolver resolves currency formats for one display locale. Currency
// symbols come from golang.org/x/text; layout comes from CurrencyFormatRules,
// or is derived from x/text number formatting when the locale has no rules.
type XTextResolver struct {
	locale  string
	tag     language.Tag
	printer *message.Printer
	rules   *FormatRulesProvider
	logger  *zap.Logger
}

var _ Resolver = &XTextResolver{}

// NewXTextResolver creates a resolver for locale. A nil rules provider uses
// the built-in rules; a nil logger disables logging.
func NewXTextResolver(locale string, rules *FormatRulesProvider, logger *zap.Logger) *XTextResolver {
	locale = normalizeLocale(locale)
	if locale == "" {
		locale = "en"
	}
	if rules == nil {
		rules = NewFormatRulesProvider(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tag := localeTag(locale)
	return &XTextResolver{
		locale:  locale,
		tag:     tag,
		printer: message.NewPrinter(tag),
		rules:   rules,
		logger:  logger,
	}
}

// Locale returns the display locale.
func (r *XTextResolver) Locale() string {
	return r.locale
}

// Resolve implements Resolver.
func (r *XTextResolver) Resolve(currencyCode string) (DecimalFormat, error) {
	code := normalizeCurrencyCode(currencyCode)
	unit, err := currency.ParseISO(code)
	if err != nil {
		return DecimalFormat{}, fmt.Errorf("%w %q: %v", ErrUnknownCurrency, code, err)
	}
	if unit.String() == "XXX" {
		return DecimalFormat{}, unknownCurrency(code)
	}

	rules, matched, ok := r.rules.Lookup(r.locale)
	if !ok {
		rules = r.derivedRules()
		r.logger.Debug("no currency rules for locale, derived from number formatting",
			zap.String("op", "resolve"),
			zap.String("locale", r.locale),
			zap.String("decimal_separator", rules.DecimalSeparator),
			zap.String("grouping_separator", rules.GroupingSeparator),
		)
	}

	symbol, ok := rules.Symbols[unit.String()]
	if !ok || symbol == "" {
		symbol = r.symbol(unit)
	}

	format, err := rules.DecimalFormat(symbol)
	if err != nil {
		return DecimalFormat{}, fmt.Errorf("resolve %s for %s: %w", unit, r.locale, err)
	}

	r.logger.Debug("resolved currency format",
		zap.String("op", "resolve"),
		zap.String("currency", unit.String()),
		zap.String("locale", r.locale),
		zap.String("rules", matched),
		zap.String("symbol", symbol),
	)
	return format, nil
}

// symbol extracts the display symbol by formatting an amount and trimming
// the digits around it.
func (r *XTextResolver) symbol(unit currency.Unit) string {
	symbol := extractSymbol(r.printer, unit)
	if symbol == "" || symbol == unit.String() {
		// Try with English as fallback for symbol extraction
		symbol = extractSymbol(message.NewPrinter(language.English), unit)
	}
	if symbol == "" {
		symbol = unit.String()
	}
	return symbol
}

func extractSymbol(printer *message.Printer, unit currency.Unit) string {
	full := printer.Sprintf("%v", currency.Symbol(unit.Amount(1)))
	return strings.TrimFunc(full, isAmountRune)
}

func isAmountRune(r rune) bool {
	return unicode.IsDigit(r) || unicode.IsSpace(r) || r == '.' || r == ',' || r == '\''
}

// derivedRules reads separators and grouping size from how the locale
// prints 1234567.89.
func (r *XTextResolver) derivedRules() CurrencyFormatRules {
	rules := formatRulesData["en"].clone()

	sample := []rune(r.printer.Sprintf("%v", number.Decimal(1234567.89, number.MinFractionDigits(2), number.MaxFractionDigits(2))))

	type mark struct {
		value rune
		index int
	}
	var marks []mark
	for i, c := range sample {
		if !unicode.IsDigit(c) {
			marks = append(marks, mark{value: c, index: i})
		}
	}
	if len(marks) < 2 {
		return rules
	}

	decimal := marks[len(marks)-1]
	if len(sample)-decimal.index-1 != 2 {
		return rules
	}
	grouping := marks[len(marks)-2]
	if grouping.value == decimal.value {
		return rules
	}

	rules.DecimalSeparator = string(decimal.value)
	rules.GroupingSeparator = string(grouping.value)
	rules.GroupingSize = decimal.index - grouping.index - 1
	if rules.GroupingSize <= 0 {
		rules.GroupingSize = 3
	}
	return rules
}

func unknownCurrency(code string) error {
	return fmt.Errorf("%w %q", ErrUnknownCurrency, normalizeCurrencyCode(code))
}
