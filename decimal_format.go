package moneyfield

import "fmt"

// NewDecimalFormat builds a validated DecimalFormat.
func NewDecimalFormat(positivePrefix, positiveSuffix, negativePrefix, negativeSuffix string, groupingSize int, symbols DecimalFormatSymbols) (DecimalFormat, error) {
	format := DecimalFormat{
		PositivePrefix: positivePrefix,
		PositiveSuffix: positiveSuffix,
		NegativePrefix: negativePrefix,
		NegativeSuffix: negativeSuffix,
		GroupingSize:   groupingSize,
		Symbols:        symbols,
	}
	if err := format.Validate(); err != nil {
		return DecimalFormat{}, err
	}
	return format, nil
}

// Validate reports configuration faults. It is called by every resolver so
// that a bad descriptor never reaches Transform.
func (f DecimalFormat) Validate() error {
	if f.GroupingSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidGroupingSize, f.GroupingSize)
	}
	return nil
}

// Prefix returns the prefix for the given sign class.
func (f DecimalFormat) Prefix(negative bool) string {
	if negative {
		return f.NegativePrefix
	}
	return f.PositivePrefix
}

// Suffix returns the suffix for the given sign class.
func (f DecimalFormat) Suffix(negative bool) string {
	if negative {
		return f.NegativeSuffix
	}
	return f.PositiveSuffix
}

// Equal compares two formats field by field.
func (f DecimalFormat) Equal(other DecimalFormat) bool {
	return f == other
}

func (f DecimalFormat) String() string {
	return fmt.Sprintf(
		"DecimalFormat(positivePrefix=%q, positiveSuffix=%q, negativePrefix=%q, negativeSuffix=%q, groupingSize=%d, groupingSeparator=%q, decimalSeparator=%q, currencySymbol=%q)",
		f.PositivePrefix, f.PositiveSuffix, f.NegativePrefix, f.NegativeSuffix,
		f.GroupingSize, f.Symbols.GroupingSeparator, f.Symbols.DecimalSeparator, f.Symbols.CurrencySymbol,
	)
}
