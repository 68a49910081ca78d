package moneyfield

import (
	"regexp"
	"strconv"
)

// rawNumberPattern accepts what a currency field can hold while typing: an
// optional sign, ASCII digits and at most one point. Exponents, NaN and
// infinities are rejected.
var rawNumberPattern = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)$`)

// rawNumber is the parsed shape of a raw field value.
type rawNumber struct {
	sign int
	// signLen is 1 when the raw text starts with '+' or '-'.
	signLen int
	// decimalIndex is the rune index of '.', or -1.
	decimalIndex int
}

// parseRawNumber reports whether raw is a finite decimal number and, if so,
// where its parts are. raw is ASCII whenever ok is true, so byte and rune
// indices coincide.
func parseRawNumber(raw string) (rawNumber, bool) {
	if !rawNumberPattern.MatchString(raw) {
		return rawNumber{}, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return rawNumber{}, false
	}

	n := rawNumber{sign: signOf(value), decimalIndex: -1}
	if raw[0] == '+' || raw[0] == '-' {
		n.signLen = 1
	}
	for i := n.signLen; i < len(raw); i++ {
		if raw[i] == '.' {
			n.decimalIndex = i
			break
		}
	}
	return n, true
}

// signOf mirrors a numeric sign function: negative zero compares equal to
// zero, so "-0" lands in the positive class.
func signOf(value float64) int {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	default:
		return 0
	}
}

// groupingSeparatorCount is the number of grouping separators emitted for an
// integer part of the given length.
func groupingSeparatorCount(integerDigits, groupingSize int) int {
	if integerDigits == 0 {
		return 0
	}
	if integerDigits%groupingSize == 0 {
		return integerDigits/groupingSize - 1
	}
	return integerDigits / groupingSize
}
