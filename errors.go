package moneyfield

import "errors"

// ErrInvalidGroupingSize indicates a DecimalFormat whose grouping size is not positive.
var ErrInvalidGroupingSize = errors.New("moneyfield: grouping size must be positive")

// ErrStyleLengthMismatch indicates a StyleFunc that inserted or removed characters.
var ErrStyleLengthMismatch = errors.New("moneyfield: styled text length differs from formatted text")

// ErrSpanOutOfRange indicates a style span that falls outside the styled text.
var ErrSpanOutOfRange = errors.New("moneyfield: style span out of range")

// ErrUnknownCurrency indicates a currency code that is not a recognised ISO 4217 code.
var ErrUnknownCurrency = errors.New("moneyfield: unknown currency")

// ErrInvalidPattern indicates a number format pattern that cannot describe a currency field
var ErrInvalidPattern = errors.New("moneyfield: invalid number pattern")

// ErrInvalidColor indicates a theme colour that is not a valid hex colour.
var ErrInvalidColor = errors.New("moneyfield: invalid color")

// ErrOffsetOutOfRange indicates a cursor offset outside the mapped text.
var ErrOffsetOutOfRange = errors.New("moneyfield: offset out of range")

// ErrNilConfig marks calls on a nil *Config
var ErrNilConfig = errors.New("moneyfield: nil config")
