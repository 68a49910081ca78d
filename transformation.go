package moneyfield

import "fmt"

// Transformation binds a DecimalFormat to a StyleFunc so a field can apply
// it on every change of its raw text. It is immutable and safe to share.
type Transformation struct {
	format DecimalFormat
	style  StyleFunc
}

// NewTransformation validates format and returns a reusable transformation.
// A nil style renders plain text.
func NewTransformation(format DecimalFormat, style StyleFunc) (*Transformation, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if style == nil {
		style = PlainStyle
	}
	return &Transformation{format: format, style: style}, nil
}

// Format returns the descriptor the transformation was built with.
func (t *Transformation) Format() DecimalFormat {
	return t.format
}

// Transform formats raw. See the package level Transform.
func (t *Transformation) Transform(raw string) (TransformedText, error) {
	return Transform(raw, t.format, t.style)
}

// Equal reports whether both transformations format the same way. Style
// functions are not comparable, so only formats are compared.
func (t *Transformation) Equal(other *Transformation) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.format.Equal(other.format)
}

func (t *Transformation) String() string {
	if t == nil {
		return "CurrencyTransformation(<nil>)"
	}
	return fmt.Sprintf("CurrencyTransformation(format=%s)", t.format)
}
