package moneyfield

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// SpanTheme configures how one part of an amount is drawn. Colours are hex
// strings ("#RRGGBB" or "#RGB"); empty means the host default.
type SpanTheme struct {
	Foreground string `json:"foreground" yaml:"foreground" mapstructure:"foreground"`
	Background string `json:"background" yaml:"background" mapstructure:"background"`
	Bold       bool   `json:"bold" yaml:"bold" mapstructure:"bold"`
	Dim        bool   `json:"dim" yaml:"dim" mapstructure:"dim"`
	Italic     bool   `json:"italic" yaml:"italic" mapstructure:"italic"`
	Underline  bool   `json:"underline" yaml:"underline" mapstructure:"underline"`
}

// Theme styles the parts of a formatted amount.
type Theme struct {
	Integer          SpanTheme `json:"integer" yaml:"integer" mapstructure:"integer"`
	Fraction         SpanTheme `json:"fraction" yaml:"fraction" mapstructure:"fraction"`
	DecimalSeparator SpanTheme `json:"decimal_separator" yaml:"decimal_separator" mapstructure:"decimal_separator"`
	CurrencySymbol   SpanTheme `json:"currency_symbol" yaml:"currency_symbol" mapstructure:"currency_symbol"`
}

// DefaultTheme dims the fraction digits and tints the currency symbol.
var DefaultTheme = Theme{
	Integer:          SpanTheme{Bold: true},
	Fraction:         SpanTheme{Foreground: "#8A8A8A"},
	DecimalSeparator: SpanTheme{Foreground: "#8A8A8A"},
	CurrencySymbol:   SpanTheme{Foreground: "#2E8B57"},
}

// IsZero reports whether the theme sets nothing at all.
func (t Theme) IsZero() bool {
	return t == Theme{}
}

// Compile parses the theme colours.
func (t SpanTheme) Compile() (Style, error) {
	style := DefaultStyle

	fg, err := parseHexColor(t.Foreground)
	if err != nil {
		return Style{}, err
	}
	style.Foreground = fg

	bg, err := parseHexColor(t.Background)
	if err != nil {
		return Style{}, err
	}
	style.Background = bg

	if t.Bold {
		style.Attributes |= AttrBold
	}
	if t.Dim {
		style.Attributes |= AttrDim
	}
	if t.Italic {
		style.Attributes |= AttrItalic
	}
	if t.Underline {
		style.Attributes |= AttrUnderline
	}
	return style, nil
}

// StyleFunc compiles the theme into a StyleFunc. Colour errors surface here,
// once, rather than on every keystroke.
func (t Theme) StyleFunc() (StyleFunc, error) {
	integer, err := t.Integer.Compile()
	if err != nil {
		return nil, fmt.Errorf("integer: %w", err)
	}
	fraction, err := t.Fraction.Compile()
	if err != nil {
		return nil, fmt.Errorf("fraction: %w", err)
	}
	separator, err := t.DecimalSeparator.Compile()
	if err != nil {
		return nil, fmt.Errorf("decimal separator: %w", err)
	}
	symbol, err := t.CurrencySymbol.Compile()
	if err != nil {
		return nil, fmt.Errorf("currency symbol: %w", err)
	}

	return func(formatted string, ranges Ranges) StyledText {
		styled := StyledText{Text: formatted}
		add := func(r Range, style Style) {
			if r.IsEmpty() || style == DefaultStyle {
				return
			}
			styled.Spans = append(styled.Spans, Span{Range: r, Style: style})
		}
		add(ranges.IntegerPart, integer)
		add(ranges.DecimalSeparator(), separator)
		add(ranges.FractionPart, fraction)
		add(ranges.CurrencySymbol, symbol)
		return styled
	}, nil
}

func parseHexColor(value string) (Color, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ColorDefault, nil
	}
	if !strings.HasPrefix(value, "#") {
		value = "#" + value
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return Color{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, value, err)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}
