package moneyfield

import (
	"fmt"
	"unicode/utf8"
)

// Attribute is a set of text attributes.
type Attribute uint8

// AttrNone is the empty set.
const AttrNone Attribute = 0

const (
	AttrBold Attribute = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
)

// Has reports whether the set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Color is a true colour. The zero value with Default unset is black; use
// ColorDefault to keep whatever the host widget renders by default.
type Color struct {
	R, G, B uint8
	Default bool
}

// ColorDefault leaves the colour to the host widget.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a true colour from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Style is the presentation attached to a span.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle has default colours and no attributes.
var DefaultStyle = Style{Foreground: ColorDefault, Background: ColorDefault}

// Span annotates a range of the styled text.
type Span struct {
	Range
	Style Style
}

// StyledText is display text plus presentation spans. Spans never change
// the characters; a styler may substitute characters one for one.
type StyledText struct {
	Text  string
	Spans []Span
}

// Len returns the rune length of the text.
func (t StyledText) Len() int {
	return utf8.RuneCountInString(t.Text)
}

// StyleAt returns the style of the last span covering offset, or DefaultStyle.
func (t StyledText) StyleAt(offset int) Style {
	style := DefaultStyle
	for _, span := range t.Spans {
		if span.Contains(offset) {
			style = span.Style
		}
	}
	return style
}

// StyleFunc decorates formatted text. It receives the formatted text and the
// locations of its parts and must return text of identical rune length.
type StyleFunc func(formatted string, ranges Ranges) StyledText

// PlainStyle returns the formatted text without any spans.
func PlainStyle(formatted string, _ Ranges) StyledText {
	return StyledText{Text: formatted}
}

// applyStyle runs style and enforces the length contract.
func applyStyle(style StyleFunc, formatted string, formattedLen int, ranges Ranges) (StyledText, error) {
	if style == nil {
		style = PlainStyle
	}

	styled := style(formatted, ranges)
	if got := styled.Len(); got != formattedLen {
		return StyledText{}, fmt.Errorf("%w: formatted %q has %d runes, styled %q has %d", ErrStyleLengthMismatch, formatted, formattedLen, styled.Text, got)
	}

	for _, span := range styled.Spans {
		if span.Start < 0 || span.End > formattedLen || span.Start > span.End {
			return StyledText{}, fmt.Errorf("%w: [%d, %d) in text of length %d", ErrSpanOutOfRange, span.Start, span.End, formattedLen)
		}
	}

	return styled, nil
}
