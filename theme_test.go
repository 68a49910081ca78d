package moneyfield

import (
	"errors"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{input: "", want: ColorDefault},
		{input: "#FF0000", want: ColorFromRGB(255, 0, 0)},
		{input: "00ff00", want: ColorFromRGB(0, 255, 0)},
		{input: "#00f", want: ColorFromRGB(0, 0, 255)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseHexColor(tt.input)
			if err != nil {
				t.Fatalf("parseHexColor(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("parseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if _, err := parseHexColor("#GGGGGG"); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("invalid colour error = %v, want ErrInvalidColor", err)
	}
}

func TestSpanThemeCompile(t *testing.T) {
	style, err := SpanTheme{Foreground: "#2E8B57", Bold: true, Underline: true}.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if style.Foreground != ColorFromRGB(0x2E, 0x8B, 0x57) {
		t.Fatalf("Foreground = %v", style.Foreground)
	}
	if style.Background != ColorDefault {
		t.Fatalf("Background = %v", style.Background)
	}
	if !style.Attributes.Has(AttrBold) || !style.Attributes.Has(AttrUnderline) || style.Attributes.Has(AttrItalic) {
		t.Fatalf("Attributes = %b", style.Attributes)
	}

	plain, err := SpanTheme{}.Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if plain != DefaultStyle {
		t.Fatalf("empty theme compiled to %+v", plain)
	}
}

func TestThemeStyleFunc(t *testing.T) {
	style, err := DefaultTheme.StyleFunc()
	if err != nil {
		t.Fatalf("StyleFunc: %v", err)
	}

	got, err := Transform("1234.5", usdFormat(t), style)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got.Text() != got.Formatted {
		t.Fatalf("theme changed text: %q", got.Text())
	}
	if len(got.Styled.Spans) != 4 {
		t.Fatalf("spans = %d, want 4", len(got.Styled.Spans))
	}

	if !got.Styled.StyleAt(1).Attributes.Has(AttrBold) {
		t.Fatal("integer digits should be bold")
	}
	if got.Styled.StyleAt(0).Foreground != ColorFromRGB(0x2E, 0x8B, 0x57) {
		t.Fatalf("symbol foreground = %v", got.Styled.StyleAt(0).Foreground)
	}
	if got.Styled.StyleAt(7).Foreground != ColorFromRGB(0x8A, 0x8A, 0x8A) {
		t.Fatalf("fraction foreground = %v", got.Styled.StyleAt(7).Foreground)
	}

	whole, err := Transform("12", usdFormat(t), style)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(whole.Styled.Spans) != 2 {
		t.Fatalf("spans without fraction = %d, want 2", len(whole.Styled.Spans))
	}
}

func TestThemeStyleFuncInvalidColor(t *testing.T) {
	theme := Theme{Fraction: SpanTheme{Foreground: "nope"}}
	if _, err := theme.StyleFunc(); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("StyleFunc error = %v, want ErrInvalidColor", err)
	}
	if !(Theme{}).IsZero() || DefaultTheme.IsZero() {
		t.Fatal("IsZero mismatch")
	}
}

func TestAttributeFlags(t *testing.T) {
	flags := []Attribute{AttrBold, AttrDim, AttrItalic, AttrUnderline}
	for i, attr := range flags {
		if attr != 1<<i {
			t.Fatalf("flag %d = %d, want %d", i, attr, 1<<i)
		}
		if AttrNone.Has(attr) {
			t.Fatalf("AttrNone has flag %d", attr)
		}
	}

	set := AttrBold | AttrUnderline
	if !set.Has(AttrBold) || !set.Has(AttrUnderline) || set.Has(AttrDim) {
		t.Fatalf("set %08b reports wrong members", set)
	}
}
