package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"go.uber.org/zap"

	moneyfield "github.com/goliatone/go-moneyfield"
)

const (
	fieldRow = 1
	infoRow  = 3
	helpRow  = 5
)

// runField drives field from screen events until Escape or Ctrl-C. The screen
// must already be initialised; the caller owns Fini.
func runField(screen tcell.Screen, field *moneyfield.Field, logger *zap.Logger) error {
	for {
		if err := drawField(screen, field); err != nil {
			return err
		}

		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			done, err := handleKey(field, ev)
			if err != nil {
				logger.Warn("key not applied", zap.String("op", "interactive"), zap.Error(err))
			}
			if done {
				return nil
			}
		}
	}
}

func handleKey(field *moneyfield.Field, ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyEnter:
		return true, nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		field.Backspace()
	case tcell.KeyDelete:
		field.Delete()
	case tcell.KeyLeft:
		_, err := field.MoveCursor(-1)
		return false, err
	case tcell.KeyRight:
		_, err := field.MoveCursor(1)
		return false, err
	case tcell.KeyHome:
		return false, field.SetDisplayCursor(0)
	case tcell.KeyEnd:
		return false, field.SetDisplayCursor(math.MaxInt32)
	case tcell.KeyRune:
		field.Insert(string(ev.Rune()))
	}
	return false, nil
}

func drawField(screen tcell.Screen, field *moneyfield.Field) error {
	text, sel, err := field.Render()
	if err != nil {
		return err
	}

	screen.Clear()

	label := "Amount (" + field.Currency() + "): "
	x := drawString(screen, 0, fieldRow, label, tcell.StyleDefault.Bold(true))

	runes := []rune(text.Text())
	col := x
	for i, r := range runes {
		screen.SetContent(col, fieldRow, r, nil, convertStyle(text.Styled.StyleAt(i)))
		col += runeWidth(r)
	}
	screen.ShowCursor(x+cursorColumn(runes, sel.Head), fieldRow)

	dim := tcell.StyleDefault.Dim(true)
	drawString(screen, 0, infoRow, "raw: "+field.Value(), dim)
	drawString(screen, 0, helpRow, "type digits, '.', '-'; arrows move; Esc quits", dim)

	screen.Show()
	return nil
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runeWidth(r)
	}
	return x
}

// cursorColumn is the display column of a cursor before runes[offset].
func cursorColumn(runes []rune, offset int) int {
	if offset > len(runes) {
		offset = len(runes)
	}
	if offset < 0 {
		offset = 0
	}
	return uniseg.StringWidth(string(runes[:offset]))
}

func runeWidth(r rune) int {
	if w := uniseg.StringWidth(string(r)); w > 0 {
		return w
	}
	return 1
}

// convertStyle converts a span style to tcell.Style.
func convertStyle(s moneyfield.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.Default {
		style = style.Foreground(tcell.NewRGBColor(int32(s.Foreground.R), int32(s.Foreground.G), int32(s.Foreground.B)))
	}
	if !s.Background.Default {
		style = style.Background(tcell.NewRGBColor(int32(s.Background.R), int32(s.Background.G), int32(s.Background.B)))
	}

	if s.Attributes.Has(moneyfield.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(moneyfield.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(moneyfield.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(moneyfield.AttrUnderline) {
		style = style.Underline(true)
	}

	return style
}
