package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	moneyfield "github.com/goliatone/go-moneyfield"
)

func newUSDField(t *testing.T, opts ...moneyfield.Option) *moneyfield.Field {
	t.Helper()
	cfg, err := moneyfield.NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	field, err := cfg.NewField("USD")
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return field
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		config   loggingConfig
		override string
		wantErr  bool
	}{
		{name: "defaults", config: loggingConfig{}},
		{name: "json debug", config: loggingConfig{Level: "debug", Format: "json"}},
		{name: "override", config: loggingConfig{Level: "nope"}, override: "error"},
		{name: "bad level", config: loggingConfig{Level: "loud"}, wantErr: true},
		{name: "bad format", config: loggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger: %v", err)
			}
			if logger == nil {
				t.Fatal("expected logger")
			}
		})
	}

	logFile := filepath.Join(t.TempDir(), "logs", "moneyfield.log")
	if _, err := initializeLogger(loggingConfig{OutputFile: logFile}, ""); err != nil {
		t.Fatalf("initializeLogger with file: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(logFile)); err != nil {
		t.Fatalf("log directory not created: %v", err)
	}
}

func TestLoadConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moneyfield.yml")
	content := `
locale: de_AT
currency: EUR
fallbacks:
  de-AT: [de]
patterns:
  usd: '"$"#,##0.00'
pattern_separators:
  grouping: "'"
  decimal: "."
theme:
  currency_symbol:
    foreground: "#2E8B57"
    bold: true
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	conf, err := loadConfiguration(path)
	if err != nil {
		t.Fatalf("loadConfiguration: %v", err)
	}
	if conf.Locale != "de_AT" || conf.Currency != "EUR" {
		t.Fatalf("locale/currency = %q/%q", conf.Locale, conf.Currency)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "json" {
		t.Fatalf("logging = %+v", conf.Logging)
	}
	if !conf.Theme.CurrencySymbol.Bold || conf.Theme.CurrencySymbol.Foreground != "#2E8B57" {
		t.Fatalf("theme = %+v", conf.Theme)
	}

	opts, err := conf.options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	cfg, err := moneyfield.NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	usd, err := cfg.NewField("USD")
	if err != nil {
		t.Fatalf("NewField(USD): %v", err)
	}
	usd.SetValue("1234.5", moneyfield.NewCursorSelection(6))
	text, _, err := usd.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if text.Text() != "$1'234.5" {
		t.Fatalf("pattern field rendered %q", text.Text())
	}
	if len(text.Styled.Spans) != 1 {
		t.Fatalf("spans = %+v, want only the symbol", text.Styled.Spans)
	}

	if _, err := loadConfiguration(filepath.Join(dir, "missing.yml")); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestLoadConfigurationEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moneyfield.yml")
	content := `
currency: EUR
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("MONEYFIELD_CURRENCY", "CHF")
	t.Setenv("MONEYFIELD_LOGGING_LEVEL", "error")
	t.Setenv("MONEYFIELD_LOGGING_FORMAT", "json")
	t.Setenv("MONEYFIELD_LOCALE", "de-CH")

	conf, err := loadConfiguration(path)
	if err != nil {
		t.Fatalf("loadConfiguration: %v", err)
	}
	if conf.Currency != "CHF" || conf.Locale != "de-CH" {
		t.Fatalf("currency/locale = %q/%q, want CHF/de-CH", conf.Currency, conf.Locale)
	}
	if conf.Logging.Level != "error" || conf.Logging.Format != "json" {
		t.Fatalf("logging = %+v, want env values", conf.Logging)
	}
}

func TestSeparatorConfig(t *testing.T) {
	symbols, err := separatorConfig{Grouping: "’", Decimal: ","}.symbols()
	if err != nil {
		t.Fatalf("symbols: %v", err)
	}
	if symbols.GroupingSeparator != '’' || symbols.DecimalSeparator != ',' {
		t.Fatalf("symbols = %+v", symbols)
	}

	if _, err := (separatorConfig{Grouping: ",,"}).symbols(); err == nil {
		t.Fatal("expected error for multi character separator")
	}
}

func TestDescribe(t *testing.T) {
	field := newUSDField(t)

	var buf bytes.Buffer
	if err := describe(&buf, field.Transformation(), "1234.5"); err != nil {
		t.Fatalf("describe: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`"1234.5" -> "$1,234.5"`,
		"integer [1, 6) fraction [7, 8) decimal 6 symbol [0, 1)",
		"original->transformed [1 2 4 5 6 7 8]",
		"transformed->original [0 0 1 1 2 3 4 5 6]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("describe output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := describe(&buf, field.Transformation(), "12abc"); err != nil {
		t.Fatalf("describe: %v", err)
	}
	if !strings.Contains(buf.String(), "not a number") {
		t.Fatalf("describe output = %q", buf.String())
	}
}

func TestRunField(t *testing.T) {
	field := newUSDField(t, moneyfield.WithTheme(moneyfield.DefaultTheme))

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(60, 8)

	for _, r := range "1234" {
		screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	if err := runField(screen, field, zap.NewNop()); err != nil {
		t.Fatalf("runField: %v", err)
	}

	if field.Value() != "124" {
		t.Fatalf("Value = %q, want 124", field.Value())
	}
	if field.Selection() != moneyfield.NewCursorSelection(2) {
		t.Fatalf("Selection = %+v", field.Selection())
	}

	cells, width, _ := screen.GetContents()
	var row strings.Builder
	for _, cell := range cells[fieldRow*width : (fieldRow+1)*width] {
		if len(cell.Runes) == 0 {
			row.WriteRune(' ')
			continue
		}
		row.WriteRune(cell.Runes[0])
	}
	if !strings.Contains(row.String(), "Amount (USD): $124") {
		t.Fatalf("field row = %q", row.String())
	}
}

func TestConvertStyle(t *testing.T) {
	if convertStyle(moneyfield.DefaultStyle) != tcell.StyleDefault {
		t.Fatal("default style should map to tcell.StyleDefault")
	}

	style := moneyfield.Style{
		Foreground: moneyfield.ColorFromRGB(0x2E, 0x8B, 0x57),
		Background: moneyfield.ColorDefault,
		Attributes: moneyfield.AttrBold,
	}
	want := tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x2E, 0x8B, 0x57)).Bold(true)
	if convertStyle(style) != want {
		t.Fatal("converted style mismatch")
	}
}

func TestCursorColumn(t *testing.T) {
	runes := []rune("1 234,5 €")
	tests := map[int]int{-1: 0, 0: 0, 2: 2, 9: 9, 20: 9}
	for offset, want := range tests {
		if got := cursorColumn(runes, offset); got != want {
			t.Errorf("cursorColumn(%d) = %d, want %d", offset, got, want)
		}
	}

	wide := []rune("￥1,234")
	if got := cursorColumn(wide, 1); got != 2 {
		t.Fatalf("full width symbol column = %d, want 2", got)
	}
}
