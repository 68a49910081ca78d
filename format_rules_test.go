package moneyfield

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestCurrencyFormatRulesDecimalFormat(t *testing.T) {
	tests := []struct {
		locale string
		symbol string
		raw    string
		want   string
	}{
		{locale: "en", symbol: "$", raw: "-1234.5", want: "-$1,234.5"},
		{locale: "de", symbol: "€", raw: "1234.5", want: "1.234,5\u00a0€"},
		{locale: "de-CH", symbol: "CHF", raw: "-1234", want: "CHF-1’234"},
		{locale: "fr", symbol: "€", raw: "1234567", want: "1\u202f234\u202f567\u00a0€"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			rules, ok := formatRulesData[tt.locale]
			if !ok {
				t.Fatalf("missing built-in rules for %s", tt.locale)
			}
			format, err := rules.DecimalFormat(tt.symbol)
			if err != nil {
				t.Fatalf("DecimalFormat: %v", err)
			}
			got, err := Transform(tt.raw, format, nil)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if got.Formatted != tt.want {
				t.Fatalf("Transform(%q) = %q, want %q", tt.raw, got.Formatted, tt.want)
			}
		})
	}
}

func TestCurrencyFormatRulesValidate(t *testing.T) {
	valid := formatRulesData["en"]

	tests := []struct {
		name   string
		mutate func(*CurrencyFormatRules)
		err    error
	}{
		{name: "grouping size", mutate: func(r *CurrencyFormatRules) { r.GroupingSize = 0 }, err: ErrInvalidGroupingSize},
		{name: "missing amount", mutate: func(r *CurrencyFormatRules) { r.PositivePattern = "{symbol}" }, err: ErrInvalidPattern},
		{name: "double amount", mutate: func(r *CurrencyFormatRules) { r.NegativePattern = "{amount}{amount}" }, err: ErrInvalidPattern},
		{name: "long decimal", mutate: func(r *CurrencyFormatRules) { r.DecimalSeparator = ".." }, err: ErrInvalidPattern},
		{name: "empty grouping", mutate: func(r *CurrencyFormatRules) { r.GroupingSeparator = "" }, err: ErrInvalidPattern},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("built-in en rules invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := valid.clone()
			tt.mutate(&rules)
			if err := rules.Validate(); !errors.Is(err, tt.err) {
				t.Fatalf("Validate() = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestDefaultFormatRulesIsACopy(t *testing.T) {
	rules := DefaultFormatRules()
	ja := rules["ja"]
	ja.Symbols["JPY"] = "JPY"
	if formatRulesData["ja"].Symbols["JPY"] != "￥" {
		t.Fatal("DefaultFormatRules shares symbol maps with the built-ins")
	}
}

func TestFormatRulesProviderLookup(t *testing.T) {
	fallbacks := NewStaticFallbackResolver()
	fallbacks.Set("pt-BR", "es")

	provider := NewFormatRulesProvider(map[string]CurrencyFormatRules{
		"en_US": {
			PositivePattern:   "{symbol} {amount}",
			NegativePattern:   "-{symbol} {amount}",
			DecimalSeparator:  ".",
			GroupingSeparator: ",",
			GroupingSize:      3,
		},
	}, fallbacks)

	tests := []struct {
		locale  string
		matched string
		ok      bool
	}{
		{locale: "en-US", matched: "en-US", ok: true},
		{locale: "de-AT", matched: "de", ok: true},
		{locale: "de_CH", matched: "de-CH", ok: true},
		{locale: "pt-BR", matched: "es", ok: true},
		{locale: "sw", ok: false},
		{locale: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			_, matched, ok := provider.Lookup(tt.locale)
			if ok != tt.ok || matched != tt.matched {
				t.Fatalf("Lookup(%q) = %q, %v; want %q, %v", tt.locale, matched, ok, tt.matched, tt.ok)
			}
		})
	}

	if got := provider.Get("sw"); got.GroupingSeparator != "," {
		t.Fatalf("Get(sw) did not fall back to English: %+v", got)
	}

	locales := provider.Locales()
	if !strings.Contains(strings.Join(locales, ","), "en-US") {
		t.Fatalf("Locales() = %v, want en-US included", locales)
	}
}

func TestLocaleCandidates(t *testing.T) {
	fallbacks := NewStaticFallbackResolver()
	fallbacks.Set("es-MX", "es-419", "es-MX", "en")

	got := localeCandidates("es_MX", fallbacks)
	want := []string{"es-MX", "es-419", "en", "es"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("localeCandidates = %v, want %v", got, want)
	}

	if got := localeCandidates("", fallbacks); got != nil {
		t.Fatalf("localeCandidates(\"\") = %v", got)
	}
}

func TestFileRulesLoader(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "rules.json")
	writeFile(t, jsonPath, `{
  "de-AT": {
    "positive_pattern": "{symbol} {amount}",
    "negative_pattern": "-{symbol} {amount}",
    "decimal_separator": ",",
    "grouping_separator": ".",
    "grouping_size": 3
  }
}`)

	yamlPath := filepath.Join(dir, "rules.yaml")
	writeFile(t, yamlPath, `
de_AT:
  positive_pattern: "{symbol} {amount}"
  negative_pattern: "-{symbol} {amount}"
  decimal_separator: ","
  grouping_separator: " "
  grouping_size: 3
en-IN:
  positive_pattern: "{symbol}{amount}"
  negative_pattern: "-{symbol}{amount}"
  decimal_separator: "."
  grouping_separator: ","
  grouping_size: 2
  symbols:
    INR: "₹"
`)

	rules, err := LoadFormatRules(jsonPath, yamlPath)
	if err != nil {
		t.Fatalf("LoadFormatRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("loaded %d locales, want 2", len(rules))
	}
	if rules["de-AT"].GroupingSeparator != " " {
		t.Fatalf("later file should win: %+v", rules["de-AT"])
	}
	if rules["en-IN"].Symbols["INR"] != "₹" || rules["en-IN"].GroupingSize != 2 {
		t.Fatalf("en-IN = %+v", rules["en-IN"])
	}
}

func TestFileRulesLoaderErrors(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "rules.txt")
	writeFile(t, textPath, "en: {}")
	if _, err := LoadFormatRules(textPath); err == nil || !strings.Contains(err.Error(), "unsupported extension") {
		t.Fatalf("unsupported extension error = %v", err)
	}

	emptyPath := filepath.Join(dir, "empty.json")
	writeFile(t, emptyPath, "{}")
	if _, err := LoadFormatRules(emptyPath); err == nil {
		t.Fatal("expected error for empty rules file")
	}

	invalidPath := filepath.Join(dir, "invalid.yml")
	writeFile(t, invalidPath, `
en:
  positive_pattern: "{symbol}"
  negative_pattern: "-{symbol}{amount}"
  decimal_separator: "."
  grouping_separator: ","
  grouping_size: 3
`)
	if _, err := LoadFormatRules(invalidPath); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("invalid rules error = %v, want ErrInvalidPattern", err)
	}

	if _, err := LoadFormatRules(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v, want os.ErrNotExist", err)
	}

	if _, err := NewFileRulesLoader().Load(); err == nil {
		t.Fatal("expected error without paths")
	}
}

func TestRulesLoaderFunc(t *testing.T) {
	var loader RulesLoader = RulesLoaderFunc(func() (map[string]CurrencyFormatRules, error) {
		return map[string]CurrencyFormatRules{"en": formatRulesData["en"]}, nil
	})
	rules, err := loader.Load()
	if err != nil || len(rules) != 1 {
		t.Fatalf("Load() = %v, %v", rules, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
