package moneyfield

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulesLoader retrieves currency rules keyed by locale
type RulesLoader interface {
	Load() (map[string]CurrencyFormatRules, error)
}

// RulesLoaderFunc adapters allow bare functions to implement RulesLoader
type RulesLoaderFunc func() (map[string]CurrencyFormatRules, error)

// Load implements RulesLoader for RulesLoaderFunc
func (fn RulesLoaderFunc) Load() (map[string]CurrencyFormatRules, error) {
	return fn()
}

// FileRulesLoader reads rules from JSON or YAML files. Later files win.
//
//	de-AT:
//	  positive_pattern: "{symbol} {amount}"
//	  negative_pattern: "-{symbol} {amount}"
//	  decimal_separator: ","
//	  grouping_separator: "."
//	  grouping_size: 3
type FileRulesLoader struct {
	paths []string
}

func NewFileRulesLoader(paths ...string) *FileRulesLoader {
	return &FileRulesLoader{paths: append([]string(nil), paths...)}
}

func (l *FileRulesLoader) Load() (map[string]CurrencyFormatRules, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("moneyfield: no rules paths configured")
	}

	merged := make(map[string]CurrencyFormatRules)
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("moneyfield: read %s: %w", path, err)
		}

		rules, err := decodeRulesFile(path, data)
		if err != nil {
			return nil, fmt.Errorf("moneyfield: decode %s: %w", path, err)
		}
		for locale, value := range rules {
			merged[locale] = value
		}
	}
	return merged, nil
}

// LoadFormatRules reads and validates rule files.
func LoadFormatRules(paths ...string) (map[string]CurrencyFormatRules, error) {
	return NewFileRulesLoader(paths...).Load()
}

func decodeRulesFile(path string, data []byte) (map[string]CurrencyFormatRules, error) {
	var raw map[string]CurrencyFormatRules

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if len(raw) == 0 {
		return nil, errors.New("empty rules file")
	}

	result := make(map[string]CurrencyFormatRules, len(raw))
	for locale, rules := range raw {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			return nil, fmt.Errorf("empty locale in %s", path)
		}
		if err := rules.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", normalized, err)
		}
		result[normalized] = rules
	}
	return result, nil
}
