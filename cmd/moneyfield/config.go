package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	moneyfield "github.com/goliatone/go-moneyfield"
)

// fileConfig is the YAML configuration accepted through -config.
type fileConfig struct {
	Locale     string              `mapstructure:"locale"`
	Currency   string              `mapstructure:"currency"`
	Fallbacks  map[string][]string `mapstructure:"fallbacks"`
	RulesFiles []string            `mapstructure:"rules_files"`
	Patterns   map[string]string   `mapstructure:"patterns"`
	Separators separatorConfig     `mapstructure:"pattern_separators"`
	Theme      moneyfield.Theme    `mapstructure:"theme"`
	Logging    loggingConfig       `mapstructure:"logging"`
}

// separatorConfig supplies the characters emitted for pattern based formats.
type separatorConfig struct {
	Grouping string `mapstructure:"grouping"`
	Decimal  string `mapstructure:"decimal"`
}

// loggingConfig holds logging configuration options
type loggingConfig struct {
	Level      string `mapstructure:"level"`      // debug, info, warn, error
	Format     string `mapstructure:"format"`     // json, console
	OutputFile string `mapstructure:"outputFile"` // optional file output
}

// envKeys are bound explicitly so Unmarshal sees them even when the file
// leaves them out.
var envKeys = []string{
	"locale",
	"currency",
	"logging.level",
	"logging.format",
	"logging.outputFile",
}

// loadConfiguration reads the YAML configuration at configPath. Environment
// variables prefixed with MONEYFIELD_ override scalar file values; nested keys
// use underscores, e.g. MONEYFIELD_LOGGING_LEVEL.
func loadConfiguration(configPath string) (*fileConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("moneyfield")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration fileConfig
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// options turns the file configuration into library options.
func (c *fileConfig) options() ([]moneyfield.Option, error) {
	var opts []moneyfield.Option

	if c.Locale != "" {
		opts = append(opts, moneyfield.WithLocale(c.Locale))
	}
	for locale, chain := range c.Fallbacks {
		opts = append(opts, moneyfield.WithFallback(locale, chain...))
	}
	if len(c.RulesFiles) > 0 {
		opts = append(opts, moneyfield.WithFormatRulesFile(c.RulesFiles...))
	}
	if len(c.Patterns) > 0 {
		symbols, err := c.Separators.symbols()
		if err != nil {
			return nil, err
		}
		opts = append(opts, moneyfield.WithPatterns(c.Patterns, symbols))
	}
	if !c.Theme.IsZero() {
		opts = append(opts, moneyfield.WithTheme(c.Theme))
	}

	return opts, nil
}

func (s separatorConfig) symbols() (moneyfield.DecimalFormatSymbols, error) {
	var symbols moneyfield.DecimalFormatSymbols

	grouping, err := singleRune("grouping", s.Grouping)
	if err != nil {
		return symbols, err
	}
	decimal, err := singleRune("decimal", s.Decimal)
	if err != nil {
		return symbols, err
	}

	symbols.GroupingSeparator = grouping
	symbols.DecimalSeparator = decimal
	return symbols, nil
}

func singleRune(name, value string) (rune, error) {
	if value == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("%s separator %q must be a single character", name, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
