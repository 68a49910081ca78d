package moneyfield

import (
	"fmt"

	"go.uber.org/zap"
)

// Config captures resolver, styling and field setup
type Config struct {
	Locale    string
	Fallbacks FallbackResolver
	Logger    *zap.Logger
	Theme     Theme
	Filter    InputFilter

	// Patterns maps currency codes to number patterns that take precedence
	// over locale rules. PatternSymbols supplies their separators.
	Patterns       map[string]string
	PatternSymbols DecimalFormatSymbols

	rules      map[string]CurrencyFormatRules
	rulesPaths []string
	resolver   Resolver
	style      StyleFunc

	rulesProvider *FormatRulesProvider
	built         *CachingResolver
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.rulesPaths) > 0 {
		loaded, err := LoadFormatRules(cfg.rulesPaths...)
		if err != nil {
			return nil, err
		}
		if cfg.rules == nil {
			cfg.rules = make(map[string]CurrencyFormatRules, len(loaded))
		}
		for locale, rules := range loaded {
			cfg.rules[locale] = rules
		}
	}

	for locale, rules := range cfg.rules {
		if err := rules.Validate(); err != nil {
			return nil, fmt.Errorf("rules for %s: %w", locale, err)
		}
	}

	cfg.Locale = normalizeLocale(cfg.Locale)
	if cfg.Locale == "" {
		cfg.Locale = "en"
	}

	if cfg.Fallbacks == nil {
		cfg.Fallbacks = NewStaticFallbackResolver()
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	if cfg.Filter == nil {
		cfg.Filter = DecimalInput
	}

	return cfg, nil
}

// WithLocale sets the display locale
func WithLocale(locale string) Option {
	return func(c *Config) error {
		c.Locale = locale
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Fallbacks = resolver
		return nil
	}
}

func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Fallbacks.(*StaticFallbackResolver)
		if !ok {
			if c.Fallbacks != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Fallbacks = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

// WithFormatRules registers currency rules for a locale, overriding built-ins
func WithFormatRules(locale string, rules CurrencyFormatRules) Option {
	return func(c *Config) error {
		locale = normalizeLocale(locale)
		if locale == "" {
			return nil
		}
		if c.rules == nil {
			c.rules = make(map[string]CurrencyFormatRules)
		}
		c.rules[locale] = rules
		c.invalidate()
		return nil
	}
}

// WithFormatRulesFile loads currency rules from JSON or YAML files
func WithFormatRulesFile(paths ...string) Option {
	return func(c *Config) error {
		c.rulesPaths = append(c.rulesPaths, paths...)
		c.invalidate()
		return nil
	}
}

// WithPatterns registers number patterns per currency code
func WithPatterns(patterns map[string]string, symbols DecimalFormatSymbols) Option {
	return func(c *Config) error {
		if len(patterns) == 0 {
			return nil
		}
		if c.Patterns == nil {
			c.Patterns = make(map[string]string, len(patterns))
		}
		for code, pattern := range patterns {
			c.Patterns[normalizeCurrencyCode(code)] = pattern
		}
		c.PatternSymbols = symbols
		c.invalidate()
		return nil
	}
}

// WithResolver puts a custom resolver in front of the built-in ones
func WithResolver(resolver Resolver) Option {
	return func(c *Config) error {
		c.resolver = resolver
		c.invalidate()
		return nil
	}
}

func WithTheme(theme Theme) Option {
	return func(c *Config) error {
		c.Theme = theme
		return nil
	}
}

// WithStyle sets a StyleFunc; it takes precedence over the theme
func WithStyle(style StyleFunc) Option {
	return func(c *Config) error {
		c.style = style
		return nil
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

func WithInputFilter(filter InputFilter) Option {
	return func(c *Config) error {
		c.Filter = filter
		return nil
	}
}

func (cfg *Config) invalidate() {
	cfg.rulesProvider = nil
	cfg.built = nil
}

// RulesProvider returns the provider for the configured rules.
func (cfg *Config) RulesProvider() *FormatRulesProvider {
	if cfg.rulesProvider == nil {
		cfg.rulesProvider = NewFormatRulesProvider(cfg.rules, cfg.Fallbacks)
	}
	return cfg.rulesProvider
}

// BuildResolver assembles the resolver chain (custom, patterns, locale rules)
// behind a cache. The same resolver is returned until the config changes.
func (cfg *Config) BuildResolver() (*CachingResolver, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.built != nil {
		return cfg.built, nil
	}

	var chain ChainResolver
	if cfg.resolver != nil {
		chain = append(chain, cfg.resolver)
	}
	if len(cfg.Patterns) > 0 {
		chain = append(chain, NewPatternResolver(cfg.Patterns, cfg.PatternSymbols))
	}
	chain = append(chain, NewXTextResolver(cfg.Locale, cfg.RulesProvider(), cfg.Logger))

	cfg.built = NewCachingResolver(chain, cfg.Logger)
	return cfg.built, nil
}

// StyleFunc returns the configured style, the compiled theme, or PlainStyle.
func (cfg *Config) StyleFunc() (StyleFunc, error) {
	if cfg.style != nil {
		return cfg.style, nil
	}
	if cfg.Theme.IsZero() {
		return PlainStyle, nil
	}
	return cfg.Theme.StyleFunc()
}

// NewField builds a field for currencyCode from the config.
func (cfg *Config) NewField(currencyCode string) (*Field, error) {
	resolver, err := cfg.BuildResolver()
	if err != nil {
		return nil, err
	}
	style, err := cfg.StyleFunc()
	if err != nil {
		return nil, err
	}
	return NewField(resolver, currencyCode,
		WithFieldStyle(style),
		WithFieldFilter(cfg.Filter),
		WithFieldLogger(cfg.Logger),
	)
}
