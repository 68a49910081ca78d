package moneyfield

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Resolver produces the DecimalFormat for a currency code. Implementations
// must return a validated format or an error; they never hand back a
// descriptor with a non-positive grouping size.
type Resolver interface {
	Resolve(currencyCode string) (DecimalFormat, error)
}

// ResolverFunc adapts a bare function to the Resolver interface
type ResolverFunc func(currencyCode string) (DecimalFormat, error)

// Resolve implements Resolver for ResolverFunc
func (fn ResolverFunc) Resolve(currencyCode string) (DecimalFormat, error) {
	return fn(currencyCode)
}

// StaticResolver serves fixed formats keyed by currency code.
type StaticResolver map[string]DecimalFormat

// Resolve implements Resolver.
func (s StaticResolver) Resolve(currencyCode string) (DecimalFormat, error) {
	format, ok := s[normalizeCurrencyCode(currencyCode)]
	if !ok {
		return DecimalFormat{}, unknownCurrency(currencyCode)
	}
	if err := format.Validate(); err != nil {
		return DecimalFormat{}, err
	}
	return format, nil
}

// ChainResolver tries each resolver in order. A resolver that does not know
// the currency (ErrUnknownCurrency) passes to the next one; any other error is
// a configuration fault and is returned immediately.
type ChainResolver []Resolver

// Resolve implements Resolver.
func (c ChainResolver) Resolve(currencyCode string) (DecimalFormat, error) {
	err := unknownCurrency(currencyCode)
	for _, resolver := range c {
		if resolver == nil {
			continue
		}
		var format DecimalFormat
		format, err = resolver.Resolve(currencyCode)
		if err == nil {
			return format, nil
		}
		if !errors.Is(err, ErrUnknownCurrency) {
			return DecimalFormat{}, err
		}
	}
	return DecimalFormat{}, err
}

// CachingResolver memoizes another resolver per currency code. It may be
// shared between fields, so access is guarded. Failures are not cached.
type CachingResolver struct {
	mu     sync.RWMutex
	next   Resolver
	cache  map[string]DecimalFormat
	logger *zap.Logger
}

var _ Resolver = &CachingResolver{}

// NewCachingResolver wraps next. A nil logger disables logging.
func NewCachingResolver(next Resolver, logger *zap.Logger) *CachingResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingResolver{
		next:   next,
		cache:  make(map[string]DecimalFormat),
		logger: logger,
	}
}

// Resolve returns the cached format or asks the wrapped resolver.
func (c *CachingResolver) Resolve(currencyCode string) (DecimalFormat, error) {
	key := normalizeCurrencyCode(currencyCode)

	c.mu.RLock()
	format, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return format, nil
	}

	format, err := c.next.Resolve(key)
	if err != nil {
		c.logger.Debug("currency resolution failed",
			zap.String("op", "resolve"),
			zap.String("currency", key),
			zap.Error(err),
		)
		return DecimalFormat{}, err
	}

	c.mu.Lock()
	c.cache[key] = format
	c.mu.Unlock()

	c.logger.Debug("currency format cached",
		zap.String("op", "resolve"),
		zap.String("currency", key),
		zap.Stringer("format", format),
	)
	return format, nil
}

// Invalidate drops the cached format for one currency code.
func (c *CachingResolver) Invalidate(currencyCode string) {
	c.mu.Lock()
	delete(c.cache, normalizeCurrencyCode(currencyCode))
	c.mu.Unlock()
}

// Reset drops every cached format.
func (c *CachingResolver) Reset() {
	c.mu.Lock()
	c.cache = make(map[string]DecimalFormat)
	c.mu.Unlock()
}

// Len returns the number of cached formats.
func (c *CachingResolver) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func normalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
