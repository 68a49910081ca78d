package moneyfield

import "strings"

// FallbackResolver resolves fallback locale chains
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver holds explicitly configured fallback chains. Locale
// keys are matched case-insensitively.
type StaticFallbackResolver struct {
	chains map[string][]string
}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set registers the fallbacks for locale, dropping duplicates and the locale itself.
func (s *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	locale = normalizeLocale(locale)
	if locale == "" {
		return
	}
	if s.chains == nil {
		s.chains = make(map[string][]string)
	}

	seen := map[string]struct{}{locale: {}}
	chain := make([]string, 0, len(fallbacks))
	for _, fallback := range fallbacks {
		fallback = normalizeLocale(fallback)
		if fallback == "" {
			continue
		}
		if _, ok := seen[fallback]; ok {
			continue
		}
		seen[fallback] = struct{}{}
		chain = append(chain, fallback)
	}
	s.chains[strings.ToLower(locale)] = chain
}

func (s *StaticFallbackResolver) Resolve(locale string) []string {
	if s == nil {
		return nil
	}
	chain := s.chains[strings.ToLower(normalizeLocale(locale))]
	if len(chain) == 0 {
		return nil
	}
	return append([]string(nil), chain...)
}

// localeCandidates returns locale followed by its configured fallbacks and
// then its language parents, without duplicates.
func localeCandidates(locale string, resolver FallbackResolver) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}

	candidates := []string{locale}
	seen := map[string]struct{}{strings.ToLower(locale): {}}
	add := func(values ...string) {
		for _, value := range values {
			key := strings.ToLower(value)
			if _, ok := seen[key]; ok || value == "" {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, value)
		}
	}

	if resolver != nil {
		add(resolver.Resolve(locale)...)
	}
	add(localeParentChain(locale)...)
	return candidates
}
