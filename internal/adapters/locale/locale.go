package locale

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Translator resolves message keys against the in-repo bundles. Lookup
// falls back from the requested locale to the configured fallback, then to
// the key itself so a missing message never blanks a reply.
type Translator struct {
	fallback string
}

func NewTranslator(fallback string) *Translator {
	if _, ok := bundles[fallback]; !ok {
		log.Warn().Str("locale", fallback).Msg("fallback locale has no bundle, using en-US")
		fallback = "en-US"
	}

	return &Translator{fallback: fallback}
}

func (t *Translator) Translate(key, locale string, params map[string]string) string {
	message, ok := bundles[locale][key]
	if !ok {
		message, ok = bundles[t.fallback][key]
	}
	if !ok {
		log.Warn().Str("key", key).Str("locale", locale).Msg("missing translation")
		return key
	}

	for name, value := range params {
		message = strings.ReplaceAll(message, "%{"+name+"}", value)
	}

	return message
}

func (t *Translator) Locales() []string {
	locales := make([]string, 0, len(bundles))
	for locale := range bundles {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	return locales
}
