package port

// Localizer resolves a message key for a locale, interpolating %{param}
// placeholders. Unknown keys fall back to the default locale, then to the
// key itself.
type Localizer interface {
	Translate(key, locale string, params map[string]string) string
	// Locales lists every locale with a message bundle.
	Locales() []string
}
