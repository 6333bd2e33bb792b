//go:build !js

package native

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale variables in POSIX precedence order. LANGUAGE may hold a
// colon-separated list.
var localeVars = []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"}

// PreferredLanguages reads the locale environment and returns BCP 47 tags
// in preference order, without duplicates. The C and POSIX locales are
// skipped.
func PreferredLanguages(getenv func(string) string) []string {
	var (
		langs []string
		seen  = make(map[string]bool)
	)
	for _, key := range localeVars {
		for _, locale := range strings.Split(getenv(key), ":") {
			tag, ok := ParseLocale(locale)
			if !ok || seen[tag] {
				continue
			}
			seen[tag] = true
			langs = append(langs, tag)
		}
	}
	return langs
}

// ParseLocale converts a POSIX locale such as "en_GB.UTF-8@euro" into a
// BCP 47 tag ("en-GB").
func ParseLocale(locale string) (string, bool) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "", false
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
