package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"agencyweb/internal/locale"
)

// Validation limits for query parameters.
const (
	maxSlugLen   = 300
	maxLocaleLen = 35
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// validateLocale normalizes the locale query parameter. It returns the
// supported locale or an error message for the client.
func validateLocale(raw string) (string, string) {
	if utf8.RuneCountInString(raw) > maxLocaleLen {
		return "", "Locale is too long."
	}
	l, err := locale.Parse(raw)
	if err != nil {
		return "", "Unsupported locale. Use one of: " + strings.Join(locale.Supported, ", ") + "."
	}
	return l, ""
}

// validateCategorySlug checks the optional category query parameter.
func validateCategorySlug(s string) string {
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) > maxSlugLen {
		return "Category slug is too long (max 300 characters)."
	}
	if !slugPattern.MatchString(s) {
		return "Category slug may only contain lowercase letters, digits and hyphens."
	}
	return ""
}
