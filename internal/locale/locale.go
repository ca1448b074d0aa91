// Package locale defines the two content locales the site is published in
// and normalizes locale tags coming from requests and the command line.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const (
	// Primary is the locale that drives category membership and order.
	Primary = "cs"
	// Secondary is the translated locale.
	Secondary = "en"
	// Default is used when no locale is requested.
	Default = Primary
)

// ErrUnsupported is returned by Parse for well-formed tags the site does not publish.
var ErrUnsupported = errors.New("unsupported locale")

// Supported lists the published locales, primary first.
var Supported = []string{Primary, Secondary}

// Parse normalizes a BCP 47 tag ("EN-us", "cs_CZ") to one of the supported
// base locales. An empty string yields Default.
func Parse(s string) (string, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return Default, nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("locale %q: %w", s, err)
	}
	base, _ := tag.Base()

	for _, l := range Supported {
		if base.String() == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("locale %q: %w", s, ErrUnsupported)
}

// IsSecondary reports whether l names the secondary locale.
func IsSecondary(l string) bool {
	return l == Secondary
}
