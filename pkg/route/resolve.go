// Package route decides which navigation entry corresponds to the current
// route.
package route

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultCatalogPrefix is the path under which catalog routes are grouped by
// their type parameter.
const DefaultCatalogPrefix = "/catalog"

var categoryPattern = regexp.MustCompile(`type=([^&]+)`)

// ResolveActivePath returns override when it is non-empty. Otherwise it
// returns path, followed by "?" and the encoded query when query is not
// empty. The two sources are never merged.
func ResolveActivePath(override, path string, query Query) string {
	if override != "" {
		return override
	}
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// CategoryKey extracts the value of the type parameter from href.
func CategoryKey(href string) (string, bool) {
	m := categoryPattern.FindStringSubmatch(href)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Matcher compares entry targets against the active path.
type Matcher struct {
	// CatalogPrefix enables category matching for active paths under it.
	// Empty means DefaultCatalogPrefix.
	CatalogPrefix string
}

// MatchExact reports whether href and activePath are equal once decoded.
func (m Matcher) MatchExact(href, activePath string) bool {
	return decode(href) == decode(activePath)
}

// Match reports whether href is active for activePath: either both are equal
// once decoded, or activePath is a catalog route carrying the same type
// parameter as href (so "/catalog?type=movie" is active for
// "/catalog?type=movie&sort=new"). An href without a type parameter only
// matches exactly.
func (m Matcher) Match(href, activePath string) bool {
	decodedHref := decode(href)
	decodedActive := decode(activePath)

	if decodedHref == decodedActive {
		return true
	}

	key, ok := CategoryKey(decodedHref)
	if !ok {
		return false
	}

	return strings.HasPrefix(decodedActive, m.prefix()) &&
		strings.Contains(decodedActive, "type="+key)
}

func (m Matcher) prefix() string {
	if m.CatalogPrefix == "" {
		return DefaultCatalogPrefix
	}
	return m.CatalogPrefix
}

// decode percent-decodes s the way browsers decode URI components: "+" is
// left alone. Strings with invalid escapes are compared as-is.
func decode(s string) string {
	d, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return d
}
