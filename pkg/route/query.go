package route

import (
	"net/url"
	"strings"
)

// Param is one query parameter.
type Param struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters. Unlike url.Values it keeps
// the order parameters were received in, so an encoded query round-trips.
type Query []Param

// ParseQuery splits a raw query string (without the leading "?") keeping
// parameter order. Undecodable pairs are kept verbatim.
func ParseQuery(raw string) Query {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return nil
	}

	var q Query
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		if dk, err := url.QueryUnescape(k); err == nil {
			k = dk
		}
		if dv, err := url.QueryUnescape(v); err == nil {
			v = dv
		}
		q = append(q, Param{Key: k, Value: v})
	}
	return q
}

// Encode serializes q as "k=v&k2=v2" in order, form-encoding keys and values.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Get returns the first value for key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}
