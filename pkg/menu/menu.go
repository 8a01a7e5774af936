package menu

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mchmarny/sidenav/pkg/route"
)

// Menu is the composed navigation panel content.
type Menu struct {
	// Title is the site name shown above the menu.
	Title string `json:"title"`

	// Version of the application serving the menu.
	Version string `json:"version,omitempty"`

	// Fixed are the exact-match entries shown first (home, search).
	Fixed []Entry `json:"fixed"`

	// Items is the menu list in display order.
	Items []Entry `json:"items"`

	// Matcher decides which entry is active.
	Matcher route.Matcher `json:"-"`
}

// New composes the menu once. The category source is consulted here only;
// later changes to it are not reflected in the returned menu.
func New(title, version string, src CategorySource, matcher route.Matcher) *Menu {
	return &Menu{
		Title:   title,
		Version: version,
		Fixed:   FixedEntries(),
		Items:   BuildMenu(BaseEntries(), HasCustomCategories(src)),
		Matcher: matcher,
	}
}

// IsEntryActive reports whether e corresponds to activePath. Exact entries
// only match their own target.
func (m *Menu) IsEntryActive(e Entry, activePath string) bool {
	if e.Exact {
		return m.Matcher.MatchExact(e.Href, activePath)
	}
	return m.Matcher.Match(e.Href, activePath)
}

// ActiveID returns the ID of the first entry active for activePath, fixed
// entries first, or "" when none is.
func (m *Menu) ActiveID(activePath string) string {
	for _, e := range m.Fixed {
		if m.IsEntryActive(e, activePath) {
			return e.ID
		}
	}
	for _, e := range m.Items {
		if m.IsEntryActive(e, activePath) {
			return e.ID
		}
	}
	return ""
}

// Walk calls fn for every entry, fixed entries first.
func (m *Menu) Walk(fn func(Entry)) {
	for _, e := range m.Fixed {
		fn(e)
	}
	for _, e := range m.Items {
		fn(e)
	}
}

// Paths returns the distinct entry paths, without query, in menu order.
func (m *Menu) Paths() []string {
	seen := map[string]bool{}
	var paths []string

	m.Walk(func(e Entry) {
		p, _, _ := strings.Cut(e.Href, "?")
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		paths = append(paths, p)
	})

	return paths
}

// ResolvedEntry is an entry annotated for one active path.
type ResolvedEntry struct {
	Entry
	Theme  Theme `json:"theme"`
	Active bool  `json:"active"`
}

// Resolved is the menu annotated for one active path.
type Resolved struct {
	Title      string          `json:"title"`
	Version    string          `json:"version,omitempty"`
	ActivePath string          `json:"activePath"`
	Fixed      []ResolvedEntry `json:"fixed"`
	Items      []ResolvedEntry `json:"items"`
}

// Resolve annotates every entry with its theme and active flag.
func (m *Menu) Resolve(activePath string) Resolved {
	annotate := func(entries []Entry) []ResolvedEntry {
		out := make([]ResolvedEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, ResolvedEntry{
				Entry:  e,
				Theme:  ThemeFor(e.ID),
				Active: m.IsEntryActive(e, activePath),
			})
		}
		return out
	}

	return Resolved{
		Title:      m.Title,
		Version:    m.Version,
		ActivePath: activePath,
		Fixed:      annotate(m.Fixed),
		Items:      annotate(m.Items),
	}
}

// Handler returns an HTTP handler that responds with the menu resolved for
// the "active" query parameter, or for "path" when no override is given.
func (m *Menu) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := route.ParseQuery(r.URL.RawQuery)
		path, _ := q.Get("path")
		if path == "" {
			path = "/"
		}
		override, _ := q.Get("active")
		activePath := route.ResolveActivePath(override, path, nil)

		slog.Debug("handling menu request",
			"method", r.Method,
			"url", r.URL.Path,
			"active_path", activePath,
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(m.Resolve(activePath)); err != nil {
			slog.Error("failed to encode menu", "error", err)
			return
		}
	})
}
