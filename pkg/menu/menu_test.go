package menu

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sidenav/pkg/route"
)

type categories []CustomCategory

func (c categories) CustomCategories() []CustomCategory { return c }

func TestBuildMenu(t *testing.T) {
	base := BaseEntries()

	plain := BuildMenu(base, false)
	assert.Equal(t, base, plain)

	extended := BuildMenu(base, true)
	require.Len(t, extended, len(base)+1)
	assert.Equal(t, base, extended[:len(base)])
	assert.Equal(t, CustomEntry(), extended[len(base)])

	// the input is never modified
	assert.Len(t, base, 7)
	assert.Empty(t, BuildMenu(nil, false))
	assert.Equal(t, []Entry{CustomEntry()}, BuildMenu(nil, true))
}

func TestBaseEntriesHaveUniqueCategories(t *testing.T) {
	seen := map[string]string{}
	for _, e := range BuildMenu(BaseEntries(), true) {
		k, ok := route.CategoryKey(e.Href)
		if !ok {
			continue
		}
		prev, dup := seen[k]
		assert.False(t, dup, "%s and %s share type %s", prev, e.ID, k)
		seen[k] = e.ID
	}
}

func TestHasCustomCategories(t *testing.T) {
	assert.False(t, HasCustomCategories(nil))
	assert.False(t, HasCustomCategories(categories{}))
	assert.True(t, HasCustomCategories(categories{{Name: "Classics", Type: "movie", Query: "classic"}}))
}

func TestNewReadsSourceOnce(t *testing.T) {
	src := &mutableCategories{list: []CustomCategory{{Name: "Classics"}}}
	m := New("Site", "v1", src, route.Matcher{})
	require.Len(t, m.Items, 8)

	src.list = nil
	assert.Len(t, m.Items, 8)
	assert.Len(t, New("Site", "v1", nil, route.Matcher{}).Items, 7)
}

type mutableCategories struct {
	list []CustomCategory
}

func (c *mutableCategories) CustomCategories() []CustomCategory { return c.list }

func TestIsEntryActive(t *testing.T) {
	m := New("Site", "", nil, route.Matcher{})
	home := FixedEntries()[0]
	search := FixedEntries()[1]
	movie := BaseEntries()[1]

	assert.True(t, m.IsEntryActive(home, "/"))
	assert.False(t, m.IsEntryActive(home, "/search"))
	assert.True(t, m.IsEntryActive(search, "/search"))
	assert.False(t, m.IsEntryActive(search, "/search?q=alien"))

	assert.True(t, m.IsEntryActive(movie, "/catalog?type=movie&sort=new"))
	assert.False(t, m.IsEntryActive(movie, "/catalog?type=tv"))

	// exact entries never use the type rule
	typed := Entry{ID: "typed", Href: "/catalog?type=movie", Exact: true}
	assert.False(t, m.IsEntryActive(typed, "/catalog?type=movie&sort=new"))
}

func TestActiveID(t *testing.T) {
	m := New("Site", "", categories{{Name: "x"}}, route.Matcher{})

	tests := map[string]string{
		"/":                            IDHome,
		"/search":                      IDSearch,
		"/catalog?type=anime&page=3":   IDAnime,
		"/catalog?type=custom&tag=old": IDCustom,
		"/live":                        IDLive,
		"/play?id=42":                  "",
	}
	for path, want := range tests {
		assert.Equal(t, want, m.ActiveID(path), path)
	}
}

func TestPaths(t *testing.T) {
	m := New("Site", "", nil, route.Matcher{})
	assert.Equal(t, []string{"/", "/search", "/source-browser", "/catalog", "/shortdrama", "/live"}, m.Paths())
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, "red", ThemeFor(IDMovie).Name)
	assert.Equal(t, "yellow", ThemeFor(IDCustom).Name)
	assert.Equal(t, DefaultTheme, ThemeFor("unknown"))
}

func TestHandler(t *testing.T) {
	m := New("Site", "v1", nil, route.Matcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/menu?path=%2Fcatalog%3Ftype%3Dtv%26sort%3Dnew", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got Resolved
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "/catalog?type=tv&sort=new", got.ActivePath)

	var active []string
	for _, e := range append(got.Fixed, got.Items...) {
		if e.Active {
			active = append(active, e.ID)
		}
	}
	assert.Equal(t, []string{IDTV}, active)
}

func TestHandlerOverrideAndDefault(t *testing.T) {
	m := New("Site", "", nil, route.Matcher{})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menu?path=/live&active=/search", nil))
	var got Resolved
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "/search", got.ActivePath)

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/menu", nil))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "/", got.ActivePath)
	assert.True(t, got.Fixed[0].Active)
}
