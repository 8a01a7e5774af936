package menu

// Entry is one navigation target in the panel. Entries are values and are
// never modified after construction.
type Entry struct {
	// ID is the stable identifier of the entry. Themes are keyed by it.
	ID string `json:"id"`

	// Icon names the icon rendered next to the label.
	Icon string `json:"icon"`

	// Label is the text shown when the panel is expanded.
	Label string `json:"label"`

	// Href is the navigation target, optionally with a query.
	Href string `json:"href"`

	// Exact restricts matching to the exact target, disabling category
	// matching on the type parameter.
	Exact bool `json:"exact,omitempty"`
}

// Entry IDs.
const (
	IDHome          = "home"
	IDSearch        = "search"
	IDSourceBrowser = "source-browser"
	IDMovie         = "movie"
	IDTV            = "tv"
	IDShortDrama    = "short-drama"
	IDAnime         = "anime"
	IDShow          = "show"
	IDLive          = "live"
	IDCustom        = "custom"
)

// FixedEntries returns the entries always shown above the menu list.
func FixedEntries() []Entry {
	return []Entry{
		{ID: IDHome, Icon: "home", Label: "Home", Href: "/", Exact: true},
		{ID: IDSearch, Icon: "search", Label: "Search", Href: "/search", Exact: true},
	}
}

// BaseEntries returns the menu list in display order.
func BaseEntries() []Entry {
	return []Entry{
		{ID: IDSourceBrowser, Icon: "globe", Label: "Source Browser", Href: "/source-browser"},
		{ID: IDMovie, Icon: "film", Label: "Movies", Href: "/catalog?type=movie"},
		{ID: IDTV, Icon: "tv", Label: "Series", Href: "/catalog?type=tv"},
		{ID: IDShortDrama, Icon: "play-square", Label: "Short Drama", Href: "/shortdrama"},
		{ID: IDAnime, Icon: "cat", Label: "Anime", Href: "/catalog?type=anime"},
		{ID: IDShow, Icon: "clover", Label: "Variety", Href: "/catalog?type=show"},
		{ID: IDLive, Icon: "radio", Label: "Live", Href: "/live"},
	}
}

// CustomEntry is appended when runtime configuration supplies custom
// categories.
func CustomEntry() Entry {
	return Entry{ID: IDCustom, Icon: "star", Label: "Custom", Href: "/catalog?type=custom"}
}
