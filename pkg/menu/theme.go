package menu

// Theme is the accent color pair of an entry.
type Theme struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// themes is keyed by entry ID so inserting or reordering entries never
// changes another entry's colors.
var themes = map[string]Theme{
	IDHome:          {Name: "green", From: "green-500", To: "emerald-500"},
	IDSearch:        {Name: "blue", From: "blue-500", To: "cyan-500"},
	IDSourceBrowser: {Name: "emerald", From: "emerald-500", To: "green-500"},
	IDMovie:         {Name: "red", From: "red-500", To: "pink-500"},
	IDTV:            {Name: "blue", From: "blue-500", To: "indigo-500"},
	IDShortDrama:    {Name: "purple", From: "purple-500", To: "violet-500"},
	IDAnime:         {Name: "pink", From: "pink-500", To: "rose-500"},
	IDShow:          {Name: "orange", From: "orange-500", To: "amber-500"},
	IDLive:          {Name: "teal", From: "teal-500", To: "cyan-500"},
	IDCustom:        {Name: "yellow", From: "yellow-500", To: "amber-500"},
}

// DefaultTheme is used for entries without a theme of their own.
var DefaultTheme = themes[IDSourceBrowser]

// ThemeFor returns the theme of the entry with the given ID.
func ThemeFor(id string) Theme {
	if t, ok := themes[id]; ok {
		return t
	}
	return DefaultTheme
}
