// Package web serves the navigation panel as part of a server-rendered page.
//
// Every page render runs the collapse manager against a per-client session
// cache and the persistent store, writes the collapse marker onto the <html>
// element of the same document, and highlights the entry resolved for the
// request route.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	g "maragu.dev/gomponents"

	"github.com/mchmarny/sidenav/pkg/collapse"
	"github.com/mchmarny/sidenav/pkg/menu"
	"github.com/mchmarny/sidenav/pkg/metric"
	"github.com/mchmarny/sidenav/pkg/route"
	"github.com/mchmarny/sidenav/pkg/store"
)

const (
	// TogglePath receives the collapse toggle action.
	TogglePath = "/sidebar/toggle"

	// MenuAPIPath serves the resolved menu as JSON.
	MenuAPIPath = "/api/menu"

	// ClientCookie holds the uuid identifying a browser.
	ClientCookie = "sidenav_client"

	clientCookieMaxAge = 365 * 24 * time.Hour
)

// ToggleListener is notified after a client toggled the panel.
type ToggleListener func(clientID string, collapsed bool)

// PageState is the panel state shared with the content rendered next to it.
type PageState struct {
	ActivePath string
	Collapsed  bool
}

// ContentFunc renders the main content of a page for the given panel state,
// so content can lay itself out around a collapsed or expanded panel.
type ContentFunc func(r *http.Request, st PageState) g.Node

// Shell renders pages containing the navigation panel.
type Shell struct {
	menu     *menu.Menu
	store    store.Store
	sessions *collapse.Sessions
	nav      *metric.Nav
	logger   *slog.Logger
	onToggle ToggleListener
	content  ContentFunc
}

// Option configures a Shell.
type Option func(*Shell)

// WithSessions sets the per-client cache registry.
func WithSessions(s *collapse.Sessions) Option {
	return func(sh *Shell) { sh.sessions = s }
}

// WithMetrics sets the counters recorded by the shell.
func WithMetrics(n *metric.Nav) Option {
	return func(sh *Shell) {
		if n != nil {
			sh.nav = n
		}
	}
}

// WithLogger sets the shell logger.
func WithLogger(l *slog.Logger) Option {
	return func(sh *Shell) {
		if l != nil {
			sh.logger = l
		}
	}
}

// WithToggleListener sets the callback run after every toggle.
func WithToggleListener(l ToggleListener) Option {
	return func(sh *Shell) { sh.onToggle = l }
}

// WithContent sets the renderer for the page's <main> element.
func WithContent(fn ContentFunc) Option {
	return func(sh *Shell) { sh.content = fn }
}

// NewShell returns a shell for m. The menu is composed by the caller once;
// st may be nil, in which case state only lives in the session caches.
func NewShell(m *menu.Menu, st store.Store, opts ...Option) *Shell {
	sh := &Shell{
		menu:   m,
		store:  st,
		nav:    metric.NopNav(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(sh)
	}

	if sh.sessions == nil {
		sh.sessions = collapse.NewSessions(0)
	}

	return sh
}

// Routes registers a page for every menu path plus the toggle action and
// the menu API.
func (sh *Shell) Routes(r chi.Router) {
	for _, p := range sh.menu.Paths() {
		r.Get(p, sh.ServePage)
	}
	r.Post(TogglePath, sh.ServeToggle)
	r.Method(http.MethodGet, MenuAPIPath, sh.menu.Handler())
}

type activePathKey struct{}

// WithActivePath returns a context whose page render highlights path
// instead of the request route.
func WithActivePath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, activePathKey{}, path)
}

// ActivePathFrom returns the override set by WithActivePath, or "".
func ActivePathFrom(ctx context.Context) string {
	p, _ := ctx.Value(activePathKey{}).(string)
	return p
}

// ServePage renders the page for the request route. It can be mounted on
// routes outside the menu, typically with WithActivePath set by a
// middleware.
func (sh *Shell) ServePage(w http.ResponseWriter, r *http.Request) {
	id := sh.clientID(w, r)

	root := collapse.NewRootElement()
	root.SetAttr("lang", "en")

	// the marker is written to root before anything is rendered
	collapsed := sh.manager(id, root).Initialize(r.Context())

	activePath := route.ResolveActivePath(
		ActivePathFrom(r.Context()),
		r.URL.Path,
		route.ParseQuery(r.URL.RawQuery),
	)

	resolved := sh.menu.Resolve(activePath)

	activeID := sh.menu.ActiveID(activePath)
	if activeID == "" {
		activeID = "none"
	}
	sh.nav.Resolutions.Increment(activeID)

	sh.logger.Debug("rendering page",
		"client", id,
		"active_path", activePath,
		"active", activeID,
		"collapsed", collapsed)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	var content g.Node
	if sh.content != nil {
		content = sh.content(r, PageState{ActivePath: activePath, Collapsed: collapsed})
	}

	if err := Page(resolved, root, collapsed, r.URL.RequestURI(), content).Render(w); err != nil {
		sh.logger.Error("failed to render page", "error", err)
	}
}

type toggleResponse struct {
	Collapsed bool `json:"collapsed"`
}

// ServeToggle flips the client's collapse state. The form value "collapsed"
// carries the state the client currently shows; without it the stored state
// is used. JSON clients get the new state, others are redirected to the
// "return" form value.
func (sh *Shell) ServeToggle(w http.ResponseWriter, r *http.Request) {
	id := sh.clientID(w, r)
	mgr := sh.manager(id, nil)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var current bool
	if v := r.PostForm.Get("collapsed"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "invalid collapsed value", http.StatusBadRequest)
			return
		}
		current = parsed
	} else {
		current = mgr.Initialize(r.Context())
	}

	next := mgr.Toggle(r.Context(), current)

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(toggleResponse{Collapsed: next}); err != nil {
			sh.logger.Error("failed to encode toggle response", "error", err)
		}
		return
	}

	http.Redirect(w, r, safeReturn(r.PostForm.Get("return")), http.StatusSeeOther)
}

func (sh *Shell) manager(clientID string, root *collapse.RootElement) *collapse.Manager {
	var st store.Store
	if sh.store != nil {
		st = store.WithPrefix(sh.store, clientID)
	}

	opts := []collapse.Option{
		collapse.WithLogger(sh.logger.With("client", clientID)),
		collapse.WithFailureCounter(sh.nav.StoreFailures),
		collapse.WithListener(func(collapsed bool) {
			state := "expanded"
			if collapsed {
				state = "collapsed"
			}
			sh.nav.Toggles.Increment(state)
			sh.logger.Info("sidebar toggled", "client", clientID, "collapsed", collapsed)

			if sh.onToggle != nil {
				sh.onToggle(clientID, collapsed)
			}
		}),
	}
	if root != nil {
		opts = append(opts, collapse.WithMarker(root))
	}

	return collapse.New(sh.sessions.Get(clientID), st, opts...)
}

// clientID returns the caller's id, issuing a new cookie when the request
// carries none or an invalid one.
func (sh *Shell) clientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ClientCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(clientCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// safeReturn only allows local absolute paths.
func safeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
