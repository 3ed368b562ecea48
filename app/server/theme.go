package server

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/tinybbs/bbs/app/enum"
	"github.com/tinybbs/bbs/app/server/internal"
	"github.com/tinybbs/bbs/app/theme"
)

// colorSchemeHint is the client hint carrying the system color scheme.
const colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

// themeResponse is the applied theme of a request.
type themeResponse struct {
	Theme     enum.Theme `json:"theme"`
	Dark      bool       `json:"dark"`
	Persisted bool       `json:"persisted"` // preference is stored, not derived from the system scheme
}

// cookieStore persists the theme preference in a response cookie.
// Reads see the request cookie until a value is written. Writes are kept until flush,
// which sends one cookie per key with the last written value.
type cookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	path   string
	values map[string]string
}

func newCookieStore(w http.ResponseWriter, r *http.Request, path string) *cookieStore {
	return &cookieStore{w: w, r: r, path: path, values: map[string]string{}}
}

// Get returns the written value or the request cookie, theme.ErrNotFound if neither is there.
func (c *cookieStore) Get(key string) (string, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	if v := internal.CookieValue(c.r, key); v != "" {
		return v, nil
	}
	return "", theme.ErrNotFound
}

// Set records the value, the cookie is sent by flush.
func (c *cookieStore) Set(key, value string) error {
	c.values[key] = value
	return nil
}

// flush writes a cookie for every key set so far. Must be called before the response body.
func (c *cookieStore) flush() {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		internal.SetCookie(c.w, k, c.values[k], c.path)
	}
}

// clientHintEnv reads the system color scheme from the request client hint.
type clientHintEnv struct {
	r *http.Request
}

// PrefersDark reports whether the client hint says dark. A missing hint means light.
func (e clientHintEnv) PrefersDark() bool {
	return strings.EqualFold(strings.Trim(e.r.Header.Get(colorSchemeHint), `" `), "dark")
}

// registerTheme adds theme endpoints to the router.
func (s *Server) registerTheme(r *routegroup.Bundle) {
	r.HandleFunc("GET /theme", s.handleThemeGet)
	r.HandleFunc("POST /theme/toggle", s.handleThemeToggle)
	r.HandleFunc("PUT /theme", s.handleThemeSet)
}

// themePage is a request scoped page with one toggle control and the controller over it.
type themePage struct {
	ctrl   *theme.Controller
	page   *theme.Page
	toggle *theme.Control
	store  *cookieStore
}

// newThemePage makes a controller over a fresh page, its store writes the response cookie.
func (s *Server) newThemePage(w http.ResponseWriter, r *http.Request) themePage {
	w.Header().Set("Accept-CH", colorSchemeHint)
	w.Header().Add("Vary", colorSchemeHint)
	w.Header().Add("Vary", "Cookie")

	page := theme.NewPage()
	toggle := page.AddControl(strings.TrimPrefix(theme.ToggleSelector, "."))
	st := newCookieStore(w, r, s.cookiePath())
	return themePage{ctrl: theme.New(page, st, clientHintEnv{r: r}), page: page, toggle: toggle, store: st}
}

// render sends the stored preference cookie and the applied theme.
func (p themePage) render(w http.ResponseWriter) {
	p.store.flush()
	rest.RenderJSON(w, themeResponse{
		Theme:     p.ctrl.Current(),
		Dark:      p.ctrl.Dark(),
		Persisted: p.ctrl.Preference().IsSet(),
	})
}

// handleThemeGet returns the theme the page would start with.
// GET /api/v1/theme
func (s *Server) handleThemeGet(w http.ResponseWriter, r *http.Request) {
	tp := s.newThemePage(w, r)
	if err := tp.ctrl.Init(); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to resolve theme")
		return
	}
	tp.render(w)
}

// handleThemeToggle flips the applied theme the way a click on the toggle control does.
// POST /api/v1/theme/toggle
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	tp := s.newThemePage(w, r)
	if err := tp.ctrl.Init(); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to resolve theme")
		return
	}
	tp.toggle.Click()
	log.Printf("[DEBUG] theme toggled to %s, root class %q", tp.ctrl.Current(), tp.page.RootClasses().String())
	tp.render(w)
}

// handleThemeSet applies and persists an explicit theme, {"theme": "dark"|"light"}.
// PUT /api/v1/theme
func (s *Server) handleThemeSet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid json")
		return
	}
	t, err := enum.ParseTheme(req.Theme)
	if err != nil || !t.IsSet() {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "theme must be dark or light")
		return
	}

	tp := s.newThemePage(w, r)
	if err := tp.ctrl.ApplyTheme(t.IsDark()); err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "failed to apply theme")
		return
	}
	tp.render(w)
}
