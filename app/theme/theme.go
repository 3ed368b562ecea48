// Package theme implements the dark/light presentation switch of a page.
// The controller reads the persisted preference, marks the document root with
// the dark marker class and wires toggle controls that flip and re-persist it.
// The document, the store and the environment are injected, so the same
// controller runs in the browser (see browser.go), on the server per request,
// and in tests against the in-memory Page.
package theme

import (
	"errors"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/tinybbs/bbs/app/enum"
)

const (
	// StorageKey is the key the preference is persisted under.
	StorageKey = "bbs_theme"
	// MarkerClass is the root element class signaling dark mode.
	MarkerClass = "dark"
	// ToggleSelector selects the toggle controls of a page.
	ToggleSelector = ".theme-toggle"
)

// ErrNotFound is returned by a Store when the key has no value.
var ErrNotFound = errors.New("preference not set")

// Store is a key-value store scoped to the origin.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// ClassList is the class set of an element.
type ClassList interface {
	Add(class string)
	Remove(class string)
	Contains(class string) bool
}

// Element is an interactive element of the document.
type Element interface {
	OnClick(fn func())
}

// Document is the page the controller operates on.
type Document interface {
	Root() ClassList
	QueryAll(selector string) []Element
	OnReady(fn func())
}

// Environment exposes the system color scheme preference.
type Environment interface {
	PrefersDark() bool
}

// Controller keeps the applied theme of a document in sync with the persisted preference.
type Controller struct {
	doc   Document
	store Store
	env   Environment
}

// New makes a controller for the document. Nothing happens until Start or Init is called.
func New(doc Document, st Store, env Environment) *Controller {
	return &Controller{doc: doc, store: st, env: env}
}

// Start schedules Init for the moment the document content is ready.
func (c *Controller) Start() {
	c.doc.OnReady(func() {
		if err := c.Init(); err != nil {
			log.Printf("[WARN] theme init failed: %v", err)
		}
	})
}

// Init attaches click handlers to all toggle controls and applies the initial theme.
// A page without toggle controls is fine, the initial theme is applied anyway.
func (c *Controller) Init() error {
	controls := c.doc.QueryAll(ToggleSelector)
	for _, el := range controls {
		el.OnClick(c.handleClick)
	}
	log.Printf("[DEBUG] theme controller attached to %d toggle control(s)", len(controls))
	return c.resolve()
}

// Dark reports whether dark mode is applied. It reads the root class and nothing else.
func (c *Controller) Dark() bool {
	return c.doc.Root().Contains(MarkerClass)
}

// Current returns the applied theme, always light or dark.
func (c *Controller) Current() enum.Theme {
	return enum.ThemeFromDark(c.Dark())
}

// Toggle applies the opposite of the currently applied theme.
func (c *Controller) Toggle() error {
	return c.ApplyTheme(c.Current().Toggle().IsDark())
}

// ApplyTheme marks the root for the given mode and persists it, overwriting any prior value.
func (c *Controller) ApplyTheme(dark bool) error {
	c.mark(dark)
	value := enum.ThemeFromDark(dark).String()
	if err := c.store.Set(StorageKey, value); err != nil {
		return fmt.Errorf("failed to persist theme %q: %w", value, err)
	}
	return nil
}

// Preference returns the persisted preference, or enum.ThemeSystem when nothing usable is stored.
func (c *Controller) Preference() enum.Theme {
	v, err := c.store.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[WARN] failed to read theme preference: %v", err)
		}
		return enum.ThemeSystem
	}
	switch v {
	case enum.ThemeDark.String():
		return enum.ThemeDark
	case enum.ThemeLight.String():
		return enum.ThemeLight
	default:
		return enum.ThemeSystem
	}
}

// resolve applies the stored preference, falling back to the system one.
// The fallback is applied without being persisted.
func (c *Controller) resolve() error {
	switch pref := c.Preference(); pref {
	case enum.ThemeDark, enum.ThemeLight:
		return c.ApplyTheme(pref.IsDark())
	default:
		c.mark(c.env.PrefersDark())
		return nil
	}
}

func (c *Controller) handleClick() {
	if err := c.Toggle(); err != nil {
		log.Printf("[WARN] theme toggle: %v", err)
	}
}

func (c *Controller) mark(dark bool) {
	if dark {
		c.doc.Root().Add(MarkerClass)
		return
	}
	c.doc.Root().Remove(MarkerClass)
}
