package theme

import (
	"slices"
	"strings"
	"sync"
)

// Page is an in-memory Document. Controls are added with AddControl and activated with Click.
type Page struct {
	root *Classes

	mu       sync.Mutex
	controls []*Control
	ready    bool
	onReady  []func()
}

// NewPage makes an empty page, not yet ready.
func NewPage() *Page {
	return &Page{root: NewClasses()}
}

// AddControl appends an element with the given classes to the page.
func (p *Page) AddControl(classes ...string) *Control {
	ctl := &Control{classes: NewClasses(classes...)}
	p.mu.Lock()
	p.controls = append(p.controls, ctl)
	p.mu.Unlock()
	return ctl
}

// Root returns the class list of the root element.
func (p *Page) Root() ClassList { return p.root }

// RootClasses returns the root class set, for inspection.
func (p *Page) RootClasses() *Classes { return p.root }

// QueryAll returns the controls matching a class selector like ".theme-toggle".
// Other selector forms match nothing.
func (p *Page) QueryAll(selector string) []Element {
	class, ok := strings.CutPrefix(selector, ".")
	if !ok || class == "" || strings.ContainsAny(class, " .#[>:") {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	var res []Element
	for _, ctl := range p.controls {
		if ctl.classes.Contains(class) {
			res = append(res, ctl)
		}
	}
	return res
}

// OnReady registers fn to run once the page is ready. On a ready page fn runs immediately.
func (p *Page) OnReady(fn func()) {
	p.mu.Lock()
	if p.ready {
		p.mu.Unlock()
		fn()
		return
	}
	p.onReady = append(p.onReady, fn)
	p.mu.Unlock()
}

// Ready marks the page content as available and runs pending ready callbacks in registration order.
func (p *Page) Ready() {
	p.mu.Lock()
	if p.ready {
		p.mu.Unlock()
		return
	}
	p.ready = true
	pending := p.onReady
	p.onReady = nil
	p.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Control is an element of a Page.
type Control struct {
	classes *Classes

	mu       sync.Mutex
	handlers []func()
}

// OnClick subscribes fn to clicks on the control.
func (c *Control) OnClick(fn func()) {
	c.mu.Lock()
	c.handlers = append(c.handlers, fn)
	c.mu.Unlock()
}

// Click runs the click handlers of the control, each to completion.
func (c *Control) Click() {
	c.mu.Lock()
	handlers := slices.Clone(c.handlers)
	c.mu.Unlock()
	for _, fn := range handlers {
		fn()
	}
}

// Classes is a concurrency-safe class set.
type Classes struct {
	mu  sync.RWMutex
	set map[string]struct{}
}

// NewClasses makes a class set with the given classes.
func NewClasses(classes ...string) *Classes {
	c := &Classes{set: make(map[string]struct{}, len(classes))}
	for _, cl := range classes {
		c.set[cl] = struct{}{}
	}
	return c
}

// Add adds the class, no-op if present.
func (c *Classes) Add(class string) {
	c.mu.Lock()
	c.set[class] = struct{}{}
	c.mu.Unlock()
}

// Remove removes the class, no-op if absent.
func (c *Classes) Remove(class string) {
	c.mu.Lock()
	delete(c.set, class)
	c.mu.Unlock()
}

// Contains reports whether the class is present.
func (c *Classes) Contains(class string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.set[class]
	return ok
}

// String returns the classes sorted and space separated, like a class attribute.
func (c *Classes) String() string {
	c.mu.RLock()
	res := make([]string, 0, len(c.set))
	for cl := range c.set {
		res = append(res, cl)
	}
	c.mu.RUnlock()
	slices.Sort(res)
	return strings.Join(res, " ")
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemStore makes an empty store.
func NewMemStore() *MemStore {
	return &MemStore{data: map[string]string{}}
}

// Get returns the value for key or ErrNotFound.
func (m *MemStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set overwrites the value for key.
func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

// StaticEnv is an Environment with a fixed answer.
type StaticEnv bool

// PrefersDark returns the fixed answer.
func (e StaticEnv) PrefersDark() bool { return bool(e) }
