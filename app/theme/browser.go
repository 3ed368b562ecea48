//go:build js && wasm

package theme

import (
	"fmt"
	"syscall/js"
)

// LocalStorage is a Store on window.localStorage.
type LocalStorage struct {
	storage js.Value
}

// NewLocalStorage binds to window.localStorage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{storage: js.Global().Get("localStorage")}
}

// Get returns the stored item or ErrNotFound.
func (s *LocalStorage) Get(key string) (string, error) {
	v := s.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", ErrNotFound
	}
	return v.String(), nil
}

// Set stores the item. A quota or privacy-mode exception surfaces as an error.
func (s *LocalStorage) Set(key, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage.setItem: %v", r)
		}
	}()
	s.storage.Call("setItem", key, value)
	return nil
}

// BrowserDocument is a Document on window.document.
// Callbacks it registers live as long as the page.
type BrowserDocument struct {
	doc js.Value
}

// NewBrowserDocument binds to window.document.
func NewBrowserDocument() *BrowserDocument {
	return &BrowserDocument{doc: js.Global().Get("document")}
}

// Root returns the classList of document.documentElement.
func (d *BrowserDocument) Root() ClassList {
	return jsClassList{v: d.doc.Get("documentElement").Get("classList")}
}

// QueryAll runs document.querySelectorAll.
func (d *BrowserDocument) QueryAll(selector string) []Element {
	nodes := d.doc.Call("querySelectorAll", selector)
	n := nodes.Length()
	res := make([]Element, 0, n)
	for i := range n {
		res = append(res, &jsElement{v: nodes.Index(i), owner: d})
	}
	return res
}

// OnReady subscribes to DOMContentLoaded, or runs fn right away if the content is already parsed.
func (d *BrowserDocument) OnReady(fn func()) {
	if d.doc.Get("readyState").String() != "loading" {
		fn()
		return
	}
	d.listen(d.doc, "DOMContentLoaded", fn)
}

func (d *BrowserDocument) listen(target js.Value, event string, fn func()) {
	f := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	target.Call("addEventListener", event, f)
}

type jsElement struct {
	v     js.Value
	owner *BrowserDocument
}

func (e *jsElement) OnClick(fn func()) { e.owner.listen(e.v, "click", fn) }

type jsClassList struct {
	v js.Value
}

func (c jsClassList) Add(class string)    { c.v.Call("add", class) }
func (c jsClassList) Remove(class string) { c.v.Call("remove", class) }
func (c jsClassList) Contains(class string) bool {
	return c.v.Call("contains", class).Bool()
}

// MediaEnv answers PrefersDark with the prefers-color-scheme media query.
type MediaEnv struct{}

// PrefersDark is false when matchMedia is unavailable.
func (MediaEnv) PrefersDark() bool {
	mm := js.Global().Get("matchMedia")
	if mm.IsUndefined() || mm.IsNull() {
		return false
	}
	return js.Global().Call("matchMedia", "(prefers-color-scheme: dark)").Get("matches").Bool()
}
