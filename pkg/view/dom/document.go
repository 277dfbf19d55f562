//go:build js && wasm

package dom

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/goliatone/go-formsubmit/pkg/view"
)

const (
	// DefaultStatusID addresses the status slot.
	DefaultStatusID = "message"
	// DefaultSubmitID addresses the submit control.
	DefaultSubmitID = "submit"
)

// Document implements view.View and view.Trigger over the global document.
type Document struct {
	doc      js.Value
	statusID string
	submitID string

	mu    sync.Mutex
	funcs []js.Func
}

var (
	_ view.View    = (*Document)(nil)
	_ view.Trigger = (*Document)(nil)
)

// Option configures a Document.
type Option func(*Document)

// WithStatusID overrides the id of the status element.
func WithStatusID(id string) Option {
	return func(d *Document) {
		if id != "" {
			d.statusID = id
		}
	}
}

// WithSubmitID overrides the id of the submit control.
func WithSubmitID(id string) Option {
	return func(d *Document) {
		if id != "" {
			d.submitID = id
		}
	}
}

// New wraps the page's global document.
func New(options ...Option) *Document {
	d := &Document{
		doc:      js.Global().Get("document"),
		statusID: DefaultStatusID,
		submitID: DefaultSubmitID,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// FieldValue implements view.View.
func (d *Document) FieldValue(name string) (string, error) {
	el, err := d.element(name, view.ErrFieldNotFound)
	if err != nil {
		return "", err
	}
	return el.Get("value").String(), nil
}

// SetFieldValue implements view.View.
func (d *Document) SetFieldValue(name, value string) error {
	el, err := d.element(name, view.ErrFieldNotFound)
	if err != nil {
		return err
	}
	el.Set("value", value)
	return nil
}

// SetStatus implements view.View.
func (d *Document) SetStatus(text string) error {
	el, err := d.element(d.statusID, view.ErrStatusNotFound)
	if err != nil {
		return err
	}
	el.Set("textContent", text)
	return nil
}

// OnSubmit attaches handler to the submit control's click event. The
// handler runs on its own goroutine: network calls block, and blocking
// inside a js.Func callback deadlocks the event loop.
func (d *Document) OnSubmit(handler func()) {
	if handler == nil {
		return
	}
	el, err := d.element(d.submitID, view.ErrFieldNotFound)
	if err != nil {
		js.Global().Get("console").Call("error", err.Error())
		return
	}
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		go handler()
		return nil
	})
	d.mu.Lock()
	d.funcs = append(d.funcs, fn)
	d.mu.Unlock()
	el.Call("addEventListener", "click", fn)
}

// Has reports whether the page has an element with id.
func (d *Document) Has(id string) bool {
	el := d.doc.Call("getElementById", id)
	return !el.IsNull() && !el.IsUndefined()
}

// Ready calls fn once the document has finished parsing. If that already
// happened fn runs immediately.
func (d *Document) Ready(fn func()) {
	if d.doc.Get("readyState").String() != "loading" {
		fn()
		return
	}
	var once sync.Once
	var listener js.Func
	listener = js.FuncOf(func(this js.Value, args []js.Value) any {
		once.Do(func() {
			d.doc.Call("removeEventListener", "DOMContentLoaded", listener)
			fn()
		})
		return nil
	})
	d.doc.Call("addEventListener", "DOMContentLoaded", listener)
}

func (d *Document) element(id string, notFound error) (js.Value, error) {
	el := d.doc.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return js.Value{}, fmt.Errorf("%w: #%s", notFound, id)
	}
	return el, nil
}
