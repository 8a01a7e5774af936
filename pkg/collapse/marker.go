package collapse

import (
	"sort"
	"sync"
)

// MarkerAttr is the root element attribute present while the panel is
// collapsed. Static stylesheets key the initial layout off it.
const MarkerAttr = "data-sidebar-collapsed"

// Marker is the document root element as seen by the collapse manager.
type Marker interface {
	SetAttr(name, value string)
	RemoveAttr(name string)
}

// Attr is a single root element attribute.
type Attr struct {
	Name  string
	Value string
}

// RootElement is an in-memory attribute set for the <html> element of one
// rendered document.
type RootElement struct {
	mu    sync.Mutex
	attrs map[string]string
}

// NewRootElement returns a root element with no attributes.
func NewRootElement() *RootElement {
	return &RootElement{attrs: make(map[string]string)}
}

func (r *RootElement) SetAttr(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attrs[name] = value
}

func (r *RootElement) RemoveAttr(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.attrs, name)
}

// Attr returns the value of name and whether it is set.
func (r *RootElement) Attr(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.attrs[name]
	return v, ok
}

// Attrs returns the attributes sorted by name.
func (r *RootElement) Attrs() []Attr {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Attr, 0, len(r.attrs))
	for k, v := range r.attrs {
		out = append(out, Attr{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
