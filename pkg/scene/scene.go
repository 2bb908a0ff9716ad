// Package scene is an in-memory element tree for driving perch without a
// real display: command line tools, previews and tests.
//
// Rectangles are given in page coordinates. A node's Bounds subtract the
// scroll offsets of its ancestors, so scrolling a container moves its
// descendants on screen the way a browser would.
package scene

import (
	"sync"

	"github.com/zoobzio/perch"
)

// Node is one element of a scene. The root node is the viewport.
type Node struct {
	mu         sync.Mutex
	name       string
	rect       perch.Rect
	parent     *Node
	children   []*Node
	scrollable bool
	scroll     perch.Point
	removed    bool

	styles map[string]string
	attrs  map[string]string

	nextID    int
	listeners map[perch.Event]map[int]func()
}

// Interfaces a Node satisfies.
var (
	_ perch.ScrollContainer = (*Node)(nil)
	_ perch.Viewport        = (*Node)(nil)
	_ perch.Styler          = (*Node)(nil)
	_ perch.Remover         = (*Node)(nil)
)

// NewViewport creates the root of a scene.
func NewViewport(width, height float64) *Node {
	return newNode("viewport", perch.Rect{Width: width, Height: height}, nil)
}

func newNode(name string, rect perch.Rect, parent *Node) *Node {
	return &Node{
		name:      name,
		rect:      rect,
		parent:    parent,
		styles:    map[string]string{},
		attrs:     map[string]string{},
		listeners: map[perch.Event]map[int]func(){},
	}
}

// Append adds a child named name with page rectangle rect.
func (n *Node) Append(name string, rect perch.Rect) *Node {
	child := newNode(name, rect, n)
	n.mu.Lock()
	n.children = append(n.children, child)
	n.mu.Unlock()
	return child
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*Node(nil), n.children...)
}

// SetScrollable marks the node as a scroll container.
func (n *Node) SetScrollable(on bool) *Node {
	n.mu.Lock()
	n.scrollable = on
	n.mu.Unlock()
	return n
}

// Scrollable reports whether the node is a scroll container.
func (n *Node) Scrollable() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scrollable
}

// Bounds returns the node's box on screen.
func (n *Node) Bounds() perch.Rect {
	n.mu.Lock()
	r := n.rect
	p := n.parent
	n.mu.Unlock()

	for a := p; a != nil; a = a.parentNode() {
		s := a.scrollOffset()
		r = r.Translate(-s.X, -s.Y)
	}
	return r
}

// Parent returns the containing node, or nil for the root or a removed node.
func (n *Node) Parent() perch.Element {
	if p := n.parentNode(); p != nil {
		return p
	}
	return nil
}

func (n *Node) parentNode() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.parent
}

func (n *Node) scrollOffset() perch.Point {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scroll
}

// Move sets the node's page rectangle.
func (n *Node) Move(rect perch.Rect) {
	n.mu.Lock()
	n.rect = rect
	n.mu.Unlock()
}

// ScrollTo sets the scroll offset and notifies scroll listeners.
func (n *Node) ScrollTo(x, y float64) {
	n.mu.Lock()
	n.scroll = perch.Point{X: x, Y: y}
	n.mu.Unlock()
	n.Dispatch(perch.EventScroll)
}

// Resize changes the node's size and notifies resize listeners.
func (n *Node) Resize(width, height float64) {
	n.mu.Lock()
	n.rect.Width = width
	n.rect.Height = height
	n.mu.Unlock()
	n.Dispatch(perch.EventResize)
}

// Listen registers fn for event.
func (n *Node) Listen(event perch.Event, fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if n.listeners[event] == nil {
		n.listeners[event] = map[int]func(){}
	}
	n.listeners[event][id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners[event], id)
	}
}

// Dispatch calls every listener for event.
func (n *Node) Dispatch(event perch.Event) {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.listeners[event]))
	for _, fn := range n.listeners[event] {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// ListenerCount returns how many listeners are registered for event.
func (n *Node) ListenerCount(event perch.Event) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners[event])
}

// SetStyle sets a style property.
func (n *Node) SetStyle(name, value string) {
	n.mu.Lock()
	n.styles[name] = value
	n.mu.Unlock()
}

// RemoveStyle deletes a style property.
func (n *Node) RemoveStyle(name string) {
	n.mu.Lock()
	delete(n.styles, name)
	n.mu.Unlock()
}

// SetAttribute sets an attribute.
func (n *Node) SetAttribute(name, value string) {
	n.mu.Lock()
	n.attrs[name] = value
	n.mu.Unlock()
}

// RemoveAttribute deletes an attribute.
func (n *Node) RemoveAttribute(name string) {
	n.mu.Lock()
	delete(n.attrs, name)
	n.mu.Unlock()
}

// Style returns a style property.
func (n *Node) Style(name string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	v, ok := n.styles[name]
	return v, ok
}

// Styles returns a copy of the style properties.
func (n *Node) Styles() map[string]string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]string, len(n.styles))
	for k, v := range n.styles {
		out[k] = v
	}
	return out
}

// Attribute returns an attribute.
func (n *Node) Attribute(name string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	v, ok := n.attrs[name]
	return v, ok
}

// Remove detaches the node from its parent.
func (n *Node) Remove() {
	n.mu.Lock()
	p := n.parent
	n.parent = nil
	n.removed = true
	n.mu.Unlock()

	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
}

// Removed reports whether Remove was called.
func (n *Node) Removed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.removed
}

// Find returns every node in the subtree, n included, named name, in
// depth-first order.
func (n *Node) Find(name string) Selection {
	var out Selection
	if n.name == name {
		out = append(out, n)
	}
	for _, c := range n.Children() {
		out = append(out, c.Find(name)...)
	}
	return out
}

// Selection is an ordered group of nodes. It satisfies perch.Collection.
type Selection []*Node

// Len returns the number of nodes.
func (s Selection) Len() int { return len(s) }

// At returns the i-th node.
func (s Selection) At(i int) perch.Element { return s[i] }

var _ perch.Collection = Selection(nil)
