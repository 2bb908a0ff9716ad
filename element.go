package perch

// Element is a visual element that can be measured.
type Element interface {
	// Bounds returns the element's border box in viewport coordinates.
	Bounds() Rect

	// Parent returns the containing element, or nil at the root.
	Parent() Element
}

// ScrollContainer is an element whose content can scroll. Scrolling one of
// the reference's scroll containers moves the reference on screen.
type ScrollContainer interface {
	Element
	Scrollable() bool
}

// Event names a notification an EventTarget can deliver.
type Event string

// Events the reactivity layer listens for.
const (
	EventScroll Event = "scroll"
	EventResize Event = "resize"
)

// EventTarget delivers events to listeners.
type EventTarget interface {
	// Listen registers fn for event and returns a function that removes it.
	Listen(event Event, fn func()) (remove func())
}

// Viewport is the visible region. Its bounds are the default positioning
// boundaries and it delivers resize events.
type Viewport interface {
	Element
	EventTarget
}

// Styler accepts presentation changes.
type Styler interface {
	SetStyle(name, value string)
	RemoveStyle(name string)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
}

// Remover is implemented by elements that can detach themselves.
type Remover interface {
	Remove()
}

// Collection is an ordered group of elements, such as a query result.
type Collection interface {
	Len() int
	At(i int) Element
}

// Ref is how callers hand an element to New: either the element itself or a
// collection whose first element is used.
type Ref struct {
	direct     Element
	collection Collection
}

// Direct refers to e itself.
func Direct(e Element) Ref {
	return Ref{direct: e}
}

// FromCollection refers to the first element of c.
func FromCollection(c Collection) Ref {
	return Ref{collection: c}
}

// Element resolves the reference to a single element.
// It returns ErrNoElement when nothing usable was supplied.
func (r Ref) Element() (Element, error) {
	if r.direct != nil {
		return r.direct, nil
	}
	if r.collection != nil && r.collection.Len() > 0 {
		if e := r.collection.At(0); e != nil {
			return e, nil
		}
	}
	return nil, ErrNoElement
}

// ScrollParents walks from el to the root and returns every scrollable
// ancestor, nearest first. The topmost ancestor is appended when it is a
// Viewport, since scrolling the page moves everything in it.
func ScrollParents(el Element) []Element {
	var (
		out  []Element
		last Element
	)
	if el == nil {
		return nil
	}
	for p := el.Parent(); p != nil; p = p.Parent() {
		last = p
		if sc, ok := p.(ScrollContainer); ok && sc.Scrollable() {
			out = append(out, p)
		}
	}
	if vp, ok := last.(Viewport); ok && !containsElement(out, vp) {
		out = append(out, vp)
	}
	return out
}

// viewportOf returns the topmost ancestor of el that is a Viewport.
func viewportOf(el Element) Viewport {
	var found Viewport
	for p := el; p != nil; p = p.Parent() {
		if vp, ok := p.(Viewport); ok {
			found = vp
		}
	}
	return found
}

func containsElement(list []Element, el Element) bool {
	for _, e := range list {
		if e == el {
			return true
		}
	}
	return false
}
