package reveal

import "sync"

// Box is a node laid out vertically on a page, in pixels.
type Box interface {
	Bounds() (top, height float64)
}

type viewportTarget struct {
	box          Box
	opts         Options
	fn           Callback
	intersecting bool
}

// Viewport is an Observer over a simulated scrolling viewport. It notifies a node when it is
// first observed and then whenever scrolling makes it enter or leave the viewport.
// Observed nodes must implement Box.
type Viewport struct {
	mu      sync.Mutex
	height  float64
	scrollY float64
	targets map[Node]*viewportTarget
	order   []Node // observation order, to notify deterministically
}

var _ Observer = (*Viewport)(nil)

func NewViewport(height float64) *Viewport {
	return &Viewport{
		height:  height,
		targets: make(map[Node]*viewportTarget),
	}
}

func (v *Viewport) Observe(node Node, opts Options, fn Callback) error {
	box, ok := node.(Box)
	if !ok {
		return ErrUnsupported
	}
	v.mu.Lock()
	t := &viewportTarget{box: box, opts: opts, fn: fn}
	if _, exists := v.targets[node]; !exists {
		v.order = append(v.order, node)
	}
	v.targets[node] = t
	entry := v.entryLocked(node, t)
	t.intersecting = entry.IsIntersecting
	v.mu.Unlock()

	fn(entry)
	return nil
}

func (v *Viewport) Unobserve(node Node) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.targets[node]; !ok {
		return
	}
	delete(v.targets, node)
	for i, n := range v.order {
		if n == node {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

func (v *Viewport) Disconnect() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.targets = make(map[Node]*viewportTarget)
	v.order = nil
}

// Observed returns the number of observed nodes.
func (v *Viewport) Observed() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.targets)
}

// ScrollTo moves the top of the viewport to y and notifies the nodes whose intersection changed.
func (v *Viewport) ScrollTo(y float64) {
	type notification struct {
		fn    Callback
		entry Entry
	}

	v.mu.Lock()
	v.scrollY = y
	var pending []notification
	for _, node := range v.order {
		t := v.targets[node]
		entry := v.entryLocked(node, t)
		if entry.IsIntersecting != t.intersecting {
			t.intersecting = entry.IsIntersecting
			pending = append(pending, notification{t.fn, entry})
		}
	}
	v.mu.Unlock()

	for _, n := range pending {
		n.fn(n.entry)
	}
}

func (v *Viewport) entryLocked(node Node, t *viewportTarget) Entry {
	m := ParseRootMargin(t.opts.RootMargin)
	rootTop := v.scrollY - m[0]
	rootBottom := v.scrollY + v.height + m[2]

	top, height := t.box.Bounds()
	bottom := top + height
	overlap := minFloat(bottom, rootBottom) - maxFloat(top, rootTop)

	var ratio float64
	switch {
	case height <= 0:
		if top >= rootTop && top <= rootBottom {
			ratio = 1
		}
	case overlap > 0:
		ratio = overlap / height
	}
	return Entry{
		Node:           node,
		IsIntersecting: ratio > 0 && ratio >= t.opts.Threshold,
		Ratio:          ratio,
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
