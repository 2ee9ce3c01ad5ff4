package reveal

import (
	"sync"
	"time"
)

// StaggerDelay is the entrance delay added per section index.
const StaggerDelay = 100 * time.Millisecond

type tracked struct {
	node  Node
	index int
}

// Controller holds the reveal state of one rendered plan. Once the container or a section has
// been seen it stays revealed: duplicate or late notifications change nothing.
//
// The controller owns its observations: Detach and Teardown unobserve synchronously, even
// after the observer failed, and notifications about detached sections are ignored.
type Controller struct {
	obs Observer

	mu               sync.Mutex
	degraded         bool // no usable observer: everything is visible
	torn             bool
	container        Node
	containerVisible bool
	sections         map[string]tracked
	observed         map[Node]struct{} // nodes obs currently watches for us
	revealed         map[string]time.Duration
}

// NewController returns a controller observing through obs. A nil obs means the environment
// cannot observe the viewport, and everything is revealed as soon as it is attached.
func NewController(obs Observer) *Controller {
	return &Controller{
		obs:      obs,
		degraded: obs == nil,
		sections: make(map[string]tracked),
		observed: make(map[Node]struct{}),
		revealed: make(map[string]time.Duration),
	}
}

// AttachContainer starts observing the root node of the plan.
func (c *Controller) AttachContainer(node Node) {
	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return
	}
	prev := c.container
	c.container = node
	stale := c.releaseLocked(prev)
	degraded := c.degraded
	if degraded {
		c.containerVisible = true
	}
	c.mu.Unlock()

	c.unobserve(stale)
	if degraded {
		return
	}
	if err := c.obs.Observe(node, ContainerOptions, c.onContainer); err != nil {
		c.degrade()
		return
	}

	c.mu.Lock()
	current := !c.torn && c.container == node
	if current {
		c.observed[node] = struct{}{}
	}
	c.mu.Unlock()
	if !current {
		c.obs.Unobserve(node)
	}
}

// Attach starts observing the node of section id, rendered at position index.
// Attaching an id again with another node replaces the previous observation.
func (c *Controller) Attach(id string, index int, node Node) {
	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return
	}
	prev, existed := c.sections[id]
	if existed && prev.node == node {
		c.mu.Unlock()
		return
	}
	c.sections[id] = tracked{node: node, index: index}
	var stale Node
	if existed {
		stale = c.releaseLocked(prev.node)
	}
	degraded := c.degraded
	if degraded {
		c.revealLocked(id, index)
	}
	c.mu.Unlock()

	c.unobserve(stale)
	if degraded {
		return
	}
	err := c.obs.Observe(node, SectionOptions, func(e Entry) {
		if e.IsIntersecting {
			c.onSection(id, node)
		}
	})
	if err != nil {
		c.degrade()
		return
	}

	// detached or torn down while Observe ran
	c.mu.Lock()
	t, ok := c.sections[id]
	current := !c.torn && ok && t.node == node
	if current {
		c.observed[node] = struct{}{}
	}
	c.mu.Unlock()
	if !current {
		c.obs.Unobserve(node)
	}
}

// Detach stops observing section id, eg. because its node was removed.
func (c *Controller) Detach(id string) {
	c.mu.Lock()
	var stale Node
	if t, ok := c.sections[id]; ok {
		delete(c.sections, id)
		stale = c.releaseLocked(t.node)
	}
	c.mu.Unlock()

	c.unobserve(stale)
}

// Teardown stops all observations. The controller ignores any later call or notification.
func (c *Controller) Teardown() {
	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return
	}
	c.torn = true
	nodes := make([]Node, 0, len(c.observed))
	for n := range c.observed {
		nodes = append(nodes, n)
	}
	c.observed = make(map[Node]struct{})
	c.sections = make(map[string]tracked)
	c.mu.Unlock()

	for _, n := range nodes {
		c.obs.Unobserve(n)
	}
	if c.obs != nil {
		c.obs.Disconnect()
	}
}

// releaseLocked forgets node and returns it when it still has to be unobserved.
func (c *Controller) releaseLocked(node Node) Node {
	if node == nil {
		return nil
	}
	if _, ok := c.observed[node]; !ok {
		return nil
	}
	delete(c.observed, node)
	return node
}

func (c *Controller) unobserve(node Node) {
	if node != nil {
		c.obs.Unobserve(node)
	}
}

func (c *Controller) onContainer(e Entry) {
	if !e.IsIntersecting {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.torn && e.Node == c.container {
		c.containerVisible = true
	}
}

func (c *Controller) onSection(id string, node Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.torn {
		return
	}
	// ignore notifications of a detached or replaced node
	if t, ok := c.sections[id]; ok && t.node == node {
		c.revealLocked(id, t.index)
	}
}

func (c *Controller) revealLocked(id string, index int) {
	if _, ok := c.revealed[id]; ok {
		return
	}
	c.revealed[id] = time.Duration(index) * StaggerDelay
}

// degrade reveals everything when the observer turns out to be unusable.
func (c *Controller) degrade() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.degraded = true
	c.containerVisible = true
	for id, t := range c.sections {
		c.revealLocked(id, t.index)
	}
}

// ContainerVisible reports whether the plan container has been seen.
func (c *Controller) ContainerVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.containerVisible
}

// Revealed returns the stagger delay recorded when section id was first seen.
func (c *Controller) Revealed(id string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delay, ok := c.revealed[id]
	return delay, ok
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Container: c.containerVisible,
		Sections:  make(map[string]time.Duration, len(c.revealed)),
	}
	for id, d := range c.revealed {
		s.Sections[id] = d
	}
	return s
}

// Snapshot is an immutable copy of a Controller state.
type Snapshot struct {
	Container bool                     `json:"container"`
	Sections  map[string]time.Duration `json:"sections"`
}

func (s Snapshot) ContainerVisible() bool {
	return s.Container
}

func (s Snapshot) SectionRevealed(id string) (time.Duration, bool) {
	d, ok := s.Sections[id]
	return d, ok
}
