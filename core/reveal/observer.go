// Package reveal tracks which parts of a rendered course plan have entered the viewport,
// to play their entrance animation once.
package reveal

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnsupported is returned by observers that cannot watch the viewport in their environment.
var ErrUnsupported = errors.New("viewport observation not supported")

type (
	// Node is an opaque handle on a rendered element, only meaningful to the Observer.
	// Nodes are compared with ==, so they must be comparable (typically pointers).
	Node interface{}

	// Options mirror the intersection observer options of browsers.
	Options struct {
		Threshold  float64 // visible fraction of the node required to intersect
		RootMargin string  // CSS margin applied to the viewport, eg. "0px 0px -100px 0px"
	}

	// Entry is one intersection notification.
	Entry struct {
		Node           Node
		IsIntersecting bool
		Ratio          float64
	}

	// Callback receives the entries of an observed node. It may be called from any goroutine.
	Callback func(Entry)

	// Observer is the viewport observation capability of the host environment.
	Observer interface {
		Observe(node Node, opts Options, fn Callback) error
		Unobserve(node Node)
		Disconnect()
	}
)

var (
	ContainerOptions = Options{Threshold: 0.1, RootMargin: "0px 0px -100px 0px"}
	SectionOptions   = Options{Threshold: 0.3, RootMargin: "0px 0px -50px 0px"}
)

// Margins are the top, right, bottom and left margins in pixels.
type Margins [4]float64

// ParseRootMargin parses a CSS-like margin list of 1 to 4 pixel values.
// Malformed values count as 0.
func ParseRootMargin(s string) Margins {
	fields := strings.Fields(s)
	vals := make([]float64, 0, 4)
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		if err != nil {
			v = 0
		}
		vals = append(vals, v)
	}
	switch len(vals) {
	case 1:
		return Margins{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		return Margins{vals[0], vals[1], vals[0], vals[1]}
	case 3:
		return Margins{vals[0], vals[1], vals[2], vals[1]}
	case 4:
		return Margins{vals[0], vals[1], vals[2], vals[3]}
	default:
		return Margins{}
	}
}

// alwaysVisible reports every observed node as fully visible right away.
type alwaysVisible struct{}

// AlwaysVisible is the observer of environments without a viewport, eg. server side rendering.
var AlwaysVisible Observer = alwaysVisible{}

func (alwaysVisible) Observe(node Node, _ Options, fn Callback) error {
	fn(Entry{Node: node, IsIntersecting: true, Ratio: 1})
	return nil
}

func (alwaysVisible) Unobserve(Node) {}
func (alwaysVisible) Disconnect()    {}
