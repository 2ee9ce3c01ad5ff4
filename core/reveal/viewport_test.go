package reveal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afthonios/catalog/core/plan"
)

type box struct {
	top, height float64
}

func (b *box) Bounds() (float64, float64) { return b.top, b.height }

var _ plan.RevealView = Snapshot{}

func TestViewport_Scroll(t *testing.T) {
	vp := NewViewport(800)
	c := NewController(vp)

	c.AttachContainer(&box{0, 2400})
	c.Attach("section-0", 0, &box{0, 400})
	c.Attach("section-1", 1, &box{900, 400})
	c.Attach("section-2", 2, &box{1800, 400})
	assert.Equal(t, 4, vp.Observed())

	revealed := func() []string {
		var ids []string
		for _, id := range []string{"section-0", "section-1", "section-2"} {
			if _, ok := c.Revealed(id); ok {
				ids = append(ids, id)
			}
		}
		return ids
	}

	assert.True(t, c.ContainerVisible())
	assert.Equal(t, []string{"section-0"}, revealed())

	vp.ScrollTo(700)
	assert.Equal(t, []string{"section-0", "section-1"}, revealed())

	vp.ScrollTo(0)
	assert.Equal(t, []string{"section-0", "section-1"}, revealed(), "leaving the viewport keeps sections revealed")

	// 50px of the last section are visible: below the threshold
	vp.ScrollTo(1100)
	assert.Equal(t, []string{"section-0", "section-1"}, revealed())

	vp.ScrollTo(1200)
	assert.Equal(t, []string{"section-0", "section-1", "section-2"}, revealed())

	delay, _ := c.Revealed("section-2")
	assert.Equal(t, 2*StaggerDelay, delay)

	c.Teardown()
	assert.Equal(t, 0, vp.Observed())
}

func TestViewport_ContainerMargin(t *testing.T) {
	vp := NewViewport(800)
	c := NewController(vp)

	// the bottom 100px of the viewport do not count for the container
	c.AttachContainer(&box{750, 1000})
	assert.False(t, c.ContainerVisible())

	vp.ScrollTo(300)
	assert.True(t, c.ContainerVisible())
}

func TestViewport_Unsupported(t *testing.T) {
	vp := NewViewport(800)
	c := NewController(vp)

	c.Attach("section-0", 0, "not a box")
	_, ok := c.Revealed("section-0")
	assert.True(t, ok)
	assert.True(t, c.ContainerVisible())
}

func TestViewport_RenderHTML(t *testing.T) {
	tree := plan.Render(plan.Input{
		PlanMD: "### Discover\na) one\n### Learn\na) two\n### Anchor\na) three",
		Locale: plan.EN,
	})
	require.Len(t, tree.Sections, 3)

	vp := NewViewport(600)
	c := NewController(vp)
	c.AttachContainer(&box{0, 1500})
	for i, s := range tree.Sections {
		c.Attach(s.ID, s.Index, &box{float64(i) * 500, 300})
	}

	render := func() string {
		var buf bytes.Buffer
		require.NoError(t, plan.RenderHTML(&buf, tree, c.Snapshot()))
		return buf.String()
	}

	out := render()
	assert.Equal(t, 1, strings.Count(out, "is-revealed"))

	vp.ScrollTo(400)
	vp.ScrollTo(1000)
	out = render()
	assert.Equal(t, 3, strings.Count(out, "is-revealed"))
	assert.Contains(t, out, `is-revealed" aria-label="Anchor: practice and memorize" style="--reveal-delay: 200ms">`)

	snap := c.Snapshot()
	assert.Equal(t, map[string]time.Duration{
		"section-0": 0,
		"section-1": StaggerDelay,
		"section-2": 2 * StaggerDelay,
	}, snap.Sections)
}

type flat struct{ name string }

func TestViewport_DegradedCleanup(t *testing.T) {
	vp := NewViewport(800)
	c := NewController(vp)

	c.AttachContainer(&box{0, 2400})
	c.Attach("section-0", 0, &box{0, 400})
	c.Attach("section-1", 1, &flat{"1"})
	assert.Equal(t, 2, vp.Observed())

	_, ok := c.Revealed("section-1")
	assert.True(t, ok, "a node the viewport cannot lay out is revealed")

	c.Detach("section-0")
	assert.Equal(t, 1, vp.Observed())

	c.Teardown()
	assert.Equal(t, 0, vp.Observed())
}
