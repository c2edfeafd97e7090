package worldmap

import (
	"math"
	"slices"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"travelmap/internal/chapter"
)

// Marker sizes in canvas pixels.
const (
	CoreRadius        = 4.0
	CoreRadiusHovered = 6.0
	RingRadius        = 10.0
	PulseMinRadius    = 4.0
	PulseMaxRadius    = 12.0
	PulseMaxOpacity   = 0.6
)

// PulsePeriod is the length of one decorative pulse cycle.
const PulsePeriod = 2 * time.Second

type Marker struct {
	Chapter chapter.Chapter
	Point   orb.Point
	Visible bool // inside the crop window
	Hovered bool
}

// Panel is the info panel content for the hovered chapter.
type Panel struct {
	Name   string
	Period string
	Color  string
	Places []string
	Anchor orb.Point
}

func (m *Map) Markers() []Marker {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Marker, len(m.chapters))
	for i, ch := range m.chapters {
		ch.Places = slices.Clone(ch.Places)
		out[i] = Marker{
			Chapter: ch,
			Point:   m.points[i],
			Visible: m.visible[i],
			Hovered: i == m.hovered,
		}
	}
	return out
}

func (m *Map) index(name string) int {
	return slices.IndexFunc(m.chapters, func(c chapter.Chapter) bool { return c.Name == name })
}

// Enter makes name the hovered chapter, replacing any previous hover.
// Unknown names and markers outside the crop window are ignored.
func (m *Map) Enter(name string) bool {
	i := m.index(name)
	if i < 0 || !m.visible[i] {
		return false
	}
	m.mu.Lock()
	m.hovered = i
	m.mu.Unlock()
	return true
}

// Leave clears the hover. At most one marker is hovered, so the leaving
// marker's identity does not matter.
func (m *Map) Leave() {
	m.mu.Lock()
	m.hovered = -1
	m.mu.Unlock()
}

func (m *Map) Hovered() (chapter.Chapter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.hovered < 0 {
		return chapter.Chapter{}, false
	}
	ch := m.chapters[m.hovered]
	ch.Places = slices.Clone(ch.Places)
	return ch, true
}

// InfoPanel is derived entirely from the hover state.
func (m *Map) InfoPanel() (Panel, bool) {
	i := m.hoveredIndex()
	if i < 0 {
		return Panel{}, false
	}
	return m.panel(i), true
}

func (m *Map) hoveredIndex() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hovered
}

func (m *Map) panel(i int) Panel {
	ch := m.chapters[i]
	return Panel{
		Name:   ch.Name,
		Period: ch.Period,
		Color:  ch.Color,
		Places: slices.Clone(ch.Places),
		Anchor: m.points[i],
	}
}

// Click invokes the click handler once with the chapter name.
func (m *Map) Click(name string) bool {
	i := m.index(name)
	if i < 0 || !m.visible[i] {
		return false
	}
	if m.onClick != nil {
		m.onClick(m.chapters[i].Name)
	}
	return true
}

// MarkerAt returns the visible chapter nearest to pt within radius canvas pixels.
func (m *Map) MarkerAt(pt orb.Point, radius float64) (chapter.Chapter, bool) {
	best, bestD := -1, math.Inf(1)
	for i, p := range m.points {
		if !m.visible[i] {
			continue
		}
		if d := planar.Distance(p, pt); d <= radius && d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return chapter.Chapter{}, false
	}
	return m.chapters[best], true
}

// Pulse returns the decorative pulse radius and opacity at elapsed time t.
// Radius grows from PulseMinRadius to PulseMaxRadius and back while the
// opacity fades out and in.
func Pulse(t time.Duration) (radius, opacity float64) {
	if t < 0 {
		t = -t
	}
	phase := float64(t%PulsePeriod) / float64(PulsePeriod)
	s := (1 - math.Cos(2*math.Pi*phase)) / 2
	return PulseMinRadius + (PulseMaxRadius-PulseMinRadius)*s, PulseMaxOpacity * (1 - s)
}
