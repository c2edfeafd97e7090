package worldmap

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"travelmap/internal/chapter"
	"travelmap/internal/geom"
)

type staticSource struct{ topo *geom.Topology }

func (s staticSource) Load(context.Context) (*geom.Topology, error) { return s.topo, nil }

type failingSource struct{}

func (failingSource) Load(context.Context) (*geom.Topology, error) {
	return nil, errors.New("connection refused")
}

type panicSource struct{}

func (panicSource) Load(context.Context) (*geom.Topology, error) { panic("boom") }

// gatedSource ignores cancellation and returns once release is closed.
type gatedSource struct {
	release chan struct{}
	topo    *geom.Topology
}

func (s gatedSource) Load(context.Context) (*geom.Topology, error) {
	<-s.release
	return s.topo, nil
}

func sicilyTopology() *geom.Topology {
	return &geom.Topology{
		Type: "Topology",
		Arcs: [][][]float64{
			{{12, 36}, {16, 36}, {16, 39}, {12, 39}, {12, 36}},
		},
		Objects: map[string]geom.Object{
			geom.DefaultObject: {Geometries: []geom.Geometry{
				{Type: "Polygon", Arcs: json.RawMessage(`[[0]]`)},
				{Type: "Point"},
			}},
		},
	}
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("load did not finish")
	}
}

func TestHoverExclusive(t *testing.T) {
	m := New(chapter.Defaults())

	if _, ok := m.Hovered(); ok {
		t.Fatal("expected no hover initially")
	}
	m.Enter("London, UK")
	m.Enter("Sicily, Italy")

	got, ok := m.Hovered()
	if !ok || got.Name != "Sicily, Italy" {
		t.Fatalf("expected Sicily hovered, got %q (%v)", got.Name, ok)
	}
	n := 0
	for _, mk := range m.Markers() {
		if mk.Hovered {
			n++
		}
	}
	if n != 1 {
		t.Errorf("expected exactly one hovered marker, got %d", n)
	}

	m.Leave()
	if _, ok := m.Hovered(); ok {
		t.Error("expected hover cleared after leave")
	}
	if _, ok := m.InfoPanel(); ok {
		t.Error("expected no info panel without hover")
	}
}

func TestInfoPanel(t *testing.T) {
	m := New(chapter.Defaults())
	if m.Enter("Atlantis") {
		t.Fatal("expected unknown chapter to be ignored")
	}
	m.Enter("Dubai, UAE")

	p, ok := m.InfoPanel()
	if !ok {
		t.Fatal("expected info panel")
	}
	if p.Name != "Dubai, UAE" || p.Period != "2020 - 2021" || len(p.Places) != 4 {
		t.Errorf("unexpected panel %+v", p)
	}
	if p.Anchor != m.Projector().Project(55.2708, 25.2048) {
		t.Errorf("panel anchored at %v", p.Anchor)
	}
}

func TestClickCallback(t *testing.T) {
	var calls []string
	m := New(chapter.Defaults(), WithClickHandler(func(name string) { calls = append(calls, name) }))

	if !m.Click("Sicily, Italy") {
		t.Fatal("expected click to hit")
	}
	if len(calls) != 1 || calls[0] != "Sicily, Italy" {
		t.Fatalf("expected one call with %q, got %v", "Sicily, Italy", calls)
	}
	if m.Click("Atlantis") {
		t.Error("expected unknown chapter click to miss")
	}
	if len(calls) != 1 {
		t.Errorf("callback invoked for unknown chapter: %v", calls)
	}
}

func TestOutOfCropMarker(t *testing.T) {
	chs := append(chapter.Defaults(), chapter.Chapter{Name: "New York, USA", Lon: -74, Lat: 40.7, Color: "#fff"})
	clicked := 0
	m := New(chs, WithClickHandler(func(string) { clicked++ }))

	if m.Enter("New York, USA") || m.Click("New York, USA") {
		t.Error("expected out-of-crop marker to be inert")
	}
	if clicked != 0 {
		t.Errorf("callback invoked %d times", clicked)
	}
	if got := len(m.Flights()); got != len(chs)-1 {
		t.Errorf("expected %d flights, got %d", len(chs)-1, got)
	}
	p := m.Projector().Project(-74, 40.7)
	if _, ok := m.MarkerAt(p, 5); ok {
		t.Error("expected hit test to skip out-of-crop marker")
	}
}

func TestMarkerAt(t *testing.T) {
	m := New(chapter.Defaults())
	p := m.Projector().Project(14.0154, 37.5999)
	p[0] += 3

	ch, ok := m.MarkerAt(p, 5)
	if !ok || ch.Name != "Sicily, Italy" {
		t.Fatalf("expected Sicily, got %q (%v)", ch.Name, ok)
	}
	if _, ok := m.MarkerAt(p, 1); ok {
		t.Error("expected miss with small radius")
	}
}

func TestMountFailureKeepsMapUsable(t *testing.T) {
	m := New(chapter.Defaults())
	waitDone(t, m.Mount(context.Background(), failingSource{}))

	if got := m.Boundaries(); len(got) != 0 {
		t.Errorf("expected no boundaries, got %d", len(got))
	}
	if got := len(m.Markers()); got != 5 {
		t.Errorf("expected 5 markers, got %d", got)
	}
	if got := len(m.Flights()); got != 4 {
		t.Errorf("expected 4 flights, got %d", got)
	}
	if !m.Enter("Sicily, Italy") {
		t.Error("expected hover to work without boundaries")
	}
}

func TestMountRecoversPanic(t *testing.T) {
	m := New(chapter.Defaults())
	waitDone(t, m.Mount(context.Background(), panicSource{}))
	if len(m.Boundaries()) != 0 {
		t.Error("expected no boundaries after panic")
	}
}

func TestMountDecodes(t *testing.T) {
	m := New(chapter.Defaults())
	waitDone(t, m.Mount(context.Background(), staticSource{sicilyTopology()}))

	paths := m.Boundaries()
	if len(paths) != 1 {
		t.Fatalf("expected 1 boundary, got %d", len(paths))
	}
	if !strings.HasSuffix(paths[0], " Z") {
		t.Errorf("expected closed path, got %q", paths[0])
	}
	if rings := m.Rings(); len(rings) != 1 || len(rings[0]) != 5 {
		t.Errorf("unexpected rings %v", rings)
	}
	geo := m.Geography()
	if len(geo.Rings) != 1 || geo.Skipped != 1 || geo.Bound.Min != (orb.Point{12, 36}) {
		t.Errorf("unexpected geography %+v", geo)
	}
}

func TestUnmountDiscardsLateResult(t *testing.T) {
	m := New(chapter.Defaults())
	src := gatedSource{release: make(chan struct{}), topo: sicilyTopology()}

	done := m.Mount(context.Background(), src)
	m.Unmount()
	close(src.release)
	waitDone(t, done)

	if got := m.Boundaries(); len(got) != 0 {
		t.Errorf("expected late result discarded, got %d boundaries", len(got))
	}
}

func TestRemountDiscardsStaleLoad(t *testing.T) {
	m := New(chapter.Defaults())
	stale := gatedSource{release: make(chan struct{}), topo: sicilyTopology()}

	first := m.Mount(context.Background(), stale)
	waitDone(t, m.Mount(context.Background(), failingSource{}))
	close(stale.release)
	waitDone(t, first)

	if got := m.Boundaries(); len(got) != 0 {
		t.Errorf("expected stale load discarded, got %d boundaries", len(got))
	}
}

func TestPulse(t *testing.T) {
	r, o := Pulse(0)
	if r != PulseMinRadius || o != PulseMaxOpacity {
		t.Errorf("Pulse(0) = %v, %v", r, o)
	}
	r, o = Pulse(PulsePeriod / 2)
	if r != PulseMaxRadius || o > 1e-9 {
		t.Errorf("Pulse(half) = %v, %v", r, o)
	}
	r2, _ := Pulse(PulsePeriod + PulsePeriod/2)
	if r2 != r {
		t.Errorf("pulse is not periodic: %v vs %v", r2, r)
	}
}

func TestWriteSVG(t *testing.T) {
	m := New(chapter.Defaults())
	waitDone(t, m.Mount(context.Background(), staticSource{sicilyTopology()}))
	m.Enter("Sicily, Italy")

	var b strings.Builder
	if err := m.WriteSVG(&b, DefaultSVGOptions()); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := b.String()

	checks := []string{
		`viewBox="458.33 69.44 319.44 152.78"`,
		`<g class="countries"`,
		`id="flight-0"`,
		`id="flight-3"`,
		`data-name="Sicily, Italy"`,
		`class="hover-ring"`,
		`attributeName="stroke-dashoffset"`,
		`<text x="7"`,
		`Taormina`,
	}
	for _, c := range checks {
		if !strings.Contains(out, c) {
			t.Errorf("svg missing %q", c)
		}
	}
	if n := strings.Count(out, `class="marker"`); n != 5 {
		t.Errorf("expected 5 markers, got %d", n)
	}
	if n := strings.Count(out, `class="hover-ring"`); n != 1 {
		t.Errorf("expected 1 hover ring, got %d", n)
	}
}

func TestWriteSVGStatic(t *testing.T) {
	m := New(chapter.Defaults())
	opt := DefaultSVGOptions()
	opt.Animate = false
	opt.Width = 800

	var b strings.Builder
	if err := m.WriteSVG(&b, opt); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := b.String()
	if strings.Contains(out, "<animate") {
		t.Error("expected no animations")
	}
	if !strings.Contains(out, `width="800"`) {
		t.Error("expected width attribute")
	}
	if strings.Contains(out, `class="info"`) {
		t.Error("expected no info panel without hover")
	}
}

func TestWriteSVGHoverOverride(t *testing.T) {
	m := New(chapter.Defaults())
	m.Enter("London, UK")
	opt := DefaultSVGOptions()
	opt.Hover = "Dubai, UAE"

	var b strings.Builder
	if err := m.WriteSVG(&b, opt); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Deira") || strings.Contains(out, "Camden") {
		t.Error("expected the override chapter's panel only")
	}
	if ch, _ := m.Hovered(); ch.Name != "London, UK" {
		t.Errorf("override changed hover state to %q", ch.Name)
	}

	opt.Hover = "Atlantis"
	if err := m.WriteSVG(&b, opt); !errors.Is(err, chapter.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
