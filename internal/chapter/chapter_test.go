package chapter

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"travelmap/internal/geom"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestFlightsCount(t *testing.T) {
	p := geom.DefaultProjector()
	all := Defaults()

	for n := 0; n <= len(all); n++ {
		flights := Flights(all[:n], p)
		want := max(n-1, 0)
		if len(flights) != want {
			t.Fatalf("n=%d: expected %d flights, got %d", n, want, len(flights))
		}
		for i, f := range flights {
			if f.From != all[i].Name || f.To != all[i+1].Name {
				t.Errorf("flight %d connects %q -> %q", i, f.From, f.To)
			}
			if f.Color != all[i+1].Color {
				t.Errorf("flight %d color %q, want destination color %q", i, f.Color, all[i+1].Color)
			}
		}
	}
}

func TestFlightRadius(t *testing.T) {
	p := geom.DefaultProjector()
	lonA, latA := p.Invert(100, 100)
	lonB, latB := p.Invert(100, 200)
	chs := []Chapter{
		{Name: "A", Lon: lonA, Lat: latA, Color: "#111"},
		{Name: "B", Lon: lonB, Lat: latB, Color: "#222"},
	}

	f := Flights(chs, p)[0]
	if !near(f.Radius, 120) {
		t.Fatalf("expected radius 120, got %v", f.Radius)
	}
	if f.D != "M100,100 A120,120 0 0,1 100,200" {
		t.Errorf("unexpected path %q", f.D)
	}
	if f.ID != "flight-0" {
		t.Errorf("unexpected id %q", f.ID)
	}
}

func TestFlightSample(t *testing.T) {
	f := FlightPath{A: orb.Point{100, 100}, B: orb.Point{100, 200}, Radius: 120}
	c := f.Center()
	pts := f.Sample(16)
	if len(pts) != 16 {
		t.Fatalf("expected 16 points, got %d", len(pts))
	}
	first, last := pts[0], pts[len(pts)-1]
	if !near(first[0], 100) || !near(first[1], 100) || !near(last[0], 100) || !near(last[1], 200) {
		t.Errorf("endpoints %v, %v do not match A and B", first, last)
	}
	for _, pt := range pts {
		if d := math.Hypot(pt[0]-c[0], pt[1]-c[1]); !near(d, 120) {
			t.Fatalf("point %v is %v from center, want 120", pt, d)
		}
	}
	// positive sweep on a y-down canvas bows this arc to the east
	if mid := f.At(0.5); mid[0] <= 100 {
		t.Errorf("expected arc to bow east, midpoint %v", mid)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapters.toml")
	body := `
[[chapter]]
name = "Sicily, Italy"
lon = 14.0
lat = 37.6
period = "2018"
color = "#F59E0B"
places = ["Palermo", "Taormina"]

[[chapter]]
name = "Istanbul, Turkey"
lon = 28.9
lat = 41.0
period = "2019"
color = "#EF4444"
places = ["Kadıköy"]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	chs, err := Load(path)
	if err != nil {
		t.Fatalf("loading chapters: %v", err)
	}
	if len(chs) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chs))
	}
	if chs[0].Name != "Sicily, Italy" || len(chs[0].Places) != 2 {
		t.Errorf("unexpected first chapter %+v", chs[0])
	}
}

func TestLoadDuplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapters.toml")
	body := "[[chapter]]\nname = \"A\"\n[[chapter]]\nname = \"A\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestFindAndClone(t *testing.T) {
	chs := Defaults()
	got, err := Find(chs, "Sicily, Italy")
	if err != nil || got.Lon != chs[1].Lon {
		t.Fatalf("Find: %+v, %v", got, err)
	}
	if _, err := Find(chs, "Atlantis"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	cp := Clone(chs)
	cp[0].Places[0] = "changed"
	if chs[0].Places[0] == "changed" {
		t.Error("Clone shares place slices")
	}
}
