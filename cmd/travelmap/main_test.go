package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb/geojson"
)

const testTopology = `{"type":"Topology",
"arcs":[[[12,36],[16,36],[16,39],[12,39],[12,36]]],
"objects":{"countries":{"type":"GeometryCollection","geometries":[
{"type":"Polygon","arcs":[[0]]},{"type":"LineString","arcs":[0]}]}}}`

// setup writes a config pointing at a local topology file.
func setup(t *testing.T) (dir, configFile string) {
	t.Helper()
	dir = t.TempDir()
	topo := filepath.Join(dir, "world.json")
	if err := os.WriteFile(topo, []byte(testTopology), 0o644); err != nil {
		t.Fatal(err)
	}
	configFile = filepath.Join(dir, "travelmap.toml")
	body := "[topology]\nfile = " + `"` + filepath.ToSlash(topo) + `"` + "\n[log]\nlevel = \"error\"\n"
	if err := os.WriteFile(configFile, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, configFile
}

func run(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("travelmap %s: %v", strings.Join(args, " "), err)
	}
}

func TestRender(t *testing.T) {
	dir, conf := setup(t)
	out := filepath.Join(dir, "map.svg")
	run(t, "render", "--config", conf, "--out", out, "--static", "--hover", "Sicily, Italy")

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	for _, want := range []string{"<svg", `<path d="M`, `data-name="Sicily, Italy"`, "hover-ring"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(svg, "<animate") {
		t.Error("expected static output")
	}
}

func TestExport(t *testing.T) {
	dir, conf := setup(t)
	out := filepath.Join(dir, "countries.geojson")
	run(t, "export", "--config", conf, "--out", out)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Errorf("expected 1 feature, got %d", len(fc.Features))
	}
}

func TestBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "travelmap.toml")
	if err := os.WriteFile(conf, []byte("[log]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rootCmd.SetArgs([]string{"render", "--config", conf, "--out", filepath.Join(dir, "x.svg")})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected log level error")
	}
}
