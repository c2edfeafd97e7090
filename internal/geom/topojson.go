package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrUnsupportedGeometry marks geometry types the decoder does not draw.
var ErrUnsupportedGeometry = errors.New("unsupported geometry type")

// Transform dequantizes delta-encoded arc positions.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Geometry references arcs by signed index; a negative index i means arc ^i reversed.
type Geometry struct {
	Type       string          `json:"type"`
	ID         any             `json:"id,omitempty"`
	Arcs       json.RawMessage `json:"arcs,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type Object struct {
	Type       string     `json:"type"`
	Geometries []Geometry `json:"geometries"`
}

// Topology is a TopoJSON document.
type Topology struct {
	Type      string            `json:"type"`
	Transform *Transform        `json:"transform,omitempty"`
	Arcs      [][][]float64     `json:"arcs"`
	Objects   map[string]Object `json:"objects"`
}

// Parse decodes a TopoJSON document.
func Parse(r io.Reader) (*Topology, error) {
	var t Topology
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding topology: %w", err)
	}
	if t.Type != "" && t.Type != "Topology" {
		return nil, fmt.Errorf("unexpected document type %q", t.Type)
	}
	return &t, nil
}

// polygons returns the arc indices of g as polygons of rings.
func (g Geometry) polygons() ([][][]int, error) {
	switch g.Type {
	case "Polygon":
		var rings [][]int
		if err := json.Unmarshal(g.Arcs, &rings); err != nil {
			return nil, fmt.Errorf("polygon arcs: %w", err)
		}
		return [][][]int{rings}, nil
	case "MultiPolygon":
		var polys [][][]int
		if err := json.Unmarshal(g.Arcs, &polys); err != nil {
			return nil, fmt.Errorf("multipolygon arcs: %w", err)
		}
		return polys, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedGeometry, g.Type)
}
