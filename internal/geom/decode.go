package geom

import (
	"slices"

	"github.com/paulmach/orb"
)

// DefaultObject is the topology object holding country geometries.
const DefaultObject = "countries"

// Decoder expands the shared arcs of a topology into lon/lat point lists.
type Decoder struct {
	topo *Topology
}

func NewDecoder(t *Topology) *Decoder {
	return &Decoder{topo: t}
}

// DecodeArc returns the positions of arc i. A negative i selects arc ^i
// traversed in reverse. Unknown arcs decode to nil.
func (d *Decoder) DecodeArc(i int) []orb.Point {
	reverse := i < 0
	if reverse {
		i = ^i
	}
	if d.topo == nil || i >= len(d.topo.Arcs) {
		return nil
	}
	arc := d.topo.Arcs[i]
	t := d.topo.Transform
	pts := make([]orb.Point, 0, len(arc))
	var x, y float64
	for _, pos := range arc {
		if len(pos) < 2 {
			continue
		}
		// without a transform positions are already absolute
		if t == nil {
			pts = append(pts, orb.Point{pos[0], pos[1]})
			continue
		}
		x += pos[0]
		y += pos[1]
		pts = append(pts, orb.Point{
			x*t.Scale[0] + t.Translate[0],
			y*t.Scale[1] + t.Translate[1],
		})
	}
	if reverse {
		slices.Reverse(pts)
	}
	return pts
}

// Ring concatenates the decoded arcs of one ring in order.
func (d *Decoder) Ring(arcs []int) orb.Ring {
	var ring orb.Ring
	for _, i := range arcs {
		ring = append(ring, d.DecodeArc(i)...)
	}
	return ring
}

// Rings decodes every Polygon and MultiPolygon ring of the named object.
// Other geometry types are counted in Skipped; empty rings are dropped.
func (d *Decoder) Rings(object string) Data {
	var data Data
	if d.topo == nil {
		return data
	}
	for _, g := range d.topo.Objects[object].Geometries {
		polys, err := g.polygons()
		if err != nil {
			data.Skipped++
			continue
		}
		for _, poly := range polys {
			for _, arcs := range poly {
				r := d.Ring(arcs)
				if len(r) == 0 {
					continue
				}
				data.add(r)
			}
		}
	}
	return data
}
