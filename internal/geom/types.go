package geom

import "github.com/paulmach/orb"

// Data is the decoded boundary set of one topology object.
type Data struct {
	Rings   []orb.Ring // lon/lat rings, one per polygon ring
	Skipped int        // geometries of a type other than Polygon/MultiPolygon
	Bound   orb.Bound
}

func (d *Data) add(r orb.Ring) {
	if len(d.Rings) == 0 {
		d.Bound = r.Bound()
	} else {
		d.Bound = d.Bound.Union(r.Bound())
	}
	d.Rings = append(d.Rings, r)
}
