package geom

import (
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports the decoded rings as GeoJSON polygons, one
// feature per ring, closing any ring that is left open.
func (d Data) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, r := range d.Rings {
		ring := r
		if !ring.Closed() {
			ring = append(slices.Clone(r), r[0])
		}
		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["ring"] = i
		fc.Append(f)
	}
	if len(d.Rings) > 0 {
		fc.BBox = geojson.NewBBox(d.Bound)
	}
	return fc
}
