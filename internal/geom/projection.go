package geom

import (
	"math"
	"strconv"

	"github.com/paulmach/orb"
)

// Projector maps lon/lat onto a fixed-size plate carrée canvas.
// Inputs are not validated; out-of-range coordinates land off the canvas.
type Projector struct {
	Width  float64
	Height float64
}

// DefaultProjector is the 1000x500 world canvas used by the map.
func DefaultProjector() Projector {
	return Projector{Width: 1000, Height: 500}
}

// Project returns the canvas pixel for lon/lat.
func (p Projector) Project(lon, lat float64) orb.Point {
	return orb.Point{
		(lon + 180) / 360 * p.Width,
		(90 - lat) / 180 * p.Height,
	}
}

// Invert converts a canvas pixel back to lon/lat.
func (p Projector) Invert(x, y float64) (lon, lat float64) {
	return x/p.Width*360 - 180, 90 - y/p.Height*180
}

// CropWindow is the lon/lat region made visible out of the full world canvas.
// Min holds the west/south edge, Max the east/north edge.
type CropWindow struct {
	orb.Bound
}

// DefaultCrop shows Europe, the Middle East and South Asia.
func DefaultCrop() CropWindow {
	return NewCrop(-15, 10, 100, 65)
}

func NewCrop(minLon, minLat, maxLon, maxLat float64) CropWindow {
	return CropWindow{orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}}
}

func (c CropWindow) Contains(lon, lat float64) bool {
	return c.Bound.Contains(orb.Point{lon, lat})
}

// Rect is the crop window in canvas pixels (Min is top-left).
func (c CropWindow) Rect(p Projector) orb.Bound {
	return orb.Bound{
		Min: p.Project(c.Min[0], c.Max[1]),
		Max: p.Project(c.Max[0], c.Min[1]),
	}
}

// ViewBox renders Rect as an SVG viewBox attribute value.
func (c CropWindow) ViewBox(p Projector) string {
	r := c.Rect(p)
	return FormatNum(r.Min[0]) + " " + FormatNum(r.Min[1]) + " " +
		FormatNum(r.Max[0]-r.Min[0]) + " " + FormatNum(r.Max[1]-r.Min[1])
}

// FormatNum prints a canvas coordinate with at most two decimals.
func FormatNum(v float64) string {
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}
