package chapter

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"travelmap/internal/geom"
)

// Curvature scales the chord length into the connector's circle radius.
// Larger values give flatter arcs.
const Curvature = 1.2

// FlightPath connects chapter i to chapter i+1 with a single circular arc.
type FlightPath struct {
	ID     string    `json:"id"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	A      orb.Point `json:"a"`
	B      orb.Point `json:"b"`
	Radius float64   `json:"radius"`
	Color  string    `json:"color"`
	D      string    `json:"d"`
}

// Flights derives one connector per consecutive chapter pair, colored after
// the destination chapter. Fewer than two chapters yield none.
func Flights(chs []Chapter, p geom.Projector) []FlightPath {
	out := make([]FlightPath, 0, max(len(chs)-1, 0))
	for i := 0; i+1 < len(chs); i++ {
		from, to := chs[i], chs[i+1]
		a := p.Project(from.Lon, from.Lat)
		b := p.Project(to.Lon, to.Lat)
		r := planar.Distance(a, b) * Curvature
		out = append(out, FlightPath{
			ID:     fmt.Sprintf("flight-%d", i),
			From:   from.Name,
			To:     to.Name,
			A:      a,
			B:      b,
			Radius: r,
			Color:  to.Color,
			D:      arcPath(a, b, r),
		})
	}
	return out
}

// arcPath is a small-arc, positive-sweep SVG arc from a to b.
func arcPath(a, b orb.Point, r float64) string {
	rs := geom.FormatNum(r)
	return "M" + geom.FormatNum(a[0]) + "," + geom.FormatNum(a[1]) +
		" A" + rs + "," + rs + " 0 0,1 " +
		geom.FormatNum(b[0]) + "," + geom.FormatNum(b[1])
}

// Center returns the center of the circle the arc is drawn on.
func (f FlightPath) Center() orb.Point {
	ux, uy := (f.A[0]-f.B[0])/2, (f.A[1]-f.B[1])/2
	half := math.Hypot(ux, uy)
	if half == 0 {
		return f.A
	}
	h := math.Sqrt(math.Max(f.Radius*f.Radius-half*half, 0))
	k := h / half
	mx, my := (f.A[0]+f.B[0])/2, (f.A[1]+f.B[1])/2
	return orb.Point{mx + k*uy, my - k*ux}
}

// Sample returns n points along the arc from A to B, endpoints included.
func (f FlightPath) Sample(n int) []orb.Point {
	if f.A == f.B {
		return []orb.Point{f.A}
	}
	n = max(n, 2)
	pts := make([]orb.Point, n)
	for i := range pts {
		pts[i] = f.At(float64(i) / float64(n-1))
	}
	return pts
}

// At returns the point a fraction frac (0..1) along the arc.
func (f FlightPath) At(frac float64) orb.Point {
	frac = math.Min(math.Max(frac, 0), 1)
	if f.A == f.B {
		return f.A
	}
	c := f.Center()
	t1 := math.Atan2(f.A[1]-c[1], f.A[0]-c[0])
	t2 := math.Atan2(f.B[1]-c[1], f.B[0]-c[0])
	dt := t2 - t1
	if dt < 0 {
		dt += 2 * math.Pi
	}
	t := t1 + dt*frac
	return orb.Point{c[0] + f.Radius*math.Cos(t), c[1] + f.Radius*math.Sin(t)}
}
