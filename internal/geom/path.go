package geom

import (
	"strings"

	"github.com/paulmach/orb"
)

// ProjectRing maps a lon/lat ring onto the canvas.
func ProjectRing(r orb.Ring, p Projector) orb.Ring {
	out := make(orb.Ring, len(r))
	for i, pt := range r {
		out[i] = p.Project(pt[0], pt[1])
	}
	return out
}

// RingPath renders a canvas ring as "M x,y L x,y ... Z". Empty rings yield "".
func RingPath(r orb.Ring) string {
	if len(r) == 0 {
		return ""
	}
	var b strings.Builder
	for i, pt := range r {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(FormatNum(pt[0]))
		b.WriteByte(',')
		b.WriteString(FormatNum(pt[1]))
	}
	b.WriteString(" Z")
	return b.String()
}

// Paths decodes the named object of t into one path string per ring.
func Paths(t *Topology, object string, p Projector) []string {
	data := NewDecoder(t).Rings(object)
	out := make([]string, 0, len(data.Rings))
	for _, r := range data.Rings {
		out = append(out, RingPath(ProjectRing(r, p)))
	}
	return out
}
