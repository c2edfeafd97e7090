package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"travelmap/internal/worldmap"
)

// frame fits the crop window (canvas pixels) into a w x h cell area on the
// braille micro grid, keeping its aspect ratio and centering it.
type frame struct {
	rect   orb.Bound
	scale  float64 // micro pixels per canvas pixel
	ox, oy float64
	w, h   int
}

func newFrame(rect orb.Bound, w, h int) frame {
	wm, hm := float64(w*2), float64(h*4)
	rw, rh := rect.Max[0]-rect.Min[0], rect.Max[1]-rect.Min[1]
	s := math.Min(wm/rw, hm/rh)
	return frame{rect: rect, scale: s, ox: (wm - rw*s) / 2, oy: (hm - rh*s) / 2, w: w, h: h}
}

func (m Model) frameFor(w, h int) frame {
	return newFrame(m.world.Crop().Rect(m.world.Projector()), w, h)
}

// micro maps a canvas point to micro grid coordinates.
func (f frame) micro(p orb.Point) (int, int) {
	x := f.ox + (p[0]-f.rect.Min[0])*f.scale
	y := f.oy + (p[1]-f.rect.Min[1])*f.scale
	return int(math.Round(x)), int(math.Round(y))
}

// canvas maps the center of cell (cx, cy) back to canvas pixels.
func (f frame) canvas(cx, cy int) orb.Point {
	mx, my := float64(cx*2)+1, float64(cy*4)+2
	return orb.Point{f.rect.Min[0] + (mx-f.ox)/f.scale, f.rect.Min[1] + (my-f.oy)/f.scale}
}

// cellSpan is the canvas width of one cell.
func (f frame) cellSpan() float64 { return 2 / f.scale }

func (m Model) renderMap(w, h int) string {
	f := m.frameFor(w, h)
	br := newBrailleBuf(w, h)

	// Boundaries: edges only, segments outside the window are skipped
	for _, r := range m.world.Rings() {
		for i := 1; i < len(r); i++ {
			a, b := r[i-1], r[i]
			if !f.rect.Intersects(orb.MultiPoint{a, b}.Bound()) {
				continue
			}
			ax, ay := f.micro(a)
			bx, by := f.micro(b)
			br.drawLineMicro(ax, ay, bx, by, landCol)
		}
	}

	// Flights: dashed arcs whose dashes travel toward the destination
	for _, fl := range m.world.Flights() {
		c := lipgloss.Color(fl.Color)
		pts := fl.Sample(64)
		for i := 1; i < len(pts); i++ {
			if !dashOn(i, m.frame) {
				continue
			}
			ax, ay := f.micro(pts[i-1])
			bx, by := f.micro(pts[i])
			br.drawLineMicro(ax, ay, bx, by, c)
		}
	}

	radius, opacity := worldmap.Pulse(m.elapsed)
	for _, mk := range m.world.Markers() {
		if !mk.Visible {
			continue
		}
		c := lipgloss.Color(mk.Chapter.Color)
		x, y := f.micro(mk.Point)
		if opacity >= 0.15 {
			br.drawCircle(x, y, microRadius(radius, f), c)
		}
		core := worldmap.CoreRadius
		if mk.Hovered {
			br.drawCircle(x, y, microRadius(worldmap.RingRadius, f), c)
			core = worldmap.CoreRadiusHovered
		}
		br.fillDisc(x, y, microRadius(core, f)/2, c)
	}

	if p, ok := m.world.InfoPanel(); ok {
		x, y := f.micro(p.Anchor)
		drawPanel(br, p, x/2, y/4)
	}
	return strings.Join(br.toLines(), "\n")
}

func microRadius(r float64, f frame) int {
	return max(1, int(math.Round(r*f.scale)))
}

func dashOn(i, frame int) bool {
	return ((i-frame)%4+4)%4 < 2
}

// drawPanel writes the hover info panel next to the marker cell, flipping to
// the left when it would run past the right edge.
func drawPanel(br *brailleBuf, p worldmap.Panel, cx, cy int) {
	lines := []string{p.Name, p.Period}
	for _, pl := range p.Places {
		lines = append(lines, "• "+pl)
	}
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	width += 2

	x := cx + 3
	if x+width > br.w {
		x = cx - 3 - width
	}
	x = max(0, x)
	y := clamp(cy-1, 0, max(0, br.h-len(lines)))

	accent := panelStyle.Foreground(lipgloss.Color(p.Color))
	for i, l := range lines {
		st := accent
		switch i {
		case 0:
			st = accent.Bold(true)
		case 1:
			st = panelStyle.Foreground(baseDimFg)
		}
		br.putText(x, y+i, padRight(" "+l, width-1-len([]rune(l))), st)
	}
}
