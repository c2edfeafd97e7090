package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type brailleBuf struct {
	w, h int                // in cells
	m    [][]uint8          // per-cell 8-bit mask
	fg   [][]lipgloss.Color // per-cell color, last writer wins
	text [][]string         // pre-rendered cells drawn over the dots
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	fg := make([][]lipgloss.Color, h)
	text := make([][]string, h)
	for i := range m {
		m[i] = make([]uint8, w)
		fg[i] = make([]lipgloss.Color, w)
		text[i] = make([]string, w)
	}
	return &brailleBuf{w: w, h: h, m: m, fg: fg, text: text}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) bool {
	if mx < 0 || my < 0 {
		return false
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return false
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	return true
}

// paint sets a micro-pixel and colors its cell.
func (b *brailleBuf) paint(mx, my int, c lipgloss.Color) {
	if b.setPixel(mx, my) && c != "" {
		b.fg[my/4][mx/2] = c
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, c lipgloss.Color) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.paint(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawCircle plots a midpoint circle outline.
func (b *brailleBuf) drawCircle(cx, cy, r int, c lipgloss.Color) {
	if r <= 0 {
		b.paint(cx, cy, c)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			b.paint(cx+p[0], cy+p[1], c)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func (b *brailleBuf) fillDisc(cx, cy, r int, c lipgloss.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				b.paint(cx+x, cy+y, c)
			}
		}
	}
}

// putText writes s into cells starting at (cx, cy), replacing any dots.
func (b *brailleBuf) putText(cx, cy int, s string, st lipgloss.Style) {
	if cy < 0 || cy >= b.h {
		return
	}
	for i, r := range []rune(s) {
		x := cx + i
		if x < 0 || x >= b.w {
			continue
		}
		b.text[cy][x] = st.Render(string(r))
	}
}

// toLines renders rows, batching runs of equally colored cells into one
// styled segment.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		var sb strings.Builder
		var run []rune
		var runCol lipgloss.Color
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runCol == "" {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(runCol).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < b.w; x++ {
			if t := b.text[y][x]; t != "" {
				flush()
				sb.WriteString(t)
				continue
			}
			mask := b.m[y][x]
			r, col := ' ', lipgloss.Color("")
			if mask != 0 {
				r, col = rune(0x2800+int(mask)), b.fg[y][x]
			}
			if col != runCol {
				flush()
				runCol = col
			}
			run = append(run, r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}
