package worldmap

import (
	"fmt"
	"html"
	"io"
	"strings"

	"travelmap/internal/chapter"
	"travelmap/internal/geom"
)

// SVGOptions styles the rendered document.
type SVGOptions struct {
	Width      int // width attribute in pixels; 0 leaves sizing to the page
	Background string
	Land       string
	Border     string
	Text       string
	Animate    bool
	// Hover, when set, renders that chapter as hovered in place of the
	// map's own hover state.
	Hover      string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Background: "#0B0F14",
		Land:       "#1F2937",
		Border:     "#374151",
		Text:       "#E6E6E6",
		Animate:    true,
	}
}

const (
	panelWidth = 120.0
	panelLine  = 9.0
	fontSize   = 7.0
)

// WriteSVG renders the map cropped to its crop window.
func (m *Map) WriteSVG(w io.Writer, opt SVGOptions) error {
	var b strings.Builder
	rect := m.crop.Rect(m.proj)
	num := geom.FormatNum

	hovered := m.hoveredIndex()
	if opt.Hover != "" {
		i := m.index(opt.Hover)
		if i < 0 || !m.visible[i] {
			return fmt.Errorf("%w: %q", chapter.ErrNotFound, opt.Hover)
		}
		hovered = i
	}

	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="` + m.crop.ViewBox(m.proj) + `"`)
	if opt.Width > 0 {
		fmt.Fprintf(&b, ` width="%d"`, opt.Width)
	}
	b.WriteString(` preserveAspectRatio="xMidYMid meet">` + "\n")
	fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(rect.Min[0]), num(rect.Min[1]), num(rect.Max[0]-rect.Min[0]), num(rect.Max[1]-rect.Min[1]), attr(opt.Background))

	fmt.Fprintf(&b, `<g class="countries" fill="%s" stroke="%s" stroke-width="0.5">`+"\n", attr(opt.Land), attr(opt.Border))
	for _, d := range m.Boundaries() {
		b.WriteString(`<path d="` + d + `"/>` + "\n")
	}
	b.WriteString("</g>\n")

	b.WriteString(`<g class="flights" fill="none">` + "\n")
	for _, f := range m.flights {
		fmt.Fprintf(&b, `<path id="%s" d="%s" stroke="%s" stroke-width="1.5" stroke-dasharray="4 4" opacity="0.8">`,
			attr(f.ID), f.D, attr(f.Color))
		if opt.Animate {
			b.WriteString(`<animate attributeName="stroke-dashoffset" from="8" to="0" dur="1s" repeatCount="indefinite"/>`)
		}
		b.WriteString("</path>\n")
	}
	b.WriteString("</g>\n")

	b.WriteString(`<g class="markers">` + "\n")
	for i, mk := range m.Markers() {
		if !mk.Visible {
			continue
		}
		c := attr(mk.Chapter.Color)
		fmt.Fprintf(&b, `<g class="marker" data-name="%s" transform="translate(%s,%s)">`,
			attr(mk.Chapter.Name), num(mk.Point[0]), num(mk.Point[1]))
		fmt.Fprintf(&b, `<circle r="%s" fill="%s" opacity="%s">`, num(PulseMinRadius), c, num(PulseMaxOpacity))
		if opt.Animate {
			fmt.Fprintf(&b, `<animate attributeName="r" values="%s;%s;%s" dur="2s" repeatCount="indefinite"/>`,
				num(PulseMinRadius), num(PulseMaxRadius), num(PulseMinRadius))
			fmt.Fprintf(&b, `<animate attributeName="opacity" values="%s;0;%s" dur="2s" repeatCount="indefinite"/>`,
				num(PulseMaxOpacity), num(PulseMaxOpacity))
		}
		b.WriteString("</circle>")
		r := CoreRadius
		if i == hovered {
			fmt.Fprintf(&b, `<circle class="hover-ring" r="%s" fill="none" stroke="%s" stroke-width="1.5"/>`, num(RingRadius), c)
			r = CoreRadiusHovered
		}
		fmt.Fprintf(&b, `<circle class="core" r="%s" fill="%s"/>`, num(r), c)
		b.WriteString("</g>\n")
	}
	b.WriteString("</g>\n")

	if hovered >= 0 {
		writePanel(&b, m.panel(hovered), rect.Max[0], opt)
	}

	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// writePanel places the panel right of its marker, or left when it would
// spill past the crop edge at maxX.
func writePanel(b *strings.Builder, p Panel, maxX float64, opt SVGOptions) {
	num := geom.FormatNum
	x := p.Anchor[0] + RingRadius + 4
	if x+panelWidth > maxX {
		x = p.Anchor[0] - RingRadius - 4 - panelWidth
	}
	y := p.Anchor[1] - panelLine
	h := panelLine*float64(2+len(p.Places)) + 6
	c := attr(p.Color)

	fmt.Fprintf(b, `<g class="info" transform="translate(%s,%s)">`, num(x), num(y))
	fmt.Fprintf(b, `<rect width="%s" height="%s" rx="3" fill="%s" fill-opacity="0.9" stroke="%s"/>`,
		num(panelWidth), num(h), attr(opt.Background), c)
	fmt.Fprintf(b, `<text x="4" y="%s" font-size="%s" font-weight="bold" fill="%s">%s</text>`,
		num(panelLine), num(fontSize), attr(opt.Text), html.EscapeString(p.Name))
	fmt.Fprintf(b, `<text x="4" y="%s" font-size="%s" fill="%s" opacity="0.7">%s</text>`,
		num(panelLine*2), num(fontSize-1), attr(opt.Text), html.EscapeString(p.Period))
	for i, place := range p.Places {
		ty := panelLine * float64(3+i)
		fmt.Fprintf(b, `<rect class="tag" x="4" y="%s" width="%s" height="%s" rx="2" fill="%s" fill-opacity="0.2"/>`,
			num(ty-panelLine+2), num(panelWidth-8), num(panelLine-1), c)
		fmt.Fprintf(b, `<text x="7" y="%s" font-size="%s" fill="%s">%s</text>`,
			num(ty-1), num(fontSize-1), c, html.EscapeString(place))
	}
	b.WriteString("</g>\n")
}

func attr(s string) string { return html.EscapeString(s) }
