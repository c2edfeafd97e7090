package tui

import (
	"fmt"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"travelmap/internal/worldmap"
)

// layout holds the screen regions; View and mouse handling must agree on it.
type layout struct {
	contentW, contentH int
	sidebarW           int
	sectionsW          int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	const headerHeight, footerHeight = 1, 2
	l := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	if m.showSidebar {
		l.sidebarW = sidebarWidth
		l.mapX = sidebarWidth + 1
	}
	gap := 0
	if l.contentW >= 80 {
		l.sectionsW = sectionsWidth
		gap = 1
	}
	l.mapW = max(10, l.contentW-l.mapX-l.sectionsW-gap)
	l.mapH = l.contentH
	return l
}

// resize applies the layout to the sized sub-models.
func (m *Model) resize() {
	l := m.layout()
	m.l.SetSize(sidebarWidth-2, l.contentH-2)
	m.vp.Width = max(1, sectionsWidth-4)
	m.vp.Height = max(1, l.contentH-2)
	var content string
	content, m.offsets = renderSections(m.world.Chapters(), m.vp.Width)
	m.vp.SetContent(content)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case loadedMsg:
		m.loading = false
		n := len(m.world.Rings())
		if n == 0 {
			m.status = "boundaries unavailable"
		} else {
			m.status = fmt.Sprintf("loaded %d boundaries", n)
		}
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	case tickMsg:
		m.elapsed = time.Time(msg).Sub(m.start)
		m.frame++
		if m.scrolling {
			y := ease(m.vp.YOffset, m.scrollTarget)
			m.vp.SetYOffset(y)
			if m.vp.YOffset == m.scrollTarget || m.vp.YOffset != y {
				m.scrolling = false
			}
		}
		return m, tick()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.world.Unmount()
			return m, tea.Quit
		case "tab":
			m.showSidebar = !m.showSidebar
			m.resize()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showFlights = !m.showFlights
			if m.showFlights {
				m.refreshFlights()
				m.status = fmt.Sprintf("%d flights", len(m.world.Flights()))
			}
		case "n":
			m.cycleHover(1)
		case "N":
			m.cycleHover(-1)
		case "esc":
			m.world.Leave()
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(chapterItem); ok {
					m.world.Enter(it.ch.Name)
					if !m.world.Click(it.ch.Name) {
						m.status = it.ch.Name + " is outside the map window"
					}
					m.drainClicks()
				}
				return m, nil
			}
			if ch, ok := m.world.Hovered(); ok {
				m.world.Click(ch.Name)
				m.drainClicks()
			}
		}
		if m.showFlights {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
	case tea.MouseMsg:
		l := m.layout()
		cx, cy := msg.X-l.mapX, msg.Y-l.mapY
		if cx >= 0 && cx < l.mapW && cy >= 0 && cy < l.mapH && !m.showFlights {
			m.mouseOnMap(msg, cx, cy, l)
			return m, nil
		}
		m.hoverHasGeo = false
		if msg.Action == tea.MouseActionMotion {
			m.world.Leave()
		}
		if l.sectionsW > 0 && msg.X >= l.contentW-l.sectionsW {
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// mouseOnMap hit-tests markers under the pointer. Motion updates the hover,
// a left press opens the chapter.
func (m *Model) mouseOnMap(msg tea.MouseMsg, cx, cy int, l layout) {
	f := m.frameFor(l.mapW, l.mapH)
	pt := f.canvas(cx, cy)
	m.hoverLon, m.hoverLat = m.world.Projector().Invert(pt[0], pt[1])
	m.hoverHasGeo = f.rect.Contains(pt)

	ch, hit := m.world.MarkerAt(pt, max(worldmap.RingRadius, f.cellSpan()))
	if hit {
		m.world.Enter(ch.Name)
	} else {
		m.world.Leave()
	}
	if hit && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.world.Click(ch.Name)
		m.drainClicks()
	}
}

// cycleHover moves the hover to the next visible marker in narrative order.
func (m *Model) cycleHover(step int) {
	var names []string
	cur := -1
	for _, mk := range m.world.Markers() {
		if !mk.Visible {
			continue
		}
		if mk.Hovered {
			cur = len(names)
		}
		names = append(names, mk.Chapter.Name)
	}
	if len(names) == 0 {
		return
	}
	next := 0
	switch {
	case cur >= 0:
		next = ((cur+step)%len(names) + len(names)) % len(names)
	case step < 0:
		next = len(names) - 1
	}
	m.world.Enter(names[next])
	m.status = names[next]
}
