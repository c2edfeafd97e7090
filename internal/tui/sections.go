package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"travelmap/internal/chapter"
)

type chapterItem struct {
	ch chapter.Chapter
}

func (c chapterItem) Title() string       { return c.ch.Name }
func (c chapterItem) Description() string { return c.ch.Period }
func (c chapterItem) FilterValue() string { return c.ch.Name }

func (m *Model) refreshChapters() {
	chs := m.world.Chapters()
	items := make([]list.Item, 0, len(chs))
	for _, ch := range chs {
		items = append(items, chapterItem{ch: ch})
	}
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no chapters configured"
	}
}

// renderSections lays out one section per chapter and records where each
// one starts.
func renderSections(chs []chapter.Chapter, width int) (string, map[string]int) {
	var lines []string
	offsets := make(map[string]int, len(chs))
	for i, ch := range chs {
		offsets[ch.Name] = len(lines)
		head := fmt.Sprintf("%d. %s", i+1, ch.Name)
		lines = append(lines, chapterStyle(ch.Color).Bold(true).Render(truncate(head, width)))
		lines = append(lines, dimStyle.Render(truncate(ch.Period, width)))
		for _, p := range ch.Places {
			lines = append(lines, truncate("  • "+p, width))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n"), offsets
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// openChapter starts a smooth scroll of the sections pane to name.
func (m *Model) openChapter(name string) {
	off, ok := m.offsets[name]
	if !ok {
		return
	}
	maxOff := max(0, m.vp.TotalLineCount()-m.vp.Height)
	m.scrollTarget = clamp(off, 0, maxOff)
	m.scrolling = m.vp.YOffset != m.scrollTarget
	for i, it := range m.l.Items() {
		if c, ok := it.(chapterItem); ok && c.ch.Name == name {
			m.l.Select(i)
			break
		}
	}
	m.status = "→ " + name
}

// drainClicks applies a click recorded by the map's click handler.
func (m *Model) drainClicks() {
	if m.nav.target == "" {
		return
	}
	m.openChapter(m.nav.target)
	m.nav.target = ""
}
