package tui

import (
	"context"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	spinner "github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	viewport "github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"travelmap/internal/chapter"
	"travelmap/internal/geom"
	"travelmap/internal/worldmap"
)

const (
	sidebarWidth  = 28
	sectionsWidth = 36
	frameInterval = 80 * time.Millisecond
)

// navigator receives marker clicks from the map. It sits behind a pointer so
// the click handler keeps working across Model copies.
type navigator struct {
	target string
}

func (n *navigator) open(name string) { n.target = name }

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	showFlights bool

	status string

	world   *worldmap.Map
	src     geom.Source
	nav     *navigator
	loading bool

	// Chapter sidebar
	l list.Model

	// Sections pane; offsets maps chapter name to its first line
	vp           viewport.Model
	offsets      map[string]int
	scrollTarget int
	scrolling    bool

	// Flights table
	tbl table.Model

	sp spinner.Model

	// animation clock
	start   time.Time
	elapsed time.Duration
	frame   int

	// hover state
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
}

type loadedMsg struct{}

type tickMsg time.Time

// New builds the viewer over chs. Boundaries are loaded from src once the
// program starts.
func New(chs []chapter.Chapter, src geom.Source, opts ...worldmap.Option) Model {
	nav := &navigator{}
	opts = append(opts, worldmap.WithClickHandler(nav.open))
	m := Model{
		helpVisible: true,
		status:      "travelmap ready",
		world:       worldmap.New(chs, opts...),
		src:         src,
		nav:         nav,
		loading:     true,
		start:       time.Now(),
	}
	// list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Chapters"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.refreshChapters()

	m.vp = viewport.New(sectionsWidth-4, 10)
	m.sp = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(titleStyle))

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshFlights()
	m.resize()
	return m
}

// World exposes the underlying map component.
func (m Model) World() *worldmap.Map { return m.world }

func (m Model) Init() tea.Cmd {
	done := m.world.Mount(context.Background(), m.src)
	return tea.Batch(m.sp.Tick, waitLoaded(done), tick())
}

func waitLoaded(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return loadedMsg{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
