package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"travelmap/internal/geom"
)

// refreshFlights rebuilds the flights table from the map's connectors.
func (m *Model) refreshFlights() {
	flights := m.world.Flights()
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "From", Width: 18},
		{Title: "To", Width: 18},
		{Title: "Radius", Width: 8},
	}
	rows := make([]table.Row, 0, len(flights))
	for i, f := range flights {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			truncate(f.From, 18),
			truncate(f.To, 18),
			geom.FormatNum(f.Radius),
		})
	}
	// clear rows first so SetColumns never sees a width mismatch
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
}

func (m Model) flightsWidth() int {
	w := 0
	for _, c := range m.tbl.Columns() {
		w += c.Width + 2
	}
	return w
}
