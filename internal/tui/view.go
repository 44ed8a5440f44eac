package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dabtools/dabrowse/pkg/fetch"
	"github.com/dabtools/dabrowse/pkg/scope"
	"github.com/dabtools/dabrowse/pkg/table"
)

const (
	loadingMessage = "Loading..."
	errorMessage   = "Failed to fetch details from the API :/"
)

type theme struct {
	title       lipgloss.Style
	label       lipgloss.Style
	tabActive   lipgloss.Style
	tabInactive lipgloss.Style
	head        lipgloss.Style
	row         lipgloss.Style
	rowSelected lipgloss.Style
	footer      lipgloss.Style
	errText     lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		label:       lipgloss.NewStyle().Faint(true),
		tabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("219")),
		tabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		head:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		row:         lipgloss.NewStyle(),
		rowSelected: lipgloss.NewStyle().Bold(true),
		footer:      lipgloss.NewStyle().Faint(true),
		errText:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

func (m Model) View() string {
	sections := []string{m.viewHeader()}
	if m.searchVisible {
		sections = append(sections, m.viewSearch())
	}
	if m.route.kind != routeNotFound {
		sections = append(sections, m.viewModeSwitch())
	}
	sections = append(sections, m.viewContent(), m.viewFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	title := m.theme.title.Render("DeArrow Browser")
	loc := m.theme.label.Render(m.routeLabel())
	return title + "  " + loc
}

func (m Model) routeLabel() string {
	switch m.route.kind {
	case routeVideo:
		return "video " + m.route.id
	case routeUser:
		return "user " + m.route.id
	case routeNotFound:
		return "not found"
	default:
		return "all submissions"
	}
}

func (m Model) viewSearch() string {
	var b strings.Builder
	labels := [...]string{"Search by Video ID", "Search by User ID", "Search by UUID"}
	for i, in := range m.inputs {
		b.WriteString(m.theme.label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewModeSwitch() string {
	titles := m.theme.tabInactive.Render("Titles")
	thumbs := m.theme.tabInactive.Render("Thumbnails")
	if m.mode == scope.Titles {
		titles = m.theme.tabActive.Render("Titles")
	} else {
		thumbs = m.theme.tabActive.Render("Thumbnails")
	}
	return titles + "  " + thumbs
}

func (m Model) viewContent() string {
	if m.route.kind == routeNotFound {
		return m.theme.errText.Render("404 - Not found") + "\n" +
			"Looks like you've entered an invalid URL\n" +
			m.theme.label.Render("Press esc to return to the home page")
	}
	if m.fatal != nil {
		return m.theme.errText.Render(fmt.Sprintf("Page error: %v", m.fatal))
	}

	res := m.fetcher.Result()
	switch res.State {
	case fetch.Pending:
		return m.spin.View() + " " + loadingMessage
	case fetch.Failure:
		return m.theme.errText.Render(errorMessage)
	default:
		return m.viewTable(m.currentTable(res))
	}
}

func (m Model) viewTable(tbl table.Table) string {
	if len(tbl.Rows) == 0 {
		return m.theme.label.Render("No submissions found.")
	}

	widths := make([]int, len(tbl.Columns))
	for i, col := range tbl.Columns {
		widths[i] = lipgloss.Width(col)
	}
	for _, row := range tbl.Rows {
		for i, cell := range row.Cells {
			if w := lipgloss.Width(cell.String()); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	head := make([]string, len(tbl.Columns))
	for i, col := range tbl.Columns {
		head[i] = lipgloss.NewStyle().Width(widths[i]).Render(col)
	}
	b.WriteString(m.theme.head.Render(strings.Join(head, "  ")))
	b.WriteString("\n")

	for r, row := range tbl.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = lipgloss.NewStyle().Width(widths[i]).Render(cell.String())
		}
		style := m.theme.row
		if r == m.cursor {
			style = m.theme.rowSelected
		}
		b.WriteString(style.Render(strings.Join(cells, "  ")))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewFooter() string {
	last := "Last update: ..."
	if ts := m.tracker.LastUpdated(); ts.Known {
		ago := int(time.Since(ts.Time()).Minutes())
		last = fmt.Sprintf("Last update: %s UTC (%d minutes ago)", ts.Time().Format(table.TimeFormat), ago)
	}

	lines := []string{
		last,
		"Uses DeArrow data licensed under CC BY-NC-SA 4.0 from https://dearrow.ajay.app/.",
		"t titles • b thumbnails • / search • j/k move • v video • u user • esc home • q quit",
	}
	if logo := m.origin.LogoURL(); logo != "" {
		lines = append(lines, "logo: "+logo)
	}
	return m.theme.footer.Render(strings.Join(lines, "\n"))
}
