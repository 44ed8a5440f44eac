package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dabtools/dabrowse/pkg/api"
	"github.com/dabtools/dabrowse/pkg/fetch"
	"github.com/dabtools/dabrowse/pkg/freshness"
	"github.com/dabtools/dabrowse/pkg/scope"
	"github.com/dabtools/dabrowse/pkg/table"
)

// ResultMsg signals that the fetcher's result changed.
type ResultMsg struct{}

// FreshnessMsg signals that the status poller reported a new last-updated
// time; the current view recomputes its fetch key.
type FreshnessMsg struct{}

type routeKind int

const (
	routeHome routeKind = iota
	routeVideo
	routeUser
	routeNotFound
)

type route struct {
	kind routeKind
	id   string
}

func (r route) scope() scope.Scope {
	switch r.kind {
	case routeVideo:
		return scope.Video(r.id)
	case routeUser:
		return scope.User(r.id)
	default:
		return scope.Global()
	}
}

const (
	fieldVideo = iota
	fieldUser
	fieldUUID
	fieldCount
)

// Model is the interactive browser: a route, a per-page detail-kind toggle,
// and the shared fetcher and freshness tracker injected at startup.
type Model struct {
	origin  *api.Origin
	fetcher *fetch.Fetcher
	tracker *freshness.Tracker
	keys    keyMap
	theme   theme

	route route
	mode  scope.DetailKind
	req   scope.Request
	fatal error

	searchVisible bool
	inputs        [fieldCount]textinput.Model
	focus         int
	searching     bool

	cursor int
	spin   spinner.Model
	width  int
	height int
}

// New builds the model. The initial route is the home page unless initial is
// a non-global scope.
func New(origin *api.Origin, fetcher *fetch.Fetcher, tracker *freshness.Tracker, initial scope.Scope) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		origin:        origin,
		fetcher:       fetcher,
		tracker:       tracker,
		keys:          defaultKeyMap(),
		theme:         defaultTheme(),
		mode:          scope.Titles,
		searchVisible: true,
		spin:          sp,
	}

	if id, ok := initial.VideoID(); ok {
		m.route = route{kind: routeVideo, id: id}
		m.searchVisible = false
	} else if id, ok := initial.UserID(); ok {
		m.route = route{kind: routeUser, id: id}
		m.searchVisible = false
	}

	for i, placeholder := range [...]string{"Video ID", "User ID", "UUID"} {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 128
		in.Width = 40
		m.inputs[i] = in
	}

	m.resolve()
	return m
}

// Init kicks off the first fetch once the program loop is running.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, func() tea.Msg { return FreshnessMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case FreshnessMsg:
		m.observe()
		return m, nil

	case ResultMsg:
		// The fetcher already holds the new state; re-render, and keep the
		// spinner alive if we are back to pending.
		if m.fetcher.Result().State == fetch.Pending {
			return m, m.spin.Tick
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.fetcher.Result().State == fetch.Pending {
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Home):
		m.navigate(route{kind: routeHome})
		m.searchVisible = true
		return m, m.spin.Tick

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchVisible = true
		m.focus = fieldVideo
		return m, m.inputs[fieldVideo].Focus()

	case key.Matches(msg, m.keys.Titles):
		m.setMode(scope.Titles)
		return m, m.spin.Tick

	case key.Matches(msg, m.keys.Thumbnails):
		m.setMode(scope.Thumbnails)
		return m, m.spin.Tick

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.OpenVideo):
		if s, ok := m.selectedNav(func(s scope.Scope) bool { _, ok := s.VideoID(); return ok }); ok {
			m.navigateScope(s)
		}
		return m, m.spin.Tick

	case key.Matches(msg, m.keys.OpenUser):
		if s, ok := m.selectedNav(func(s scope.Scope) bool { _, ok := s.UserID(); return ok }); ok {
			m.navigateScope(s)
		}
		return m, m.spin.Tick
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.inputs[m.focus].Blur()
		return m, nil

	case "tab", "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % fieldCount
		return m, m.inputs[m.focus].Focus()

	case "enter":
		value := m.inputs[m.focus].Value()
		m.inputs[m.focus].Blur()
		m.searching = false
		m.searchVisible = false
		switch m.focus {
		case fieldVideo:
			m.navigate(route{kind: routeVideo, id: value})
		case fieldUser:
			m.navigate(route{kind: routeUser, id: value})
		case fieldUUID:
			// No per-UUID endpoint exists; this lands on the not-found page.
			m.navigate(route{kind: routeNotFound})
		}
		return m, m.spin.Tick
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// navigate replaces the route and resets per-page state: the mode toggle
// returns to titles and the cursor to the top.
func (m *Model) navigate(r route) {
	m.route = r
	m.mode = scope.Titles
	m.cursor = 0
	m.observe()
}

func (m *Model) navigateScope(s scope.Scope) {
	if id, ok := s.VideoID(); ok {
		m.navigate(route{kind: routeVideo, id: id})
		return
	}
	if id, ok := s.UserID(); ok {
		m.navigate(route{kind: routeUser, id: id})
	}
}

func (m *Model) setMode(kind scope.DetailKind) {
	if m.mode == kind {
		return
	}
	m.mode = kind
	m.cursor = 0
	m.observe()
}

// resolve maps the current route and mode onto a request URL and visibility
// flags. A resolution error is fatal to the page, not to the program.
func (m *Model) resolve() {
	if m.route.kind == routeNotFound {
		return
	}
	req, err := scope.Resolve(m.origin, m.route.scope(), m.mode)
	if err != nil {
		m.fatal = err
		return
	}
	m.fatal = nil
	m.req = req
}

// observe resolves the current route and mode into a fetch key and hands it
// to the fetcher. Called on navigation, mode change, and freshness updates;
// the fetcher ignores keys equal to the current one.
func (m *Model) observe() {
	m.resolve()
	if m.route.kind == routeNotFound || m.fatal != nil {
		return
	}
	m.fetcher.Observe(context.Background(), fetch.Key{
		Kind:      m.mode,
		URL:       m.req.URL,
		Freshness: m.tracker.LastUpdated(),
	})
}

func (m Model) rows() []table.Row {
	res := m.fetcher.Result()
	if res.State != fetch.Success {
		return nil
	}
	return m.currentTable(res).Rows
}

func (m Model) currentTable(res fetch.Result) table.Table {
	if m.mode == scope.Thumbnails {
		return table.Thumbnails(res.Thumbnails, m.req.HideVideoID, m.req.HideUserID)
	}
	return table.Titles(res.Titles, m.req.HideVideoID, m.req.HideUserID)
}

func (m Model) selectedNav(want func(scope.Scope) bool) (scope.Scope, bool) {
	rows := m.rows()
	if m.cursor >= len(rows) {
		return scope.Scope{}, false
	}
	for _, cell := range rows[m.cursor].Cells {
		if cell.HasNav && want(cell.Nav) {
			return cell.Nav, true
		}
	}
	return scope.Scope{}, false
}
