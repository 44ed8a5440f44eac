package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dabtools/dabrowse/pkg/api"
	"github.com/dabtools/dabrowse/pkg/fetch"
	"github.com/dabtools/dabrowse/pkg/freshness"
	"github.com/dabtools/dabrowse/pkg/scope"
)

type stubLoader struct {
	titles []api.Title
	thumbs []api.Thumbnail
	err    error
}

func (s *stubLoader) Titles(ctx context.Context, url string) ([]api.Title, error) {
	return s.titles, s.err
}

func (s *stubLoader) Thumbnails(ctx context.Context, url string) ([]api.Thumbnail, error) {
	return s.thumbs, s.err
}

type stubStatus struct{}

func (stubStatus) Status(ctx context.Context) (api.Status, error) {
	return api.Status{}, errors.New("not polled in tests")
}

func newTestModel(t *testing.T, loader fetch.Loader, initial scope.Scope) Model {
	t.Helper()
	origin, err := api.NewOrigin("https://dearrow.example.com")
	if err != nil {
		t.Fatalf("NewOrigin failed: %v", err)
	}
	fetcher := fetch.New(loader, nil)
	tracker := freshness.NewTracker(stubStatus{}, time.Hour, nil)
	return New(origin, fetcher, tracker, initial)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned unexpected model type %T", next)
	}
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestModel_InitialFetchUsesRouteScope(t *testing.T) {
	m := newTestModel(t, &stubLoader{}, scope.Video("v2"))
	m = update(t, m, FreshnessMsg{})

	key, ok := m.fetcher.Key()
	if !ok {
		t.Fatal("expected an observed key after the initial freshness message")
	}
	if key.Kind != scope.Titles {
		t.Fatalf("initial mode should be titles, got %v", key.Kind)
	}
	if key.URL != "https://dearrow.example.com/api/titles/video_id/v2" {
		t.Fatalf("unexpected URL: %q", key.URL)
	}
}

func TestModel_ModeToggleIssuesNewFetch(t *testing.T) {
	m := newTestModel(t, &stubLoader{}, scope.Video("v2"))
	m = update(t, m, FreshnessMsg{})
	m = update(t, m, keyPress('b'))

	key, _ := m.fetcher.Key()
	if key.Kind != scope.Thumbnails {
		t.Fatalf("expected thumbnails mode, got %v", key.Kind)
	}
	if key.URL != "https://dearrow.example.com/api/thumbnails/video_id/v2" {
		t.Fatalf("unexpected URL: %q", key.URL)
	}

	// Toggling back re-fetches titles.
	m = update(t, m, keyPress('t'))
	key, _ = m.fetcher.Key()
	if key.URL != "https://dearrow.example.com/api/titles/video_id/v2" {
		t.Fatalf("unexpected URL after toggling back: %q", key.URL)
	}
}

func TestModel_NavigationResetsMode(t *testing.T) {
	m := newTestModel(t, &stubLoader{}, scope.Global())
	m = update(t, m, FreshnessMsg{})
	m = update(t, m, keyPress('b'))

	m.navigate(route{kind: routeUser, id: "u9"})
	if m.mode != scope.Titles {
		t.Fatalf("navigation should reset the mode toggle, got %v", m.mode)
	}
	key, _ := m.fetcher.Key()
	if key.URL != "https://dearrow.example.com/api/titles/user_id/u9" {
		t.Fatalf("unexpected URL: %q", key.URL)
	}
}

func TestModel_ViewStates(t *testing.T) {
	loader := &stubLoader{titles: []api.Title{{UUID: "abc", Title: "Foo"}}}
	m := newTestModel(t, loader, scope.Global())

	// Before any fetch the result is zero-valued Pending.
	if !strings.Contains(m.View(), loadingMessage) {
		t.Fatal("expected the loading placeholder before the fetch completes")
	}

	m = update(t, m, FreshnessMsg{})
	waitFor(t, func() bool { return m.fetcher.Result().State == fetch.Success })

	view := m.View()
	if !strings.Contains(view, "Foo") || !strings.Contains(view, "abc") {
		t.Fatalf("expected table content in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Last update: ...") {
		t.Fatalf("expected indeterminate last-update line, got:\n%s", view)
	}
}

func TestModel_ViewFailure(t *testing.T) {
	loader := &stubLoader{err: errors.New("status 500")}
	m := newTestModel(t, loader, scope.Global())

	m = update(t, m, FreshnessMsg{})
	waitFor(t, func() bool { return m.fetcher.Result().State == fetch.Failure })

	view := m.View()
	if !strings.Contains(view, errorMessage) {
		t.Fatalf("expected the fixed error message, got:\n%s", view)
	}
	if strings.Contains(view, "Submitted") {
		t.Fatalf("failure must not render a partial table, got:\n%s", view)
	}
}

func TestModel_UUIDSearchLandsOnNotFound(t *testing.T) {
	m := newTestModel(t, &stubLoader{}, scope.Global())
	m = update(t, m, FreshnessMsg{})

	m = update(t, m, keyPress('/'))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.route.kind != routeNotFound {
		t.Fatalf("UUID search should land on the not-found page, got %v", m.route.kind)
	}
	if !strings.Contains(m.View(), "404") {
		t.Fatal("expected the not-found page")
	}
}

func TestModel_VideoSearchNavigates(t *testing.T) {
	m := newTestModel(t, &stubLoader{}, scope.Global())
	m = update(t, m, FreshnessMsg{})

	m = update(t, m, keyPress('/'))
	for _, r := range "dQw4" {
		m = update(t, m, keyPress(r))
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.route.kind != routeVideo || m.route.id != "dQw4" {
		t.Fatalf("expected video route, got %+v", m.route)
	}
	key, _ := m.fetcher.Key()
	if key.URL != "https://dearrow.example.com/api/titles/video_id/dQw4" {
		t.Fatalf("unexpected URL: %q", key.URL)
	}
	if !m.req.HideVideoID || m.req.HideUserID {
		t.Fatalf("video scope should hide only the video column, got %+v", m.req)
	}
}
