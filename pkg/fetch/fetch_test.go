package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dabtools/dabrowse/pkg/api"
	"github.com/dabtools/dabrowse/pkg/freshness"
	"github.com/dabtools/dabrowse/pkg/scope"
)

// stubLoader serves canned responses per URL and can hold a response back
// until the test releases it.
type stubLoader struct {
	mu     sync.Mutex
	titles map[string][]api.Title
	thumbs map[string][]api.Thumbnail
	errs   map[string]error
	gates  map[string]chan struct{}
	calls  map[string]int
}

func newStubLoader() *stubLoader {
	return &stubLoader{
		titles: make(map[string][]api.Title),
		thumbs: make(map[string][]api.Thumbnail),
		errs:   make(map[string]error),
		gates:  make(map[string]chan struct{}),
		calls:  make(map[string]int),
	}
}

func (s *stubLoader) gate(url string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.gates[url] = ch
	return ch
}

func (s *stubLoader) callCount(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[url]
}

func (s *stubLoader) begin(url string) (chan struct{}, error) {
	s.mu.Lock()
	s.calls[url]++
	gate := s.gates[url]
	err := s.errs[url]
	s.mu.Unlock()
	return gate, err
}

func (s *stubLoader) Titles(ctx context.Context, url string) ([]api.Title, error) {
	gate, err := s.begin(url)
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.titles[url], nil
}

func (s *stubLoader) Thumbnails(ctx context.Context, url string) ([]api.Thumbnail, error) {
	gate, err := s.begin(url)
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thumbs[url], nil
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

func titleKey(url string) Key {
	return Key{Kind: scope.Titles, URL: url}
}

func TestFetcher_SuccessAndPending(t *testing.T) {
	loader := newStubLoader()
	loader.titles["u1"] = []api.Title{{UUID: "abc", Title: "Foo"}}
	gate := loader.gate("u1")

	f := New(loader, nil)
	f.Observe(context.Background(), titleKey("u1"))

	if got := f.Result().State; got != Pending {
		t.Fatalf("expected Pending while in flight, got %v", got)
	}

	close(gate)
	waitFor(t, func() bool { return f.Result().State == Success })

	res := f.Result()
	if len(res.Titles) != 1 || res.Titles[0].UUID != "abc" {
		t.Fatalf("unexpected titles: %+v", res.Titles)
	}
}

func TestFetcher_Failure(t *testing.T) {
	loader := newStubLoader()
	loader.errs["u1"] = errors.New("status 500")

	f := New(loader, nil)
	f.Observe(context.Background(), titleKey("u1"))

	waitFor(t, func() bool { return f.Result().State == Failure })
	if f.Result().Err == nil {
		t.Fatal("expected a failure error")
	}
	if f.Result().Titles != nil {
		t.Fatal("failure must not carry partial records")
	}
}

func TestFetcher_StaleResponseDropped(t *testing.T) {
	loader := newStubLoader()
	loader.titles["old"] = []api.Title{{UUID: "old"}}
	loader.titles["new"] = []api.Title{{UUID: "new"}}
	gate := loader.gate("old")

	f := New(loader, nil)
	f.Observe(context.Background(), titleKey("old"))
	f.Observe(context.Background(), titleKey("new"))

	waitFor(t, func() bool { return f.Result().State == Success })

	// The older fetch completes after the newer one; its result must be
	// discarded, not rendered.
	close(gate)
	time.Sleep(20 * time.Millisecond)

	res := f.Result()
	if res.State != Success || len(res.Titles) != 1 || res.Titles[0].UUID != "new" {
		t.Fatalf("expected the newer key's result to stick, got %+v", res)
	}
}

func TestFetcher_ModeSwitchDiscardsInFlight(t *testing.T) {
	loader := newStubLoader()
	loader.titles["titles-url"] = []api.Title{{UUID: "t1"}}
	loader.thumbs["thumbs-url"] = []api.Thumbnail{{UUID: "th1"}}
	gate := loader.gate("titles-url")

	f := New(loader, nil)
	f.Observe(context.Background(), titleKey("titles-url"))
	f.Observe(context.Background(), Key{Kind: scope.Thumbnails, URL: "thumbs-url"})

	waitFor(t, func() bool { return f.Result().State == Success })
	close(gate)
	time.Sleep(20 * time.Millisecond)

	res := f.Result()
	if res.Titles != nil {
		t.Fatalf("titles fetch should have been discarded, got %+v", res.Titles)
	}
	if len(res.Thumbnails) != 1 || res.Thumbnails[0].UUID != "th1" {
		t.Fatalf("unexpected thumbnails: %+v", res.Thumbnails)
	}
}

func TestFetcher_SameKeyIsNoOp(t *testing.T) {
	loader := newStubLoader()
	loader.titles["u1"] = []api.Title{{UUID: "abc"}}

	f := New(loader, nil)
	key := titleKey("u1")
	f.Observe(context.Background(), key)
	waitFor(t, func() bool { return f.Result().State == Success })

	f.Observe(context.Background(), key)
	time.Sleep(20 * time.Millisecond)

	if got := loader.callCount("u1"); got != 1 {
		t.Fatalf("expected 1 fetch for a repeated key, got %d", got)
	}
}

func TestFetcher_FreshnessChangeTriggersOneRefetch(t *testing.T) {
	loader := newStubLoader()
	loader.titles["u1"] = []api.Title{{UUID: "abc"}}

	f := New(loader, nil)
	f.Observe(context.Background(), titleKey("u1"))
	waitFor(t, func() bool { return f.Result().State == Success })

	refreshed := titleKey("u1")
	refreshed.Freshness = freshness.Timestamp{Millis: 1700000000000, Known: true}
	f.Observe(context.Background(), refreshed)
	waitFor(t, func() bool { return f.Result().State == Success && loader.callCount("u1") == 2 })

	// Same freshness again: no further fetch.
	f.Observe(context.Background(), refreshed)
	time.Sleep(20 * time.Millisecond)
	if got := loader.callCount("u1"); got != 2 {
		t.Fatalf("expected exactly 2 fetches, got %d", got)
	}
}

func TestFetcher_RevisitingOldKeyRefetches(t *testing.T) {
	loader := newStubLoader()
	loader.titles["a"] = []api.Title{{UUID: "a"}}
	loader.titles["b"] = []api.Title{{UUID: "b"}}

	f := New(loader, nil)
	f.Observe(context.Background(), titleKey("a"))
	waitFor(t, func() bool { return f.Result().State == Success && loader.callCount("a") == 1 })

	f.Observe(context.Background(), titleKey("b"))
	waitFor(t, func() bool { return loader.callCount("b") == 1 })

	f.Observe(context.Background(), titleKey("a"))
	waitFor(t, func() bool { return loader.callCount("a") == 2 })
}

func TestFetcher_NotifiesOnChange(t *testing.T) {
	loader := newStubLoader()
	loader.titles["u1"] = []api.Title{{UUID: "abc"}}

	var mu sync.Mutex
	changes := 0
	f := New(loader, func() {
		mu.Lock()
		changes++
		mu.Unlock()
	})
	f.Observe(context.Background(), titleKey("u1"))

	// One pending transition plus one success transition.
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return changes == 2
	})
}
