package fetch

import (
	"context"
	"sync"

	"github.com/dabtools/dabrowse/pkg/api"
	"github.com/dabtools/dabrowse/pkg/freshness"
	"github.com/dabtools/dabrowse/pkg/scope"
)

// Key identifies one fetch: what to fetch, from where, for which freshness
// generation. Two keys are equal iff all three components are equal; key
// equality is the sole identity used for in-flight and completed fetches.
type Key struct {
	Kind      scope.DetailKind
	URL       string
	Freshness freshness.Timestamp
}

// State is the lifecycle of a fetch outcome.
type State int

const (
	Pending State = iota
	Success
	Failure
)

// Result is the outcome for the currently observed key. Exactly one of
// Titles or Thumbnails is set on Success, matching the key's kind.
type Result struct {
	State      State
	Titles     []api.Title
	Thumbnails []api.Thumbnail
	Err        error
}

// Loader performs the actual record fetches. *api.Client satisfies it.
type Loader interface {
	Titles(ctx context.Context, requestURL string) ([]api.Title, error)
	Thumbnails(ctx context.Context, requestURL string) ([]api.Thumbnail, error)
}

// Fetcher runs at most one fetch per distinct key and exposes a three-state
// result for the latest observed key. When the key changes, the previous
// outcome is discarded wholesale and a new fetch starts; a response for an
// older key is dropped on arrival (key comparison, not transport
// cancellation). There is no cache across keys: revisiting an old key
// re-fetches.
type Fetcher struct {
	loader   Loader
	onChange func()

	mu       sync.Mutex
	observed bool
	key      Key
	result   Result
}

// New builds a fetcher. onChange, if non-nil, fires after every visible
// state transition (pending, success, failure).
func New(loader Loader, onChange func()) *Fetcher {
	return &Fetcher{loader: loader, onChange: onChange}
}

// Observe submits a key. Re-observing the current key is a no-op; a new key
// discards the previous result and launches one fetch.
func (f *Fetcher) Observe(ctx context.Context, key Key) {
	f.mu.Lock()
	if f.observed && f.key == key {
		f.mu.Unlock()
		return
	}
	f.observed = true
	f.key = key
	f.result = Result{State: Pending}
	f.mu.Unlock()

	f.notify()
	go f.load(ctx, key)
}

// Result returns the outcome for the most recently observed key.
func (f *Fetcher) Result() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Key returns the most recently observed key, if any.
func (f *Fetcher) Key() (Key, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.key, f.observed
}

func (f *Fetcher) load(ctx context.Context, key Key) {
	var res Result
	switch key.Kind {
	case scope.Thumbnails:
		thumbs, err := f.loader.Thumbnails(ctx, key.URL)
		if err != nil {
			res = Result{State: Failure, Err: err}
		} else {
			res = Result{State: Success, Thumbnails: thumbs}
		}
	default:
		titles, err := f.loader.Titles(ctx, key.URL)
		if err != nil {
			res = Result{State: Failure, Err: err}
		} else {
			res = Result{State: Success, Titles: titles}
		}
	}

	f.mu.Lock()
	if f.key != key {
		// A newer key was observed while this fetch was in flight.
		f.mu.Unlock()
		return
	}
	f.result = res
	f.mu.Unlock()

	f.notify()
}

// notify runs the callback on its own goroutine: consumers read the current
// state via Result, so delivery order does not matter, and a synchronous
// callback could deadlock a caller that observes keys from its event loop.
func (f *Fetcher) notify() {
	if f.onChange != nil {
		go f.onChange()
	}
}
