package scope

import (
	"github.com/dabtools/dabrowse/pkg/api"
)

// DetailKind selects which record type is being browsed.
type DetailKind int

const (
	Titles DetailKind = iota
	Thumbnails
)

func (k DetailKind) String() string {
	switch k {
	case Titles:
		return "titles"
	case Thumbnails:
		return "thumbnails"
	default:
		return "unknown"
	}
}

type scopeKind int

const (
	scopeGlobal scopeKind = iota
	scopeVideo
	scopeUser
)

// Scope is the filter applied to browsed records: everything, one video's
// submissions, or one user's submissions. The zero value is the global scope.
type Scope struct {
	kind scopeKind
	id   string
}

// Global returns the unfiltered scope.
func Global() Scope {
	return Scope{}
}

// Video returns the scope restricted to a single video.
func Video(id string) Scope {
	return Scope{kind: scopeVideo, id: id}
}

// User returns the scope restricted to a single submitting user.
func User(id string) Scope {
	return Scope{kind: scopeUser, id: id}
}

// VideoID returns the video identifier when the scope is video-restricted.
func (s Scope) VideoID() (string, bool) {
	return s.id, s.kind == scopeVideo
}

// UserID returns the user identifier when the scope is user-restricted.
func (s Scope) UserID() (string, bool) {
	return s.id, s.kind == scopeUser
}

// IsGlobal reports whether the scope is unfiltered.
func (s Scope) IsGlobal() bool {
	return s.kind == scopeGlobal
}

func (s Scope) String() string {
	switch s.kind {
	case scopeVideo:
		return "video " + s.id
	case scopeUser:
		return "user " + s.id
	default:
		return "global"
	}
}

// Request is a fully resolved fetch target plus the column-visibility flags
// implied by the scope: browsing one video hides the video column, browsing
// one user hides the user column.
type Request struct {
	URL         string
	HideVideoID bool
	HideUserID  bool
}

// Resolve maps a scope and detail kind onto one of the six API paths.
// Identifiers are percent-encoded during joining. An error here means the
// configured origin itself is broken and the page cannot be shown.
func Resolve(origin *api.Origin, s Scope, kind DetailKind) (Request, error) {
	segments := []string{"api", kind.String()}
	switch s.kind {
	case scopeVideo:
		segments = append(segments, "video_id", s.id)
	case scopeUser:
		segments = append(segments, "user_id", s.id)
	}

	u, err := origin.Join(segments...)
	if err != nil {
		return Request{}, err
	}
	return Request{
		URL:         u,
		HideVideoID: s.kind == scopeVideo,
		HideUserID:  s.kind == scopeUser,
	}, nil
}
