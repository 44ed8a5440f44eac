package api

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Title is a single crowd-sourced title submission as returned by the API.
type Title struct {
	UUID          string
	VideoID       string
	UserID        string
	Title         string
	TimeSubmitted int64 // epoch milliseconds
	Score         int64
	Votes         int64
	Original      bool
	Unverified    bool
	Locked        bool
	ShadowHidden  bool
}

// Thumbnail is a single crowd-sourced thumbnail submission. Timestamp is the
// offset into the video in seconds; nil means the submission points at the
// video's original thumbnail.
type Thumbnail struct {
	UUID          string
	VideoID       string
	UserID        string
	TimeSubmitted int64 // epoch milliseconds
	Timestamp     *float64
	Votes         int64
	Original      bool
	Locked        bool
	ShadowHidden  bool
}

// Status is the server's status document. LastUpdated is the epoch-millisecond
// time the server's dataset was last refreshed.
type Status struct {
	LastUpdated int64
}

// ParseTitles decodes a JSON array of title submissions.
func ParseTitles(body []byte) ([]Title, error) {
	elems, err := parseArray(body)
	if err != nil {
		return nil, err
	}

	titles := make([]Title, 0, len(elems))
	for _, e := range elems {
		titles = append(titles, Title{
			UUID:          e.Get("uuid").String(),
			VideoID:       e.Get("video_id").String(),
			UserID:        e.Get("user_id").String(),
			Title:         e.Get("title").String(),
			TimeSubmitted: e.Get("time_submitted").Int(),
			Score:         e.Get("score").Int(),
			Votes:         e.Get("votes").Int(),
			Original:      e.Get("original").Bool(),
			Unverified:    e.Get("unverified").Bool(),
			Locked:        e.Get("locked").Bool(),
			ShadowHidden:  e.Get("shadow_hidden").Bool(),
		})
	}
	return titles, nil
}

// ParseThumbnails decodes a JSON array of thumbnail submissions. A missing or
// null timestamp is kept distinct from a timestamp of 0.
func ParseThumbnails(body []byte) ([]Thumbnail, error) {
	elems, err := parseArray(body)
	if err != nil {
		return nil, err
	}

	thumbs := make([]Thumbnail, 0, len(elems))
	for _, e := range elems {
		t := Thumbnail{
			UUID:          e.Get("uuid").String(),
			VideoID:       e.Get("video_id").String(),
			UserID:        e.Get("user_id").String(),
			TimeSubmitted: e.Get("time_submitted").Int(),
			Votes:         e.Get("votes").Int(),
			Original:      e.Get("original").Bool(),
			Locked:        e.Get("locked").Bool(),
			ShadowHidden:  e.Get("shadow_hidden").Bool(),
		}
		if ts := e.Get("timestamp"); ts.Exists() && ts.Type != gjson.Null {
			v := ts.Float()
			t.Timestamp = &v
		}
		thumbs = append(thumbs, t)
	}
	return thumbs, nil
}

// ParseStatus decodes the server status document.
func ParseStatus(body []byte) (Status, error) {
	if !gjson.ValidBytes(body) {
		return Status{}, fmt.Errorf("status response is not valid JSON")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return Status{}, fmt.Errorf("status response is not a JSON object")
	}
	last := doc.Get("last_updated")
	if !last.Exists() {
		return Status{}, fmt.Errorf("status response has no last_updated field")
	}
	return Status{LastUpdated: last.Int()}, nil
}

func parseArray(body []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return nil, fmt.Errorf("response is not a JSON array")
	}
	elems := doc.Array()
	for i, e := range elems {
		if !e.IsObject() {
			return nil, fmt.Errorf("element %d is not a JSON object", i)
		}
	}
	return elems, nil
}
