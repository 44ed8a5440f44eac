package table

import (
	"strconv"
	"strings"
	"time"

	"github.com/dabtools/dabrowse/pkg/api"
	"github.com/dabtools/dabrowse/pkg/scope"
)

// TimeFormat is the fixed display format for submission times.
const TimeFormat = "2006-01-02 15:04:05"

// Badge is a non-numeric annotation appended to a displayed value to convey
// a record's moderation or visibility flags. It never replaces the value.
type Badge struct {
	Glyph string
	Label string
}

var (
	BadgeOriginalTitle = Badge{Glyph: "♻️", Label: "This is the original video title"}
	BadgeOriginalThumb = Badge{Glyph: "♻️", Label: "This is the original video thumbnail"}
	BadgeTooLow        = Badge{Glyph: "❌", Label: "This score is too low to be displayed"}
	BadgeUnverified    = Badge{Glyph: "❓", Label: "This title was submitted by an unverified user"}
	BadgeLocked        = Badge{Glyph: "🔒", Label: "This submission was locked by a VIP"}
	BadgeShadowHidden  = Badge{Glyph: "🚫", Label: "This submission is shadowhidden"}
)

// Cell is one rendered table cell: text, optional badges, and an optional
// navigation target into another browse scope. ExternalURL carries a link
// out of the browser (the video on YouTube) when one applies.
type Cell struct {
	Text        string
	Badges      []Badge
	Nav         scope.Scope
	HasNav      bool
	ExternalURL string
}

// String renders the cell as plain text, badge glyphs appended.
func (c Cell) String() string {
	parts := make([]string, 0, 1+len(c.Badges))
	if c.Text != "" {
		parts = append(parts, c.Text)
	}
	for _, b := range c.Badges {
		parts = append(parts, b.Glyph)
	}
	return strings.Join(parts, " ")
}

// Row is one record rendered for display, keyed by the record's UUID.
type Row struct {
	Key   string
	Cells []Cell
}

// Table is an ordered set of rows under fixed column headers. Row order is
// the server-provided record order.
type Table struct {
	Columns []string
	Rows    []Row
}

// Titles renders title submissions into a table. The video and user columns
// are omitted entirely when hidden.
func Titles(list []api.Title, hideVideoID, hideUserID bool) Table {
	t := Table{Columns: titleColumns(hideVideoID, hideUserID)}
	for _, rec := range list {
		row := Row{Key: rec.UUID}
		row.Cells = append(row.Cells, Cell{Text: FormatSubmitted(rec.TimeSubmitted)})
		if !hideVideoID {
			row.Cells = append(row.Cells, videoCell(rec.VideoID))
		}
		row.Cells = append(row.Cells, titleCell(rec))
		row.Cells = append(row.Cells, titleScoreCell(rec))
		row.Cells = append(row.Cells, Cell{Text: strconv.FormatInt(rec.Votes, 10)})
		row.Cells = append(row.Cells, Cell{Text: rec.UUID})
		if !hideUserID {
			row.Cells = append(row.Cells, userCell(rec.UserID))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Thumbnails renders thumbnail submissions into a table.
func Thumbnails(list []api.Thumbnail, hideVideoID, hideUserID bool) Table {
	t := Table{Columns: thumbnailColumns(hideVideoID, hideUserID)}
	for _, rec := range list {
		row := Row{Key: rec.UUID}
		row.Cells = append(row.Cells, Cell{Text: FormatSubmitted(rec.TimeSubmitted)})
		if !hideVideoID {
			row.Cells = append(row.Cells, videoCell(rec.VideoID))
		}
		row.Cells = append(row.Cells, timestampCell(rec))
		row.Cells = append(row.Cells, thumbnailScoreCell(rec))
		row.Cells = append(row.Cells, Cell{Text: rec.UUID})
		if !hideUserID {
			row.Cells = append(row.Cells, userCell(rec.UserID))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FormatSubmitted renders an epoch-millisecond submission time in the fixed
// display format, in UTC.
func FormatSubmitted(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(TimeFormat)
}

func titleColumns(hideVideoID, hideUserID bool) []string {
	cols := []string{"Submitted"}
	if !hideVideoID {
		cols = append(cols, "Video ID")
	}
	cols = append(cols, "Title", "Score", "Votes", "UUID")
	if !hideUserID {
		cols = append(cols, "User ID")
	}
	return cols
}

func thumbnailColumns(hideVideoID, hideUserID bool) []string {
	cols := []string{"Submitted"}
	if !hideVideoID {
		cols = append(cols, "Video ID")
	}
	cols = append(cols, "Timestamp", "Score/Votes", "UUID")
	if !hideUserID {
		cols = append(cols, "User ID")
	}
	return cols
}

func videoCell(videoID string) Cell {
	return Cell{
		Text:        videoID,
		Nav:         scope.Video(videoID),
		HasNav:      true,
		ExternalURL: "https://youtu.be/" + videoID,
	}
}

func userCell(userID string) Cell {
	return Cell{
		Text:   userID,
		Nav:    scope.User(userID),
		HasNav: true,
	}
}

func titleCell(rec api.Title) Cell {
	c := Cell{Text: rec.Title}
	if rec.Original {
		c.Badges = append(c.Badges, BadgeOriginalTitle)
	}
	return c
}

func titleScoreCell(rec api.Title) Cell {
	c := Cell{Text: strconv.FormatInt(rec.Score, 10)}
	if rec.Score < 0 {
		c.Badges = append(c.Badges, BadgeTooLow)
	}
	if rec.Unverified {
		c.Badges = append(c.Badges, BadgeUnverified)
	}
	if rec.Locked {
		c.Badges = append(c.Badges, BadgeLocked)
	}
	if rec.ShadowHidden {
		c.Badges = append(c.Badges, BadgeShadowHidden)
	}
	return c
}

func thumbnailScoreCell(rec api.Thumbnail) Cell {
	c := Cell{Text: strconv.FormatInt(rec.Votes, 10)}
	if rec.Votes < 0 {
		c.Badges = append(c.Badges, BadgeTooLow)
	}
	if rec.Locked {
		c.Badges = append(c.Badges, BadgeLocked)
	}
	if rec.ShadowHidden {
		c.Badges = append(c.Badges, BadgeShadowHidden)
	}
	return c
}

// timestampCell shows the numeric offset when the submission has one, even
// when that offset is 0. Only a submission without an offset can show the
// original-thumbnail badge.
func timestampCell(rec api.Thumbnail) Cell {
	if rec.Timestamp != nil {
		return Cell{Text: strconv.FormatFloat(*rec.Timestamp, 'f', -1, 64)}
	}
	if rec.Original {
		return Cell{Badges: []Badge{BadgeOriginalThumb}}
	}
	return Cell{}
}
