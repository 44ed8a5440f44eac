package table

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Column selector characters for Print:
//
//	s  submitted time
//	v  video id
//	t  title (or thumbnail timestamp)
//	c  score (or thumbnail score/votes)
//	o  votes
//	u  uuid
//	d  user id
//
// Characters referring to columns the table does not carry (hidden by the
// scope, or votes on a thumbnail table) are skipped.
var columnChars = map[string]byte{
	"Submitted":   's',
	"Video ID":    'v',
	"Title":       't',
	"Timestamp":   't',
	"Score":       'c',
	"Score/Votes": 'c',
	"Votes":       'o',
	"UUID":        'u',
	"User ID":     'd',
}

// Print writes one delimiter-joined line per row, with the columns selected
// by fields, in the order the characters appear.
func Print(w io.Writer, tbl Table, fields, delimiter string) error {
	indices := make([]int, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if !validColumnChar(f) {
			return fmt.Errorf("invalid output flag %q", string(f))
		}
		for col, header := range tbl.Columns {
			if columnChars[header] == f {
				indices = append(indices, col)
			}
		}
	}

	for _, row := range tbl.Rows {
		parts := make([]string, 0, len(indices))
		for _, col := range indices {
			parts = append(parts, row.Cells[col].String())
		}
		line := strings.TrimSuffix(strings.Join(parts, delimiter), delimiter)
		if len(line) > 0 {
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

// PrintAligned writes the whole table with headers in aligned columns.
func PrintAligned(w io.Writer, tbl Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tbl.Columns, "\t"))
	for _, row := range tbl.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, c.String())
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func validColumnChar(f byte) bool {
	for _, c := range columnChars {
		if c == f {
			return true
		}
	}
	return false
}
