package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dabtools/dabrowse/pkg/api"
)

func TestPrint_SelectsColumnsInOrder(t *testing.T) {
	tbl := Titles([]api.Title{{
		UUID:    "abc",
		VideoID: "v1",
		UserID:  "u1",
		Title:   "Foo",
		Score:   5,
		Votes:   3,
	}}, false, false)

	var buf bytes.Buffer
	if err := Print(&buf, tbl, "uvt", "|"); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if got != "abc|v1|Foo" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestPrint_InvalidFlag(t *testing.T) {
	tbl := Titles(nil, false, false)
	var buf bytes.Buffer
	if err := Print(&buf, tbl, "x", " "); err == nil {
		t.Fatal("expected an error for an invalid output flag")
	}
}

func TestPrint_SkipsHiddenColumns(t *testing.T) {
	tbl := Titles([]api.Title{{UUID: "abc", Title: "Foo"}}, true, true)

	var buf bytes.Buffer
	if err := Print(&buf, tbl, "vtd", "|"); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if got != "Foo" {
		t.Fatalf("hidden columns should be skipped, got %q", got)
	}
}

func TestPrintAligned_Headers(t *testing.T) {
	tbl := Titles([]api.Title{{UUID: "abc", Title: "Foo"}}, false, false)

	var buf bytes.Buffer
	if err := PrintAligned(&buf, tbl); err != nil {
		t.Fatalf("PrintAligned failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Submitted") || !strings.Contains(out, "UUID") {
		t.Fatalf("expected headers in output, got %q", out)
	}
	if !strings.Contains(out, "abc") {
		t.Fatalf("expected row content in output, got %q", out)
	}
}
