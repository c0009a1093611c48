package main

import (
	"bytes"
	"strings"
	"testing"

	"NewsTriage/internal/usecase"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, usecase.Report{RunID: "r1", Loaded: 3, Analyzed: 2, Skipped: 1, Featured: 1, Worst: 1})

	out := buf.String()
	for _, want := range []string{"Run r1", "loaded:        3", "skipped 1", "featured:      1", "objective:     0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "inconclusive") || strings.Contains(out, "archived") {
		t.Fatalf("zero optional counters must be hidden:\n%s", out)
	}
}

func TestPrintEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, usecase.Report{Empty: true, Notice: usecase.NoArticlesNotice})
	if strings.TrimSpace(buf.String()) != usecase.NoArticlesNotice {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
