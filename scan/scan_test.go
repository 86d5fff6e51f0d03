package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eringen/seoblog/audit"
	"github.com/eringen/seoblog/rewrite"
)

const (
	correctDomain = "https://www.steadiday.com"
	goodDoc       = `<html><head><title>Short - SteadiDay Blog</title>
<link rel="canonical" href="https://www.steadiday.com/blog/good.html"></head></html>`
	brokenDoc = `<html><head><title>Short - SteadiDay Blog</title>
<link rel="canonical" href="https://scm-solutions-llc.github.io/steadiday/blog/broken.html"></head></html>`
)

func newTestScanner(t *testing.T, opts ...Option) *Scanner {
	t.Helper()
	rs, err := rewrite.LiteralRuleSet(correctDomain,
		"https://scm-solutions-llc.github.io/steadiday",
		"https://scm-solutions-llc.github.io",
		"http://scm-solutions-llc.github.io/steadiday",
		"http://scm-solutions-llc.github.io",
	)
	if err != nil {
		t.Fatalf("LiteralRuleSet failed: %v", err)
	}
	return New(rewrite.NewEngine(rs, ""), audit.NewTitleAuditor("SteadiDay", 60), opts...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func longTitleDoc() string {
	return "<html><head><title>" + strings.Repeat("x", 70) + " - SteadiDay Blog</title></head></html>"
}

func TestScanCorpus(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a-good.html"), goodDoc)
	writeFile(t, filepath.Join(root, "b-broken.html"), brokenDoc)
	writeFile(t, filepath.Join(root, "nested", "c-long.html"), longTitleDoc())
	writeFile(t, filepath.Join(root, "notes.txt"), brokenDoc)

	s := newTestScanner(t)
	stats, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.Modified != 1 {
		t.Errorf("Modified = %d, want 1", stats.Modified)
	}
	if stats.Warned != 1 {
		t.Errorf("Warned = %d, want 1", stats.Warned)
	}
	if stats.AlreadyCorrect != 1 {
		t.Errorf("AlreadyCorrect = %d, want 1", stats.AlreadyCorrect)
	}
	if len(stats.Warnings) != 1 || stats.Warnings[0].Document != filepath.Join("nested", "c-long.html") {
		t.Errorf("Warnings = %v", stats.Warnings)
	}

	wantOrder := []string{"a-good.html", "b-broken.html", filepath.Join("nested", "c-long.html")}
	for i, name := range wantOrder {
		if stats.Files[i].Name != name {
			t.Errorf("Files[%d].Name = %q, want %q", i, stats.Files[i].Name, name)
		}
	}

	got, err := os.ReadFile(filepath.Join(root, "b-broken.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `href="https://www.steadiday.com/blog/broken.html"`) {
		t.Errorf("broken file not rewritten: %s", got)
	}
	txt, _ := os.ReadFile(filepath.Join(root, "notes.txt"))
	if string(txt) != brokenDoc {
		t.Errorf("non-html file was modified")
	}
}

func TestScanSecondRunNoWrites(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "broken.html")
	writeFile(t, path, brokenDoc)

	s := newTestScanner(t)
	if _, err := s.Scan(context.Background(), root); err != nil {
		t.Fatalf("first Scan failed: %v", err)
	}
	before, _ := os.Stat(path)

	stats, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("second Scan failed: %v", err)
	}
	if stats.Modified != 0 || len(stats.Files[0].Changes) != 0 {
		t.Errorf("second run modified = %d, changes = %v", stats.Modified, stats.Files[0].Changes)
	}
	if stats.Files[0].Written {
		t.Error("second run wrote the file")
	}
	after, _ := os.Stat(path)
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("file mtime changed on no-op run")
	}
}

func TestScanDryRun(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "broken.html")
	writeFile(t, path, brokenDoc)

	s := newTestScanner(t, WithDryRun(true))
	stats, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if stats.Modified != 1 || stats.Files[0].Written {
		t.Errorf("Modified = %d, Written = %v", stats.Modified, stats.Files[0].Written)
	}
	got, _ := os.ReadFile(path)
	if string(got) != brokenDoc {
		t.Error("dry run wrote the file")
	}
}

func TestScanMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := newTestScanner(t).Scan(context.Background(), missing)
	if !errors.Is(err, ErrRootNotFound) {
		t.Errorf("interactive err = %v, want ErrRootNotFound", err)
	}

	stats, err := newTestScanner(t, WithMode(ModeCI)).Scan(context.Background(), missing)
	if err != nil {
		t.Fatalf("ci mode err = %v, want nil", err)
	}
	if !stats.RootMissing || stats.Total != 0 {
		t.Errorf("RootMissing = %v, Total = %d", stats.RootMissing, stats.Total)
	}
}

func TestScanParallelKeepsOrder(t *testing.T) {
	root := t.TempDir()
	var want []string
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		name := n + ".html"
		want = append(want, name)
		doc := goodDoc
		if n == "c" || n == "f" {
			doc = brokenDoc
		}
		writeFile(t, filepath.Join(root, name), doc)
	}

	stats, err := newTestScanner(t, WithWorkers(4)).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if stats.Modified != 2 {
		t.Errorf("Modified = %d, want 2", stats.Modified)
	}
	for i, name := range want {
		if stats.Files[i].Name != name {
			t.Errorf("Files[%d].Name = %q, want %q", i, stats.Files[i].Name, name)
		}
	}
}

func TestScanUnreadableFileContinues(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "a-locked.html")
	writeFile(t, locked, brokenDoc)
	writeFile(t, filepath.Join(root, "b-broken.html"), brokenDoc)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(locked, 0o644)

	stats, err := newTestScanner(t).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if stats.Failed != 1 || stats.Modified != 1 {
		t.Errorf("Failed = %d, Modified = %d, want 1, 1", stats.Failed, stats.Modified)
	}
	if stats.Files[0].Err == nil {
		t.Error("expected error on locked file")
	}
}

func TestScanUnreadableDirectoryContinues(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a-broken.html"), brokenDoc)
	locked := filepath.Join(root, "drafts")
	writeFile(t, filepath.Join(locked, "hidden.html"), brokenDoc)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(locked, 0o755)

	stats, err := newTestScanner(t).Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if stats.Modified != 1 || stats.Failed != 1 {
		t.Errorf("Modified = %d, Failed = %d, want 1, 1", stats.Modified, stats.Failed)
	}
	last := stats.Files[len(stats.Files)-1]
	if last.Name != "drafts" || last.Err == nil {
		t.Errorf("last report = %q (err %v), want drafts with error", last.Name, last.Err)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeInteractive, false},
		{"interactive", ModeInteractive, false},
		{"ci", ModeCI, false},
		{"batch", ModeInteractive, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) err = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
	if ModeCI.String() != "ci" || ModeInteractive.String() != "interactive" {
		t.Error("Mode.String mismatch")
	}
}

func TestWarningsByDocument(t *testing.T) {
	st := &Stats{Warnings: []audit.Warning{
		{Document: "b.html", Message: "one"},
		{Document: "a.html", Message: "two"},
		{Document: "b.html", Message: "three"},
	}}
	order, grouped := st.WarningsByDocument()
	if len(order) != 2 || order[0] != "b.html" || order[1] != "a.html" {
		t.Errorf("order = %v", order)
	}
	if len(grouped["b.html"]) != 2 {
		t.Errorf("grouped[b.html] = %v", grouped["b.html"])
	}
}
