package seoblog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const indexDoc = `<html><body><main>
        <!--BLOG_ENTRIES_START-->
        <article>old</article>
</main></body></html>`

func TestInsertCard(t *testing.T) {
	got, ok := InsertCard(indexDoc, "<article>new</article>", DefaultIndexMarker)
	if !ok {
		t.Fatal("InsertCard reported missing marker")
	}
	i := strings.Index(indexDoc, DefaultIndexMarker) + len(DefaultIndexMarker)
	prefix, suffix := indexDoc[:i], indexDoc[i:]
	want := prefix + "\n            <article>new</article>" + suffix
	if got != want {
		t.Errorf("InsertCard =\n%s\nwant\n%s", got, want)
	}

	// Newest first: a second insertion lands above the first.
	got, _ = InsertCard(got, "<article>newer</article>", DefaultIndexMarker)
	if strings.Index(got, "newer") > strings.Index(got, ">new<") {
		t.Error("second card should precede the first")
	}
}

func TestInsertCardFirstMarkerOnly(t *testing.T) {
	doc := "A" + DefaultIndexMarker + "B" + DefaultIndexMarker + "C"
	got, _ := InsertCard(doc, "X", DefaultIndexMarker)
	want := "A" + DefaultIndexMarker + "\n            X" + "B" + DefaultIndexMarker + "C"
	if got != want {
		t.Errorf("InsertCard = %q, want %q", got, want)
	}
}

func TestUpdateIndex(t *testing.T) {
	r := newTestRenderer(t)
	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(indexDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := r.UpdateIndex(path, samplePost())
	if err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}
	if w != nil {
		t.Fatalf("unexpected warning: %v", w)
	}
	got, _ := os.ReadFile(path)
	i := strings.Index(indexDoc, DefaultIndexMarker) + len(DefaultIndexMarker)
	if !strings.HasPrefix(string(got), indexDoc[:i]) || !strings.HasSuffix(string(got), indexDoc[i:]) {
		t.Error("content outside the insertion point changed")
	}
	if !strings.Contains(string(got), "2025-01-15-better-sleep-for-seniors.html") {
		t.Error("card not inserted")
	}
}

func TestUpdateIndexMissingMarker(t *testing.T) {
	r := newTestRenderer(t)
	path := filepath.Join(t.TempDir(), "index.html")
	orig := "<html><body>no marker here</body></html>"
	if err := os.WriteFile(path, []byte(orig), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := r.UpdateIndex(path, samplePost())
	if err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}
	if w == nil || !strings.Contains(w.Message, "marker not found") {
		t.Errorf("warning = %v, want marker not found", w)
	}
	got, _ := os.ReadFile(path)
	if string(got) != orig {
		t.Error("index modified despite missing marker")
	}
}

func TestUpdateIndexMissingFile(t *testing.T) {
	r := newTestRenderer(t)
	path := filepath.Join(t.TempDir(), "index.html")
	w, err := r.UpdateIndex(path, samplePost())
	if err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}
	if w == nil {
		t.Fatal("expected a warning")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("UpdateIndex created a missing index")
	}
}
