package seoblog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/eringen/seoblog/audit"
)

// cardIndent separates the marker from the inserted card.
const cardIndent = "\n            "

// InsertCard splices card immediately after the first occurrence of marker
// and re-emits the marker, so later insertions land above this one. It
// reports false, leaving index untouched, when the marker is absent.
func InsertCard(index, card, marker string) (string, bool) {
	i := strings.Index(index, marker)
	if i < 0 {
		return index, false
	}
	at := i + len(marker)
	return index[:at] + cardIndent + card + index[at:], true
}

// UpdateIndex inserts the card for p into the index document at path. A
// missing file or marker is reported as a warning and the file is left
// untouched; read and write failures are errors.
func (r *Renderer) UpdateIndex(path string, p PublishedPost) (*audit.Warning, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &audit.Warning{Document: path, Message: "index not found, skipping index update"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: read %s: %w", path, err)
	}

	card, err := r.Card(p)
	if err != nil {
		return nil, err
	}
	updated, ok := InsertCard(string(raw), card, r.site.IndexMarker)
	if !ok {
		return &audit.Warning{Document: path, Message: "marker not found, skipping index update"}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("index: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("index: write %s: %w", path, err)
	}
	return nil, nil
}
