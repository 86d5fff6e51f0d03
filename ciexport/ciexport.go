// Package ciexport hands values to later CI workflow steps through the
// GitHub Actions environment file.
package ciexport

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// EnvFileVar names the variable holding the environment file path.
const EnvFileVar = "GITHUB_ENV"

// echoLimit bounds the value shown when there is no environment file.
const echoLimit = 50

// Writer appends KEY=value records to an environment file, or echoes them
// to out when no file is configured.
type Writer struct {
	path  string
	out   io.Writer
	delim func() string
}

// New returns a Writer for the given environment file path. An empty path
// selects the terminal echo fallback.
func New(path string, out io.Writer) *Writer {
	return &Writer{
		path:  path,
		out:   out,
		delim: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
}

// FromEnv returns a Writer for $GITHUB_ENV.
func FromEnv(out io.Writer) *Writer {
	return New(os.Getenv(EnvFileVar), out)
}

// Enabled reports whether values go to an environment file.
func (w *Writer) Enabled() bool {
	return w.path != ""
}

// Set exports key=value. Multi-line values use the heredoc form with a
// random delimiter so the value cannot terminate the record early.
func (w *Writer) Set(key, value string) error {
	if !w.Enabled() {
		_, err := fmt.Fprintf(w.out, "  [ENV] %s=%s...\n", key, truncate(value, echoLimit))
		return err
	}
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("ciexport: open %s: %w", w.path, err)
	}
	if _, err := io.WriteString(f, w.record(key, value)); err != nil {
		f.Close()
		return fmt.Errorf("ciexport: write %s: %w", key, err)
	}
	return f.Close()
}

func (w *Writer) record(key, value string) string {
	if !strings.Contains(value, "\n") {
		return key + "=" + value + "\n"
	}
	d := w.delim()
	return key + "<<" + d + "\n" + value + "\n" + d + "\n"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
