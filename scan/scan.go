// Package scan walks an article corpus, audits every HTML document and
// rewrites superseded domains in place.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/eringen/seoblog/audit"
	"github.com/eringen/seoblog/internal/logger"
	"github.com/eringen/seoblog/rewrite"
)

// ErrRootNotFound is returned in interactive mode when the corpus root does
// not exist.
var ErrRootNotFound = errors.New("scan: root directory does not exist")

// Mode selects how a missing corpus root is treated.
type Mode int

const (
	// ModeInteractive treats a missing root as a fatal error.
	ModeInteractive Mode = iota
	// ModeCI reports a missing root and returns successfully so automated
	// jobs do not fail on an empty checkout.
	ModeCI
)

func (m Mode) String() string {
	if m == ModeCI {
		return "ci"
	}
	return "interactive"
}

// ParseMode parses "interactive" or "ci".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "interactive":
		return ModeInteractive, nil
	case "ci":
		return ModeCI, nil
	default:
		return ModeInteractive, fmt.Errorf("invalid scan mode %q: must be interactive or ci", s)
	}
}

// FileReport is the per-document outcome.
type FileReport struct {
	Path     string // path on disk
	Name     string // path relative to the scan root
	Modified bool   // rewritten content differs from the original
	Written  bool   // the rewrite was persisted (false in dry-run)
	Changes  []rewrite.Change
	Warnings []string
	Err      error
}

// Stats aggregates a whole scan. Files are in processing (walk) order.
type Stats struct {
	Root           string
	Mode           Mode
	DryRun         bool
	RootMissing    bool
	Total          int
	Modified       int
	Warned         int
	AlreadyCorrect int
	Failed         int
	Files          []FileReport
	Warnings       []audit.Warning
}

// Scanner runs the title auditor and rewrite engine over a corpus.
type Scanner struct {
	engine  *rewrite.Engine
	auditor *audit.TitleAuditor
	mode    Mode
	dryRun  bool
	workers int
	log     logger.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMode sets the missing-root behavior.
func WithMode(m Mode) Option {
	return func(s *Scanner) { s.mode = m }
}

// WithDryRun computes changes without writing files.
func WithDryRun(dry bool) Option {
	return func(s *Scanner) { s.dryRun = dry }
}

// WithWorkers bounds per-file fan-out. Values below 1 mean sequential.
func WithWorkers(n int) Option {
	return func(s *Scanner) { s.workers = n }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scanner) { s.log = l }
}

// New creates a Scanner.
func New(engine *rewrite.Engine, auditor *audit.TitleAuditor, opts ...Option) *Scanner {
	s := &Scanner{
		engine:  engine,
		auditor: auditor,
		workers: 1,
		log:     logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// Scan processes every *.html file under root. A failure on one file is
// recorded in its FileReport and does not stop the scan.
func (s *Scanner) Scan(ctx context.Context, root string) (*Stats, error) {
	stats := &Stats{Root: root, Mode: s.mode, DryRun: s.dryRun}

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		if s.mode == ModeCI {
			s.log.Warn("corpus root missing, skipping", logger.String("root", root))
			stats.RootMissing = true
			return stats, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	if err != nil {
		return nil, fmt.Errorf("scan: stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan: %s is not a directory", root)
	}

	paths, unreadable, err := Documents(root)
	if err != nil {
		return nil, err
	}
	for _, r := range unreadable {
		s.log.Warn("skipping unreadable entry", logger.String("path", r.Name), logger.Err(r.Err))
	}
	s.log.Info("scanning corpus",
		logger.String("root", root),
		logger.Int("files", len(paths)),
		logger.Bool("dry_run", s.dryRun),
	)

	reports := make([]FileReport, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = s.processFile(root, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range reports {
		stats.add(r)
	}
	for _, r := range unreadable {
		stats.add(r)
	}
	return stats, nil
}

// Documents lists every *.html file under root in walk order. Entries below
// root that cannot be read are skipped and returned as failed reports; only
// an unreadable root is an error.
func Documents(root string) ([]string, []FileReport, error) {
	var (
		paths      []string
		unreadable []FileReport
	)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			unreadable = append(unreadable, FileReport{
				Path: path,
				Name: relName(root, path),
				Err:  fmt.Errorf("walk: %w", err),
			})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scan: walk %s: %w", root, err)
	}
	return paths, unreadable, nil
}

func relName(root, path string) string {
	name, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return name
}

// CheckContent audits and rewrites one document held in memory. It never
// touches the filesystem.
func (s *Scanner) CheckContent(content string) (rewrite.Result, []string) {
	warnings := s.auditor.Check(content)
	res := s.engine.Apply(content)
	warnings = append(warnings, s.engine.Verify(res.Content)...)
	return res, warnings
}

func (s *Scanner) processFile(root, path string) FileReport {
	name := relName(root, path)
	report := FileReport{Path: path, Name: name}

	info, err := os.Stat(path)
	if err != nil {
		report.Err = fmt.Errorf("stat: %w", err)
		return report
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		report.Err = fmt.Errorf("read: %w", err)
		return report
	}

	res, warnings := s.CheckContent(string(raw))
	report.Modified = res.Changed
	report.Changes = res.Changes
	report.Warnings = warnings

	if res.Changed && !s.dryRun {
		if err := os.WriteFile(path, []byte(res.Content), info.Mode().Perm()); err != nil {
			report.Err = fmt.Errorf("write: %w", err)
			return report
		}
		report.Written = true
	}

	s.log.Debug("processed document",
		logger.String("file", name),
		logger.Bool("modified", report.Modified),
		logger.Int("changes", len(report.Changes)),
		logger.Int("warnings", len(report.Warnings)),
	)
	return report
}

func (st *Stats) add(r FileReport) {
	st.Total++
	st.Files = append(st.Files, r)
	if r.Err != nil {
		st.Failed++
		return
	}
	if r.Modified {
		st.Modified++
	}
	if len(r.Warnings) > 0 {
		st.Warned++
		for _, w := range r.Warnings {
			st.Warnings = append(st.Warnings, audit.Warning{Document: r.Name, Message: w})
		}
	}
	if !r.Modified && len(r.Warnings) == 0 {
		st.AlreadyCorrect++
	}
}

// WarningsByDocument groups collected warnings by document, preserving the
// processing order of documents.
func (st *Stats) WarningsByDocument() ([]string, map[string][]string) {
	var order []string
	grouped := make(map[string][]string)
	for _, w := range st.Warnings {
		if _, ok := grouped[w.Document]; !ok {
			order = append(order, w.Document)
		}
		grouped[w.Document] = append(grouped[w.Document], w.Message)
	}
	return order, grouped
}
