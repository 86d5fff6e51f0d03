package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/seoblog"
	"github.com/eringen/seoblog/internal/logger"
	"github.com/eringen/seoblog/internal/output"
	"github.com/eringen/seoblog/scan"
)

func (a *app) fixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [root]",
		Short: "Normalize legacy URLs and audit titles across the corpus",
		Long: `Rewrite superseded hosting URLs to the canonical domain in every .html file
under root (default "blog"), verify the URL-bearing meta tags and report
titles longer than 60 characters.

In interactive mode a missing root is an error (exit 1); in ci mode it is
reported and the command exits 0.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runFix,
	}
	cmd.Flags().String("mode", scan.ModeInteractive.String(), "interactive or ci")
	cmd.Flags().Bool("dry-run", false, "report fixes without writing files")
	cmd.Flags().Int("workers", 0, "files processed in parallel (default from config, 1)")
	_ = a.v.BindPFlag("rewrite.workers", cmd.Flags().Lookup("workers"))
	return cmd
}

func (a *app) runFix(cmd *cobra.Command, args []string) error {
	root := a.cfg.Content.Root
	if len(args) > 0 {
		root = args[0]
	}
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := scan.ParseMode(modeFlag)
	if err != nil {
		return &output.CLIError{Summary: err.Error(), ExitCode: output.ExitUsageError, Err: err}
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	engine, err := a.cfg.Engine()
	if err != nil {
		return err
	}
	scanner := scan.New(engine, a.cfg.Auditor(),
		scan.WithMode(mode),
		scan.WithDryRun(dryRun),
		scan.WithWorkers(a.cfg.Rewrite.Workers),
		scan.WithLogger(a.log),
	)

	a.printer.ScanBanner(a.cfg.Site.Name)
	started := time.Now()
	stats, err := scanner.Scan(cmd.Context(), root)
	if errors.Is(err, scan.ErrRootNotFound) {
		return &output.CLIError{
			Summary:    fmt.Sprintf("Directory '%s' does not exist", root),
			Suggestion: "pass the corpus directory, or use --mode ci to treat a missing directory as a no-op",
			ExitCode:   output.ExitGeneral,
			Err:        err,
		}
	}
	if err != nil {
		return err
	}
	if stats.RootMissing {
		a.printer.Warning("Directory '%s' does not exist, nothing to fix", root)
		return nil
	}

	a.printer.ScanFiles(stats, a.cfg.Rewrite.CorrectDomain)
	if err := a.printer.ScanSummary(stats); err != nil {
		return err
	}
	a.recordScan(stats, started)
	return nil
}

// recordScan stores the run in the ledger. The ledger is bookkeeping only, so
// a failure is logged and does not change the exit status.
func (a *app) recordScan(stats *scan.Stats, started time.Time) {
	store, err := seoblog.NewStore(a.cfg.Ledger.Path)
	if err != nil {
		a.log.Warn("ledger unavailable, scan not recorded", logger.Err(err))
		return
	}
	defer store.Close()
	_, err = store.RecordScan(seoblog.ScanRecord{
		Root:           stats.Root,
		Mode:           stats.Mode.String(),
		DryRun:         stats.DryRun,
		Total:          stats.Total,
		Modified:       stats.Modified,
		Warned:         stats.Warned,
		AlreadyCorrect: stats.AlreadyCorrect,
		Failed:         stats.Failed,
		StartedAt:      started,
		FinishedAt:     time.Now(),
	})
	if err != nil {
		a.log.Warn("scan not recorded", logger.Err(err))
	}
}
