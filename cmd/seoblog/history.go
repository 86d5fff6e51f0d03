package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eringen/seoblog/internal/output"
)

func (a *app) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List published posts and recent fix runs from the ledger",
		Args:  cobra.NoArgs,
		RunE:  a.runHistory,
	}
	cmd.Flags().Int("limit", 10, "number of recent fix runs to show")
	return cmd
}

func (a *app) runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	store, err := a.openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	posts, err := store.ListPosts()
	if err != nil {
		return err
	}
	a.printer.Header("📰 Published posts")
	if len(posts) == 0 {
		a.printer.Print("No posts recorded.")
	} else {
		t := output.NewTable(a.printer.Out(), "DATE", "CATEGORY", "FILE", "TITLE")
		for _, p := range posts {
			t.AddRow(p.Date, p.Category, p.Filename, p.Title)
		}
		if err := t.Render(); err != nil {
			return err
		}
	}

	scans, err := store.ListScans(limit)
	if err != nil {
		return err
	}
	a.printer.Print("")
	a.printer.Header("🔧 Recent fix runs")
	if len(scans) == 0 {
		a.printer.Print("No fix runs recorded.")
		return nil
	}
	t := output.NewTable(a.printer.Out(), "STARTED", "ROOT", "MODE", "DRY RUN", "SCANNED", "FIXED", "WARNED", "FAILED")
	for _, s := range scans {
		t.AddRow(
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Root,
			s.Mode,
			strconv.FormatBool(s.DryRun),
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Modified),
			strconv.Itoa(s.Warned),
			strconv.Itoa(s.Failed),
		)
	}
	return t.Render()
}
