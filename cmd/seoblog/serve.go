package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/seoblog"
	"github.com/eringen/seoblog/scan"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the corpus over HTTP",
		Long: `Serve the corpus directory as static files, with /sitemap.xml and /feed.xml
built from the publish ledger and a dry-run audit report at /_audit.`,
		Args: cobra.NoArgs,
		RunE: a.runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default from config, \":8080\")")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	engine, err := a.cfg.Engine()
	if err != nil {
		return err
	}
	store, err := a.openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	scanner := scan.New(engine, a.cfg.Auditor(),
		scan.WithMode(scan.ModeCI),
		scan.WithDryRun(true),
		scan.WithWorkers(a.cfg.Rewrite.Workers),
		scan.WithLogger(a.log),
	)
	srv := seoblog.NewServer(a.cfg.SiteConfig(),
		seoblog.WithLedger(store),
		seoblog.WithAuditScanner(scanner),
		seoblog.WithServerLogger(a.log),
		seoblog.WithAddr(a.cfg.Server.Addr),
	)
	a.printer.Info("Serving %s on %s (audit report at /_audit)", a.cfg.Content.Root, a.cfg.Server.Addr)
	return srv.Start(cmd.Context())
}
