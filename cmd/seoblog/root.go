package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/seoblog"
	"github.com/eringen/seoblog/internal/config"
	"github.com/eringen/seoblog/internal/logger"
	"github.com/eringen/seoblog/internal/output"
)

// app carries the state shared by all commands for one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfgFile   string
	verbose   bool
	colorMode string

	v       *viper.Viper
	cfg     *config.Config
	log     logger.Logger
	printer *output.Printer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, v: viper.New()}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "seoblog",
		Short: "SEO blog publisher and corpus URL fixer",
		Long: `seoblog writes AI-generated SEO articles into a static blog directory and
normalizes legacy hosting URLs across the published corpus.

Example usage:
  seoblog publish                        # Publish an article on a random catalog topic
  seoblog publish "Staying active in winter"
  seoblog fix                            # Fix URLs and audit titles under ./blog
  seoblog fix site/blog --mode ci        # CI mode: a missing directory is not an error
  seoblog serve                          # Preview the corpus on :8080`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is .seoblog.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose diagnostic logging")
	pf.StringVar(&a.colorMode, "color", "auto", "color output: auto, always, or never")
	pf.String("content-root", "", "corpus directory (default from config, \"blog\")")
	_ = a.v.BindPFlag("content.root", pf.Lookup("content-root"))

	root.AddCommand(
		a.publishCmd(),
		a.fixCmd(),
		a.serveCmd(),
		a.historyCmd(),
		a.initCmd(),
		versionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger and printer.
func (a *app) setup() error {
	cfg, err := config.LoadWith(a.v, a.cfgFile)
	if err != nil {
		return &output.CLIError{
			Summary:    "could not load configuration",
			Detail:     err.Error(),
			Suggestion: "check .seoblog.yaml and SEOBLOG_* environment variables",
			ExitCode:   output.ExitConfigError,
			Err:        err,
		}
	}
	a.cfg = cfg

	log, err := logger.NewLogger(a.verbose, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.log = log

	mode, err := output.ParseColorMode(a.colorMode)
	if err != nil {
		return &output.CLIError{Summary: err.Error(), ExitCode: output.ExitUsageError, Err: err}
	}
	a.printer = output.NewPrinterWithWriters(a.stdout, a.stderr, output.ResolveColors(mode, cfg.Output.Colors))

	log.Debug("configuration loaded",
		logger.String("content_root", cfg.Content.Root),
		logger.String("correct_domain", cfg.Rewrite.CorrectDomain),
		logger.Strings("wrong_domains", cfg.Rewrite.WrongDomains),
	)
	return nil
}

// openLedger opens the publish ledger named in the configuration.
func (a *app) openLedger() (*seoblog.Store, error) {
	store, err := seoblog.NewStore(a.cfg.Ledger.Path)
	if err != nil {
		return nil, &output.CLIError{
			Summary:  "could not open ledger " + a.cfg.Ledger.Path,
			Detail:   err.Error(),
			ExitCode: output.ExitGeneral,
			Err:      err,
		}
	}
	return store, nil
}
