// Command seoblog publishes AI-written SEO articles into a static blog and
// keeps the corpus URLs and titles in shape.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/eringen/seoblog/internal/output"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(stdout, stderr)
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		_ = a.log.Sync()
	}
	return a.exitCode(err)
}

func (a *app) exitCode(err error) int {
	if err == nil {
		return output.ExitSuccess
	}
	printer := a.printer
	if printer == nil {
		printer = output.NewPrinterWithWriters(a.stdout, a.stderr, false)
	}
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		printer.FormatError(cliErr)
		return cliErr.ExitCode
	}
	printer.FormatError(&output.CLIError{Summary: err.Error()})
	return output.ExitGeneral
}
