// Package main provides the promoreel CLI.
//
// Usage:
//
//	promoreel [global options] <command> [options]
//
// Commands other than render and scaffold only read the scenario.
// verify exits with code 3 when the timeline breaks a guarantee.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

// Version is set via ldflags at build time.
var version = "dev"

func main() {
	app := newApp()
	app.ExitErrHandler = exitErrHandler

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "promoreel",
		Usage:   "Compose scenes and transitions into a frame-accurate timeline",
		Version: version,
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			infoCommand(),
			resolveCommand(),
			verifyCommand(),
			renderCommand(),
			scaffoldCommand(),
		},
	}
}

// exitErrHandler preserves exit codes from cli.Exit.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
