// Command verify-summary checks the halt reason in an i8085-trace summary.
package main

import (
	"flag"
	"io"
	"os"

	cerrors "github.com/wippyai/castcheck/errors"
	"github.com/wippyai/castcheck/internal/cli"
	"github.com/wippyai/castcheck/outcome"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("verify-summary", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		summaryPath = fs.String("summary", "", "path to summary JSON output")
		expectHalt  = fs.String("expect-halt", "", "expected halt reason")
		field       = fs.String("field", outcome.HaltField, "summary field to check")
		verbose     = fs.Bool("v", false, "debug logging to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return cerrors.ExitUsage
	}

	rep := cli.NewReporter(stdout, stderr)
	if *summaryPath == "" || *expectHalt == "" {
		fs.Usage()
		return rep.Usage("--summary and --expect-halt are required")
	}

	logger := cli.NewLogger(*verbose)
	defer logger.Sync()
	cli.InstallLogger(logger)

	data, err := os.ReadFile(*summaryPath)
	if err != nil {
		return rep.Fail(cerrors.IO(cerrors.PhaseVerify, "read "+*summaryPath, err))
	}

	if err := outcome.Verify(data, *field, *expectHalt); err != nil {
		return rep.Fail(err)
	}
	rep.OK("%s matched", *field)
	return cerrors.ExitOK
}
