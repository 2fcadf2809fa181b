// Command verify-dump checks an i8085-trace memory dump against an
// expected-bytes file.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/wippyai/castcheck/compare"
	"github.com/wippyai/castcheck/dump"
	cerrors "github.com/wippyai/castcheck/errors"
	"github.com/wippyai/castcheck/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("verify-dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dumpPath     = fs.String("dump", "", "path to i8085-trace stderr output")
		expectedPath = fs.String("expected", "", "path to expected hex bytes")
		verbose      = fs.Bool("v", false, "debug logging to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return cerrors.ExitUsage
	}

	rep := cli.NewReporter(stdout, stderr)
	if *dumpPath == "" || *expectedPath == "" {
		fs.Usage()
		return rep.Usage("--dump and --expected are required")
	}

	logger := cli.NewLogger(*verbose)
	defer logger.Sync()
	cli.InstallLogger(logger)

	expected, err := dump.ParseExpectedFile(*expectedPath)
	if err != nil {
		return rep.Fail(err)
	}
	observed, err := dump.ParseFile(*dumpPath)
	if err != nil {
		return rep.Fail(err)
	}

	res, err := compare.Compare(expected, observed)
	if err != nil {
		return rep.Fail(err)
	}
	rep.OK("matched %d bytes", res.Matched)
	return cerrors.ExitOK
}
