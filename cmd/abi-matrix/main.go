// Command abi-matrix generates the integer cast test matrix.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	cerrors "github.com/wippyai/castcheck/errors"
	"github.com/wippyai/castcheck/internal/cli"
	"github.com/wippyai/castcheck/matrix"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("abi-matrix", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		outDir      = fs.String("out", "llvm-project/llvm/test/CodeGen/I8085", "directory to write test files into")
		root        = fs.String("root", matrix.DefaultLayout.Root, "repository root as seen from the RUN lines")
		steps       = fs.Int("steps", matrix.DefaultLayout.Steps, "instruction budget passed to the trace tool")
		list        = fs.Bool("list", false, "print every case and its expected bytes, then exit")
		interactive = fs.Bool("i", false, "interactive mode with TUI")
		verbose     = fs.Bool("v", false, "debug logging to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return cerrors.ExitUsage
	}

	rep := cli.NewReporter(stdout, stderr)
	logger := cli.NewLogger(*verbose)
	defer logger.Sync()
	cli.InstallLogger(logger)

	cases := matrix.Cases()

	if *interactive {
		if err := runInteractive(cases); err != nil {
			return rep.Fail(err)
		}
		return cerrors.ExitOK
	}

	if *list {
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CASE\tSOURCE\tRESULT\tBYTES")
		for _, c := range cases {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name(), c.Value, c.Result(), c.HexBytes())
		}
		tw.Flush()
		return cerrors.ExitOK
	}

	if *steps <= 0 {
		return rep.Usage("--steps must be positive")
	}

	written, err := matrix.WriteAll(*outDir, cases, matrix.Layout{Root: *root, Steps: *steps})
	if err != nil {
		return rep.Fail(err)
	}
	for i := 0; i < len(written); i += 2 {
		fmt.Fprintf(stdout, "wrote %s\n", written[i])
	}
	return cerrors.ExitOK
}
