// Command sim-run runs an external i8085 simulator on a binary and checks its
// exit code and, optionally, its stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	cerrors "github.com/wippyai/castcheck/errors"
	"github.com/wippyai/castcheck/internal/cli"
	"github.com/wippyai/castcheck/runner"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, " ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sim-run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var simArgs stringList
	var (
		sim            = fs.String("sim", "", "simulator executable (default: $"+runner.EnvSim+")")
		expectExit     = fs.Int("expect-exit", 0, "expected simulator exit code")
		expectStdout   = fs.String("expect-stdout", "", "expected simulator stdout")
		expectStdoutFn = fs.String("expect-stdout-file", "", "file holding the expected simulator stdout")
		timeout        = fs.Duration("timeout", 0, "kill the simulator after this long (0 = no limit)")
		verbose        = fs.Bool("v", false, "debug logging to stderr")
	)
	fs.Var(&simArgs, "sim-arg", "extra simulator argument (repeatable)")
	if err := fs.Parse(args); err != nil {
		return cerrors.ExitUsage
	}

	rep := cli.NewReporter(stdout, stderr)
	if fs.NArg() != 1 {
		fs.Usage()
		return rep.Usage("exactly one binary is required")
	}

	logger := cli.NewLogger(*verbose)
	defer logger.Sync()
	cli.InstallLogger(logger)

	cfg, err := runner.ConfigFromEnv(getenv)
	if err != nil {
		return rep.Fail(err)
	}
	if *sim != "" {
		cfg.Sim = *sim
	}
	cfg.Args = append(cfg.Args, simArgs...)
	cfg.ExpectExit = *expectExit

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "expect-stdout" {
			s := *expectStdout
			cfg.ExpectStdout = &s
		}
	})
	if *expectStdoutFn != "" {
		data, err := os.ReadFile(*expectStdoutFn)
		if err != nil {
			return rep.Fail(cerrors.IO(cerrors.PhaseRun, "read "+*expectStdoutFn, err))
		}
		s := string(data)
		cfg.ExpectStdout = &s
	}

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := runner.Run(ctx, cfg, fs.Arg(0))
	if err != nil {
		code := rep.Fail(err)
		if res != nil && cerrors.ExitCode(err) == cerrors.ExitFailed {
			if res.Stdout != "" {
				fmt.Fprintf(stderr, "stdout:\n%s\n", res.Stdout)
			}
			if res.Stderr != "" {
				fmt.Fprintf(stderr, "stderr:\n%s\n", res.Stderr)
			}
		}
		return code
	}
	logger.Sugar().Debugf("simulator passed in %s", time.Since(start))
	return cerrors.ExitOK
}
