// Package runner invokes an external simulator on a built test binary and
// checks how it exited. The simulator is always a separate process; nothing
// here interprets the binary.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	cerrors "github.com/wippyai/castcheck/errors"
)

// Environment variables consulted by ConfigFromEnv.
const (
	EnvSim     = "I8085_SIM"
	EnvSimArgs = "I8085_SIM_ARGS"
)

// Config describes one simulator invocation.
type Config struct {
	// ExpectStdout, when non-nil, must equal the captured stdout exactly.
	ExpectStdout *string
	Sim          string
	Args         []string
	// Env is appended to the current process environment.
	Env        []string
	ExpectExit int
}

// Result is what the simulator produced.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Elapsed  time.Duration
}

// ConfigFromEnv fills Sim and Args from I8085_SIM and I8085_SIM_ARGS.
// getenv is usually os.Getenv.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{Sim: getenv(EnvSim)}
	if raw := getenv(EnvSimArgs); raw != "" {
		args, err := shellquote.Split(raw)
		if err != nil {
			return Config{}, cerrors.New(cerrors.PhaseRun, cerrors.KindConfig).
				Cause(err).
				Detail("parse %s", EnvSimArgs).
				Build()
		}
		cfg.Args = args
	}
	return cfg, nil
}

// Run executes cfg.Sim with cfg.Args followed by binary. The context bounds
// the run; cancelling it kills the simulator.
func Run(ctx context.Context, cfg Config, binary string) (*Result, error) {
	if cfg.Sim == "" {
		return nil, cerrors.Config(cerrors.PhaseRun, EnvSim+" not set and --sim not provided")
	}

	argv := append(append([]string(nil), cfg.Args...), binary)
	cmd := exec.CommandContext(ctx, cfg.Sim, argv...)
	if len(cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), cfg.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	Logger().Debug("running simulator",
		zap.String("sim", cfg.Sim),
		zap.Strings("args", argv))

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return res, cerrors.Wrap(cerrors.PhaseRun, cerrors.KindExitMismatch, ctx.Err(), "simulator did not finish")
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		return res, cerrors.IO(cerrors.PhaseRun, "run "+cfg.Sim, err)
	}

	Logger().Debug("simulator finished",
		zap.Int("exit", res.ExitCode),
		zap.Duration("elapsed", res.Elapsed))

	if res.ExitCode != cfg.ExpectExit {
		return res, cerrors.New(cerrors.PhaseRun, cerrors.KindExitMismatch).
			Expected(cfg.ExpectExit).
			Actual(res.ExitCode).
			Detail("simulator exit code mismatch").
			Build()
	}
	if cfg.ExpectStdout != nil && res.Stdout != *cfg.ExpectStdout {
		return res, cerrors.New(cerrors.PhaseRun, cerrors.KindStdoutMismatch).
			Expected(*cfg.ExpectStdout).
			Actual(res.Stdout).
			Detail("simulator stdout mismatch").
			Build()
	}
	return res, nil
}
