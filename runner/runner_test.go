package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/wippyai/castcheck/errors"
)

// TestHelperProcess stands in for the simulator. The last argument selects
// its behaviour.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("CASTCHECK_WANT_HELPER") != "1" {
		return
	}
	args := os.Args
	switch args[len(args)-1] {
	case "ok.bin":
		fmt.Print("hello\n")
		os.Exit(0)
	case "fail.bin":
		fmt.Print("partial")
		fmt.Fprint(os.Stderr, "trap at 0x0042")
		os.Exit(3)
	case "hang.bin":
		time.Sleep(time.Minute)
		os.Exit(0)
	}
	os.Exit(99)
}

func helperConfig() Config {
	return Config{
		Sim:  os.Args[0],
		Args: []string{"-test.run=TestHelperProcess", "--"},
		Env:  []string{"CASTCHECK_WANT_HELPER=1"},
	}
}

func kindOf(t *testing.T, err error) cerrors.Kind {
	t.Helper()
	var e *cerrors.Error
	require.True(t, errors.As(err, &e), "want *errors.Error, got %v", err)
	return e.Kind
}

func TestRun_OK(t *testing.T) {
	cfg := helperConfig()
	want := "hello\n"
	cfg.ExpectStdout = &want

	res, err := Run(context.Background(), cfg, "ok.bin")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", res.Stdout)
}

func TestRun_ExitMismatch(t *testing.T) {
	res, err := Run(context.Background(), helperConfig(), "fail.bin")
	require.Error(t, err)
	assert.Equal(t, cerrors.KindExitMismatch, kindOf(t, err))
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "partial", res.Stdout)
	assert.Equal(t, "trap at 0x0042", res.Stderr)
	assert.Equal(t, cerrors.ExitFailed, cerrors.ExitCode(err))
}

func TestRun_ExpectedNonZeroExit(t *testing.T) {
	cfg := helperConfig()
	cfg.ExpectExit = 3
	_, err := Run(context.Background(), cfg, "fail.bin")
	require.NoError(t, err)
}

func TestRun_StdoutMismatch(t *testing.T) {
	cfg := helperConfig()
	want := "goodbye\n"
	cfg.ExpectStdout = &want

	_, err := Run(context.Background(), cfg, "ok.bin")
	require.Error(t, err)
	assert.Equal(t, cerrors.KindStdoutMismatch, kindOf(t, err))
}

func TestRun_MissingSim(t *testing.T) {
	_, err := Run(context.Background(), Config{}, "ok.bin")
	require.Error(t, err)
	assert.Equal(t, cerrors.KindConfig, kindOf(t, err))
	assert.Equal(t, cerrors.ExitUsage, cerrors.ExitCode(err))
	assert.Contains(t, err.Error(), EnvSim)
}

func TestRun_SimNotFound(t *testing.T) {
	_, err := Run(context.Background(), Config{Sim: "/nonexistent/i8085-sim"}, "ok.bin")
	require.Error(t, err)
	assert.Equal(t, cerrors.KindIO, kindOf(t, err))
}

func TestRun_Deadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := Run(ctx, helperConfig(), "hang.bin")
	require.Error(t, err)
	assert.Equal(t, cerrors.KindExitMismatch, kindOf(t, err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConfigFromEnv(t *testing.T) {
	env := map[string]string{
		EnvSim:     "/opt/sim/i8085",
		EnvSimArgs: `-q --trace "out dir/trace.txt"`,
	}
	cfg, err := ConfigFromEnv(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "/opt/sim/i8085", cfg.Sim)
	assert.Equal(t, []string{"-q", "--trace", "out dir/trace.txt"}, cfg.Args)

	empty, err := ConfigFromEnv(func(string) string { return "" })
	require.NoError(t, err)
	assert.Empty(t, empty.Sim)
	assert.Nil(t, empty.Args)

	_, err = ConfigFromEnv(func(k string) string {
		if k == EnvSimArgs {
			return `"unterminated`
		}
		return ""
	})
	require.Error(t, err)
	assert.Equal(t, cerrors.KindConfig, kindOf(t, err))
}
