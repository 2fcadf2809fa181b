package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess plays the simulator for the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("CASTCHECK_WANT_HELPER") != "1" {
		return
	}
	switch os.Args[len(os.Args)-1] {
	case "ok.bin":
		fmt.Print("done\n")
		os.Exit(0)
	case "trap.bin":
		fmt.Print("pc=0042")
		fmt.Fprint(os.Stderr, "illegal opcode")
		os.Exit(4)
	}
	os.Exit(99)
}

func helperEnv(t *testing.T) func(string) string {
	t.Helper()
	t.Setenv("CASTCHECK_WANT_HELPER", "1")
	env := map[string]string{
		"I8085_SIM":      os.Args[0],
		"I8085_SIM_ARGS": "-test.run=TestHelperProcess --",
	}
	return func(k string) string { return env[k] }
}

func TestRun_OK(t *testing.T) {
	getenv := helperEnv(t)
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--expect-stdout", "done\n", "ok.bin"}, getenv, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
}

func TestRun_ExpectStdoutFile(t *testing.T) {
	getenv := helperEnv(t)
	path := filepath.Join(t.TempDir(), "want.txt")
	require.NoError(t, os.WriteFile(path, []byte("something else\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--expect-stdout-file", path, "ok.bin"}, getenv, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "error: simulator stdout mismatch\nexpected:\nsomething else\n")
}

func TestRun_ExitMismatch(t *testing.T) {
	getenv := helperEnv(t)
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"trap.bin"}, getenv, &stdout, &stderr)
	assert.Equal(t, 1, code)
	out := stderr.String()
	assert.Contains(t, out, "error: simulator exit code mismatch\n  expected: 0\n  actual:   4\n")
	assert.Contains(t, out, "stdout:\npc=0042\n")
	assert.Contains(t, out, "stderr:\nillegal opcode\n")

	stderr.Reset()
	code = run(context.Background(), []string{"--expect-exit", "4", "trap.bin"}, getenv, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
}

func TestRun_NoSimulator(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"ok.bin"}, func(string) string { return "" }, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "I8085_SIM not set")
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(context.Background(), nil, os.Getenv, &stdout, &stderr))
	assert.Equal(t, 2, run(context.Background(), []string{"a.bin", "b.bin"}, os.Getenv, &stdout, &stderr))
}
