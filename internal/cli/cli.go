// Package cli holds the glue shared by the command-line tools: logger setup,
// verdict printing and diagnostics.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/castcheck/dump"
	cerrors "github.com/wippyai/castcheck/errors"
	"github.com/wippyai/castcheck/matrix"
	"github.com/wippyai/castcheck/runner"
)

var (
	okStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

// NewLogger returns a development logger on stderr when verbose is set and a
// no-op logger otherwise.
func NewLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// InstallLogger routes the library packages' debug output to l.
func InstallLogger(l *zap.Logger) {
	dump.SetLogger(l)
	matrix.SetLogger(l)
	runner.SetLogger(l)
}

// Reporter prints verdict lines. Output is styled only on a terminal.
type Reporter struct {
	out, err           io.Writer
	styleOut, styleErr bool
}

// NewReporter returns a Reporter writing to stdout and stderr.
func NewReporter(stdout, stderr io.Writer) *Reporter {
	return &Reporter{
		out:      stdout,
		err:      stderr,
		styleOut: isTerminal(stdout),
		styleErr: isTerminal(stderr),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// OK prints "ok: <msg>" on stdout.
func (r *Reporter) OK(format string, args ...any) {
	line := "ok: " + fmt.Sprintf(format, args...)
	if r.styleOut {
		line = okStyle.Render(line)
	}
	fmt.Fprintln(r.out, line)
}

// Fail prints the diagnostic for err on stderr and returns its exit code.
func (r *Reporter) Fail(err error) int {
	lines := Diagnose(err)
	for i, line := range lines {
		if r.styleErr {
			if i == 0 {
				line = errorStyle.Render(line)
			} else {
				line = detailStyle.Render(line)
			}
		}
		fmt.Fprintln(r.err, line)
	}
	return cerrors.ExitCode(err)
}

// Usage prints a usage error and returns the usage exit code.
func (r *Reporter) Usage(msg string) int {
	fmt.Fprintln(r.err, "error: "+msg)
	return cerrors.ExitUsage
}

// Diagnose renders err as the lines printed on stderr: a headline followed by
// indented expected/actual details where they exist.
func Diagnose(err error) []string {
	var e *cerrors.Error
	if !errors.As(err, &e) {
		return []string{"error: " + err.Error()}
	}

	switch e.Kind {
	case cerrors.KindInsufficientLength:
		return []string{
			"error: dump shorter than expected",
			fmt.Sprintf("  expected bytes: %v", e.Expected),
			fmt.Sprintf("  actual bytes:   %v", e.Actual),
		}
	case cerrors.KindByteMismatch:
		return []string{
			fmt.Sprintf("error: mismatch at byte index %d", e.Index),
			"  expected: " + cerrors.FormatValue(e.Expected),
			"  actual:   " + cerrors.FormatValue(e.Actual),
		}
	case cerrors.KindOutcomeMismatch:
		return []string{
			fmt.Sprintf("error: %s mismatch", e.Field),
			"  expected: " + cerrors.FormatValue(e.Expected),
			"  actual:   " + cerrors.FormatValue(e.Actual),
		}
	case cerrors.KindEmptyInput:
		return []string{"error: " + e.Detail}
	case cerrors.KindMalformedDocument:
		if e.Cause != nil {
			return []string{"error: invalid JSON: " + e.Cause.Error()}
		}
		return []string{"error: invalid JSON"}
	case cerrors.KindMalformedToken:
		return []string{fmt.Sprintf("error: line %d: %s", e.Line, e.Detail)}
	case cerrors.KindExitMismatch:
		if e.Cause != nil {
			return []string{"error: " + e.Detail + ": " + e.Cause.Error()}
		}
		return []string{
			"error: simulator exit code mismatch",
			"  expected: " + cerrors.FormatValue(e.Expected),
			"  actual:   " + cerrors.FormatValue(e.Actual),
		}
	case cerrors.KindStdoutMismatch:
		return []string{
			"error: simulator stdout mismatch",
			"expected:",
			cerrors.FormatValue(e.Expected),
			"actual:",
			cerrors.FormatValue(e.Actual),
		}
	}
	return []string{"error: " + e.Error()}
}
