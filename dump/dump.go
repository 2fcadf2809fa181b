// Package dump extracts byte sequences from trace memory dumps and from
// expected-bytes files.
//
// A dump line looks like
//
//	  0200: A5 00 FF | ...
//
// an optional indent, a four hex digit address, a colon, hex byte tokens and
// an optional annotation after '|'. Any other line is noise and is skipped.
// Bytes from all dump lines are concatenated in document order; addresses are
// kept on Record but never checked for continuity.
package dump

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/castcheck/errors"
)

// maxLine bounds a single trace line.
const maxLine = 1 << 20

var lineRe = regexp.MustCompile(`^\s*([0-9A-Fa-f]{4}):`)

// Record is one address-labelled dump line.
type Record struct {
	Bytes   []byte
	Address uint16
}

// Parse returns the concatenated bytes of every dump line in r.
func Parse(r io.Reader) ([]byte, error) {
	records, err := ParseRecords(r)
	if err != nil {
		return nil, err
	}
	return Flatten(records), nil
}

// ParseRecords returns every dump line in r, in order.
func ParseRecords(r io.Reader) ([]Record, error) {
	var records []Record
	skipped := 0

	err := scanLines(r, func(n int, line string) error {
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			skipped++
			return nil
		}
		addr, err := strconv.ParseUint(m[1], 16, 16)
		if err != nil {
			return errors.MalformedToken(n, m[1], err)
		}

		_, rest, _ := strings.Cut(line, ":")
		data, _, _ := strings.Cut(rest, "|")

		b, err := parseTokens(n, strings.Fields(data))
		if err != nil {
			return err
		}
		if len(b) == 0 {
			return nil
		}
		records = append(records, Record{Address: uint16(addr), Bytes: b})
		return nil
	})
	if err != nil {
		return nil, err
	}

	Logger().Debug("parsed dump",
		zap.Int("records", len(records)),
		zap.Int("skipped_lines", skipped))
	return records, nil
}

// Flatten concatenates record bytes in order.
func Flatten(records []Record) []byte {
	n := 0
	for _, r := range records {
		n += len(r.Bytes)
	}
	out := make([]byte, 0, n)
	for _, r := range records {
		out = append(out, r.Bytes...)
	}
	return out
}

// ParseExpected reads an expected-bytes file: '#' starts a comment, blank
// lines are ignored, every other token is one hex byte.
func ParseExpected(r io.Reader) ([]byte, error) {
	var out []byte
	err := scanLines(r, func(n int, line string) error {
		line, _, _ = strings.Cut(line, "#")
		b, err := parseTokens(n, strings.Fields(line))
		if err != nil {
			return err
		}
		out = append(out, b...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	Logger().Debug("parsed expected bytes", zap.Int("bytes", len(out)))
	return out, nil
}

func parseTokens(line int, tokens []string) ([]byte, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]byte, 0, len(tokens))
	for _, tok := range tokens {
		digits := tok
		if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
			digits = digits[2:]
		}
		v, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			return nil, errors.MalformedToken(line, tok, err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

func scanLines(r io.Reader, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	n := 0
	for sc.Scan() {
		n++
		if err := fn(n, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return errors.IO(errors.PhaseParse, "read input", err)
	}
	return nil
}
