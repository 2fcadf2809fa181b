package dump

import (
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/castcheck/dump/internal/stream"
	"github.com/wippyai/castcheck/errors"
)

// Open opens a dump or expected-bytes file, decompressing gzip, zstd and lz4
// content transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseParse, "open "+path, err)
	}
	rc, format, err := stream.Decode(f)
	if err != nil {
		f.Close()
		return nil, errors.IO(errors.PhaseParse, "decompress "+path, err)
	}
	Logger().Debug("opened input", zap.String("path", path), zap.Stringer("format", format))
	return rc, nil
}

// ParseFile is Parse over the file at path.
func ParseFile(path string) ([]byte, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Parse(rc)
}

// ParseExpectedFile is ParseExpected over the file at path.
func ParseExpectedFile(path string) ([]byte, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ParseExpected(rc)
}
