// Package stream opens trace files that may have been compressed by the
// tool that captured them.
package stream

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies the container a stream was written in.
type Format int

const (
	Plain Format = iota
	Gzip
	Zstd
	LZ4
)

func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	}
	return "plain"
}

var (
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// Detect classifies a stream by its leading bytes.
func Detect(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	case bytes.HasPrefix(head, lz4Magic):
		return LZ4
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	}
	return Plain
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Decode wraps src with the decompressor its magic bytes call for. Closing the
// result closes src.
func Decode(src io.ReadCloser) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(src)
	head, _ := br.Peek(4)

	format := Detect(head)
	switch format {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, err
		}
		return &readCloser{Reader: zr, closers: []func() error{zr.Close, src.Close}}, format, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, format, err
		}
		return &readCloser{Reader: zr, closers: []func() error{
			func() error { zr.Close(); return nil },
			src.Close,
		}}, format, nil
	case LZ4:
		return &readCloser{Reader: lz4.NewReader(br), closers: []func() error{src.Close}}, format, nil
	}
	return &readCloser{Reader: br, closers: []func() error{src.Close}}, format, nil
}
