package splitter

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// decodedFile closes the decoder before the underlying file.
type decodedFile struct {
	io.Reader
	closeDecoder func() error
	file         *os.File
}

func (d *decodedFile) Close() error {
	var derr error
	if d.closeDecoder != nil {
		derr = d.closeDecoder()
	}
	ferr := d.file.Close()
	if derr != nil {
		return derr
	}
	return ferr
}

// openInput opens path for reading. Files ending in .gz, .zst or .lz4 are
// decompressed on the fly; anything else is read as is.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "gzip header of %s", path)
		}
		return &decodedFile{Reader: zr, closeDecoder: zr.Close, file: f}, nil
	case ".zst":
		dec, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "zstd reader for %s", path)
		}
		return &decodedFile{Reader: dec, closeDecoder: func() error { dec.Close(); return nil }, file: f}, nil
	case ".lz4":
		return &decodedFile{Reader: lz4.NewReader(f), file: f}, nil
	default:
		return f, nil
	}
}
