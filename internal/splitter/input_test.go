package splitter

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCompressed(t *testing.T, name string, wrap func(io.Writer) (io.WriteCloser, error), content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w, err := wrap(f)
	require.NoError(t, err)
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

func TestCompressedInputs(t *testing.T) {
	lines := recordLines(23)
	content := strings.Join(lines, "")

	cases := map[string]func(io.Writer) (io.WriteCloser, error){
		"reviews.json.gz": func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(w), nil
		},
		"reviews.json.zst": func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
		},
		"reviews.json.lz4": func(w io.Writer) (io.WriteCloser, error) {
			return lz4.NewWriter(w), nil
		},
	}

	for name, wrap := range cases {
		t.Run(name, func(t *testing.T) {
			input := writeCompressed(t, name, wrap, content)
			outDir := t.TempDir()

			n, err := CountLines(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, int64(23), n)

			res, err := newTestSplitter(input, outDir, 5, RemainderDrop).Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(4), res.Quota)
			assert.Equal(t, int64(3), res.Dropped)
			assert.Equal(t, lines[:20], concatParts(t, outDir, "split_file_", 5))
		})
	}
}

func TestCorruptGzipFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip at all\n"), 0644))

	_, err := CountLines(context.Background(), path)
	assert.Error(t, err)
}

func TestUppercaseExtension(t *testing.T) {
	input := writeCompressed(t, "REVIEWS.JSON.GZ", func(w io.Writer) (io.WriteCloser, error) {
		return gzip.NewWriter(w), nil
	}, "{}\n{}\n")

	n, err := CountLines(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
