// Package splitter cuts a newline-delimited record file into a fixed number of
// numbered parts that each hold the same number of lines.
//
// A run has two sequential passes over the input. The first counts lines and
// fixes the per-file quota (floor of lines / files); the second copies lines
// into <prefix>1.json .. <prefix>N.json in order. Lines are opaque bytes and are
// never parsed.
package splitter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/pkg/errors"

	"jsonsplit/internal/logging"
)

// Extension is appended to every output file name.
const Extension = ".json"

const (
	writeBufferSize = 256 * 1024
	ctxCheckEvery   = 4096
)

// RemainderPolicy decides what happens to lines left over after floor division.
type RemainderPolicy int

const (
	// RemainderDrop leaves trailing lines unread; they appear in no output file.
	RemainderDrop RemainderPolicy = iota
	// RemainderLast appends trailing lines to the final output file.
	RemainderLast
)

// ParseRemainderPolicy maps "drop" and "last" to a policy.
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch s {
	case "", "drop":
		return RemainderDrop, nil
	case "last":
		return RemainderLast, nil
	default:
		return RemainderDrop, errors.Wrapf(ErrInvalidRemainder, "%q", s)
	}
}

func (p RemainderPolicy) String() string {
	if p == RemainderLast {
		return "last"
	}
	return "drop"
}

// Options is the fixed configuration of one run.
type Options struct {
	InputPath string
	OutputDir string
	Prefix    string
	FileCount int
	Remainder RemainderPolicy
}

// Plan is the outcome of the counting phase.
type Plan struct {
	Options
	TotalLines int64
	Quota      int64
}

// OutputFile describes one written part.
type OutputFile struct {
	Index int
	Path  string
	Lines int64
	Bytes int64
}

// Result is the outcome of a complete run.
type Result struct {
	Plan
	Files   []OutputFile
	Dropped int64
}

// Written returns the number of lines copied into output files.
func (r *Result) Written() int64 {
	var n int64
	for _, f := range r.Files {
		n += f.Lines
	}
	return n
}

// Splitter runs the count and write phases for one set of Options.
type Splitter struct {
	opts Options
}

// New returns a Splitter for opts.
func New(opts Options) *Splitter {
	return &Splitter{opts: opts}
}

// Plan creates the output directory, counts the input and computes the quota.
// No output file exists when Plan returns.
func (s *Splitter) Plan(ctx context.Context) (Plan, error) {
	plan := Plan{Options: s.opts}

	if err := EnsureOutputDirectory(s.opts.OutputDir); err != nil {
		return plan, err
	}

	total, err := CountLines(ctx, s.opts.InputPath)
	if err != nil {
		return plan, err
	}
	plan.TotalLines = total

	quota, err := ComputeQuota(total, s.opts.FileCount)
	if err != nil {
		return plan, err
	}
	plan.Quota = quota

	return plan, nil
}

// Run executes Plan followed by SplitInto.
func (s *Splitter) Run(ctx context.Context) (*Result, error) {
	plan, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return SplitInto(ctx, plan)
}

// EnsureOutputDirectory creates path and any missing parents.
// An existing directory is not an error.
func EnsureOutputDirectory(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}
	return nil
}

// CountLines reads path once and returns its number of lines. A last line
// without a trailing newline counts. Every line must be valid UTF-8.
func CountLines(ctx context.Context, path string) (int64, error) {
	log := logging.Get(logging.CategoryCount)
	timer := logging.StartTimer(logging.CategoryCount, "count lines")
	defer timer.Stop()

	in, err := openInput(path)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	log.Debug("Counting lines in %s", path)

	lr := newLineReader(in)
	var n int64
	for {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		line, err := lr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, errors.Wrapf(err, "read %s", path)
		}
		if !utf8.Valid(line) {
			return n, errors.Wrapf(ErrInvalidEncoding, "%s line %d", path, n+1)
		}
		n++
	}

	log.Info("Counted %d lines in %s", n, path)
	return n, nil
}

// ComputeQuota returns floor(totalLines / fileCount). More files than lines
// yields a quota of 0.
func ComputeQuota(totalLines int64, fileCount int) (int64, error) {
	if err := checkFileCount(fileCount); err != nil {
		return 0, err
	}
	return totalLines / int64(fileCount), nil
}

func checkFileCount(fileCount int) error {
	switch {
	case fileCount == 0:
		return ErrZeroFileCount
	case fileCount < 0:
		return errors.Wrapf(ErrInvalidFileCount, "got %d", fileCount)
	}
	return nil
}

// OutputPath returns dir/<prefix><index>.json.
func OutputPath(dir, prefix string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d%s", prefix, index, Extension))
}

// SplitInto reads the input a second time and writes plan.FileCount parts of
// plan.Quota lines each, truncating existing files. Parts past the end of the
// input are created empty. Leftover lines are handled per plan.Remainder.
func SplitInto(ctx context.Context, plan Plan) (*Result, error) {
	if err := checkFileCount(plan.FileCount); err != nil {
		return nil, err
	}

	log := logging.Get(logging.CategorySplit)

	in, err := openInput(plan.InputPath)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	res := &Result{Plan: plan, Files: make([]OutputFile, 0, plan.FileCount)}
	lr := newLineReader(in)

	for i := 1; i <= plan.FileCount; i++ {
		limit := plan.Quota
		if i == plan.FileCount && plan.Remainder == RemainderLast {
			limit = -1
		}

		out, err := writePart(ctx, lr, OutputPath(plan.OutputDir, plan.Prefix, i), limit)
		if err != nil {
			return res, err
		}
		out.Index = i
		res.Files = append(res.Files, out)
		log.With("part", i).Debug("Wrote %d lines (%d bytes) to %s", out.Lines, out.Bytes, out.Path)
	}

	if dropped := plan.TotalLines - res.Written(); dropped > 0 {
		res.Dropped = dropped
		log.Warn("Dropped %d remainder lines", dropped)
	}

	return res, nil
}

// writePart copies up to limit lines (all remaining when limit < 0) into a
// freshly truncated file at path.
func writePart(ctx context.Context, lr *lineReader, path string, limit int64) (out OutputFile, err error) {
	out.Path = path

	f, err := os.Create(path)
	if err != nil {
		return out, errors.Wrap(err, "create output file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	w := bufio.NewWriterSize(f, writeBufferSize)
	for limit < 0 || out.Lines < limit {
		if out.Lines%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return out, err
			}
		}
		line, err := lr.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, errors.Wrap(err, "read input")
		}
		n, err := w.Write(line)
		out.Bytes += int64(n)
		if err != nil {
			return out, errors.Wrapf(err, "write %s", path)
		}
		out.Lines++
	}

	if err := w.Flush(); err != nil {
		return out, errors.Wrapf(err, "flush %s", path)
	}
	return out, nil
}
