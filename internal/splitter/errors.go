package splitter

import "github.com/pkg/errors"

var (
	// ErrZeroFileCount is the division error: a quota cannot be computed for zero files.
	ErrZeroFileCount = errors.New("division by zero: file count is 0")

	// ErrInvalidFileCount reports a negative file count.
	ErrInvalidFileCount = errors.New("file count must be positive")

	// ErrInvalidEncoding reports input that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("input is not valid UTF-8")

	// ErrInvalidRemainder reports an unknown remainder policy.
	ErrInvalidRemainder = errors.New("unknown remainder policy")
)
