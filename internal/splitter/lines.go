package splitter

import (
	"bufio"
	"io"
)

const readBufferSize = 256 * 1024

// lineReader yields input lines with their terminators intact. The returned
// slice is only valid until the next call.
type lineReader struct {
	r   *bufio.Reader
	buf []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, readBufferSize)}
}

// next returns the next line. A final line without a trailing newline is
// still returned; io.EOF comes only once nothing is left.
func (lr *lineReader) next() ([]byte, error) {
	lr.buf = lr.buf[:0]
	for {
		chunk, err := lr.r.ReadSlice('\n')
		lr.buf = append(lr.buf, chunk...)
		switch err {
		case nil:
			return lr.buf, nil
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			if len(lr.buf) == 0 {
				return nil, io.EOF
			}
			return lr.buf, nil
		default:
			return nil, err
		}
	}
}
