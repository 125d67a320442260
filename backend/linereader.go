package backend

import (
	"bufio"
	"errors"
	"io"
)

// LineReader hands out only complete newline-terminated lines. A trailing
// line that has not been terminated yet is held back and reported as io.EOF
// until the rest of it arrives, so a CSV parser reading a file that is still
// being written never sees a torn record.
type LineReader struct {
	src      *bufio.Reader
	pending  []byte
	ready    []byte
	finished bool
}

var _ io.Reader = (*LineReader)(nil)

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		src: bufio.NewReader(r),
	}
}

// Finish marks the source as fully written. Once it is exhausted, an
// unterminated final line is handed out instead of held back.
func (l *LineReader) Finish() {
	l.finished = true
}

// Held reports whether an unterminated final line is being held back.
func (l *LineReader) Held() bool {
	return len(l.pending) > 0
}

func (l *LineReader) Read(b []byte) (int, error) {
	if len(l.ready) == 0 {
		line, err := l.src.ReadBytes('\n')
		l.pending = append(l.pending, line...)
		if err != nil && !(l.finished && errors.Is(err, io.EOF) && len(l.pending) > 0) {
			return 0, err
		}
		l.ready, l.pending = l.pending, nil
	}
	n := copy(b, l.ready)
	l.ready = l.ready[n:]
	return n, nil
}
