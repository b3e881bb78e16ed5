package chunk

import (
	"errors"
	"fmt"
)

// ErrInvalidChunkSize is returned by Open when the chunk size is not positive.
var ErrInvalidChunkSize = errors.New("chunk size must be a positive number of lines")

// FileAccessError reports that the input file could not be opened or read.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("accessing %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// EncodingError reports a line that is not valid UTF-8.
type EncodingError struct {
	Path string
	Line int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s:%d: invalid UTF-8 byte sequence", e.Path, e.Line)
}
