package chunk

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Chunk is a contiguous group of lines from the source file.
type Chunk struct {
	// Index is the 1-based position of the chunk in the file.
	Index int
	// Text is the chunk's lines joined byte-for-byte, terminators included.
	Text string
	// Lines is the number of lines in Text.
	Lines int
	// StartLine is the 1-based file line number of the first line.
	StartLine int
}

// Reader yields chunks of a file in order. It is not safe for concurrent use.
type Reader struct {
	path    string
	size    int
	file    *os.File
	br      *bufio.Reader
	line    int
	current Chunk
	err     error
	done    bool
}

// Open validates size and opens path for chunked reading. The caller must
// Close the returned Reader.
func Open(path string, size int) (*Reader, error) {
	if size <= 0 {
		return nil, ErrInvalidChunkSize
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &FileAccessError{Path: path, Err: err}
	}
	if info.IsDir() {
		f.Close()
		return nil, &FileAccessError{Path: path, Err: errors.New("is a directory")}
	}
	return &Reader{
		path: path,
		size: size,
		file: f,
		br:   bufio.NewReaderSize(f, 64*1024),
	}, nil
}

// Next advances to the next chunk. It returns false at end of file or on
// error; check Err afterwards.
func (r *Reader) Next() bool {
	if r.done {
		return false
	}

	var sb strings.Builder
	lines := 0
	start := r.line + 1
	for lines < r.size {
		s, err := r.br.ReadString('\n')
		if len(s) > 0 {
			r.line++
			if !utf8.ValidString(s) {
				r.fail(&EncodingError{Path: r.path, Line: r.line})
				return false
			}
			sb.WriteString(s)
			lines++
		}
		if err == io.EOF {
			r.done = true
			break
		}
		if err != nil {
			r.fail(&FileAccessError{Path: r.path, Err: err})
			return false
		}
	}

	if lines == 0 {
		return false
	}
	r.current = Chunk{
		Index:     r.current.Index + 1,
		Text:      sb.String(),
		Lines:     lines,
		StartLine: start,
	}
	return true
}

func (r *Reader) fail(err error) {
	r.err = err
	r.done = true
	r.current = Chunk{}
}

// Chunk returns the chunk produced by the most recent call to Next.
func (r *Reader) Chunk() Chunk { return r.current }

// Err returns the first error encountered while reading, if any.
func (r *Reader) Err() error { return r.err }

// Path returns the file being read.
func (r *Reader) Path() string { return r.path }

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
