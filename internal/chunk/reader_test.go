package chunk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func numberedLines(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	return sb.String()
}

func readAll(t *testing.T, path string, size int) []Chunk {
	t.Helper()
	r, err := Open(path, size)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	var chunks []Chunk
	for r.Next() {
		chunks = append(chunks, r.Chunk())
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	return chunks
}

func TestReader_ChunkCounts(t *testing.T) {
	tests := []struct {
		lines, size int
		wantSizes   []int
	}{
		{0, 3, nil},
		{1, 3, []int{1}},
		{3, 3, []int{3}},
		{7, 3, []int{3, 3, 1}},
		{9, 3, []int{3, 3, 3}},
		{5, 1, []int{1, 1, 1, 1, 1}},
		{2500, 1000, []int{1000, 1000, 500}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_lines_by_%d", tt.lines, tt.size), func(t *testing.T) {
			content := numberedLines(tt.lines)
			chunks := readAll(t, writeFile(t, content), tt.size)

			var sizes []int
			var joined strings.Builder
			for i, c := range chunks {
				if c.Index != i+1 {
					t.Errorf("chunk %d has Index %d", i, c.Index)
				}
				if got := strings.Count(c.Text, "\n"); got != c.Lines {
					t.Errorf("chunk %d: Lines = %d but text has %d lines", c.Index, c.Lines, got)
				}
				sizes = append(sizes, c.Lines)
				joined.WriteString(c.Text)
			}
			if diff := cmp.Diff(tt.wantSizes, sizes); diff != "" {
				t.Errorf("chunk sizes mismatch (-want +got):\n%s", diff)
			}
			if joined.String() != content {
				t.Error("concatenated chunks differ from file content")
			}
		})
	}
}

func TestReader_PreservesTerminators(t *testing.T) {
	content := "alpha\r\nbeta\n\ngamma"
	chunks := readAll(t, writeFile(t, content), 2)

	want := []Chunk{
		{Index: 1, Text: "alpha\r\nbeta\n", Lines: 2, StartLine: 1},
		{Index: 2, Text: "\ngamma", Lines: 2, StartLine: 3},
	}
	if diff := cmp.Diff(want, chunks); diff != "" {
		t.Errorf("chunks mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_StartLines(t *testing.T) {
	chunks := readAll(t, writeFile(t, numberedLines(10)), 4)
	var starts []int
	for _, c := range chunks {
		starts = append(starts, c.StartLine)
	}
	if diff := cmp.Diff([]int{1, 5, 9}, starts); diff != "" {
		t.Errorf("start lines mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := Open("does-not-matter.txt", size)
		if !errors.Is(err, ErrInvalidChunkSize) {
			t.Errorf("Open(size=%d) error = %v, want ErrInvalidChunkSize", size, err)
		}
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"), 10)
	var fae *FileAccessError
	if !errors.As(err, &fae) {
		t.Fatalf("error = %v, want *FileAccessError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(t.TempDir(), 10)
	var fae *FileAccessError
	if !errors.As(err, &fae) {
		t.Fatalf("error = %v, want *FileAccessError", err)
	}
}

func TestReader_InvalidUTF8(t *testing.T) {
	content := "ok\nstill ok\nbad \xff\xfe byte\nnever read\n"
	r, err := Open(writeFile(t, content), 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	n := 0
	for r.Next() {
		n++
	}
	if n != 2 {
		t.Errorf("yielded %d chunks before failure, want 2", n)
	}
	var ee *EncodingError
	if !errors.As(r.Err(), &ee) {
		t.Fatalf("Err() = %v, want *EncodingError", r.Err())
	}
	if ee.Line != 3 {
		t.Errorf("EncodingError.Line = %d, want 3", ee.Line)
	}
	if r.Next() {
		t.Error("Next should stay false after an error")
	}
}

func TestReader_CloseTwice(t *testing.T) {
	r, err := Open(writeFile(t, "x\n"), 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
