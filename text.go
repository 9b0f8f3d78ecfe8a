package structfile

import (
	"fmt"
	"io"
	"os"
)

// TextFile stores unstructured text.
type TextFile struct {
	path string
}

// NewTextFile returns a TextFile for path. The file is not accessed.
func NewTextFile(path string) *TextFile {
	return &TextFile{path: path}
}

// Path returns the file path.
func (t *TextFile) Path() string {
	return t.path
}

// Read returns the full content, or "" and an error if it cannot be read.
func (t *TextFile) Read() (string, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", t.path, err)
	}
	return string(data), nil
}

// Write replaces the content with s.
func (t *TextFile) Write(s string) error {
	return writeFile(t.path, func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// Append writes s after the existing content, creating the file if absent.
func (t *TextFile) Append(s string) error {
	return appendFile(t.path, os.O_WRONLY, func(f *os.File) error {
		_, err := f.WriteString(s)
		return err
	})
}
