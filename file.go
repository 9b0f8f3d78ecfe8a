package structfile

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// File is implemented by every on-disk format.
//
// Read returns the format's empty value together with the error on failure.
type File[T any] interface {
	Read() (T, error)
	Write(data T) error
	Append(data T) error
}

// ErrMalformed is returned when file content cannot be parsed in the file's
// format.
var ErrMalformed = errors.New("malformed content")

var (
	_ File[Document]   = (*JSONFile)(nil)
	_ File[string]     = (*TextFile)(nil)
	_ File[[][]string] = (*TabularFile)(nil)
)

const fileMode = 0o644

// writeFile replaces the content of path with the bytes produced by fn.
func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("failed to open %s for write: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// appendFile opens path for appending, creating it if absent, and calls fn.
// access is os.O_WRONLY or os.O_RDWR.
func appendFile(path string, access int, fn func(f *os.File) error) error {
	f, err := os.OpenFile(path, access|os.O_APPEND|os.O_CREATE, fileMode)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", path, err)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// malformed tags a decoding error with ErrMalformed.
func malformed(err error) error {
	if errors.Is(err, ErrMalformed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrMalformed, err)
}
