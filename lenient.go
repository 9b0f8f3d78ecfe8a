package structfile

import "log/slog"

// Lenient wraps a File so that failures are logged instead of returned.
//
// Read then returns the wrapped File's empty value on failure. Callers cannot
// tell a failed read from an empty file; use the wrapped File directly when
// that matters.
type Lenient[T any] struct {
	file   File[T]
	logger *slog.Logger
}

// NewLenient returns a Lenient wrapping f. A nil logger means slog.Default().
func NewLenient[T any](f File[T], logger *slog.Logger) *Lenient[T] {
	return &Lenient[T]{file: f, logger: logger}
}

// Read returns the content, or the empty value if reading failed.
func (l *Lenient[T]) Read() T {
	v, err := l.file.Read()
	if err != nil {
		l.log().Error("read failed", "error", err)
	}
	return v
}

// Write replaces the content. Failures are logged.
func (l *Lenient[T]) Write(data T) {
	if err := l.file.Write(data); err != nil {
		l.log().Error("write failed", "error", err)
	}
}

// Append adds data to the content. Failures are logged.
func (l *Lenient[T]) Append(data T) {
	if err := l.file.Append(data); err != nil {
		l.log().Error("append failed", "error", err)
	}
}

func (l *Lenient[T]) log() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return slog.Default()
}
