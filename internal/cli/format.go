// Adapts each structfile variant to command line text input and output.

package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/maruel/structfile"
	"github.com/maruel/structfile/internal/config"
	"gopkg.in/yaml.v3"
)

// handle drives one file through the structfile contract using text data.
type handle interface {
	read(w io.Writer) error
	write(data string) error
	append(data string) error
}

// fileHandle implements handle for any File[T].
type fileHandle[T any] struct {
	file   structfile.File[T]
	decode func(string) (T, error)
	encode func(io.Writer, T) error
}

func (h *fileHandle[T]) read(w io.Writer) error {
	v, err := h.file.Read()
	if err != nil {
		return err
	}
	return h.encode(w, v)
}

func (h *fileHandle[T]) write(data string) error {
	v, err := h.decode(data)
	if err != nil {
		return err
	}
	return h.file.Write(v)
}

func (h *fileHandle[T]) append(data string) error {
	v, err := h.decode(data)
	if err != nil {
		return err
	}
	return h.file.Append(v)
}

// lenientFile exposes a Lenient as a File that never fails.
type lenientFile[T any] struct {
	l *structfile.Lenient[T]
}

func (f lenientFile[T]) Read() (T, error) {
	return f.l.Read(), nil
}

func (f lenientFile[T]) Write(data T) error {
	f.l.Write(data)
	return nil
}

func (f lenientFile[T]) Append(data T) error {
	f.l.Append(data)
	return nil
}

func maybeLenient[T any](f structfile.File[T], lenient bool, logger *slog.Logger) structfile.File[T] {
	if !lenient {
		return f
	}
	return lenientFile[T]{l: structfile.NewLenient(f, logger)}
}

// newHandle returns the handle for format at path.
func newHandle(format, path string, lenient bool, logger *slog.Logger) (handle, error) {
	switch format {
	case config.FormatJSON:
		return &fileHandle[structfile.Document]{
			file:   maybeLenient[structfile.Document](structfile.NewJSONFile(path), lenient, logger),
			decode: decodeDocument,
			encode: encodeDocument,
		}, nil
	case config.FormatText:
		return &fileHandle[string]{
			file:   maybeLenient[string](structfile.NewTextFile(path), lenient, logger),
			decode: func(s string) (string, error) { return s, nil },
			encode: func(w io.Writer, s string) error {
				_, err := io.WriteString(w, s)
				return err
			},
		}, nil
	case config.FormatCSV:
		return &fileHandle[[][]string]{
			file:   maybeLenient[[][]string](structfile.NewTabularFile(path), lenient, logger),
			decode: decodeRows,
			encode: encodeRows,
		}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// decodeDocument parses a YAML or JSON literal holding an object or an array.
func decodeDocument(s string) (structfile.Document, error) {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return structfile.Document{}, fmt.Errorf("failed to parse data: %w", err)
	}
	switch t := normalize(v).(type) {
	case map[string]any:
		return structfile.NewObject(t), nil
	case []any:
		return structfile.NewArray(t...), nil
	default:
		return structfile.Document{}, fmt.Errorf("data must be an object or an array, got %T", v)
	}
}

// normalize converts YAML mappings with non-string keys to map[string]any so
// the value can be encoded as JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}

func encodeDocument(w io.Writer, doc structfile.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// decodeRows parses a YAML or JSON list of lists of strings.
func decodeRows(s string) ([][]string, error) {
	var rows [][]string
	if err := yaml.Unmarshal([]byte(s), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse rows: %w", err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}

func encodeRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	return cw.WriteAll(rows)
}
