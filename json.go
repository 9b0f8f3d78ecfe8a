package structfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// JSONFile stores a single Document as pretty-printed JSON.
type JSONFile struct {
	path string
}

// NewJSONFile returns a JSONFile for path. The file is not accessed.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the file path.
func (j *JSONFile) Path() string {
	return j.path
}

// Read parses the file.
//
// Returns the empty object and an error if the file is missing or is not a
// JSON object or array.
func (j *JSONFile) Read() (Document, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", j.path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse %s: %w", j.path, malformed(err))
	}
	return doc, nil
}

// Write replaces the file content with doc.
func (j *JSONFile) Write(doc Document) error {
	content, err := marshalDocument(doc.Value())
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", j.path, err)
	}
	return writeFile(j.path, func(w io.Writer) error {
		_, err := w.Write(content)
		return err
	})
}

// Append adds the root value of doc as the last element of the file's array.
//
// A missing file is created. Empty or unparsable content is replaced by an
// empty array first; an object root becomes the first element of the array.
func (j *JSONFile) Append(doc Document) error {
	f, err := os.OpenFile(j.path, os.O_RDWR|os.O_CREATE, fileMode)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", j.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	existing, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", j.path, err)
	}
	items := j.elements(existing)
	items = append(items, doc.Value())

	content, err := marshalDocument(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", j.path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind %s: %w", j.path, err)
	}
	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", j.path, err)
	}
	if err := f.Truncate(int64(len(content))); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", j.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", j.path, err)
	}
	return nil
}

// elements returns the existing content as the array to append to.
func (j *JSONFile) elements(data []byte) []any {
	if len(bytes.TrimSpace(data)) == 0 {
		return []any{}
	}
	v, err := decodeValue(data)
	if err != nil {
		slog.Warn("treating unparsable JSON as empty array", "path", j.path, "error", err)
		return []any{}
	}
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	default:
		return []any{t}
	}
}

func marshalDocument(v any) ([]byte, error) {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(content, '\n'), nil
}
