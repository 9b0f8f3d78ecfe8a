package structfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// TabularFile stores rows of string fields as comma-delimited records.
//
// Rows may have differing field counts. No header row is assumed. A row
// needs at least one field; a row holding a single empty field is written as
// "" so that it is not read back as a skipped blank line. A "\r\n" inside a
// quoted field is read back as "\n".
type TabularFile struct {
	path string
}

// NewTabularFile returns a TabularFile for path. The file is not accessed.
func NewTabularFile(path string) *TabularFile {
	return &TabularFile{path: path}
}

// Path returns the file path.
func (t *TabularFile) Path() string {
	return t.path
}

// Read returns all records in file order.
//
// Returns an empty slice and an error if the file is missing or its quoting
// is invalid.
func (t *TabularFile) Read() ([][]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return [][]string{}, fmt.Errorf("failed to open %s: %w", t.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows := [][]string{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				err = malformed(err)
			}
			return [][]string{}, fmt.Errorf("failed to parse %s: %w", t.path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Write replaces the content with rows, one record per row.
func (t *TabularFile) Write(rows [][]string) error {
	if err := checkRows(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", t.path, err)
	}
	return writeFile(t.path, func(w io.Writer) error {
		return writeRows(w, rows)
	})
}

// Append writes rows after the existing records, creating the file if absent.
//
// A newline is inserted first when the file does not end with one.
func (t *TabularFile) Append(rows [][]string) error {
	if err := checkRows(rows); err != nil {
		return fmt.Errorf("failed to append to %s: %w", t.path, err)
	}
	return appendFile(t.path, os.O_RDWR, func(f *os.File) error {
		needsEOL, err := missingFinalNewline(f)
		if err != nil {
			return err
		}
		if needsEOL {
			if _, err := f.WriteString("\n"); err != nil {
				return err
			}
		}
		return writeRows(f, rows)
	})
}

// checkRows rejects rows that have no on-disk representation.
func checkRows(rows [][]string) error {
	for i, row := range rows {
		if len(row) == 0 {
			return fmt.Errorf("row %d: %w", i, errEmptyRow)
		}
	}
	return nil
}

func writeRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if len(row) == 1 && row[0] == "" {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return fmt.Errorf("failed to write records: %w", err)
			}
			if _, err := io.WriteString(w, "\"\"\n"); err != nil {
				return fmt.Errorf("failed to write records: %w", err)
			}
			continue
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write records: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

var errEmptyRow = errors.New("row has no fields")

// missingFinalNewline returns true if f is not empty and its last byte is not
// a line feed.
func missingFinalNewline(f *os.File) (bool, error) {
	fi, err := f.Stat()
	if err != nil {
		return false, err
	}
	if fi.Size() == 0 {
		return false, nil
	}
	var last [1]byte
	if _, err := f.ReadAt(last[:], fi.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}
