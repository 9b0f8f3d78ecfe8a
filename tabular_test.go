package structfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// setupTabular returns a TabularFile in the test's temp directory, optionally
// seeded with content.
func setupTabular(t *testing.T, content string) *TabularFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	return NewTabularFile(path)
}

func TestTabularFile(t *testing.T) {
	t.Run("Read", func(t *testing.T) {
		t.Run("missing file", func(t *testing.T) {
			f := NewTabularFile(filepath.Join(t.TempDir(), "missing.csv"))
			got, err := f.Read()
			if !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Read() error = %v, want fs.ErrNotExist", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Read() = %#v, want empty slice", got)
			}
		})

		tests := []struct {
			name    string
			content string
			want    [][]string
		}{
			{"empty file", "", [][]string{}},
			{"crlf", "a,b\r\nc,d\r\n", [][]string{{"a", "b"}, {"c", "d"}}},
			{"no final newline", "a,b\nc,d", [][]string{{"a", "b"}, {"c", "d"}}},
			{"ragged rows", "a\nb,c,d\n", [][]string{{"a"}, {"b", "c", "d"}}},
			{"quoted", "\"x,y\",\"say \"\"hi\"\"\"\n", [][]string{{"x,y", `say "hi"`}}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := setupTabular(t, tt.content)
				if tt.content == "" {
					if err := os.WriteFile(f.Path(), nil, 0o644); err != nil {
						t.Fatalf("WriteFile failed: %v", err)
					}
				}
				got, err := f.Read()
				if err != nil {
					t.Fatalf("Read failed: %v", err)
				}
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("Read() = %#v, want %#v", got, tt.want)
				}
			})
		}

		t.Run("malformed", func(t *testing.T) {
			f := setupTabular(t, "a,b\"c\n")
			got, err := f.Read()
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Read() error = %v, want ErrMalformed", err)
			}
			if len(got) != 0 {
				t.Errorf("Read() = %#v, want empty", got)
			}
		})
	})

	t.Run("Write", func(t *testing.T) {
		tests := []struct {
			name string
			rows [][]string
		}{
			{"header and rows", [][]string{{"Name", "Age"}, {"Alla", "25"}, {"Sergey", "30"}}},
			{"embedded comma", [][]string{{"Penza, Russia", "1"}}},
			{"embedded quote", [][]string{{`say "hi"`, `"`}}},
			{"embedded newline", [][]string{{"line 1\nline 2", "x"}, {"y", "z"}}},
			{"leading space", [][]string{{" padded", "trailing "}}},
			{"empty fields", [][]string{{"", "b", ""}}},
			{"no rows", [][]string{}},
			{"lone empty field", [][]string{{""}}},
			{"empty field between rows", [][]string{{"x"}, {""}, {"y"}}},
			{"single comma", [][]string{{"", ""}}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := setupTabular(t, "")
				if err := f.Write(tt.rows); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
				for range 2 {
					got, err := f.Read()
					if err != nil {
						t.Fatalf("Read failed: %v", err)
					}
					if !reflect.DeepEqual(got, tt.rows) {
						t.Errorf("Read() = %#v, want %#v", got, tt.rows)
					}
				}
			})
		}

		t.Run("crlf in field", func(t *testing.T) {
			f := setupTabular(t, "")
			if err := f.Write([][]string{{"a\r\nb", "c"}}); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			got, err := f.Read()
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			want := [][]string{{"a\nb", "c"}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Read() = %#v, want %#v", got, want)
			}
		})

		t.Run("row without fields", func(t *testing.T) {
			f := setupTabular(t, "keep\n")
			err := f.Write([][]string{{"a"}, {}, {"b"}})
			if !errors.Is(err, errEmptyRow) {
				t.Errorf("Write() error = %v, want errEmptyRow", err)
			}
			if got := readRaw(t, f.Path()); got != "keep\n" {
				t.Errorf("content = %q, want unchanged", got)
			}
		})

		t.Run("quoting", func(t *testing.T) {
			f := setupTabular(t, "")
			if err := f.Write([][]string{{"a,b", `c"d`, "e"}}); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			want := "\"a,b\",\"c\"\"d\",e\n"
			if got := readRaw(t, f.Path()); got != want {
				t.Errorf("content = %q, want %q", got, want)
			}
		})

		t.Run("overwrites", func(t *testing.T) {
			f := setupTabular(t, "old,row\nanother,row\n")
			if err := f.Write([][]string{{"new"}}); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if got := readRaw(t, f.Path()); got != "new\n" {
				t.Errorf("content = %q, want %q", got, "new\n")
			}
		})

		t.Run("missing directory", func(t *testing.T) {
			f := NewTabularFile(filepath.Join(t.TempDir(), "nope", "test.csv"))
			if err := f.Write([][]string{{"a"}}); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Write() error = %v, want fs.ErrNotExist", err)
			}
		})
	})

	t.Run("Append", func(t *testing.T) {
		t.Run("preserves order", func(t *testing.T) {
			f := setupTabular(t, "")
			if err := f.Write([][]string{{"a", "1"}}); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if err := f.Append([][]string{{"b", "2"}, {"c", "3"}}); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			if err := f.Append([][]string{{"d", "4"}}); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			got, err := f.Read()
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			want := [][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}, {"d", "4"}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Read() = %#v, want %#v", got, want)
			}
		})

		t.Run("lone empty field", func(t *testing.T) {
			f := setupTabular(t, "a,1\n")
			if err := f.Append([][]string{{""}, {"b", "2"}}); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			got, err := f.Read()
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			want := [][]string{{"a", "1"}, {""}, {"b", "2"}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Read() = %#v, want %#v", got, want)
			}
		})

		t.Run("row without fields", func(t *testing.T) {
			f := setupTabular(t, "a,1\n")
			if err := f.Append([][]string{{}}); !errors.Is(err, errEmptyRow) {
				t.Errorf("Append() error = %v, want errEmptyRow", err)
			}
			if got := readRaw(t, f.Path()); got != "a,1\n" {
				t.Errorf("content = %q, want unchanged", got)
			}
		})

		t.Run("no final newline", func(t *testing.T) {
			f := setupTabular(t, "a,1")
			if err := f.Append([][]string{{"b", "2"}}); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			if got := readRaw(t, f.Path()); got != "a,1\nb,2\n" {
				t.Errorf("content = %q, want %q", got, "a,1\nb,2\n")
			}
		})

		t.Run("missing file", func(t *testing.T) {
			f := NewTabularFile(filepath.Join(t.TempDir(), "new.csv"))
			if err := f.Append([][]string{{"Margo", "35"}}); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			got, err := f.Read()
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			want := [][]string{{"Margo", "35"}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Read() = %#v, want %#v", got, want)
			}
		})

		t.Run("missing directory", func(t *testing.T) {
			f := NewTabularFile(filepath.Join(t.TempDir(), "nope", "test.csv"))
			if err := f.Append([][]string{{"a"}}); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("Append() error = %v, want fs.ErrNotExist", err)
			}
		})
	})
}
