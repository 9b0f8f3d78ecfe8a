// Package structfile reads, writes and appends structured data stored in files.
//
// # Overview
//
// The package centers around [File], a generic contract with three operations
// implemented once per on-disk format:
//
//   - [JSONFile] stores a [Document]: a single JSON object or an array of values.
//   - [TextFile] stores an unstructured string.
//   - [TabularFile] stores comma-delimited records as [][]string.
//
// A variant only holds its path. Every call opens the file, reads or writes it
// completely and closes it before returning. Nothing is cached between calls.
//
// # Append
//
// Append means something different per format. Text is concatenated. Records
// are added after the existing ones. A JSON file is read, its root promoted to
// an array if it is not one already, the new value added as the last element
// and the whole file rewritten.
//
// # Errors
//
// Read always returns a usable value: on failure it is the format's empty value
// alongside the error. A missing file matches [fs.ErrNotExist] and unparsable
// content matches [ErrMalformed]. [Lenient] wraps any [File] to log failures
// instead of returning them.
//
// # Concurrency
//
// None. The read-modify-write of [JSONFile.Append] is not atomic; use a single
// writer per path.
package structfile
