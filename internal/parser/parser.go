package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// RowReader yields tokenized rows from a tabular source, one physical row at a time.
type RowReader interface {
	// Next returns the next row with its 1-based line (or sheet row) number.
	// It returns io.EOF once the source is exhausted.
	Next() (row []string, line int, err error)
	Close() error
}

// Options controls how a source is opened.
type Options struct {
	// Delimiter for text sources. If 0, ',' is used (or '\t' for .tsv files).
	Delimiter rune
	// SheetName selects an XLSX sheet by name; it takes precedence over SheetIndex.
	SheetName string
	// SheetIndex is the 1-based XLSX sheet index used when SheetName is empty.
	SheetIndex int
}

// Format opens one family of tabular files.
type Format interface {
	CanOpen(filename string) bool
	Open(path string, opt Options) (RowReader, error)
}

var registry []Format

// Register adds a format implementation to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// Open selects a format based on filename and returns a row reader over it.
// Files with unknown extensions are read as comma-separated text.
func Open(path string, opt Options) (RowReader, error) {
	if err := validateDelimiter(opt.Delimiter); err != nil {
		return nil, err
	}
	for _, f := range registry {
		if f.CanOpen(path) {
			return f.Open(path, opt)
		}
	}
	return textFormat{}.Open(path, opt)
}

// ParseDelimiter maps user-facing delimiter names to a rune.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("%w: delimiter %q (use ','|';'|'tab')", ErrUnsupported, s)
	}
}

func validateDelimiter(d rune) error {
	switch d {
	case 0, ',', ';', '\t':
		return nil
	}
	return fmt.Errorf("%w: delimiter %q", ErrUnsupported, d)
}

// ReadAll drains a RowReader. Mostly useful in tests.
func ReadAll(r RowReader) ([][]string, error) {
	var rows [][]string
	for {
		row, _, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return rows, nil
			}
			return rows, err
		}
		rows = append(rows, row)
	}
}

func init() {
	Register(textFormat{})
	Register(xlsxFormat{})
}

// ErrUnsupported indicates a format or option is not supported.
var ErrUnsupported = errors.New("unsupported input")
