package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type textFormat struct{}

func (textFormat) CanOpen(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".tsv", ".txt":
		return true
	}
	return false
}

func (textFormat) Open(path string, opt Options) (RowReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	lr := NewLineReader(f, delim)
	lr.closer = f
	return lr, nil
}

func sniffDelimiter(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// LineReader tokenizes a text stream line by line with SplitLine. Lines have
// no length limit.
type LineReader struct {
	br     *bufio.Reader
	delim  byte
	line   int
	closer io.Closer
}

// NewLineReader wraps r. A zero delimiter means ','.
func NewLineReader(r io.Reader, delim rune) *LineReader {
	if delim == 0 {
		delim = ','
	}
	return &LineReader{br: bufio.NewReader(r), delim: byte(delim)}
}

// Next implements RowReader. Blank lines are returned as a single empty field.
// A final line without a newline is still returned.
func (r *LineReader) Next() ([]string, int, error) {
	text, err := r.br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, r.line + 1, fmt.Errorf("read line %d: %w", r.line+1, err)
	}
	if err != nil && text == "" {
		return nil, r.line, io.EOF
	}
	r.line++
	text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	if r.line == 1 {
		text = strings.TrimPrefix(text, "\ufeff")
	}
	return splitLine(text, r.delim), r.line, nil
}

// Close releases the underlying file, if any.
func (r *LineReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// SplitLine splits one physical line into fields. A double quote toggles quoted
// mode, in which the delimiter is literal and "" decodes to a single quote.
// Enclosing quotes are dropped and every field is whitespace-trimmed.
// Quoted fields never span lines.
func SplitLine(line string, delim rune) []string {
	if delim == 0 {
		delim = ','
	}
	return splitLine(line, byte(delim))
}

func splitLine(line string, delim byte) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == delim && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	return append(fields, strings.TrimSpace(cur.String()))
}
