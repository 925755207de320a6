package dataset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/KaramelBytes/streamstats-cli/internal/parser"
)

// minRowTokens is the fewest fields a data row may have before it is
// considered corrupt. The positional first row of a headless file needs all six.
const (
	minRowTokens        = 2
	positionalRowTokens = 6
)

// Level grades a row diagnostic.
type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Diagnostic is one line-numbered note produced while loading.
type Diagnostic struct {
	Line    int    `json:"line"`
	Level   Level  `json:"level"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Field != "" {
		return fmt.Sprintf("line %d: %s: %s (%s)", d.Line, d.Level, d.Message, d.Field)
	}
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Level, d.Message)
}

// LoadReport summarizes one ingestion pass.
type LoadReport struct {
	Source      string       `json:"source"`
	Header      bool         `json:"header"`
	Columns     ColumnMap    `json:"columns"`
	Imported    int          `json:"imported"`
	Skipped     int          `json:"skipped"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Count returns how many diagnostics have the given level.
func (r LoadReport) Count(level Level) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Level == level {
			n++
		}
	}
	return n
}

// Options controls Load.
type Options struct {
	Parser parser.Options
	// Logger receives row diagnostics and the final import summary. Nil discards them.
	Logger *slog.Logger
}

// Dataset is the ordered, read-only collection of records built by one load.
type Dataset struct {
	records []Record
	report  LoadReport
}

// Records returns the records in input order. The slice is a copy.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return slices.Clone(d.records)
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Report returns the diagnostics of the load that built d.
func (d *Dataset) Report() LoadReport {
	if d == nil {
		return LoadReport{}
	}
	return d.report
}

// AttributeValues returns one value per record for the named attribute
// (see ParseAttribute). Unknown names yield an empty slice.
func (d *Dataset) AttributeValues(name string) []float64 {
	a, ok := ParseAttribute(name)
	if !ok || d == nil {
		return []float64{}
	}
	return Values(d.records, a)
}

// Load opens path and ingests it. Only a failure to open the source is
// returned as an error; malformed rows are skipped and reported in the
// dataset's LoadReport and on the logger.
func Load(path string, opt Options) (*Dataset, error) {
	rr, err := parser.Open(path, opt.Parser)
	if err != nil {
		return nil, err
	}
	defer rr.Close()
	d := Read(rr, opt.Logger)
	d.report.Source = path
	return d, nil
}

// Read ingests every row of rr. A read error mid-stream ends the load with an
// error diagnostic; rows accepted before it are kept.
func Read(rr parser.RowReader, log *slog.Logger) *Dataset {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := &loader{log: log}
	l.run(rr)
	log.Info("csv import finished",
		"imported", l.report.Imported,
		"skipped", l.report.Skipped,
		"total", len(l.records),
	)
	return &Dataset{records: l.records, report: l.report}
}

type loader struct {
	log     *slog.Logger
	cols    ColumnMap
	records []Record
	report  LoadReport
}

func (l *loader) run(rr parser.RowReader) {
	first, line, err := rr.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.note(0, LevelWarning, "", "empty file")
		} else {
			l.note(line, LevelError, "", err.Error())
		}
		return
	}

	l.cols, l.report.Header = DetectHeader(first)
	l.report.Columns = l.cols
	if l.report.Header {
		if missing := l.cols.Missing(); len(missing) > 0 {
			l.note(line, LevelWarning, strings.Join(missing, ","), "header does not name every column")
		}
	} else if len(first) >= positionalRowTokens {
		l.accept(first, line)
	} else {
		l.skip(line, LevelWarning, "", fmt.Sprintf("too few columns (%d)", len(first)))
	}

	for {
		row, line, err := rr.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.note(line, LevelError, "", err.Error())
			}
			return
		}
		if blank(row) {
			continue
		}
		if len(row) < minRowTokens {
			l.skip(line, LevelWarning, "", fmt.Sprintf("too few columns (%d)", len(row)))
			continue
		}
		l.accept(row, line)
	}
}

// accept validates and parses one row, appending a Record on success.
func (l *loader) accept(row []string, line int) {
	if !l.cols.Complete() {
		l.skip(line, LevelWarning, strings.Join(l.cols.Missing(), ","), "incomplete column mapping")
		return
	}
	name := cell(row, l.cols.Artist)
	if name == "" {
		l.skip(line, LevelWarning, "artist", "empty artist name")
		return
	}
	rec := Record{Name: name}
	fields := []struct {
		attr Attribute
		idx  int
		dst  *float64
	}{
		{Streams, l.cols.Streams, &rec.Streams},
		{Daily, l.cols.Daily, &rec.Daily},
		{AsLead, l.cols.AsLead, &rec.AsLead},
		{Solo, l.cols.Solo, &rec.Solo},
		{AsFeature, l.cols.AsFeature, &rec.AsFeature},
	}
	for _, f := range fields {
		raw := cell(row, f.idx)
		v, trailing, err := parser.ParseNumber(raw)
		if err != nil {
			l.skip(line, LevelError, string(f.attr), fmt.Sprintf("non-numeric value %q", raw))
			return
		}
		if trailing != "" {
			l.note(line, LevelWarning, string(f.attr), fmt.Sprintf("unexpected characters in %q", raw))
		}
		*f.dst = v
	}
	l.records = append(l.records, rec)
	l.report.Imported++
}

func (l *loader) skip(line int, level Level, field, msg string) {
	l.report.Skipped++
	l.note(line, level, field, "row skipped: "+msg)
}

func (l *loader) note(line int, level Level, field, msg string) {
	d := Diagnostic{Line: line, Level: level, Field: field, Message: msg}
	l.report.Diagnostics = append(l.report.Diagnostics, d)
	attrs := []any{"line", line}
	if field != "" {
		attrs = append(attrs, "field", field)
	}
	if level == LevelError {
		l.log.Error(msg, attrs...)
	} else {
		l.log.Warn(msg, attrs...)
	}
}

// cell returns row[idx], or "" when the row is too short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
