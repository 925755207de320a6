package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/streamstats-cli/internal/dataset"
	"github.com/KaramelBytes/streamstats-cli/internal/parser"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func load(t *testing.T, content string) *dataset.Dataset {
	t.Helper()
	d, err := dataset.Load(writeCSV(t, "artists.csv", content), dataset.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return d
}

func TestLoadHeaderRoundTrip(t *testing.T) {
	d := load(t, "name,streams,daily,aslead,solo,asfeature\n\"Foo\",100,10,60,30,40\n")
	recs := d.Records()
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.Name != "Foo" || r.Streams != 100 || r.AsLead != 60 || r.Daily != 10 || r.Solo != 30 || r.AsFeature != 40 {
		t.Fatalf("record = %+v", r)
	}
	rep := d.Report()
	if !rep.Header || rep.Imported != 1 || rep.Skipped != 0 {
		t.Fatalf("report = %+v", rep)
	}
}

func TestLoadHeaderByNameAnyOrder(t *testing.T) {
	d := load(t, "Solo,Artist,As feature,Streams,Daily,As lead\n30,Foo,40,100,10,60\n")
	recs := d.Records()
	if len(recs) != 1 {
		t.Fatalf("got %d records", len(recs))
	}
	want := dataset.Record{Name: "Foo", Streams: 100, Daily: 10, AsLead: 60, Solo: 30, AsFeature: 40}
	if recs[0] != want {
		t.Fatalf("record = %+v, want %+v", recs[0], want)
	}
}

func TestLoadUnrecognizedColumnSkipsRows(t *testing.T) {
	d := load(t, "Artist,Streams (M),Daily,As lead,Solo,As feature\nFoo,100,10,60,30,40\n")
	rep := d.Report()
	if rep.Columns.Streams != dataset.Unmapped || d.Len() != 0 || rep.Skipped != 1 {
		t.Fatalf("len %d report %+v", d.Len(), rep)
	}
}

func TestLoadHeadless(t *testing.T) {
	d := load(t, "Drake,85041.5,52.3,56000,38000,29041.5\nFoo,1,2,3,4,5\n")
	recs := d.Records()
	if len(recs) != 2 || recs[0].Name != "Drake" || recs[1].AsFeature != 5 {
		t.Fatalf("records = %+v", recs)
	}
	if d.Report().Header {
		t.Fatalf("expected headless load")
	}
}

func TestLoadHeadlessShortFirstRowSkipped(t *testing.T) {
	d := load(t, "Foo,1,2\nBar,1,2,3,4,5\n")
	rep := d.Report()
	if rep.Imported != 1 || rep.Skipped != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if d.Records()[0].Name != "Bar" {
		t.Fatalf("records = %+v", d.Records())
	}
}

func TestLoadSkipsEmptyName(t *testing.T) {
	d := load(t, "name,streams,daily,aslead,solo,asfeature\nFoo,100,10,60,30,40\n  ,5,5,5,5,5\nBar,1,1,1,1,1\n")
	rep := d.Report()
	if d.Len() != 2 || rep.Skipped != 1 || rep.Imported != 2 {
		t.Fatalf("len %d report %+v", d.Len(), rep)
	}
	if rep.Diagnostics[0].Line != 3 || rep.Diagnostics[0].Field != "artist" {
		t.Fatalf("diagnostic = %+v", rep.Diagnostics[0])
	}
}

func TestLoadSkipsBadRowsAndContinues(t *testing.T) {
	content := strings.Join([]string{
		"artist,streams,daily,as lead,solo,as feature",
		"Foo,100,10,60,30,40",
		"Bad,abc,10,60,30,40",
		"Lonely",
		"",
		"   ",
		"Short,7,1",
		"Bar,2,2,2,2,2",
	}, "\n")
	d := load(t, content)
	rep := d.Report()
	// "Short" lacks trailing columns, which read as 0.
	if d.Len() != 3 || rep.Skipped != 2 {
		t.Fatalf("len %d report %+v", d.Len(), rep)
	}
	if rep.Count(dataset.LevelError) != 1 {
		t.Fatalf("errors = %d, diagnostics %v", rep.Count(dataset.LevelError), rep.Diagnostics)
	}
	short := d.Records()[1]
	if short.Name != "Short" || short.Streams != 7 || short.AsLead != 0 || short.AsFeature != 0 {
		t.Fatalf("short = %+v", short)
	}
}

func TestLoadIncompleteHeaderSkipsEveryRow(t *testing.T) {
	d := load(t, "name,streams,daily\nFoo,1,2\nBar,3,4\n")
	rep := d.Report()
	if !rep.Header || d.Len() != 0 || rep.Skipped != 2 {
		t.Fatalf("len %d report %+v", d.Len(), rep)
	}
	if !strings.Contains(rep.Diagnostics[0].Message, "header does not name every column") {
		t.Fatalf("first diagnostic = %v", rep.Diagnostics[0])
	}
}

func TestLoadTrailingCharactersWarn(t *testing.T) {
	d := load(t, "name,streams,daily,aslead,solo,asfeature\nFoo,100M,10,60,30,40\n")
	rep := d.Report()
	if d.Len() != 1 || d.Records()[0].Streams != 100 {
		t.Fatalf("records = %+v", d.Records())
	}
	if rep.Count(dataset.LevelWarning) != 1 || rep.Diagnostics[0].Field != "streams" {
		t.Fatalf("diagnostics = %v", rep.Diagnostics)
	}
}

func TestLoadDecimalCommaSemicolon(t *testing.T) {
	p := writeCSV(t, "artists.csv", "\ufeffArtist;Streams;Daily;As lead;Solo;As feature\nRosalía;\"1 234,5\";12,5;600;300;400\n")
	d, err := dataset.Load(p, dataset.Options{Parser: parser.Options{Delimiter: ';'}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	recs := d.Records()
	if len(recs) != 1 || recs[0].Streams != 1234.5 || recs[0].Daily != 12.5 {
		t.Fatalf("records = %+v", recs)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	d := load(t, "")
	rep := d.Report()
	if d.Len() != 0 || len(rep.Diagnostics) != 1 || rep.Diagnostics[0].Message != "empty file" {
		t.Fatalf("len %d report %+v", d.Len(), rep)
	}
}

func TestLoadOpenFailure(t *testing.T) {
	_, err := dataset.Load(filepath.Join(t.TempDir(), "missing.csv"), dataset.Options{})
	if err == nil {
		t.Fatalf("expected open error")
	}
}

func TestAttributeValues(t *testing.T) {
	d := load(t, "name,streams,daily,aslead,solo,asfeature\nFoo,100,10,60,30,40\nBar,50,5,20,10,30\n")
	cases := map[string][]float64{
		"streams":    {100, 50},
		"DAILY":      {10, 5},
		"as_lead":    {60, 20},
		"aslead":     {60, 20},
		"solo":       {30, 10},
		"as_feature": {40, 30},
	}
	for name, want := range cases {
		got := d.AttributeValues(name)
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("AttributeValues(%q) = %v, want %v", name, got, want)
		}
	}
	if got := d.AttributeValues("popularity"); got == nil || len(got) != 0 {
		t.Errorf("unknown attribute = %#v, want empty", got)
	}
}

func TestLoadContinuesAfterVeryLongRow(t *testing.T) {
	long := "Big," + strings.Repeat("x", 2<<20) + ",1,1,1,1"
	d := load(t, "name,streams,daily,aslead,solo,asfeature\nA,1,1,1,1,1\n"+long+"\nB,2,2,2,2,2\nC,3,3,3,3,3\n")
	recs := d.Records()
	if len(recs) != 3 || recs[0].Name != "A" || recs[1].Name != "B" || recs[2].Name != "C" {
		t.Fatalf("got %d records, want A,B,C", len(recs))
	}
	rep := d.Report()
	if rep.Imported != 3 || rep.Skipped != 1 || len(rep.Diagnostics) != 1 {
		t.Fatalf("report = imported %d skipped %d diagnostics %d", rep.Imported, rep.Skipped, len(rep.Diagnostics))
	}
	if diag := rep.Diagnostics[0]; diag.Line != 3 || diag.Field != "streams" || diag.Level != dataset.LevelError {
		t.Fatalf("diagnostic = line %d field %q level %s", diag.Line, diag.Field, diag.Level)
	}
}

func TestRecordsIsACopy(t *testing.T) {
	d := load(t, "Foo,1,2,3,4,5\n")
	recs := d.Records()
	recs[0].Name = "changed"
	if d.Records()[0].Name != "Foo" {
		t.Fatalf("dataset mutated through Records()")
	}
}
