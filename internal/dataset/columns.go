package dataset

import "strings"

// Unmapped marks a logical column with no physical index.
const Unmapped = -1

// headerThreshold is the number of recognized names needed to treat the
// first row as a header. Two or fewer recognized names mean the row is data.
const headerThreshold = 3

// ColumnMap maps each logical column to a physical column index.
type ColumnMap struct {
	Artist    int
	Streams   int
	Daily     int
	AsLead    int
	Solo      int
	AsFeature int
}

// PositionalColumns is the fixed layout used for files without a header:
// name, streams, daily, asLead, solo, asFeature.
var PositionalColumns = ColumnMap{Artist: 0, Streams: 1, Daily: 2, AsLead: 3, Solo: 4, AsFeature: 5}

func unmappedColumns() ColumnMap {
	return ColumnMap{Artist: Unmapped, Streams: Unmapped, Daily: Unmapped, AsLead: Unmapped, Solo: Unmapped, AsFeature: Unmapped}
}

// Complete reports whether every logical column has an index.
func (m ColumnMap) Complete() bool {
	return m.Artist >= 0 && m.Streams >= 0 && m.Daily >= 0 &&
		m.AsLead >= 0 && m.Solo >= 0 && m.AsFeature >= 0
}

// Missing lists the logical columns without an index.
func (m ColumnMap) Missing() []string {
	var out []string
	for _, c := range []struct {
		name string
		idx  int
	}{
		{"artist", m.Artist}, {"streams", m.Streams}, {"daily", m.Daily},
		{"aslead", m.AsLead}, {"solo", m.Solo}, {"asfeature", m.AsFeature},
	} {
		if c.idx < 0 {
			out = append(out, c.name)
		}
	}
	return out
}

// DetectHeader inspects the first row. If at least three fields name a
// logical column it returns the name-based map and header=true; otherwise the
// row is data and the positional map is returned. When a name repeats, the
// later column wins.
func DetectHeader(row []string) (m ColumnMap, header bool) {
	m = unmappedColumns()
	recognized := 0
	for i, field := range row {
		switch normalizeKey(field) {
		case "artist", "name":
			m.Artist = i
		case "streams", "stream":
			m.Streams = i
		case "daily":
			m.Daily = i
		case "aslead", "lead", "asprincipal":
			m.AsLead = i
		case "solo":
			m.Solo = i
		case "asfeature", "feature", "feat":
			m.AsFeature = i
		default:
			continue
		}
		recognized++
	}
	if recognized < headerThreshold {
		return PositionalColumns, false
	}
	return m, true
}

// normalizeKey lower-cases s and keeps only ASCII letters and digits, so
// "As lead", "as_lead" and "AS-LEAD" all become "aslead".
func normalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}
