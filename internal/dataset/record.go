package dataset

import "strings"

// Record is one artist's parsed metrics row. Records are values and are
// never mutated after the loader builds them.
type Record struct {
	Name      string  `json:"name"`
	Streams   float64 `json:"streams"`
	Daily     float64 `json:"daily"`
	AsLead    float64 `json:"as_lead"`
	Solo      float64 `json:"solo"`
	AsFeature float64 `json:"as_feature"`
}

// Attribute names one numeric field of a Record.
type Attribute string

const (
	Streams   Attribute = "streams"
	Daily     Attribute = "daily"
	Solo      Attribute = "solo"
	AsLead    Attribute = "aslead"
	AsFeature Attribute = "asfeature"
)

// Attributes lists the numeric attributes in column order.
var Attributes = []Attribute{Streams, Daily, AsLead, Solo, AsFeature}

// ParseAttribute resolves user-facing names: streams, daily, solo,
// aslead|as_lead and asfeature|as_feature (case-insensitive).
func ParseAttribute(name string) (Attribute, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "streams":
		return Streams, true
	case "daily":
		return Daily, true
	case "solo":
		return Solo, true
	case "aslead", "as_lead":
		return AsLead, true
	case "asfeature", "as_feature":
		return AsFeature, true
	}
	return "", false
}

// Value returns the field named by a. Unknown attributes read as 0.
func (r Record) Value(a Attribute) float64 {
	switch a {
	case Streams:
		return r.Streams
	case Daily:
		return r.Daily
	case Solo:
		return r.Solo
	case AsLead:
		return r.AsLead
	case AsFeature:
		return r.AsFeature
	}
	return 0
}

// Values extracts attribute a from every record, in order. An unknown
// attribute yields an empty slice.
func Values(records []Record, a Attribute) []float64 {
	switch a {
	case Streams, Daily, Solo, AsLead, AsFeature:
	default:
		return []float64{}
	}
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Value(a)
	}
	return out
}
