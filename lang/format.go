package lang

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Result is the final value of a declared unknown.
type Result struct {
	Name  string  `json:"name"  yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label" yaml:"label"`
}

// String returns the result as a report line with full precision.
func (r Result) String() string { return r.Text(-1) }

// Text returns the result as "NAME -> VALUE LABEL". The label and its
// separating space are omitted when the label is empty.
func (r Result) Text(precision int) string {
	s := r.Name + " -> " + FormatValue(r.Value, precision)
	if r.Label != "" {
		s += " " + r.Label
	}

	return s
}

// MarshalJSON encodes non-finite values as the strings "+Inf", "-Inf" and
// "NaN", which JSON numbers cannot represent.
func (r Result) MarshalJSON() ([]byte, error) {
	var value any = r.Value

	if math.IsInf(r.Value, 0) || math.IsNaN(r.Value) {
		value = strconv.FormatFloat(r.Value, 'g', -1, 64)
		if math.IsInf(r.Value, 1) {
			value = "+Inf"
		}
	}

	return json.Marshal(struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
		Label string `json:"label"`
	}{r.Name, value, r.Label})
}

// FormatValue formats v with the given number of decimals, or in the
// shortest form that round-trips when precision is negative.
func FormatValue(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strconv.FormatFloat(v, 'f', precision, 64)
}

// ReportFormat selects the encoding of a report.
type ReportFormat int

// Report encodings.
const (
	ReportText ReportFormat = iota
	ReportJSON
	ReportYAML
)

var reportFormatNames = [...]string{
	ReportText: "text",
	ReportJSON: "json",
	ReportYAML: "yaml",
}

// ReportFormats returns an iterator over valid report format names.
func ReportFormats() iter.Seq[string] {
	return slices.Values(reportFormatNames[:])
}

// String returns the format name.
func (f ReportFormat) String() string {
	if f < 0 || int(f) >= len(reportFormatNames) {
		return "ReportFormat(" + strconv.Itoa(int(f)) + ")"
	}

	return reportFormatNames[f]
}

// ParseReportFormat returns the format with the given case-insensitive name.
func ParseReportFormat(s string) (ReportFormat, error) {
	i := slices.Index(reportFormatNames[:], strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return ReportText, fmt.Errorf("unknown report format %q (want %s)",
			s, strings.Join(reportFormatNames[:], ", "))
	}

	return ReportFormat(i), nil
}

// MarshalText implements encoding.TextMarshaler.
func (f ReportFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *ReportFormat) UnmarshalText(text []byte) error {
	v, err := ParseReportFormat(string(text))
	if err != nil {
		return err
	}

	*f = v

	return nil
}

// WriteReport encodes results to w. A non-negative precision rounds values
// to that many decimals.
func WriteReport(w io.Writer, results []Result, format ReportFormat, precision int) error {
	switch format {
	case ReportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rounded(results, precision))

	case ReportYAML:
		data, err := yaml.Marshal(rounded(results, precision))
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err

	default:
		for _, r := range results {
			if _, err := fmt.Fprintln(w, r.Text(precision)); err != nil {
				return err
			}
		}

		return nil
	}
}

func rounded(results []Result, precision int) []Result {
	out := make([]Result, len(results))

	for i, r := range results {
		if precision >= 0 && !math.IsInf(r.Value, 0) && !math.IsNaN(r.Value) {
			r.Value, _ = strconv.ParseFloat(FormatValue(r.Value, precision), 64)
		}

		out[i] = r
	}

	return out
}
