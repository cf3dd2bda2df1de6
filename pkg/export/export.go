// Package export writes resolved members in the roll-former line format
// and reads that format back.
//
// Each member is one record:
//
//	COMPONENT,<label>,<length>,<OP>,<location>,<OP>,<location>,...
//
// Lengths and locations carry two decimals and operations are sorted by
// location. The detailed variant inserts the start, end and web normal
// (four decimals each) between the length and the first operation.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/studframe/pkg/frame"
	"github.com/philipparndt/studframe/pkg/geometry"
)

// ErrMalformedRow is returned by Read for records that are not member rows.
var ErrMalformedRow = errors.New("export: malformed row")

// Component is the record tag of every member row
const Component = "COMPONENT"

// Format selects the row layout
type Format int

const (
	// CSV is the plain machine format.
	CSV Format = iota
	// Detailed adds axis endpoints and the web normal.
	Detailed
)

func (f Format) String() string {
	if f == Detailed {
		return "detailed"
	}
	return "csv"
}

// ParseFormat maps "csv" or "detailed" to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "":
		return CSV, nil
	case "detailed":
		return Detailed, nil
	}
	return CSV, fmt.Errorf("unknown export format %q", s)
}

// Geometry is the axis and normal block of a detailed row
type Geometry struct {
	Start, End, Normal geometry.Vector3
}

// Row is one member record
type Row struct {
	Label      string
	Length     float64
	Geometry   *Geometry // nil for CSV rows
	Operations []frame.Operation
}

// RowFor builds the row of a member with operations sorted by location
func RowFor(m *frame.Member, format Format) Row {
	row := Row{
		Label:      m.Name,
		Length:     m.Length(),
		Operations: m.SortedOperations(),
	}
	if format == Detailed {
		row.Geometry = &Geometry{Start: m.Axis.Start, End: m.Axis.End, Normal: m.Normal}
	}
	return row
}

// Rows builds one row per member in order
func Rows(members []*frame.Member, format Format) []Row {
	rows := make([]Row, len(members))
	for i, m := range members {
		rows[i] = RowFor(m, format)
	}
	return rows
}

// Record renders the row as CSV fields
func (r Row) Record() []string {
	record := []string{Component, r.Label, strconv.FormatFloat(r.Length, 'f', 2, 64)}
	if g := r.Geometry; g != nil {
		for _, v := range []geometry.Vector3{g.Start, g.End, g.Normal} {
			record = append(record,
				strconv.FormatFloat(v.X, 'f', 4, 64),
				strconv.FormatFloat(v.Y, 'f', 4, 64),
				strconv.FormatFloat(v.Z, 'f', 4, 64))
		}
	}
	for _, op := range r.Operations {
		record = append(record, op.Type.String(), strconv.FormatFloat(op.Location, 'f', 2, 64))
	}
	return record
}

// Write renders every member as one record
func Write(w io.Writer, members []*frame.Member, format Format) error {
	return WriteRows(w, Rows(members, format))
}

// WriteRows renders prepared rows, for callers that relabel members
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write %s: %w", row.Label, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read parses member records written by Write in either format
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows []Row
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d: %w", line, err)
		}

		row, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}

func parseRecord(record []string) (Row, error) {
	if len(record) < 3 || record[0] != Component {
		return Row{}, fmt.Errorf("%w: expected %s,<label>,<length>", ErrMalformedRow, Component)
	}

	length, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return Row{}, fmt.Errorf("%w: length %q", ErrMalformedRow, record[2])
	}
	row := Row{Label: record[1], Length: length}

	rest := record[3:]
	if len(rest) > 0 {
		if _, err := strconv.ParseFloat(rest[0], 64); err == nil {
			if len(rest) < 9 {
				return Row{}, fmt.Errorf("%w: detailed row needs 9 coordinates", ErrMalformedRow)
			}
			values := make([]float64, 9)
			for i := range values {
				if values[i], err = strconv.ParseFloat(rest[i], 64); err != nil {
					return Row{}, fmt.Errorf("%w: coordinate %q", ErrMalformedRow, rest[i])
				}
			}
			row.Geometry = &Geometry{
				Start:  geometry.NewVector3(values[0], values[1], values[2]),
				End:    geometry.NewVector3(values[3], values[4], values[5]),
				Normal: geometry.NewVector3(values[6], values[7], values[8]),
			}
			rest = rest[9:]
		}
	}

	if len(rest)%2 != 0 {
		return Row{}, fmt.Errorf("%w: operation %q has no location", ErrMalformedRow, rest[len(rest)-1])
	}
	for i := 0; i < len(rest); i += 2 {
		t, err := frame.ParseOperationType(rest[i])
		if err != nil {
			return Row{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		loc, err := strconv.ParseFloat(rest[i+1], 64)
		if err != nil {
			return Row{}, fmt.Errorf("%w: location %q", ErrMalformedRow, rest[i+1])
		}
		row.Operations = append(row.Operations, frame.Operation{Type: t, Location: loc})
	}
	return row, nil
}
