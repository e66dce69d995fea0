/*
normalize.go - Raw dataset to canonical LeaveRecord conversion

PURPOSE:
  The upstream spreadsheet is hand-maintained: headers get renamed, columns
  get reordered, dates arrive in whatever format the cell held. Normalize
  maps that variance onto the canonical record schema.

COLUMN RESOLUTION:
  For each canonical field, first try an exact case-sensitive match against
  the known source header (COLABORADOR, INICIO, ...). If the header is
  missing AND the table has at least as many columns as the canonical
  schema, fall back to positional alignment in canonical order. The
  fallback assumes the sheet kept its column order; because silent
  misalignment is a real risk, every positional assignment is logged
  loudly via logrus.

DATE COERCION:
  Values in date columns that fail to parse become absent Dates. A bad
  cell never fails the load.

FILTERING:
  Rows whose employee cell is empty after trimming are dropped. The drop
  count is logged; it is not an error.

SEE ALSO:
  - types.go:  Dataset and LeaveRecord
  - errors.go: ErrEmptyDataset, ErrNoEmployeeColumn
*/
package schedule

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// CANONICAL SCHEMA
// =============================================================================

type canonicalColumn struct {
	field  string // canonical field name, for logging
	header string // exact source header
}

// canonicalColumns is the schema in source-sheet order. Positional fallback
// assigns raw columns to these fields by index.
var canonicalColumns = []canonicalColumn{
	{"employee", "COLABORADOR"},
	{"start", "INICIO"},
	{"end", "TERMINO"},
	{"return_date", "BASE/CAMPO"},
	{"origin", "ORIGEM"},
	{"destination", "DESTINO"},
	{"supervisor", "SUPERVISOR"},
	{"month", "MÊS"},
}

const (
	colEmployee = iota
	colStart
	colEnd
	colReturnDate
	colOrigin
	colDestination
	colSupervisor
	colMonth
)

// =============================================================================
// NORMALIZER
// =============================================================================

// Normalize converts a raw dataset into leave records, annotating origin and
// destination coordinates through the resolver (which may be nil to skip
// annotation). The input dataset is not mutated.
func Normalize(ds Dataset, resolver LocationResolver) ([]LeaveRecord, error) {
	if ds.Empty() {
		return nil, ErrEmptyDataset
	}

	idx := resolveColumns(ds.Columns)
	if idx[colEmployee] < 0 {
		return nil, ErrNoEmployeeColumn
	}

	records := make([]LeaveRecord, 0, len(ds.Rows))
	dropped := 0
	for _, row := range ds.Rows {
		cell := func(col int) string {
			i := idx[col]
			if i < 0 || i >= len(row) {
				return ""
			}
			return row[i]
		}

		employee := strings.TrimSpace(cell(colEmployee))
		if employee == "" {
			dropped++
			continue
		}

		rec := LeaveRecord{
			Employee:    employee,
			Start:       ParseDate(cell(colStart)),
			End:         ParseDate(cell(colEnd)),
			ReturnDate:  ParseDate(cell(colReturnDate)),
			Origin:      strings.TrimSpace(cell(colOrigin)),
			Destination: strings.TrimSpace(cell(colDestination)),
			Supervisor:  strings.TrimSpace(cell(colSupervisor)),
			Month:       strings.TrimSpace(cell(colMonth)),
		}

		if resolver != nil {
			if c, ok := resolver.Resolve(rec.Origin); ok {
				coords := c
				rec.OriginCoords = &coords
			}
			if c, ok := resolver.Resolve(rec.Destination); ok {
				coords := c
				rec.DestinationCoords = &coords
			}
		}

		records = append(records, rec)
	}

	if dropped > 0 {
		logrus.WithField("rows", dropped).Warn("dropped rows without an employee identifier")
	}

	return records, nil
}

// resolveColumns maps each canonical field to a raw column index, or -1 when
// the field cannot be resolved at all.
func resolveColumns(columns []string) []int {
	idx := make([]int, len(canonicalColumns))
	positionalOK := len(columns) >= len(canonicalColumns)

	for i, canon := range canonicalColumns {
		idx[i] = -1
		for j, header := range columns {
			if header == canon.header {
				idx[i] = j
				break
			}
		}
		if idx[i] >= 0 {
			continue
		}
		if positionalOK {
			// Best-effort: assume the sheet kept canonical column order.
			idx[i] = i
			logrus.WithFields(logrus.Fields{
				"field":  canon.field,
				"header": canon.header,
				"column": i,
			}).Warn("column header not found; assigning by position")
		}
	}
	return idx
}
