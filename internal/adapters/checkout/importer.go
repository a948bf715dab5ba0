// Package checkout parses CHECK_OUT sheet exports (CSV) into issuance
// records, applying the same cleaning the dashboard applied upstream:
// unparseable dates and non-numeric quantities drop the row, text fields
// are trimmed, and history before the configured year is ignored.
package checkout

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/storage"
)

// Column headers of the CHECK_OUT export. Matching is case-insensitive.
const (
	colDate       = "DATE"
	colSerial     = "ITEM_SERIAL"
	colName       = "ITEM NAME"
	colIssuedTo   = "ISSUED_TO"
	colQuantity   = "QUANTITY"
	colUnit       = "UNIT_OF_MEASURE"
	colCategory   = "ITEM_CATEGORY"
	colWeek       = "WEEK"
	colReference  = "REFERENCE"
	colDepartment = "DEPARTMENT_CAT"
	colBatch      = "BATCH NO."
	colStore      = "STORE"
	colReceivedBy = "RECEIVED BY"
)

var requiredColumns = []string{colDate, colName, colQuantity, colDepartment}

// dateLayouts are tried in order; sheet exports are not consistent.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-2006",
}

// Report summarizes one parse run.
type Report struct {
	TotalRows      int
	Parsed         int
	SkippedInvalid int // bad date or quantity
	SkippedOld     int // before MinYear
}

// Importer parses CHECK_OUT CSV exports.
type Importer struct {
	// MinYear drops rows issued before January 1 of this year. Zero keeps
	// all history.
	MinYear int
}

// Parse reads the CSV export and returns the cleaned issuance records plus
// a report of what was dropped. Rows with an unparseable date or a
// non-positive quantity are skipped, not fatal; a missing required column
// is fatal.
func (imp *Importer) Parse(r io.Reader) ([]storage.IssuanceRecord, *Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{}
	var records []storage.IssuanceRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row %d: %w", report.TotalRows+2, err)
		}
		report.TotalRows++

		record, ok := imp.parseRow(row, cols, report)
		if ok {
			records = append(records, record)
			report.Parsed++
		}
	}

	return records, report, nil
}

func (imp *Importer) parseRow(row []string, cols map[string]int, report *Report) (storage.IssuanceRecord, bool) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	issuedAt, err := parseDate(field(colDate))
	if err != nil {
		report.SkippedInvalid++
		return storage.IssuanceRecord{}, false
	}
	quantity, err := strconv.ParseFloat(strings.ReplaceAll(field(colQuantity), ",", ""), 64)
	if err != nil || quantity <= 0 {
		report.SkippedInvalid++
		return storage.IssuanceRecord{}, false
	}
	if imp.MinYear > 0 && issuedAt.Year() < imp.MinYear {
		report.SkippedOld++
		return storage.IssuanceRecord{}, false
	}

	return storage.IssuanceRecord{
		IssuedAt:      issuedAt,
		ItemSerial:    field(colSerial),
		ItemName:      field(colName),
		IssuedTo:      field(colIssuedTo),
		Quantity:      quantity,
		UnitOfMeasure: field(colUnit),
		ItemCategory:  field(colCategory),
		WeekLabel:     field(colWeek),
		Reference:     field(colReference),
		Department:    field(colDepartment),
		BatchNo:       field(colBatch),
		Store:         field(colStore),
		ReceivedBy:    field(colReceivedBy),
	}, true
}

func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("export is missing required column %q", required)
		}
	}
	return cols, nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
