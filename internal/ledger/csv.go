package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/grossbook-dev/grossbook/internal/currency"
	"github.com/grossbook-dev/grossbook/internal/model"
)

// Header is the CSV header for grossbook.csv.
const Header = "date,time,purpose,role,amount,currency,description"

const (
	numFields = 7
	colDate   = 0
	colTime   = 1
	colPurp   = 2
	colRole   = 3
	colAmount = 4
	colCurr   = 5
	colDesc   = 6
)

// ReadRecords reads all records from a grossbook.csv reader.
func ReadRecords(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading grossbook CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	var records []model.Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes records to a grossbook.csv writer (including header).
func WriteRecords(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendRecords appends records to an existing grossbook.csv writer
// (no header).
func AppendRecords(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalRecord converts a Record to a CSV row ([]string).
func MarshalRecord(rec model.Record) []string {
	row := make([]string, numFields)
	row[colDate] = rec.Date
	row[colTime] = rec.Time
	row[colPurp] = rec.Purpose
	row[colRole] = string(rec.Role)
	row[colAmount] = rec.Amount.String()
	row[colCurr] = string(rec.Currency)
	row[colDesc] = rec.Description
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(row []string) (model.Record, error) {
	if len(row) != numFields {
		return model.Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}

	code, err := currency.Canonicalize(row[colCurr])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing currency %q: %w", row[colCurr], err)
	}

	return model.Record{
		Date:        row[colDate],
		Time:        row[colTime],
		Purpose:     row[colPurp],
		Role:        model.Role(row[colRole]),
		Amount:      amount,
		Currency:    code,
		Description: row[colDesc],
	}, nil
}
