// Package report renders ledger snapshots into export byte streams.
// Everything stays in memory end to end; no temporary files.
package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"sales_bot/internal/sales"
)

// ErrNoData is returned when asked to render an empty record set.
// Callers are expected to short-circuit and answer "no data" instead.
var ErrNoData = errors.New("no records to render")

var columns = []string{"id", "user_id", "item", "category", "amount", "quantity", "timestamp"}

// ToCSV renders records as CSV: one header row, then one row per
// record in the supplied order.
func ToCSV(records []*sales.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(r.UserID, 10),
			r.Item,
			string(r.Category),
			r.Amount.String(),
			strconv.Itoa(r.Quantity),
			r.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ToSpreadsheet renders records as an XLSX workbook with a single
// "Sales" sheet carrying the same columns as the CSV export.
func ToSpreadsheet(records []*sales.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range records {
		row := []interface{}{
			r.ID,
			r.UserID,
			r.Item,
			string(r.Category),
			r.Amount.String(),
			r.Quantity,
			r.CreatedAt.Format(time.RFC3339),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
