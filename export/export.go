// Package export writes pivotchart tables as CSV and XLSX downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/vench/pivotchart"
)

// SheetName is the worksheet that holds exported records.
const SheetName = "Data"

// WriteCSV writes the table header and records as CSV.
func WriteCSV(w io.Writer, table *pivotchart.TableOutput) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(table.Columns))
	for _, r := range table.Records {
		for i, col := range table.Columns {
			record[i] = formatCell(r[col])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the table to a single-sheet workbook.
func WriteXLSX(w io.Writer, table *pivotchart.TableOutput) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, col := range table.Columns {
		if err := setCell(f, i+1, 1, col); err != nil {
			return err
		}
	}

	for r, record := range table.Records {
		for i, col := range table.Columns {
			if err := setCell(f, i+1, r+2, record[col]); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}

	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}

	return nil
}

func formatCell(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(vv, 10)
	}

	return fmt.Sprintf("%v", v)
}
