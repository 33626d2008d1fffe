// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sheet writes record listings as .xlsx workbooks.
package sheet

import (
	"fmt"
	"io"
	"net/http"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column describes one exported column.
type Column struct {
	Title string
	// Width in Excel character units; zero keeps the default.
	Width float64
}

// Table is a single worksheet of rows under a styled header.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// Append adds a row. Values are written with excelize's type inference.
func (t *Table) Append(values ...any) {
	t.Rows = append(t.Rows, values)
}

// WriteTo renders the table into a workbook and streams it to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	file := excelize.NewFile()
	defer file.Close()

	name := t.Name
	if name == "" {
		name = "Sheet1"
	}

	index, err := file.NewSheet(name)
	if err != nil {
		return 0, fmt.Errorf("sheet: creating %q: %w", name, err)
	}
	if name != "Sheet1" {
		if err := file.DeleteSheet("Sheet1"); err != nil {
			return 0, fmt.Errorf("sheet: removing default sheet: %w", err)
		}
	}
	file.SetActiveSheet(index)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("sheet: header style: %w", err)
	}

	for i, column := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return 0, err
		}
		if err := file.SetCellValue(name, cell, column.Title); err != nil {
			return 0, fmt.Errorf("sheet: header %s: %w", cell, err)
		}
		if err := file.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return 0, fmt.Errorf("sheet: header style %s: %w", cell, err)
		}
		if column.Width > 0 {
			letter, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return 0, err
			}
			if err := file.SetColWidth(name, letter, letter, column.Width); err != nil {
				return 0, fmt.Errorf("sheet: width %s: %w", letter, err)
			}
		}
	}

	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return 0, err
		}
		if err := file.SetSheetRow(name, cell, &row); err != nil {
			return 0, fmt.Errorf("sheet: row %d: %w", r+2, err)
		}
	}

	return file.WriteTo(w)
}

// Serve writes the table as an attachment named filename.
func Serve(writer http.ResponseWriter, filename string, table *Table) error {
	writer.Header().Set("Content-Type", ContentType)
	writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, err := table.WriteTo(writer)
	return err
}
