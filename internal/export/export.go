// Package export renders xlsx reports for the admin surface.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"shareit/internal/models"
)

const sheetName = "Bookings"

var columns = []struct {
	header string
	width  float64
}{
	{"ID", 8},
	{"Item", 25},
	{"Booker", 20},
	{"Email", 25},
	{"Start", 20},
	{"End", 20},
	{"Status", 12},
}

// WriteReport writes an xlsx workbook listing the bookings to w, most
// recent start first as given.
func WriteReport(w io.Writer, bookings []*models.BookingResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, col.header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)

		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, name, name, col.width)
	}

	for i, b := range bookings {
		row := i + 2
		values := []any{
			b.ID,
			b.Item.Name,
			b.Booker.Name,
			b.Booker.Email,
			b.Start.Format("2006-01-02 15:04"),
			b.End.Format("2006-01-02 15:04"),
			b.Status,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
