package httpapi

import (
	"bytes"
	"fmt"

	"alicuotas-data/internal/domain"

	"github.com/xuri/excelize/v2"
)

// PaymentsExportHeader is the column order of the admin export workbook.
var PaymentsExportHeader = []string{
	"Resident",
	"House",
	"Amount",
	"Date",
	"Reference",
	"Status",
	"Notes",
}

// GeneratePaymentsExport renders the scoped payment table as an .xlsx file.
func GeneratePaymentsExport(payments []domain.Payment) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, close explicitly at the end instead

	sheetName := "Payments"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range PaymentsExportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header: %w", err)
		}
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for row, p := range payments {
		values := []any{
			p.ResidentName,
			p.HouseNumber,
			p.Amount,
			p.Date,
			p.Reference,
			string(p.Status),
			p.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
