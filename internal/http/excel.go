package httpapi

import (
	"bytes"
	"fmt"

	"hivewatch/internal/domain"

	"github.com/xuri/excelize/v2"
)

// HistoryExportHeader lists the workbook columns in sheet order.
var HistoryExportHeader = []string{
	"Timestamp",
	"Weight (g)",
	"Temperature (°C)",
	"Humidity (%)",
	"Audio",
}

// GenerateHistoryExport builds an xlsx workbook from the given readings.
// Optional sensors without a sample leave their cell blank.
func GenerateHistoryExport(rows []domain.Reading) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close only on the error paths.

	sheetName := "Hive History"
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
			Color:   []string{"#FFF3D6"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range HistoryExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 22); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "E", 16); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	for rowIdx, rd := range rows {
		row := rowIdx + 2
		cells := []any{
			rd.Timestamp.Format("2006-01-02 15:04:05"),
			rd.Weight,
			rd.Temperature,
			nil,
			nil,
		}
		if rd.Humidity != nil {
			cells[3] = *rd.Humidity
		}
		if rd.Audio != nil {
			cells[4] = *rd.Audio
		}
		for col, value := range cells {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
