package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Event time", "Camera", "Raw text", "Plate", "Category",
	"State", "Valid", "Registered", "Confidence", "Message",
}

// ExportEvents renders recognition events into an XLSX workbook for
// reporting. Uses the same filters as FindEvents.
func (s *RecognitionService) ExportEvents(ctx context.Context, plateQuery *string, from, to *string) (*bytes.Buffer, error) {
	const pageSize = 100
	const maxRows = 10000

	var events []EventInfo
	for offset := 0; offset < maxRows; offset += pageSize {
		page, err := s.FindEvents(ctx, plateQuery, from, to, pageSize, offset)
		if err != nil {
			return nil, err
		}
		events = append(events, page...)
		if len(page) < pageSize {
			break
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Events"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, e := range events {
		values := []interface{}{
			e.EventTime.Format(time.RFC3339),
			e.CameraID,
			e.RawPlate,
			strPtrOrEmpty(e.FormattedPlate),
			e.PlateCategory,
			strPtrOrEmpty(e.StateCode),
			e.IsValid,
			e.Registered,
			floatPtrOrZero(e.Confidence),
			strPtrOrEmpty(e.Message),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return &buf, nil
}

func strPtrOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatPtrOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
