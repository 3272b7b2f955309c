package storesite

import (
	"fmt"

	"github.com/ukaji3/storesite-go/pkg/storesite/parser"
	"github.com/xuri/excelize/v2"
)

// SampleSheet is the worksheet name of a starter workbook.
const SampleSheet = "Listings"

// sampleRow is an example listing in DefaultHeaders order.
var sampleRow = []interface{}{
	"Joe's Plumbing",
	"1 Main St, Springfield",
	"+1 555-0100",
	"",
	4.6,
	128,
	"Open",
	"Closes 6 pm",
	"Plumber",
	"",
	"Quick, friendly and fairly priced.",
}

// WriteSampleWorkbook creates a starter workbook at path with the default
// header row and one example listing.
func WriteSampleWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SampleSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := parser.DefaultHeaders()
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SampleSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	row := append([]interface{}(nil), sampleRow...)
	if err := f.SetSheetRow(SampleSheet, "A2", &row); err != nil {
		return fmt.Errorf("write sample row: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SampleSheet, "A1", last, bold); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetColWidth(SampleSheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetPanes(SampleSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
