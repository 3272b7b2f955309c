package parser

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDecodeResolvesCellTypes(t *testing.T) {
	data := buildWorkbook(t, `
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c></row>
<row r="2"><c r="A2" t="inlineStr"><is><t>Joe's Plumbing</t></is></c><c r="B2"><v>4.5</v></c><c r="C2" t="b"><v>1</v></c></row>
<row r="3"><c r="A3" t="str"><f>A2</f><v>formula text</v></c><c r="B3" t="e"><v>#N/A</v></c><c r="C3" t="b"><v>0</v></c></row>`,
		[]string{"<t>Name</t>", "<t>Rating</t>", "<t>Open</t>"})

	sheet, err := DecodeBytes(data, "")
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if sheet.Name != "Stores" {
		t.Errorf("Expected sheet name Stores, got %q", sheet.Name)
	}

	want := [][]string{
		{"Name", "Rating", "Open"},
		{"Joe's Plumbing", "4.5", "TRUE"},
		{"formula text", "#N/A", "FALSE"},
	}
	if len(sheet.Rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(sheet.Rows))
	}
	for i, row := range sheet.Rows {
		if row.Index != i+1 {
			t.Errorf("row %d: expected index %d, got %d", i, i+1, row.Index)
		}
		if !reflect.DeepEqual(row.Cells, want[i]) {
			t.Errorf("row %d: got %q, expected %q", i+1, row.Cells, want[i])
		}
	}
}

func TestDecodeFillsSkippedColumnsAndRows(t *testing.T) {
	data := buildWorkbook(t, `
<row r="1"><c r="A1" t="inlineStr"><is><t>a</t></is></c><c r="D1" t="inlineStr"><is><t>d</t></is></c></row>
<row r="4"><c r="B4"><v>7</v></c></row>`, nil)

	sheet, err := DecodeBytes(data, "")
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if len(sheet.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(sheet.Rows))
	}
	if got, want := sheet.Rows[0].Cells, []string{"a", "", "", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("row 1: got %q, expected %q", got, want)
	}
	if sheet.Rows[1].Index != 4 {
		t.Errorf("Expected second row index 4, got %d", sheet.Rows[1].Index)
	}
	if got := sheet.Rows[1].Cell(1); got != "7" {
		t.Errorf("Expected B4 = 7, got %q", got)
	}
	if got := sheet.Rows[1].Cell(10); got != "" {
		t.Errorf("Expected empty cell past row end, got %q", got)
	}
}

func TestDecodeCellsWithoutReferences(t *testing.T) {
	data := buildWorkbook(t, `<row><c><v>1</v></c><c><v>2</v></c></row><row><c><v>3</v></c></row>`, nil)

	sheet, err := DecodeBytes(data, "")
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if len(sheet.Rows) != 2 || sheet.Rows[1].Index != 2 {
		t.Fatalf("Expected rows 1 and 2, got %+v", sheet.Rows)
	}
	if got, want := sheet.Rows[0].Cells, []string{"1", "2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("row 1: got %q, expected %q", got, want)
	}
}

func TestDecodeRichTextAndEscapes(t *testing.T) {
	data := buildWorkbook(t, `<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>`,
		[]string{
			`<r><rPr><b/></rPr><t>士林</t></r><r><t xml:space="preserve">水電行</t></r><rPh sb="0" eb="2"><t>しりん</t></rPh>`,
			`<t>line one_x000D_line two</t>`,
		})

	sheet, err := DecodeBytes(data, "")
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	cells := sheet.Rows[0].Cells
	if cells[0] != "士林水電行" {
		t.Errorf("Expected rich text runs joined without phonetics, got %q", cells[0])
	}
	if cells[1] != "line one\rline two" {
		t.Errorf("Expected _x000D_ decoded to CR, got %q", cells[1])
	}
}

func TestDecodeWithoutWorkbookPart(t *testing.T) {
	data := buildZip(t, map[string]string{
		"xl/worksheets/sheet1.xml": worksheetXML(`<row r="1"><c r="A1"><v>42</v></c></row>`),
	})

	sheet, err := DecodeBytes(data, "")
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if sheet.Name != "Sheet1" || sheet.Rows[0].Cell(0) != "42" {
		t.Errorf("unexpected sheet %+v", sheet)
	}
}

func TestDecodeSelectsWorksheet(t *testing.T) {
	workbook := `<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Chart" sheetId="1" r:id="rId1"/><sheet name="Data" sheetId="2" r:id="rId2"/><sheet name="Other" sheetId="3" r:id="rId3"/></sheets></workbook>`
	rels := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/chartsheet" Target="chartsheets/sheet1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/data.xml"/>
<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/other.xml"/>
</Relationships>`
	data := buildZip(t, map[string]string{
		"xl/workbook.xml":            workbook,
		"xl/_rels/workbook.xml.rels": rels,
		"xl/chartsheets/sheet1.xml":  `<chartsheet/>`,
		"xl/worksheets/data.xml":     worksheetXML(`<row r="1"><c r="A1"><v>1</v></c></row>`),
		"xl/worksheets/other.xml":    worksheetXML(`<row r="1"><c r="A1"><v>2</v></c></row>`),
	})

	tests := []struct {
		name     string
		sheet    string
		wantName string
		wantCell string
	}{
		{"first worksheet skips chartsheet", "", "Data", "1"},
		{"named worksheet", "Other", "Other", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := DecodeBytes(data, tt.sheet)
			if err != nil {
				t.Fatalf("DecodeBytes failed: %v", err)
			}
			if sheet.Name != tt.wantName {
				t.Errorf("Expected sheet %q, got %q", tt.wantName, sheet.Name)
			}
			if got := sheet.Rows[0].Cell(0); got != tt.wantCell {
				t.Errorf("Expected A1 = %q, got %q", tt.wantCell, got)
			}
		})
	}

	if _, err := DecodeBytes(data, "Chart"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected format error selecting a chartsheet, got %v", err)
	}
}

func TestDecodeRejectsMalformedContainers(t *testing.T) {
	row := func(cells string) []byte {
		return buildWorkbook(t, cells, []string{"<t>x</t>"})
	}

	tests := []struct {
		name    string
		data    []byte
		sheet   string
		wantErr error
	}{
		{"empty input", nil, "", nil},
		{"not a zip", []byte("name,address\nJoe,1 Main St\n"), "", nil},
		{"no worksheet", buildZip(t, map[string]string{"docProps/app.xml": "<Properties/>"}), "", ErrMissingPart},
		{"worksheet part missing", buildZip(t, map[string]string{
			"xl/workbook.xml":            testWorkbookXML,
			"xl/_rels/workbook.xml.rels": testWorkbookRelsXML,
		}), "", ErrMissingPart},
		{"unknown sheet name", row(`<row r="1"><c r="A1"><v>1</v></c></row>`), "Missing", nil},
		{"shared string out of range", row(`<row r="1"><c r="A1" t="s"><v>5</v></c></row>`), "", nil},
		{"shared string without table", buildWorkbook(t, `<row r="1"><c r="A1" t="s"><v>0</v></c></row>`, nil), "", nil},
		{"bad cell reference", row(`<row r="1"><c r="1A"><v>1</v></c></row>`), "", nil},
		{"column beyond limit", row(`<row r="1"><c r="XFE1"><v>1</v></c></row>`), "", nil},
		{"cell in wrong row", row(`<row r="1"><c r="A2"><v>1</v></c></row>`), "", nil},
		{"rows out of order", row(`<row r="2"><c r="A2"><v>1</v></c></row><row r="1"><c r="A1"><v>1</v></c></row>`), "", nil},
		{"cells out of order", row(`<row r="1"><c r="B1"><v>1</v></c><c r="A1"><v>1</v></c></row>`), "", nil},
		{"truncated xml", buildZip(t, map[string]string{
			"xl/worksheets/sheet1.xml": `<worksheet><sheetData><row r="1"><c r="A1"><v>1</v>`,
		}), "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := DecodeBytes(tt.data, tt.sheet)
			if err == nil {
				t.Fatalf("Expected error, got sheet %+v", sheet)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Expected *FormatError, got %T: %v", err, err)
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Expected errors.Is(err, ErrInvalidFormat) for %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOpenFileReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	if err := os.WriteFile(path, []byte("definitely not a zip"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := OpenFile(path, "")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected *FormatError, got %v", err)
	}
	if fe.Path != path {
		t.Errorf("Expected path %q, got %q", path, fe.Path)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error message to name the file, got %q", err.Error())
	}

	if _, err := OpenFile(filepath.Join(t.TempDir(), "missing.xlsx"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestDecodeMatchesExcelize(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	rows := [][]interface{}{
		{"Name", "Address", "Phone", "Rating"},
		{"Joe's Plumbing", "1 Main St", "02-2881-1234", 4.5},
		{"Ace Electric", "", "", 3},
		{},
		{"士林水電行", "台北市士林區中正路100號", "(02) 2881-0000", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	f.SetCellValue(sheetName, "F2", "far column")

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	want, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}

	sheet, err := OpenFile(tmpFile, "")
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	if sheet.Name != sheetName {
		t.Errorf("Expected sheet %q, got %q", sheetName, sheet.Name)
	}

	got := make(map[int][]string)
	for _, row := range sheet.Rows {
		got[row.Index] = trimTrailingEmpty(row.Cells)
	}
	for i, wantRow := range want {
		gotRow := got[i+1]
		if len(gotRow) == 0 && len(trimTrailingEmpty(wantRow)) == 0 {
			continue
		}
		if !reflect.DeepEqual(gotRow, trimTrailingEmpty(wantRow)) {
			t.Errorf("row %d: got %q, excelize has %q", i+1, gotRow, wantRow)
		}
	}
}

func trimTrailingEmpty(cells []string) []string {
	end := len(cells)
	for end > 0 && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}
