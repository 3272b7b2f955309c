package parser

import (
	"archive/zip"
	"bytes"
	"sort"
	"strings"
	"testing"
)

const (
	testWorkbookXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<sheets><sheet name="Stores" sheetId="1" r:id="rId1"/></sheets>
</workbook>`

	testWorkbookRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/>
</Relationships>`
)

// buildZip packs the given parts into an in-memory zip.
func buildZip(t testing.TB, parts map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// buildWorkbook packs a single-sheet workbook. Each entry of sharedStrings
// is the inner XML of one <si>; a nil slice omits the shared-string part.
func buildWorkbook(t testing.TB, sheetData string, sharedStrings []string) []byte {
	t.Helper()

	parts := map[string]string{
		"xl/workbook.xml":            testWorkbookXML,
		"xl/_rels/workbook.xml.rels": testWorkbookRelsXML,
		"xl/worksheets/sheet1.xml":   worksheetXML(sheetData),
	}
	if sharedStrings != nil {
		parts["xl/sharedStrings.xml"] = sharedStringsXML(sharedStrings)
	}
	return buildZip(t, parts)
}

func worksheetXML(sheetData string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>` +
		sheetData + `</sheetData></worksheet>`
}

func sharedStringsXML(items []string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">`)
	for _, item := range items {
		b.WriteString("<si>" + item + "</si>")
	}
	b.WriteString("</sst>")
	return b.String()
}
