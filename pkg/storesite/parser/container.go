package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"
)

// Well-known part names.
const (
	workbookPart     = "xl/workbook.xml"
	workbookRelsPart = "xl/_rels/workbook.xml.rels"
	sharedStringPart = "xl/sharedStrings.xml"
	firstSheetPart   = "xl/worksheets/sheet1.xml"
)

// maxPartSize caps the uncompressed size of any part that is read.
const maxPartSize = 64 << 20

// container indexes the parts of an opened xlsx zip.
type container struct {
	files map[string]*zip.File
}

func openContainer(r io.ReaderAt, size int64) (*container, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[strings.TrimPrefix(f.Name, "/")] = f
	}
	return &container{files: files}, nil
}

func (c *container) has(name string) bool {
	_, ok := c.files[name]
	return ok
}

// read returns the uncompressed bytes of a part.
func (c *container) read(name string) ([]byte, error) {
	f, ok := c.files[name]
	if !ok {
		return nil, formatErr(name, ErrMissingPart)
	}
	if f.UncompressedSize64 > maxPartSize {
		return nil, formatErr(name, fmt.Errorf("part larger than %d bytes", maxPartSize))
	}
	rc, err := f.Open()
	if err != nil {
		return nil, formatErr(name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
	if err != nil {
		return nil, formatErr(name, err)
	}
	if len(data) > maxPartSize {
		return nil, formatErr(name, fmt.Errorf("part larger than %d bytes", maxPartSize))
	}
	return data, nil
}

// sheetEntry is one <sheet> of workbook.xml.
type sheetEntry struct {
	Name  string
	RelID string
}

// relationship is one <Relationship> of a .rels part.
type relationship struct {
	ID     string
	Type   string
	Target string
}

// sheetLocation is the resolved worksheet to decode.
type sheetLocation struct {
	Name       string
	Part       string
	SharedPart string
}

// parseWorkbookSheets returns the workbook's sheets in tab order.
func parseWorkbookSheets(data []byte) ([]sheetEntry, error) {
	var sheets []sheetEntry
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var entry sheetEntry
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					entry.Name = attr.Value
				case "id":
					entry.RelID = attr.Value
				}
			}
			if entry.Name != "" {
				sheets = append(sheets, entry)
			}
		}
	}

	return sheets, nil
}

// parseRelationships returns the relationships of a .rels part keyed by Id.
func parseRelationships(data []byte) (map[string]relationship, error) {
	result := make(map[string]relationship)
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rel relationship
			var external bool
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rel.ID = attr.Value
				case "Type":
					rel.Type = attr.Value
				case "Target":
					rel.Target = attr.Value
				case "TargetMode":
					external = strings.EqualFold(attr.Value, "External")
				}
			}
			if rel.ID != "" && !external {
				result[rel.ID] = rel
			}
		}
	}

	return result, nil
}

// resolveTarget resolves a workbook relationship target to a part name.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(strings.TrimPrefix(target, "/"))
	}
	return path.Join("xl", target)
}

func relTypeIs(rel relationship, kind string) bool {
	return strings.HasSuffix(rel.Type, "/"+kind)
}

// locateSheet finds the worksheet part to decode. An empty name selects the
// first worksheet in tab order.
func (c *container) locateSheet(name string) (*sheetLocation, error) {
	loc := &sheetLocation{SharedPart: sharedStringPart}

	if !c.has(workbookPart) {
		if name != "" {
			return nil, formatErr(workbookPart, ErrMissingPart)
		}
		if !c.has(firstSheetPart) {
			return nil, formatErr(firstSheetPart, ErrMissingPart)
		}
		loc.Name = "Sheet1"
		loc.Part = firstSheetPart
		return loc, nil
	}
	data, err := c.read(workbookPart)
	if err != nil {
		return nil, err
	}
	sheets, err := parseWorkbookSheets(data)
	if err != nil {
		return nil, formatErr(workbookPart, err)
	}
	if len(sheets) == 0 {
		return nil, formatErr(workbookPart, fmt.Errorf("workbook lists no sheets"))
	}

	rels := map[string]relationship{}
	if c.has(workbookRelsPart) {
		relsData, err := c.read(workbookRelsPart)
		if err != nil {
			return nil, err
		}
		rels, err = parseRelationships(relsData)
		if err != nil {
			return nil, formatErr(workbookRelsPart, err)
		}
	}
	for _, rel := range rels {
		if relTypeIs(rel, "sharedStrings") {
			loc.SharedPart = resolveTarget(rel.Target)
		}
	}

	for i, entry := range sheets {
		if name != "" && entry.Name != name {
			continue
		}
		part := fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1)
		if rel, ok := rels[entry.RelID]; ok {
			if !relTypeIs(rel, "worksheet") {
				// chartsheets and dialog sheets carry no cells
				if name != "" {
					return nil, formatErr(workbookPart, fmt.Errorf("sheet %q is not a worksheet", name))
				}
				continue
			}
			part = resolveTarget(rel.Target)
		}
		if !c.has(part) {
			return nil, formatErr(part, ErrMissingPart)
		}
		loc.Name = entry.Name
		loc.Part = part
		return loc, nil
	}

	if name != "" {
		return nil, formatErr(workbookPart, fmt.Errorf("sheet %q not found", name))
	}
	return nil, formatErr(workbookPart, fmt.Errorf("workbook has no worksheet"))
}
