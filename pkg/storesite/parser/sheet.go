package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Sheet is a decoded worksheet.
type Sheet struct {
	// Name is the worksheet tab name.
	Name string
	// Rows holds the rows present in the worksheet, in ascending row order.
	Rows []Row
}

// Row is one worksheet row.
type Row struct {
	// Index is the 1-based row number.
	Index int
	// Cells holds cell text by 0-based column; skipped columns are "".
	Cells []string
}

// Cell returns the text of the 0-based column, or "" past the end of the row.
func (r Row) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return r.Cells[col]
}

// IsEmpty reports whether every cell of the row is blank.
func (r Row) IsEmpty() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// OpenFile decodes the worksheet named sheetName (or the first worksheet when
// empty) from the xlsx file at path.
func OpenFile(path, sheetName string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &FormatError{Path: path, Err: errors.New("is a directory")}
	}

	sheet, err := Decode(f, info.Size(), sheetName)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = path
		}
		return nil, err
	}
	return sheet, nil
}

// DecodeBytes decodes a worksheet from an in-memory xlsx container.
func DecodeBytes(data []byte, sheetName string) (*Sheet, error) {
	return Decode(bytes.NewReader(data), int64(len(data)), sheetName)
}

// Decode reads an xlsx container and returns the rows of one worksheet.
// Every error it returns is a *FormatError.
func Decode(r io.ReaderAt, size int64, sheetName string) (*Sheet, error) {
	c, err := openContainer(r, size)
	if err != nil {
		return nil, err
	}

	loc, err := c.locateSheet(sheetName)
	if err != nil {
		return nil, err
	}

	var shared []string
	if c.has(loc.SharedPart) {
		data, err := c.read(loc.SharedPart)
		if err != nil {
			return nil, err
		}
		shared, err = parseSharedStrings(data)
		if err != nil {
			return nil, formatErr(loc.SharedPart, err)
		}
	}

	data, err := c.read(loc.Part)
	if err != nil {
		return nil, err
	}
	rows, err := parseWorksheet(data, shared)
	if err != nil {
		return nil, formatErr(loc.Part, err)
	}

	return &Sheet{Name: loc.Name, Rows: rows}, nil
}

// parseSharedStrings returns the shared-string table. Rich-text runs of one
// <si> are concatenated; phonetic <rPh> runs are skipped.
func parseSharedStrings(data []byte) ([]string, error) {
	var result []string
	var text strings.Builder
	inItem := false
	inText := false
	phonetic := 0

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inItem = true
				text.Reset()
			case "rPh":
				phonetic++
			case "t":
				inText = inItem && phonetic == 0
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "si":
				result = append(result, decodeEscapes(text.String()))
				inItem = false
			case "rPh":
				phonetic--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				text.Write(t)
			}
		}
	}

	return result, nil
}

// xmlCell mirrors a <c> element.
type xmlCell struct {
	Ref    string           `xml:"r,attr"`
	Type   string           `xml:"t,attr"`
	Value  string           `xml:"v"`
	Inline *xmlInlineString `xml:"is"`
}

// xmlInlineString mirrors an <is> element.
type xmlInlineString struct {
	Text string   `xml:"t"`
	Runs []xmlRun `xml:"r"`
}

type xmlRun struct {
	Text string `xml:"t"`
}

// text resolves the display text of a cell.
func (c *xmlCell) text(shared []string) (string, error) {
	switch c.Type {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(c.Value))
		if err != nil {
			return "", fmt.Errorf("cell %s: invalid shared string index %q", c.Ref, c.Value)
		}
		if idx < 0 || idx >= len(shared) {
			return "", fmt.Errorf("cell %s: shared string %d out of range (table has %d)", c.Ref, idx, len(shared))
		}
		return shared[idx], nil
	case "inlineStr":
		if c.Inline == nil {
			return "", nil
		}
		var b strings.Builder
		b.WriteString(c.Inline.Text)
		for _, run := range c.Inline.Runs {
			b.WriteString(run.Text)
		}
		return decodeEscapes(b.String()), nil
	case "b":
		switch strings.TrimSpace(c.Value) {
		case "1":
			return "TRUE", nil
		case "0":
			return "FALSE", nil
		}
		return c.Value, nil
	}
	return decodeEscapes(c.Value), nil
}

// parseWorksheet decodes <sheetData> rows into dense cell slices.
func parseWorksheet(data []byte, shared []string) ([]Row, error) {
	var rows []Row
	var current *Row
	inData := false
	lastRow, lastCol := 0, 0

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "sheetData" {
				inData = true
				continue
			}
			if !inData {
				continue
			}
			switch t.Name.Local {
			case "row":
				if current != nil {
					return nil, fmt.Errorf("nested row inside row %d", current.Index)
				}
				index := lastRow + 1
				if v := attrValue(t, "r"); v != "" {
					n, err := strconv.Atoi(v)
					if err != nil || n < 1 || n > MaxRows {
						return nil, fmt.Errorf("invalid row number %q", v)
					}
					index = n
				}
				if index <= lastRow {
					return nil, fmt.Errorf("row %d out of order after row %d", index, lastRow)
				}
				if index > MaxRows {
					return nil, fmt.Errorf("row %d beyond sheet limit", index)
				}
				current = &Row{Index: index}
				lastRow, lastCol = index, 0

			case "c":
				if current == nil {
					return nil, fmt.Errorf("cell outside of a row")
				}
				var cell xmlCell
				if err := decoder.DecodeElement(&cell, &t); err != nil {
					return nil, err
				}
				col := lastCol + 1
				if cell.Ref != "" {
					c, r, err := ParseCellRef(cell.Ref)
					if err != nil {
						return nil, err
					}
					if r != current.Index {
						return nil, fmt.Errorf("cell %s listed under row %d", cell.Ref, current.Index)
					}
					col = c
				}
				if col <= lastCol {
					return nil, fmt.Errorf("cell %s out of order in row %d", cell.Ref, current.Index)
				}
				if col > MaxColumns {
					return nil, fmt.Errorf("row %d has more than %d columns", current.Index, MaxColumns)
				}
				value, err := cell.text(shared)
				if err != nil {
					return nil, err
				}
				for len(current.Cells) < col-1 {
					current.Cells = append(current.Cells, "")
				}
				current.Cells = append(current.Cells, value)
				lastCol = col
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "row":
				if current != nil {
					rows = append(rows, *current)
					current = nil
				}
			case "sheetData":
				inData = false
			}
		}
	}

	return rows, nil
}

func attrValue(se xml.StartElement, local string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}
