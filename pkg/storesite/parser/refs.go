package parser

import (
	"fmt"
	"strconv"
)

// Sheet size limits of the SpreadsheetML format.
const (
	MaxColumns = 16384   // XFD
	MaxRows    = 1048576 // 2^20
)

// ParseCellRef splits a cell reference like "C5" or "$C$5" into a
// 1-based column and row.
func ParseCellRef(ref string) (col, row int, err error) {
	i := 0
	if i < len(ref) && ref[i] == '$' {
		i++
	}
	start := i
	for i < len(ref) && isLetter(ref[i]) {
		col = col*26 + int(upper(ref[i])-'A'+1)
		if col > MaxColumns {
			return 0, 0, fmt.Errorf("cell reference %q: column beyond %s", ref, ColumnLetters(MaxColumns))
		}
		i++
	}
	if i == start {
		return 0, 0, fmt.Errorf("cell reference %q: missing column", ref)
	}
	if i < len(ref) && ref[i] == '$' {
		i++
	}
	digits := ref[i:]
	if digits == "" {
		return 0, 0, fmt.Errorf("cell reference %q: missing row", ref)
	}
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return 0, 0, fmt.Errorf("cell reference %q: invalid row", ref)
		}
	}
	row, err = strconv.Atoi(digits)
	if err != nil || row < 1 || row > MaxRows {
		return 0, 0, fmt.Errorf("cell reference %q: row out of range", ref)
	}
	return col, row, nil
}

// ColumnLetters converts a 1-based column number to its letter name (1 -> A, 27 -> AA).
func ColumnLetters(col int) string {
	var buf []byte
	for col > 0 {
		col--
		buf = append([]byte{byte('A' + col%26)}, buf...)
		col /= 26
	}
	return string(buf)
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
