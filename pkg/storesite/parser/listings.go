package parser

import (
	"fmt"
	"math"
	"strings"

	"github.com/ukaji3/storesite-go/pkg/storesite/models"
)

// Listing fields that can be mapped to a sheet column.
const (
	FieldName        = "name"
	FieldAddress     = "address"
	FieldPhone       = "phone"
	FieldMapURL      = "map_url"
	FieldRating      = "rating"
	FieldReviewCount = "review_count"
	FieldStatus      = "status"
	FieldClosing     = "closing"
	FieldCategory    = "category"
	FieldImage       = "image"
	FieldSnippet     = "snippet"
)

// DefaultPlaceholder is the name given to listings with an empty name cell.
const DefaultPlaceholder = "Unnamed listing"

// maxReviewCount bounds review counts so they fit comfortably in an int.
const maxReviewCount = 1e9

// knownFields lists mappable fields in resolution order.
var knownFields = []string{
	FieldName,
	FieldAddress,
	FieldPhone,
	FieldMapURL,
	FieldRating,
	FieldReviewCount,
	FieldStatus,
	FieldClosing,
	FieldCategory,
	FieldImage,
	FieldSnippet,
}

// fieldAliases lists the header labels recognised for each field, most
// specific first. Labels are compared after normalizeHeader.
var fieldAliases = map[string][]string{
	FieldName:        {"name", "store name", "business name", "store", "business", "title", "店名", "店家名稱", "名稱", "店家"},
	FieldAddress:     {"address", "street address", "location", "地址"},
	FieldPhone:       {"phone", "phone number", "telephone", "tel", "電話"},
	FieldMapURL:      {"map url", "map link", "map", "google maps", "url", "地圖連結", "地圖"},
	FieldRating:      {"rating", "stars", "score", "評分", "星等"},
	FieldReviewCount: {"review count", "reviews", "number of reviews", "評論數"},
	FieldStatus:      {"status", "business status", "opening hours", "hours", "營業狀態", "營業時間", "狀態"},
	FieldClosing:     {"closing", "closing time", "closes", "打烊時間"},
	FieldCategory:    {"category", "type", "類型", "類別", "分類"},
	FieldImage:       {"image", "image url", "photo", "picture", "圖片", "照片"},
	FieldSnippet:     {"snippet", "review snippet", "review", "comment", "評論摘錄", "評論"},
}

// KnownFields returns the names of all mappable listing fields.
func KnownFields() []string {
	return append([]string(nil), knownFields...)
}

// IsKnownField reports whether name is a mappable listing field.
func IsKnownField(name string) bool {
	_, ok := fieldAliases[name]
	return ok
}

// DefaultHeaders returns the first alias of every field, in resolution order.
// It is the header row of a freshly created workbook.
func DefaultHeaders() []string {
	headers := make([]string, len(knownFields))
	for i, f := range knownFields {
		headers[i] = titleCase(fieldAliases[f][0])
	}
	return headers
}

// ListingOptions configures how rows become listings.
type ListingOptions struct {
	// Columns maps a field name to the exact header that holds it,
	// overriding alias matching for that field.
	Columns map[string]string
	// Placeholder replaces empty names. Defaults to DefaultPlaceholder.
	Placeholder string
}

func (o ListingOptions) placeholder() string {
	if o.Placeholder != "" {
		return o.Placeholder
	}
	return DefaultPlaceholder
}

// ReadListings turns worksheet rows into listings. The first non-empty row
// holds the headers; every later non-empty row becomes one listing, in order.
// Cells that cannot be coerced are replaced and reported as warnings.
func ReadListings(sheet *Sheet, opts ListingOptions) ([]models.Listing, []*FieldError, error) {
	headerAt := -1
	for i, row := range sheet.Rows {
		if !row.IsEmpty() {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, nil, &SchemaError{Sheet: sheet.Name, Err: ErrNoHeader}
	}
	headerRow := sheet.Rows[headerAt]

	width := 0
	for _, row := range sheet.Rows[headerAt:] {
		width = max(width, len(row.Cells))
	}
	headers := buildHeaders(headerRow, width)

	columns, err := resolveColumns(headers, opts.Columns)
	if err != nil {
		err.Sheet = sheet.Name
		err.Row = headerRow.Index
		return nil, nil, err
	}

	listings := make([]models.Listing, 0, len(sheet.Rows)-headerAt-1)
	var warnings []*FieldError
	for _, row := range sheet.Rows[headerAt+1:] {
		if row.IsEmpty() {
			continue
		}
		listing, ws := buildListing(row, headers, columns, opts.placeholder())
		listings = append(listings, listing)
		warnings = append(warnings, ws...)
	}

	return listings, warnings, nil
}

// buildHeaders labels every column. Blank headers become "Column X" and
// repeated headers get a " (n)" suffix so that labels are unique.
func buildHeaders(row Row, width int) []string {
	headers := make([]string, width)
	taken := make(map[string]bool, width)
	for i := range headers {
		base := cleanValue(row.Cell(i))
		if base == "" {
			base = "Column " + ColumnLetters(i+1)
		}
		h := base
		for n := 2; taken[h]; n++ {
			h = fmt.Sprintf("%s (%d)", base, n)
		}
		taken[h] = true
		headers[i] = h
	}
	return headers
}

// resolveColumns maps fields to column indexes. Explicit mappings win;
// remaining fields take the first unclaimed header matching an alias.
func resolveColumns(headers []string, overrides map[string]string) (map[string]int, *SchemaError) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	columns := make(map[string]int)
	claimed := make(map[int]bool)

	for field := range overrides {
		if !IsKnownField(field) {
			return nil, &SchemaError{Column: field, Err: ErrUnknownField}
		}
	}
	for _, field := range knownFields {
		want, ok := overrides[field]
		if !ok || strings.TrimSpace(want) == "" {
			continue
		}
		idx := indexOf(normalized, normalizeHeader(want), claimed)
		if idx < 0 {
			return nil, &SchemaError{Column: want, Err: ErrMissingColumn}
		}
		columns[field] = idx
		claimed[idx] = true
	}

	for _, field := range knownFields {
		if _, ok := columns[field]; ok {
			continue
		}
		for _, alias := range fieldAliases[field] {
			if idx := indexOf(normalized, normalizeHeader(alias), claimed); idx >= 0 {
				columns[field] = idx
				claimed[idx] = true
				break
			}
		}
	}

	if _, ok := columns[FieldName]; !ok {
		return nil, &SchemaError{Column: FieldName, Err: ErrMissingColumn}
	}
	return columns, nil
}

func indexOf(normalized []string, want string, claimed map[int]bool) int {
	for i, h := range normalized {
		if h == want && !claimed[i] {
			return i
		}
	}
	return -1
}

// normalizeHeader lower-cases a header and folds '_' and '-' into spaces.
func normalizeHeader(h string) string {
	h = strings.ToLower(h)
	h = strings.NewReplacer("_", " ", "-", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// buildListing converts one data row.
func buildListing(row Row, headers []string, columns map[string]int, placeholder string) (models.Listing, []*FieldError) {
	var warnings []*FieldError
	get := func(field string) string {
		idx, ok := columns[field]
		if !ok {
			return ""
		}
		return cleanValue(row.Cell(idx))
	}
	warn := func(field, value string, err error) {
		warnings = append(warnings, NewFieldError(row.Index, headers[columns[field]], value, err))
	}

	l := models.Listing{
		Row:      row.Index,
		Name:     get(FieldName),
		Category: get(FieldCategory),
		Address:  get(FieldAddress),
		Phone:    get(FieldPhone),
		Status:   get(FieldStatus),
		Closing:  strings.TrimSpace(strings.TrimLeft(get(FieldClosing), "·•")),
		Snippet:  get(FieldSnippet),
	}

	if l.Name == "" {
		warn(FieldName, "", ErrEmptyValue)
		l.Name = placeholder
	}

	if v := get(FieldRating); v != "" {
		f, err := parseNumber(v)
		switch {
		case err != nil:
			warn(FieldRating, v, err)
		case f < 0 || f > 5:
			warn(FieldRating, v, ErrOutOfRange)
			l.Rating = &f
		default:
			l.Rating = &f
		}
	}

	if v := get(FieldReviewCount); v != "" {
		f, err := parseNumber(v)
		switch {
		case err != nil:
			warn(FieldReviewCount, v, err)
		case math.Abs(f) > maxReviewCount:
			warn(FieldReviewCount, v, ErrOutOfRange)
		default:
			n := int(math.Abs(f))
			l.ReviewCount = &n
		}
	}

	if v := get(FieldMapURL); v != "" {
		if isWebURL(v) {
			l.MapURL = v
		} else {
			warn(FieldMapURL, v, ErrInvalidURL)
		}
	}
	if l.MapURL == "" {
		query := l.Address
		if query == "" {
			query = l.Name
		}
		l.MapURL = SearchURL(query)
	}

	if v := get(FieldImage); v != "" {
		if isWebURL(v) {
			l.ImageURL = v
		} else {
			warn(FieldImage, v, ErrInvalidURL)
		}
	}

	mapped := make(map[int]bool, len(columns))
	for _, idx := range columns {
		mapped[idx] = true
	}
	l.Fields = make(models.Fields, len(headers))
	for i, h := range headers {
		f := models.Field{Header: h, Value: cleanValue(row.Cell(i))}
		l.Fields[i] = f
		if !mapped[i] {
			l.Extras = append(l.Extras, f)
		}
	}

	return l, warnings
}
