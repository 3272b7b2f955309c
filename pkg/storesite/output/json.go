package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ukaji3/storesite-go/pkg/storesite/models"
)

// ToJSON encodes listings as the site data export: an indented JSON array,
// never null, with HTML characters left unescaped and a trailing newline.
func ToJSON(listings []models.Listing) ([]byte, error) {
	if listings == nil {
		listings = []models.Listing{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listings); err != nil {
		return nil, fmt.Errorf("encode listings: %w", err)
	}
	return buf.Bytes(), nil
}

// FromJSON decodes a data export.
func FromJSON(data []byte) ([]models.Listing, error) {
	var listings []models.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	return listings, nil
}
