package models

import (
	"strconv"
	"strings"
)

// Listing represents one business record taken from a spreadsheet row.
type Listing struct {
	// Row is the 1-based sheet row the listing was read from.
	Row int `json:"row"`
	// Slug is the file name stem of the listing page, unique within a site.
	Slug string `json:"slug"`
	// Name is the business name.
	Name string `json:"name"`
	// Category is the business type (e.g., plumber, electrician).
	Category string `json:"category"`
	// Address is the street address.
	Address string `json:"address"`
	// Phone is the contact number (empty when absent).
	Phone string `json:"phone"`
	// MapURL links to a map view of the listing.
	MapURL string `json:"map_url"`
	// Rating is the average rating (nil if absent or unparseable).
	Rating *float64 `json:"rating"`
	// ReviewCount is the number of reviews (nil if absent or unparseable).
	ReviewCount *int `json:"review_count"`
	// Status is the open/closed status text.
	Status string `json:"status"`
	// Closing is the closing-time text shown next to the status.
	Closing string `json:"closing"`
	// ImageURL is a photo of the business.
	ImageURL string `json:"image_url"`
	// Snippet is a short review excerpt.
	Snippet string `json:"snippet"`
	// Fields holds every column of the row in header order.
	Fields Fields `json:"fields"`
	// Extras holds the columns not mapped to a named attribute above.
	Extras Fields `json:"-"`
}

// RatingText formats the rating with one decimal, or "" when absent.
func (l Listing) RatingText() string {
	if l.Rating == nil {
		return ""
	}
	return strconv.FormatFloat(*l.Rating, 'f', 1, 64)
}

// ReviewText formats the review count, or "" when absent.
func (l Listing) ReviewText() string {
	if l.ReviewCount == nil {
		return ""
	}
	if *l.ReviewCount == 1 {
		return "1 review"
	}
	return strconv.Itoa(*l.ReviewCount) + " reviews"
}

// StatusText joins status and closing time.
func (l Listing) StatusText() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{l.Status, l.Closing} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}
