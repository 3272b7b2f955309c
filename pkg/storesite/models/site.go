package models

// Site represents everything generated in one run.
type Site struct {
	// Title is the site name shown in the header and index title.
	Title string `json:"title"`
	// Description is the index meta description.
	Description string `json:"description,omitempty"`
	// Lang is the HTML lang attribute value.
	Lang string `json:"lang"`
	// BaseURL is the public root URL; a sitemap is written only when set.
	BaseURL string `json:"base_url,omitempty"`
	// Listings holds the listings in sheet row order.
	Listings []Listing `json:"listings"`
}
