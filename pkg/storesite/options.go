// Package storesite builds static listing websites from spreadsheets.
package storesite

import "log/slog"

// Defaults used when no configuration overrides them.
const (
	DefaultInputPath = "listings.xlsx"
	DefaultOutputDir = "docs"
	DefaultTitle     = "Listings"
	DefaultLang      = "en"
)

// Options configures a build. Paths are used as given; nothing is read from
// the environment or the working directory beyond them.
type Options struct {
	// InputPath is the xlsx workbook to read.
	InputPath string
	// OutputDir is the directory the site is written to.
	OutputDir string
	// Sheet selects a worksheet by tab name. Empty selects the first worksheet.
	Sheet string
	// Title is the site title shown on every page.
	Title string
	// Description is the index lead text and meta description.
	Description string
	// Lang is the HTML lang attribute.
	Lang string
	// BaseURL is the public root of the site. When set, pages get canonical
	// links and a sitemap is written.
	BaseURL string
	// Placeholder replaces empty listing names.
	Placeholder string
	// Columns maps listing fields to exact header labels.
	Columns map[string]string
	// Clean removes pages of earlier builds before writing.
	Clean bool
	// Logger receives progress and recovered field problems.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default build options.
func DefaultOptions() Options {
	return Options{
		InputPath: DefaultInputPath,
		OutputDir: DefaultOutputDir,
		Title:     DefaultTitle,
		Lang:      DefaultLang,
	}
}

// ShouldWriteSitemap returns whether a sitemap is generated.
func (o Options) ShouldWriteSitemap() bool {
	return o.BaseURL != ""
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
