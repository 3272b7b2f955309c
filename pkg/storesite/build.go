package storesite

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ukaji3/storesite-go/pkg/storesite/models"
	"github.com/ukaji3/storesite-go/pkg/storesite/output"
	"github.com/ukaji3/storesite-go/pkg/storesite/parser"
)

// Result is the outcome of a build.
type Result struct {
	// Sheet is the name of the worksheet that was read.
	Sheet string
	// Site holds the listings in sheet order, with slugs assigned.
	Site *models.Site
	// Files holds the rendered documents. It is empty after Load.
	Files []output.File
	// Warnings lists the cells that were replaced by defaults.
	Warnings []*FieldError
}

// Load reads the input workbook and builds the site model without rendering
// or writing anything.
func Load(opts Options) (*Result, error) {
	if opts.InputPath == "" {
		return nil, ErrNoInput
	}
	log := opts.logger()

	sheet, err := parser.OpenFile(opts.InputPath, opts.Sheet)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, err
	}
	log.Debug("worksheet decoded", "input", opts.InputPath, "sheet", sheet.Name, "rows", len(sheet.Rows))

	listings, warnings, err := parser.ReadListings(sheet, parser.ListingOptions{
		Columns:     opts.Columns,
		Placeholder: opts.Placeholder,
	})
	if err != nil {
		var se *SchemaError
		if errors.As(err, &se) {
			se.Path = opts.InputPath
		}
		return nil, err
	}
	for _, w := range warnings {
		log.Warn("cell replaced by default",
			"row", w.Row,
			"column", w.Column,
			"value", w.Value,
			"error", w.Err,
		)
	}

	output.AssignSlugs(listings)

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	site := &models.Site{
		Title:       title,
		Description: opts.Description,
		Lang:        opts.Lang,
		BaseURL:     opts.BaseURL,
		Listings:    listings,
	}
	log.Info("listings loaded", "sheet", sheet.Name, "listings", len(listings), "warnings", len(warnings))

	return &Result{Sheet: sheet.Name, Site: site, Warnings: warnings}, nil
}

// Build reads the input workbook and writes the complete site to the output
// directory. Every document is rendered before the first write, so an input
// that cannot be read leaves the output directory untouched.
func Build(opts Options) (*Result, error) {
	if opts.OutputDir == "" {
		return nil, ErrNoOutput
	}
	log := opts.logger()

	result, err := Load(opts)
	if err != nil {
		return nil, err
	}

	files, err := output.Render(result.Site)
	if err != nil {
		return nil, fmt.Errorf("render site: %w", err)
	}
	result.Files = files
	log.Debug("site rendered", "files", len(files), "sitemap", opts.ShouldWriteSitemap())

	if err := output.WriteSite(opts.OutputDir, files, output.WriteOptions{Clean: opts.Clean}); err != nil {
		return nil, err
	}
	log.Info("site written", "output", opts.OutputDir, "files", len(files))

	return result, nil
}

// Report returns the build summary for output.WriteReport.
func (r *Result) Report(opts Options) *output.Report {
	return &output.Report{
		Input:    opts.InputPath,
		Sheet:    r.Sheet,
		Output:   opts.OutputDir,
		Site:     r.Site,
		Files:    r.Files,
		Warnings: r.Warnings,
	}
}
