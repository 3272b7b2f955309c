package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/ukaji3/storesite-go/pkg/storesite/models"
	"github.com/ukaji3/storesite-go/pkg/storesite/parser"
)

// Report summarises one build for the --report file.
type Report struct {
	Input    string
	Sheet    string
	Output   string
	Site     *models.Site
	Files    []File
	Warnings []*parser.FieldError
}

// WriteReport writes r as Markdown.
func WriteReport(w io.Writer, r *Report) error {
	md := markdown.NewMarkdown(w)

	title := "Build Report"
	if r.Site != nil && r.Site.Title != "" {
		title = r.Site.Title + " Build Report"
	}
	md.H1(title)
	md.PlainText("")

	listings := 0
	if r.Site != nil {
		listings = len(r.Site.Listings)
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Input", cell(r.Input)},
			{"Sheet", cell(r.Sheet)},
			{"Output", cell(r.Output)},
			{"Listings", strconv.Itoa(listings)},
			{"Files", strconv.Itoa(len(r.Files))},
			{"Warnings", strconv.Itoa(len(r.Warnings))},
		},
	})
	md.PlainText("")

	writeListings(md, r)
	writeWarnings(md, r.Warnings)

	return md.Build()
}

func writeListings(md *markdown.Markdown, r *Report) {
	md.H2("Listings")
	md.PlainText("")

	if r.Site == nil || len(r.Site.Listings) == 0 {
		md.PlainText("No listings found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(r.Site.Listings))
	for i, l := range r.Site.Listings {
		rating := l.RatingText()
		if rating == "" {
			rating = "-"
		}
		rows[i] = []string{
			strconv.Itoa(l.Row),
			cell(l.Name),
			"`" + ListingPath(l.Slug) + "`",
			rating,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Row", "Name", "Page", "Rating"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeWarnings(md *markdown.Markdown, warnings []*parser.FieldError) {
	md.H2("Warnings")
	md.PlainText("")

	if len(warnings) == 0 {
		md.Tip("Every cell was read without problems.")
		md.PlainText("")
		return
	}

	md.Warningf("%d cells could not be read and were replaced by defaults.", len(warnings))
	md.PlainText("")

	rows := make([][]string, len(warnings))
	for i, w := range warnings {
		rows[i] = []string{
			strconv.Itoa(w.Row),
			cell(w.Column),
			cell(w.Value),
			cell(w.Err.Error()),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Row", "Column", "Value", "Problem"},
		Rows:   rows,
	})
	md.PlainText("")
}

// cell makes s safe inside a table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
