package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/ukaji3/storesite-go/pkg/storesite/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets/site.css
var stylesheet []byte

var templates = template.Must(template.New("site").Funcs(template.FuncMap{
	"telURL":  telURL,
	"details": details,
}).ParseFS(templateFS, "templates/*.tmpl"))

// DefaultLang is the page language used when a site sets none.
const DefaultLang = "en"

// pageData is the root object of every template.
type pageData struct {
	Lang        string
	SiteTitle   string
	PageTitle   string
	Description string
	Canonical   string
	// Root is the relative prefix from the page to the output directory.
	Root    string
	Listing *models.Listing
	Cards   []card
}

type card struct {
	models.Listing
	Href string
}

func newPageData(site *models.Site, path string) pageData {
	lang := site.Lang
	if lang == "" {
		lang = DefaultLang
	}
	data := pageData{
		Lang:        lang,
		SiteTitle:   site.Title,
		PageTitle:   site.Title,
		Description: site.Description,
		Root:        strings.Repeat("../", strings.Count(path, "/")),
	}
	if site.BaseURL != "" {
		data.Canonical = PageURL(site.BaseURL, path)
	}
	return data
}

// Stylesheet returns the shared stylesheet.
func Stylesheet() []byte {
	return append([]byte(nil), stylesheet...)
}

// RenderIndex renders the index page with one card per listing.
func RenderIndex(site *models.Site) ([]byte, error) {
	data := newPageData(site, IndexPath)
	data.Cards = make([]card, len(site.Listings))
	for i, l := range site.Listings {
		data.Cards[i] = card{Listing: l, Href: ListingPath(l.Slug)}
	}
	return execute("index.tmpl", data)
}

// RenderListing renders the page of one listing.
func RenderListing(site *models.Site, l *models.Listing) ([]byte, error) {
	data := newPageData(site, ListingPath(l.Slug))
	data.PageTitle = l.Name
	if site.Title != "" {
		data.PageTitle = l.Name + " | " + site.Title
	}
	data.Description = l.Address
	data.Listing = l
	return execute("listing.tmpl", data)
}

func execute(name string, data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Render produces every file of the site in a fixed order: the index, the
// stylesheet, one page per listing, the data export, and the sitemap when
// a base URL is set. Listings must carry unique, non-empty slugs.
func Render(site *models.Site) ([]File, error) {
	files := make([]File, 0, len(site.Listings)+4)
	seen := make(map[string]bool, len(site.Listings)+4)
	add := func(path string, data []byte) error {
		if seen[path] {
			return fmt.Errorf("duplicate output path %s", path)
		}
		seen[path] = true
		files = append(files, File{Path: path, Data: data})
		return nil
	}

	index, err := RenderIndex(site)
	if err != nil {
		return nil, err
	}
	add(IndexPath, index)
	add(StylesheetPath, Stylesheet())

	for i := range site.Listings {
		l := &site.Listings[i]
		if l.Slug == "" {
			return nil, fmt.Errorf("listing at row %d has no slug", l.Row)
		}
		page, err := RenderListing(site, l)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", l.Row, err)
		}
		if err := add(ListingPath(l.Slug), page); err != nil {
			return nil, err
		}
	}

	export, err := ToJSON(site.Listings)
	if err != nil {
		return nil, err
	}
	add(ExportPath, export)

	if site.BaseURL != "" {
		sitemap, err := Sitemap(site)
		if err != nil {
			return nil, err
		}
		add(SitemapPath, sitemap)
	}

	return files, nil
}

// telURL builds a tel: link from the digits of a phone number, keeping a
// leading '+'. It returns "" when the number has no digits.
func telURL(phone string) template.URL {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	digits := strings.TrimPrefix(b.String(), "+")
	if digits == "" {
		return ""
	}
	return template.URL("tel:" + b.String())
}

// details returns the fields that have a value.
func details(fs models.Fields) models.Fields {
	var out models.Fields
	for _, f := range fs {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}
