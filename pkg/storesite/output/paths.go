// Package output renders listing sites and writes them to disk.
package output

import (
	"net/url"
	"strings"
)

// Paths of generated files, relative to the output directory.
const (
	IndexPath      = "index.html"
	ListingDir     = "listings"
	StylesheetPath = "assets/site.css"
	ExportPath     = "listings.json"
	SitemapPath    = "sitemap.xml"
)

// File is one rendered document.
type File struct {
	// Path is slash-separated and relative to the output directory.
	Path string
	Data []byte
}

// ListingPath returns the path of a listing page.
func ListingPath(slug string) string {
	return ListingDir + "/" + slug + ".html"
}

// PageURL joins a base URL and a generated path, escaping each segment.
// The index maps to the bare base URL with a trailing slash.
func PageURL(baseURL, p string) string {
	base := strings.TrimRight(baseURL, "/")
	if p == IndexPath {
		return base + "/"
	}
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return base + "/" + strings.Join(segments, "/")
}
