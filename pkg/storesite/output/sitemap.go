package output

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/ukaji3/storesite-go/pkg/storesite/models"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// Sitemap lists the index and every listing page under the site's base URL.
// Entries carry no timestamps so that the output is reproducible.
func Sitemap(site *models.Site) ([]byte, error) {
	if site.BaseURL == "" {
		return nil, fmt.Errorf("sitemap requires a base URL")
	}

	set := urlSet{Xmlns: sitemapNS}
	set.URLs = append(set.URLs, sitemapURL{Loc: PageURL(site.BaseURL, IndexPath)})
	for _, l := range site.Listings {
		set.URLs = append(set.URLs, sitemapURL{Loc: PageURL(site.BaseURL, ListingPath(l.Slug))})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
