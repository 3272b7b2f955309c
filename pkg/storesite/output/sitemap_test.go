package output

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestSitemap(t *testing.T) {
	site := testSite()
	site.BaseURL = "https://example.com/shilin/"

	data, err := Sitemap(site)
	if err != nil {
		t.Fatalf("Sitemap failed: %v", err)
	}
	if !strings.HasPrefix(string(data), xml.Header) {
		t.Error("Expected XML declaration")
	}

	var set urlSet
	if err := xml.Unmarshal(data, &set); err != nil {
		t.Fatalf("sitemap is not valid XML: %v", err)
	}
	want := []string{
		"https://example.com/shilin/",
		"https://example.com/shilin/listings/joe-s-plumbing.html",
		"https://example.com/shilin/listings/%E5%A3%AB%E6%9E%97%E6%B0%B4%E9%9B%BB%E8%A1%8C.html",
	}
	if len(set.URLs) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(set.URLs))
	}
	for i, u := range set.URLs {
		if u.Loc != want[i] {
			t.Errorf("entry %d = %q, expected %q", i, u.Loc, want[i])
		}
	}
	if strings.Contains(string(data), "lastmod") {
		t.Error("sitemap must not carry timestamps")
	}
}

func TestSitemapRequiresBaseURL(t *testing.T) {
	if _, err := Sitemap(testSite()); err == nil {
		t.Error("Expected error without base URL")
	}
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		base     string
		path     string
		expected string
	}{
		{"https://example.com", IndexPath, "https://example.com/"},
		{"https://example.com///", StylesheetPath, "https://example.com/assets/site.css"},
		{"https://example.com/x", ListingPath("a b"), "https://example.com/x/listings/a%20b.html"},
	}

	for _, tt := range tests {
		if result := PageURL(tt.base, tt.path); result != tt.expected {
			t.Errorf("PageURL(%q, %q) = %q, expected %q", tt.base, tt.path, result, tt.expected)
		}
	}
}
