package parser

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// MapSearchURL is the prefix of derived map links.
const MapSearchURL = "https://www.google.com/maps/search/?api=1&query="

// escapeRe matches OOXML character escapes such as _x000D_.
var escapeRe = regexp.MustCompile(`_x([0-9A-Fa-f]{4})_`)

// decodeEscapes replaces _xHHHH_ escapes with the characters they encode.
func decodeEscapes(s string) string {
	if !strings.Contains(s, "_x") {
		return s
	}
	return escapeRe.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.ParseUint(m[2:6], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(n))
	})
}

// cleanValue normalises line endings and trims surrounding whitespace.
func cleanValue(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}

// parseNumber parses a numeric cell, tolerating thousands separators and
// parentheses around the value (e.g., "(1,024)").
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "()")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return f, nil
}

// isWebURL reports whether s is an absolute http or https URL.
func isWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// SearchURL returns a map search link for query.
func SearchURL(query string) string {
	return MapSearchURL + url.QueryEscape(query)
}
