package output

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ukaji3/storesite-go/pkg/storesite/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength caps the number of runes in a slug.
const MaxSlugLength = 60

// FallbackSlug is used when a name has no letters or digits.
const FallbackSlug = "listing"

// Slugify derives a file-name-safe stem from a listing name. Letters and
// digits of any script are kept after NFKC normalisation and lower-casing;
// every other run of characters becomes a single '-'.
func Slugify(name string) string {
	s := cases.Lower(language.Und).String(norm.NFKC.String(name))

	var b strings.Builder
	n := 0
	pendingDash := false
	for _, r := range s {
		if n >= MaxSlugLength {
			break
		}
		keep := unicode.IsLetter(r) || unicode.IsDigit(r) || (n > 0 && !pendingDash && unicode.IsMark(r))
		if !keep {
			pendingDash = n > 0
			continue
		}
		if pendingDash {
			if n+1 >= MaxSlugLength {
				break
			}
			b.WriteByte('-')
			n++
			pendingDash = false
		}
		b.WriteRune(r)
		n++
	}

	if b.Len() == 0 {
		return FallbackSlug
	}
	return b.String()
}

// AssignSlugs sets a unique Slug on every listing, in order. A listing whose
// slug is already taken gets its sheet row appended ("name-7"), and if that
// is taken too, the smallest counter from 2 ("name-7-2").
func AssignSlugs(listings []models.Listing) {
	taken := make(map[string]bool, len(listings))
	for i := range listings {
		base := Slugify(listings[i].Name)
		slug := base
		if taken[slug] {
			slug = fmt.Sprintf("%s-%d", base, listings[i].Row)
			for n := 2; taken[slug]; n++ {
				slug = fmt.Sprintf("%s-%d-%d", base, listings[i].Row, n)
			}
		}
		taken[slug] = true
		listings[i].Slug = slug
	}
}
