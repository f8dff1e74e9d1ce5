package catalog

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxSlugAttempts bounds both the counter search and the insert retries.
const maxSlugAttempts = 50

// Slugify folds name to lower-case ASCII, drops punctuation and joins the
// remaining words with dashes, e.g. "Café  Clean!" -> "cafe-clean".
// Underscores are kept.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFKD.String(strings.ToLower(name)) {
		switch {
		case r > unicode.MaxASCII:
			// Accents left over after decomposition.
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			dash = false
		case r == '-' || unicode.IsSpace(r):
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.Trim(b.String(), "-_")
}

// candidateSlug returns base for attempt 1 and base-N afterwards.
func candidateSlug(base string, attempt int) string {
	if attempt <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

// nextFreeSlug returns the first candidate of base, starting at attempt from,
// that exists reports as unused.
func nextFreeSlug(ctx context.Context, base string, from int, exists func(context.Context, string) (bool, error)) (string, int, error) {
	for attempt := from; attempt <= maxSlugAttempts; attempt++ {
		slug := candidateSlug(base, attempt)
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", 0, err
		}
		if !taken {
			return slug, attempt, nil
		}
	}
	return "", 0, fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}
