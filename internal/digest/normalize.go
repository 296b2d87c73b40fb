// Package digest builds daily digests: it plans the search for a day, ranks the
// returned videos and aggregates their tags into filter candidates.
package digest

import (
	"net/url"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fold chains, a chain carries state and is not safe to share
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			width.Fold,
			cases.Fold(),
			// Fold is not stable on Cherokee, Lower settles it on the lowercase block
			cases.Lower(language.Und),
			norm.NFKC,
		)
	},
}

// Fold returns the case and width insensitive form of a tag
func Fold(tag string) string {
	if tag == "" {
		return ""
	}

	tag = strings.ToValidUTF8(tag, "")

	tr := foldPool.Get().(transform.Transformer)
	// on error the folded prefix is kept
	folded, _, _ := transform.String(tr, tag)
	tr.Reset()
	foldPool.Put(tr)

	return folded
}

// Normalize returns the comparison key for a tag. Spellings that differ only in
// case or character width share a key. The key is percent-encoded so it can be
// used verbatim in an HTML attribute or as a storage value.
func Normalize(tag string) string {
	return url.QueryEscape(Fold(tag))
}

// NormalizeAll returns the keys for a list of tags in the same order
func NormalizeAll(tags []string) []string {
	keys := make([]string, len(tags))
	for i, tag := range tags {
		keys[i] = Normalize(tag)
	}
	return keys
}
