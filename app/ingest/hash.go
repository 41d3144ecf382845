package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// normalize makes feed text comparable across sources: Unicode NFC,
// case folding and whitespace collapse. Feeds routinely re-emit the
// same item with cosmetic differences. The caser is built per call,
// cases.Caser carries state and must not be shared across goroutines.
func normalize(s string) string {
	s = norm.NFC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// DedupHash identifies a feed item for deduplication purposes. Two
// items with the same link and title hash identically regardless of
// case or spacing.
func DedupHash(link, title string) string {
	sum := sha256.Sum256([]byte(normalize(link) + "|" + normalize(title)))
	return hex.EncodeToString(sum[:])
}
