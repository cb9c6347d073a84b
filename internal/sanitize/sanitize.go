// Package sanitize turns untrusted client filenames into filesystem-safe names.
package sanitize

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops the combining diacritical marks,
// so "Wrześień" becomes "Wrzesien" rather than being filtered away entirely.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^A-Za-z0-9_\-.]`)
)

// Sanitize maps an arbitrary filename to an ASCII-only, filesystem-safe token.
// Runs of whitespace become a single underscore; anything outside
// [A-Za-z0-9_-.] is removed. The empty string maps to the empty string,
// which callers must treat as an invalid name.
func Sanitize(name string) string {
	s, _, err := transform.String(stripMarks, name)
	if err != nil {
		s = name
	}
	s = whitespaceRun.ReplaceAllString(s, "_")
	return disallowed.ReplaceAllString(s, "")
}

// OutputName derives the stored output filename for an upload: the sanitized
// base name, a second-precision timestamp with separators normalized to
// hyphens, and a short random fragment so concurrent uploads of the same file
// within one second cannot collide.
func OutputName(originalName string, now time.Time) string {
	base := strings.TrimSuffix(originalName, filepath.Ext(originalName))
	base = Sanitize(base)
	stamp := now.Format("2006-01-02T15-04-05")
	return base + "_" + stamp + "_" + uuid.NewString()[:8] + ".mt940"
}
