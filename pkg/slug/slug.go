// Copyright (c) 2026 Travelpack. All rights reserved.

// Package slug generates ASCII slugs from arbitrary Unicode strings.
//
// Slugs normalize free-text user input (destinations, trip purposes) into
// stable cache keys, so "Kyōto" and "kyoto " share an entry.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any run of characters outside [a-z0-9-].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses consecutive hyphens.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into an ASCII slug.
//
// Pipeline: NFD-normalize and drop combining marks, lowercase, replace
// everything that is not a letter or digit with a hyphen, then collapse and
// trim hyphens. Letters with no ASCII decomposition are dropped.
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Key slugs each part and joins them with ':'. Empty slugs become "_" so
// positions stay distinguishable.
func Key(parts ...string) string {
	slugs := make([]string, len(parts))
	for i, part := range parts {
		slugs[i] = From(part)
		if slugs[i] == "" {
			slugs[i] = "_"
		}
	}
	return strings.Join(slugs, ":")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g. accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
