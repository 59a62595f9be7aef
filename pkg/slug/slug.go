// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns free text into the lowercase hyphenated identifiers used
// for entry slugs and media object names.
package slug

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold strips accents so "Café" becomes "Cafe" before the ASCII filter runs.
var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// From returns s as a slug. Only a-z and 0-9 survive; every other run of
// characters becomes a single hyphen and the ends are trimmed.
//
//	From("  Café & Bar  ") // "cafe-bar"
func From(s string) string {
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	builder.Grow(len(folded))

	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return builder.String()
}

// FileName slugs the base of a file name and keeps its lowercased extension.
//
//	FileName("Café Menu.PDF") // "cafe-menu.pdf"
func FileName(name string) string {
	ext := path.Ext(name)
	if ext == name {
		ext = ""
	}
	base := From(strings.TrimSuffix(name, ext))
	ext = From(ext)

	if base == "" {
		base = "file"
	}
	if ext == "" {
		return base
	}
	return base + "." + ext
}
