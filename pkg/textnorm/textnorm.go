// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm normalizes bilingual editorial text before it is stored.
//
// # Usage
//
// Editors paste content from word processors and browsers, which mix composed
// and decomposed accents (Dutch "é" arrives both ways) and stray whitespace.
// Stored versions are compared and searched, so they are kept in one form.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// horizontalSpace matches runs of spaces and tabs.
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	// blankLines collapses three or more line breaks into a paragraph break.
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// Title normalizes a single-line field.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFC and drops control and zero-width format characters.
// 2. Replaces every whitespace run (line breaks included) with one space.
// 3. Trims both ends.
func Title(s string) string {
	return strings.Join(strings.Fields(clean(s)), " ")
}

// Body normalizes a multi-line field, keeping paragraph breaks.
func Body(s string) string {
	result := strings.ReplaceAll(clean(s), "\r\n", "\n")
	result = strings.ReplaceAll(result, "\r", "\n")

	lines := strings.Split(result, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	}

	result = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// Fallback returns the normalized primary value, or the normalized secondary
// when the primary is blank.
func Fallback(primary, secondary string) string {
	if t := Title(primary); t != "" {
		return t
	}
	return Title(secondary)
}

func clean(s string) string {
	t := transform.Chain(norm.NFC, transform.RemoveFunc(isInvisible))
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// isInvisible reports control characters other than line breaks and tabs,
// and zero-width format characters such as U+200B.
func isInvisible(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}
