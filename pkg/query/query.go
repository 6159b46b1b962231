// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import (
	"strconv"
	"strings"
)

// IDList parses a comma-separated list of positive ids. Blank entries are
// skipped and duplicates dropped; ok is false when any entry is malformed.
func IDList(raw string) (ids []int64, ok bool) {
	seen := make(map[int64]bool)
	for _, part := range strings.Split(raw, ",") {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		id, err := strconv.ParseInt(clean, 10, 64)
		if err != nil || id <= 0 {
			return nil, false
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, true
}

// StringList parses a comma-separated list into trimmed, non-empty values.
func StringList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if clean := strings.TrimSpace(part); clean != "" {
			values = append(values, clean)
		}
	}
	return values
}
