// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "strings"

// List joins column names for a SELECT or INSERT list.
func List(columns ...string) string {
	return strings.Join(columns, ", ")
}

// Qualified prefixes every column with a table alias.
func Qualified(alias string, columns ...string) string {
	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = alias + "." + column
	}
	return strings.Join(prefixed, ", ")
}
