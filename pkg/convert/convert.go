// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides small string-to-number conversions for handler code.

Use the strict variants when the caller must distinguish malformed input from
a missing value; use the defaulting variants for optional query parameters.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToInt64 parses a base-10 int64, reporting whether parsing succeeded.
func ToInt64(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ToIntD converts a string to an int, returning def if parsing fails or s is empty.
func ToIntD(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
