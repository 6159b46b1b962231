// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/pkg/convert"
)

func TestToInt64(t *testing.T) {
	v, ok := convert.ToInt64(" 42 ")
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)

	_, ok = convert.ToInt64("4x")
	assert.False(t, ok)
}

func TestToIntD(t *testing.T) {
	assert.Equal(t, 7, convert.ToIntD("", 7))
	assert.Equal(t, 7, convert.ToIntD("seven", 7))
	assert.Equal(t, 3, convert.ToIntD("3", 7))
}
