// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/pkg/query"
)

/*
TestIDList accepts clean lists and refuses malformed entries.
*/
func TestIDList(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   []int64
		wantOK bool
	}{
		{"empty", "", nil, true},
		{"single", "5", []int64{5}, true},
		{"spaces and blanks", " 3, ,7 ,", []int64{3, 7}, true},
		{"duplicates", "4,4,2", []int64{4, 2}, true},
		{"negative", "1,-2", nil, false},
		{"zero", "0", nil, false},
		{"text", "1,abc", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, ok := query.IDList(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, ids)
		})
	}
}

/*
TestStringList trims values and drops blanks.
*/
func TestStringList(t *testing.T) {
	assert.Equal(t, []string{"nl", "en"}, query.StringList(" nl,, en "))
	assert.Nil(t, query.StringList(""))
}
