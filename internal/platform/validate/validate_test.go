// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "needs work", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("comment", tt.value)

			if tt.hasError {
				err := v.Err()
				require.Error(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, "comment", ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.NoError(t, v.Err())
			}
		})
	}
}

/*
TestValidator_AtLeastOne checks the bilingual title rule.
*/
func TestValidator_AtLeastOne(t *testing.T) {
	fields := []string{"titleEn", "titleNl"}

	tests := []struct {
		name     string
		en, nl   string
		hasError bool
	}{
		{"both", "Title", "Titel", false},
		{"english_only", "Title", "", false},
		{"dutch_only", "", "Titel", false},
		{"neither", " ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.AtLeastOne(fields, tt.en, tt.nl)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

/*
TestValidator_Numbers covers Min, Range, OptionalMin and RequiredID.
*/
func TestValidator_Numbers(t *testing.T) {
	v := &validate.Validator{}
	v.Min("orderIndex", 0, 0).
		Range("position", 10, 0, 10).
		OptionalMin("bookNumber", nil, 1).
		RequiredID("chapterId", 4)
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	err := v.Min("paragraphNumber", 0, 1).
		Range("position", 11, 0, 10).
		OptionalMin("chapterNumber", pointer.To(0), 1).
		RequiredID("sectionId", 0).
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("fieldName", "").
		MaxLen("commentText", "abcdef", 3).
		OneOf("status", "PENDING", "SUBMITTED", "APPROVED", "REJECTED").
		Custom("versionId", true, "Version does not belong to this section").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
}

/*
TestFieldError builds a single-field error.
*/
func TestFieldError(t *testing.T) {
	ae := validate.FieldError("comment", "A rejection needs a reason")
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, "comment", ae.Details[0].Field)
}
