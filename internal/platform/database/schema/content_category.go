// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names of the content schema so
// queries are assembled from one source of truth.
package schema

// ContentCategoryTable represents the 'content.category' table
type ContentCategoryTable struct {
	Table          string
	ID             string
	CategoryNumber string
	TitleEn        string
	TitleNl        string
	SubtitleEn     string
	SubtitleNl     string
	DescriptionEn  string
	DescriptionNl  string
	CreatedAt      string
	UpdatedAt      string
	DeletedAt      string
}

// ContentCategory is the schema definition for content.category
var ContentCategory = ContentCategoryTable{
	Table:          "content.category",
	ID:             "id",
	CategoryNumber: "category_number",
	TitleEn:        "title_en",
	TitleNl:        "title_nl",
	SubtitleEn:     "subtitle_en",
	SubtitleNl:     "subtitle_nl",
	DescriptionEn:  "description_en",
	DescriptionNl:  "description_nl",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
	DeletedAt:      "deleted_at",
}

func (t ContentCategoryTable) Columns() []string {
	return []string{
		t.ID, t.CategoryNumber, t.TitleEn, t.TitleNl, t.SubtitleEn, t.SubtitleNl,
		t.DescriptionEn, t.DescriptionNl, t.CreatedAt, t.UpdatedAt,
	}
}
