// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentVersionTable represents an append-only version table.
//
// TextEn/TextNl hold the level's body text: intro_* for books, chapters and
// sections, content_* for paragraphs.
type ContentVersionTable struct {
	Table            string
	ID               string
	OwnerID          string
	VersionNumber    string
	TitleEn          string
	TitleNl          string
	TextEn           string
	TextNl           string
	CreatedBy        string
	CreatedAt        string
	NumberConstraint string
}

var (
	ContentBookVersion      = versionTable("book", "intro")
	ContentChapterVersion   = versionTable("chapter", "intro")
	ContentSectionVersion   = versionTable("section", "intro")
	ContentParagraphVersion = versionTable("paragraph", "content")
)

func versionTable(owner, text string) ContentVersionTable {
	return ContentVersionTable{
		Table:            "content." + owner + "_version",
		ID:               "id",
		OwnerID:          owner + "_id",
		VersionNumber:    "version_number",
		TitleEn:          "title_en",
		TitleNl:          "title_nl",
		TextEn:           text + "_en",
		TextNl:           text + "_nl",
		CreatedBy:        "created_by",
		CreatedAt:        "created_at",
		NumberConstraint: "uq_" + owner + "_version_number",
	}
}

func (t ContentVersionTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.VersionNumber, t.TitleEn, t.TitleNl, t.TextEn, t.TextNl,
		t.CreatedBy, t.CreatedAt,
	}
}
