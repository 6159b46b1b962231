// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentEntityTable represents one of the versioned structural tables
// (content.book, content.chapter, content.section, content.paragraph).
//
// ParentID names the foreign key to the parent level and Ordinal the
// structural ordering column. Chapter carries a second ordinal, Position.
type ContentEntityTable struct {
	Table            string
	ID               string
	ParentID         string
	Ordinal          string
	Position         string
	WorkingVersionID string
	CreatedAt        string
	UpdatedAt        string
	DeletedAt        string
}

var (
	// ContentBook is the schema definition for content.book
	ContentBook = entityTable("content.book", "category_id", "book_number")

	// ContentChapter is the schema definition for content.chapter
	ContentChapter = func() ContentEntityTable {
		t := entityTable("content.chapter", "book_id", "chapter_number")
		t.Position = "position"
		return t
	}()

	// ContentSection is the schema definition for content.section
	ContentSection = entityTable("content.section", "chapter_id", "order_index")

	// ContentParagraph is the schema definition for content.paragraph
	ContentParagraph = entityTable("content.paragraph", "section_id", "paragraph_number")
)

func entityTable(table, parentID, ordinal string) ContentEntityTable {
	return ContentEntityTable{
		Table:            table,
		ID:               "id",
		ParentID:         parentID,
		Ordinal:          ordinal,
		WorkingVersionID: "working_version_id",
		CreatedAt:        "created_at",
		UpdatedAt:        "updated_at",
		DeletedAt:        "deleted_at",
	}
}

// Live is the predicate excluding soft-deleted rows.
func (t ContentEntityTable) Live() string {
	return t.DeletedAt + " IS NULL"
}
