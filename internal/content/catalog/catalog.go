// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package catalog manages the structural rows of the content hierarchy:
// categories, books, chapters, sections and paragraphs.
//
// Structural rows hold ordering and parent links only. Titles and text live in
// the version chains of package version.
//
// # Deletion
//
// Rows are soft-deleted and the deletion cascades to live descendants.
// Versions, statuses and reviews are never removed.
package catalog

import (
	"encoding/json"
	"time"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/platform/database/schema"
)

// maxSystemCategory is the highest reserved category number. Categories 0
// through 4 are seeded by the schema migration.
const maxSystemCategory = 4

// # Categories

// Category is a top-level grouping of books. Categories are not versioned.
type Category struct {
	ID             int64     `json:"id"`
	CategoryNumber int       `json:"categoryNumber"`
	TitleEn        string    `json:"titleEn"`
	TitleNl        string    `json:"titleNl"`
	SubtitleEn     string    `json:"subtitleEn"`
	SubtitleNl     string    `json:"subtitleNl"`
	DescriptionEn  string    `json:"descriptionEn"`
	DescriptionNl  string    `json:"descriptionNl"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsSystem reports whether the category is one of the reserved ones.
func (c *Category) IsSystem() bool {
	return c.CategoryNumber <= maxSystemCategory
}

// CategoryInput carries the editable fields of a category.
type CategoryInput struct {
	CategoryNumber int    `json:"categoryNumber"`
	TitleEn        string `json:"titleEn"`
	TitleNl        string `json:"titleNl"`
	SubtitleEn     string `json:"subtitleEn"`
	SubtitleNl     string `json:"subtitleNl"`
	DescriptionEn  string `json:"descriptionEn"`
	DescriptionNl  string `json:"descriptionNl"`
}

// # Levels

// Level describes one versioned structural table and its place in the tree.
type Level struct {
	Entity content.EntityType
	Table  schema.ContentEntityTable

	// Path is the plural URL segment, e.g. "books".
	Path string

	// ParentField and OrdinalField are the JSON names of the parent link and
	// the ordering number.
	ParentField  string
	OrdinalField string

	OrdinalMin      int
	OrdinalRequired bool

	// OrdinalNullable levels store a missing number as NULL; the others
	// fall back to OrdinalMin.
	OrdinalNullable bool

	depth int
}

var (
	Books = &Level{
		Entity: content.EntityBook, Path: "books", Table: schema.ContentBook,
		ParentField: "categoryId", OrdinalField: "bookNumber",
		OrdinalMin: 1, OrdinalNullable: true, depth: 0,
	}
	Chapters = &Level{
		Entity: content.EntityChapter, Path: "chapters", Table: schema.ContentChapter,
		ParentField: "bookId", OrdinalField: "chapterNumber",
		OrdinalMin: 1, OrdinalNullable: true, depth: 1,
	}
	Sections = &Level{
		Entity: content.EntitySection, Path: "sections", Table: schema.ContentSection,
		ParentField: "chapterId", OrdinalField: "orderIndex",
		OrdinalMin: 0, depth: 2,
	}
	Paragraphs = &Level{
		Entity: content.EntityParagraph, Path: "paragraphs", Table: schema.ContentParagraph,
		ParentField: "sectionId", OrdinalField: "paragraphNumber",
		OrdinalMin: 1, OrdinalRequired: true, depth: 3,
	}

	// Levels lists the structural levels from the top down.
	Levels = []*Level{Books, Chapters, Sections, Paragraphs}
)

// LevelOf returns the level of an entity type, or nil.
func LevelOf(entityType content.EntityType) *Level {
	for _, level := range Levels {
		if level.Entity == entityType {
			return level
		}
	}
	return nil
}

// Parent returns the level above, or nil when the parent is a category.
func (level *Level) Parent() *Level {
	if level.depth == 0 {
		return nil
	}
	return Levels[level.depth-1]
}

// Child returns the level below, or nil for paragraphs.
func (level *Level) Child() *Level {
	if level.depth+1 >= len(Levels) {
		return nil
	}
	return Levels[level.depth+1]
}

// HasPosition reports whether the level carries a layout position.
func (level *Level) HasPosition() bool {
	return level.Table.Position != ""
}

// # Nodes

// Node is one structural row of a level.
type Node struct {
	Level            *Level
	ID               int64
	ParentID         int64
	Number           *int
	Position         int
	WorkingVersionID *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MarshalJSON names the parent and ordinal fields after the level, e.g.
// {"chapterId": 3, "orderIndex": 2} for a section.
func (node *Node) MarshalJSON() ([]byte, error) {
	body := map[string]any{
		"id":                    node.ID,
		node.Level.ParentField:  node.ParentID,
		node.Level.OrdinalField: node.Number,
		"workingVersionId":      node.WorkingVersionID,
		"createdAt":             node.CreatedAt,
		"updatedAt":             node.UpdatedAt,
	}
	if node.Level.HasPosition() {
		body["position"] = node.Position
	}
	return json.Marshal(body)
}

// NodeInput carries the editable fields of a node. ParentID is ignored on
// update.
type NodeInput struct {
	ParentID int64
	Number   *int
	Position *int
}
