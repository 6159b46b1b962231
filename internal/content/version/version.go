// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package version implements the append-only version chain and the working
pointer, once, for every versioned content level.

A [Chain] is parameterised by a [Level], which names the owner table, the
version table and the shape of the bilingual content. Four levels are
registered: [BookLevel], [ChapterLevel], [SectionLevel] and [ParagraphLevel].

# Invariants

  - Version numbers per owner form the gap-free sequence 1..n.
  - Versions are never updated or deleted.
  - A non-null working pointer always references a version of the same owner.
*/
package version

import (
	"encoding/json"
	"time"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// # Content Payloads

// Fields is the column-order form of bilingual content shared by all levels.
type Fields struct {
	TitleEn string
	TitleNl string
	TextEn  string
	TextNl  string
}

// Content is the bilingual payload stored in one version row.
type Content[C any] interface {
	Fields() Fields
	// Normalized returns the storage form: cleaned text with the title
	// fallback applied.
	Normalized() C
	Validate(v *validate.Validator)
}

// Version is one immutable snapshot in an owner's chain.
type Version[C Content[C]] struct {
	ID            int64
	OwnerID       int64
	VersionNumber int
	Content       C
	CreatedBy     int64
	CreatedAt     time.Time
}

// MarshalJSON flattens the content fields next to the version metadata.
func (v Version[C]) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(v.Content)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	fields["id"] = v.ID
	fields["ownerId"] = v.OwnerID
	fields["versionNumber"] = v.VersionNumber
	fields["createdBy"] = v.CreatedBy
	fields["createdAt"] = v.CreatedAt

	return json.Marshal(fields)
}

// # Levels

// Level binds a chain to its tables and content type.
type Level[C Content[C]] struct {
	Entity  content.EntityType
	Owner   schema.ContentEntityTable
	Version schema.ContentVersionTable

	// FromFields rebuilds the content value from scanned columns.
	FromFields func(Fields) C
}

// Resource is the name used in NOT_FOUND messages for versions of this level.
func (level Level[C]) Resource() string {
	return level.Entity.Label() + " version"
}

var (
	BookLevel = Level[Intro]{
		Entity:     content.EntityBook,
		Owner:      schema.ContentBook,
		Version:    schema.ContentBookVersion,
		FromFields: introFromFields,
	}

	ChapterLevel = Level[Intro]{
		Entity:     content.EntityChapter,
		Owner:      schema.ContentChapter,
		Version:    schema.ContentChapterVersion,
		FromFields: introFromFields,
	}

	SectionLevel = Level[Intro]{
		Entity:     content.EntitySection,
		Owner:      schema.ContentSection,
		Version:    schema.ContentSectionVersion,
		FromFields: introFromFields,
	}

	ParagraphLevel = Level[Body]{
		Entity:     content.EntityParagraph,
		Owner:      schema.ContentParagraph,
		Version:    schema.ContentParagraphVersion,
		FromFields: bodyFromFields,
	}
)
