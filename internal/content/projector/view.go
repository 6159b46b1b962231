// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package projector

import (
	"github.com/taibuivan/folio/internal/content/catalog"
	"github.com/taibuivan/folio/internal/content/version"
	"github.com/taibuivan/folio/pkg/pointer"
)

// CategoryTree is a category with its books.
type CategoryTree struct {
	*catalog.Category
	Books []*BookTree `json:"books"`
}

// BookTree carries the working-version titles of a book.
type BookTree struct {
	ID         int64          `json:"id"`
	BookNumber *int           `json:"bookNumber"`
	TitleEn    *string        `json:"titleEn"`
	TitleNl    *string        `json:"titleNl"`
	Chapters   []*ChapterTree `json:"chapters"`
}

// ChapterTree carries the working-version titles of a chapter.
type ChapterTree struct {
	ID            int64          `json:"id"`
	ChapterNumber *int           `json:"chapterNumber"`
	Position      int            `json:"position"`
	TitleEn       *string        `json:"titleEn"`
	TitleNl       *string        `json:"titleNl"`
	Sections      []*SectionView `json:"sections"`
}

// SectionView is the effective bilingual view of a section. Content fields
// are null when the section has no working version.
type SectionView struct {
	ID         int64            `json:"id"`
	ChapterID  int64            `json:"chapterId"`
	OrderIndex int              `json:"orderIndex"`
	VersionID  *int64           `json:"versionId"`
	TitleEn    *string          `json:"titleEn"`
	TitleNl    *string          `json:"titleNl"`
	IntroEn    *string          `json:"introEn"`
	IntroNl    *string          `json:"introNl"`
	Published  bool             `json:"published"`
	Paragraphs []*ParagraphView `json:"paragraphs"`
}

// ParagraphView is the effective bilingual view of a paragraph.
type ParagraphView struct {
	ID              int64   `json:"id"`
	ParagraphNumber int     `json:"paragraphNumber"`
	VersionID       *int64  `json:"versionId"`
	TitleEn         *string `json:"titleEn"`
	TitleNl         *string `json:"titleNl"`
	ContentEn       *string `json:"contentEn"`
	ContentNl       *string `json:"contentNl"`
	Published       bool    `json:"published"`
}

func number(node *catalog.Node) int {
	return pointer.Val(node.Number)
}

func newBook(node *catalog.Node, working *version.Version[version.Intro]) *BookTree {
	book := &BookTree{ID: node.ID, BookNumber: node.Number, Chapters: []*ChapterTree{}}
	if working != nil {
		book.TitleEn, book.TitleNl = &working.Content.TitleEn, &working.Content.TitleNl
	}
	return book
}

func newChapter(node *catalog.Node, working *version.Version[version.Intro]) *ChapterTree {
	chapter := &ChapterTree{ID: node.ID, ChapterNumber: node.Number, Position: node.Position, Sections: []*SectionView{}}
	if working != nil {
		chapter.TitleEn, chapter.TitleNl = &working.Content.TitleEn, &working.Content.TitleNl
	}
	return chapter
}

func newSection(node *catalog.Node, working *version.Version[version.Intro], published bool) *SectionView {
	section := &SectionView{
		ID:         node.ID,
		ChapterID:  node.ParentID,
		OrderIndex: number(node),
		Published:  published,
		Paragraphs: []*ParagraphView{},
	}
	if working != nil {
		c := working.Content
		section.VersionID = &working.ID
		section.TitleEn, section.TitleNl = &c.TitleEn, &c.TitleNl
		section.IntroEn, section.IntroNl = &c.IntroEn, &c.IntroNl
	}
	return section
}

func newParagraph(node *catalog.Node, working *version.Version[version.Body], published bool) *ParagraphView {
	paragraph := &ParagraphView{ID: node.ID, ParagraphNumber: number(node), Published: published}
	if working != nil {
		c := working.Content
		paragraph.VersionID = &working.ID
		paragraph.TitleEn, paragraph.TitleNl = &c.TitleEn, &c.TitleNl
		paragraph.ContentEn, paragraph.ContentNl = &c.ContentEn, &c.ContentNl
	}
	return paragraph
}
