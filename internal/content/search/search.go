// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package search keeps a full-text index of published sections.
//
// Sections are indexed when they become PUBLISHED. The index is optional:
// without one, publishing still works and queries fail with
// SERVICE_UNAVAILABLE.
package search

import "context"

// Document is the indexed form of one published section.
type Document struct {
	ID        int64  `json:"id"`
	ChapterID int64  `json:"chapterId"`
	VersionID int64  `json:"versionId"`
	TitleEn   string `json:"titleEn"`
	TitleNl   string `json:"titleNl"`
	IntroEn   string `json:"introEn"`
	IntroNl   string `json:"introNl"`
}

// Result is one search hit.
type Result struct {
	SectionID int64  `json:"sectionId"`
	ChapterID int64  `json:"chapterId"`
	TitleEn   string `json:"titleEn"`
	TitleNl   string `json:"titleNl"`
	Snippet   string `json:"snippet"`
}

// Response is the body of GET /search.
type Response struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
	Total   int      `json:"total"`
}

// Index is a search backend.
type Index interface {
	Healthy() bool
	Upsert(ctx context.Context, documents []Document) error
	Delete(ctx context.Context, sectionIDs []int64) error
	Search(ctx context.Context, query string, limit int) ([]Result, int, error)
}
