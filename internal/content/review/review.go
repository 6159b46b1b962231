// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review implements the review state machine.

A reviewable item is the stable (type, reference id) handle of a content
unit. Each review round is one [Review] row that moves exactly once from
SUBMITTED to APPROVED or REJECTED:

	SUBMITTED ──approve──▶ APPROVED  (publishes the unit)
	    │
	    └──────reject───▶ REJECTED  (status gate untouched)

A new round needs a new submission.
*/
package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/folio/internal/content"
)

// # Reviewable Types

// Type is the kind of content unit under review.
type Type string

const (
	TypeSection   Type = "SECTION"
	TypeParagraph Type = "PARAGRAPH"
	TypeChapter   Type = "CHAPTER"
	TypeBook      Type = "BOOK"
)

// ParseType parses a reviewable type case-insensitively.
func ParseType(raw string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	return t, t.Entity() != ""
}

// Entity maps the type to its status gate entity type.
func (t Type) Entity() content.EntityType {
	switch t {
	case TypeSection:
		return content.EntitySection
	case TypeParagraph:
		return content.EntityParagraph
	case TypeChapter:
		return content.EntityChapter
	case TypeBook:
		return content.EntityBook
	}
	return ""
}

// TypeOf maps a status gate entity type back to its reviewable type.
func TypeOf(entityType content.EntityType) Type {
	return Type(strings.ToUpper(string(entityType)))
}

// # Review States

// State is the position of a review in its lifecycle.
type State string

const (
	StateSubmitted State = "SUBMITTED"
	StateApproved  State = "APPROVED"
	StateRejected  State = "REJECTED"
)

// ParseState parses a review state case-insensitively.
func ParseState(raw string) (State, bool) {
	s := State(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StateSubmitted, StateApproved, StateRejected:
		return s, true
	}
	return s, false
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateApproved || s == StateRejected
}

// # Models

// Item is the (type, reference id) handle reviews hang off.
type Item struct {
	ID          int64     `json:"id"`
	Type        Type      `json:"type"`
	ReferenceID int64     `json:"referenceId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Review is one review round of a reviewable item.
type Review struct {
	ID                int64      `json:"id"`
	ReviewableItemID  int64      `json:"reviewableItemId"`
	Type              Type       `json:"type"`
	ReferenceID       int64      `json:"referenceId"`
	ReviewedVersionID int64      `json:"reviewedVersionId"`
	Status            State      `json:"status"`
	Comment           *string    `json:"comment"`
	SubmittedBy       int64      `json:"submittedBy"`
	ReviewedBy        *int64     `json:"reviewedBy"`
	ReviewedAt        *time.Time `json:"reviewedAt"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (r *Review) String() string {
	return fmt.Sprintf("review %d (%s %d, version %d, %s)", r.ID, r.Type, r.ReferenceID, r.ReviewedVersionID, r.Status)
}
