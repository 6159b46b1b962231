// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements field-level comment threads on reviews.
//
// Comments are addressed to one field of the reviewed version (for example
// "titleEn" or "introNl") and remain writable after the review is resolved.
package comment

import (
	"context"
	"time"
)

// Comment is one remark on a review.
type Comment struct {
	ID                int64     `json:"id"`
	ReviewID          int64     `json:"reviewId"`
	ReviewedVersionID int64     `json:"reviewedVersionId"`
	FieldName         string    `json:"fieldName"`
	CommentText       string    `json:"commentText"`
	CreatedBy         int64     `json:"createdBy"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Store defines persistence for review comments.
type Store interface {
	Insert(ctx context.Context, comment *Comment) error
	FindByID(ctx context.Context, id int64) (*Comment, error)

	// ListByReview returns comments oldest first.
	ListByReview(ctx context.Context, reviewID int64) ([]*Comment, error)

	// UpdateText replaces the text and returns the refreshed row.
	UpdateText(ctx context.Context, id int64, text string) (*Comment, error)
	Delete(ctx context.Context, id int64) error
}
