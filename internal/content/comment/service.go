// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/folio/internal/content/review"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
)

const (
	maxFieldNameLength = 64
	maxTextLength      = 5000
)

// ReviewFinder loads the review a comment hangs off.
type ReviewFinder interface {
	Get(ctx context.Context, reviewID int64) (*review.Review, error)
}

// Thread is the review comment service.
type Thread struct {
	store   Store
	reviews ReviewFinder
	logger  *slog.Logger
}

// NewThread constructs a new [Thread].
func NewThread(store Store, reviews ReviewFinder, logger *slog.Logger) *Thread {
	return &Thread{store: store, reviews: reviews, logger: logger}
}

/*
Add appends a comment to a review. Resolved reviews accept comments too.

Parameters:
  - reviewedVersionID: zero means the review's own version
  - fieldName: the commented field, e.g. "titleEn"

Returns:
  - error: NOT_FOUND (review), VALIDATION_ERROR
*/
func (thread *Thread) Add(ctx context.Context, reviewID, reviewedVersionID int64, fieldName, text string, authorID int64) (*Comment, error) {
	fieldName = strings.TrimSpace(fieldName)
	text = strings.TrimSpace(text)

	v := &validate.Validator{}
	v.RequiredID("reviewId", reviewID).
		Required("fieldName", fieldName).
		MaxLen("fieldName", fieldName, maxFieldNameLength).
		Required("commentText", text).
		MaxLen("commentText", text, maxTextLength).
		RequiredID("createdBy", authorID).
		Custom("reviewedVersionId", reviewedVersionID < 0, "Must not be negative")
	if err := v.Err(); err != nil {
		return nil, err
	}

	target, err := thread.reviews.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	switch reviewedVersionID {
	case 0:
		reviewedVersionID = target.ReviewedVersionID
	case target.ReviewedVersionID:
	default:
		return nil, validate.FieldError("reviewedVersionId",
			fmt.Sprintf("Review %d covers version %d", reviewID, target.ReviewedVersionID))
	}

	added := &Comment{
		ReviewID:          reviewID,
		ReviewedVersionID: reviewedVersionID,
		FieldName:         fieldName,
		CommentText:       text,
		CreatedBy:         authorID,
	}
	if err := thread.store.Insert(ctx, added); err != nil {
		return nil, err
	}

	thread.logger.InfoContext(ctx, "review_comment_added",
		slog.Int64("comment_id", added.ID),
		slog.Int64("review_id", reviewID),
		slog.String("field_name", fieldName),
		slog.Int64("created_by", authorID),
	)

	return added, nil
}

// List returns the comments of a review, oldest first.
func (thread *Thread) List(ctx context.Context, reviewID int64) ([]*Comment, error) {
	if _, err := thread.reviews.Get(ctx, reviewID); err != nil {
		return nil, err
	}
	return thread.store.ListByReview(ctx, reviewID)
}

// Update replaces the text of a comment. Only its author may edit it.
func (thread *Thread) Update(ctx context.Context, commentID int64, text string, userID int64) (*Comment, error) {
	text = strings.TrimSpace(text)

	v := &validate.Validator{}
	v.Required("commentText", text).MaxLen("commentText", text, maxTextLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if _, err := thread.authored(ctx, commentID, userID); err != nil {
		return nil, err
	}

	updated, err := thread.store.UpdateText(ctx, commentID, text)
	if err != nil {
		return nil, err
	}

	thread.logger.InfoContext(ctx, "review_comment_updated",
		slog.Int64("comment_id", commentID),
		slog.Int64("user_id", userID),
	)

	return updated, nil
}

// Delete removes a comment. Only its author may delete it.
func (thread *Thread) Delete(ctx context.Context, commentID, userID int64) error {
	if _, err := thread.authored(ctx, commentID, userID); err != nil {
		return err
	}

	if err := thread.store.Delete(ctx, commentID); err != nil {
		return err
	}

	thread.logger.InfoContext(ctx, "review_comment_deleted",
		slog.Int64("comment_id", commentID),
		slog.Int64("user_id", userID),
	)
	return nil
}

func (thread *Thread) authored(ctx context.Context, commentID, userID int64) (*Comment, error) {
	found, err := thread.store.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if found.CreatedBy != userID {
		return nil, apperr.Forbidden("Only the author can change this comment")
	}
	return found, nil
}
