// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentReviewableItemTable represents the 'content.reviewable_item' table
type ContentReviewableItemTable struct {
	Table       string
	ID          string
	Type        string
	ReferenceID string
	CreatedAt   string
}

// ContentReviewableItem is the schema definition for content.reviewable_item
var ContentReviewableItem = ContentReviewableItemTable{
	Table:       "content.reviewable_item",
	ID:          "id",
	Type:        "type",
	ReferenceID: "reference_id",
	CreatedAt:   "created_at",
}

// ContentReviewTable represents the 'content.review' table
type ContentReviewTable struct {
	Table             string
	ID                string
	ReviewableItemID  string
	ReviewedVersionID string
	Status            string
	Comment           string
	SubmittedBy       string
	ReviewedBy        string
	ReviewedAt        string
	CreatedAt         string
	UpdatedAt         string
}

// ContentReview is the schema definition for content.review
var ContentReview = ContentReviewTable{
	Table:             "content.review",
	ID:                "id",
	ReviewableItemID:  "reviewable_item_id",
	ReviewedVersionID: "reviewed_version_id",
	Status:            "status",
	Comment:           "comment",
	SubmittedBy:       "submitted_by",
	ReviewedBy:        "reviewed_by",
	ReviewedAt:        "reviewed_at",
	CreatedAt:         "created_at",
	UpdatedAt:         "updated_at",
}

func (t ContentReviewTable) Columns() []string {
	return []string{
		t.ID, t.ReviewableItemID, t.ReviewedVersionID, t.Status, t.Comment,
		t.SubmittedBy, t.ReviewedBy, t.ReviewedAt, t.CreatedAt, t.UpdatedAt,
	}
}

// ContentReviewCommentTable represents the 'content.review_comment' table
type ContentReviewCommentTable struct {
	Table             string
	ID                string
	ReviewID          string
	ReviewedVersionID string
	FieldName         string
	CommentText       string
	CreatedBy         string
	CreatedAt         string
	UpdatedAt         string
}

// ContentReviewComment is the schema definition for content.review_comment
var ContentReviewComment = ContentReviewCommentTable{
	Table:             "content.review_comment",
	ID:                "id",
	ReviewID:          "review_id",
	ReviewedVersionID: "reviewed_version_id",
	FieldName:         "field_name",
	CommentText:       "comment_text",
	CreatedBy:         "created_by",
	CreatedAt:         "created_at",
	UpdatedAt:         "updated_at",
}

func (t ContentReviewCommentTable) Columns() []string {
	return []string{
		t.ID, t.ReviewID, t.ReviewedVersionID, t.FieldName, t.CommentText,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	}
}
