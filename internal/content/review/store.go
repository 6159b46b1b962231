// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/taibuivan/folio/pkg/pagination"
)

// Store defines persistence for reviewable items and reviews.
type Store interface {
	// EnsureItem finds or creates the item for (t, referenceID).
	EnsureItem(ctx context.Context, t Type, referenceID int64) (*Item, error)

	// FindItem returns nil when no item exists.
	FindItem(ctx context.Context, t Type, referenceID int64) (*Item, error)

	// Insert stores a SUBMITTED review and fills ID and timestamps.
	Insert(ctx context.Context, review *Review) error

	FindByID(ctx context.Context, id int64) (*Review, error)

	// Resolve moves a SUBMITTED review to a terminal state. It reports false
	// when the review is missing or no longer SUBMITTED. A nil comment keeps
	// the stored one.
	Resolve(ctx context.Context, id int64, to State, reviewedBy int64, comment *string) (bool, error)

	// ListByStatus returns one page of reviews in a state, newest first, and
	// the total count.
	ListByStatus(ctx context.Context, state State, page pagination.Params) ([]*Review, int, error)

	// ListByItem returns every round of an item, newest first.
	ListByItem(ctx context.Context, itemID int64) ([]*Review, error)
}
