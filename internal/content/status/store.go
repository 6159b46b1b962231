// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package status

import (
	"context"

	"github.com/taibuivan/folio/internal/content"
)

// Store defines persistence for gate rows.
type Store interface {
	// Find returns nil when the entity has no row.
	Find(ctx context.Context, entityType content.EntityType, entityID int64) (*ContentStatus, error)

	// Upsert creates or updates the row keyed by (entityType, entityID).
	Upsert(ctx context.Context, entityType content.EntityType, entityID int64, status Status, userID int64) (*ContentStatus, error)

	// PublishedIDs returns the subset of ids whose status is PUBLISHED.
	PublishedIDs(ctx context.Context, entityType content.EntityType, ids []int64) (map[int64]bool, error)
}
