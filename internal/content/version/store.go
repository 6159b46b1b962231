// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package version

import (
	"context"
	"errors"
)

// ErrNumberTaken is returned by [Store.Insert] when another writer committed
// the same (owner, version number) pair first.
var ErrNumberTaken = errors.New("version: number already taken")

// Store is the persistence port of a [Chain].
//
// Implementations pick up the active transaction from the context.
type Store[C Content[C]] interface {
	// NextNumber returns max(version_number) + 1 for the owner, or 1.
	NextNumber(ctx context.Context, ownerID int64) (int, error)

	// Insert stores v and fills its ID and CreatedAt.
	Insert(ctx context.Context, v *Version[C]) error

	FindByID(ctx context.Context, id int64) (*Version[C], error)

	// ListByOwner returns the chain, highest version number first.
	ListByOwner(ctx context.Context, ownerID int64) ([]*Version[C], error)

	// FindLatest returns nil when the owner has no versions.
	FindLatest(ctx context.Context, ownerID int64) (*Version[C], error)

	// WorkingVersionID fails with NOT_FOUND when the owner does not exist.
	WorkingVersionID(ctx context.Context, ownerID int64) (*int64, error)

	SetWorkingVersion(ctx context.Context, ownerID, versionID int64) error

	// FindWorking returns nil when the pointer is null or the owner is missing.
	FindWorking(ctx context.Context, ownerID int64) (*Version[C], error)

	// FindWorkingMany resolves several pointers at once, keyed by owner id.
	// Owners without a working version are absent from the map.
	FindWorkingMany(ctx context.Context, ownerIDs []int64) (map[int64]*Version[C], error)
}
