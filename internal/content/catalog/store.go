// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// Store defines persistence for structural rows. Every read ignores
// soft-deleted rows.
type Store interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	FindCategory(ctx context.Context, id int64) (*Category, error)
	InsertCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error

	// DeleteCategory soft-deletes one category; NOT_FOUND when it is not live.
	DeleteCategory(ctx context.Context, id int64) error

	FindNode(ctx context.Context, level *Level, id int64) (*Node, error)

	// ListNodes returns the live children of parentIDs ordered by parent,
	// ordinal and id.
	ListNodes(ctx context.Context, level *Level, parentIDs []int64) ([]*Node, error)
	InsertNode(ctx context.Context, node *Node) error
	UpdateNode(ctx context.Context, node *Node) error

	// DeleteNode soft-deletes one node; NOT_FOUND when it is not live.
	DeleteNode(ctx context.Context, level *Level, id int64) error

	// DeleteChildren soft-deletes the live children of parentIDs and returns
	// their ids.
	DeleteChildren(ctx context.Context, level *Level, parentIDs []int64) ([]int64, error)

	Exists(ctx context.Context, level *Level, id int64) (bool, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
}
