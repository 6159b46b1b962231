// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/catalog"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

type memNode struct {
	node    catalog.Node
	deleted bool
}

type memCategory struct {
	category catalog.Category
	deleted  bool
}

type memStore struct {
	categories map[int64]*memCategory
	nodes      map[*catalog.Level]map[int64]*memNode
	nextID     int64
}

func newMemStore() *memStore {
	store := &memStore{
		categories: make(map[int64]*memCategory),
		nodes:      make(map[*catalog.Level]map[int64]*memNode),
	}
	for _, level := range catalog.Levels {
		store.nodes[level] = make(map[int64]*memNode)
	}
	return store
}

func (store *memStore) id() int64 {
	store.nextID++
	return store.nextID
}

func (store *memStore) ListCategories(context.Context) ([]*catalog.Category, error) {
	list := make([]*catalog.Category, 0)
	for _, c := range store.categories {
		if !c.deleted {
			copied := c.category
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CategoryNumber < list[j].CategoryNumber })
	return list, nil
}

func (store *memStore) FindCategory(_ context.Context, id int64) (*catalog.Category, error) {
	c, ok := store.categories[id]
	if !ok || c.deleted {
		return nil, apperr.NotFound("Category")
	}
	copied := c.category
	return &copied, nil
}

func (store *memStore) numberTaken(number int, except int64) bool {
	for id, c := range store.categories {
		if !c.deleted && id != except && c.category.CategoryNumber == number {
			return true
		}
	}
	return false
}

func (store *memStore) InsertCategory(_ context.Context, category *catalog.Category) error {
	if store.numberTaken(category.CategoryNumber, 0) {
		return apperr.Conflict("Category already exists")
	}
	category.ID = store.id()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	store.categories[category.ID] = &memCategory{category: *category}
	return nil
}

func (store *memStore) UpdateCategory(_ context.Context, category *catalog.Category) error {
	if store.numberTaken(category.CategoryNumber, category.ID) {
		return apperr.Conflict("Category already exists")
	}
	category.UpdatedAt = time.Now()
	store.categories[category.ID].category = *category
	return nil
}

func (store *memStore) DeleteCategory(_ context.Context, id int64) error {
	c, ok := store.categories[id]
	if !ok || c.deleted {
		return apperr.NotFound("Category")
	}
	c.deleted = true
	return nil
}

func (store *memStore) CategoryExists(_ context.Context, id int64) (bool, error) {
	c, ok := store.categories[id]
	return ok && !c.deleted, nil
}

func (store *memStore) FindNode(_ context.Context, level *catalog.Level, id int64) (*catalog.Node, error) {
	n, ok := store.nodes[level][id]
	if !ok || n.deleted {
		return nil, apperr.NotFound(level.Entity.Label())
	}
	copied := n.node
	return &copied, nil
}

func (store *memStore) ListNodes(_ context.Context, level *catalog.Level, parentIDs []int64) ([]*catalog.Node, error) {
	parents := make(map[int64]bool, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = true
	}

	list := make([]*catalog.Node, 0)
	for _, n := range store.nodes[level] {
		if !n.deleted && parents[n.node.ParentID] {
			copied := n.node
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ParentID != list[j].ParentID {
			return list[i].ParentID < list[j].ParentID
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (store *memStore) InsertNode(_ context.Context, node *catalog.Node) error {
	node.ID = store.id()
	node.CreatedAt = time.Now()
	node.UpdatedAt = node.CreatedAt
	store.nodes[node.Level][node.ID] = &memNode{node: *node}
	return nil
}

func (store *memStore) UpdateNode(_ context.Context, node *catalog.Node) error {
	n, ok := store.nodes[node.Level][node.ID]
	if !ok || n.deleted {
		return apperr.NotFound(node.Level.Entity.Label())
	}
	node.UpdatedAt = time.Now()
	n.node = *node
	return nil
}

func (store *memStore) DeleteNode(_ context.Context, level *catalog.Level, id int64) error {
	n, ok := store.nodes[level][id]
	if !ok || n.deleted {
		return apperr.NotFound(level.Entity.Label())
	}
	n.deleted = true
	return nil
}

func (store *memStore) DeleteChildren(_ context.Context, level *catalog.Level, parentIDs []int64) ([]int64, error) {
	deleted := make([]int64, 0)
	for _, parentID := range parentIDs {
		for id, n := range store.nodes[level] {
			if !n.deleted && n.node.ParentID == parentID {
				n.deleted = true
				deleted = append(deleted, id)
			}
		}
	}
	return deleted, nil
}

func (store *memStore) Exists(_ context.Context, level *catalog.Level, id int64) (bool, error) {
	n, ok := store.nodes[level][id]
	return ok && !n.deleted, nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newCatalog() (*catalog.Catalog, *memStore) {
	store := newMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewCatalog(store, passthroughTx{}, nil, logger), store
}

// recorder collects every change a catalog reports.
type recorder struct {
	changes []content.Change
}

func (r *recorder) ContentChanged(_ context.Context, change content.Change) {
	r.changes = append(r.changes, change)
}

func newRecordingCatalog() (*catalog.Catalog, *recorder) {
	changes := &recorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewCatalog(newMemStore(), passthroughTx{}, changes, logger), changes
}
