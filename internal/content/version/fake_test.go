// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package version_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/version"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

// memStore is an in-memory [version.Store].
type memStore[C version.Content[C]] struct {
	mu       sync.Mutex
	nextID   int64
	versions map[int64]*version.Version[C]
	owners   map[int64]*int64

	// collisions makes the next N inserts fail as if another writer won.
	collisions int
}

func newMemStore[C version.Content[C]](ownerIDs ...int64) *memStore[C] {
	store := &memStore[C]{
		versions: make(map[int64]*version.Version[C]),
		owners:   make(map[int64]*int64),
	}
	for _, id := range ownerIDs {
		store.owners[id] = nil
	}
	return store
}

func (store *memStore[C]) NextNumber(_ context.Context, ownerID int64) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	highest := 0
	for _, v := range store.versions {
		if v.OwnerID == ownerID && v.VersionNumber > highest {
			highest = v.VersionNumber
		}
	}
	return highest + 1, nil
}

func (store *memStore[C]) Insert(_ context.Context, v *version.Version[C]) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.collisions > 0 {
		store.collisions--
		return version.ErrNumberTaken
	}

	store.nextID++
	v.ID = store.nextID
	v.CreatedAt = time.Now()
	copied := *v
	store.versions[v.ID] = &copied
	return nil
}

func (store *memStore[C]) FindByID(_ context.Context, id int64) (*version.Version[C], error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	v, ok := store.versions[id]
	if !ok {
		return nil, apperr.NotFound("Version")
	}
	return v, nil
}

func (store *memStore[C]) ListByOwner(_ context.Context, ownerID int64) ([]*version.Version[C], error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	list := make([]*version.Version[C], 0)
	for _, v := range store.versions {
		if v.OwnerID == ownerID {
			list = append(list, v)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].VersionNumber > list[j].VersionNumber })
	return list, nil
}

func (store *memStore[C]) FindLatest(ctx context.Context, ownerID int64) (*version.Version[C], error) {
	list, _ := store.ListByOwner(ctx, ownerID)
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (store *memStore[C]) WorkingVersionID(_ context.Context, ownerID int64) (*int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	working, ok := store.owners[ownerID]
	if !ok {
		return nil, apperr.NotFound("Section")
	}
	return working, nil
}

func (store *memStore[C]) SetWorkingVersion(_ context.Context, ownerID, versionID int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.owners[ownerID]; !ok {
		return apperr.NotFound("Section")
	}
	store.owners[ownerID] = &versionID
	return nil
}

func (store *memStore[C]) FindWorking(_ context.Context, ownerID int64) (*version.Version[C], error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	working := store.owners[ownerID]
	if working == nil {
		return nil, nil
	}
	return store.versions[*working], nil
}

func (store *memStore[C]) FindWorkingMany(ctx context.Context, ownerIDs []int64) (map[int64]*version.Version[C], error) {
	result := make(map[int64]*version.Version[C])
	for _, id := range ownerIDs {
		if v, _ := store.FindWorking(ctx, id); v != nil {
			result[id] = v
		}
	}
	return result, nil
}

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubStatus reports the configured entities as PUBLISHED.
type stubStatus map[int64]bool

func (status stubStatus) IsPublished(_ context.Context, _ content.EntityType, id int64) (bool, error) {
	return status[id], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSectionChain(store *memStore[version.Intro], status stubStatus) *version.Chain[version.Intro] {
	return version.NewChain(version.SectionLevel, version.Store[version.Intro](store), passthroughTx{}, status, nil, discardLogger())
}
