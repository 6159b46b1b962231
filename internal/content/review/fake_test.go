// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/review"
	"github.com/taibuivan/folio/internal/content/status"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/pagination"
)

type itemKey struct {
	t  review.Type
	id int64
}

type memStore struct {
	items   map[itemKey]*review.Item
	reviews map[int64]*review.Review
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{items: make(map[itemKey]*review.Item), reviews: make(map[int64]*review.Review)}
}

func (store *memStore) EnsureItem(_ context.Context, t review.Type, referenceID int64) (*review.Item, error) {
	if item, ok := store.items[itemKey{t, referenceID}]; ok {
		return item, nil
	}
	store.nextID++
	item := &review.Item{ID: store.nextID, Type: t, ReferenceID: referenceID, CreatedAt: time.Now()}
	store.items[itemKey{t, referenceID}] = item
	return item, nil
}

func (store *memStore) FindItem(_ context.Context, t review.Type, referenceID int64) (*review.Item, error) {
	return store.items[itemKey{t, referenceID}], nil
}

func (store *memStore) Insert(_ context.Context, r *review.Review) error {
	store.nextID++
	r.ID = store.nextID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	copied := *r
	store.reviews[r.ID] = &copied
	return nil
}

func (store *memStore) FindByID(_ context.Context, id int64) (*review.Review, error) {
	r, ok := store.reviews[id]
	if !ok {
		return nil, apperr.NotFound("Review")
	}
	copied := *r
	return &copied, nil
}

func (store *memStore) Resolve(_ context.Context, id int64, to review.State, reviewedBy int64, comment *string) (bool, error) {
	r, ok := store.reviews[id]
	if !ok || r.Status != review.StateSubmitted {
		return false, nil
	}
	now := time.Now()
	r.Status = to
	r.ReviewedBy = &reviewedBy
	r.ReviewedAt = &now
	r.UpdatedAt = now
	if comment != nil {
		r.Comment = comment
	}
	return true, nil
}

func (store *memStore) sorted(keep func(*review.Review) bool) []*review.Review {
	list := make([]*review.Review, 0)
	for _, r := range store.reviews {
		if keep(r) {
			copied := *r
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list
}

func (store *memStore) ListByStatus(_ context.Context, state review.State, page pagination.Params) ([]*review.Review, int, error) {
	list := store.sorted(func(r *review.Review) bool { return r.Status == state })
	total := len(list)
	start := min(page.Offset(), total)
	end := min(start+page.Limit, total)
	return list[start:end], total, nil
}

func (store *memStore) ListByItem(_ context.Context, itemID int64) ([]*review.Review, error) {
	return store.sorted(func(r *review.Review) bool { return r.ReviewableItemID == itemID }), nil
}

// chainOf treats the listed version ids as members of the owner's chain.
type chainOf map[int64][]int64

func (chain chainOf) Owns(_ context.Context, ownerID, versionID int64) (bool, error) {
	for _, id := range chain[ownerID] {
		if id == versionID {
			return true, nil
		}
	}
	return false, nil
}

type gateCall struct {
	entityType content.EntityType
	id         int64
	status     status.Status
	userID     int64
}

type fakeGate struct {
	calls []gateCall
}

func (gate *fakeGate) Set(_ context.Context, entityType content.EntityType, id int64, s status.Status, userID int64) (*status.ContentStatus, error) {
	gate.calls = append(gate.calls, gateCall{entityType, id, s, userID})
	return &status.ContentStatus{EntityType: entityType, EntityID: id, Status: s, UserID: &userID, Persisted: true}, nil
}

type publishEvent struct {
	entityType content.EntityType
	id         int64
}

type recordingListener struct {
	events []publishEvent
}

func (listener *recordingListener) ContentPublished(_ context.Context, entityType content.EntityType, id int64) {
	listener.events = append(listener.events, publishEvent{entityType, id})
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	workflow *review.Workflow
	store    *memStore
	gate     *fakeGate
	listener *recordingListener
}

// newFixture wires a workflow where section 5 owns versions 50 and 51 and
// section 6 owns version 60.
func newFixture() *fixture {
	f := &fixture{store: newMemStore(), gate: &fakeGate{}, listener: &recordingListener{}}
	sections := chainOf{5: {50, 51}, 6: {60}}
	verifiers := map[review.Type]review.ChainVerifier{
		review.TypeSection:   sections,
		review.TypeParagraph: chainOf{},
		review.TypeChapter:   chainOf{},
		review.TypeBook:      chainOf{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.workflow = review.NewWorkflow(f.store, passthroughTx{}, verifiers, f.gate, f.listener, logger)
	return f
}
