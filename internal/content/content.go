// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content holds the vocabulary shared by the content subpackages.

The content tree has five levels: Category → Book → Chapter → Section →
Paragraph. The four lower levels are versioned; each owns an append-only chain
of immutable versions and a mutable working pointer into it.

Subpackages:

  - version: the generic version chain and working pointer.
  - status: the per-entity DRAFT/PUBLISHED gate.
  - review: the submit/approve/reject state machine.
  - comment: field-scoped review comments.
  - catalog: structural CRUD of the content tree.
  - projector: the reader-facing views built from the above.
  - search: the published-content search index.
*/
package content

import (
	"context"
	"log/slog"
)

// EntityType identifies a versioned content level in status and review rows.
type EntityType string

const (
	EntityBook      EntityType = "book"
	EntityChapter   EntityType = "chapter"
	EntitySection   EntityType = "section"
	EntityParagraph EntityType = "paragraph"
)

// EntityCategory names the unversioned top level in change events. It is not
// a [EntityType.Valid] status or review key.
const EntityCategory EntityType = "category"

// EntityTypes lists the versioned levels from top to bottom.
var EntityTypes = []EntityType{EntityBook, EntityChapter, EntitySection, EntityParagraph}

// Valid reports whether t is a known level.
func (t EntityType) Valid() bool {
	switch t {
	case EntityBook, EntityChapter, EntitySection, EntityParagraph:
		return true
	}
	return false
}

// Label returns the human-readable resource name used in error messages.
func (t EntityType) Label() string {
	switch t {
	case EntityBook:
		return "Book"
	case EntityChapter:
		return "Chapter"
	case EntitySection:
		return "Section"
	case EntityParagraph:
		return "Paragraph"
	}
	return "Content"
}

// PublishListener is notified after an entity becomes PUBLISHED and the
// change has been committed.
type PublishListener interface {
	ContentPublished(ctx context.Context, entityType EntityType, entityID int64)
}

// PublishListenerFunc adapts a function to [PublishListener].
type PublishListenerFunc func(ctx context.Context, entityType EntityType, entityID int64)

func (fn PublishListenerFunc) ContentPublished(ctx context.Context, entityType EntityType, entityID int64) {
	fn(ctx, entityType, entityID)
}

// Listeners fans a publish event out to several listeners.
type Listeners []PublishListener

func (listeners Listeners) ContentPublished(ctx context.Context, entityType EntityType, entityID int64) {
	for _, listener := range listeners {
		listener.ContentPublished(ctx, entityType, entityID)
	}
}

// EntityChecker reports whether a live (not soft-deleted) entity exists.
type EntityChecker interface {
	Exists(ctx context.Context, entityType EntityType, id int64) (bool, error)
}

// LogPublished returns a listener that records publish events.
func LogPublished(logger *slog.Logger) PublishListener {
	return PublishListenerFunc(func(ctx context.Context, entityType EntityType, entityID int64) {
		logger.InfoContext(ctx, "content_published",
			slog.String("entity_type", string(entityType)),
			slog.Int64("entity_id", entityID),
		)
	})
}

// ChangeKind classifies a committed change to the content tree.
type ChangeKind string

const (
	// ChangeStructure covers structural rows that were created or updated.
	ChangeStructure ChangeKind = "structure"

	// ChangeVersioned means the working pointer moved (new or restored version).
	ChangeVersioned ChangeKind = "versioned"

	// ChangeDeleted means the entities were soft-deleted.
	ChangeDeleted ChangeKind = "deleted"
)

// Change reports committed changes to entities of one type. A cascading
// delete reports one Change per level.
type Change struct {
	Kind       ChangeKind
	EntityType EntityType
	IDs        []int64
}

// ChangeListener is notified after a change to the content tree has been
// committed.
type ChangeListener interface {
	ContentChanged(ctx context.Context, change Change)
}

// ChangeListenerFunc adapts a function to [ChangeListener].
type ChangeListenerFunc func(ctx context.Context, change Change)

func (fn ChangeListenerFunc) ContentChanged(ctx context.Context, change Change) {
	fn(ctx, change)
}

// ChangeListeners fans a change out to several listeners.
type ChangeListeners []ChangeListener

func (listeners ChangeListeners) ContentChanged(ctx context.Context, change Change) {
	if len(change.IDs) == 0 {
		return
	}
	for _, listener := range listeners {
		listener.ContentChanged(ctx, change)
	}
}
