// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package status

import (
	"context"
	"log/slog"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// Gate is the publish status service.
type Gate struct {
	store    Store
	entities content.EntityChecker
	listener content.PublishListener
	logger   *slog.Logger
}

// NewGate constructs a new [Gate]. listener may be nil.
func NewGate(store Store, entities content.EntityChecker, listener content.PublishListener, logger *slog.Logger) *Gate {
	if listener == nil {
		listener = content.Listeners(nil)
	}
	return &Gate{store: store, entities: entities, listener: listener, logger: logger}
}

func validateKey(v *validate.Validator, entityType content.EntityType, entityID int64) *validate.Validator {
	return v.Custom("entityType", !entityType.Valid(), "Must be one of: book, chapter, section, paragraph").
		RequiredID("entityId", entityID)
}

/*
Get returns the status of an entity. It never fails for a missing row: an
entity that was never published is reported as DRAFT.
*/
func (gate *Gate) Get(ctx context.Context, entityType content.EntityType, entityID int64) (*ContentStatus, error) {
	if err := validateKey(&validate.Validator{}, entityType, entityID).Err(); err != nil {
		return nil, err
	}

	found, err := gate.store.Find(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return defaultStatus(entityType, entityID), nil
	}
	return found, nil
}

// IsPublished reports whether the entity is PUBLISHED.
func (gate *Gate) IsPublished(ctx context.Context, entityType content.EntityType, entityID int64) (bool, error) {
	found, err := gate.Get(ctx, entityType, entityID)
	if err != nil {
		return false, err
	}
	return found.IsPublished(), nil
}

// PublishedIDs returns which of ids are PUBLISHED.
func (gate *Gate) PublishedIDs(ctx context.Context, entityType content.EntityType, ids []int64) (map[int64]bool, error) {
	v := (&validate.Validator{}).Custom("entityType", !entityType.Valid(), "Must be one of: book, chapter, section, paragraph")
	if err := v.Err(); err != nil {
		return nil, err
	}
	return gate.store.PublishedIDs(ctx, entityType, ids)
}

/*
Set upserts the status row. It joins the caller's transaction when there is one.

Parameters:
  - entityType, entityID: the gate key
  - status: DRAFT or PUBLISHED
  - userID: who made the change

Returns:
  - *ContentStatus: The stored row
  - error: VALIDATION_ERROR on an unknown type or status
*/
func (gate *Gate) Set(ctx context.Context, entityType content.EntityType, entityID int64, status Status, userID int64) (*ContentStatus, error) {
	v := validateKey(&validate.Validator{}, entityType, entityID)
	v.Custom("status", !status.Valid(), "Must be one of: DRAFT, PUBLISHED").
		RequiredID("userId", userID)
	if err := v.Err(); err != nil {
		return nil, err
	}

	stored, err := gate.store.Upsert(ctx, entityType, entityID, status, userID)
	if err != nil {
		return nil, err
	}

	gate.logger.InfoContext(ctx, "content_status_set",
		slog.String("entity_type", string(entityType)),
		slog.Int64("entity_id", entityID),
		slog.String("status", string(status)),
		slog.Int64("user_id", userID),
	)

	return stored, nil
}

/*
Publish marks an existing entity PUBLISHED outside the review workflow and
notifies publish listeners.

Returns:
  - error: NOT_FOUND when the entity does not exist
*/
func (gate *Gate) Publish(ctx context.Context, entityType content.EntityType, entityID, userID int64) (*ContentStatus, error) {
	if err := validateKey(&validate.Validator{}, entityType, entityID).Err(); err != nil {
		return nil, err
	}

	exists, err := gate.entities.Exists(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound(entityType.Label())
	}

	stored, err := gate.Set(ctx, entityType, entityID, Published, userID)
	if err != nil {
		return nil, err
	}

	gate.listener.ContentPublished(ctx, entityType, entityID)
	return stored, nil
}
