// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package version

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/internal/platform/tracing"
	"github.com/taibuivan/folio/internal/platform/validate"
)

// numberRetries is how often a version-number collision is retried before
// it surfaces as CONFLICT.
const numberRetries = 1

var tracer = otel.Tracer("github.com/taibuivan/folio/internal/content/version")

// StatusReader answers whether an entity is currently PUBLISHED.
type StatusReader interface {
	IsPublished(ctx context.Context, entityType content.EntityType, entityID int64) (bool, error)
}

// Chain manages the version chain and working pointer of one level.
type Chain[C Content[C]] struct {
	level  Level[C]
	store  Store[C]
	tx     postgres.Transactor
	status  StatusReader
	changes content.ChangeListener
	logger  *slog.Logger
}

// NewChain constructs a chain for level. changes is told after every commit
// that moves the working pointer; it may be nil.
func NewChain[C Content[C]](level Level[C], store Store[C], tx postgres.Transactor, status StatusReader, changes content.ChangeListener, logger *slog.Logger) *Chain[C] {
	if changes == nil {
		changes = content.ChangeListeners(nil)
	}
	return &Chain[C]{
		level:   level,
		store:   store,
		tx:      tx,
		status:  status,
		changes: changes,
		logger:  logger.With(slog.String("level", string(level.Entity))),
	}
}

func (chain *Chain[C]) repointed(ctx context.Context, ownerID int64) {
	chain.changes.ContentChanged(ctx, content.Change{
		Kind:       content.ChangeVersioned,
		EntityType: chain.level.Entity,
		IDs:        []int64{ownerID},
	})
}

// Entity returns the level this chain serves.
func (chain *Chain[C]) Entity() content.EntityType {
	return chain.level.Entity
}

func (chain *Chain[C]) span(ctx context.Context, operation string, ownerID int64) (context.Context, trace.Span) {
	return tracer.Start(ctx, "version."+operation, trace.WithAttributes(
		attribute.String("folio.entity_type", string(chain.level.Entity)),
		attribute.Int64("folio.owner_id", ownerID),
	))
}

// # Write Operations

/*
Create appends a new version to the owner's chain and points the owner at it.

Parameters:
  - ownerID: int64
  - input: C (bilingual content; a blank title takes the other locale's)
  - authorID: int64

Returns:
  - *Version[C]: The stored version
  - error: VALIDATION_ERROR, NOT_FOUND (owner), CONFLICT (repeated number collision)
*/
func (chain *Chain[C]) Create(ctx context.Context, ownerID int64, input C, authorID int64) (created *Version[C], err error) {
	ctx, span := chain.span(ctx, "Create", ownerID)
	defer func() { tracing.End(span, err) }()

	// 1. Validate
	v := &validate.Validator{}
	v.RequiredID("createdBy", authorID)
	input.Validate(v)
	if err := v.Err(); err != nil {
		return nil, err
	}

	normalized := input.Normalized()

	// 2. Version row and pointer move together
	err = chain.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := chain.store.WorkingVersionID(ctx, ownerID); err != nil {
			return err
		}

		inserted, err := chain.insertNext(ctx, ownerID, normalized, authorID)
		if err != nil {
			return err
		}

		if err := chain.store.SetWorkingVersion(ctx, ownerID, inserted.ID); err != nil {
			return err
		}

		created = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}

	chain.logger.InfoContext(ctx, "version_created",
		slog.Int64("owner_id", ownerID),
		slog.Int64("version_id", created.ID),
		slog.Int("version_number", created.VersionNumber),
		slog.Int64("created_by", authorID),
	)

	chain.repointed(ctx, ownerID)
	return created, nil
}

// insertNext reads max+1 and inserts inside a savepoint, retrying once when a
// concurrent writer took the number.
func (chain *Chain[C]) insertNext(ctx context.Context, ownerID int64, c C, authorID int64) (*Version[C], error) {
	for attempt := 0; ; attempt++ {
		candidate := &Version[C]{OwnerID: ownerID, Content: c, CreatedBy: authorID}

		err := chain.tx.WithinTx(ctx, func(ctx context.Context) error {
			next, err := chain.store.NextNumber(ctx, ownerID)
			if err != nil {
				return err
			}
			candidate.VersionNumber = next
			return chain.store.Insert(ctx, candidate)
		})
		if err == nil {
			return candidate, nil
		}

		if !errors.Is(err, ErrNumberTaken) {
			return nil, err
		}

		if attempt >= numberRetries {
			return nil, apperr.Conflict(fmt.Sprintf("%s was edited concurrently, please retry", chain.level.Entity.Label())).WithCause(err)
		}

		chain.logger.WarnContext(ctx, "version_number_collision",
			slog.Int64("owner_id", ownerID),
			slog.Int("version_number", candidate.VersionNumber),
		)
	}
}

/*
Repoint moves the owner's working pointer to an existing version of its own
chain (restoring an earlier version).

Returns:
  - *Version[C]: The new working version
  - error: NOT_FOUND (owner or version), INVALID_STATE (version of another owner)
*/
func (chain *Chain[C]) Repoint(ctx context.Context, ownerID, versionID int64) (target *Version[C], err error) {
	ctx, span := chain.span(ctx, "Repoint", ownerID)
	defer func() { tracing.End(span, err) }()

	if err := (&validate.Validator{}).RequiredID("versionId", versionID).Err(); err != nil {
		return nil, err
	}

	err = chain.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := chain.store.WorkingVersionID(ctx, ownerID); err != nil {
			return err
		}

		found, err := chain.store.FindByID(ctx, versionID)
		if err != nil {
			return err
		}

		if found.OwnerID != ownerID {
			return apperr.InvalidState(fmt.Sprintf("Version %d does not belong to %s %d",
				versionID, chain.level.Entity, ownerID))
		}

		if err := chain.store.SetWorkingVersion(ctx, ownerID, versionID); err != nil {
			return err
		}

		target = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	chain.logger.InfoContext(ctx, "working_version_repointed",
		slog.Int64("owner_id", ownerID),
		slog.Int64("version_id", versionID),
		slog.Int("version_number", target.VersionNumber),
	)

	chain.repointed(ctx, ownerID)
	return target, nil
}

// # Read Operations

// Current returns the working version, or nil when there is none.
func (chain *Chain[C]) Current(ctx context.Context, ownerID int64) (*Version[C], error) {
	return chain.store.FindWorking(ctx, ownerID)
}

// CurrentMany resolves the working versions of several owners.
func (chain *Chain[C]) CurrentMany(ctx context.Context, ownerIDs []int64) (map[int64]*Version[C], error) {
	return chain.store.FindWorkingMany(ctx, ownerIDs)
}

// Published returns the working version when the owner is PUBLISHED, nil otherwise.
//
// There is no separate approved-version pointer: a published entity shows its
// current working version.
func (chain *Chain[C]) Published(ctx context.Context, ownerID int64) (*Version[C], error) {
	published, err := chain.status.IsPublished(ctx, chain.level.Entity, ownerID)
	if err != nil || !published {
		return nil, err
	}
	return chain.store.FindWorking(ctx, ownerID)
}

// History returns every version of the owner, highest number first.
func (chain *Chain[C]) History(ctx context.Context, ownerID int64) ([]*Version[C], error) {
	return chain.store.ListByOwner(ctx, ownerID)
}

// Get returns a version by id.
func (chain *Chain[C]) Get(ctx context.Context, versionID int64) (*Version[C], error) {
	return chain.store.FindByID(ctx, versionID)
}

// Latest returns the highest-numbered version, or nil.
func (chain *Chain[C]) Latest(ctx context.Context, ownerID int64) (*Version[C], error) {
	return chain.store.FindLatest(ctx, ownerID)
}

// Owns reports whether versionID belongs to the owner's chain.
func (chain *Chain[C]) Owns(ctx context.Context, ownerID, versionID int64) (bool, error) {
	found, err := chain.store.FindByID(ctx, versionID)
	if apperr.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return found.OwnerID == ownerID, nil
}
