// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/status"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/internal/platform/tracing"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pagination"
)

const maxCommentLength = 5000

var tracer = otel.Tracer("github.com/taibuivan/folio/internal/content/review")

// ChainVerifier checks that a version belongs to an owner's chain.
// Satisfied by [*version.Chain].
type ChainVerifier interface {
	Owns(ctx context.Context, ownerID, versionID int64) (bool, error)
}

// StatusSetter is the part of the status gate approval drives.
type StatusSetter interface {
	Set(ctx context.Context, entityType content.EntityType, entityID int64, s status.Status, userID int64) (*status.ContentStatus, error)
}

// Workflow drives review rounds.
type Workflow struct {
	store     Store
	tx        postgres.Transactor
	verifiers map[Type]ChainVerifier
	gate      StatusSetter
	listener  content.PublishListener
	logger    *slog.Logger
}

// NewWorkflow constructs a new [Workflow].
//
// verifiers maps every reviewable type to the version chain of its level.
// listener may be nil.
func NewWorkflow(store Store, tx postgres.Transactor, verifiers map[Type]ChainVerifier, gate StatusSetter, listener content.PublishListener, logger *slog.Logger) *Workflow {
	if listener == nil {
		listener = content.Listeners(nil)
	}
	return &Workflow{
		store:     store,
		tx:        tx,
		verifiers: verifiers,
		gate:      gate,
		listener:  listener,
		logger:    logger,
	}
}

func span(ctx context.Context, operation string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "review."+operation, trace.WithAttributes(attributes...))
}

// # Commands

/*
Submit opens a review round for one version of a content unit.

Parameters:
  - t, referenceID: the content unit
  - versionID: the version under review; must belong to the unit's chain
  - submittedBy: the submitting user
  - comment: optional note for the reviewer

Returns:
  - *Review: The SUBMITTED review
  - error: VALIDATION_ERROR (including a foreign version on field versionId)
*/
func (workflow *Workflow) Submit(ctx context.Context, t Type, referenceID, versionID, submittedBy int64, comment *string) (submitted *Review, err error) {
	ctx, sp := span(ctx, "Submit",
		attribute.String("folio.review_type", string(t)),
		attribute.Int64("folio.reference_id", referenceID),
	)
	defer func() { tracing.End(sp, err) }()

	// 1. Validate input
	verifier, known := workflow.verifiers[t]

	v := &validate.Validator{}
	v.Custom("type", !known, "Must be one of: SECTION, PARAGRAPH, CHAPTER, BOOK").
		RequiredID("referenceId", referenceID).
		RequiredID("versionId", versionID).
		RequiredID("submittedBy", submittedBy)
	if comment != nil {
		v.MaxLen("comment", *comment, maxCommentLength)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	comment = trimmed(comment)

	// 2. Item lookup, chain check and insert share one transaction
	err = workflow.tx.WithinTx(ctx, func(ctx context.Context) error {
		owns, err := verifier.Owns(ctx, referenceID, versionID)
		if err != nil {
			return err
		}
		if !owns {
			return validate.FieldError("versionId",
				fmt.Sprintf("Version %d does not belong to %s %d", versionID, t.Entity(), referenceID))
		}

		item, err := workflow.store.EnsureItem(ctx, t, referenceID)
		if err != nil {
			return err
		}

		candidate := &Review{
			ReviewableItemID:  item.ID,
			Type:              item.Type,
			ReferenceID:       item.ReferenceID,
			ReviewedVersionID: versionID,
			Status:            StateSubmitted,
			Comment:           comment,
			SubmittedBy:       submittedBy,
		}
		if err := workflow.store.Insert(ctx, candidate); err != nil {
			return err
		}

		submitted = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	workflow.logger.InfoContext(ctx, "review_submitted",
		slog.Int64("review_id", submitted.ID),
		slog.String("type", string(t)),
		slog.Int64("reference_id", referenceID),
		slog.Int64("version_id", versionID),
		slog.Int64("submitted_by", submittedBy),
	)

	return submitted, nil
}

/*
Approve resolves a SUBMITTED review as APPROVED and publishes the unit in the
same transaction. Publish listeners run after commit.

Returns:
  - error: NOT_FOUND, INVALID_STATE when the review is already resolved
*/
func (workflow *Workflow) Approve(ctx context.Context, reviewID, reviewedBy int64, comment *string) (approved *Review, err error) {
	ctx, sp := span(ctx, "Approve", attribute.Int64("folio.review_id", reviewID))
	defer func() { tracing.End(sp, err) }()

	v := &validate.Validator{}
	v.RequiredID("reviewedBy", reviewedBy)
	if comment != nil {
		v.MaxLen("comment", *comment, maxCommentLength)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	err = workflow.tx.WithinTx(ctx, func(ctx context.Context) error {
		resolved, err := workflow.resolve(ctx, reviewID, StateApproved, reviewedBy, trimmed(comment))
		if err != nil {
			return err
		}

		if _, err := workflow.gate.Set(ctx, resolved.Type.Entity(), resolved.ReferenceID, status.Published, reviewedBy); err != nil {
			return err
		}

		approved = resolved
		return nil
	})
	if err != nil {
		return nil, err
	}

	workflow.logger.InfoContext(ctx, "review_approved",
		slog.Int64("review_id", reviewID),
		slog.String("type", string(approved.Type)),
		slog.Int64("reference_id", approved.ReferenceID),
		slog.Int64("reviewed_by", reviewedBy),
	)

	workflow.listener.ContentPublished(ctx, approved.Type.Entity(), approved.ReferenceID)

	return approved, nil
}

/*
Reject resolves a SUBMITTED review as REJECTED. A rejection must carry a
reason. The status gate is not touched.

Returns:
  - error: VALIDATION_ERROR (blank comment), NOT_FOUND, INVALID_STATE
*/
func (workflow *Workflow) Reject(ctx context.Context, reviewID, reviewedBy int64, comment *string) (rejected *Review, err error) {
	ctx, sp := span(ctx, "Reject", attribute.Int64("folio.review_id", reviewID))
	defer func() { tracing.End(sp, err) }()

	v := &validate.Validator{}
	v.RequiredID("reviewedBy", reviewedBy)
	if comment == nil || validate.IsBlank(*comment) {
		v.Custom("comment", true, "A rejection needs a reason")
	} else {
		v.MaxLen("comment", *comment, maxCommentLength)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	err = workflow.tx.WithinTx(ctx, func(ctx context.Context) error {
		resolved, err := workflow.resolve(ctx, reviewID, StateRejected, reviewedBy, trimmed(comment))
		rejected = resolved
		return err
	})
	if err != nil {
		return nil, err
	}

	workflow.logger.InfoContext(ctx, "review_rejected",
		slog.Int64("review_id", reviewID),
		slog.String("type", string(rejected.Type)),
		slog.Int64("reference_id", rejected.ReferenceID),
		slog.Int64("reviewed_by", reviewedBy),
	)

	return rejected, nil
}

// resolve performs the guarded SUBMITTED → terminal transition.
func (workflow *Workflow) resolve(ctx context.Context, reviewID int64, to State, reviewedBy int64, comment *string) (*Review, error) {
	changed, err := workflow.store.Resolve(ctx, reviewID, to, reviewedBy, comment)
	if err != nil {
		return nil, err
	}

	current, err := workflow.store.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if !changed {
		return nil, apperr.InvalidState(fmt.Sprintf("Review %d is already %s", reviewID, current.Status))
	}
	return current, nil
}

// # Queries

// Get returns a review by id.
func (workflow *Workflow) Get(ctx context.Context, reviewID int64) (*Review, error) {
	return workflow.store.FindByID(ctx, reviewID)
}

// ListByStatus returns one page of the reviewer queue for a state, newest first.
func (workflow *Workflow) ListByStatus(ctx context.Context, state State, page pagination.Params) ([]*Review, int, error) {
	return workflow.store.ListByStatus(ctx, state, page)
}

// ListByItem returns every review round of a content unit, newest first.
// A unit that was never submitted has no rounds.
func (workflow *Workflow) ListByItem(ctx context.Context, t Type, referenceID int64) ([]*Review, error) {
	if _, known := workflow.verifiers[t]; !known {
		return nil, validate.FieldError("type", "Must be one of: SECTION, PARAGRAPH, CHAPTER, BOOK")
	}

	item, err := workflow.store.FindItem(ctx, t, referenceID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return []*Review{}, nil
	}
	return workflow.store.ListByItem(ctx, item.ID)
}

func trimmed(comment *string) *string {
	if comment == nil {
		return nil
	}
	value := strings.TrimSpace(*comment)
	return &value
}
