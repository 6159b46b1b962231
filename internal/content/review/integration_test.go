// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package review_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/review"
	"github.com/taibuivan/folio/internal/content/status"
	"github.com/taibuivan/folio/internal/content/version"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/internal/platform/testutil"
	"github.com/taibuivan/folio/pkg/pointer"
)

// failingGate writes the status row and then fails, so the caller's
// transaction must roll both writes back.
type failingGate struct {
	gate *status.Gate
}

func (f failingGate) Set(ctx context.Context, entityType content.EntityType, entityID int64, s status.Status, userID int64) (*status.ContentStatus, error) {
	if _, err := f.gate.Set(ctx, entityType, entityID, s, userID); err != nil {
		return nil, err
	}
	return nil, errors.New("status listener unavailable")
}

// seedSection inserts category → book → chapter → section and returns the
// section id.
func seedSection(t *testing.T, pool *pgxpool.Pool, categoryNumber int) int64 {
	t.Helper()
	categoryID := testutil.Exec(t, pool, `INSERT INTO content.category (category_number) VALUES ($1) RETURNING id`, categoryNumber)
	bookID := testutil.Exec(t, pool, `INSERT INTO content.book (category_id, book_number) VALUES ($1, 1) RETURNING id`, categoryID)
	chapterID := testutil.Exec(t, pool, `INSERT INTO content.chapter (book_id, chapter_number) VALUES ($1, 1) RETURNING id`, bookID)
	return testutil.Exec(t, pool, `INSERT INTO content.section (chapter_id) VALUES ($1) RETURNING id`, chapterID)
}

/*
TestPostgres_Workflow approves and publishes in one transaction against a real
database.
*/
func TestPostgres_Workflow(t *testing.T) {
	pool := testutil.Postgres(t)
	ctx := context.Background()
	tx := postgres.NewTxManager(pool)

	gate := status.NewGate(status.NewPostgresStore(pool), nil, nil, testutil.Logger())
	sections := version.NewChain(version.SectionLevel, version.NewPostgresStore(pool, version.SectionLevel),
		tx, gate, nil, testutil.Logger())
	verifiers := map[review.Type]review.ChainVerifier{review.TypeSection: sections}
	store := review.NewPostgresStore(pool)

	newWorkflow := func(setter review.StatusSetter) *review.Workflow {
		return review.NewWorkflow(store, tx, verifiers, setter, nil, testutil.Logger())
	}

	submit := func(t *testing.T, workflow *review.Workflow, sectionID int64, comment *string) *review.Review {
		t.Helper()
		created, err := sections.Create(ctx, sectionID, version.Intro{TitleEn: "Patience", IntroEn: "On patience"}, 7)
		require.NoError(t, err)
		submitted, err := workflow.Submit(ctx, review.TypeSection, sectionID, created.ID, 7, comment)
		require.NoError(t, err)
		return submitted
	}

	t.Run("approve commits the status row", func(t *testing.T) {
		sectionID := seedSection(t, pool, 20)
		workflow := newWorkflow(gate)
		submitted := submit(t, workflow, sectionID, pointer.To("  please check  "))
		assert.Equal(t, "please check", *submitted.Comment)

		approved, err := workflow.Approve(ctx, submitted.ID, 9, nil)
		require.NoError(t, err)
		assert.Equal(t, review.StateApproved, approved.Status)
		assert.Equal(t, "please check", *approved.Comment, "an omitted comment keeps the submitter's")
		assert.Equal(t, int64(9), *approved.ReviewedBy)
		assert.NotNil(t, approved.ReviewedAt)

		current, err := gate.Get(ctx, content.EntitySection, sectionID)
		require.NoError(t, err)
		assert.True(t, current.Persisted)
		assert.Equal(t, status.Published, current.Status)
		assert.Equal(t, int64(9), *current.UserID)
	})

	t.Run("approve comment replaces the submitter's", func(t *testing.T) {
		sectionID := seedSection(t, pool, 21)
		workflow := newWorkflow(gate)
		submitted := submit(t, workflow, sectionID, pointer.To("first"))

		approved, err := workflow.Approve(ctx, submitted.ID, 9, pointer.To(" looks good "))
		require.NoError(t, err)
		assert.Equal(t, "looks good", *approved.Comment)
	})

	t.Run("failed status write rolls the approval back", func(t *testing.T) {
		sectionID := seedSection(t, pool, 22)
		submitted := submit(t, newWorkflow(gate), sectionID, nil)

		_, err := newWorkflow(failingGate{gate: gate}).Approve(ctx, submitted.ID, 9, nil)
		require.Error(t, err)

		stored, err := store.FindByID(ctx, submitted.ID)
		require.NoError(t, err)
		assert.Equal(t, review.StateSubmitted, stored.Status)
		assert.Nil(t, stored.ReviewedBy)
		assert.Nil(t, stored.ReviewedAt)

		current, err := gate.Get(ctx, content.EntitySection, sectionID)
		require.NoError(t, err)
		assert.False(t, current.Persisted, "no status row survives the rollback")
		assert.Equal(t, status.Draft, current.Status)

		approved, err := newWorkflow(gate).Approve(ctx, submitted.ID, 9, nil)
		require.NoError(t, err)
		assert.Equal(t, review.StateApproved, approved.Status)
	})

	t.Run("resolution needs a reviewer", func(t *testing.T) {
		sectionID := seedSection(t, pool, 23)
		submitted := submit(t, newWorkflow(gate), sectionID, nil)

		_, err := pool.Exec(ctx, `UPDATE content.review SET status = 'APPROVED' WHERE id = $1`, submitted.ID)
		var pgErr *pgconn.PgError
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, pgerrcode.CheckViolation, pgErr.Code)
		assert.Equal(t, "ck_review_resolution", pgErr.ConstraintName)

		_, err = pool.Exec(ctx, `UPDATE content.review SET reviewed_by = 9 WHERE id = $1`, submitted.ID)
		require.ErrorAs(t, err, &pgErr)
		assert.Equal(t, "ck_review_resolution", pgErr.ConstraintName)
	})
}
