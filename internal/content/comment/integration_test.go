// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package comment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/content/comment"
	"github.com/taibuivan/folio/internal/content/review"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/internal/platform/testutil"
)

/*
TestPostgres_Thread lists comments oldest first, with id breaking ties.
*/
func TestPostgres_Thread(t *testing.T) {
	pool := testutil.Postgres(t)
	ctx := context.Background()
	tx := postgres.NewTxManager(pool)

	itemID := testutil.Exec(t, pool, `INSERT INTO content.reviewable_item (type, reference_id) VALUES ('SECTION', 1) RETURNING id`)
	reviewID := testutil.Exec(t, pool, `
		INSERT INTO content.review (reviewable_item_id, reviewed_version_id, status, submitted_by)
		VALUES ($1, 40, 'SUBMITTED', 7) RETURNING id`, itemID)

	workflow := review.NewWorkflow(review.NewPostgresStore(pool), tx, nil, nil, nil, testutil.Logger())
	thread := comment.NewThread(comment.NewPostgresStore(pool), workflow, testutil.Logger())

	first, err := thread.Add(ctx, reviewID, 0, "titleEn", "Typo", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(40), first.ReviewedVersionID)

	// One transaction shares now(), so both rows carry the same created_at.
	var second, third *comment.Comment
	require.NoError(t, tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if second, err = thread.Add(ctx, reviewID, 40, "introEn", "Too long", 9); err != nil {
			return err
		}
		third, err = thread.Add(ctx, reviewID, 0, "introNl", "Te lang", 9)
		return err
	}))
	assert.Equal(t, second.CreatedAt, third.CreatedAt)

	// Backdating the last row moves it to the front.
	_, err = pool.Exec(ctx, `UPDATE content.review_comment SET created_at = created_at - interval '1 hour' WHERE id = $1`, third.ID)
	require.NoError(t, err)

	listed, err := thread.List(ctx, reviewID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []int64{third.ID, first.ID, second.ID}, []int64{listed[0].ID, listed[1].ID, listed[2].ID})

	_, err = thread.List(ctx, reviewID+1)
	assert.True(t, apperr.IsNotFound(err))

	_, err = thread.Add(ctx, reviewID, 41, "titleEn", "Wrong version", 9)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}
