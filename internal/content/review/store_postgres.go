// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/pkg/pagination"
)

const (
	resourceReview = "Review"
	resourceItem   = "Reviewable item"
)

// PostgresStore implements [Store].
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new review store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// reviewSelect reads reviews joined with their item.
var reviewSelect = func() string {
	r, i := schema.ContentReview, schema.ContentReviewableItem
	return fmt.Sprintf(`
		SELECT r.%s, r.%s, i.%s, i.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s
		FROM %s r
		JOIN %s i ON i.%s = r.%s
	`,
		r.ID, r.ReviewableItemID, i.Type, i.ReferenceID, r.ReviewedVersionID, r.Status,
		r.Comment, r.SubmittedBy, r.ReviewedBy, r.ReviewedAt, r.CreatedAt, r.UpdatedAt,
		r.Table,
		i.Table, i.ID, r.ReviewableItemID,
	)
}()

// newestFirst orders review lists; id breaks ties inside one transaction.
var newestFirst = fmt.Sprintf(`ORDER BY r.%s DESC, r.%s DESC`, schema.ContentReview.CreatedAt, schema.ContentReview.ID)

func scanReview(row pgx.Row) (*Review, error) {
	r := &Review{}
	if err := row.Scan(
		&r.ID, &r.ReviewableItemID, &r.Type, &r.ReferenceID, &r.ReviewedVersionID, &r.Status,
		&r.Comment, &r.SubmittedBy, &r.ReviewedBy, &r.ReviewedAt, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return r, nil
}

func (repository *PostgresStore) EnsureItem(context context.Context, t Type, referenceID int64) (*Item, error) {
	i := schema.ContentReviewableItem
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s, %s, %s, %s
	`,
		i.Table, i.Type, i.ReferenceID,
		i.Type, i.ReferenceID, i.Type, i.Type,
		i.ID, i.Type, i.ReferenceID, i.CreatedAt,
	)

	item := &Item{}
	err := postgres.Conn(context, repository.pool).QueryRow(context, query, t, referenceID).
		Scan(&item.ID, &item.Type, &item.ReferenceID, &item.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, resourceItem)
	}
	return item, nil
}

func (repository *PostgresStore) FindItem(context context.Context, t Type, referenceID int64) (*Item, error) {
	i := schema.ContentReviewableItem
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1 AND %s = $2`,
		i.ID, i.Type, i.ReferenceID, i.CreatedAt, i.Table, i.Type, i.ReferenceID)

	item := &Item{}
	err := postgres.Conn(context, repository.pool).QueryRow(context, query, t, referenceID).
		Scan(&item.ID, &item.Type, &item.ReferenceID, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, resourceItem)
	}
	return item, nil
}

func (repository *PostgresStore) Insert(context context.Context, review *Review) error {
	r := schema.ContentReview
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s
	`,
		r.Table, r.ReviewableItemID, r.ReviewedVersionID, r.Status, r.Comment, r.SubmittedBy,
		r.ID, r.CreatedAt, r.UpdatedAt,
	)

	err := postgres.Conn(context, repository.pool).QueryRow(context, query,
		review.ReviewableItemID, review.ReviewedVersionID, review.Status, review.Comment, review.SubmittedBy,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	return dberr.Wrap(err, resourceReview)
}

func (repository *PostgresStore) FindByID(context context.Context, id int64) (*Review, error) {
	query := reviewSelect + fmt.Sprintf(` WHERE r.%s = $1`, schema.ContentReview.ID)

	review, err := scanReview(postgres.Conn(context, repository.pool).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceReview)
	}
	return review, nil
}

func (repository *PostgresStore) Resolve(context context.Context, id int64, to State, reviewedBy int64, comment *string) (bool, error) {
	r := schema.ContentReview
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = now(), %s = now(), %s = COALESCE($4::text, %s)
		WHERE %s = $1 AND %s = '%s'
	`,
		r.Table,
		r.Status, r.ReviewedBy, r.ReviewedAt, r.UpdatedAt, r.Comment, r.Comment,
		r.ID, r.Status, StateSubmitted,
	)

	tag, err := postgres.Conn(context, repository.pool).Exec(context, query, id, to, reviewedBy, comment)
	if err != nil {
		return false, dberr.Wrap(err, resourceReview)
	}
	return tag.RowsAffected() == 1, nil
}

func (repository *PostgresStore) ListByStatus(context context.Context, state State, page pagination.Params) ([]*Review, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, schema.ContentReview.Table, schema.ContentReview.Status)

	var total int
	if err := postgres.Conn(context, repository.pool).QueryRow(context, countQuery, state).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceReview)
	}

	reviews, err := repository.list(context, reviewSelect+fmt.Sprintf(` WHERE r.%s = $1 %s LIMIT $2 OFFSET $3`,
		schema.ContentReview.Status, newestFirst), state, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (repository *PostgresStore) ListByItem(context context.Context, itemID int64) ([]*Review, error) {
	query := reviewSelect + fmt.Sprintf(` WHERE r.%s = $1 %s`, schema.ContentReview.ReviewableItemID, newestFirst)
	return repository.list(context, query, itemID)
}

func (repository *PostgresStore) list(context context.Context, query string, args ...any) ([]*Review, error) {
	rows, err := postgres.Conn(context, repository.pool).Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceReview)
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceReview)
		}
		reviews = append(reviews, review)
	}
	return reviews, dberr.Wrap(rows.Err(), resourceReview)
}
