// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

const resourceComment = "Review comment"

// PostgresStore implements [Store].
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new comment store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var commentColumns = schema.List(schema.ContentReviewComment.Columns()...)

func scanComment(row pgx.Row) (*Comment, error) {
	c := &Comment{}
	if err := row.Scan(
		&c.ID, &c.ReviewID, &c.ReviewedVersionID, &c.FieldName, &c.CommentText,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresStore) Insert(context context.Context, comment *Comment) error {
	c := schema.ContentReviewComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s
	`,
		c.Table, c.ReviewID, c.ReviewedVersionID, c.FieldName, c.CommentText, c.CreatedBy,
		c.ID, c.CreatedAt, c.UpdatedAt,
	)

	err := postgres.Conn(context, repository.pool).QueryRow(context, query,
		comment.ReviewID, comment.ReviewedVersionID, comment.FieldName, comment.CommentText, comment.CreatedBy,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	return dberr.Wrap(err, resourceComment)
}

func (repository *PostgresStore) FindByID(context context.Context, id int64) (*Comment, error) {
	c := schema.ContentReviewComment
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, commentColumns, c.Table, c.ID)

	comment, err := scanComment(postgres.Conn(context, repository.pool).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment)
	}
	return comment, nil
}

func (repository *PostgresStore) ListByReview(context context.Context, reviewID int64) ([]*Comment, error) {
	c := schema.ContentReviewComment
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		commentColumns, c.Table, c.ReviewID, c.CreatedAt, c.ID)

	rows, err := postgres.Conn(context, repository.pool).Query(context, query, reviewID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment)
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceComment)
		}
		comments = append(comments, comment)
	}
	return comments, dberr.Wrap(rows.Err(), resourceComment)
}

func (repository *PostgresStore) UpdateText(context context.Context, id int64, text string) (*Comment, error) {
	c := schema.ContentReviewComment
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1 RETURNING %s`,
		c.Table, c.CommentText, c.UpdatedAt, c.ID, commentColumns)

	comment, err := scanComment(postgres.Conn(context, repository.pool).QueryRow(context, query, id, text))
	if err != nil {
		return nil, dberr.Wrap(err, resourceComment)
	}
	return comment, nil
}

func (repository *PostgresStore) Delete(context context.Context, id int64) error {
	c := schema.ContentReviewComment
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.ID)

	tag, err := postgres.Conn(context, repository.pool).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceComment)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceComment)
	}
	return nil
}
