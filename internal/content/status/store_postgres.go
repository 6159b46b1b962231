// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package status

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

const resource = "Content status"

// PostgresStore implements [Store].
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new status store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func scanStatus(row pgx.Row) (*ContentStatus, error) {
	s := &ContentStatus{Persisted: true}
	if err := row.Scan(&s.ID, &s.EntityType, &s.EntityID, &s.Status, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (repository *PostgresStore) Find(context context.Context, entityType content.EntityType, entityID int64) (*ContentStatus, error) {
	t := schema.ContentStatus
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		schema.List(t.Columns()...), t.Table, t.EntityType, t.EntityID)

	s, err := scanStatus(postgres.Conn(context, repository.pool).QueryRow(context, query, entityType, entityID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return s, nil
}

func (repository *PostgresStore) Upsert(context context.Context, entityType content.EntityType, entityID int64, status Status, userID int64) (*ContentStatus, error) {
	t := schema.ContentStatus
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT %s DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = now()
		RETURNING %s
	`,
		t.Table, t.EntityType, t.EntityID, t.Status, t.UserID,
		t.EntityConstraint,
		t.Status, t.Status, t.UserID, t.UserID, t.UpdatedAt,
		schema.List(t.Columns()...),
	)

	s, err := scanStatus(postgres.Conn(context, repository.pool).QueryRow(context, query, entityType, entityID, status, userID))
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	return s, nil
}

func (repository *PostgresStore) PublishedIDs(context context.Context, entityType content.EntityType, ids []int64) (map[int64]bool, error) {
	published := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return published, nil
	}

	t := schema.ContentStatus
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = ANY($2) AND %s = $3`,
		t.EntityID, t.Table, t.EntityType, t.EntityID, t.Status)

	rows, err := postgres.Conn(context, repository.pool).Query(context, query, entityType, ids, Published)
	if err != nil {
		return nil, dberr.Wrap(err, resource)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, resource)
		}
		published[id] = true
	}
	return published, dberr.Wrap(rows.Err(), resource)
}
