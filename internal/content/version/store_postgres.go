// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package version

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/dberr"
	"github.com/taibuivan/folio/internal/platform/postgres"
)

// PostgresStore implements [Store] for one level.
type PostgresStore[C Content[C]] struct {
	pool  *pgxpool.Pool
	level Level[C]
}

// NewPostgresStore creates a store for the given level.
func NewPostgresStore[C Content[C]](pool *pgxpool.Pool, level Level[C]) *PostgresStore[C] {
	return &PostgresStore[C]{pool: pool, level: level}
}

func (repository *PostgresStore[C]) columns(alias string) string {
	t := repository.level.Version
	return schema.Qualified(alias, t.Columns()...)
}

func (repository *PostgresStore[C]) scan(row pgx.Row) (*Version[C], error) {
	var (
		v Version[C]
		f Fields
	)
	if err := row.Scan(&v.ID, &v.OwnerID, &v.VersionNumber,
		&f.TitleEn, &f.TitleNl, &f.TextEn, &f.TextNl,
		&v.CreatedBy, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.Content = repository.level.FromFields(f)
	return &v, nil
}

func (repository *PostgresStore[C]) NextNumber(context context.Context, ownerID int64) (int, error) {
	t := repository.level.Version
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1`,
		t.VersionNumber, t.Table, t.OwnerID)

	var next int
	if err := postgres.Conn(context, repository.pool).QueryRow(context, query, ownerID).Scan(&next); err != nil {
		return 0, dberr.Wrap(err, repository.level.Resource())
	}
	return next, nil
}

func (repository *PostgresStore[C]) Insert(context context.Context, v *Version[C]) error {
	t := repository.level.Version
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s
	`,
		t.Table, schema.List(t.OwnerID, t.VersionNumber, t.TitleEn, t.TitleNl, t.TextEn, t.TextNl, t.CreatedBy),
		t.ID, t.CreatedAt,
	)

	f := v.Content.Fields()
	err := postgres.Conn(context, repository.pool).QueryRow(context, query,
		v.OwnerID, v.VersionNumber, f.TitleEn, f.TitleNl, f.TextEn, f.TextNl, v.CreatedBy,
	).Scan(&v.ID, &v.CreatedAt)

	if dberr.IsUniqueViolation(err, t.NumberConstraint) {
		return fmt.Errorf("%w: %s %d v%d", ErrNumberTaken, repository.level.Entity, v.OwnerID, v.VersionNumber)
	}
	return dberr.Wrap(err, repository.level.Entity.Label())
}

func (repository *PostgresStore[C]) FindByID(context context.Context, id int64) (*Version[C], error) {
	t := repository.level.Version
	query := fmt.Sprintf(`SELECT %s FROM %s v WHERE v.%s = $1`, repository.columns("v"), t.Table, t.ID)

	v, err := repository.scan(postgres.Conn(context, repository.pool).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, repository.level.Resource())
	}
	return v, nil
}

func (repository *PostgresStore[C]) ListByOwner(context context.Context, ownerID int64) ([]*Version[C], error) {
	t := repository.level.Version
	query := fmt.Sprintf(`SELECT %s FROM %s v WHERE v.%s = $1 ORDER BY v.%s DESC`,
		repository.columns("v"), t.Table, t.OwnerID, t.VersionNumber)

	rows, err := postgres.Conn(context, repository.pool).Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, repository.level.Resource())
	}
	defer rows.Close()

	versions := make([]*Version[C], 0)
	for rows.Next() {
		v, err := repository.scan(rows)
		if err != nil {
			return nil, dberr.Wrap(err, repository.level.Resource())
		}
		versions = append(versions, v)
	}
	return versions, dberr.Wrap(rows.Err(), repository.level.Resource())
}

func (repository *PostgresStore[C]) FindLatest(context context.Context, ownerID int64) (*Version[C], error) {
	t := repository.level.Version
	query := fmt.Sprintf(`SELECT %s FROM %s v WHERE v.%s = $1 ORDER BY v.%s DESC LIMIT 1`,
		repository.columns("v"), t.Table, t.OwnerID, t.VersionNumber)

	return repository.optional(repository.scan(postgres.Conn(context, repository.pool).QueryRow(context, query, ownerID)))
}

// WorkingVersionID locks the owner row; writers of one chain queue behind it.
func (repository *PostgresStore[C]) WorkingVersionID(context context.Context, ownerID int64) (*int64, error) {
	o := repository.level.Owner
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s FOR UPDATE`, o.WorkingVersionID, o.Table, o.ID, o.Live())

	var working *int64
	if err := postgres.Conn(context, repository.pool).QueryRow(context, query, ownerID).Scan(&working); err != nil {
		return nil, dberr.Wrap(err, repository.level.Entity.Label())
	}
	return working, nil
}

func (repository *PostgresStore[C]) SetWorkingVersion(context context.Context, ownerID, versionID int64) error {
	o := repository.level.Owner
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1 AND %s`, o.Table, o.WorkingVersionID, o.ID, o.Live())

	tag, err := postgres.Conn(context, repository.pool).Exec(context, query, ownerID, versionID)
	if err != nil {
		return dberr.Wrap(err, repository.level.Entity.Label())
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(repository.level.Entity.Label())
	}
	return nil
}

func (repository *PostgresStore[C]) FindWorking(context context.Context, ownerID int64) (*Version[C], error) {
	o, t := repository.level.Owner, repository.level.Version
	query := fmt.Sprintf(`
		SELECT %s FROM %s o
		JOIN %s v ON v.%s = o.%s
		WHERE o.%s = $1 AND o.%s
	`,
		repository.columns("v"), o.Table,
		t.Table, t.ID, o.WorkingVersionID,
		o.ID, o.Live(),
	)

	return repository.optional(repository.scan(postgres.Conn(context, repository.pool).QueryRow(context, query, ownerID)))
}

func (repository *PostgresStore[C]) FindWorkingMany(context context.Context, ownerIDs []int64) (map[int64]*Version[C], error) {
	working := make(map[int64]*Version[C], len(ownerIDs))
	if len(ownerIDs) == 0 {
		return working, nil
	}

	o, t := repository.level.Owner, repository.level.Version
	query := fmt.Sprintf(`
		SELECT %s FROM %s o
		JOIN %s v ON v.%s = o.%s
		WHERE o.%s = ANY($1) AND o.%s
	`,
		repository.columns("v"), o.Table,
		t.Table, t.ID, o.WorkingVersionID,
		o.ID, o.Live(),
	)

	rows, err := postgres.Conn(context, repository.pool).Query(context, query, ownerIDs)
	if err != nil {
		return nil, dberr.Wrap(err, repository.level.Resource())
	}
	defer rows.Close()

	for rows.Next() {
		v, err := repository.scan(rows)
		if err != nil {
			return nil, dberr.Wrap(err, repository.level.Resource())
		}
		working[v.OwnerID] = v
	}
	return working, dberr.Wrap(rows.Err(), repository.level.Resource())
}

// optional turns a missing row into a nil version.
func (repository *PostgresStore[C]) optional(v *Version[C], err error) (*Version[C], error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, repository.level.Resource())
	}
	return v, nil
}
