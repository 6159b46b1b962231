// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

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

const resourceCategory = "Category"

// PostgresStore implements [Store].
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new catalog store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// # Categories

var categoryColumns = schema.List(schema.ContentCategory.Columns()...)

func scanCategory(row pgx.Row) (*Category, error) {
	c := &Category{}
	if err := row.Scan(
		&c.ID, &c.CategoryNumber, &c.TitleEn, &c.TitleNl, &c.SubtitleEn, &c.SubtitleNl,
		&c.DescriptionEn, &c.DescriptionNl, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (repository *PostgresStore) ListCategories(context context.Context) ([]*Category, error) {
	c := schema.ContentCategory
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s IS NULL ORDER BY %s, %s`,
		categoryColumns, c.Table, c.DeletedAt, c.CategoryNumber, c.ID)

	rows, err := postgres.Conn(context, repository.pool).Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resourceCategory)
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceCategory)
		}
		categories = append(categories, category)
	}
	return categories, dberr.Wrap(rows.Err(), resourceCategory)
}

func (repository *PostgresStore) FindCategory(context context.Context, id int64) (*Category, error) {
	c := schema.ContentCategory
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`, categoryColumns, c.Table, c.ID, c.DeletedAt)

	category, err := scanCategory(postgres.Conn(context, repository.pool).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceCategory)
	}
	return category, nil
}

func (repository *PostgresStore) InsertCategory(context context.Context, category *Category) error {
	c := schema.ContentCategory
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s
	`,
		c.Table, c.CategoryNumber, c.TitleEn, c.TitleNl, c.SubtitleEn, c.SubtitleNl, c.DescriptionEn, c.DescriptionNl,
		c.ID, c.CreatedAt, c.UpdatedAt,
	)

	err := postgres.Conn(context, repository.pool).QueryRow(context, query,
		category.CategoryNumber, category.TitleEn, category.TitleNl, category.SubtitleEn,
		category.SubtitleNl, category.DescriptionEn, category.DescriptionNl,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)

	return dberr.Wrap(err, resourceCategory)
}

func (repository *PostgresStore) UpdateCategory(context context.Context, category *Category) error {
	c := schema.ContentCategory
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		c.Table,
		c.CategoryNumber, c.TitleEn, c.TitleNl, c.SubtitleEn, c.SubtitleNl, c.DescriptionEn, c.DescriptionNl,
		c.ID, c.DeletedAt,
		c.UpdatedAt,
	)

	err := postgres.Conn(context, repository.pool).QueryRow(context, query,
		category.ID, category.CategoryNumber, category.TitleEn, category.TitleNl, category.SubtitleEn,
		category.SubtitleNl, category.DescriptionEn, category.DescriptionNl,
	).Scan(&category.UpdatedAt)

	return dberr.Wrap(err, resourceCategory)
}

func (repository *PostgresStore) DeleteCategory(context context.Context, id int64) error {
	c := schema.ContentCategory
	query := fmt.Sprintf(`UPDATE %s SET %s = now() WHERE %s = $1 AND %s IS NULL`, c.Table, c.DeletedAt, c.ID, c.DeletedAt)

	tag, err := postgres.Conn(context, repository.pool).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceCategory)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceCategory)
	}
	return nil
}

func (repository *PostgresStore) CategoryExists(context context.Context, id int64) (bool, error) {
	c := schema.ContentCategory
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL)`, c.Table, c.ID, c.DeletedAt)

	var exists bool
	if err := postgres.Conn(context, repository.pool).QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceCategory)
	}
	return exists, nil
}

// # Nodes

// nodeColumns selects a node. Levels without a position read a constant 0.
func nodeColumns(t schema.ContentEntityTable) string {
	position := "0"
	if t.Position != "" {
		position = t.Position
	}
	return schema.List(t.ID, t.ParentID, t.Ordinal, position, t.WorkingVersionID, t.CreatedAt, t.UpdatedAt)
}

func scanNode(level *Level, row pgx.Row) (*Node, error) {
	n := &Node{Level: level}
	if err := row.Scan(&n.ID, &n.ParentID, &n.Number, &n.Position, &n.WorkingVersionID, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return n, nil
}

func (repository *PostgresStore) FindNode(context context.Context, level *Level, id int64) (*Node, error) {
	t := level.Table
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s`, nodeColumns(t), t.Table, t.ID, t.Live())

	node, err := scanNode(level, postgres.Conn(context, repository.pool).QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, level.Entity.Label())
	}
	return node, nil
}

func (repository *PostgresStore) ListNodes(context context.Context, level *Level, parentIDs []int64) ([]*Node, error) {
	t := level.Table
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = ANY($1) AND %s
		ORDER BY %s, %s NULLS LAST, %s
	`,
		nodeColumns(t), t.Table,
		t.ParentID, t.Live(),
		t.ParentID, t.Ordinal, t.ID,
	)

	rows, err := postgres.Conn(context, repository.pool).Query(context, query, parentIDs)
	if err != nil {
		return nil, dberr.Wrap(err, level.Entity.Label())
	}
	defer rows.Close()

	nodes := make([]*Node, 0)
	for rows.Next() {
		node, err := scanNode(level, rows)
		if err != nil {
			return nil, dberr.Wrap(err, level.Entity.Label())
		}
		nodes = append(nodes, node)
	}
	return nodes, dberr.Wrap(rows.Err(), level.Entity.Label())
}

func (repository *PostgresStore) InsertNode(context context.Context, node *Node) error {
	t := node.Level.Table

	columns, args := []string{t.ParentID, t.Ordinal}, []any{node.ParentID, node.Number}
	if node.Level.HasPosition() {
		columns, args = append(columns, t.Position), append(args, node.Position)
	}

	placeholders := "$1, $2"
	if len(args) == 3 {
		placeholders += ", $3"
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s, %s, %s`,
		t.Table, schema.List(columns...), placeholders, t.ID, t.CreatedAt, t.UpdatedAt)

	err := postgres.Conn(context, repository.pool).QueryRow(context, query, args...).
		Scan(&node.ID, &node.CreatedAt, &node.UpdatedAt)
	return dberr.Wrap(err, node.Level.Entity.Label())
}

func (repository *PostgresStore) UpdateNode(context context.Context, node *Node) error {
	t := node.Level.Table

	position := ""
	args := []any{node.ID, node.Number}
	if node.Level.HasPosition() {
		position = fmt.Sprintf(", %s = $3", t.Position)
		args = append(args, node.Position)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $2%s WHERE %s = $1 AND %s RETURNING %s`,
		t.Table, t.Ordinal, position, t.ID, t.Live(), t.UpdatedAt)

	err := postgres.Conn(context, repository.pool).QueryRow(context, query, args...).Scan(&node.UpdatedAt)
	return dberr.Wrap(err, node.Level.Entity.Label())
}

func (repository *PostgresStore) DeleteNode(context context.Context, level *Level, id int64) error {
	t := level.Table
	query := fmt.Sprintf(`UPDATE %s SET %s = now() WHERE %s = $1 AND %s`, t.Table, t.DeletedAt, t.ID, t.Live())

	tag, err := postgres.Conn(context, repository.pool).Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, level.Entity.Label())
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(level.Entity.Label())
	}
	return nil
}

func (repository *PostgresStore) DeleteChildren(context context.Context, level *Level, parentIDs []int64) ([]int64, error) {
	t := level.Table
	query := fmt.Sprintf(`UPDATE %s SET %s = now() WHERE %s = ANY($1) AND %s RETURNING %s`,
		t.Table, t.DeletedAt, t.ParentID, t.Live(), t.ID)

	rows, err := postgres.Conn(context, repository.pool).Query(context, query, parentIDs)
	if err != nil {
		return nil, dberr.Wrap(err, level.Entity.Label())
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, dberr.Wrap(err, level.Entity.Label())
	}
	return ids, nil
}

func (repository *PostgresStore) Exists(context context.Context, level *Level, id int64) (bool, error) {
	t := level.Table
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s)`, t.Table, t.ID, t.Live())

	var exists bool
	if err := postgres.Conn(context, repository.pool).QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, level.Entity.Label())
	}
	return exists, nil
}
