// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/postgres"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
	"github.com/taibuivan/folio/pkg/textnorm"
)

const (
	maxTitleLength       = 500
	maxDescriptionLength = 5000
	maxPosition          = 10
)

// Catalog is the structural CRUD service.
type Catalog struct {
	store   Store
	tx      postgres.Transactor
	changes content.ChangeListener
	logger  *slog.Logger
}

// NewCatalog constructs a new [Catalog]. changes is told about every
// committed write; it may be nil.
func NewCatalog(store Store, tx postgres.Transactor, changes content.ChangeListener, logger *slog.Logger) *Catalog {
	if changes == nil {
		changes = content.ChangeListeners(nil)
	}
	return &Catalog{store: store, tx: tx, changes: changes, logger: logger}
}

func (catalog *Catalog) notify(ctx context.Context, changes ...content.Change) {
	for _, change := range changes {
		catalog.changes.ContentChanged(ctx, change)
	}
}

func structureChange(entityType content.EntityType, id int64) content.Change {
	return content.Change{Kind: content.ChangeStructure, EntityType: entityType, IDs: []int64{id}}
}

func deletion(entityType content.EntityType, id int64) content.Change {
	return content.Change{Kind: content.ChangeDeleted, EntityType: entityType, IDs: []int64{id}}
}

// Exists reports whether a live entity of the given type exists.
func (catalog *Catalog) Exists(ctx context.Context, entityType content.EntityType, id int64) (bool, error) {
	level := LevelOf(entityType)
	if level == nil || id <= 0 {
		return false, nil
	}
	return catalog.store.Exists(ctx, level, id)
}

// # Categories

func (catalog *Catalog) ListCategories(ctx context.Context) ([]*Category, error) {
	return catalog.store.ListCategories(ctx)
}

func (catalog *Catalog) GetCategory(ctx context.Context, id int64) (*Category, error) {
	return catalog.store.FindCategory(ctx, id)
}

// normalizeCategory validates the input and fills a missing title from the
// other language.
func normalizeCategory(input CategoryInput) (*Category, error) {
	category := &Category{
		CategoryNumber: input.CategoryNumber,
		TitleEn:        textnorm.Fallback(input.TitleEn, input.TitleNl),
		TitleNl:        textnorm.Fallback(input.TitleNl, input.TitleEn),
		SubtitleEn:     textnorm.Title(input.SubtitleEn),
		SubtitleNl:     textnorm.Title(input.SubtitleNl),
		DescriptionEn:  textnorm.Body(input.DescriptionEn),
		DescriptionNl:  textnorm.Body(input.DescriptionNl),
	}

	v := &validate.Validator{}
	v.Min("categoryNumber", category.CategoryNumber, 0).
		AtLeastOne([]string{"titleEn", "titleNl"}, category.TitleEn, category.TitleNl).
		MaxLen("titleEn", category.TitleEn, maxTitleLength).
		MaxLen("titleNl", category.TitleNl, maxTitleLength).
		MaxLen("subtitleEn", category.SubtitleEn, maxTitleLength).
		MaxLen("subtitleNl", category.SubtitleNl, maxTitleLength).
		MaxLen("descriptionEn", category.DescriptionEn, maxDescriptionLength).
		MaxLen("descriptionNl", category.DescriptionNl, maxDescriptionLength)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return category, nil
}

/*
CreateCategory adds a category.

Returns:
  - error: VALIDATION_ERROR, CONFLICT when the number is taken
*/
func (catalog *Catalog) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	category, err := normalizeCategory(input)
	if err != nil {
		return nil, err
	}

	if err := catalog.store.InsertCategory(ctx, category); err != nil {
		return nil, err
	}

	catalog.logger.InfoContext(ctx, "category_created",
		slog.Int64("category_id", category.ID),
		slog.Int("category_number", category.CategoryNumber),
	)
	catalog.notify(ctx, structureChange(content.EntityCategory, category.ID))
	return category, nil
}

// UpdateCategory replaces the editable fields of a category. System
// categories keep their number.
func (catalog *Catalog) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*Category, error) {
	existing, err := catalog.store.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.IsSystem() && input.CategoryNumber != existing.CategoryNumber {
		return nil, validate.FieldError("categoryNumber", "System categories cannot be renumbered")
	}

	category, err := normalizeCategory(input)
	if err != nil {
		return nil, err
	}
	category.ID = existing.ID
	category.CreatedAt = existing.CreatedAt

	if err := catalog.store.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	catalog.logger.InfoContext(ctx, "category_updated", slog.Int64("category_id", id))
	catalog.notify(ctx, structureChange(content.EntityCategory, id))
	return category, nil
}

/*
DeleteCategory soft-deletes a category and everything below it.

Returns:
  - error: NOT_FOUND, INVALID_STATE for a system category
*/
func (catalog *Catalog) DeleteCategory(ctx context.Context, id int64) error {
	var cascaded []content.Change
	err := catalog.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := catalog.store.FindCategory(ctx, id)
		if err != nil {
			return err
		}
		if existing.IsSystem() {
			return apperr.InvalidState(fmt.Sprintf("Category %d is a system category and cannot be deleted", existing.CategoryNumber))
		}

		if err := catalog.store.DeleteCategory(ctx, id); err != nil {
			return err
		}
		cascaded, err = catalog.cascade(ctx, Books, []int64{id})
		return err
	})
	if err != nil {
		return err
	}

	catalog.logger.InfoContext(ctx, "category_deleted", slog.Int64("category_id", id))
	catalog.notify(ctx, append([]content.Change{deletion(content.EntityCategory, id)}, cascaded...)...)
	return nil
}

// # Nodes

func (catalog *Catalog) Get(ctx context.Context, level *Level, id int64) (*Node, error) {
	return catalog.store.FindNode(ctx, level, id)
}

// List returns the live children of one parent.
func (catalog *Catalog) List(ctx context.Context, level *Level, parentID int64) ([]*Node, error) {
	if err := catalog.requireParent(ctx, level, parentID); err != nil {
		return nil, err
	}
	return catalog.store.ListNodes(ctx, level, []int64{parentID})
}

// ListUnder returns the live children of several parents in one read.
func (catalog *Catalog) ListUnder(ctx context.Context, level *Level, parentIDs []int64) ([]*Node, error) {
	if len(parentIDs) == 0 {
		return []*Node{}, nil
	}
	return catalog.store.ListNodes(ctx, level, parentIDs)
}

func (catalog *Catalog) requireParent(ctx context.Context, level *Level, parentID int64) error {
	var (
		exists bool
		err    error
		label  = "Category"
	)
	if parent := level.Parent(); parent != nil {
		label = parent.Entity.Label()
		exists, err = catalog.store.Exists(ctx, parent, parentID)
	} else {
		exists, err = catalog.store.CategoryExists(ctx, parentID)
	}
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound(label)
	}
	return nil
}

// applyInput validates the ordinal fields of input against the level rules
// and copies them onto node. An omitted position keeps the node's one.
func applyInput(level *Level, node *Node, input NodeInput) error {
	v := &validate.Validator{}

	number := input.Number
	switch {
	case number == nil && level.OrdinalRequired:
		v.Custom(level.OrdinalField, true, "This field is required")
	case number == nil && !level.OrdinalNullable:
		fallback := level.OrdinalMin
		number = &fallback
	case number != nil:
		v.Min(level.OrdinalField, *number, level.OrdinalMin)
	}

	position := pointer.Fallback(input.Position, node.Position)
	if level.HasPosition() {
		v.Range("position", position, 0, maxPosition)
	}

	if err := v.Err(); err != nil {
		return err
	}

	node.Number = number
	node.Position = position
	return nil
}

/*
Create adds a node under an existing parent.

Returns:
  - error: VALIDATION_ERROR, including a missing parent on the parent field
*/
func (catalog *Catalog) Create(ctx context.Context, level *Level, input NodeInput) (*Node, error) {
	if err := (&validate.Validator{}).RequiredID(level.ParentField, input.ParentID).Err(); err != nil {
		return nil, err
	}

	node := &Node{Level: level, ParentID: input.ParentID}
	if err := applyInput(level, node, input); err != nil {
		return nil, err
	}

	if err := catalog.requireParent(ctx, level, input.ParentID); err != nil {
		if apperr.IsNotFound(err) {
			return nil, validate.FieldError(level.ParentField, err.Error())
		}
		return nil, err
	}

	if err := catalog.store.InsertNode(ctx, node); err != nil {
		return nil, err
	}

	catalog.logger.InfoContext(ctx, string(level.Entity)+"_created",
		slog.Int64("id", node.ID),
		slog.Int64("parent_id", node.ParentID),
	)
	catalog.notify(ctx, structureChange(level.Entity, node.ID))
	return node, nil
}

// Update replaces the ordinal fields of a node. The parent never changes.
func (catalog *Catalog) Update(ctx context.Context, level *Level, id int64, input NodeInput) (*Node, error) {
	node, err := catalog.store.FindNode(ctx, level, id)
	if err != nil {
		return nil, err
	}

	if err := applyInput(level, node, input); err != nil {
		return nil, err
	}

	if err := catalog.store.UpdateNode(ctx, node); err != nil {
		return nil, err
	}

	catalog.logger.InfoContext(ctx, string(level.Entity)+"_updated", slog.Int64("id", id))
	catalog.notify(ctx, structureChange(level.Entity, id))
	return node, nil
}

// Delete soft-deletes a node and its live descendants.
func (catalog *Catalog) Delete(ctx context.Context, level *Level, id int64) error {
	var cascaded []content.Change
	err := catalog.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := catalog.store.DeleteNode(ctx, level, id); err != nil {
			return err
		}
		var err error
		cascaded, err = catalog.cascade(ctx, level.Child(), []int64{id})
		return err
	})
	if err != nil {
		return err
	}

	catalog.logger.InfoContext(ctx, string(level.Entity)+"_deleted", slog.Int64("id", id))
	catalog.notify(ctx, append([]content.Change{deletion(level.Entity, id)}, cascaded...)...)
	return nil
}

// cascade walks down from level, soft-deleting the children of parentIDs. It
// returns one deletion per level that lost rows.
func (catalog *Catalog) cascade(ctx context.Context, level *Level, parentIDs []int64) ([]content.Change, error) {
	var changes []content.Change
	for ; level != nil && len(parentIDs) > 0; level = level.Child() {
		deleted, err := catalog.store.DeleteChildren(ctx, level, parentIDs)
		if err != nil {
			return nil, err
		}
		if len(deleted) > 0 {
			changes = append(changes, content.Change{Kind: content.ChangeDeleted, EntityType: level.Entity, IDs: deleted})
		}
		parentIDs = deleted
	}
	return changes, nil
}
