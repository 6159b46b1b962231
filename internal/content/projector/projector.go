// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package projector assembles read-side views of the content hierarchy.

Every section is shown through its effective view: the working version of
the section. A PUBLISHED section shows that same version to readers; there
is no separate approved-version pointer.

# Public tree

[Projector.PublicCategories] prunes bottom-up: a section survives only when
PUBLISHED, a chapter only with a surviving section, a book only with a
surviving chapter and a category only with a surviving book. The result is
cached under [PublicTreeKey] and dropped by [Invalidation] whenever something
is published or a committed write changes the hierarchy or a working version.
*/
package projector

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/catalog"
	"github.com/taibuivan/folio/internal/content/version"
	"github.com/taibuivan/folio/internal/platform/tracing"
	"github.com/taibuivan/folio/pkg/slice"
)

var tracer = otel.Tracer("github.com/taibuivan/folio/internal/content/projector")

// Structure reads the structural rows.
type Structure interface {
	ListCategories(ctx context.Context) ([]*catalog.Category, error)
	GetCategory(ctx context.Context, id int64) (*catalog.Category, error)
	Get(ctx context.Context, level *catalog.Level, id int64) (*catalog.Node, error)
	ListUnder(ctx context.Context, level *catalog.Level, parentIDs []int64) ([]*catalog.Node, error)
}

// Publication reads the status gate.
type Publication interface {
	PublishedIDs(ctx context.Context, entityType content.EntityType, ids []int64) (map[int64]bool, error)
}

// WorkingVersions resolves the working versions of one level.
type WorkingVersions[C version.Content[C]] interface {
	CurrentMany(ctx context.Context, ownerIDs []int64) (map[int64]*version.Version[C], error)
}

// Sources groups the collaborators a [Projector] reads from.
type Sources struct {
	Structure  Structure
	Status     Publication
	Books      WorkingVersions[version.Intro]
	Chapters   WorkingVersions[version.Intro]
	Sections   WorkingVersions[version.Intro]
	Paragraphs WorkingVersions[version.Body]
}

// Projector builds category trees and section views.
type Projector struct {
	sources Sources
	cache   Cache
	logger  *slog.Logger
}

// NewProjector constructs a new [Projector].
func NewProjector(sources Sources, cache Cache, logger *slog.Logger) *Projector {
	return &Projector{sources: sources, cache: cache, logger: logger}
}

/*
CategoryTree returns the full tree of one category, drafts included.

Returns:
  - error: NOT_FOUND when the category does not exist
*/
func (projector *Projector) CategoryTree(ctx context.Context, categoryID int64) (tree *CategoryTree, err error) {
	ctx, span := tracer.Start(ctx, "projector.CategoryTree")
	span.SetAttributes(attribute.Int64("folio.category_id", categoryID))
	defer func() { tracing.End(span, err) }()

	category, err := projector.sources.Structure.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	trees, err := projector.walk(ctx, []*catalog.Category{category}, false)
	if err != nil {
		return nil, err
	}
	return trees[0], nil
}

// PublicCategories returns the pruned reader tree, from the cache when it is
// warm.
func (projector *Projector) PublicCategories(ctx context.Context) (trees []*CategoryTree, err error) {
	ctx, span := tracer.Start(ctx, "projector.PublicCategories")
	defer func() { tracing.End(span, err) }()

	if raw, ok := projector.cached(ctx); ok {
		if err := json.Unmarshal(raw, &trees); err == nil {
			span.SetAttributes(attribute.Bool("folio.cache_hit", true))
			return trees, nil
		}
	}
	span.SetAttributes(attribute.Bool("folio.cache_hit", false))

	categories, err := projector.sources.Structure.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	trees, err = projector.walk(ctx, categories, true)
	if err != nil {
		return nil, err
	}

	projector.store(ctx, trees)
	return trees, nil
}

/*
SectionView returns the effective view of one section. With published set,
a section that is not PUBLISHED has null content.

Returns:
  - error: NOT_FOUND when the section does not exist
*/
func (projector *Projector) SectionView(ctx context.Context, sectionID int64, published bool) (*SectionView, error) {
	node, err := projector.sources.Structure.Get(ctx, catalog.Sections, sectionID)
	if err != nil {
		return nil, err
	}

	ids := []int64{sectionID}
	statuses, err := projector.sources.Status.PublishedIDs(ctx, content.EntitySection, ids)
	if err != nil {
		return nil, err
	}

	working, err := projector.sources.Sections.CurrentMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	current := working[sectionID]
	if published && !statuses[sectionID] {
		current = nil
	}

	view := newSection(node, current, statuses[sectionID])
	paragraphs, err := projector.paragraphs(ctx, ids, published)
	if err != nil {
		return nil, err
	}
	if found := paragraphs[sectionID]; found != nil {
		view.Paragraphs = found
	}
	return view, nil
}

// Invalidation drops the cached public tree. It listens to publishes and to
// every committed content change.
type Invalidation struct {
	projector *Projector
}

// Invalidator returns the [Invalidation] of this projector.
func (projector *Projector) Invalidator() Invalidation {
	return Invalidation{projector: projector}
}

func (invalidation Invalidation) ContentPublished(ctx context.Context, entityType content.EntityType, entityID int64) {
	invalidation.drop(ctx, entityType, []int64{entityID})
}

func (invalidation Invalidation) ContentChanged(ctx context.Context, change content.Change) {
	invalidation.drop(ctx, change.EntityType, change.IDs)
}

func (invalidation Invalidation) drop(ctx context.Context, entityType content.EntityType, entityIDs []int64) {
	projector := invalidation.projector
	if err := projector.cache.Delete(ctx, PublicTreeKey); err != nil {
		projector.logger.WarnContext(ctx, "public_tree_invalidate_failed",
			slog.String("entity_type", string(entityType)),
			slog.Any("entity_ids", entityIDs),
			slog.Any("error", err),
		)
	}
}

func (projector *Projector) cached(ctx context.Context) ([]byte, bool) {
	raw, ok, err := projector.cache.Get(ctx, PublicTreeKey)
	if err != nil {
		projector.logger.WarnContext(ctx, "public_tree_cache_read_failed", slog.Any("error", err))
		return nil, false
	}
	return raw, ok
}

func (projector *Projector) store(ctx context.Context, trees []*CategoryTree) {
	raw, err := json.Marshal(trees)
	if err == nil {
		err = projector.cache.Set(ctx, PublicTreeKey, raw)
	}
	if err != nil {
		projector.logger.WarnContext(ctx, "public_tree_cache_write_failed", slog.Any("error", err))
	}
}

// # Tree Walk

func ids(nodes []*catalog.Node) []int64 {
	return slice.Map(nodes, func(n *catalog.Node) int64 { return n.ID })
}

func byParent(nodes []*catalog.Node) map[int64][]*catalog.Node {
	return slice.GroupBy(nodes, func(n *catalog.Node) int64 { return n.ParentID })
}

// walk loads each level in one read and assembles the trees. With public
// set, unpublished sections and the branches they leave empty are pruned.
func (projector *Projector) walk(ctx context.Context, categories []*catalog.Category, public bool) ([]*CategoryTree, error) {
	structure := projector.sources.Structure

	categoryIDs := slice.Map(categories, func(c *catalog.Category) int64 { return c.ID })
	books, err := structure.ListUnder(ctx, catalog.Books, categoryIDs)
	if err != nil {
		return nil, err
	}
	chapters, err := structure.ListUnder(ctx, catalog.Chapters, ids(books))
	if err != nil {
		return nil, err
	}
	sections, err := structure.ListUnder(ctx, catalog.Sections, ids(chapters))
	if err != nil {
		return nil, err
	}

	// The version and status reads are independent of each other.
	var (
		bookVersions    map[int64]*version.Version[version.Intro]
		chapterVersions map[int64]*version.Version[version.Intro]
		sectionVersions map[int64]*version.Version[version.Intro]
		published       map[int64]bool
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		bookVersions, err = projector.sources.Books.CurrentMany(groupCtx, ids(books))
		return err
	})
	group.Go(func() (err error) {
		chapterVersions, err = projector.sources.Chapters.CurrentMany(groupCtx, ids(chapters))
		return err
	})
	group.Go(func() (err error) {
		sectionVersions, err = projector.sources.Sections.CurrentMany(groupCtx, ids(sections))
		return err
	})
	group.Go(func() (err error) {
		published, err = projector.sources.Status.PublishedIDs(groupCtx, content.EntitySection, ids(sections))
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if public {
		sections = slice.Filter(sections, func(n *catalog.Node) bool { return published[n.ID] })
	}

	paragraphs, err := projector.paragraphs(ctx, ids(sections), public)
	if err != nil {
		return nil, err
	}

	// Assemble bottom-up so empty branches can be dropped on the way.
	sectionsOf := make(map[int64][]*SectionView)
	for _, node := range sections {
		view := newSection(node, sectionVersions[node.ID], published[node.ID])
		if found := paragraphs[node.ID]; found != nil {
			view.Paragraphs = found
		}
		sectionsOf[node.ParentID] = append(sectionsOf[node.ParentID], view)
	}

	chaptersOf := make(map[int64][]*ChapterTree)
	for parentID, nodes := range byParent(chapters) {
		for _, node := range nodes {
			chapter := newChapter(node, chapterVersions[node.ID])
			if found := sectionsOf[node.ID]; found != nil {
				chapter.Sections = found
			}
			if public && len(chapter.Sections) == 0 {
				continue
			}
			chaptersOf[parentID] = append(chaptersOf[parentID], chapter)
		}
	}

	booksOf := make(map[int64][]*BookTree)
	for parentID, nodes := range byParent(books) {
		for _, node := range nodes {
			book := newBook(node, bookVersions[node.ID])
			if found := chaptersOf[node.ID]; found != nil {
				book.Chapters = found
			}
			if public && len(book.Chapters) == 0 {
				continue
			}
			booksOf[parentID] = append(booksOf[parentID], book)
		}
	}

	trees := make([]*CategoryTree, 0, len(categories))
	for _, category := range categories {
		tree := &CategoryTree{Category: category, Books: []*BookTree{}}
		if found := booksOf[category.ID]; found != nil {
			tree.Books = found
		}
		if public && len(tree.Books) == 0 {
			continue
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// paragraphs builds the paragraph views of sectionIDs grouped by section.
// With published set, content of paragraphs that are not PUBLISHED is hidden.
func (projector *Projector) paragraphs(ctx context.Context, sectionIDs []int64, published bool) (map[int64][]*ParagraphView, error) {
	nodes, err := projector.sources.Structure.ListUnder(ctx, catalog.Paragraphs, sectionIDs)
	if err != nil {
		return nil, err
	}

	working, err := projector.sources.Paragraphs.CurrentMany(ctx, ids(nodes))
	if err != nil {
		return nil, err
	}
	statuses, err := projector.sources.Status.PublishedIDs(ctx, content.EntityParagraph, ids(nodes))
	if err != nil {
		return nil, err
	}

	views := make(map[int64][]*ParagraphView)
	for _, node := range nodes {
		current := working[node.ID]
		if published && !statuses[node.ID] {
			current = nil
		}
		views[node.ParentID] = append(views[node.ParentID], newParagraph(node, current, statuses[node.ID]))
	}
	return views, nil
}
