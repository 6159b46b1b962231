// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/projector"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/pointer"
)

const (
	defaultLimit   = 20
	maxLimit       = 100
	maxQueryLength = 200
)

// SectionSource loads the reader view of a section.
type SectionSource interface {
	SectionView(ctx context.Context, sectionID int64, published bool) (*projector.SectionView, error)
}

// Service indexes published sections and answers queries.
type Service struct {
	index    Index
	sections SectionSource
	pending  errgroup.Group
	logger   *slog.Logger
}

// NewService creates the search service. index may be nil when no search
// backend is configured.
func NewService(index Index, sections SectionSource, logger *slog.Logger) *Service {
	return &Service{index: index, sections: sections, logger: logger}
}

func (service *Service) available() bool {
	return service.index != nil && service.index.Healthy()
}

/*
Search runs a full-text query over published sections.

Returns:
  - error: VALIDATION_ERROR on a blank query, SERVICE_UNAVAILABLE without a
    healthy index
*/
func (service *Service) Search(ctx context.Context, query string, limit int) (*Response, error) {
	query = strings.TrimSpace(query)

	v := &validate.Validator{}
	v.Required("q", query).MaxLen("q", query, maxQueryLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	if !service.available() {
		return nil, apperr.ServiceUnavailable("Search is not available")
	}

	results, total, err := service.index.Search(ctx, query, limit)
	if err != nil {
		service.logger.ErrorContext(ctx, "search_failed", slog.String("query", query), slog.Any("error", err))
		return nil, apperr.ServiceUnavailable("Search is not available")
	}

	return &Response{Query: query, Results: results, Total: total}, nil
}

// IndexSection pushes the published view of a section to the index. A
// section that is not PUBLISHED or has no working version is removed instead.
func (service *Service) IndexSection(ctx context.Context, sectionID int64) error {
	if !service.available() {
		return nil
	}

	view, err := service.sections.SectionView(ctx, sectionID, true)
	if err != nil {
		return err
	}
	if !view.Published || view.VersionID == nil {
		return service.index.Delete(ctx, []int64{sectionID})
	}

	document := Document{
		ID:        view.ID,
		ChapterID: view.ChapterID,
		VersionID: pointer.Val(view.VersionID),
		TitleEn:   pointer.Val(view.TitleEn),
		TitleNl:   pointer.Val(view.TitleNl),
		IntroEn:   pointer.Val(view.IntroEn),
		IntroNl:   pointer.Val(view.IntroNl),
	}
	if err := service.index.Upsert(ctx, []Document{document}); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "section_indexed",
		slog.Int64("section_id", sectionID),
		slog.Int64("version_id", document.VersionID),
	)
	return nil
}

// RemoveSections drops deleted sections from the index.
func (service *Service) RemoveSections(ctx context.Context, sectionIDs []int64) error {
	if !service.available() || len(sectionIDs) == 0 {
		return nil
	}
	if err := service.index.Delete(ctx, sectionIDs); err != nil {
		return err
	}
	service.logger.InfoContext(ctx, "sections_unindexed", slog.Any("section_ids", sectionIDs))
	return nil
}

// background runs fn detached from the request. Every run is tracked until
// [Service.Drain].
func (service *Service) background(ctx context.Context, event string, sectionIDs []int64, fn func(ctx context.Context) error) {
	detached := context.WithoutCancel(ctx)
	service.pending.Go(func() error {
		if err := fn(detached); err != nil {
			service.logger.WarnContext(detached, event,
				slog.Any("section_ids", sectionIDs),
				slog.Any("error", err),
			)
		}
		return nil
	})
}

// Drain waits for background indexing to finish or for ctx to end.
func (service *Service) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		_ = service.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Indexer keeps the index in step with the content. Only sections are
// indexed; other entity types are ignored.
type Indexer struct {
	service *Service
}

// Listener returns the [Indexer] of this service.
func (service *Service) Listener() Indexer {
	return Indexer{service: service}
}

func (indexer Indexer) ContentPublished(ctx context.Context, entityType content.EntityType, entityID int64) {
	indexer.ContentChanged(ctx, content.Change{Kind: content.ChangeVersioned, EntityType: entityType, IDs: []int64{entityID}})
}

func (indexer Indexer) ContentChanged(ctx context.Context, change content.Change) {
	service := indexer.service
	if change.EntityType != content.EntitySection || len(change.IDs) == 0 || !service.available() {
		return
	}

	if change.Kind == content.ChangeDeleted {
		service.background(ctx, "section_unindex_failed", change.IDs, func(ctx context.Context) error {
			return service.RemoveSections(ctx, change.IDs)
		})
		return
	}

	service.background(ctx, "section_index_failed", change.IDs, func(ctx context.Context) error {
		var errs []error
		for _, id := range change.IDs {
			errs = append(errs, service.IndexSection(ctx, id))
		}
		return errors.Join(errs...)
	})
}
