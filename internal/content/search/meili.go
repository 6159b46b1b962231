// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"

	"github.com/taibuivan/folio/pkg/slice"
)

const (
	sectionsIndex  = "folio_sections"
	healthInterval = 10 * time.Second
)

// Meili implements [Index] with Meilisearch.
type Meili struct {
	client  meili.ServiceManager
	healthy atomic.Bool
	logger  *slog.Logger
}

// NewMeili connects to Meilisearch and configures the index. An unreachable
// server is not fatal: a background probe reconfigures the index once the
// server answers. The probe stops with ctx.
func NewMeili(ctx context.Context, url, apiKey string, logger *slog.Logger) *Meili {
	m := &Meili{
		client: meili.New(url, meili.WithAPIKey(apiKey)),
		logger: logger,
	}

	if _, err := m.client.Health(); err != nil {
		logger.Warn("search_unavailable", slog.String("url", url), slog.Any("error", err))
	} else {
		m.healthy.Store(true)
		m.configure()
	}

	go m.probe(ctx)
	return m
}

func (m *Meili) configure() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{Uid: sectionsIndex, PrimaryKey: "id"}); err != nil {
		m.logger.Debug("search_index_create_skipped", slog.Any("error", err))
	}

	index := m.client.Index(sectionsIndex)

	searchable := []string{"titleEn", "titleNl", "introEn", "introNl"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		m.logger.Warn("search_searchable_update_failed", slog.Any("error", err))
	}

	filterable := []interface{}{"chapterId"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		m.logger.Warn("search_filterable_update_failed", slog.Any("error", err))
	}
}

func (m *Meili) probe(ctx context.Context) {
	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Swap(err == nil)
			if err == nil && !wasHealthy {
				m.logger.Info("search_recovered")
				m.configure()
			}
		}
	}
}

// Healthy reports whether Meilisearch answered the last probe.
func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

func (m *Meili) Upsert(_ context.Context, documents []Document) error {
	if len(documents) == 0 {
		return nil
	}
	if _, err := m.client.Index(sectionsIndex).AddDocuments(documents, nil); err != nil {
		return fmt.Errorf("meilisearch add documents: %w", err)
	}
	return nil
}

func (m *Meili) Delete(_ context.Context, sectionIDs []int64) error {
	if len(sectionIDs) == 0 {
		return nil
	}
	identifiers := slice.Map(sectionIDs, func(id int64) string { return strconv.FormatInt(id, 10) })
	if _, err := m.client.Index(sectionsIndex).DeleteDocuments(identifiers, nil); err != nil {
		return fmt.Errorf("meilisearch delete documents: %w", err)
	}
	return nil
}

func (m *Meili) Search(_ context.Context, query string, limit int) ([]Result, int, error) {
	response, err := m.client.MultiSearch(&meili.MultiSearchRequest{
		Queries: []*meili.SearchRequest{{
			IndexUID:              sectionsIndex,
			Query:                 query,
			Limit:                 int64(limit),
			AttributesToHighlight: []string{"introEn", "introNl"},
			AttributesToCrop:      []string{"introEn", "introNl"},
			HighlightPreTag:       "<mark>",
			HighlightPostTag:      "</mark>",
		}},
	})
	if err != nil {
		m.healthy.Store(false)
		return nil, 0, fmt.Errorf("meilisearch search: %w", err)
	}

	results := make([]Result, 0)
	total := 0
	for _, page := range response.Results {
		total += int(page.EstimatedTotalHits)
		for _, hit := range page.Hits {
			results = append(results, hitToResult(hit))
		}
	}
	return results, total, nil
}

func hitToResult(hit meili.Hit) Result {
	return Result{
		SectionID: decodeInt(hit, "id"),
		ChapterID: decodeInt(hit, "chapterId"),
		TitleEn:   decodeString(hit, "titleEn"),
		TitleNl:   decodeString(hit, "titleNl"),
		Snippet:   firstNonBlank(formatted(hit, "introEn"), formatted(hit, "introNl")),
	}
}

func decodeString(hit meili.Hit, key string) string {
	var s string
	if raw, ok := hit[key]; ok && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return ""
}

func decodeInt(hit meili.Hit, key string) int64 {
	var n int64
	if raw, ok := hit[key]; ok && json.Unmarshal(raw, &n) == nil {
		return n
	}
	return 0
}

func formatted(hit meili.Hit, key string) string {
	raw, ok := hit["_formatted"]
	if !ok {
		return ""
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	var s string
	if json.Unmarshal(fields[key], &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func firstNonBlank(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
