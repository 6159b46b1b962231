// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/catalog"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/pkg/pointer"
)

// tree builds category → book → chapter → section → paragraph and returns
// the ids top-down.
func tree(t *testing.T, c *catalog.Catalog, number int) []int64 {
	t.Helper()
	ctx := context.Background()

	category, err := c.CreateCategory(ctx, catalog.CategoryInput{CategoryNumber: number, TitleEn: "Category"})
	require.NoError(t, err)

	ids := []int64{category.ID}
	for _, level := range catalog.Levels {
		node, err := c.Create(ctx, level, catalog.NodeInput{ParentID: ids[len(ids)-1], Number: pointer.To(1)})
		require.NoError(t, err)
		ids = append(ids, node.ID)
	}
	return ids
}

/*
TestCatalog_CreateCategory fills the missing title and rejects bad input.
*/
func TestCatalog_CreateCategory(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog()

	created, err := c.CreateCategory(ctx, catalog.CategoryInput{CategoryNumber: 5, TitleNl: "  Gezin  "})
	require.NoError(t, err)
	assert.Equal(t, "Gezin", created.TitleNl)
	assert.Equal(t, "Gezin", created.TitleEn)
	assert.False(t, created.IsSystem())

	tests := []struct {
		name  string
		input catalog.CategoryInput
		code  string
	}{
		{"no_title", catalog.CategoryInput{CategoryNumber: 6}, apperr.CodeValidation},
		{"negative_number", catalog.CategoryInput{CategoryNumber: -1, TitleEn: "x"}, apperr.CodeValidation},
		{"taken_number", catalog.CategoryInput{CategoryNumber: 5, TitleEn: "x"}, apperr.CodeConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CreateCategory(ctx, tt.input)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
		})
	}
}

/*
TestCatalog_SystemCategories cannot be deleted or renumbered.
*/
func TestCatalog_SystemCategories(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog()

	system, err := c.CreateCategory(ctx, catalog.CategoryInput{CategoryNumber: 2, TitleEn: "Strengthen Your Inner World"})
	require.NoError(t, err)
	assert.True(t, system.IsSystem())

	assert.True(t, apperr.HasCode(c.DeleteCategory(ctx, system.ID), apperr.CodeInvalidState))

	_, err = c.UpdateCategory(ctx, system.ID, catalog.CategoryInput{CategoryNumber: 9, TitleEn: "Moved"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	updated, err := c.UpdateCategory(ctx, system.ID, catalog.CategoryInput{CategoryNumber: 2, TitleEn: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.TitleEn)
}

/*
TestCatalog_DeleteCategory_Cascades soft-deletes every live descendant.
*/
func TestCatalog_DeleteCategory_Cascades(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog()

	ids := tree(t, c, 10)
	other := tree(t, c, 11)

	require.NoError(t, c.DeleteCategory(ctx, ids[0]))

	for i, level := range catalog.Levels {
		exists, err := c.Exists(ctx, level.Entity, ids[i+1])
		require.NoError(t, err)
		assert.False(t, exists, level.Entity)

		exists, err = c.Exists(ctx, level.Entity, other[i+1])
		require.NoError(t, err)
		assert.True(t, exists, level.Entity)
	}

	_, err := c.GetCategory(ctx, ids[0])
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(c.DeleteCategory(ctx, ids[0])))
}

/*
TestCatalog_DeleteNode_Cascades removes only the subtree.
*/
func TestCatalog_DeleteNode_Cascades(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog()

	ids := tree(t, c, 10)
	require.NoError(t, c.Delete(ctx, catalog.Chapters, ids[2]))

	expected := []bool{true, false, false, false}
	for i, level := range catalog.Levels {
		exists, err := c.Exists(ctx, level.Entity, ids[i+1])
		require.NoError(t, err)
		assert.Equal(t, expected[i], exists, level.Entity)
	}
}

/*
TestCatalog_Create_Rules covers the per-level ordinal rules.
*/
func TestCatalog_Create_Rules(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog()
	ids := tree(t, c, 10)

	tests := []struct {
		name  string
		level *catalog.Level
		input catalog.NodeInput
		field string
	}{
		{"missing_category", catalog.Books, catalog.NodeInput{ParentID: 999}, "categoryId"},
		{"zero_parent", catalog.Chapters, catalog.NodeInput{}, "bookId"},
		{"book_number_zero", catalog.Books, catalog.NodeInput{ParentID: ids[0], Number: pointer.To(0)}, "bookNumber"},
		{"position_too_high", catalog.Chapters, catalog.NodeInput{ParentID: ids[1], Position: pointer.To(11)}, "position"},
		{"negative_order", catalog.Sections, catalog.NodeInput{ParentID: ids[2], Number: pointer.To(-1)}, "orderIndex"},
		{"paragraph_number_missing", catalog.Paragraphs, catalog.NodeInput{ParentID: ids[3]}, "paragraphNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Create(ctx, tt.level, tt.input)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}

	book, err := c.Create(ctx, catalog.Books, catalog.NodeInput{ParentID: ids[0]})
	require.NoError(t, err)
	assert.Nil(t, book.Number)

	section, err := c.Create(ctx, catalog.Sections, catalog.NodeInput{ParentID: ids[2]})
	require.NoError(t, err)
	assert.Equal(t, 0, *section.Number)

	chapter, err := c.Create(ctx, catalog.Chapters, catalog.NodeInput{ParentID: ids[1], Position: pointer.To(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, chapter.Position)
}

/*
TestCatalog_List needs a live parent.
*/
func TestCatalog_List(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog()
	ids := tree(t, c, 10)

	sections, err := c.List(ctx, catalog.Sections, ids[2])
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, ids[3], sections[0].ID)

	_, err = c.List(ctx, catalog.Sections, 999)
	assert.True(t, apperr.IsNotFound(err))

	none, err := c.ListUnder(ctx, catalog.Sections, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

/*
TestCatalog_Exists ignores unknown types.
*/
func TestCatalog_Exists(t *testing.T) {
	c, _ := newCatalog()
	exists, err := c.Exists(context.Background(), content.EntityType("category"), 1)
	require.NoError(t, err)
	assert.False(t, exists)
}

/*
TestNode_MarshalJSON names fields after the level.
*/
func TestNode_MarshalJSON(t *testing.T) {
	node := &catalog.Node{Level: catalog.Chapters, ID: 3, ParentID: 2, Number: pointer.To(4), Position: 7}

	raw, err := json.Marshal(node)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, float64(2), body["bookId"])
	assert.Equal(t, float64(4), body["chapterNumber"])
	assert.Equal(t, float64(7), body["position"])
	assert.Nil(t, body["workingVersionId"])

	raw, err = json.Marshal(&catalog.Node{Level: catalog.Sections, ParentID: 3, Number: pointer.To(0)})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "position")
	assert.Contains(t, string(raw), `"chapterId":3`)
}

/*
TestCatalog_Update_KeepsPosition leaves an omitted position untouched.
*/
func TestCatalog_Update_KeepsPosition(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog()
	ids := tree(t, c, 10)

	chapter, err := c.Create(ctx, catalog.Chapters, catalog.NodeInput{ParentID: ids[1], Number: pointer.To(2), Position: pointer.To(3)})
	require.NoError(t, err)

	updated, err := c.Update(ctx, catalog.Chapters, chapter.ID, catalog.NodeInput{Number: pointer.To(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, *updated.Number)
	assert.Equal(t, 3, updated.Position)

	stored, err := c.Get(ctx, catalog.Chapters, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Position)

	moved, err := c.Update(ctx, catalog.Chapters, chapter.ID, catalog.NodeInput{Position: pointer.To(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Position)
}

/*
TestCatalog_ChangeEvents reports every committed write, with one deletion
per level a cascade reached.
*/
func TestCatalog_ChangeEvents(t *testing.T) {
	ctx := context.Background()
	c, changes := newRecordingCatalog()

	ids := tree(t, c, 10)
	require.Len(t, changes.changes, 5)
	assert.Equal(t, content.Change{Kind: content.ChangeStructure, EntityType: content.EntityCategory, IDs: []int64{ids[0]}}, changes.changes[0])
	for i, level := range catalog.Levels {
		assert.Equal(t, content.Change{Kind: content.ChangeStructure, EntityType: level.Entity, IDs: []int64{ids[i+1]}}, changes.changes[i+1])
	}

	changes.changes = nil
	_, err := c.UpdateCategory(ctx, ids[0], catalog.CategoryInput{CategoryNumber: 10, TitleEn: "Renamed"})
	require.NoError(t, err)
	_, err = c.Update(ctx, catalog.Sections, ids[3], catalog.NodeInput{Number: pointer.To(2)})
	require.NoError(t, err)
	assert.Equal(t, []content.Change{
		{Kind: content.ChangeStructure, EntityType: content.EntityCategory, IDs: []int64{ids[0]}},
		{Kind: content.ChangeStructure, EntityType: content.EntitySection, IDs: []int64{ids[3]}},
	}, changes.changes)

	changes.changes = nil
	_, err = c.Update(ctx, catalog.Sections, 999, catalog.NodeInput{})
	require.Error(t, err)
	assert.Empty(t, changes.changes)

	require.NoError(t, c.Delete(ctx, catalog.Chapters, ids[2]))
	assert.Equal(t, []content.Change{
		{Kind: content.ChangeDeleted, EntityType: content.EntityChapter, IDs: []int64{ids[2]}},
		{Kind: content.ChangeDeleted, EntityType: content.EntitySection, IDs: []int64{ids[3]}},
		{Kind: content.ChangeDeleted, EntityType: content.EntityParagraph, IDs: []int64{ids[4]}},
	}, changes.changes)

	changes.changes = nil
	require.NoError(t, c.DeleteCategory(ctx, ids[0]))
	assert.Equal(t, []content.Change{
		{Kind: content.ChangeDeleted, EntityType: content.EntityCategory, IDs: []int64{ids[0]}},
		{Kind: content.ChangeDeleted, EntityType: content.EntityBook, IDs: []int64{ids[1]}},
	}, changes.changes)
}
