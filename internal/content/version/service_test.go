// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package version_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/content"
	"github.com/taibuivan/folio/internal/content/version"
	"github.com/taibuivan/folio/internal/platform/apperr"
)

var draft = version.Intro{TitleEn: "T-en", TitleNl: "T-nl", IntroEn: "I-en", IntroNl: "I-nl"}

/*
TestChain_Create_RoundTrip stores the fields unchanged and numbers from 1.
*/
func TestChain_Create_RoundTrip(t *testing.T) {
	ctx := context.Background()
	chain := newSectionChain(newMemStore[version.Intro](5), nil)

	created, err := chain.Create(ctx, 5, draft, 7)
	require.NoError(t, err)

	history, err := chain.History(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history, 1)

	assert.Equal(t, 1, history[0].VersionNumber)
	assert.Equal(t, draft, history[0].Content)
	assert.Equal(t, int64(7), history[0].CreatedBy)
	assert.Equal(t, created.ID, history[0].ID)
}

/*
TestChain_Create_Sequence keeps numbers gap-free and moves the pointer.
*/
func TestChain_Create_Sequence(t *testing.T) {
	ctx := context.Background()
	chain := newSectionChain(newMemStore[version.Intro](5), nil)

	var last *version.Version[version.Intro]
	for range 3 {
		created, err := chain.Create(ctx, 5, draft, 7)
		require.NoError(t, err)
		last = created
	}

	history, err := chain.History(ctx, 5)
	require.NoError(t, err)
	numbers := make([]int, 0, len(history))
	for _, v := range history {
		numbers = append(numbers, v.VersionNumber)
	}
	assert.Equal(t, []int{3, 2, 1}, numbers)

	current, err := chain.Current(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, last.ID, current.ID)

	latest, err := chain.Latest(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, latest.VersionNumber)
}

/*
TestChain_Create_TitleFallback fills the missing locale.
*/
func TestChain_Create_TitleFallback(t *testing.T) {
	chain := newSectionChain(newMemStore[version.Intro](5), nil)

	created, err := chain.Create(context.Background(), 5, version.Intro{TitleNl: "  Alleen  Nederlands "}, 7)
	require.NoError(t, err)

	assert.Equal(t, "Alleen Nederlands", created.Content.TitleEn)
	assert.Equal(t, "Alleen Nederlands", created.Content.TitleNl)
}

/*
TestChain_Create_Rejects covers validation and a missing owner.
*/
func TestChain_Create_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		ownerID int64
		input   version.Intro
		author  int64
		code    string
	}{
		{"no_titles", 5, version.Intro{IntroEn: "body"}, 7, apperr.CodeValidation},
		{"no_author", 5, draft, 0, apperr.CodeValidation},
		{"missing_owner", 99, draft, 7, apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore[version.Intro](5)
			chain := newSectionChain(store, nil)

			_, err := chain.Create(context.Background(), tt.ownerID, tt.input, tt.author)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)

			history, _ := chain.History(context.Background(), 5)
			assert.Empty(t, history)
		})
	}
}

/*
TestChain_Create_Collision retries once, then reports a conflict.
*/
func TestChain_Create_Collision(t *testing.T) {
	ctx := context.Background()

	store := newMemStore[version.Intro](5)
	store.collisions = 1
	chain := newSectionChain(store, nil)

	created, err := chain.Create(ctx, 5, draft, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, created.VersionNumber)

	store.collisions = 2
	_, err = chain.Create(ctx, 5, draft, 7)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict), "got %v", err)

	current, _ := chain.Current(ctx, 5)
	assert.Equal(t, created.ID, current.ID)
}

/*
TestChain_Repoint restores an earlier version and refuses foreign ones.
*/
func TestChain_Repoint(t *testing.T) {
	ctx := context.Background()
	chain := newSectionChain(newMemStore[version.Intro](5, 6), nil)

	first, err := chain.Create(ctx, 5, draft, 7)
	require.NoError(t, err)
	_, err = chain.Create(ctx, 5, draft, 7)
	require.NoError(t, err)
	foreign, err := chain.Create(ctx, 6, draft, 7)
	require.NoError(t, err)

	restored, err := chain.Repoint(ctx, 5, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.VersionNumber)

	current, _ := chain.Current(ctx, 5)
	assert.Equal(t, first.ID, current.ID)

	_, err = chain.Repoint(ctx, 5, foreign.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidState), "got %v", err)

	_, err = chain.Repoint(ctx, 5, 999)
	assert.True(t, apperr.IsNotFound(err))

	_, err = chain.Repoint(ctx, 42, first.ID)
	assert.True(t, apperr.IsNotFound(err))

	current, _ = chain.Current(ctx, 5)
	assert.Equal(t, first.ID, current.ID, "failed repoints leave the pointer alone")
}

/*
TestChain_Published is empty until the status gate says PUBLISHED.
*/
func TestChain_Published(t *testing.T) {
	ctx := context.Background()
	store := newMemStore[version.Intro](5, 6)
	status := stubStatus{}
	chain := newSectionChain(store, status)

	created, err := chain.Create(ctx, 5, draft, 7)
	require.NoError(t, err)

	published, err := chain.Published(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, published)

	status[5] = true
	published, err = chain.Published(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, created.ID, published.ID)

	status[6] = true
	published, err = chain.Published(ctx, 6)
	require.NoError(t, err)
	assert.Nil(t, published, "published without any version")
}

/*
TestChain_Owns checks chain membership.
*/
func TestChain_Owns(t *testing.T) {
	ctx := context.Background()
	chain := newSectionChain(newMemStore[version.Intro](5, 6), nil)

	created, err := chain.Create(ctx, 5, draft, 7)
	require.NoError(t, err)

	owns, err := chain.Owns(ctx, 5, created.ID)
	require.NoError(t, err)
	assert.True(t, owns)

	owns, err = chain.Owns(ctx, 6, created.ID)
	require.NoError(t, err)
	assert.False(t, owns)

	owns, err = chain.Owns(ctx, 5, 999)
	require.NoError(t, err)
	assert.False(t, owns)
}

/*
TestChain_ChangeEvents reports every committed pointer move and nothing else.
*/
func TestChain_ChangeEvents(t *testing.T) {
	ctx := context.Background()

	var changes []content.Change
	listener := content.ChangeListenerFunc(func(_ context.Context, change content.Change) {
		changes = append(changes, change)
	})
	chain := version.NewChain(version.SectionLevel, version.Store[version.Intro](newMemStore[version.Intro](5)),
		passthroughTx{}, stubStatus{}, listener, discardLogger())

	first, err := chain.Create(ctx, 5, draft, 7)
	require.NoError(t, err)
	_, err = chain.Repoint(ctx, 5, first.ID)
	require.NoError(t, err)

	_, err = chain.Create(ctx, 5, version.Intro{}, 7)
	require.Error(t, err)
	_, err = chain.Repoint(ctx, 5, 999)
	require.Error(t, err)

	versioned := content.Change{Kind: content.ChangeVersioned, EntityType: content.EntitySection, IDs: []int64{5}}
	assert.Equal(t, []content.Change{versioned, versioned}, changes)
}
