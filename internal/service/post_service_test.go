package service

import (
	"context"
	"testing"
	"time"

	"ripple/internal/models"
	"ripple/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPost(t *testing.T, st *store.Store, id, authorID, text string) models.Post {
	t.Helper()
	p := models.Post{ID: id, AuthorID: authorID, Text: text, CreatedAt: time.Now(), State: models.PostStateActive}
	st.AddPost(context.Background(), p)
	return p
}

func TestPostServiceCreateRequiresContent(t *testing.T) {
	svc := NewPostService(store.New(nil), "")
	_, err := svc.Create(context.Background(), CreatePostInput{AuthorID: "u1", Text: "   "})
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestPostServiceCreateMediaOnly(t *testing.T) {
	st := store.New(nil)
	svc := NewPostService(st, "")

	post, err := svc.Create(context.Background(), CreatePostInput{
		AuthorID:  "u1",
		MediaURL:  "https://cdn/pic.png",
		MediaType: models.MediaTypeImage,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PostStateActive, post.State)

	_, ok := st.GetPost(post.ID)
	assert.True(t, ok)
}

func TestPostServiceRepostFlattening(t *testing.T) {
	st := store.New(nil)
	svc := NewPostService(st, "")
	ctx := context.Background()
	original := seedPost(t, st, "p1", "u1", "original")

	repost, err := svc.Repost(ctx, "u2", original.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", repost.RepostOf)
	assert.Empty(t, repost.Text, "reposts carry no text of their own")

	// Reposting a repost targets the original: chains never nest.
	second, err := svc.Repost(ctx, "u3", repost.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", second.RepostOf)

	for _, p := range st.Posts() {
		if p.RepostOf != "" {
			target, ok := st.GetPost(p.RepostOf)
			require.True(t, ok)
			assert.False(t, target.IsRepost(), "repost targets are always originals")
		}
	}
}

func TestPostServiceRepostMissingTarget(t *testing.T) {
	svc := NewPostService(store.New(nil), "")
	_, err := svc.Repost(context.Background(), "u1", "ghost")
	assertAppErrCode(t, err, "NOT_FOUND")
}

func TestPostServiceLikeAttachesToOriginal(t *testing.T) {
	st := store.New(nil)
	svc := NewPostService(st, "")
	ctx := context.Background()
	seedPost(t, st, "p1", "u1", "original")
	repost, err := svc.Repost(ctx, "u2", "p1")
	require.NoError(t, err)

	liked, err := svc.Like(ctx, "u3", repost.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, st.HasLike("u3", "p1"), "the like lands on the original, not the repost")
	assert.False(t, st.HasLike("u3", repost.ID))
}

func TestPostServiceCommentAttachesToOriginal(t *testing.T) {
	st := store.New(nil)
	svc := NewPostService(st, "")
	ctx := context.Background()
	seedPost(t, st, "p1", "u1", "original")
	repost, err := svc.Repost(ctx, "u2", "p1")
	require.NoError(t, err)

	comment, err := svc.Comment(ctx, "u3", repost.ID, "well said")
	require.NoError(t, err)
	assert.Equal(t, "p1", comment.PostID)

	_, err = svc.Comment(ctx, "u3", repost.ID, "  ")
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestPostServiceDeleteAuthorization(t *testing.T) {
	st := store.New(nil)
	seedUser(t, st, "author", "author")
	seedUser(t, st, "random", "random")
	seedUser(t, st, "boss", "boss")
	st.ToggleOwnerStatus(context.Background(), "boss")
	svc := NewPostService(st, "")
	ctx := context.Background()

	seedPost(t, st, "p1", "author", "mine")
	seedPost(t, st, "p2", "author", "mine too")

	err := svc.Delete(ctx, "random", "p1")
	assertAppErrCode(t, err, "UNAUTHORIZED")
	_, ok := st.GetPost("p1")
	assert.True(t, ok)

	require.NoError(t, svc.Delete(ctx, "author", "p1"))
	_, ok = st.GetPost("p1")
	assert.False(t, ok)

	// An owner can delete anyone's post.
	require.NoError(t, svc.Delete(ctx, "boss", "p2"))
	_, ok = st.GetPost("p2")
	assert.False(t, ok)

	// A missing post is silent absence.
	require.NoError(t, svc.Delete(ctx, "author", "ghost"))
}

func TestPostServiceAdminOpsAreOwnerGated(t *testing.T) {
	st := store.New(nil)
	seedUser(t, st, "u1", "pleb")
	seedUser(t, st, "root", "Zezo")
	svc := NewPostService(st, "")
	ctx := context.Background()

	seedPost(t, st, "p1", "u1", "spicy")

	err := svc.AdminSoftDelete(ctx, "u1", "p1")
	assertAppErrCode(t, err, "UNAUTHORIZED")
	err = svc.AdminEditText(ctx, "u1", "p1", "censored")
	assertAppErrCode(t, err, "UNAUTHORIZED")

	// The reserved handle has the owner role without any set entry.
	require.NoError(t, svc.AdminEditText(ctx, "root", "p1", "edited"))
	got, _ := st.GetPost("p1")
	assert.Equal(t, "edited", got.Text)

	require.NoError(t, svc.AdminSoftDelete(ctx, "root", "p1"))
	got, _ = st.GetPost("p1")
	assert.Equal(t, models.TombstoneText, got.Text)
}

func TestPostServiceAdminSoftDeleteRepost(t *testing.T) {
	st := store.New(nil)
	seedUser(t, st, "root", "zezo")
	svc := NewPostService(st, "")
	ctx := context.Background()

	seedPost(t, st, "p1", "u1", "original")
	repost, err := svc.Repost(ctx, "u2", "p1")
	require.NoError(t, err)

	err = svc.AdminSoftDelete(ctx, "root", repost.ID)
	assertAppErrCode(t, err, "ILLEGAL_STATE")
}
