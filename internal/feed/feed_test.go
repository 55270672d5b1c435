package feed

import (
	"fmt"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(posts ...models.Post) PostLookup {
	byID := make(map[string]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	return func(id string) (models.Post, bool) {
		p, ok := byID[id]
		return p, ok
	}
}

func TestResolveOriginalPassesThroughOriginals(t *testing.T) {
	p := models.Post{ID: "p1", Text: "hello"}
	got, ok := ResolveOriginal(p, lookupFrom())
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestResolveOriginalFollowsOneHop(t *testing.T) {
	original := models.Post{ID: "p1", Text: "hello"}
	repost := models.Post{ID: "r1", RepostOf: "p1"}

	got, ok := ResolveOriginal(repost, lookupFrom(original))
	require.True(t, ok)
	assert.Equal(t, original, got)
}

func TestResolveOriginalUnavailable(t *testing.T) {
	repost := models.Post{ID: "r1", RepostOf: "gone"}
	_, ok := ResolveOriginal(repost, lookupFrom())
	assert.False(t, ok, "a deleted original renders as unavailable, never a crash")
}

func TestOrderNewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{ID: "old", CreatedAt: base.Add(-time.Hour)},
		{ID: "new", CreatedAt: base.Add(time.Hour)},
		{ID: "mid", CreatedAt: base},
	}

	got := Order(posts)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{got[0].ID, got[1].ID, got[2].ID})
	// The input is untouched.
	assert.Equal(t, "old", posts[0].ID)
}

func TestOrderTieBreakAscendingID(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{ID: "b", CreatedAt: at},
		{ID: "a", CreatedAt: at},
		{ID: "c", CreatedAt: at},
	}

	got := Order(posts)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestVerificationThresholds(t *testing.T) {
	tests := []struct {
		name      string
		real      int
		synthetic int
		manual    bool
		verified  bool
	}{
		{"combined at threshold", 850, 150, false, true},
		{"one below threshold", 999, 0, false, false},
		{"real at threshold", 1000, 0, false, true},
		{"manual override", 0, 0, true, true},
		{"nothing", 0, 0, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var follows []models.Follow
			for i := 0; i < tc.real; i++ {
				follows = append(follows, models.Follow{
					FollowerID:  fmt.Sprintf("fan-%d", i),
					FollowingID: "target",
				})
			}
			synthetic := map[string]int{"target": tc.synthetic}
			manual := map[string]bool{}
			if tc.manual {
				manual["target"] = true
			}
			assert.Equal(t, tc.verified, IsVerified("target", follows, synthetic, manual))
		})
	}
}

func TestIsOwner(t *testing.T) {
	owners := map[string]bool{"u2": true}

	assert.True(t, IsOwner(models.User{ID: "u1", Username: "Zezo"}, owners, ""),
		"the reserved handle is an owner regardless of case")
	assert.True(t, IsOwner(models.User{ID: "u2", Username: "someone"}, owners, ""))
	assert.False(t, IsOwner(models.User{ID: "u3", Username: "nobody"}, owners, ""))

	// A configured root handle replaces the default.
	assert.True(t, IsOwner(models.User{ID: "u4", Username: "ADMIN"}, nil, "admin"))
	assert.False(t, IsOwner(models.User{ID: "u1", Username: "zezo"}, nil, "admin"))
}

func TestCounts(t *testing.T) {
	likes := []models.Like{{UserID: "a", PostID: "p1"}, {UserID: "b", PostID: "p1"}, {UserID: "a", PostID: "p2"}}
	comments := []models.Comment{{ID: "c1", PostID: "p1"}}
	posts := []models.Post{{ID: "p1"}, {ID: "r1", RepostOf: "p1"}, {ID: "r2", RepostOf: "p1"}}

	assert.Equal(t, 2, LikeCount(likes, "p1"))
	assert.Equal(t, 1, CommentCount(comments, "p1"))
	assert.Equal(t, 2, RepostCount(posts, "p1"))
}

func TestAuthorPosts(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := []models.Post{
		{ID: "p1", AuthorID: "u1", CreatedAt: base},
		{ID: "p2", AuthorID: "u2", CreatedAt: base},
		{ID: "p3", AuthorID: "u1", CreatedAt: base.Add(time.Hour)},
	}

	got := AuthorPosts(posts, "u1")
	require.Len(t, got, 2)
	assert.Equal(t, "p3", got[0].ID)
	assert.Equal(t, "p1", got[1].ID)
}
