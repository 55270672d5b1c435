// Package feed implements the derived views computed over store state:
// repost resolution, feed ordering, verification status and follow
// suggestions. Every function is pure; none mutates the store.
package feed

import (
	"sort"
	"strings"

	"ripple/internal/models"
)

// VerificationThreshold is the combined follower count at which a user is
// automatically verified.
const VerificationThreshold = 1000

// DefaultRootHandle is the reserved handle that always carries owner
// privileges. Deployments may override it through configuration.
const DefaultRootHandle = "zezo"

// PostLookup resolves a post ID to a post. Absence is a valid outcome.
type PostLookup func(id string) (models.Post, bool)

// ResolveOriginal returns the post whose content should be rendered for p.
// For an original post that is p itself. For a repost it is the referenced
// post; ok is false when the original has been hard-deleted, which the
// presentation layer renders as "content no longer available". Repost
// chains are flattened at creation time, so a single hop always suffices.
func ResolveOriginal(p models.Post, lookup PostLookup) (models.Post, bool) {
	if !p.IsRepost() {
		return p, true
	}
	return lookup(p.RepostOf)
}

// RealFollowerCount counts the follow edges targeting the user.
func RealFollowerCount(follows []models.Follow, userID string) int {
	n := 0
	for _, f := range follows {
		if f.FollowingID == userID {
			n++
		}
	}
	return n
}

// TotalFollowerCount is the real follower count plus the user's synthetic
// counter.
func TotalFollowerCount(follows []models.Follow, synthetic map[string]int, userID string) int {
	return RealFollowerCount(follows, userID) + synthetic[userID]
}

// IsVerified reports whether the user carries the verified badge: a
// combined follower count at or above the threshold, or an explicit manual
// verification.
func IsVerified(userID string, follows []models.Follow, synthetic map[string]int, manual map[string]bool) bool {
	if manual[userID] {
		return true
	}
	return TotalFollowerCount(follows, synthetic, userID) >= VerificationThreshold
}

// IsOwner reports whether the user holds the owner role: the reserved root
// handle (case-insensitive) or explicit membership in the owner set.
func IsOwner(user models.User, owners map[string]bool, rootHandle string) bool {
	if rootHandle == "" {
		rootHandle = DefaultRootHandle
	}
	if strings.EqualFold(user.Username, rootHandle) {
		return true
	}
	return owners[user.ID]
}

// Order sorts posts for the global feed: creation time descending, ties
// broken by ascending ID so the order is reproducible. The input slice is
// not modified. There is no per-viewer filtering.
func Order(posts []models.Post) []models.Post {
	out := append([]models.Post(nil), posts...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AuthorPosts returns the posts authored by userID in feed order.
func AuthorPosts(posts []models.Post, userID string) []models.Post {
	var own []models.Post
	for _, p := range posts {
		if p.AuthorID == userID {
			own = append(own, p)
		}
	}
	return Order(own)
}

// LikeCount counts likes referencing the post.
func LikeCount(likes []models.Like, postID string) int {
	n := 0
	for _, l := range likes {
		if l.PostID == postID {
			n++
		}
	}
	return n
}

// CommentCount counts comments referencing the post.
func CommentCount(comments []models.Comment, postID string) int {
	n := 0
	for _, c := range comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

// RepostCount counts reposts referencing the post.
func RepostCount(posts []models.Post, postID string) int {
	n := 0
	for _, p := range posts {
		if p.RepostOf == postID {
			n++
		}
	}
	return n
}
