package service

import (
	"context"
	"strings"
	"time"

	"ripple/internal/feed"
	"ripple/internal/models"
	"ripple/internal/store"

	"github.com/google/uuid"
)

// PostService provides post business logic: creation, reposting, likes,
// comments, deletion and the owner-only moderation overrides.
type PostService struct {
	store      *store.Store
	rootHandle string
}

// NewPostService returns a new PostService. rootHandle is the reserved
// owner handle; empty selects the default.
func NewPostService(st *store.Store, rootHandle string) *PostService {
	return &PostService{store: st, rootHandle: rootHandle}
}

// CreatePostInput is the input for creating an original post.
type CreatePostInput struct {
	AuthorID  string
	Text      string
	MediaURL  string
	MediaType models.MediaType
}

// Create creates an original post. A post needs text or media.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (models.Post, error) {
	if strings.TrimSpace(in.Text) == "" && in.MediaURL == "" {
		return models.Post{}, models.NewValidationError("A post needs text or media")
	}
	post := models.Post{
		ID:        uuid.NewString(),
		AuthorID:  in.AuthorID,
		Text:      in.Text,
		MediaURL:  in.MediaURL,
		MediaType: in.MediaType,
		CreatedAt: time.Now().UTC(),
		State:     models.PostStateActive,
	}
	s.store.AddPost(ctx, post)
	return post, nil
}

// Repost creates a content-free repost of the given post. Reposting a
// repost targets its original, so chains stay flattened to a single hop.
func (s *PostService) Repost(ctx context.Context, authorID, postID string) (models.Post, error) {
	target, ok := s.store.GetPost(postID)
	if !ok {
		return models.Post{}, models.NewNotFoundError("Post", postID)
	}
	originalID := target.ID
	if target.IsRepost() {
		originalID = target.RepostOf
		if _, ok := s.store.GetPost(originalID); !ok {
			return models.Post{}, models.NewNotFoundError("Post", originalID)
		}
	}
	repost := models.Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
		RepostOf:  originalID,
		State:     models.PostStateActive,
	}
	s.store.AddPost(ctx, repost)
	return repost, nil
}

// Like toggles the actor's like on the post. Likes always attach to the
// resolved original, so liking a repost counts toward its source.
func (s *PostService) Like(ctx context.Context, actorID, postID string) (bool, error) {
	target, ok := s.store.GetPost(postID)
	if !ok {
		return false, models.NewNotFoundError("Post", postID)
	}
	original, ok := feed.ResolveOriginal(target, s.store.GetPost)
	if !ok {
		return false, models.NewNotFoundError("Post", target.RepostOf)
	}
	return s.store.ToggleLike(ctx, actorID, original.ID), nil
}

// Comment adds a comment to the post's resolved original.
func (s *PostService) Comment(ctx context.Context, authorID, postID, text string) (models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return models.Comment{}, models.NewValidationError("Comment text is required")
	}
	target, ok := s.store.GetPost(postID)
	if !ok {
		return models.Comment{}, models.NewNotFoundError("Post", postID)
	}
	original, ok := feed.ResolveOriginal(target, s.store.GetPost)
	if !ok {
		return models.Comment{}, models.NewNotFoundError("Post", target.RepostOf)
	}
	comment := models.Comment{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		PostID:    original.ID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.store.AddComment(ctx, comment)
	return comment, nil
}

// Delete hard-deletes a post. Only the author or an owner may delete it.
// A missing post is silent absence, not an error.
func (s *PostService) Delete(ctx context.Context, actorID, postID string) error {
	post, ok := s.store.GetPost(postID)
	if !ok {
		return nil
	}
	if post.AuthorID != actorID && !s.actorIsOwner(actorID) {
		return models.NewUnauthorizedError("Only the author or an owner can delete this post")
	}
	s.store.HardDeletePost(ctx, postID)
	return nil
}

// AdminSoftDelete tombstones a post. Owner-only; soft-deleting a repost is
// an illegal state.
func (s *PostService) AdminSoftDelete(ctx context.Context, actorID, postID string) error {
	if !s.actorIsOwner(actorID) {
		return models.NewUnauthorizedError("Owner role required")
	}
	return s.store.AdminSoftDeletePost(ctx, postID)
}

// AdminEditText replaces a post's text. Owner-only; there is no ownership
// check against the original author.
func (s *PostService) AdminEditText(ctx context.Context, actorID, postID, newText string) error {
	if !s.actorIsOwner(actorID) {
		return models.NewUnauthorizedError("Owner role required")
	}
	s.store.AdminEditPostText(ctx, postID, newText)
	return nil
}

func (s *PostService) actorIsOwner(actorID string) bool {
	actor, ok := s.store.GetUser(actorID)
	if !ok {
		return false
	}
	return feed.IsOwner(actor, s.store.OwnerSet(), s.rootHandle)
}
