// Package store implements the in-memory data store backing the application.
//
// The store owns every entity collection, enforces the cross-entity
// consistency rules (cascading delete, tombstoning, toggle uniqueness) and
// serializes a full snapshot after each mutation. It expects a single
// logical caller: it is not safe for concurrent use. A future multi-actor
// deployment should funnel all mutations through one writer goroutine.
package store

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/observability"
)

// SnapshotWriter persists a snapshot document.
type SnapshotWriter interface {
	Write(doc *Snapshot) error
}

// Store holds the application state and applies mutations to it.
type Store struct {
	users    []models.User
	posts    []models.Post
	likes    []models.Like
	follows  []models.Follow
	comments []models.Comment

	manualVerifications map[string]bool
	syntheticFollowers  map[string]int
	owners              map[string]bool

	conversations []models.Conversation
	messages      []models.Message

	writer         SnapshotWriter
	logger         *observability.StoreLogger
	lastPersistErr error
}

// New returns an empty Store that persists snapshots through writer.
// A nil writer disables persistence.
func New(writer SnapshotWriter) *Store {
	return &Store{
		manualVerifications: make(map[string]bool),
		syntheticFollowers:  make(map[string]int),
		owners:              make(map[string]bool),
		writer:              writer,
		logger:              observability.NewStoreLogger("app_data"),
	}
}

// NewFromSnapshot returns a Store populated from a previously loaded
// snapshot document.
func NewFromSnapshot(doc *Snapshot, writer SnapshotWriter) *Store {
	s := New(writer)
	s.users = append(s.users, doc.Users...)
	s.posts = append(s.posts, doc.Posts...)
	s.likes = append(s.likes, doc.Likes...)
	s.follows = append(s.follows, doc.Follows...)
	s.comments = append(s.comments, doc.Comments...)
	s.conversations = append(s.conversations, doc.Conversations...)
	s.messages = append(s.messages, doc.Messages...)
	for _, id := range doc.ManualVerifications {
		s.manualVerifications[id] = true
	}
	for id, n := range doc.SyntheticFollowers {
		if n > 0 {
			s.syntheticFollowers[id] = n
		}
	}
	for _, id := range doc.Owners {
		s.owners[id] = true
	}
	return s
}

// persist serializes the full state after a mutation. A write failure is
// surfaced once as a warning and does not roll back the in-memory change;
// the session continues with memory as authoritative.
func (s *Store) persist(ctx context.Context, operation string) {
	if s.writer == nil {
		return
	}
	if err := s.writer.Write(s.snapshot()); err != nil {
		s.lastPersistErr = models.NewPersistenceError(err)
		s.logger.LogWarning(ctx, s.lastPersistErr, operation)
		return
	}
	s.lastPersistErr = nil
}

// LastPersistError returns the error from the most recent snapshot write,
// or nil if it succeeded. The presentation layer may surface it as a
// non-fatal warning.
func (s *Store) LastPersistError() error {
	return s.lastPersistErr
}

// AddUser appends a user record. Username uniqueness is the caller's
// responsibility (signup and profile update paths).
func (s *Store) AddUser(ctx context.Context, user models.User) {
	s.users = append(s.users, user)
	s.logger.LogMutation(ctx, "add_user", map[string]interface{}{"user_id": user.ID})
	s.persist(ctx, "add_user")
}

// AddPost appends a post record.
func (s *Store) AddPost(ctx context.Context, post models.Post) {
	if post.State == "" {
		post.State = models.PostStateActive
	}
	s.posts = append(s.posts, post)
	s.logger.LogMutation(ctx, "add_post", map[string]interface{}{"post_id": post.ID})
	s.persist(ctx, "add_post")
}

// AddComment appends a comment record.
func (s *Store) AddComment(ctx context.Context, comment models.Comment) {
	s.comments = append(s.comments, comment)
	s.logger.LogMutation(ctx, "add_comment", map[string]interface{}{"comment_id": comment.ID})
	s.persist(ctx, "add_comment")
}

// ToggleLike inserts the (user, post) like if absent and removes it if
// present. Applying it twice restores the original state. The return value
// reports whether the like exists after the call.
func (s *Store) ToggleLike(ctx context.Context, userID, postID string) bool {
	for i, l := range s.likes {
		if l.UserID == userID && l.PostID == postID {
			s.likes = append(s.likes[:i], s.likes[i+1:]...)
			s.persist(ctx, "toggle_like")
			return false
		}
	}
	s.likes = append(s.likes, models.Like{UserID: userID, PostID: postID})
	s.persist(ctx, "toggle_like")
	return true
}

// ToggleFollow inserts the follow edge if absent and removes it if present.
// The return value reports whether the edge exists after the call.
func (s *Store) ToggleFollow(ctx context.Context, followerID, followingID string) bool {
	for i, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			s.follows = append(s.follows[:i], s.follows[i+1:]...)
			s.persist(ctx, "toggle_follow")
			return false
		}
	}
	s.follows = append(s.follows, models.Follow{FollowerID: followerID, FollowingID: followingID})
	s.persist(ctx, "toggle_follow")
	return true
}

// ToggleManualVerification toggles the user's membership in the
// manually-verified set and reports the resulting membership.
func (s *Store) ToggleManualVerification(ctx context.Context, userID string) bool {
	verified := !s.manualVerifications[userID]
	if verified {
		s.manualVerifications[userID] = true
	} else {
		delete(s.manualVerifications, userID)
	}
	s.persist(ctx, "toggle_manual_verification")
	return verified
}

// ToggleOwnerStatus toggles the user's membership in the owner set and
// reports the resulting membership.
func (s *Store) ToggleOwnerStatus(ctx context.Context, userID string) bool {
	owner := !s.owners[userID]
	if owner {
		s.owners[userID] = true
	} else {
		delete(s.owners, userID)
	}
	s.persist(ctx, "toggle_owner_status")
	return owner
}

// AddSyntheticFollowers adds count synthetic followers to the user's
// counter. A non-positive count is a no-op.
func (s *Store) AddSyntheticFollowers(ctx context.Context, userID string, count int) {
	if count <= 0 {
		return
	}
	s.syntheticFollowers[userID] += count
	s.logger.LogMutation(ctx, "add_synthetic_followers", map[string]interface{}{
		"user_id": userID,
		"count":   count,
	})
	s.persist(ctx, "add_synthetic_followers")
}

// RemoveSyntheticFollowers subtracts count synthetic followers from the
// user's counter, clamped at zero. A non-positive count is a no-op.
func (s *Store) RemoveSyntheticFollowers(ctx context.Context, userID string, count int) {
	if count <= 0 {
		return
	}
	next := s.syntheticFollowers[userID] - count
	if next <= 0 {
		delete(s.syntheticFollowers, userID)
	} else {
		s.syntheticFollowers[userID] = next
	}
	s.persist(ctx, "remove_synthetic_followers")
}

// UpdateUser merges a partial profile update into the user record. When the
// update changes the username, it fails with a validation error if another
// user already holds that username (case-insensitive). Updating a missing
// user is a silent no-op: absence means already deleted.
func (s *Store) UpdateUser(ctx context.Context, userID string, update models.UserUpdate) error {
	if update.Username != nil {
		lower := strings.ToLower(*update.Username)
		for _, u := range s.users {
			if u.ID != userID && strings.ToLower(u.Username) == lower {
				return models.NewValidationError("Username is already taken")
			}
		}
	}
	for i := range s.users {
		if s.users[i].ID == userID {
			update.Apply(&s.users[i])
			s.logger.LogMutation(ctx, "update_user", map[string]interface{}{"user_id": userID})
			s.persist(ctx, "update_user")
			return nil
		}
	}
	return nil
}

// HardDeletePost removes a post entirely. Deleting an original removes the
// post, every repost of it, and every like and comment referencing any
// removed post. Deleting a repost removes only that single record. The
// removal set is computed first and applied in one pass.
func (s *Store) HardDeletePost(ctx context.Context, postID string) {
	target, ok := s.GetPost(postID)
	if !ok {
		return
	}

	removed := map[string]bool{postID: true}
	if !target.IsRepost() {
		for _, p := range s.posts {
			if p.RepostOf == postID {
				removed[p.ID] = true
			}
		}
	}
	s.applyPostRemoval(removed)

	s.logger.LogMutation(ctx, "hard_delete_post", map[string]interface{}{
		"post_id":       postID,
		"removed_posts": len(removed),
	})
	s.persist(ctx, "hard_delete_post")
}

// AdminSoftDeletePost tombstones a post in place: the text becomes the
// deletion marker, media is cleared, and the ID and any reposts of it are
// preserved. Soft-deleting a repost is an illegal state; soft-deleting a
// missing post is a no-op.
func (s *Store) AdminSoftDeletePost(ctx context.Context, postID string) error {
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		if s.posts[i].IsRepost() {
			err := models.NewIllegalStateError("Cannot soft-delete a repost")
			s.logger.LogError(ctx, err, "admin_soft_delete_post")
			return err
		}
		s.posts[i].Tombstone()
		s.logger.LogMutation(ctx, "admin_soft_delete_post", map[string]interface{}{"post_id": postID})
		s.persist(ctx, "admin_soft_delete_post")
		return nil
	}
	return nil
}

// AdminEditPostText replaces the post text unconditionally. This is a
// privileged override with no ownership check.
func (s *Store) AdminEditPostText(ctx context.Context, postID, newText string) {
	for i := range s.posts {
		if s.posts[i].ID == postID {
			s.posts[i].Text = newText
			s.logger.LogMutation(ctx, "admin_edit_post_text", map[string]interface{}{"post_id": postID})
			s.persist(ctx, "admin_edit_post_text")
			return
		}
	}
}

// HardDeleteUser removes the user and everything that depends on them: all
// posts they authored, every repost of those posts, every like and comment
// either authored by the user or referencing a removed post, every follow
// edge touching the user, and their entries in the verification, owner and
// synthetic-follower collections. The removal sets are computed from the
// current state first, then applied in one atomic pass.
func (s *Store) HardDeleteUser(ctx context.Context, userID string) {
	authored := make(map[string]bool)
	for _, p := range s.posts {
		if p.AuthorID == userID {
			authored[p.ID] = true
		}
	}
	removedPosts := make(map[string]bool, len(authored))
	for id := range authored {
		removedPosts[id] = true
	}
	for _, p := range s.posts {
		if p.RepostOf != "" && authored[p.RepostOf] {
			removedPosts[p.ID] = true
		}
	}

	users := s.users[:0]
	for _, u := range s.users {
		if u.ID != userID {
			users = append(users, u)
		}
	}
	s.users = users

	posts := s.posts[:0]
	for _, p := range s.posts {
		if !removedPosts[p.ID] {
			posts = append(posts, p)
		}
	}
	s.posts = posts

	likes := s.likes[:0]
	for _, l := range s.likes {
		if l.UserID != userID && !removedPosts[l.PostID] {
			likes = append(likes, l)
		}
	}
	s.likes = likes

	comments := s.comments[:0]
	for _, c := range s.comments {
		if c.AuthorID != userID && !removedPosts[c.PostID] {
			comments = append(comments, c)
		}
	}
	s.comments = comments

	follows := s.follows[:0]
	for _, f := range s.follows {
		if f.FollowerID != userID && f.FollowingID != userID {
			follows = append(follows, f)
		}
	}
	s.follows = follows

	delete(s.manualVerifications, userID)
	delete(s.syntheticFollowers, userID)
	delete(s.owners, userID)

	s.logger.LogMutation(ctx, "hard_delete_user", map[string]interface{}{
		"user_id":       userID,
		"removed_posts": len(removedPosts),
	})
	s.persist(ctx, "hard_delete_user")
}

// applyPostRemoval drops the given posts and every like and comment
// referencing them.
func (s *Store) applyPostRemoval(removed map[string]bool) {
	posts := s.posts[:0]
	for _, p := range s.posts {
		if !removed[p.ID] {
			posts = append(posts, p)
		}
	}
	s.posts = posts

	likes := s.likes[:0]
	for _, l := range s.likes {
		if !removed[l.PostID] {
			likes = append(likes, l)
		}
	}
	s.likes = likes

	comments := s.comments[:0]
	for _, c := range s.comments {
		if !removed[c.PostID] {
			comments = append(comments, c)
		}
	}
	s.comments = comments
}

// AddConversation appends a conversation record.
func (s *Store) AddConversation(ctx context.Context, conv models.Conversation) {
	s.conversations = append(s.conversations, conv)
	s.logger.LogMutation(ctx, "add_conversation", map[string]interface{}{"conversation_id": conv.ID})
	s.persist(ctx, "add_conversation")
}

// AppendMessage appends a message and bumps the parent conversation's
// LastMessageAt. The field never moves backward. The caller is responsible
// for checking that the conversation exists.
func (s *Store) AppendMessage(ctx context.Context, msg models.Message) {
	s.messages = append(s.messages, msg)
	for i := range s.conversations {
		if s.conversations[i].ID == msg.ConversationID {
			if msg.CreatedAt.After(s.conversations[i].LastMessageAt) {
				s.conversations[i].LastMessageAt = msg.CreatedAt
			}
			break
		}
	}
	s.logger.LogMutation(ctx, "append_message", map[string]interface{}{
		"conversation_id": msg.ConversationID,
		"message_id":      msg.ID,
	})
	s.persist(ctx, "append_message")
}

// GetUser looks up a user by ID. Absence is a valid outcome, not an error.
func (s *Store) GetUser(id string) (models.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// GetUserByUsername looks up a user by username, case-insensitively.
func (s *Store) GetUserByUsername(username string) (models.User, bool) {
	lower := strings.ToLower(username)
	for _, u := range s.users {
		if strings.ToLower(u.Username) == lower {
			return u, true
		}
	}
	return models.User{}, false
}

// GetPost looks up a post by ID. Absence is a valid outcome, not an error.
func (s *Store) GetPost(id string) (models.Post, bool) {
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// GetConversation looks up a conversation by ID.
func (s *Store) GetConversation(id string) (models.Conversation, bool) {
	for _, c := range s.conversations {
		if c.ID == id {
			return c, true
		}
	}
	return models.Conversation{}, false
}

// HasLike reports whether the (user, post) like exists.
func (s *Store) HasLike(userID, postID string) bool {
	for _, l := range s.likes {
		if l.UserID == userID && l.PostID == postID {
			return true
		}
	}
	return false
}

// HasFollow reports whether the follow edge exists.
func (s *Store) HasFollow(followerID, followingID string) bool {
	for _, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return true
		}
	}
	return false
}

// IsManuallyVerified reports membership in the manually-verified set.
func (s *Store) IsManuallyVerified(userID string) bool {
	return s.manualVerifications[userID]
}

// IsOwnerListed reports membership in the owner set.
func (s *Store) IsOwnerListed(userID string) bool {
	return s.owners[userID]
}

// SyntheticFollowerCount returns the synthetic-follower counter for the
// user, zero if absent.
func (s *Store) SyntheticFollowerCount(userID string) int {
	return s.syntheticFollowers[userID]
}

// Users returns a copy of the user collection.
func (s *Store) Users() []models.User {
	return append([]models.User(nil), s.users...)
}

// Posts returns a copy of the post collection.
func (s *Store) Posts() []models.Post {
	return append([]models.Post(nil), s.posts...)
}

// Likes returns a copy of the like collection.
func (s *Store) Likes() []models.Like {
	return append([]models.Like(nil), s.likes...)
}

// Follows returns a copy of the follow collection.
func (s *Store) Follows() []models.Follow {
	return append([]models.Follow(nil), s.follows...)
}

// Comments returns a copy of the comment collection.
func (s *Store) Comments() []models.Comment {
	return append([]models.Comment(nil), s.comments...)
}

// Conversations returns a copy of the conversation collection.
func (s *Store) Conversations() []models.Conversation {
	return append([]models.Conversation(nil), s.conversations...)
}

// Messages returns a copy of the message collection.
func (s *Store) Messages() []models.Message {
	return append([]models.Message(nil), s.messages...)
}

// ManualVerificationSet returns a copy of the manually-verified user IDs.
func (s *Store) ManualVerificationSet() map[string]bool {
	out := make(map[string]bool, len(s.manualVerifications))
	for id := range s.manualVerifications {
		out[id] = true
	}
	return out
}

// OwnerSet returns a copy of the owner user IDs.
func (s *Store) OwnerSet() map[string]bool {
	out := make(map[string]bool, len(s.owners))
	for id := range s.owners {
		out[id] = true
	}
	return out
}

// SyntheticFollowers returns a copy of the synthetic-follower counters.
func (s *Store) SyntheticFollowers() map[string]int {
	out := make(map[string]int, len(s.syntheticFollowers))
	for id, n := range s.syntheticFollowers {
		out[id] = n
	}
	return out
}

// snapshot builds the serializable document from the current state.
func (s *Store) snapshot() *Snapshot {
	doc := &Snapshot{
		Users:               append([]models.User(nil), s.users...),
		Posts:               append([]models.Post(nil), s.posts...),
		Likes:               append([]models.Like(nil), s.likes...),
		Follows:             append([]models.Follow(nil), s.follows...),
		Comments:            append([]models.Comment(nil), s.comments...),
		ManualVerifications: sortedIDs(s.manualVerifications),
		SyntheticFollowers:  s.SyntheticFollowers(),
		Owners:              sortedIDs(s.owners),
		Conversations:       append([]models.Conversation(nil), s.conversations...),
		Messages:            append([]models.Message(nil), s.messages...),
	}
	doc.normalize()
	return doc
}

// Touch is a helper for callers that mutated nothing but still want the
// current state flushed, e.g. after loading a migrated legacy snapshot.
func (s *Store) Touch(ctx context.Context) {
	s.persist(ctx, "touch")
}
