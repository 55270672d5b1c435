package models

import "time"

// MediaType identifies the kind of media attached to a post.
type MediaType string

const (
	// MediaTypeImage marks an attached image.
	MediaTypeImage MediaType = "image"
	// MediaTypeVideo marks an attached video.
	MediaTypeVideo MediaType = "video"
)

// PostState represents the moderation state of a post.
type PostState string

const (
	// PostStateActive is the normal state of a post.
	PostStateActive PostState = "active"
	// PostStateTombstoned marks a post soft-deleted by an owner. The record
	// keeps its identity and children; only the content is replaced.
	PostStateTombstoned PostState = "tombstoned"
)

// TombstoneText replaces the text of a soft-deleted post.
const TombstoneText = "deleted by admin"

// Post represents a unit of user-authored content, or a content-free repost
// of another post.
//
// Invariant: RepostOf, when set, always references a post whose own RepostOf
// is empty. Repost chains are flattened to a single hop at creation time.
type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Text      string    `json:"text"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	MediaType MediaType `json:"mediaType,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	RepostOf  string    `json:"repostOf,omitempty"`
	State     PostState `json:"state,omitempty"`
}

// IsRepost reports whether the post is a repost wrapper.
func (p Post) IsRepost() bool {
	return p.RepostOf != ""
}

// IsTombstoned reports whether the post has been soft-deleted.
func (p Post) IsTombstoned() bool {
	return p.State == PostStateTombstoned
}

// Tombstone replaces the post content with the deletion marker in place,
// preserving its identity.
func (p *Post) Tombstone() {
	p.Text = TombstoneText
	p.MediaURL = ""
	p.MediaType = ""
	p.State = PostStateTombstoned
}
