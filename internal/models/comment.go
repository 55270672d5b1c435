package models

import "time"

// Comment represents a comment on a post. Comments are never edited; they
// are only removed as a cascade consequence of post or user deletion.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	PostID    string    `json:"postId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
