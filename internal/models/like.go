package models

// Like represents a user's like on a post.
// The combination of UserID and PostID is unique.
type Like struct {
	UserID string `json:"userId"`
	PostID string `json:"postId"`
}
