package models

// Follow represents a directed follow edge between two users.
// The combination of FollowerID and FollowingID is unique.
type Follow struct {
	FollowerID  string `json:"followerId"`
	FollowingID string `json:"followingId"`
}
