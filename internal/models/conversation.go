package models

import "time"

// Conversation represents a direct or group message thread.
//
// Invariant: for non-group conversations ParticipantIDs holds exactly two
// distinct IDs in ascending order, and at most one such conversation exists
// per unordered pair. LastMessageAt never moves backward.
type Conversation struct {
	ID             string    `json:"id"`
	ParticipantIDs []string  `json:"participantIds"`
	IsGroup        bool      `json:"isGroup"`
	GroupName      string    `json:"groupName,omitempty"`
	GroupAvatar    string    `json:"groupAvatar,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	LastMessageAt  time.Time `json:"lastMessageAt"`
}

// HasParticipant reports whether the user takes part in the conversation.
func (c Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}
