package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/store"

	"github.com/google/uuid"
)

// ChatService provides conversation and messaging business logic built on
// store primitives: one-to-one deduplication, group creation and message
// append.
type ChatService struct {
	store *store.Store
}

// NewChatService returns a new ChatService.
func NewChatService(st *store.Store) *ChatService {
	return &ChatService{store: st}
}

// GetOrCreateOneToOne returns the one-to-one conversation between the two
// users, creating it if none exists. The pair is canonicalized by ascending
// ID, so calling with the arguments in either order yields the same
// conversation, and at most one exists per unordered pair.
func (s *ChatService) GetOrCreateOneToOne(ctx context.Context, userA, userB string) (models.Conversation, error) {
	if userA == userB {
		return models.Conversation{}, models.NewValidationError("A conversation needs two distinct participants")
	}
	for _, id := range []string{userA, userB} {
		if _, ok := s.store.GetUser(id); !ok {
			return models.Conversation{}, models.NewNotFoundError("User", id)
		}
	}

	pair := []string{userA, userB}
	sort.Strings(pair)

	for _, c := range s.store.Conversations() {
		if !c.IsGroup && len(c.ParticipantIDs) == 2 &&
			c.ParticipantIDs[0] == pair[0] && c.ParticipantIDs[1] == pair[1] {
			return c, nil
		}
	}

	now := time.Now().UTC()
	conv := models.Conversation{
		ID:             uuid.NewString(),
		ParticipantIDs: pair,
		IsGroup:        false,
		CreatedAt:      now,
		LastMessageAt:  now,
	}
	s.store.AddConversation(ctx, conv)
	return conv, nil
}

// CreateGroup creates a new group conversation. Groups are never
// deduplicated; every call creates a fresh conversation.
func (s *ChatService) CreateGroup(ctx context.Context, participantIDs []string, groupName string) (models.Conversation, error) {
	if strings.TrimSpace(groupName) == "" {
		return models.Conversation{}, models.NewValidationError("Group conversations require a name")
	}
	unique := make([]string, 0, len(participantIDs))
	seen := make(map[string]bool)
	for _, id := range participantIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) < 2 {
		return models.Conversation{}, models.NewValidationError("A group needs at least two participants")
	}

	now := time.Now().UTC()
	conv := models.Conversation{
		ID:             uuid.NewString(),
		ParticipantIDs: unique,
		IsGroup:        true,
		GroupName:      groupName,
		CreatedAt:      now,
		LastMessageAt:  now,
	}
	s.store.AddConversation(ctx, conv)
	return conv, nil
}

// AppendMessage adds a message to the conversation and bumps its
// LastMessageAt. The conversation must exist, the sender must be a
// participant, and the text must not be blank.
func (s *ChatService) AppendMessage(ctx context.Context, conversationID, senderID, text string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, models.NewValidationError("Message text is required")
	}
	conv, ok := s.store.GetConversation(conversationID)
	if !ok {
		return models.Message{}, models.NewNotFoundError("Conversation", conversationID)
	}
	if !conv.HasParticipant(senderID) {
		return models.Message{}, models.NewUnauthorizedError("You are not a participant in this conversation")
	}

	msg := models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
	s.store.AppendMessage(ctx, msg)
	return msg, nil
}

// ConversationsFor returns the conversations the user takes part in, most
// recently active first, ties broken by ascending ID.
func (s *ChatService) ConversationsFor(ctx context.Context, userID string) []models.Conversation {
	var out []models.Conversation
	for _, c := range s.store.Conversations() {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].LastMessageAt.Equal(out[j].LastMessageAt) {
			return out[i].LastMessageAt.After(out[j].LastMessageAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MessagesIn returns the messages of a conversation in append order.
func (s *ChatService) MessagesIn(ctx context.Context, conversationID string) []models.Message {
	var out []models.Message
	for _, m := range s.store.Messages() {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out
}
