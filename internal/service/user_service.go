// Package service provides application business logic over the store
// (accounts, posts, conversations).
package service

import (
	"context"
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/store"

	"github.com/google/uuid"
)

// SessionStore is the collaborator owning the current-actor reference. The
// store never touches session state itself.
type SessionStore interface {
	ClearIf(userID string) error
}

// UserService provides account business logic: signup, login, profile
// updates, search and account deletion.
type UserService struct {
	store    *store.Store
	sessions SessionStore
}

// NewUserService returns a new UserService. sessions may be nil when no
// session collaborator is attached.
func NewUserService(st *store.Store, sessions SessionStore) *UserService {
	return &UserService{store: st, sessions: sessions}
}

// SignupInput is the input for creating an account.
type SignupInput struct {
	Username    string
	Password    string
	DisplayName string
	Avatar      string
	Banner      string
	Bio         string
}

// Signup creates a new user account. The username must not be held by any
// existing user, compared case-insensitively.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return models.User{}, models.NewValidationError("Username is required")
	}
	if _, exists := s.store.GetUserByUsername(username); exists {
		return models.User{}, models.NewValidationError("Username is already taken")
	}

	user := models.User{
		ID:          uuid.NewString(),
		Username:    username,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		Avatar:      in.Avatar,
		Banner:      in.Banner,
		Bio:         in.Bio,
		CreatedAt:   time.Now().UTC(),
	}
	s.store.AddUser(ctx, user)
	return user, nil
}

// Login resolves a username (case-insensitive) and password to a user.
// Passwords are compared as opaque strings; an account with no stored
// password accepts any password, for compatibility with legacy records.
func (s *UserService) Login(ctx context.Context, username, password string) (models.User, error) {
	user, ok := s.store.GetUserByUsername(username)
	if !ok {
		return models.User{}, models.NewUnauthorizedError("Invalid username or password")
	}
	if user.Password != "" && user.Password != password {
		return models.User{}, models.NewUnauthorizedError("Invalid username or password")
	}
	return user, nil
}

// Update merges a partial profile update into the user record. A username
// change fails with a validation error when another user already holds the
// name, case-insensitively.
func (s *UserService) Update(ctx context.Context, userID string, update models.UserUpdate) error {
	return s.store.UpdateUser(ctx, userID, update)
}

// Follow toggles the follow edge from actor to target and reports whether
// the edge exists afterwards. Self-follows are rejected; the store toggle
// itself stays an unrestricted involution.
func (s *UserService) Follow(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, models.NewValidationError("Cannot follow yourself")
	}
	if _, ok := s.store.GetUser(targetID); !ok {
		return false, models.NewNotFoundError("User", targetID)
	}
	return s.store.ToggleFollow(ctx, actorID, targetID), nil
}

// Delete removes the user and all dependent records, then clears the
// session reference if it belongs to the deleted user.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	s.store.HardDeleteUser(ctx, userID)
	if s.sessions != nil {
		return s.sessions.ClearIf(userID)
	}
	return nil
}

// Search returns users whose username or display name contains the query,
// case-insensitively. A blank query matches nothing.
func (s *UserService) Search(ctx context.Context, query string) []models.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []models.User
	for _, u := range s.store.Users() {
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.DisplayName), q) {
			out = append(out, u)
		}
	}
	return out
}
