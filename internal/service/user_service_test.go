package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ripple/internal/models"
	"ripple/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionStub struct {
	clearedID string
}

func (s *sessionStub) ClearIf(userID string) error {
	s.clearedID = userID
	return nil
}

func seedUser(t *testing.T, st *store.Store, id, username string) models.User {
	t.Helper()
	u := models.User{ID: id, Username: username, DisplayName: username, CreatedAt: time.Now()}
	st.AddUser(context.Background(), u)
	return u
}

func assertAppErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %#v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestUserServiceSignup(t *testing.T) {
	st := store.New(nil)
	svc := NewUserService(st, nil)

	user, err := svc.Signup(context.Background(), SignupInput{
		Username:    "alice",
		Password:    "hunter2",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	got, ok := st.GetUser(user.ID)
	require.True(t, ok)
	assert.Equal(t, "alice", got.Username)
}

func TestUserServiceSignupDuplicateUsername(t *testing.T) {
	st := store.New(nil)
	seedUser(t, st, "u1", "Alice")
	svc := NewUserService(st, nil)

	_, err := svc.Signup(context.Background(), SignupInput{Username: "alice"})
	assertAppErrCode(t, err, "VALIDATION_ERROR")
	assert.Len(t, st.Users(), 1)
}

func TestUserServiceSignupBlankUsername(t *testing.T) {
	svc := NewUserService(store.New(nil), nil)
	_, err := svc.Signup(context.Background(), SignupInput{Username: "   "})
	assertAppErrCode(t, err, "VALIDATION_ERROR")
}

func TestUserServiceLogin(t *testing.T) {
	st := store.New(nil)
	st.AddUser(context.Background(), models.User{ID: "u1", Username: "Alice", Password: "secret"})
	svc := NewUserService(st, nil)
	ctx := context.Background()

	// Case-insensitive username, opaque password compare.
	user, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)

	_, err = svc.Login(ctx, "alice", "wrong")
	assertAppErrCode(t, err, "UNAUTHORIZED")

	_, err = svc.Login(ctx, "nobody", "secret")
	assertAppErrCode(t, err, "UNAUTHORIZED")
}

func TestUserServiceLoginLegacyPasswordlessAccount(t *testing.T) {
	st := store.New(nil)
	st.AddUser(context.Background(), models.User{ID: "u1", Username: "old-timer"})
	svc := NewUserService(st, nil)

	user, err := svc.Login(context.Background(), "old-timer", "anything")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestUserServiceFollowSelfRejected(t *testing.T) {
	st := store.New(nil)
	seedUser(t, st, "u1", "alice")
	svc := NewUserService(st, nil)

	_, err := svc.Follow(context.Background(), "u1", "u1")
	assertAppErrCode(t, err, "VALIDATION_ERROR")
	assert.Empty(t, st.Follows())
}

func TestUserServiceFollowToggle(t *testing.T) {
	st := store.New(nil)
	seedUser(t, st, "u1", "alice")
	seedUser(t, st, "u2", "bob")
	svc := NewUserService(st, nil)
	ctx := context.Background()

	following, err := svc.Follow(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.True(t, following)

	following, err = svc.Follow(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.False(t, following)

	_, err = svc.Follow(ctx, "u1", "ghost")
	assertAppErrCode(t, err, "NOT_FOUND")
}

func TestUserServiceDeleteClearsSession(t *testing.T) {
	st := store.New(nil)
	seedUser(t, st, "u1", "alice")
	sessions := &sessionStub{}
	svc := NewUserService(st, sessions)

	require.NoError(t, svc.Delete(context.Background(), "u1"))

	_, ok := st.GetUser("u1")
	assert.False(t, ok)
	assert.Equal(t, "u1", sessions.clearedID)
}

func TestUserServiceSearch(t *testing.T) {
	st := store.New(nil)
	st.AddUser(context.Background(), models.User{ID: "u1", Username: "alice", DisplayName: "Alice W"})
	st.AddUser(context.Background(), models.User{ID: "u2", Username: "bob", DisplayName: "Alightful Bob"})
	st.AddUser(context.Background(), models.User{ID: "u3", Username: "carol", DisplayName: "Carol"})
	svc := NewUserService(st, nil)
	ctx := context.Background()

	got := svc.Search(ctx, "ali")
	require.Len(t, got, 2, "matches username or display name")

	assert.Empty(t, svc.Search(ctx, "  "))
	assert.Empty(t, svc.Search(ctx, "zzz"))
}
