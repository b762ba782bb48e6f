package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/immxrtalbeast/roomtalk/internal/auth"
	"github.com/immxrtalbeast/roomtalk/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(store *repository.InMemoryStore) *AuthService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := auth.NewPasswordHasher(4)
	sessions := auth.NewSessionManager(auth.SessionConfig{Secret: "test-secret", TTL: time.Hour})
	return NewAuthService(store.Users(), hasher, sessions, log)
}

func TestAuthService_RegisterLowercasesUsername(t *testing.T) {
	svc := newAuthService(repository.NewInMemoryStore())

	user, token, err := svc.Register(context.Background(), "Alice", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)

	// The session token resolves back to the same user.
	acting, err := svc.UserFromToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, acting.ID)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := newAuthService(repository.NewInMemoryStore())

	_, _, err := svc.Register(context.Background(), "alice", "correct-password")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "ALICE", "other-password")
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)
}

func TestAuthService_LoginCaseInsensitiveUsername(t *testing.T) {
	svc := newAuthService(repository.NewInMemoryStore())

	registered, _, err := svc.Register(context.Background(), "Alice", "correct-password")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "ALICE", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc := newAuthService(repository.NewInMemoryStore())

	_, _, err := svc.Register(context.Background(), "alice", "correct-password")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc := newAuthService(repository.NewInMemoryStore())

	_, _, err := svc.Login(context.Background(), "nobody", "whatever-pass")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestAuthService_UserFromGarbageToken(t *testing.T) {
	svc := newAuthService(repository.NewInMemoryStore())

	_, err := svc.UserFromToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
