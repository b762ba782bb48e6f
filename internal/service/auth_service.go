package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/roomtalk/internal/auth"
	"github.com/immxrtalbeast/roomtalk/internal/domain"
	"github.com/immxrtalbeast/roomtalk/internal/repository"
	"github.com/immxrtalbeast/roomtalk/lib/logger/sl"
)

type AuthService struct {
	users    repository.UserRepository
	hasher   *auth.PasswordHasher
	sessions *auth.SessionManager
	log      *slog.Logger
}

func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, sessions *auth.SessionManager, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{users: users, hasher: hasher, sessions: sessions, log: log}
}

// Register creates the user with a lowercased username and logs them in,
// returning the new user and a session token.
func (s *AuthService) Register(ctx context.Context, username string, password string) (*domain.User, string, error) {
	const op = "service.auth.register"

	username = domain.NormalizeUsername(username)
	if username == "" {
		return nil, "", errors.New("username is required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Error("failed to hash password", slog.String("op", op), sl.Err(err))
		return nil, "", err
	}

	user := domain.NewUser(username, hash)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Issue(user.ID.String(), user.Username)
	if err != nil {
		s.log.Error("failed to issue session", slog.String("op", op), sl.Err(err))
		return nil, "", err
	}

	s.log.Info("user registered", slog.String("op", op), slog.String("username", user.Username))
	return user, token, nil
}

// Login authenticates in one step: an unknown username yields
// repository.ErrUserNotFound, a bad password ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username string, password string) (*domain.User, string, error) {
	const op = "service.auth.login"

	user, err := s.users.GetByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Info("bad credentials", slog.String("op", op), slog.String("username", user.Username))
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.ID.String(), user.Username)
	if err != nil {
		s.log.Error("failed to issue session", slog.String("op", op), sl.Err(err))
		return nil, "", err
	}

	return user, token, nil
}

// UserFromToken resolves the acting user from a session token.
func (s *AuthService) UserFromToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.sessions.Validate(token)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	return s.users.GetByID(ctx, id)
}
