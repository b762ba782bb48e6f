package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/roomtalk/internal/domain"
	"github.com/immxrtalbeast/roomtalk/internal/repository"
)

type UserService struct {
	users    repository.UserRepository
	rooms    repository.RoomRepository
	topics   repository.TopicRepository
	messages repository.MessageRepository
	log      *slog.Logger
}

func NewUserService(users repository.UserRepository, rooms repository.RoomRepository, topics repository.TopicRepository, messages repository.MessageRepository, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{users: users, rooms: rooms, topics: topics, messages: messages, log: log}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Profile collects the user's hosted rooms, their messages and the full
// topic list for the profile page.
func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.ListByHost(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messages.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	topics, err := s.topics.List(ctx, "", 0)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Rooms: rooms, Messages: messages, Topics: topics}, nil
}

// UpdateProfile saves the acting user's new profile fields. The username
// keeps its lowercase canonical form.
func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, username, email, bio string) (*domain.User, error) {
	const op = "service.user.update"

	if actor == nil {
		return nil, ErrNotAllowed
	}

	username = domain.NormalizeUsername(username)
	if username == "" {
		return nil, errors.New("username is required")
	}

	updated := *actor
	updated.Username = username
	updated.Email = email
	updated.Bio = bio
	updated.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.log.Info("profile updated", slog.String("op", op), slog.String("username", updated.Username))
	return &updated, nil
}
