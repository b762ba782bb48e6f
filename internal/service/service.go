package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/roomtalk/internal/domain"
)

var (
	// ErrInvalidCredentials is returned on a wrong password. An unknown
	// username surfaces as repository.ErrUserNotFound so the login page can
	// distinguish the two messages.
	ErrInvalidCredentials = errors.New("username or password incorrect")
	// ErrNotAllowed is returned when the acting user is not authorized to
	// mutate the entity.
	ErrNotAllowed = errors.New("not allowed")
)

type AuthInteractor interface {
	Register(ctx context.Context, username string, password string) (*domain.User, string, error)
	Login(ctx context.Context, username string, password string) (*domain.User, string, error)
	UserFromToken(ctx context.Context, token string) (*domain.User, error)
}

type RoomInteractor interface {
	CreateRoom(ctx context.Context, host *domain.User, topicName, name, description string) (*domain.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*domain.Room, []*domain.Message, error)
	UpdateRoom(ctx context.Context, actor *domain.User, id uuid.UUID, topicName, name, description string) (*domain.Room, error)
	DeleteRoom(ctx context.Context, actor *domain.User, id uuid.UUID) error
	PostMessage(ctx context.Context, actor *domain.User, roomID uuid.UUID, body string) (*domain.Message, error)
	GetMessage(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	DeleteMessage(ctx context.Context, actor *domain.User, id uuid.UUID) error
	SearchRooms(ctx context.Context, filter string) ([]*domain.Room, error)
	ListTopics(ctx context.Context, filter string, limit int) ([]*domain.Topic, error)
	TopicRoomCounts(ctx context.Context) (map[uuid.UUID]int, error)
	MessageFeed(ctx context.Context, topicFilter string) ([]*domain.Message, error)
	Activity(ctx context.Context) ([]*domain.Message, error)
}

// Profile is the rendering context of a user's profile page.
type Profile struct {
	User     *domain.User      `json:"user"`
	Rooms    []*domain.Room    `json:"rooms"`
	Messages []*domain.Message `json:"messages"`
	Topics   []*domain.Topic   `json:"topics"`
}

type UserInteractor interface {
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Profile(ctx context.Context, id uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, actor *domain.User, username, email, bio string) (*domain.User, error)
}
