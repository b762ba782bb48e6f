package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/roomtalk/internal/domain"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrTopicNotFound   = errors.New("topic not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrMessageNotFound = errors.New("message not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type TopicRepository interface {
	// GetOrCreate returns the topic named name, creating it first if
	// necessary. Concurrent calls with the same name converge on one record.
	GetOrCreate(ctx context.Context, name string) (*domain.Topic, error)
	// List returns topics whose name contains filter as a case-insensitive
	// substring; an empty filter matches everything. limit <= 0 means no limit.
	List(ctx context.Context, filter string, limit int) ([]*domain.Topic, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	// Delete removes the room together with its messages and participant
	// links. Hosts, authors and topics are left untouched.
	Delete(ctx context.Context, id uuid.UUID) error
	// Search matches rooms whose topic name, room name or host username
	// contains filter case-insensitively, newest first.
	Search(ctx context.Context, filter string) ([]*domain.Room, error)
	ListByHost(ctx context.Context, hostID uuid.UUID) ([]*domain.Room, error)
	// CountByTopic reports how many rooms reference each topic.
	CountByTopic(ctx context.Context) (map[uuid.UUID]int, error)
	// AddParticipant records userID as a participant of roomID. Adding an
	// existing participant is a no-op.
	AddParticipant(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Message, error)
	// ListByTopic matches messages whose room topic name contains filter
	// case-insensitively, newest first.
	ListByTopic(ctx context.Context, filter string) ([]*domain.Message, error)
	List(ctx context.Context) ([]*domain.Message, error)
}
