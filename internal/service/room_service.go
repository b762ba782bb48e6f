package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/roomtalk/internal/domain"
	"github.com/immxrtalbeast/roomtalk/internal/repository"
	"github.com/immxrtalbeast/roomtalk/lib/logger/sl"
)

const maxMessageLength = 4000

type RoomService struct {
	rooms    repository.RoomRepository
	topics   repository.TopicRepository
	messages repository.MessageRepository
	log      *slog.Logger
}

func NewRoomService(rooms repository.RoomRepository, topics repository.TopicRepository, messages repository.MessageRepository, log *slog.Logger) *RoomService {
	if log == nil {
		log = slog.Default()
	}
	return &RoomService{rooms: rooms, topics: topics, messages: messages, log: log}
}

func (s *RoomService) CreateRoom(ctx context.Context, host *domain.User, topicName, name, description string) (*domain.Room, error) {
	const op = "service.room.create"

	if host == nil {
		return nil, errors.New("host is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("room name is required")
	}
	topicName = strings.TrimSpace(topicName)
	if topicName == "" {
		return nil, errors.New("topic is required")
	}

	topic, err := s.topics.GetOrCreate(ctx, topicName)
	if err != nil {
		s.log.Error("failed to resolve topic", slog.String("op", op), sl.Err(err))
		return nil, err
	}

	room := domain.NewRoom(host, topic, name, description)
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}

	s.log.Info("room created", slog.String("op", op),
		slog.String("room_id", room.ID.String()), slog.String("host", host.Username))
	return room, nil
}

// GetRoom returns the room together with its messages, newest first.
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*domain.Room, []*domain.Message, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	messages, err := s.messages.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, nil, err
	}
	return room, messages, nil
}

// UpdateRoom applies new fields to the room after the host check. The topic
// is re-resolved with get-or-create semantics.
func (s *RoomService) UpdateRoom(ctx context.Context, actor *domain.User, id uuid.UUID, topicName, name, description string) (*domain.Room, error) {
	const op = "service.room.update"

	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil || !room.HostedBy(actor.ID) {
		return nil, ErrNotAllowed
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("room name is required")
	}
	topicName = strings.TrimSpace(topicName)
	if topicName == "" {
		return nil, errors.New("topic is required")
	}

	topic, err := s.topics.GetOrCreate(ctx, topicName)
	if err != nil {
		s.log.Error("failed to resolve topic", slog.String("op", op), sl.Err(err))
		return nil, err
	}

	room.Name = name
	room.Topic = topic
	room.Description = description
	room.UpdatedAt = time.Now().UTC()

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	const op = "service.room.delete"

	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil || !room.HostedBy(actor.ID) {
		return ErrNotAllowed
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("room deleted", slog.String("op", op), slog.String("room_id", id.String()))
	return nil
}

// PostMessage inserts the message and records the author as a room
// participant. Posting again does not duplicate the participant entry.
func (s *RoomService) PostMessage(ctx context.Context, actor *domain.User, roomID uuid.UUID, body string) (*domain.Message, error) {
	if actor == nil {
		return nil, ErrNotAllowed
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.New("message body is required")
	}
	if len(body) > maxMessageLength {
		return nil, errors.New("message is too long")
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	message := domain.NewMessage(room, actor, body)
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := s.rooms.AddParticipant(ctx, room.ID, actor.ID); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *RoomService) GetMessage(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	return s.messages.GetByID(ctx, id)
}

// DeleteMessage removes the message if the actor is its author or the host
// of the room it was posted in.
func (s *RoomService) DeleteMessage(ctx context.Context, actor *domain.User, id uuid.UUID) error {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil || !message.DeletableBy(actor.ID) {
		return ErrNotAllowed
	}
	return s.messages.Delete(ctx, id)
}

func (s *RoomService) SearchRooms(ctx context.Context, filter string) ([]*domain.Room, error) {
	return s.rooms.Search(ctx, filter)
}

func (s *RoomService) ListTopics(ctx context.Context, filter string, limit int) ([]*domain.Topic, error) {
	return s.topics.List(ctx, filter, limit)
}

// TopicRoomCounts returns the number of rooms per topic ID, for the topics
// page's room counters.
func (s *RoomService) TopicRoomCounts(ctx context.Context) (map[uuid.UUID]int, error) {
	return s.rooms.CountByTopic(ctx)
}

// MessageFeed returns messages whose room topic matches the filter, for the
// home page's recent-activity column.
func (s *RoomService) MessageFeed(ctx context.Context, topicFilter string) ([]*domain.Message, error) {
	return s.messages.ListByTopic(ctx, topicFilter)
}

func (s *RoomService) Activity(ctx context.Context) ([]*domain.Message, error) {
	return s.messages.List(ctx)
}
