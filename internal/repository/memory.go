package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/roomtalk/internal/domain"
)

// InMemoryStore backs all repositories with process-local state. It is used
// in tests and keeps the same contracts as the gorm store, including topic
// get-or-create atomicity (serialized under the mutex) and room deletion
// cascading to messages.
type InMemoryStore struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]*domain.User
	usernames map[string]uuid.UUID
	topics    map[string]*domain.Topic
	rooms     []*domain.Room
	messages  []*domain.Message
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:     make(map[uuid.UUID]*domain.User),
		usernames: make(map[string]uuid.UUID),
		topics:    make(map[string]*domain.Topic),
	}
}

func (s *InMemoryStore) Users() UserRepository       { return (*memoryUsers)(s) }
func (s *InMemoryStore) Topics() TopicRepository     { return (*memoryTopics)(s) }
func (s *InMemoryStore) Rooms() RoomRepository       { return (*memoryRooms)(s) }
func (s *InMemoryStore) Messages() MessageRepository { return (*memoryMessages)(s) }

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Reads hand out copies so that callers mutating a returned entity cannot
// change stored state behind the repository's back. The gorm store gets the
// same isolation for free by rehydrating rows on every query.
func cloneUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	return &clone
}

func cloneTopic(topic *domain.Topic) *domain.Topic {
	if topic == nil {
		return nil
	}
	clone := *topic
	return &clone
}

func cloneRoom(room *domain.Room) *domain.Room {
	if room == nil {
		return nil
	}
	clone := *room
	clone.Host = cloneUser(room.Host)
	clone.Topic = cloneTopic(room.Topic)
	if room.Participants != nil {
		clone.Participants = make([]*domain.User, 0, len(room.Participants))
		for _, participant := range room.Participants {
			clone.Participants = append(clone.Participants, cloneUser(participant))
		}
	}
	return &clone
}

func cloneMessage(message *domain.Message) *domain.Message {
	if message == nil {
		return nil
	}
	clone := *message
	clone.Author = cloneUser(message.Author)
	clone.Room = cloneRoom(message.Room)
	return &clone
}

type memoryUsers InMemoryStore

func (r *memoryUsers) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.usernames[user.Username]; ok {
		return ErrUsernameTaken
	}

	r.users[user.ID] = user
	r.usernames[user.Username] = user.ID
	return nil
}

func (r *memoryUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *memoryUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usernames[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *memoryUsers) Update(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}

	if current.Username != user.Username {
		if _, taken := r.usernames[user.Username]; taken {
			return ErrUsernameTaken
		}
		delete(r.usernames, current.Username)
		r.usernames[user.Username] = user.ID
	}

	*current = *user
	return nil
}

type memoryTopics InMemoryStore

func (r *memoryTopics) GetOrCreate(ctx context.Context, name string) (*domain.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if topic, ok := r.topics[name]; ok {
		return cloneTopic(topic), nil
	}

	topic := domain.NewTopic(name)
	r.topics[name] = topic
	return cloneTopic(topic), nil
}

func (r *memoryTopics) List(ctx context.Context, filter string, limit int) ([]*domain.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Topic, 0, len(r.topics))
	for _, topic := range r.topics {
		if containsFold(topic.Name, filter) {
			result = append(result, cloneTopic(topic))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type memoryRooms InMemoryStore

func (r *memoryRooms) Create(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms = append(r.rooms, room)
	return nil
}

func (r *memoryRooms) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, err := r.findRoom(id)
	if err != nil {
		return nil, err
	}
	return cloneRoom(room), nil
}

func (r *memoryRooms) findRoom(id uuid.UUID) (*domain.Room, error) {
	for _, room := range r.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, ErrRoomNotFound
}

func (r *memoryRooms) Update(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.findRoom(room.ID)
	if err != nil {
		return err
	}
	// Only the columns the gorm store updates; participants stay untouched.
	current.Name = room.Name
	current.Description = room.Description
	current.Topic = cloneTopic(room.Topic)
	current.UpdatedAt = room.UpdatedAt

	for _, message := range r.messages {
		if message.Room != nil && message.Room.ID == current.ID {
			message.Room = cloneRoom(current)
		}
	}
	return nil
}

func (r *memoryRooms) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, room := range r.rooms {
		if room.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrRoomNotFound
	}
	r.rooms = append(r.rooms[:idx], r.rooms[idx+1:]...)

	kept := r.messages[:0]
	for _, message := range r.messages {
		if message.Room == nil || message.Room.ID != id {
			kept = append(kept, message)
		}
	}
	r.messages = kept
	return nil
}

func (r *memoryRooms) Search(ctx context.Context, filter string) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Room
	// Newest first: rooms are kept in creation order.
	for i := len(r.rooms) - 1; i >= 0; i-- {
		room := r.rooms[i]
		if containsFold(room.Topic.Name, filter) ||
			containsFold(room.Name, filter) ||
			containsFold(room.Host.Username, filter) {
			result = append(result, cloneRoom(room))
		}
	}
	return result, nil
}

func (r *memoryRooms) ListByHost(ctx context.Context, hostID uuid.UUID) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Room
	for i := len(r.rooms) - 1; i >= 0; i-- {
		if r.rooms[i].HostedBy(hostID) {
			result = append(result, cloneRoom(r.rooms[i]))
		}
	}
	return result, nil
}

func (r *memoryRooms) CountByTopic(ctx context.Context) (map[uuid.UUID]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[uuid.UUID]int, len(r.topics))
	for _, room := range r.rooms {
		if room.Topic != nil {
			counts[room.Topic.ID]++
		}
	}
	return counts, nil
}

func (r *memoryRooms) AddParticipant(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, err := r.findRoom(roomID)
	if err != nil {
		return err
	}
	if room.HasParticipant(userID) {
		return nil
	}

	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	room.Participants = append(room.Participants, user)
	return nil
}

type memoryMessages InMemoryStore

func (r *memoryMessages) Create(ctx context.Context, message *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, message)
	return nil
}

func (r *memoryMessages) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, message := range r.messages {
		if message.ID == id {
			return cloneMessage(message), nil
		}
	}
	return nil, ErrMessageNotFound
}

func (r *memoryMessages) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, message := range r.messages {
		if message.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return ErrMessageNotFound
}

func (r *memoryMessages) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error) {
	return r.list(ctx, func(m *domain.Message) bool {
		return m.Room != nil && m.Room.ID == roomID
	})
}

func (r *memoryMessages) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Message, error) {
	return r.list(ctx, func(m *domain.Message) bool {
		return m.Author != nil && m.Author.ID == authorID
	})
}

func (r *memoryMessages) ListByTopic(ctx context.Context, filter string) ([]*domain.Message, error) {
	return r.list(ctx, func(m *domain.Message) bool {
		return m.Room != nil && m.Room.Topic != nil && containsFold(m.Room.Topic.Name, filter)
	})
}

func (r *memoryMessages) List(ctx context.Context) ([]*domain.Message, error) {
	return r.list(ctx, func(*domain.Message) bool { return true })
}

func (r *memoryMessages) list(ctx context.Context, match func(*domain.Message) bool) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Message
	for i := len(r.messages) - 1; i >= 0; i-- {
		if match(r.messages[i]) {
			result = append(result, cloneMessage(r.messages[i]))
		}
	}
	return result, nil
}
