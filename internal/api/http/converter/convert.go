package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/roomtalk/internal/domain"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TopicResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TopicCountResponse is the topics-page entry: a topic plus how many rooms
// currently use it.
type TopicCountResponse struct {
	TopicResponse
	RoomCount int `json:"room_count"`
}

type RoomResponse struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Host         UserResponse   `json:"host"`
	Topic        TopicResponse  `json:"topic"`
	Participants []UserResponse `json:"participants"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type MessageResponse struct {
	ID        uuid.UUID    `json:"id"`
	RoomID    uuid.UUID    `json:"room_id"`
	RoomName  string       `json:"room_name"`
	Author    UserResponse `json:"author"`
	Body      string       `json:"body"`
	CreatedAt time.Time    `json:"created_at"`
}

func UserToApi(u *domain.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
}

func TopicToApi(t *domain.Topic) TopicResponse {
	if t == nil {
		return TopicResponse{}
	}
	return TopicResponse{ID: t.ID, Name: t.Name}
}

func TopicsToApi(topics []*domain.Topic) []TopicResponse {
	result := make([]TopicResponse, 0, len(topics))
	for _, t := range topics {
		result = append(result, TopicToApi(t))
	}
	return result
}

func TopicsToApiWithCounts(topics []*domain.Topic, counts map[uuid.UUID]int) []TopicCountResponse {
	result := make([]TopicCountResponse, 0, len(topics))
	for _, t := range topics {
		result = append(result, TopicCountResponse{
			TopicResponse: TopicToApi(t),
			RoomCount:     counts[t.ID],
		})
	}
	return result
}

func RoomToApi(r *domain.Room) RoomResponse {
	participants := make([]UserResponse, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, UserToApi(p))
	}
	return RoomResponse{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Host:         UserToApi(r.Host),
		Topic:        TopicToApi(r.Topic),
		Participants: participants,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func RoomsToApi(rooms []*domain.Room) []RoomResponse {
	result := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, RoomToApi(r))
	}
	return result
}

func MessageToApi(m *domain.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID,
		Author:    UserToApi(m.Author),
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
	if m.Room != nil {
		resp.RoomID = m.Room.ID
		resp.RoomName = m.Room.Name
	}
	return resp
}

func MessagesToApi(messages []*domain.Message) []MessageResponse {
	result := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, MessageToApi(m))
	}
	return result
}
