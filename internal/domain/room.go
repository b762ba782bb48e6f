package domain

import (
	"time"

	"github.com/google/uuid"
)

// Room is a topic-scoped discussion thread with one host and many
// participants. Only the host may edit or delete it.
type Room struct {
	ID           uuid.UUID `json:"id"`
	Host         *User     `json:"host"`
	Topic        *Topic    `json:"topic"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Participants []*User   `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewRoom(host *User, topic *Topic, name string, description string) *Room {
	now := time.Now().UTC()
	return &Room{
		ID:          uuid.New(),
		Host:        host,
		Topic:       topic,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HostedBy reports whether userID is the room's host. It is the sole
// authority check for room mutation.
func (r *Room) HostedBy(userID uuid.UUID) bool {
	if r == nil || r.Host == nil {
		return false
	}
	return r.Host.ID == userID
}

// HasParticipant reports whether userID has been recorded as a participant.
func (r *Room) HasParticipant(userID uuid.UUID) bool {
	if r == nil {
		return false
	}
	for _, p := range r.Participants {
		if p != nil && p.ID == userID {
			return true
		}
	}
	return false
}
