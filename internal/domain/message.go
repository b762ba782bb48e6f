package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single post in a room. Room is loaded with its host so that
// DeletableBy can be answered without another lookup.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Room      *Room     `json:"room"`
	Author    *User     `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessage(room *Room, author *User, body string) *Message {
	return &Message{
		ID:        uuid.New(),
		Room:      room,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}

// DeletableBy reports whether userID may delete the message: its author or
// the host of the room it was posted in.
func (m *Message) DeletableBy(userID uuid.UUID) bool {
	if m == nil {
		return false
	}
	if m.Author != nil && m.Author.ID == userID {
		return true
	}
	return m.Room.HostedBy(userID)
}
