package domain

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a named category shared across rooms. Topics are created
// implicitly the first time a room names them and are never deleted.
type Topic struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTopic(name string) *Topic {
	return &Topic{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
