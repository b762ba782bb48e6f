package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"size:150;uniqueIndex;not null"`
	Email        *string   `gorm:"size:255"`
	Bio          string    `gorm:"type:text"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

type Topic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:200;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Room struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	HostID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Host         User      `gorm:"foreignKey:HostID"`
	TopicID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Topic        Topic     `gorm:"foreignKey:TopicID"`
	Name         string    `gorm:"size:200;not null"`
	Description  string    `gorm:"type:text"`
	Participants []User    `gorm:"many2many:room_participants;constraint:OnDelete:CASCADE"`
	Messages     []Message `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// RoomParticipant is the join table behind Room.Participants. The composite
// primary key makes participant insertion naturally idempotent.
type RoomParticipant struct {
	RoomID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Room      Room      `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	AuthorID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Author    User      `gorm:"foreignKey:AuthorID"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}
