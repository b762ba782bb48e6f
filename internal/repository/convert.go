package repository

import (
	"github.com/immxrtalbeast/roomtalk/internal/domain"
	"github.com/immxrtalbeast/roomtalk/internal/repository/model"
)

func toModelUser(user *domain.User) *model.User {
	var email *string
	if user.Email != "" {
		e := user.Email
		email = &e
	}
	return &model.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        email,
		Bio:          user.Bio,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}

func toDomainUser(user *model.User) *domain.User {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	return &domain.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        email,
		Bio:          user.Bio,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}

func toModelTopic(topic *domain.Topic) *model.Topic {
	return &model.Topic{
		ID:        topic.ID,
		Name:      topic.Name,
		CreatedAt: topic.CreatedAt.UTC(),
	}
}

func toDomainTopic(topic *model.Topic) *domain.Topic {
	return &domain.Topic{
		ID:        topic.ID,
		Name:      topic.Name,
		CreatedAt: topic.CreatedAt.UTC(),
	}
}

func toModelRoom(room *domain.Room) *model.Room {
	m := &model.Room{
		ID:          room.ID,
		Name:        room.Name,
		Description: room.Description,
		CreatedAt:   room.CreatedAt.UTC(),
		UpdatedAt:   room.UpdatedAt.UTC(),
	}
	if room.Host != nil {
		m.HostID = room.Host.ID
	}
	if room.Topic != nil {
		m.TopicID = room.Topic.ID
	}
	return m
}

func toDomainRoom(room *model.Room) *domain.Room {
	participants := make([]*domain.User, 0, len(room.Participants))
	for i := range room.Participants {
		participants = append(participants, toDomainUser(&room.Participants[i]))
	}

	host := toDomainUser(&room.Host)
	return &domain.Room{
		ID:           room.ID,
		Host:         host,
		Topic:        toDomainTopic(&room.Topic),
		Name:         room.Name,
		Description:  room.Description,
		Participants: participants,
		CreatedAt:    room.CreatedAt.UTC(),
		UpdatedAt:    room.UpdatedAt.UTC(),
	}
}

func toModelMessage(message *domain.Message) *model.Message {
	m := &model.Message{
		ID:        message.ID,
		Body:      message.Body,
		CreatedAt: message.CreatedAt.UTC(),
	}
	if message.Room != nil {
		m.RoomID = message.Room.ID
	}
	if message.Author != nil {
		m.AuthorID = message.Author.ID
	}
	return m
}

func toDomainMessage(message *model.Message) *domain.Message {
	return &domain.Message{
		ID:        message.ID,
		Room:      toDomainRoom(&message.Room),
		Author:    toDomainUser(&message.Author),
		Body:      message.Body,
		CreatedAt: message.CreatedAt.UTC(),
	}
}
