package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/immxrtalbeast/roomtalk/internal/domain"
	"github.com/immxrtalbeast/roomtalk/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomEnv struct {
	store *repository.InMemoryStore
	rooms *RoomService
}

func newRoomEnv(t *testing.T) *roomEnv {
	t.Helper()
	store := repository.NewInMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &roomEnv{
		store: store,
		rooms: NewRoomService(store.Rooms(), store.Topics(), store.Messages(), log),
	}
}

func (e *roomEnv) user(t *testing.T, username string) *domain.User {
	t.Helper()
	user := domain.NewUser(username, "hash")
	require.NoError(t, e.store.Users().Create(context.Background(), user))
	return user
}

func TestRoomService_CreateRoomResolvesTopic(t *testing.T) {
	env := newRoomEnv(t)
	alice := env.user(t, "alice")
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, alice, "Python", "Intro", "beginner friendly")
	require.NoError(t, err)
	assert.Equal(t, "Python", room.Topic.Name)
	assert.True(t, room.HostedBy(alice.ID))

	// A second room with the same topic name reuses the record.
	other, err := env.rooms.CreateRoom(ctx, alice, "Python", "Advanced", "")
	require.NoError(t, err)
	assert.Equal(t, room.Topic.ID, other.Topic.ID)

	topics, err := env.rooms.ListTopics(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, topics, 1)
}

func TestRoomService_UpdateRoomRequiresHost(t *testing.T) {
	env := newRoomEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, alice, "Go", "gophers", "")
	require.NoError(t, err)

	_, err = env.rooms.UpdateRoom(ctx, bob, room.ID, "Rust", "crabs", "")
	assert.ErrorIs(t, err, ErrNotAllowed)

	// The room is unchanged after the rejected update.
	unchanged, _, err := env.rooms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "gophers", unchanged.Name)
	assert.Equal(t, "Go", unchanged.Topic.Name)
}

func TestRoomService_UpdateRoomByHost(t *testing.T) {
	env := newRoomEnv(t)
	alice := env.user(t, "alice")
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, alice, "Go", "gophers", "")
	require.NoError(t, err)

	updated, err := env.rooms.UpdateRoom(ctx, alice, room.ID, "Rust", "crabs", "new description")
	require.NoError(t, err)
	assert.Equal(t, "crabs", updated.Name)
	assert.Equal(t, "Rust", updated.Topic.Name)

	topics, err := env.rooms.ListTopics(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, topics, 2, "update re-resolves the topic with get-or-create")
}

func TestRoomService_PostMessageAddsParticipant(t *testing.T) {
	env := newRoomEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, alice, "Go", "gophers", "")
	require.NoError(t, err)

	_, err = env.rooms.PostMessage(ctx, bob, room.ID, "hello")
	require.NoError(t, err)
	_, err = env.rooms.PostMessage(ctx, bob, room.ID, "hello again")
	require.NoError(t, err)

	got, messages, err := env.rooms.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, got.HasParticipant(bob.ID))
	assert.Len(t, got.Participants, 1, "posting twice must not duplicate the participant")
	require.Len(t, messages, 2)
	assert.Equal(t, "hello again", messages[0].Body, "messages come newest first")
}

func TestRoomService_PostMessageValidation(t *testing.T) {
	env := newRoomEnv(t)
	alice := env.user(t, "alice")
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, alice, "Go", "gophers", "")
	require.NoError(t, err)

	_, err = env.rooms.PostMessage(ctx, alice, room.ID, "   ")
	assert.Error(t, err)

	_, err = env.rooms.PostMessage(ctx, nil, room.ID, "anonymous")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestRoomService_DeleteMessagePolicy(t *testing.T) {
	env := newRoomEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	carol := env.user(t, "carol")
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, alice, "Go", "gophers", "")
	require.NoError(t, err)

	message, err := env.rooms.PostMessage(ctx, bob, room.ID, "hello")
	require.NoError(t, err)

	// A bystander cannot delete it.
	err = env.rooms.DeleteMessage(ctx, carol, message.ID)
	assert.ErrorIs(t, err, ErrNotAllowed)

	// The author can.
	require.NoError(t, env.rooms.DeleteMessage(ctx, bob, message.ID))

	// The room host can delete someone else's message too.
	second, err := env.rooms.PostMessage(ctx, bob, room.ID, "again")
	require.NoError(t, err)
	require.NoError(t, env.rooms.DeleteMessage(ctx, alice, second.ID))
}

func TestRoomService_DeleteRoomRequiresHost(t *testing.T) {
	env := newRoomEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	ctx := context.Background()

	room, err := env.rooms.CreateRoom(ctx, alice, "Go", "gophers", "")
	require.NoError(t, err)
	_, err = env.rooms.PostMessage(ctx, bob, room.ID, "hello")
	require.NoError(t, err)

	err = env.rooms.DeleteRoom(ctx, bob, room.ID)
	assert.ErrorIs(t, err, ErrNotAllowed)

	require.NoError(t, env.rooms.DeleteRoom(ctx, alice, room.ID))

	_, _, err = env.rooms.GetRoom(ctx, room.ID)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)

	feed, err := env.rooms.Activity(ctx)
	require.NoError(t, err)
	assert.Empty(t, feed, "room deletion removes its messages")
}

func TestRoomService_SearchRooms(t *testing.T) {
	env := newRoomEnv(t)
	alice := env.user(t, "alice")
	ctx := context.Background()

	_, err := env.rooms.CreateRoom(ctx, alice, "Python", "Intro", "")
	require.NoError(t, err)

	rooms, err := env.rooms.SearchRooms(ctx, "py")
	require.NoError(t, err)
	assert.Len(t, rooms, 1, "search matches the room via its topic name")
}
