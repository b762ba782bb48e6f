package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/immxrtalbeast/roomtalk/internal/domain"
)

func seedUser(t *testing.T, store *InMemoryStore, username string) *domain.User {
	t.Helper()
	user := domain.NewUser(username, "hash")
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func seedRoom(t *testing.T, store *InMemoryStore, host *domain.User, topicName, name string) *domain.Room {
	t.Helper()
	ctx := context.Background()
	topic, err := store.Topics().GetOrCreate(ctx, topicName)
	if err != nil {
		t.Fatalf("get or create topic %s: %v", topicName, err)
	}
	room := domain.NewRoom(host, topic, name, "")
	if err := store.Rooms().Create(ctx, room); err != nil {
		t.Fatalf("create room %s: %v", name, err)
	}
	return room
}

func TestInMemoryStore_UsernameUnique(t *testing.T) {
	store := NewInMemoryStore()
	seedUser(t, store, "alice")

	err := store.Users().Create(context.Background(), domain.NewUser("alice", "other-hash"))
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Create() error = %v, want ErrUsernameTaken", err)
	}
}

func TestInMemoryStore_TopicGetOrCreate(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	first, err := store.Topics().GetOrCreate(ctx, "Python")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	second, err := store.Topics().GetOrCreate(ctx, "Python")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	if first.ID != second.ID {
		t.Error("GetOrCreate() created two records for the same name")
	}

	topics, err := store.Topics().List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(topics) != 1 {
		t.Errorf("topic count = %d, want 1", len(topics))
	}
}

func TestInMemoryStore_TopicGetOrCreateConcurrent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Topics().GetOrCreate(ctx, "Go"); err != nil {
				t.Errorf("GetOrCreate() error = %v", err)
			}
		}()
	}
	wg.Wait()

	topics, err := store.Topics().List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(topics) != 1 {
		t.Errorf("topic count after concurrent get-or-create = %d, want 1", len(topics))
	}
}

func TestInMemoryStore_RoomSearch(t *testing.T) {
	store := NewInMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bobby")

	seedRoom(t, store, alice, "Python", "Intro")
	seedRoom(t, store, alice, "Go", "Concurrency patterns")
	seedRoom(t, store, bob, "Cooking", "Sourdough")

	tests := []struct {
		name   string
		filter string
		want   int
	}{
		{"empty filter matches all", "", 3},
		{"topic substring", "py", 1},
		{"room name substring", "conc", 1},
		{"host username substring", "bob", 1},
		{"case-insensitive", "PYTHON", 1},
		{"no match", "rust", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rooms, err := store.Rooms().Search(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(rooms) != tt.want {
				t.Errorf("Search(%q) returned %d rooms, want %d", tt.filter, len(rooms), tt.want)
			}
		})
	}
}

func TestInMemoryStore_SearchNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	alice := seedUser(t, store, "alice")

	first := seedRoom(t, store, alice, "Go", "first")
	second := seedRoom(t, store, alice, "Go", "second")

	rooms, err := store.Rooms().Search(context.Background(), "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("Search() returned %d rooms, want 2", len(rooms))
	}
	if rooms[0].ID != second.ID || rooms[1].ID != first.ID {
		t.Error("Search() did not return newest room first")
	}
}

func TestInMemoryStore_AddParticipantIdempotent(t *testing.T) {
	store := NewInMemoryStore()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")
	room := seedRoom(t, store, alice, "Go", "gophers")

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := store.Rooms().AddParticipant(ctx, room.ID, bob.ID); err != nil {
			t.Fatalf("AddParticipant() error = %v", err)
		}
	}

	got, err := store.Rooms().GetByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.Participants) != 1 {
		t.Errorf("participant count = %d, want 1", len(got.Participants))
	}
}

func TestInMemoryStore_CountByTopic(t *testing.T) {
	store := NewInMemoryStore()
	alice := seedUser(t, store, "alice")

	py1 := seedRoom(t, store, alice, "Python", "Intro")
	seedRoom(t, store, alice, "Python", "Advanced")
	seedRoom(t, store, alice, "Go", "gophers")

	ctx := context.Background()
	counts, err := store.Rooms().CountByTopic(ctx)
	if err != nil {
		t.Fatalf("CountByTopic() error = %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("CountByTopic() returned %d topics, want 2", len(counts))
	}
	if counts[py1.Topic.ID] != 2 {
		t.Errorf("python room count = %d, want 2", counts[py1.Topic.ID])
	}

	if err := store.Rooms().Delete(ctx, py1.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	counts, err = store.Rooms().CountByTopic(ctx)
	if err != nil {
		t.Fatalf("CountByTopic() error = %v", err)
	}
	if counts[py1.Topic.ID] != 1 {
		t.Errorf("python room count after delete = %d, want 1", counts[py1.Topic.ID])
	}
}

func TestInMemoryStore_ReadsReturnCopies(t *testing.T) {
	store := NewInMemoryStore()
	alice := seedUser(t, store, "alice")
	room := seedRoom(t, store, alice, "Go", "gophers")
	ctx := context.Background()

	got, err := store.Rooms().GetByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	got.Name = "hijacked"
	got.Host.Username = "mallory"

	fresh, err := store.Rooms().GetByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if fresh.Name != "gophers" {
		t.Errorf("stored room name changed through a read: %q", fresh.Name)
	}
	if fresh.Host.Username != "alice" {
		t.Errorf("stored host changed through a read: %q", fresh.Host.Username)
	}

	user, err := store.Users().GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	user.Bio = "scribbled"
	if again, _ := store.Users().GetByID(ctx, alice.ID); again.Bio != "" {
		t.Errorf("stored user bio changed through a read: %q", again.Bio)
	}
}

func TestInMemoryStore_DeleteRoomCascades(t *testing.T) {
	store := NewInMemoryStore()
	alice := seedUser(t, store, "alice")
	room := seedRoom(t, store, alice, "Go", "gophers")
	other := seedRoom(t, store, alice, "Go", "more gophers")

	ctx := context.Background()
	for _, r := range []*domain.Room{room, other} {
		msg := domain.NewMessage(r, alice, "hello")
		if err := store.Messages().Create(ctx, msg); err != nil {
			t.Fatalf("create message: %v", err)
		}
	}

	if err := store.Rooms().Delete(ctx, room.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := store.Rooms().GetByID(ctx, room.ID); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrRoomNotFound", err)
	}

	orphans, err := store.Messages().ListByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("ListByRoom() error = %v", err)
	}
	if len(orphans) != 0 {
		t.Errorf("deleted room still has %d messages", len(orphans))
	}

	// The other room's messages survive, as does the topic and the host.
	kept, err := store.Messages().ListByRoom(ctx, other.ID)
	if err != nil {
		t.Fatalf("ListByRoom() error = %v", err)
	}
	if len(kept) != 1 {
		t.Errorf("surviving room has %d messages, want 1", len(kept))
	}
	if _, err := store.Users().GetByID(ctx, alice.ID); err != nil {
		t.Errorf("host lookup after room delete: %v", err)
	}
	if topics, _ := store.Topics().List(ctx, "", 0); len(topics) != 1 {
		t.Errorf("topic count after room delete = %d, want 1", len(topics))
	}
}

func TestInMemoryStore_MessagesByTopicFilter(t *testing.T) {
	store := NewInMemoryStore()
	alice := seedUser(t, store, "alice")
	pyRoom := seedRoom(t, store, alice, "Python", "Intro")
	goRoom := seedRoom(t, store, alice, "Go", "gophers")

	ctx := context.Background()
	if err := store.Messages().Create(ctx, domain.NewMessage(pyRoom, alice, "snakes")); err != nil {
		t.Fatal(err)
	}
	if err := store.Messages().Create(ctx, domain.NewMessage(goRoom, alice, "rodents")); err != nil {
		t.Fatal(err)
	}

	matched, err := store.Messages().ListByTopic(ctx, "py")
	if err != nil {
		t.Fatalf("ListByTopic() error = %v", err)
	}
	if len(matched) != 1 || matched[0].Body != "snakes" {
		t.Errorf("ListByTopic(py) = %d messages, want just the python one", len(matched))
	}

	all, err := store.Messages().ListByTopic(ctx, "")
	if err != nil {
		t.Fatalf("ListByTopic() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListByTopic(\"\") = %d messages, want 2", len(all))
	}
}

func TestInMemoryStore_TopicListLimit(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for _, name := range []string{"go", "python", "rust", "zig", "elixir", "c"} {
		if _, err := store.Topics().GetOrCreate(ctx, name); err != nil {
			t.Fatal(err)
		}
	}

	topics, err := store.Topics().List(ctx, "", 4)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(topics) != 4 {
		t.Errorf("List() with limit 4 returned %d topics", len(topics))
	}
}
