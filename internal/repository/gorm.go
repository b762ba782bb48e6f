package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/roomtalk/internal/domain"
	"github.com/immxrtalbeast/roomtalk/internal/repository/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// containsPattern builds the LIKE pattern for case-insensitive substring
// search. LOWER on both sides keeps it portable between postgres and sqlite.
func containsPattern(filter string) string {
	return "%" + strings.ToLower(filter) + "%"
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == nil {
		return errors.New("user is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelUser(user)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *GormUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toDomainUser(&user), nil
}

func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user model.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toDomainUser(&user), nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if user == nil {
		return errors.New("user is nil")
	}

	userModel := toModelUser(user)

	updates := map[string]any{
		"username":   userModel.Username,
		"bio":        userModel.Bio,
		"updated_at": userModel.UpdatedAt,
	}
	if userModel.Email == nil {
		updates["email"] = gorm.Expr("NULL")
	} else {
		updates["email"] = userModel.Email
	}

	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userModel.ID).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

type GormTopicRepository struct {
	db *gorm.DB
}

func NewGormTopicRepository(db *gorm.DB) *GormTopicRepository {
	return &GormTopicRepository{db: db}
}

func (r *GormTopicRepository) GetOrCreate(ctx context.Context, name string) (*domain.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topic := domain.NewTopic(name)

	// Insert-or-skip against the unique index on name; a lost race falls
	// through to fetching whoever won.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(toModelTopic(topic))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return topic, nil
	}

	var existing model.Topic
	if err := r.db.WithContext(ctx).First(&existing, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	return toDomainTopic(&existing), nil
}

func (r *GormTopicRepository) List(ctx context.Context, filter string, limit int) ([]*domain.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", containsPattern(filter)).
		Order("name ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var topics []model.Topic
	if err := tx.Find(&topics).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Topic, 0, len(topics))
	for i := range topics {
		result = append(result, toDomainTopic(&topics[i]))
	}
	return result, nil
}

type GormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if room == nil {
		return errors.New("room is nil")
	}

	return r.db.WithContext(ctx).Omit("Host", "Topic", "Participants", "Messages").
		Create(toModelRoom(room)).Error
}

func (r *GormRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("Host").Preload("Topic").Preload("Participants").
		First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return toDomainRoom(&room), nil
}

func (r *GormRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if room == nil {
		return errors.New("room is nil")
	}

	roomModel := toModelRoom(room)

	res := r.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", roomModel.ID).Updates(map[string]any{
		"name":        roomModel.Name,
		"description": roomModel.Description,
		"topic_id":    roomModel.TopicID,
		"updated_at":  roomModel.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&model.RoomParticipant{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Room{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomNotFound
		}
		return nil
	})
}

func (r *GormRoomRepository) Search(ctx context.Context, filter string) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pattern := containsPattern(filter)

	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Joins("JOIN topics ON topics.id = rooms.topic_id").
		Joins("JOIN users ON users.id = rooms.host_id").
		Where("LOWER(topics.name) LIKE ? OR LOWER(rooms.name) LIKE ? OR LOWER(users.username) LIKE ?",
			pattern, pattern, pattern).
		Preload("Host").Preload("Topic").Preload("Participants").
		Order("rooms.created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Room, 0, len(rooms))
	for i := range rooms {
		result = append(result, toDomainRoom(&rooms[i]))
	}
	return result, nil
}

func (r *GormRoomRepository) ListByHost(ctx context.Context, hostID uuid.UUID) ([]*domain.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Preload("Host").Preload("Topic").Preload("Participants").
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Room, 0, len(rooms))
	for i := range rooms {
		result = append(result, toDomainRoom(&rooms[i]))
	}
	return result, nil
}

func (r *GormRoomRepository) CountByTopic(ctx context.Context) (map[uuid.UUID]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []struct {
		TopicID uuid.UUID
		Total   int
	}
	err := r.db.WithContext(ctx).Model(&model.Room{}).
		Select("topic_id, COUNT(*) AS total").
		Group("topic_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.TopicID] = row.Total
	}
	return counts, nil
}

func (r *GormRoomRepository) AddParticipant(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	link := model.RoomParticipant{RoomID: roomID, UserID: userID, CreatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if message == nil {
		return errors.New("message is nil")
	}

	return r.db.WithContext(ctx).Omit("Room", "Author").
		Create(toModelMessage(message)).Error
}

func (r *GormMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var message model.Message
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Room.Host").Preload("Room.Topic").
		First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	return toDomainMessage(&message), nil
}

func (r *GormMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Message{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *GormMessageRepository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error) {
	return r.list(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("messages.room_id = ?", roomID)
	})
}

func (r *GormMessageRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Message, error) {
	return r.list(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("messages.author_id = ?", authorID)
	})
}

func (r *GormMessageRepository) ListByTopic(ctx context.Context, filter string) ([]*domain.Message, error) {
	pattern := containsPattern(filter)
	return r.list(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("JOIN rooms ON rooms.id = messages.room_id").
			Joins("JOIN topics ON topics.id = rooms.topic_id").
			Where("LOWER(topics.name) LIKE ?", pattern)
	})
}

func (r *GormMessageRepository) List(ctx context.Context) ([]*domain.Message, error) {
	return r.list(ctx, func(tx *gorm.DB) *gorm.DB { return tx })
}

func (r *GormMessageRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var messages []model.Message
	err := scope(r.db.WithContext(ctx)).
		Preload("Author").Preload("Room.Host").Preload("Room.Topic").
		Order("messages.created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Message, 0, len(messages))
	for i := range messages {
		result = append(result, toDomainMessage(&messages[i]))
	}
	return result, nil
}
