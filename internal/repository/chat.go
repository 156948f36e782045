package repository

import (
	"zapzap/backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository interface {
	// Append adds one record to the message log. Nothing ever updates or
	// deletes log entries.
	Append(message *model.Message) error
	// FindPrivate is symmetric in its arguments: it returns every private
	// message exchanged between the two users, in either direction.
	FindPrivate(userA, userB string) ([]model.Message, error)
	FindGroup(groupID string) ([]model.Message, error)
	// FindInvolving returns all private messages the user sent or
	// received, timestamp ascending.
	FindInvolving(userID string) ([]model.Message, error)
}

type chatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Append(message *model.Message) error {
	return r.db.Create(message).Error
}

func (r *chatRepository) FindPrivate(userA, userB string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.
		Where("chat_type = ?", model.ChatTypePrivate).
		Where("(sender_id = ? AND target_id = ?) OR (sender_id = ? AND target_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatRepository) FindGroup(groupID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.
		Where("chat_type = ? AND target_id = ?", model.ChatTypeGroup, groupID).
		Order("timestamp asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatRepository) FindInvolving(userID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.
		Where("chat_type = ?", model.ChatTypePrivate).
		Where("sender_id = ? OR target_id = ?", userID, userID).
		Order("timestamp asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
