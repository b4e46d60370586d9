package repository

import (
	"adhyeta_backend/internal/model"

	"gorm.io/gorm"
)

type AssistantRepository struct {
	DB *gorm.DB
}

func NewAssistantRepository(db *gorm.DB) *AssistantRepository {
	return &AssistantRepository{DB: db}
}

func (r *AssistantRepository) CreateThread(thread *model.AssistantThread) error {
	return r.DB.Create(thread).Error
}

func (r *AssistantRepository) FindThread(threadID string, userID uint) (*model.AssistantThread, error) {
	var thread model.AssistantThread
	err := r.DB.Where("id = ? AND user_id = ?", threadID, userID).First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

func (r *AssistantRepository) CreateMessage(msg *model.AssistantMessage) error {
	return r.DB.Create(msg).Error
}

func (r *AssistantRepository) MessagesByThread(threadID string) ([]model.AssistantMessage, error) {
	var messages []model.AssistantMessage
	err := r.DB.Where("thread_id = ?", threadID).Order("created_at, id").Find(&messages).Error
	return messages, err
}
