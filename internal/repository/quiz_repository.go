package repository

import (
	"adhyeta_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) QuestionsByTopics(topicIDs []uint) ([]model.QuizQuestion, error) {
	if len(topicIDs) == 0 {
		return nil, nil
	}

	var questions []model.QuizQuestion
	err := r.DB.Preload("Choices").Where("topic_id IN ?", topicIDs).Find(&questions).Error
	return questions, err
}

func (r *QuizRepository) FindQuestionWithChoices(id uint) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	err := r.DB.Preload("Choices").First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuizRepository) FindChoice(choiceID, questionID uint) (*model.QuizChoice, error) {
	var choice model.QuizChoice
	err := r.DB.Where("id = ? AND question_id = ?", choiceID, questionID).First(&choice).Error
	if err != nil {
		return nil, err
	}
	return &choice, nil
}

// CreateQuestion writes the question and its choices in one transaction.
func (r *QuizRepository) CreateQuestion(question *model.QuizQuestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(question).Error
	})
}

func (r *QuizRepository) CountQuestions() (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizQuestion{}).Count(&count).Error
	return count, err
}

// CreateAttempt persists the attempt with its answers atomically.
func (r *QuizRepository) CreateAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(attempt).Error
	})
}

func (r *QuizRepository) AttemptsByUser(userID uint, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}
