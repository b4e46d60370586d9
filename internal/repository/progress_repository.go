package repository

import (
	"adhyeta_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) EnrollmentsByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).Find(&enrollments).Error
	return enrollments, err
}

func (r *ProgressRepository) HasEnrollments(userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *ProgressRepository) EnsureEnrollment(userID, courseID uint) error {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(&model.Enrollment{UserID: userID, CourseID: courseID}).Error
	}
	return err
}

// MarkLessonCompleted upserts the (user, lesson) progress row and stamps
// the completion time.
func (r *ProgressRepository) MarkLessonCompleted(userID, lessonID uint) error {
	now := time.Now()

	var progress model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(&model.LessonProgress{
			UserID:      userID,
			LessonID:    lessonID,
			Completed:   true,
			CompletedAt: &now,
		}).Error
	}
	if err != nil {
		return err
	}

	progress.Completed = true
	progress.CompletedAt = &now
	return r.DB.Save(&progress).Error
}

func (r *ProgressRepository) CompletedLessonIDs(userID, topicID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&model.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Where("lesson_progress.user_id = ? AND lesson_progress.completed = ? AND lessons.topic_id = ?", userID, true, topicID).
		Pluck("lesson_progress.lesson_id", &ids).Error
	if err != nil {
		return nil, err
	}

	done := make(map[uint]bool, len(ids))
	for _, id := range ids {
		done[id] = true
	}
	return done, nil
}

func (r *ProgressRepository) CountCompletedByTopic(userID, topicID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Where("lesson_progress.user_id = ? AND lesson_progress.completed = ? AND lessons.topic_id = ?", userID, true, topicID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedByCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Joins("JOIN topics ON topics.id = lessons.topic_id").
		Where("lesson_progress.user_id = ? AND lesson_progress.completed = ? AND topics.course_id = ?", userID, true, courseID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) IsLessonCompleted(userID, lessonID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ? AND completed = ?", userID, lessonID, true).
		Count(&count).Error
	return count > 0, err
}

// DailyCompletion is one day's completed-lesson count.
type DailyCompletion struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// CompletionsByDay groups completions per calendar day in [start, end].
func (r *ProgressRepository) CompletionsByDay(userID uint, start, end time.Time) ([]DailyCompletion, error) {
	var rows []DailyCompletion
	err := r.DB.Model(&model.LessonProgress{}).
		Select("DATE(completed_at) AS day, COUNT(id) AS count").
		Where("user_id = ? AND completed = ? AND completed_at >= ? AND completed_at < ?",
			userID, true, start, end.AddDate(0, 0, 1)).
		Group("DATE(completed_at)").
		Scan(&rows).Error
	return rows, err
}
