package repository

import (
	"adhyeta_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseSummary carries a course row plus its content counts.
type CourseSummary struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	TopicsCount  int64  `json:"topicsCount"`
	LessonsCount int64  `json:"lessonsCount"`
}

func (r *CourseRepository) ListSummaries() ([]CourseSummary, error) {
	var courses []model.Course
	if err := r.DB.Order("title").Find(&courses).Error; err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		var topics int64
		if err := r.DB.Model(&model.Topic{}).Where("course_id = ?", c.ID).Count(&topics).Error; err != nil {
			return nil, err
		}

		var lessons int64
		err := r.DB.Model(&model.Lesson{}).
			Joins("JOIN topics ON topics.id = lessons.topic_id").
			Where("topics.course_id = ?", c.ID).
			Count(&lessons).Error
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, CourseSummary{
			ID:           c.ID,
			Title:        c.Title,
			Description:  c.Description,
			TopicsCount:  topics,
			LessonsCount: lessons,
		})
	}

	return summaries, nil
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) CountCourses() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Count(&count).Error
	return count, err
}

func (r *CourseRepository) TopicsByCourse(courseID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("course_id = ?", courseID).Find(&topics).Error
	return topics, err
}

func (r *CourseRepository) TopicsByCourses(courseIDs []uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("course_id IN ?", courseIDs).Find(&topics).Error
	return topics, err
}

func (r *CourseRepository) FindTopicByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *CourseRepository) AllTopics() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Find(&topics).Error
	return topics, err
}

// TopicsByLessonCount returns topics ordered by descending lesson count,
// the fallback ranking for users with no history.
func (r *CourseRepository) TopicsByLessonCount(limit int) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Model(&model.Topic{}).
		Select("topics.*, COUNT(lessons.id) AS n").
		Joins("LEFT JOIN lessons ON lessons.topic_id = topics.id").
		Group("topics.id").
		Order("n DESC").
		Limit(limit).
		Find(&topics).Error
	return topics, err
}

func (r *CourseRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *CourseRepository) LessonsByTopic(topicID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("topic_id = ?", topicID).Order("sort_order").Find(&lessons).Error
	return lessons, err
}

func (r *CourseRepository) FindLessonByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *CourseRepository) CreateLesson(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *CourseRepository) CountLessonsByTopic(topicID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountLessonsByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).
		Joins("JOIN topics ON topics.id = lessons.topic_id").
		Where("topics.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

// SearchLessons matches the term against lesson titles and content,
// case-insensitively, for the assistant's "explain" intent.
func (r *CourseRepository) SearchLessons(term string, limit int) ([]model.Lesson, error) {
	var lessons []model.Lesson
	pattern := "%" + term + "%"
	err := r.DB.Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", pattern, pattern).
		Limit(limit).
		Find(&lessons).Error
	return lessons, err
}

// LessonsOrdered returns all lessons for the given courses in topic then
// lesson order, used to find the next incomplete lesson.
func (r *CourseRepository) LessonsOrdered(courseIDs []uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.
		Joins("JOIN topics ON topics.id = lessons.topic_id").
		Where("topics.course_id IN ?", courseIDs).
		Order("lessons.topic_id, lessons.sort_order").
		Find(&lessons).Error
	return lessons, err
}

func (r *CourseRepository) FirstLesson() (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Order("topic_id, sort_order").First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ResolveTopicByName finds the first topic whose title contains the name,
// case-insensitively.
func (r *CourseRepository) ResolveTopicByName(name string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where("LOWER(title) LIKE LOWER(?)", "%"+name+"%").
		Order("id").
		First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}
