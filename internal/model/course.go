package model

import "time"

type Course struct {
	BaseModel
	Title       string  `gorm:"size:120;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Topics      []Topic `gorm:"foreignKey:CourseID" json:"topics,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Topic is a content unit with lessons and a relative study weight
// used by the planner. Weight must stay positive; 1 means neutral.
type Topic struct {
	BaseModel
	CourseID uint     `gorm:"index;not null" json:"courseId"`
	Title    string   `gorm:"size:120;not null" json:"title"`
	Summary  string   `gorm:"type:text" json:"summary"`
	Weight   float64  `gorm:"default:1" json:"weight"`
	Lessons  []Lesson `gorm:"foreignKey:TopicID" json:"lessons,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}

type Lesson struct {
	BaseModel
	TopicID uint   `gorm:"index;not null" json:"topicId"`
	Title   string `gorm:"size:160;not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Order   int    `gorm:"column:sort_order;default:1" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type Enrollment struct {
	BaseModel
	UserID   uint `gorm:"uniqueIndex:idx_enroll_user_course;not null" json:"userId"`
	CourseID uint `gorm:"uniqueIndex:idx_enroll_user_course;not null" json:"courseId"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// LessonProgress is unique per (user, lesson).
type LessonProgress struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_progress_user_lesson;not null" json:"userId"`
	LessonID    uint       `gorm:"uniqueIndex:idx_progress_user_lesson;not null" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
