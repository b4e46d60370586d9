package service

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/repository"
	"adhyeta_backend/internal/util"
	"math"
	"time"

	"gorm.io/gorm"
)

type LearningService struct {
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
}

func NewLearningService(courseRepo *repository.CourseRepository, progressRepo *repository.ProgressRepository) *LearningService {
	return &LearningService{
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
	}
}

func (s *LearningService) ListCourses() ([]repository.CourseSummary, error) {
	return s.CourseRepo.ListSummaries()
}

type CourseDetail struct {
	Course *model.Course `json:"course"`
	Topics []model.Topic `json:"topics"`
}

func (s *LearningService) GetCourse(courseID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	topics, err := s.CourseRepo.TopicsByCourse(courseID)
	if err != nil {
		return nil, err
	}

	return &CourseDetail{Course: course, Topics: topics}, nil
}

// LessonView is a lesson row flagged with the caller's completion state.
type LessonView struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Order     int    `json:"order"`
	Completed bool   `json:"completed"`
}

// LessonsForTopic lists a topic's lessons in order. userID 0 means an
// anonymous caller; everything reads as incomplete.
func (s *LearningService) LessonsForTopic(topicID, userID uint) ([]LessonView, error) {
	if _, err := s.CourseRepo.FindTopicByID(topicID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	lessons, err := s.CourseRepo.LessonsByTopic(topicID)
	if err != nil {
		return nil, err
	}

	done := map[uint]bool{}
	if userID != 0 {
		done, err = s.ProgressRepo.CompletedLessonIDs(userID, topicID)
		if err != nil {
			return nil, err
		}
	}

	views := make([]LessonView, 0, len(lessons))
	for _, l := range lessons {
		views = append(views, LessonView{
			ID:        l.ID,
			Title:     l.Title,
			Content:   l.Content,
			Order:     l.Order,
			Completed: done[l.ID],
		})
	}
	return views, nil
}

// MarkLesson records a lesson as completed and enrolls the user into the
// lesson's course if they were not already.
func (s *LearningService) MarkLesson(userID, lessonID uint) error {
	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrLessonNotFound
	}
	if err != nil {
		return err
	}

	topic, err := s.CourseRepo.FindTopicByID(lesson.TopicID)
	if err != nil {
		return err
	}

	if err := s.ProgressRepo.EnsureEnrollment(userID, topic.CourseID); err != nil {
		return err
	}

	return s.ProgressRepo.MarkLessonCompleted(userID, lessonID)
}

// CourseProgress is the per-course completion summary.
type CourseProgress struct {
	CourseID uint    `json:"courseId"`
	Title    string  `json:"title"`
	Done     int64   `json:"done"`
	Total    int64   `json:"total"`
	Percent  float64 `json:"percent"`
}

// MyProgress reports completion over every enrolled course, percent
// rounded to one decimal.
func (s *LearningService) MyProgress(userID uint) ([]CourseProgress, error) {
	enrollments, err := s.ProgressRepo.EnrollmentsByUser(userID)
	if err != nil {
		return nil, err
	}

	progress := make([]CourseProgress, 0, len(enrollments))
	for _, e := range enrollments {
		course, err := s.CourseRepo.FindByID(e.CourseID)
		if err != nil {
			return nil, err
		}

		total, err := s.CourseRepo.CountLessonsByCourse(e.CourseID)
		if err != nil {
			return nil, err
		}

		done, err := s.ProgressRepo.CountCompletedByCourse(userID, e.CourseID)
		if err != nil {
			return nil, err
		}

		percent := 0.0
		if total > 0 {
			percent = math.Round(float64(done)/float64(total)*1000) / 10
		}

		progress = append(progress, CourseProgress{
			CourseID: e.CourseID,
			Title:    course.Title,
			Done:     done,
			Total:    total,
			Percent:  percent,
		})
	}

	return progress, nil
}

// WeeklyChart is seven consecutive days of completion counts ending
// today.
type WeeklyChart struct {
	Labels    []string `json:"labels"`
	Counts    []int64  `json:"counts"`
	TotalWeek int64    `json:"total_week"`
	MaxDay    int64    `json:"max_day"`
}

func (s *LearningService) WeeklyProgress(userID uint) (*WeeklyChart, error) {
	today := time.Now()
	start := today.AddDate(0, 0, -6)

	rows, err := s.ProgressRepo.CompletionsByDay(userID, startOfDay(start), today)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]int64, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row.Count
	}

	chart := &WeeklyChart{
		Labels: make([]string, 0, 7),
		Counts: make([]int64, 0, 7),
	}
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		count := byDay[day.Format("2006-01-02")]

		chart.Labels = append(chart.Labels, day.Format("Mon"))
		chart.Counts = append(chart.Counts, count)
		chart.TotalWeek += count
		if count > chart.MaxDay {
			chart.MaxDay = count
		}
	}

	return chart, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
