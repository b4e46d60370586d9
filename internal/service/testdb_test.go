package service

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/repository"
	"adhyeta_backend/pkg/database"
	"adhyeta_backend/pkg/logger"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

type fixture struct {
	course   *repository.CourseRepository
	progress *repository.ProgressRepository
	quiz     *repository.QuizRepository
	plan     *repository.PlanRepository
}

func newFixture(db *gorm.DB) *fixture {
	return &fixture{
		course:   repository.NewCourseRepository(db),
		progress: repository.NewProgressRepository(db),
		quiz:     repository.NewQuizRepository(db),
		plan:     repository.NewPlanRepository(db),
	}
}

// seedTopic creates a topic with n lessons under the given course and
// returns the topic and its lesson ids in order.
func (f *fixture) seedTopic(t *testing.T, courseID uint, title string, weight float64, lessons int) (*model.Topic, []uint) {
	t.Helper()

	topic := &model.Topic{CourseID: courseID, Title: title, Weight: weight}
	if err := f.course.CreateTopic(topic); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	ids := make([]uint, 0, lessons)
	for i := 0; i < lessons; i++ {
		lesson := &model.Lesson{
			TopicID: topic.ID,
			Title:   fmt.Sprintf("%s Lesson %d", title, i+1),
			Content: fmt.Sprintf("Material for %s, part %d.", title, i+1),
			Order:   i + 1,
		}
		if err := f.course.CreateLesson(lesson); err != nil {
			t.Fatalf("create lesson: %v", err)
		}
		ids = append(ids, lesson.ID)
	}

	return topic, ids
}

func (f *fixture) seedCourse(t *testing.T, title string) *model.Course {
	t.Helper()

	course := &model.Course{Title: title, Description: title + " description"}
	if err := f.course.Create(course); err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}
