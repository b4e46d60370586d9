package service

import (
	"adhyeta_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLearningService(f *fixture) *LearningService {
	return NewLearningService(f.course, f.progress)
}

func TestMarkLesson_AutoEnrolls(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newLearningService(f)

	course := f.seedCourse(t, "Mathematics")
	_, lessons := f.seedTopic(t, course.ID, "Algebra", 1, 2)

	const userID = 1
	enrolled, err := f.progress.HasEnrollments(userID)
	require.NoError(t, err)
	require.False(t, enrolled)

	require.NoError(t, svc.MarkLesson(userID, lessons[0]))

	enrolled, err = f.progress.HasEnrollments(userID)
	require.NoError(t, err)
	assert.True(t, enrolled, "completing a lesson enrolls into its course")

	// Marking twice stays a single progress row.
	require.NoError(t, svc.MarkLesson(userID, lessons[0]))

	done, err := f.progress.CountCompletedByCourse(userID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), done)
}

func TestMarkLesson_UnknownLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(newFixture(db))

	err := svc.MarkLesson(1, 999)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)
}

func TestLessonsForTopic_FlagsCompletion(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newLearningService(f)

	course := f.seedCourse(t, "Mathematics")
	topic, lessons := f.seedTopic(t, course.ID, "Algebra", 1, 3)

	const userID = 1
	require.NoError(t, svc.MarkLesson(userID, lessons[1]))

	views, err := svc.LessonsForTopic(topic.ID, userID)
	require.NoError(t, err)

	require.Len(t, views, 3)
	assert.False(t, views[0].Completed)
	assert.True(t, views[1].Completed)
	assert.False(t, views[2].Completed)

	// Anonymous callers see everything incomplete.
	anon, err := svc.LessonsForTopic(topic.ID, 0)
	require.NoError(t, err)
	for _, v := range anon {
		assert.False(t, v.Completed)
	}
}

func TestMyProgress_PercentRounded(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newLearningService(f)

	course := f.seedCourse(t, "Mathematics")
	_, lessons := f.seedTopic(t, course.ID, "Algebra", 1, 3)

	const userID = 1
	require.NoError(t, svc.MarkLesson(userID, lessons[0]))

	progress, err := svc.MyProgress(userID)
	require.NoError(t, err)

	require.Len(t, progress, 1)
	assert.Equal(t, course.ID, progress[0].CourseID)
	assert.Equal(t, int64(1), progress[0].Done)
	assert.Equal(t, int64(3), progress[0].Total)
	assert.InDelta(t, 33.3, progress[0].Percent, 0.001)
}

func TestWeeklyProgress_CountsThisWeek(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newLearningService(f)

	course := f.seedCourse(t, "Mathematics")
	_, lessons := f.seedTopic(t, course.ID, "Algebra", 1, 2)

	const userID = 1
	require.NoError(t, svc.MarkLesson(userID, lessons[0]))
	require.NoError(t, svc.MarkLesson(userID, lessons[1]))

	chart, err := svc.WeeklyProgress(userID)
	require.NoError(t, err)

	assert.Len(t, chart.Labels, 7)
	assert.Len(t, chart.Counts, 7)
	assert.Equal(t, int64(2), chart.TotalWeek)
	assert.Equal(t, int64(2), chart.MaxDay)
	assert.Equal(t, int64(2), chart.Counts[6], "today is the last column")
}

func TestGetCourse_UnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newLearningService(newFixture(db))

	_, err := svc.GetCourse(404)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestSeedDemo_Idempotent(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	seeder := NewSeedService(f.course, f.quiz)

	created, err := seeder.SeedDemo()
	require.NoError(t, err)
	assert.True(t, created)

	created, err = seeder.SeedDemo()
	require.NoError(t, err)
	assert.False(t, created, "second run must not duplicate content")

	count, err := f.course.CountCourses()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSeedQuestions_CoversEveryTopicAndTier(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	seeder := NewSeedService(f.course, f.quiz)

	_, err := seeder.SeedDemo()
	require.NoError(t, err)

	created, err := seeder.SeedQuestions()
	require.NoError(t, err)

	topics, err := f.course.AllTopics()
	require.NoError(t, err)
	assert.Equal(t, len(topics)*6, created, "two questions per difficulty per topic")

	again, err := seeder.SeedQuestions()
	require.NoError(t, err)
	assert.Zero(t, again)
}
