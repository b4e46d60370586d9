package service

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/repository"
	"adhyeta_backend/internal/util"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAssistantService(db *gorm.DB, f *fixture) *AssistantService {
	return NewAssistantService(repository.NewAssistantRepository(db), f.course, f.progress)
}

func TestAssistant_ThreadOwnership(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newAssistantService(db, f)

	thread, err := svc.StartThread(1, "")
	require.NoError(t, err)
	assert.Equal(t, "New Assistant Session", thread.Title)

	_, err = svc.SendMessage(2, thread.ID, "hello")
	assert.ErrorIs(t, err, util.ErrThreadNotFound)

	_, err = svc.Messages(2, thread.ID)
	assert.ErrorIs(t, err, util.ErrThreadNotFound)
}

func TestAssistant_GreetingAndFallback(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newAssistantService(db, f)

	thread, err := svc.StartThread(1, "study help")
	require.NoError(t, err)

	reply, err := svc.SendMessage(1, thread.ID, "hey there")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAssistant, reply.Role)
	assert.Contains(t, reply.Content, "Hello")

	reply, err = svc.SendMessage(1, thread.ID, "zzzzz")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "explain")

	messages, err := svc.Messages(1, thread.ID)
	require.NoError(t, err)
	assert.Len(t, messages, 4, "each exchange stores both sides")
}

func TestAssistant_ExplainSearchesLessons(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newAssistantService(db, f)

	course := f.seedCourse(t, "Mathematics")
	topic := &model.Topic{CourseID: course.ID, Title: "Algebra", Weight: 1}
	require.NoError(t, f.course.CreateTopic(topic))
	require.NoError(t, f.course.CreateLesson(&model.Lesson{
		TopicID: topic.ID,
		Title:   "Quadratic Equations",
		Content: "<p>A quadratic equation has the form ax^2+bx+c=0.</p>",
		Order:   1,
	}))

	thread, err := svc.StartThread(1, "")
	require.NoError(t, err)

	reply, err := svc.SendMessage(1, thread.ID, "explain quadratic equations")
	require.NoError(t, err)

	assert.Contains(t, reply.Content, "Quadratic Equations")
	assert.Contains(t, reply.Content, "ax^2+bx+c=0")
	assert.NotContains(t, reply.Content, "<p>", "markup must be stripped")
}

func TestAssistant_ExplainUnknownTerm(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newAssistantService(db, f)

	thread, err := svc.StartThread(1, "")
	require.NoError(t, err)

	reply, err := svc.SendMessage(1, thread.ID, "what is flux capacitance")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "couldn't find")
}

func TestAssistant_NextLessonRecommendation(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newAssistantService(db, f)

	course := f.seedCourse(t, "Mathematics")
	_, lessons := f.seedTopic(t, course.ID, "Algebra", 1, 2)

	const userID = 1
	require.NoError(t, f.progress.EnsureEnrollment(userID, course.ID))
	require.NoError(t, f.progress.MarkLessonCompleted(userID, lessons[0]))

	thread, err := svc.StartThread(userID, "")
	require.NoError(t, err)

	reply, err := svc.SendMessage(userID, thread.ID, "what should I study next?")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Algebra Lesson 2")

	// Everything done: the reply changes.
	require.NoError(t, f.progress.MarkLessonCompleted(userID, lessons[1]))
	reply, err = svc.SendMessage(userID, thread.ID, "recommend something")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "completed every lesson")
}

func TestAssistant_NextLessonWithoutEnrollment(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newAssistantService(db, f)

	course := f.seedCourse(t, "Mathematics")
	f.seedTopic(t, course.ID, "Algebra", 1, 1)

	thread, err := svc.StartThread(5, "")
	require.NoError(t, err)

	reply, err := svc.SendMessage(5, thread.ID, "continue")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Algebra Lesson 1")
}

func TestAssistant_PlanPrefix(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newAssistantService(db, f)

	thread, err := svc.StartThread(1, "")
	require.NoError(t, err)

	reply, err := svc.SendMessage(1, thread.ID, "plan: crack algebra in two weeks")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "crack algebra in two weeks")
	assert.Contains(t, reply.Content, "study planner")
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("word ", 200)
	short := snippet(long, 50)
	assert.LessOrEqual(t, len(short), 54)
	assert.True(t, strings.HasSuffix(short, "..."))

	assert.Equal(t, "plain text", snippet("<b>plain</b> text", 100))
}
