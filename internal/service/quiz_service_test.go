package service

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/util"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(f *fixture) *QuizService {
	return NewQuizService(f.quiz, f.course, f.progress, rand.New(rand.NewSource(7)))
}

func TestSelectWeakTopics_RanksByCompletion(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newQuizService(f)

	course := f.seedCourse(t, "Mathematics")
	topicA, lessonsA := f.seedTopic(t, course.ID, "Algebra", 1, 3)
	topicB, _ := f.seedTopic(t, course.ID, "Geometry", 1, 2)

	const userID = 1
	require.NoError(t, f.progress.EnsureEnrollment(userID, course.ID))
	require.NoError(t, f.progress.MarkLessonCompleted(userID, lessonsA[0]))
	require.NoError(t, f.progress.MarkLessonCompleted(userID, lessonsA[1]))

	weak, err := svc.SelectWeakTopics(userID, 2)
	require.NoError(t, err)

	require.Len(t, weak, 2)
	assert.Equal(t, topicB.ID, weak[0].ID, "untouched topic should rank weakest")
	assert.Equal(t, topicA.ID, weak[1].ID)
}

func TestSelectWeakTopics_NoEnrollmentFallsBack(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newQuizService(f)

	course := f.seedCourse(t, "Mathematics")
	big, _ := f.seedTopic(t, course.ID, "Algebra", 1, 3)
	f.seedTopic(t, course.ID, "Geometry", 1, 1)

	weak, err := svc.SelectWeakTopics(42, 2)
	require.NoError(t, err)

	require.Len(t, weak, 2)
	assert.Equal(t, big.ID, weak[0].ID, "fallback ranks by lesson count")
}

func TestSelectWeakTopics_SkipsTopicsWithoutLessons(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newQuizService(f)

	course := f.seedCourse(t, "Mathematics")
	withLessons, _ := f.seedTopic(t, course.ID, "Algebra", 1, 2)
	f.seedTopic(t, course.ID, "Empty Topic", 1, 0)

	const userID = 1
	require.NoError(t, f.progress.EnsureEnrollment(userID, course.ID))

	weak, err := svc.SelectWeakTopics(userID, 2)
	require.NoError(t, err)

	require.Len(t, weak, 1)
	assert.Equal(t, withLessons.ID, weak[0].ID)
}

func TestCreateQuestion_RequiresExactlyOneCorrectChoice(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newQuizService(f)

	course := f.seedCourse(t, "Mathematics")
	topic, _ := f.seedTopic(t, course.ID, "Algebra", 1, 1)

	_, err := svc.CreateQuestion(topic.ID, "Q?", model.Easy, "", []NewChoice{
		{Text: "A", IsCorrect: true},
		{Text: "B", IsCorrect: true},
	})
	assert.ErrorIs(t, err, util.ErrChoiceSetInvalid)

	_, err = svc.CreateQuestion(topic.ID, "Q?", model.Easy, "", []NewChoice{
		{Text: "A"},
		{Text: "B"},
	})
	assert.ErrorIs(t, err, util.ErrChoiceSetInvalid)

	question, err := svc.CreateQuestion(topic.ID, "Q?", model.Easy, "because", []NewChoice{
		{Text: "A", IsCorrect: true},
		{Text: "B"},
	})
	require.NoError(t, err)
	assert.NotZero(t, question.ID)
	assert.Len(t, question.Choices, 2)
}

func TestCreateQuestion_UnknownTopic(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newQuizService(f)

	_, err := svc.CreateQuestion(999, "Q?", model.Easy, "", []NewChoice{
		{Text: "A", IsCorrect: true},
		{Text: "B"},
	})
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
}

func TestSubmitQuiz_GradesAndPersists(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newQuizService(f)

	course := f.seedCourse(t, "Mathematics")
	topic, _ := f.seedTopic(t, course.ID, "Algebra", 1, 1)

	q1, err := svc.CreateQuestion(topic.ID, "1+1?", model.Easy, "basic sum", []NewChoice{
		{Text: "2", IsCorrect: true},
		{Text: "3"},
	})
	require.NoError(t, err)
	q2, err := svc.CreateQuestion(topic.ID, "2+2?", model.Easy, "", []NewChoice{
		{Text: "4", IsCorrect: true},
		{Text: "5"},
	})
	require.NoError(t, err)

	var correctChoice, wrongChoice uint
	for _, c := range q1.Choices {
		if c.IsCorrect {
			correctChoice = c.ID
		}
	}
	for _, c := range q2.Choices {
		if !c.IsCorrect {
			wrongChoice = c.ID
		}
	}

	const userID = 1
	result, err := svc.SubmitQuiz(userID, []AnswerInput{
		{QuestionID: q1.ID, ChoiceID: correctChoice},
		{QuestionID: q2.ID, ChoiceID: wrongChoice},
		{QuestionID: 9999, ChoiceID: 1}, // unknown question, skipped
	}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Feedback, 2)
	assert.True(t, result.Feedback[0].Correct)
	assert.False(t, result.Feedback[1].Correct)
	require.NotNil(t, result.Feedback[1].CorrectAnswer)
	assert.Equal(t, "4", *result.Feedback[1].CorrectAnswer)

	history, err := svc.History(userID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "weekly", history[0].Source)
	assert.Equal(t, 1, history[0].Score)
}

func TestSubmitQuiz_ForeignChoiceCountsAsWrong(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newQuizService(f)

	course := f.seedCourse(t, "Mathematics")
	topic, _ := f.seedTopic(t, course.ID, "Algebra", 1, 1)

	q, err := svc.CreateQuestion(topic.ID, "1+1?", model.Easy, "", []NewChoice{
		{Text: "2", IsCorrect: true},
		{Text: "3"},
	})
	require.NoError(t, err)

	result, err := svc.SubmitQuiz(1, []AnswerInput{
		{QuestionID: q.ID, ChoiceID: 99999},
	}, "weekly")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Feedback, 1)
	assert.Nil(t, result.Feedback[0].YourAnswer)
}

func TestGenerateQuiz_HidesCorrectnessAndBalances(t *testing.T) {
	db := newTestDB(t)
	f := newFixture(db)
	svc := newQuizService(f)

	course := f.seedCourse(t, "Mathematics")
	topic, _ := f.seedTopic(t, course.ID, "Algebra", 1, 2)

	const userID = 1
	require.NoError(t, f.progress.EnsureEnrollment(userID, course.ID))

	for _, d := range []model.Difficulty{model.Easy, model.Medium, model.Hard} {
		for i := 0; i < 3; i++ {
			_, err := svc.CreateQuestion(topic.ID, string(d)+" question", d, "", []NewChoice{
				{Text: "right", IsCorrect: true},
				{Text: "wrong"},
			})
			require.NoError(t, err)
		}
	}

	views, err := svc.GenerateQuiz(userID, 6)
	require.NoError(t, err)

	require.Len(t, views, 6)
	counts := map[model.Difficulty]int{}
	for _, v := range views {
		counts[v.Difficulty]++
		assert.Equal(t, "Algebra", v.Topic)
		assert.Len(t, v.Choices, 2)
	}
	assert.Equal(t, 2, counts[model.Easy])
	assert.Equal(t, 2, counts[model.Medium])
	assert.Equal(t, 2, counts[model.Hard])
}
