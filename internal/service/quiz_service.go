package service

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/repository"
	"adhyeta_backend/internal/util"
	"math/rand"
	"sort"
	"sync"

	"gorm.io/gorm"
)

const (
	DefaultQuizCount   = 6
	WeakTopicLimit     = 2
	perDifficultyQuota = 2
)

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository

	// rng is injected so tests can seed deterministic draws. Guarded by
	// mu since rand.Rand is not safe for concurrent use.
	rng *rand.Rand
	mu  sync.Mutex
}

func NewQuizService(quizRepo *repository.QuizRepository, courseRepo *repository.CourseRepository, progressRepo *repository.ProgressRepository, rng *rand.Rand) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		rng:          rng,
	}
}

// topicStat pairs a topic with the user's completion ratio over its
// lessons.
type topicStat struct {
	topic model.Topic
	ratio float64
}

// SelectWeakTopics ranks the user's enrolled topics by ascending
// completion ratio and returns at most limit of them. Topics without
// lessons are excluded from the ranking. Users without any enrollment
// fall back to the topics with the most content.
func (s *QuizService) SelectWeakTopics(userID uint, limit int) ([]model.Topic, error) {
	enrollments, err := s.ProgressRepo.EnrollmentsByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return s.CourseRepo.TopicsByLessonCount(limit)
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}

	topics, err := s.CourseRepo.TopicsByCourses(courseIDs)
	if err != nil {
		return nil, err
	}

	stats := make([]topicStat, 0, len(topics))
	for _, t := range topics {
		total, err := s.CourseRepo.CountLessonsByTopic(t.ID)
		if err != nil {
			return nil, err
		}
		if total == 0 {
			continue
		}

		done, err := s.ProgressRepo.CountCompletedByTopic(userID, t.ID)
		if err != nil {
			return nil, err
		}

		stats = append(stats, topicStat{topic: t, ratio: float64(done) / float64(total)})
	}

	ranked := rankWeakest(stats, limit)
	if len(ranked) == 0 {
		return s.CourseRepo.TopicsByLessonCount(limit)
	}
	return ranked, nil
}

// rankWeakest sorts ascending by ratio (stable, so DB order breaks ties)
// and truncates to limit.
func rankWeakest(stats []topicStat, limit int) []model.Topic {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ratio < stats[j].ratio
	})

	if limit > len(stats) {
		limit = len(stats)
	}

	topics := make([]model.Topic, 0, limit)
	for _, st := range stats[:limit] {
		topics = append(topics, st.topic)
	}
	return topics
}

// ComposeQuiz draws a difficulty-balanced set: up to 2 questions per
// tier chosen uniformly without replacement, backfilled from the
// remaining pool until count, truncated to count. An empty pool yields
// an empty quiz.
func ComposeQuiz(pool []model.QuizQuestion, count int, rng *rand.Rand) []model.QuizQuestion {
	byTier := map[model.Difficulty][]model.QuizQuestion{}
	for _, q := range pool {
		byTier[q.Difficulty] = append(byTier[q.Difficulty], q)
	}

	chosenIDs := map[uint]bool{}
	var chosen []model.QuizQuestion
	for _, tier := range []model.Difficulty{model.Easy, model.Medium, model.Hard} {
		bucket := byTier[tier]
		rng.Shuffle(len(bucket), func(i, j int) {
			bucket[i], bucket[j] = bucket[j], bucket[i]
		})

		take := perDifficultyQuota
		if take > len(bucket) {
			take = len(bucket)
		}
		for _, q := range bucket[:take] {
			chosen = append(chosen, q)
			chosenIDs[q.ID] = true
		}
	}

	if len(chosen) < count {
		var rest []model.QuizQuestion
		for _, q := range pool {
			if !chosenIDs[q.ID] {
				rest = append(rest, q)
			}
		}
		rng.Shuffle(len(rest), func(i, j int) {
			rest[i], rest[j] = rest[j], rest[i]
		})

		need := count - len(chosen)
		if need > len(rest) {
			need = len(rest)
		}
		chosen = append(chosen, rest[:need]...)
	}

	if len(chosen) > count {
		chosen = chosen[:count]
	}
	return chosen
}

// QuizChoiceView hides the correctness flag from pre-grading callers.
type QuizChoiceView struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type QuizQuestionView struct {
	ID         uint             `json:"id"`
	Text       string           `json:"text"`
	Topic      string           `json:"topic"`
	Difficulty model.Difficulty `json:"difficulty"`
	Choices    []QuizChoiceView `json:"choices"`
}

// GenerateQuiz builds an adaptive quiz over the user's weakest topics,
// with choices in randomized order.
func (s *QuizService) GenerateQuiz(userID uint, count int) ([]QuizQuestionView, error) {
	if count <= 0 {
		count = DefaultQuizCount
	}

	topics, err := s.SelectWeakTopics(userID, WeakTopicLimit)
	if err != nil {
		return nil, err
	}

	topicIDs := make([]uint, 0, len(topics))
	titles := make(map[uint]string, len(topics))
	for _, t := range topics {
		topicIDs = append(topicIDs, t.ID)
		titles[t.ID] = t.Title
	}

	pool, err := s.QuizRepo.QuestionsByTopics(topicIDs)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	chosen := ComposeQuiz(pool, count, s.rng)

	views := make([]QuizQuestionView, 0, len(chosen))
	for _, q := range chosen {
		choices := make([]QuizChoiceView, 0, len(q.Choices))
		for _, c := range q.Choices {
			choices = append(choices, QuizChoiceView{ID: c.ID, Text: c.Text})
		}
		s.rng.Shuffle(len(choices), func(i, j int) {
			choices[i], choices[j] = choices[j], choices[i]
		})

		views = append(views, QuizQuestionView{
			ID:         q.ID,
			Text:       q.Text,
			Topic:      titles[q.TopicID],
			Difficulty: q.Difficulty,
			Choices:    choices,
		})
	}
	s.mu.Unlock()

	return views, nil
}

type AnswerInput struct {
	QuestionID uint `json:"question_id"`
	ChoiceID   uint `json:"choice_id"`
}

type AnswerFeedback struct {
	Question      string  `json:"question"`
	YourAnswer    *string `json:"your_answer"`
	CorrectAnswer *string `json:"correct_answer"`
	Correct       bool    `json:"correct"`
	Explanation   string  `json:"explanation"`
}

type SubmitResult struct {
	AttemptID uint             `json:"attempt_id"`
	Score     int              `json:"score"`
	Total     int              `json:"total"`
	Feedback  []AnswerFeedback `json:"feedback"`
}

// SubmitQuiz grades the answers and persists the attempt atomically.
// Unknown question ids are skipped; a missing or foreign choice counts
// as wrong with no chosen answer recorded.
func (s *QuizService) SubmitQuiz(userID uint, answers []AnswerInput, source string) (*SubmitResult, error) {
	if source == "" {
		source = "weekly"
	}
	if len(source) > 32 {
		source = source[:32]
	}

	attempt := &model.QuizAttempt{UserID: userID, Source: source}

	var feedback []AnswerFeedback
	for _, a := range answers {
		question, err := s.QuizRepo.FindQuestionWithChoices(a.QuestionID)
		if err == gorm.ErrRecordNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}

		var chosen *model.QuizChoice
		for i := range question.Choices {
			if question.Choices[i].ID == a.ChoiceID {
				chosen = &question.Choices[i]
				break
			}
		}

		correct := chosen != nil && chosen.IsCorrect
		answer := model.AttemptAnswer{
			QuestionID: question.ID,
			Correct:    correct,
		}
		if chosen != nil {
			answer.ChoiceID = &chosen.ID
		}
		attempt.Answers = append(attempt.Answers, answer)

		attempt.Total++
		if correct {
			attempt.Score++
		}

		fb := AnswerFeedback{
			Question:    question.Text,
			Correct:     correct,
			Explanation: question.Explanation,
		}
		if chosen != nil {
			fb.YourAnswer = &chosen.Text
		}
		// Legacy data may hold zero or several correct choices; grading
		// reports the first one.
		for i := range question.Choices {
			if question.Choices[i].IsCorrect {
				fb.CorrectAnswer = &question.Choices[i].Text
				break
			}
		}
		feedback = append(feedback, fb)
	}

	if err := s.QuizRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	return &SubmitResult{
		AttemptID: attempt.ID,
		Score:     attempt.Score,
		Total:     attempt.Total,
		Feedback:  feedback,
	}, nil
}

func (s *QuizService) History(userID uint, limit int) ([]model.QuizAttempt, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.QuizRepo.AttemptsByUser(userID, limit)
}

type NewChoice struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

// CreateQuestion authors a question, requiring exactly one correct
// choice in the set.
func (s *QuizService) CreateQuestion(topicID uint, text string, difficulty model.Difficulty, explanation string, choices []NewChoice) (*model.QuizQuestion, error) {
	if _, err := s.CourseRepo.FindTopicByID(topicID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}

	correct := 0
	for _, c := range choices {
		if c.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return nil, util.ErrChoiceSetInvalid
	}

	question := &model.QuizQuestion{
		TopicID:     topicID,
		Text:        text,
		Difficulty:  difficulty,
		Explanation: explanation,
	}
	for _, c := range choices {
		question.Choices = append(question.Choices, model.QuizChoice{
			Text:      c.Text,
			IsCorrect: c.IsCorrect,
		})
	}

	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}
