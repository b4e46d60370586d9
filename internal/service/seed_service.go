package service

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/repository"
	"adhyeta_backend/pkg/logger"
	"fmt"

	"go.uber.org/zap"
)

// SeedService loads a small demo dataset so a fresh deployment has
// content to browse and quiz against. Both seeders are idempotent.
type SeedService struct {
	CourseRepo *repository.CourseRepository
	QuizRepo   *repository.QuizRepository
}

func NewSeedService(courseRepo *repository.CourseRepository, quizRepo *repository.QuizRepository) *SeedService {
	return &SeedService{CourseRepo: courseRepo, QuizRepo: quizRepo}
}

// SeedDemo creates a demo course with topics and lessons when the
// catalog is empty. Returns true when new content was created.
func (s *SeedService) SeedDemo() (bool, error) {
	count, err := s.CourseRepo.CountCourses()
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	course := &model.Course{
		Title:       "Mathematics Foundations",
		Description: "Core topics for entrance exam preparation.",
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return false, err
	}

	type seedLesson struct {
		title   string
		content string
	}
	seedTopics := []struct {
		title   string
		weight  float64
		lessons []seedLesson
	}{
		{
			title:  "Algebra",
			weight: 2,
			lessons: []seedLesson{
				{"Linear Equations", "Solving single-variable linear equations step by step."},
				{"Quadratic Equations", "Factoring, completing the square and the quadratic formula."},
				{"Inequalities", "Manipulating and graphing linear inequalities."},
			},
		},
		{
			title:  "Geometry",
			weight: 1,
			lessons: []seedLesson{
				{"Triangles", "Angle sums, congruence and similarity criteria."},
				{"Circles", "Chords, tangents and inscribed angles."},
			},
		},
		{
			title:  "Probability",
			weight: 1,
			lessons: []seedLesson{
				{"Counting Basics", "Permutations and combinations with worked examples."},
				{"Conditional Probability", "Dependent events and Bayes' rule."},
			},
		},
	}

	for _, st := range seedTopics {
		topic := &model.Topic{CourseID: course.ID, Title: st.title, Weight: st.weight}
		if err := s.CourseRepo.CreateTopic(topic); err != nil {
			return false, err
		}

		for i, sl := range st.lessons {
			lesson := &model.Lesson{
				TopicID: topic.ID,
				Title:   sl.title,
				Content: sl.content,
				Order:   i + 1,
			}
			if err := s.CourseRepo.CreateLesson(lesson); err != nil {
				return false, err
			}
		}
	}

	logger.Log.Info("demo course seeded", zap.Uint("course_id", course.ID))
	return true, nil
}

// SeedQuestions loads a starter question bank when none exists, two
// questions per difficulty for each topic. Returns the number of
// questions created.
func (s *SeedService) SeedQuestions() (int, error) {
	count, err := s.QuizRepo.CountQuestions()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	topics, err := s.CourseRepo.AllTopics()
	if err != nil {
		return 0, err
	}

	created := 0
	for _, topic := range topics {
		for _, d := range []model.Difficulty{model.Easy, model.Medium, model.Hard} {
			for i := 0; i < 2; i++ {
				question := seedQuestion(topic, d, i)
				if err := s.QuizRepo.CreateQuestion(question); err != nil {
					return created, err
				}
				created++
			}
		}
	}

	logger.Log.Info("question bank seeded", zap.Int("count", created))
	return created, nil
}

var seedStems = map[model.Difficulty][2]string{
	model.Easy:   {"Which statement about %s is true?", "What is the first step when working a basic %s problem?"},
	model.Medium: {"Which method applies to a standard %s exercise?", "Identify the correct intermediate result in this %s derivation."},
	model.Hard:   {"Which approach solves the hardest class of %s problems?", "Spot the subtle error in this %s proof sketch."},
}

func seedQuestion(topic model.Topic, d model.Difficulty, variant int) *model.QuizQuestion {
	stem := seedStems[d][variant]

	question := &model.QuizQuestion{
		TopicID:     topic.ID,
		Text:        fmt.Sprintf(stem, topic.Title),
		Difficulty:  d,
		Explanation: "Review the " + topic.Title + " lessons for the underlying rule.",
	}

	for i := 0; i < 4; i++ {
		question.Choices = append(question.Choices, model.QuizChoice{
			Text:      fmt.Sprintf("Option %c for %s", 'A'+i, topic.Title),
			IsCorrect: i == 0,
		})
	}
	return question
}
