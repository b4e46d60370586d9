package service

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/repository"
	"adhyeta_backend/internal/util"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// AssistantService answers study questions with a rule-based intent
// engine over the lesson corpus. No external model is involved.
type AssistantService struct {
	AssistantRepo *repository.AssistantRepository
	CourseRepo    *repository.CourseRepository
	ProgressRepo  *repository.ProgressRepository
}

func NewAssistantService(assistantRepo *repository.AssistantRepository, courseRepo *repository.CourseRepository, progressRepo *repository.ProgressRepository) *AssistantService {
	return &AssistantService{
		AssistantRepo: assistantRepo,
		CourseRepo:    courseRepo,
		ProgressRepo:  progressRepo,
	}
}

var (
	greetingRe = regexp.MustCompile(`(?i)\b(hi|hello|hey)\b`)
	nextRe     = regexp.MustCompile(`(?i)\b(next|recommend|continue)\b`)
	explainRe  = regexp.MustCompile(`(?i)(?:explain|what is|define)\s+(.+)`)
	quizRe     = regexp.MustCompile(`(?i)\bquiz\b`)
	progressRe = regexp.MustCompile(`(?i)\bprogress\b`)
	htmlTagRe  = regexp.MustCompile(`<[^>]+>`)
)

const snippetLimit = 400

func (s *AssistantService) StartThread(userID uint, title string) (*model.AssistantThread, error) {
	thread := &model.AssistantThread{UserID: userID, IsActive: true}
	if title != "" {
		thread.Title = title
	}
	if err := s.AssistantRepo.CreateThread(thread); err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *AssistantService) Messages(userID uint, threadID string) ([]model.AssistantMessage, error) {
	if _, err := s.AssistantRepo.FindThread(threadID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrThreadNotFound
		}
		return nil, err
	}
	return s.AssistantRepo.MessagesByThread(threadID)
}

// SendMessage stores the user's message, computes a reply and stores
// that too. Both messages are returned so the client can render the
// exchange without refetching.
func (s *AssistantService) SendMessage(userID uint, threadID, content string) (*model.AssistantMessage, error) {
	if _, err := s.AssistantRepo.FindThread(threadID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrThreadNotFound
		}
		return nil, err
	}

	userMsg := &model.AssistantMessage{
		ThreadID: threadID,
		Role:     model.RoleUser,
		Content:  content,
	}
	if err := s.AssistantRepo.CreateMessage(userMsg); err != nil {
		return nil, err
	}

	reply, err := s.makeReply(userID, content)
	if err != nil {
		return nil, err
	}

	assistantMsg := &model.AssistantMessage{
		ThreadID: threadID,
		Role:     model.RoleAssistant,
		Content:  reply,
	}
	if err := s.AssistantRepo.CreateMessage(assistantMsg); err != nil {
		return nil, err
	}

	return assistantMsg, nil
}

// makeReply routes the message through the intent rules in priority
// order: greeting, next-lesson, explain, quiz, progress, plan, then
// the fallback.
func (s *AssistantService) makeReply(userID uint, message string) (string, error) {
	text := strings.TrimSpace(message)

	if strings.HasPrefix(strings.ToLower(text), "plan:") {
		goal := strings.TrimSpace(text[len("plan:"):])
		return fmt.Sprintf("Noted. Use the study planner to turn %q into a day-by-day schedule; I'll keep it in mind when suggesting lessons.", goal), nil
	}

	if m := explainRe.FindStringSubmatch(text); m != nil {
		return s.explain(strings.TrimSpace(m[1]))
	}

	if nextRe.MatchString(text) {
		return s.nextLesson(userID)
	}

	if quizRe.MatchString(text) {
		return "Head to the weekly quiz section; it picks questions from your weakest topics so you practice where it counts.", nil
	}

	if progressRe.MatchString(text) {
		return "Your progress page shows completion per course and a chart of the last seven days. Keep the streak going.", nil
	}

	if greetingRe.MatchString(text) {
		return "Hello! Ask me to explain a concept, recommend your next lesson, or type plan: followed by a goal.", nil
	}

	return "I can explain concepts from your lessons, suggest what to study next, or point you at quizzes and progress. Try asking \"explain quadratic equations\".", nil
}

// nextLesson walks the user's enrolled courses in lesson order and
// returns the first incomplete one. Without enrollments the very first
// lesson in the catalog is suggested.
func (s *AssistantService) nextLesson(userID uint) (string, error) {
	enrollments, err := s.ProgressRepo.EnrollmentsByUser(userID)
	if err != nil {
		return "", err
	}

	if len(enrollments) > 0 {
		courseIDs := make([]uint, 0, len(enrollments))
		for _, e := range enrollments {
			courseIDs = append(courseIDs, e.CourseID)
		}

		lessons, err := s.CourseRepo.LessonsOrdered(courseIDs)
		if err != nil {
			return "", err
		}

		for _, l := range lessons {
			done, err := s.ProgressRepo.IsLessonCompleted(userID, l.ID)
			if err != nil {
				return "", err
			}
			if !done {
				return fmt.Sprintf("Your next lesson is %q. Open it from the course page and mark it done when finished.", l.Title), nil
			}
		}
		return "You've completed every lesson in your courses. Take a quiz to consolidate, or explore a new course.", nil
	}

	first, err := s.CourseRepo.FirstLesson()
	if err == gorm.ErrRecordNotFound {
		return "There are no lessons yet. Check back once courses are published.", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("A good place to start is %q. Completing it enrolls you in its course.", first.Title), nil
}

func (s *AssistantService) explain(term string) (string, error) {
	if term == "" {
		return "Tell me what to explain, for example \"explain conditional probability\".", nil
	}

	lessons, err := s.CourseRepo.SearchLessons(term, 2)
	if err != nil {
		return "", err
	}
	if len(lessons) == 0 {
		return fmt.Sprintf("I couldn't find %q in your lessons. Try a different phrasing, or browse the course topics.", term), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's what your lessons say about %q:\n", term)
	for _, l := range lessons {
		fmt.Fprintf(&b, "\n%s: %s", l.Title, snippet(l.Content, snippetLimit))
	}
	return b.String(), nil
}

// snippet strips markup and shortens to limit characters at a word
// boundary.
func snippet(content string, limit int) string {
	text := htmlTagRe.ReplaceAllString(content, " ")
	text = strings.Join(strings.Fields(text), " ")

	if len(text) <= limit {
		return text
	}

	cut := text[:limit]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
