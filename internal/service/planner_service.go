package service

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/repository"
	"adhyeta_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

type PlannerService struct {
	PlanRepo     *repository.PlanRepository
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
}

func NewPlannerService(planRepo *repository.PlanRepository, courseRepo *repository.CourseRepository, progressRepo *repository.ProgressRepository) *PlannerService {
	return &PlannerService{
		PlanRepo:     planRepo,
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
	}
}

type CreatePlanInput struct {
	Title        string
	ExamDate     *time.Time
	DaysLeft     int
	DailyMinutes int
	TopicNames   []string
}

// CreatePlan resolves the requested topic names, builds the full
// schedule and persists it. The previous active plan is deactivated in
// the same transaction that creates the new one.
func (s *PlannerService) CreatePlan(userID uint, input CreatePlanInput) (*model.StudyPlan, error) {
	names := make([]string, 0, len(input.TopicNames))
	for _, n := range input.TopicNames {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return nil, util.ErrEmptyTopicList
	}

	if input.DailyMinutes <= 0 {
		input.DailyMinutes = 180
	}

	weighted, err := s.resolveTopics(userID, names)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	days := SpanDays(input.ExamDate, input.DaysLeft, now)

	title := input.Title
	if title == "" {
		title = "Exam Study Plan"
	}

	plan := &model.StudyPlan{
		UserID:       userID,
		Title:        title,
		ExamDate:     input.ExamDate,
		Days:         days,
		DailyMinutes: input.DailyMinutes,
		IsActive:     true,
	}

	tasks := BuildSchedule(weighted, days, input.DailyMinutes, now)

	if err := s.PlanRepo.CreateWithTasks(plan, tasks); err != nil {
		return nil, err
	}

	return plan, nil
}

// resolveTopics maps free-text names onto known topics by
// case-insensitive substring match, first match wins. Unresolved names
// become plain labels with weight 1 and no boosting.
func (s *PlannerService) resolveTopics(userID uint, names []string) ([]WeightedTopic, error) {
	weighted := make([]WeightedTopic, 0, len(names))
	for _, name := range names {
		topic, err := s.CourseRepo.ResolveTopicByName(name)
		if err == gorm.ErrRecordNotFound {
			weighted = append(weighted, WeightedTopic{Label: name, Weight: 1})
			continue
		}
		if err != nil {
			return nil, err
		}

		ratio, hasHistory, err := s.completionRatio(userID, topic.ID)
		if err != nil {
			return nil, err
		}

		weighted = append(weighted, WeightedTopic{
			Label:  topic.Title,
			Weight: BoostWeight(topic.Weight, ratio, hasHistory),
		})
	}

	return weighted, nil
}

func (s *PlannerService) completionRatio(userID, topicID uint) (float64, bool, error) {
	total, err := s.CourseRepo.CountLessonsByTopic(topicID)
	if err != nil {
		return 0, false, err
	}
	if total == 0 {
		return 0, false, nil
	}

	done, err := s.ProgressRepo.CountCompletedByTopic(userID, topicID)
	if err != nil {
		return 0, false, err
	}

	return float64(done) / float64(total), true, nil
}

// PlanDetail is a plan with its ordered task list.
type PlanDetail struct {
	Plan  *model.StudyPlan  `json:"plan"`
	Tasks []model.StudyTask `json:"tasks"`
}

func (s *PlannerService) ActivePlan(userID uint) (*PlanDetail, error) {
	plan, err := s.PlanRepo.ActivePlan(userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.detail(plan)
}

func (s *PlannerService) GetPlan(planID, userID uint) (*PlanDetail, error) {
	plan, err := s.PlanRepo.FindByID(planID, userID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.detail(plan)
}

func (s *PlannerService) detail(plan *model.StudyPlan) (*PlanDetail, error) {
	tasks, err := s.PlanRepo.TasksByPlan(plan.ID)
	if err != nil {
		return nil, err
	}
	return &PlanDetail{Plan: plan, Tasks: tasks}, nil
}

func (s *PlannerService) ListPlans(userID uint) ([]model.StudyPlan, error) {
	return s.PlanRepo.ListByUser(userID)
}

// SetTaskDone toggles a task's completion, checking the task belongs to
// one of the caller's plans.
func (s *PlannerService) SetTaskDone(userID, planID, taskID uint, done bool) error {
	if _, err := s.PlanRepo.FindByID(planID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrPlanNotFound
		}
		return err
	}

	if _, err := s.PlanRepo.FindTask(taskID, planID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrTaskNotFound
		}
		return err
	}

	return s.PlanRepo.SetTaskDone(taskID, done)
}
