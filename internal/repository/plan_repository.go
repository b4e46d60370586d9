package repository

import (
	"adhyeta_backend/internal/model"

	"gorm.io/gorm"
)

type PlanRepository struct {
	DB *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

// CreateWithTasks deactivates the user's previous active plans and
// writes the new plan plus all its tasks in a single transaction, so a
// crash can never leave two active plans or a plan without its tasks.
func (r *PlanRepository) CreateWithTasks(plan *model.StudyPlan, tasks []model.StudyTask) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.StudyPlan{}).
			Where("user_id = ? AND is_active = ?", plan.UserID, true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}

		if err := tx.Create(plan).Error; err != nil {
			return err
		}

		for i := range tasks {
			tasks[i].PlanID = plan.ID
		}
		if len(tasks) > 0 {
			if err := tx.Create(&tasks).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *PlanRepository) ActivePlan(userID uint) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) FindByID(planID, userID uint) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	err := r.DB.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) ListByUser(userID uint) ([]model.StudyPlan, error) {
	var plans []model.StudyPlan
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) TasksByPlan(planID uint) ([]model.StudyTask, error) {
	var tasks []model.StudyTask
	err := r.DB.Where("plan_id = ?", planID).Order("date, id").Find(&tasks).Error
	return tasks, err
}

func (r *PlanRepository) FindTask(taskID, planID uint) (*model.StudyTask, error) {
	var task model.StudyTask
	err := r.DB.Where("id = ? AND plan_id = ?", taskID, planID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *PlanRepository) SetTaskDone(taskID uint, done bool) error {
	return r.DB.Model(&model.StudyTask{}).Where("id = ?", taskID).
		Update("done", done).Error
}
