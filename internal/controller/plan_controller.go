package controller

import (
	"adhyeta_backend/internal/service"
	"adhyeta_backend/internal/util"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	PlannerService *service.PlannerService
}

func NewPlanController(plannerService *service.PlannerService) *PlanController {
	return &PlanController{PlannerService: plannerService}
}

type CreatePlanRequest struct {
	Title        string   `json:"title"`
	ExamDate     string   `json:"exam_date"`
	DaysLeft     int      `json:"days_left"`
	DailyMinutes int      `json:"daily_minutes"`
	Topics       []string `json:"topics" binding:"required"`
}

// Create godoc
// @Summary Create a study plan
// @Description Builds a day-by-day schedule; the previous active plan is deactivated
// @Tags plans
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreatePlanRequest true "Plan parameters"
// @Success 201 {object} util.Response{data=model.StudyPlan} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/plans [post]
func (c *PlanController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	input := service.CreatePlanInput{
		Title:        req.Title,
		DaysLeft:     req.DaysLeft,
		DailyMinutes: req.DailyMinutes,
		TopicNames:   req.Topics,
	}

	if req.ExamDate != "" {
		examDate, err := time.ParseInLocation("2006-01-02", req.ExamDate, time.Local)
		if err != nil {
			util.BadRequest(ctx, "exam_date must be YYYY-MM-DD")
			return
		}
		input.ExamDate = &examDate
	}

	plan, err := c.PlannerService.CreatePlan(claims.UserID, input)
	if errors.Is(err, util.ErrEmptyTopicList) {
		util.BadRequest(ctx, "At least one topic is required")
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, plan)
}

// Active godoc
// @Summary Active plan with tasks
// @Tags plans
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.PlanDetail} "Success"
// @Failure 404 {object} util.Response "No active plan"
// @Router /api/plans/active [get]
func (c *PlanController) Active(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.PlannerService.ActivePlan(claims.UserID)
	if errors.Is(err, util.ErrPlanNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// List godoc
// @Summary All of the caller's plans
// @Tags plans
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StudyPlan} "Success"
// @Router /api/plans [get]
func (c *PlanController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	plans, err := c.PlannerService.ListPlans(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// Get godoc
// @Summary Plan detail with tasks
// @Tags plans
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Plan ID"
// @Success 200 {object} util.Response{data=service.PlanDetail} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/plans/{id} [get]
func (c *PlanController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid plan id")
		return
	}

	detail, err := c.PlannerService.GetPlan(id, claims.UserID)
	if errors.Is(err, util.ErrPlanNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

type TaskDoneRequest struct {
	Done *bool `json:"done" binding:"required"`
}

// SetTaskDone godoc
// @Summary Toggle a plan task
// @Tags plans
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Plan ID"
// @Param   taskId path int true "Task ID"
// @Param   body body TaskDoneRequest true "Done flag"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/plans/{id}/tasks/{taskId} [patch]
func (c *PlanController) SetTaskDone(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	planID, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid plan id")
		return
	}
	taskID, err := pathID(ctx, "taskId")
	if err != nil {
		util.BadRequest(ctx, "invalid task id")
		return
	}

	var req TaskDoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err = c.PlannerService.SetTaskDone(claims.UserID, planID, taskID, *req.Done)
	switch {
	case errors.Is(err, util.ErrPlanNotFound), errors.Is(err, util.ErrTaskNotFound):
		util.NotFound(ctx)
	case err != nil:
		util.LogInternalError(ctx, err)
	default:
		util.Success(ctx, gin.H{"done": *req.Done})
	}
}
