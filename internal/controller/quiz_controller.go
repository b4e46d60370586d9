package controller

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/service"
	"adhyeta_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Generate godoc
// @Summary Generate an adaptive quiz
// @Description Draws difficulty-balanced questions from the caller's weakest topics
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   count query int false "Question count" default(6)
// @Success 200 {object} util.Response{data=[]service.QuizQuestionView} "Success"
// @Router /api/quiz/generate [get]
func (c *QuizController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	count, _ := strconv.Atoi(ctx.DefaultQuery("count", "0"))

	questions, err := c.QuizService.GenerateQuiz(claims.UserID, count)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

type SubmitQuizRequest struct {
	Answers []service.AnswerInput `json:"answers" binding:"required"`
	Source  string                `json:"source"`
}

// Submit godoc
// @Summary Submit quiz answers
// @Description Grades the answers and records the attempt
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitQuizRequest true "Answers"
// @Success 200 {object} util.Response{data=service.SubmitResult} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitQuiz(claims.UserID, req.Answers, req.Source)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// History godoc
// @Summary Recent quiz attempts
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "Max attempts" default(10)
// @Success 200 {object} util.Response{data=[]model.QuizAttempt} "Success"
// @Router /api/quiz/history [get]
func (c *QuizController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	attempts, err := c.QuizService.History(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

type CreateQuestionRequest struct {
	TopicID     uint                `json:"topic_id" binding:"required"`
	Text        string              `json:"text" binding:"required"`
	Difficulty  string              `json:"difficulty" binding:"required,oneof=easy med hard"`
	Explanation string              `json:"explanation"`
	Choices     []service.NewChoice `json:"choices" binding:"required,min=2"`
}

// CreateQuestion godoc
// @Summary Author a quiz question
// @Description Admin-only; the choice set must contain exactly one correct answer
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateQuestionRequest true "Question"
// @Success 201 {object} util.Response{data=model.QuizQuestion} "Created"
// @Failure 400 {object} util.Response "Invalid choice set"
// @Failure 404 {object} util.Response "Unknown topic"
// @Router /api/admin/quiz/questions [post]
func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	var req CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.CreateQuestion(
		req.TopicID,
		req.Text,
		model.Difficulty(req.Difficulty),
		req.Explanation,
		req.Choices,
	)
	switch {
	case errors.Is(err, util.ErrTopicNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrChoiceSetInvalid):
		util.BadRequest(ctx, "Choice set must contain exactly one correct answer")
	case err != nil:
		util.LogInternalError(ctx, err)
	default:
		util.Created(ctx, question)
	}
}
