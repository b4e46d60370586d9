package controller

import (
	"adhyeta_backend/internal/service"
	"adhyeta_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	LearningService *service.LearningService
	SeedService     *service.SeedService
}

func NewLearningController(learningService *service.LearningService, seedService *service.SeedService) *LearningController {
	return &LearningController{
		LearningService: learningService,
		SeedService:     seedService,
	}
}

// ListCourses godoc
// @Summary List courses
// @Description All courses with topic and lesson counts
// @Tags learning
// @Produce  json
// @Success 200 {object} util.Response{data=[]repository.CourseSummary} "Success"
// @Router /api/courses [get]
func (c *LearningController) ListCourses(ctx *gin.Context) {
	courses, err := c.LearningService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Course detail
// @Description A course with its topics
// @Tags learning
// @Produce  json
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseDetail} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/courses/{id} [get]
func (c *LearningController) GetCourse(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	detail, err := c.LearningService.GetCourse(id)
	if errors.Is(err, util.ErrCourseNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// GetLessons godoc
// @Summary Lessons of a topic
// @Description Ordered lessons; completion flags reflect the caller when authenticated
// @Tags learning
// @Produce  json
// @Param   id path int true "Topic ID"
// @Success 200 {object} util.Response{data=[]service.LessonView} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/topics/{id}/lessons [get]
func (c *LearningController) GetLessons(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	var userID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	lessons, err := c.LearningService.LessonsForTopic(id, userID)
	if errors.Is(err, util.ErrTopicNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// MarkLesson godoc
// @Summary Mark a lesson completed
// @Description Records completion and enrolls the caller into the lesson's course
// @Tags learning
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Lesson ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/lessons/{id}/complete [post]
func (c *LearningController) MarkLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	err = c.LearningService.MarkLesson(claims.UserID, id)
	if errors.Is(err, util.ErrLessonNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"completed": true})
}

// MyProgress godoc
// @Summary Per-course progress
// @Tags learning
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.CourseProgress} "Success"
// @Router /api/my-progress [get]
func (c *LearningController) MyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.LearningService.MyProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// WeeklyProgress godoc
// @Summary Seven-day completion chart
// @Tags learning
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.WeeklyChart} "Success"
// @Router /api/progress/weekly [get]
func (c *LearningController) WeeklyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	chart, err := c.LearningService.WeeklyProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chart)
}

// SeedDemo godoc
// @Summary Seed demo content
// @Description Loads the demo course when the catalog is empty
// @Tags learning
// @Produce  json
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/seed/demo [post]
func (c *LearningController) SeedDemo(ctx *gin.Context) {
	created, err := c.SeedService.SeedDemo()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"seeded": created})
}

// SeedQuestions godoc
// @Summary Seed the question bank
// @Description Loads starter questions when none exist
// @Tags learning
// @Produce  json
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/seed/questions [post]
func (c *LearningController) SeedQuestions(ctx *gin.Context) {
	created, err := c.SeedService.SeedQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"created": created})
}

func pathID(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	return uint(id), err
}
