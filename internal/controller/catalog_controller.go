package controller

import (
	"adhyeta_backend/internal/model"
	"adhyeta_backend/internal/service"
	"adhyeta_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
	StorageService *service.StorageService
}

func NewCatalogController(catalogService *service.CatalogService, storageService *service.StorageService) *CatalogController {
	return &CatalogController{
		CatalogService: catalogService,
		StorageService: storageService,
	}
}

// ListExams godoc
// @Summary List exams
// @Tags catalog
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Exam} "Success"
// @Router /api/exams [get]
func (c *CatalogController) ListExams(ctx *gin.Context) {
	exams, err := c.CatalogService.ListExams(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// GetExam godoc
// @Summary Exam detail by slug
// @Tags catalog
// @Produce  json
// @Param   slug path string true "Exam slug"
// @Success 200 {object} util.Response{data=model.Exam} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/exams/{slug} [get]
func (c *CatalogController) GetExam(ctx *gin.Context) {
	exam, err := c.CatalogService.GetExamBySlug(ctx.Param("slug"))
	if errors.Is(err, util.ErrExamNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// GetSubject godoc
// @Summary Subject with weightage history
// @Tags catalog
// @Produce  json
// @Param   id path int true "Subject ID"
// @Success 200 {object} util.Response{data=service.SubjectDetail} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/subjects/{id} [get]
func (c *CatalogController) GetSubject(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid subject id")
		return
	}

	detail, err := c.CatalogService.GetSubject(id)
	if errors.Is(err, util.ErrSubjectNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// GetResources godoc
// @Summary Subject resources
// @Tags catalog
// @Produce  json
// @Param   id path int true "Subject ID"
// @Param   kind query string false "Filter by kind" Enums(youtube, notes, paper)
// @Success 200 {object} util.Response{data=[]model.CatalogResource} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/subjects/{id}/resources [get]
func (c *CatalogController) GetResources(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid subject id")
		return
	}

	resources, err := c.CatalogService.Resources(id, model.ResourceKind(ctx.Query("kind")))
	if errors.Is(err, util.ErrSubjectNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resources)
}

type CreateExamRequest struct {
	Name        string `json:"name" binding:"required"`
	Grade       string `json:"grade"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

// CreateExam godoc
// @Summary Create an exam
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateExamRequest true "Exam"
// @Success 201 {object} util.Response{data=model.Exam} "Created"
// @Router /api/admin/exams [post]
func (c *CatalogController) CreateExam(ctx *gin.Context) {
	var req CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam := &model.Exam{
		Name:        req.Name,
		Grade:       req.Grade,
		Slug:        req.Slug,
		Description: req.Description,
	}
	if err := c.CatalogService.CreateExam(ctx.Request.Context(), exam); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

type CreateSubjectRequest struct {
	ExamID uint   `json:"exam_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// CreateSubject godoc
// @Summary Create a subject under an exam
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateSubjectRequest true "Subject"
// @Success 201 {object} util.Response{data=model.Subject} "Created"
// @Failure 404 {object} util.Response "Unknown exam"
// @Router /api/admin/subjects [post]
func (c *CatalogController) CreateSubject(ctx *gin.Context) {
	var req CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject := &model.Subject{ExamID: req.ExamID, Name: req.Name}
	err := c.CatalogService.CreateSubject(ctx.Request.Context(), subject)
	if errors.Is(err, util.ErrExamNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

type CreateWeightageRequest struct {
	SubjectID     uint `json:"subject_id" binding:"required"`
	WeightPercent int  `json:"weight_percent" binding:"required"`
	Year          *int `json:"year"`
}

// CreateWeightage godoc
// @Summary Record a subject weightage
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateWeightageRequest true "Weightage"
// @Success 201 {object} util.Response{data=model.SubjectWeightage} "Created"
// @Failure 404 {object} util.Response "Unknown subject"
// @Router /api/admin/weightages [post]
func (c *CatalogController) CreateWeightage(ctx *gin.Context) {
	var req CreateWeightageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	w := &model.SubjectWeightage{
		SubjectID:     req.SubjectID,
		WeightPercent: req.WeightPercent,
		Year:          req.Year,
	}
	err := c.CatalogService.CreateWeightage(w)
	if errors.Is(err, util.ErrSubjectNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, w)
}

type ResourceRequest struct {
	SubjectID   uint   `json:"subject_id" binding:"required"`
	Kind        string `json:"kind" binding:"required,oneof=youtube notes paper"`
	Title       string `json:"title" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Source      string `json:"source"`
	Year        *int   `json:"year"`
	SolutionURL string `json:"solution_url"`
}

// CreateResource godoc
// @Summary Add a catalog resource
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ResourceRequest true "Resource"
// @Success 201 {object} util.Response{data=model.CatalogResource} "Created"
// @Failure 404 {object} util.Response "Unknown subject"
// @Router /api/admin/resources [post]
func (c *CatalogController) CreateResource(ctx *gin.Context) {
	var req ResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resource := resourceFromRequest(&req)
	err := c.CatalogService.CreateResource(resource)
	if errors.Is(err, util.ErrSubjectNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, resource)
}

// UpdateResource godoc
// @Summary Update a catalog resource
// @Tags catalog
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Resource ID"
// @Param   body body ResourceRequest true "Resource"
// @Success 200 {object} util.Response{data=model.CatalogResource} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/resources/{id} [put]
func (c *CatalogController) UpdateResource(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid resource id")
		return
	}

	var req ResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resource, err := c.CatalogService.UpdateResource(id, resourceFromRequest(&req))
	if errors.Is(err, util.ErrResourceNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resource)
}

// DeleteResource godoc
// @Summary Delete a catalog resource
// @Tags catalog
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Resource ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/resources/{id} [delete]
func (c *CatalogController) DeleteResource(ctx *gin.Context) {
	id, err := pathID(ctx, "id")
	if err != nil {
		util.BadRequest(ctx, "invalid resource id")
		return
	}

	err = c.CatalogService.DeleteResource(id)
	if errors.Is(err, util.ErrResourceNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// UploadPaper godoc
// @Summary Upload a past-paper PDF
// @Description Stores the file and creates a paper resource pointing at it
// @Tags catalog
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   subject_id formData int true "Subject ID"
// @Param   title formData string true "Paper title"
// @Param   year formData int false "Paper year"
// @Param   file formData file true "PDF file"
// @Success 201 {object} util.Response{data=model.CatalogResource} "Created"
// @Failure 400 {object} util.Response "Invalid upload"
// @Router /api/admin/resources/papers [post]
func (c *CatalogController) UploadPaper(ctx *gin.Context) {
	subjectID, err := pathFormUint(ctx, "subject_id")
	if err != nil {
		util.BadRequest(ctx, "subject_id is required")
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.StorageService.SavePaper(ctx.Request.Context(), file, fileHeader.Size, fileHeader.Filename)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resource := &model.CatalogResource{
		SubjectID: subjectID,
		Kind:      model.KindPaper,
		Title:     title,
		URL:       url,
	}
	if year, err := pathFormUint(ctx, "year"); err == nil && year > 0 {
		y := int(year)
		resource.Year = &y
	}

	err = c.CatalogService.CreateResource(resource)
	if errors.Is(err, util.ErrSubjectNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, resource)
}

func pathFormUint(ctx *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.PostForm(name), 10, 32)
	return uint(v), err
}

func resourceFromRequest(req *ResourceRequest) *model.CatalogResource {
	return &model.CatalogResource{
		SubjectID:   req.SubjectID,
		Kind:        model.ResourceKind(req.Kind),
		Title:       req.Title,
		URL:         req.URL,
		Source:      req.Source,
		Year:        req.Year,
		SolutionURL: req.SolutionURL,
	}
}
