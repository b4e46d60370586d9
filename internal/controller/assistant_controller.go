package controller

import (
	"adhyeta_backend/internal/service"
	"adhyeta_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	AssistantService *service.AssistantService
}

func NewAssistantController(assistantService *service.AssistantService) *AssistantController {
	return &AssistantController{AssistantService: assistantService}
}

type StartThreadRequest struct {
	Title string `json:"title"`
}

// StartThread godoc
// @Summary Start an assistant thread
// @Tags assistant
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartThreadRequest false "Optional title"
// @Success 201 {object} util.Response{data=model.AssistantThread} "Created"
// @Router /api/assistant/threads [post]
func (c *AssistantController) StartThread(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartThreadRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	thread, err := c.AssistantService.StartThread(claims.UserID, req.Title)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, thread)
}

// Messages godoc
// @Summary Thread message history
// @Tags assistant
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Thread ID"
// @Success 200 {object} util.Response{data=[]model.AssistantMessage} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/assistant/threads/{id}/messages [get]
func (c *AssistantController) Messages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	messages, err := c.AssistantService.Messages(claims.UserID, ctx.Param("id"))
	if errors.Is(err, util.ErrThreadNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage godoc
// @Summary Send a message to the assistant
// @Description Stores the message and returns the assistant's reply
// @Tags assistant
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Thread ID"
// @Param   body body SendMessageRequest true "Message"
// @Success 200 {object} util.Response{data=model.AssistantMessage} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/assistant/threads/{id}/messages [post]
func (c *AssistantController) SendMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.AssistantService.SendMessage(claims.UserID, ctx.Param("id"), req.Content)
	if errors.Is(err, util.ErrThreadNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reply)
}
