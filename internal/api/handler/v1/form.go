package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/designclub49123/kalakranti/internal/api/handler/v1/request"
	"github.com/designclub49123/kalakranti/internal/api/handler/v1/response"
	"github.com/designclub49123/kalakranti/internal/api/middleware"
	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/service"
)

type FormService interface {
	CreateForm(ctx context.Context, actor domain.Actor, form domain.Form) (domain.Form, error)
	GetForm(ctx context.Context, id uint) (domain.Form, error)
	ListForms(ctx context.Context, actor domain.Actor) ([]domain.Form, error)
	UpdateForm(ctx context.Context, actor domain.Actor, form domain.Form) (domain.Form, error)
	SetFormActive(ctx context.Context, actor domain.Actor, id uint, active bool) error
	DeleteForm(ctx context.Context, actor domain.Actor, id uint) error
	SubmitResponse(ctx context.Context, formResponse domain.FormResponse) (domain.FormResponse, error)
	ListResponses(ctx context.Context, actor domain.Actor, formID uint) ([]domain.FormResponse, error)
}

type FormHandler struct {
	svc  FormService
	uSvc UserService
}

func NewFormHandler(svc FormService, uSvc UserService) *FormHandler {
	return &FormHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

func questionsFromPayload(payload []request.QuestionPayload) []domain.Question {
	questions := make([]domain.Question, 0, len(payload))
	for _, q := range payload {
		questions = append(questions, domain.Question{
			ID:       q.ID,
			Type:     domain.QuestionType(q.Type),
			Question: q.Question,
			Options:  q.Options,
			Required: q.Required,
		})
	}

	return questions
}

// HandleCreateForm godoc
// @Summary      Create a custom form
// @Description  Admin team only.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateFormRequest true "request body"
// @Success      201      {object}  domain.Form
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /forms [post]
// @Security BearerAuth
func (h *FormHandler) HandleCreateForm(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	form, err := h.svc.CreateForm(ctx.Request.Context(), actorOf(user), domain.Form{
		Title:       req.Title,
		Description: req.Description,
		Questions:   questionsFromPayload(req.Questions),
		Settings:    req.Settings,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateForm -> h.svc.CreateForm -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, form)
}

// HandleGetForm godoc
// @Summary      Get a form by ID
// @Tags         forms
// @Produce      json
// @Param        formID  path      int  true  "form ID"
// @Success      200  {object}  domain.Form
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /forms/{formID} [get]
func (h *FormHandler) HandleGetForm(ctx *gin.Context) {
	formID, err := parseUintParam(ctx, "formID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	form, err := h.svc.GetForm(ctx.Request.Context(), formID)
	if err != nil {
		if errors.Is(err, service.ErrFormNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("form", "ID", formID))
			return
		}

		err = fmt.Errorf("v1.HandleGetForm -> h.svc.GetForm -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, form)
}

// HandleListForms godoc
// @Summary      List all forms
// @Description  Admin team only.
// @Tags         forms
// @Produce      json
// @Success      200  {array}   domain.Form
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /forms [get]
// @Security BearerAuth
func (h *FormHandler) HandleListForms(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	forms, err := h.svc.ListForms(ctx.Request.Context(), actorOf(user))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleListForms -> h.svc.ListForms -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, forms)
}

// HandleUpdateForm godoc
// @Summary      Update a form
// @Description  Admin team only.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        formID   path      int  true  "form ID"
// @Param        request  body      request.CreateFormRequest true "request body"
// @Success      200      {object}  domain.Form
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /forms/{formID} [put]
// @Security BearerAuth
func (h *FormHandler) HandleUpdateForm(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	formID, err := parseUintParam(ctx, "formID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CreateFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	form, err := h.svc.UpdateForm(ctx.Request.Context(), actorOf(user), domain.Form{
		ID:          formID,
		Title:       req.Title,
		Description: req.Description,
		Questions:   questionsFromPayload(req.Questions),
		Settings:    req.Settings,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}
		if errors.Is(err, service.ErrFormNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("form", "ID", formID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateForm -> h.svc.UpdateForm -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, form)
}

// HandleSetFormActive godoc
// @Summary      Open or close a form for submissions
// @Description  Admin team only.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        formID   path      int  true  "form ID"
// @Param        request  body      request.SetFormActiveRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /forms/{formID}/active [patch]
// @Security BearerAuth
func (h *FormHandler) HandleSetFormActive(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	formID, err := parseUintParam(ctx, "formID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.SetFormActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.SetFormActive(ctx.Request.Context(), actorOf(user), formID, *req.IsActive); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}
		if errors.Is(err, service.ErrFormNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("form", "ID", formID))
			return
		}

		err = fmt.Errorf("v1.HandleSetFormActive -> h.svc.SetFormActive -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteForm godoc
// @Summary      Delete a form and its responses
// @Description  Admin team only.
// @Tags         forms
// @Produce      json
// @Param        formID  path      int  true  "form ID"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /forms/{formID} [delete]
// @Security BearerAuth
func (h *FormHandler) HandleDeleteForm(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	formID, err := parseUintParam(ctx, "formID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteForm(ctx.Request.Context(), actorOf(user), formID); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}
		if errors.Is(err, service.ErrFormNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("form", "ID", formID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteForm -> h.svc.DeleteForm -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSubmitResponse godoc
// @Summary      Submit a response to an active form
// @Description  Public. A logged-in caller's response is linked to their account.
// @Tags         forms
// @Accept       json
// @Produce      json
// @Param        formID   path      int  true  "form ID"
// @Param        request  body      request.SubmitFormResponseRequest true "request body"
// @Success      201      {object}  domain.FormResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /forms/{formID}/responses [post]
func (h *FormHandler) HandleSubmitResponse(ctx *gin.Context) {
	formID, err := parseUintParam(ctx, "formID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.SubmitFormResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	formResponse := domain.FormResponse{
		FormID:    formID,
		Responses: req.Responses,
	}
	// Anonymous submissions are allowed; attach the user only when present.
	if v, exists := ctx.Get(middleware.ContextKeyUserID); exists {
		if userID, ok := v.(uint); ok {
			formResponse.UserID = &userID
		}
	}

	created, err := h.svc.SubmitResponse(ctx.Request.Context(), formResponse)
	if err != nil {
		var missingErr *service.MissingAnswersError
		switch {
		case errors.Is(err, service.ErrFormNotFound):
			response.RenderErr(ctx, response.ErrNotFound("form", "ID", formID))
			return
		case errors.Is(err, service.ErrFormInactive), errors.As(err, &missingErr):
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleSubmitResponse -> h.svc.SubmitResponse -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListResponses godoc
// @Summary      List responses to a form
// @Description  Admin team only.
// @Tags         forms
// @Produce      json
// @Param        formID  path      int  true  "form ID"
// @Success      200  {array}   domain.FormResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /forms/{formID}/responses [get]
// @Security BearerAuth
func (h *FormHandler) HandleListResponses(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	formID, err := parseUintParam(ctx, "formID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	responses, err := h.svc.ListResponses(ctx.Request.Context(), actorOf(user), formID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}
		if errors.Is(err, service.ErrFormNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("form", "ID", formID))
			return
		}

		err = fmt.Errorf("v1.HandleListResponses -> h.svc.ListResponses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, responses)
}
