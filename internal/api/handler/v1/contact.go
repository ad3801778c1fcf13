package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/designclub49123/kalakranti/internal/api/handler/v1/request"
	"github.com/designclub49123/kalakranti/internal/api/handler/v1/response"
	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/service"
)

type ContactService interface {
	Submit(ctx context.Context, submission domain.ContactSubmission) (domain.ContactSubmission, error)
	ListSubmissions(ctx context.Context, actor domain.Actor) ([]domain.ContactSubmission, error)
}

type ContactHandler struct {
	svc  ContactService
	uSvc UserService
}

func NewContactHandler(svc ContactService, uSvc UserService) *ContactHandler {
	return &ContactHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleSubmitContact godoc
// @Summary      Submit a contact message
// @Description  Public; no account needed.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request  body      request.ContactRequest true "request body"
// @Success      201      {object}  domain.ContactSubmission
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /contact [post]
func (h *ContactHandler) HandleSubmitContact(ctx *gin.Context) {
	var req request.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), domain.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitContact -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListContacts godoc
// @Summary      List contact submissions
// @Description  Admin team only.
// @Tags         contact
// @Produce      json
// @Success      200  {array}   domain.ContactSubmission
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /contact [get]
// @Security BearerAuth
func (h *ContactHandler) HandleListContacts(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	submissions, err := h.svc.ListSubmissions(ctx.Request.Context(), actorOf(user))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleListContacts -> h.svc.ListSubmissions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, submissions)
}
