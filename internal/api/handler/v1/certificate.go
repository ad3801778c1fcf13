package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/designclub49123/kalakranti/internal/api/handler/v1/response"
	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/service"
)

type CertificateService interface {
	IssueCertificates(ctx context.Context, actor domain.Actor, stallID uint) (domain.IssueResult, error)
	IssueCertificatesForEvent(ctx context.Context, actor domain.Actor, eventID uint) ([]domain.IssueResult, error)
	ListMyCertificates(ctx context.Context, actor domain.Actor) ([]domain.Certificate, error)
}

type CertificateHandler struct {
	svc  CertificateService
	uSvc UserService
}

func NewCertificateHandler(svc CertificateService, uSvc UserService) *CertificateHandler {
	return &CertificateHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleMyCertificates godoc
// @Summary      List the caller's certificates
// @Tags         certificates
// @Produce      json
// @Success      200  {array}   domain.Certificate
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /certificates/mine [get]
// @Security BearerAuth
func (h *CertificateHandler) HandleMyCertificates(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	certs, err := h.svc.ListMyCertificates(ctx.Request.Context(), actorOf(user))
	if err != nil {
		err = fmt.Errorf("v1.HandleMyCertificates -> h.svc.ListMyCertificates -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, certs)
}

// HandleIssueForStall godoc
// @Summary      Issue certificates for one approved stall
// @Description  Admin team only. One leader certificate plus one per team member. Re-running skips subjects already covered.
// @Tags         certificates
// @Produce      json
// @Param        stallID  path      int  true  "stall ID"
// @Success      200  {object}  domain.IssueResult
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /certificates/stalls/{stallID} [post]
// @Security BearerAuth
func (h *CertificateHandler) HandleIssueForStall(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stallID, err := parseUintParam(ctx, "stallID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.IssueCertificates(ctx.Request.Context(), actorOf(user), stallID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}
		if errors.Is(err, service.ErrStallNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stall", "ID", stallID))
			return
		}
		if errors.Is(err, service.ErrStallNotApproved) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleIssueForStall -> h.svc.IssueCertificates -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleIssueForEvent godoc
// @Summary      Issue certificates for every approved stall of an event
// @Description  Admin team only. A failure on one stall is reported in its result and does not stop the rest.
// @Tags         certificates
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200  {array}   domain.IssueResult
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /certificates/events/{eventID} [post]
// @Security BearerAuth
func (h *CertificateHandler) HandleIssueForEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := parseUintParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	results, err := h.svc.IssueCertificatesForEvent(ctx.Request.Context(), actorOf(user), eventID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleIssueForEvent -> h.svc.IssueCertificatesForEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, results)
}
