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

type StallService interface {
	RegisterStall(ctx context.Context, actor domain.Actor, stall domain.Stall, memberEmails []string, leaderPhone string) (domain.Stall, error)
	DecideStall(ctx context.Context, actor domain.Actor, stallID uint, decision domain.StallStatus) (domain.Stall, error)
	AssignStallNumber(ctx context.Context, actor domain.Actor, stallID uint, number int) (domain.Stall, error)
	GetStall(ctx context.Context, actor domain.Actor, stallID uint) (domain.Stall, error)
	ListStalls(ctx context.Context, actor domain.Actor, filter domain.StallFilter) ([]domain.StallSummary, error)
	MyStalls(ctx context.Context, actor domain.Actor) ([]domain.Stall, error)
}

type StallHandler struct {
	svc  StallService
	uSvc UserService
}

func NewStallHandler(svc StallService, uSvc UserService) *StallHandler {
	return &StallHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleRegisterStall godoc
// @Summary      Register a stall for an event
// @Description  The caller becomes the stall leader. Team member emails must belong to existing accounts.
// @Tags         stalls
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterStallRequest true "request body"
// @Success      201      {object}  domain.Stall
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /stalls [post]
// @Security BearerAuth
func (h *StallHandler) HandleRegisterStall(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegisterStallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stall, err := h.svc.RegisterStall(ctx.Request.Context(), actorOf(user), domain.Stall{
		EventID:     req.EventID,
		Name:        req.Name,
		Description: req.Description,
	}, req.MemberEmails, req.LeaderPhone)
	if err != nil {
		var memberErr *service.MemberNotFoundError
		switch {
		case errors.As(err, &memberErr),
			errors.Is(err, service.ErrEventClosed),
			errors.Is(err, service.ErrSelfAsMember),
			errors.Is(err, service.ErrDuplicateMember),
			errors.Is(err, service.ErrTooManyMembers):
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.EventID))
			return
		}

		err = fmt.Errorf("v1.HandleRegisterStall -> h.svc.RegisterStall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, stall)
}

// HandleMyStalls godoc
// @Summary      List the caller's own stall applications
// @Tags         stalls
// @Produce      json
// @Success      200  {array}   domain.Stall
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stalls/mine [get]
// @Security BearerAuth
func (h *StallHandler) HandleMyStalls(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stalls, err := h.svc.MyStalls(ctx.Request.Context(), actorOf(user))
	if err != nil {
		err = fmt.Errorf("v1.HandleMyStalls -> h.svc.MyStalls -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stalls)
}

// HandleGetStall godoc
// @Summary      Get a stall by ID
// @Description  Leaders see their own stalls; reviewers see any stall.
// @Tags         stalls
// @Produce      json
// @Param        stallID  path      int  true  "stall ID"
// @Success      200  {object}  domain.Stall
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stalls/{stallID} [get]
// @Security BearerAuth
func (h *StallHandler) HandleGetStall(ctx *gin.Context) {
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

	stall, err := h.svc.GetStall(ctx.Request.Context(), actorOf(user), stallID)
	if err != nil {
		if errors.Is(err, service.ErrStallNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stall", "ID", stallID))
			return
		}
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetStall -> h.svc.GetStall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stall)
}

// HandleListStalls godoc
// @Summary      List stall applications
// @Description  Reviewer only. Supports event, status and search filters.
// @Tags         stalls
// @Produce      json
// @Param        event_id  query     int     false  "filter by event"
// @Param        status    query     string  false  "filter by status"  Enums(pending, approved, rejected)
// @Param        search    query     string  false  "match against stall or leader name"
// @Success      200  {array}   domain.StallSummary
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /stalls [get]
// @Security BearerAuth
func (h *StallHandler) HandleListStalls(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var query struct {
		EventID uint   `form:"event_id"`
		Status  string `form:"status"`
		Search  string `form:"search"`
	}
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stalls, err := h.svc.ListStalls(ctx.Request.Context(), actorOf(user), domain.StallFilter{
		EventID: query.EventID,
		Status:  domain.StallStatus(query.Status),
		Search:  query.Search,
	})
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleListStalls -> h.svc.ListStalls -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stalls)
}

// HandleDecideStall godoc
// @Summary      Approve or reject a pending stall
// @Description  Reviewer only. Decisions are final; only pending stalls can be decided.
// @Tags         stalls
// @Accept       json
// @Produce      json
// @Param        stallID  path      int  true  "stall ID"
// @Param        request  body      request.DecideStallRequest true "request body"
// @Success      200      {object}  domain.Stall
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /stalls/{stallID}/decision [post]
// @Security BearerAuth
func (h *StallHandler) HandleDecideStall(ctx *gin.Context) {
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

	var req request.DecideStallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stall, err := h.svc.DecideStall(ctx.Request.Context(), actorOf(user), stallID, domain.StallStatus(req.Decision))
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}
		if errors.Is(err, service.ErrStallNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stall", "ID", stallID))
			return
		}
		if errors.Is(err, service.ErrStallNotPending) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}
		if errors.Is(err, service.ErrInvalidDecision) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleDecideStall -> h.svc.DecideStall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stall)
}

// HandleAssignStallNumber godoc
// @Summary      Assign a stall number to an approved stall
// @Description  Reviewer only. Numbers are unique within an event.
// @Tags         stalls
// @Accept       json
// @Produce      json
// @Param        stallID  path      int  true  "stall ID"
// @Param        request  body      request.AssignStallNumberRequest true "request body"
// @Success      200      {object}  domain.Stall
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /stalls/{stallID}/number [post]
// @Security BearerAuth
func (h *StallHandler) HandleAssignStallNumber(ctx *gin.Context) {
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

	var req request.AssignStallNumberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stall, err := h.svc.AssignStallNumber(ctx.Request.Context(), actorOf(user), stallID, req.StallNumber)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}
		if errors.Is(err, service.ErrStallNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stall", "ID", stallID))
			return
		}
		if errors.Is(err, service.ErrStallNotApproved) || errors.Is(err, service.ErrStallNumberTaken) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}
		if errors.Is(err, service.ErrInvalidStallNum) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleAssignStallNumber -> h.svc.AssignStallNumber -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stall)
}
