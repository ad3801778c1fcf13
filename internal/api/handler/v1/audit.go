package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/designclub49123/kalakranti/internal/api/handler/v1/response"
	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/service"
)

type AuditService interface {
	ListRecent(ctx context.Context, actor domain.Actor, limit int) ([]domain.AuditLog, error)
}

type AuditHandler struct {
	svc  AuditService
	uSvc UserService
}

func NewAuditHandler(svc AuditService, uSvc UserService) *AuditHandler {
	return &AuditHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListAuditLogs godoc
// @Summary      List recent audit log entries
// @Description  Admin team only. Newest first.
// @Tags         audit
// @Produce      json
// @Param        limit  query     int  false  "max entries, default 50"
// @Success      200  {array}   domain.AuditLog
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /audit-logs [get]
// @Security BearerAuth
func (h *AuditHandler) HandleListAuditLogs(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("limit must be an integer")))
			return
		}
		limit = v
	}

	entries, err := h.svc.ListRecent(ctx.Request.Context(), actorOf(user), limit)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleListAuditLogs -> h.svc.ListRecent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
