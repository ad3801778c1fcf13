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

type CommunicationService interface {
	Recipients(ctx context.Context, actor domain.Actor, eventID uint) ([]domain.Profile, error)
}

type CommunicationHandler struct {
	svc  CommunicationService
	uSvc UserService
}

func NewCommunicationHandler(svc CommunicationService, uSvc UserService) *CommunicationHandler {
	return &CommunicationHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListRecipients godoc
// @Summary      Resolve the audience for an announcement
// @Description  Admin team only. Without event_id the audience is every registered account; with it, every stall leader and member of that event.
// @Tags         communications
// @Produce      json
// @Param        event_id  query     int  false  "limit to one event's participants"
// @Success      200  {array}   domain.Profile
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /communications/recipients [get]
// @Security BearerAuth
func (h *CommunicationHandler) HandleListRecipients(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var eventID uint
	if raw := ctx.Query("event_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("event_id must be a positive integer")))
			return
		}
		eventID = uint(v)
	}

	recipients, err := h.svc.Recipients(ctx.Request.Context(), actorOf(user), eventID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}

		err = fmt.Errorf("v1.HandleListRecipients -> h.svc.Recipients -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, recipients)
}
