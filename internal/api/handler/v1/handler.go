package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/designclub49123/kalakranti/internal/api/handler/v1/response"
	"github.com/designclub49123/kalakranti/internal/api/middleware"
	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/service"
)

func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.Profile, *response.Err) {
	v, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.Profile{}, response.ErrPermissionDenied(errors.New("missing authentication"))
	}

	userID, ok := v.(uint)
	if !ok {
		return domain.Profile{}, response.ErrPermissionDenied(errors.New("invalid authentication"))
	}

	user, err := uSvc.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return domain.Profile{}, response.ErrNotFound("user", "ID", userID)
		}

		err = fmt.Errorf("getUserFromContext -> uSvc.GetProfile -> %w", err)

		return domain.Profile{}, response.ErrInternalServerError(err)
	}

	return user, nil
}

func actorOf(user domain.Profile) domain.Actor {
	return domain.Actor{
		UserID: user.ID,
		Role:   user.Role,
	}
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%v must be a positive integer", name)
	}

	return uint(v), nil
}
