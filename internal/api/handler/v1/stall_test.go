package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/designclub49123/kalakranti/internal/api/handler/v1"
	"github.com/designclub49123/kalakranti/internal/api/middleware"
	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/service"
)

type stubUserService struct {
	profiles map[uint]domain.Profile
}

func (s *stubUserService) GetProfile(_ context.Context, id uint) (domain.Profile, error) {
	profile, ok := s.profiles[id]
	if !ok {
		return domain.Profile{}, service.ErrProfileNotFound
	}

	return profile, nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, profile domain.Profile) (domain.Profile, error) {
	return profile, nil
}

func (s *stubUserService) ListProfiles(_ context.Context, _ domain.Actor) ([]domain.Profile, error) {
	return nil, nil
}

type stubStallService struct {
	registerFn func(actor domain.Actor, stall domain.Stall, emails []string, phone string) (domain.Stall, error)
	decideFn   func(actor domain.Actor, stallID uint, decision domain.StallStatus) (domain.Stall, error)
	assignFn   func(actor domain.Actor, stallID uint, number int) (domain.Stall, error)
}

func (s *stubStallService) RegisterStall(_ context.Context, actor domain.Actor, stall domain.Stall, emails []string, phone string) (domain.Stall, error) {
	return s.registerFn(actor, stall, emails, phone)
}

func (s *stubStallService) DecideStall(_ context.Context, actor domain.Actor, stallID uint, decision domain.StallStatus) (domain.Stall, error) {
	return s.decideFn(actor, stallID, decision)
}

func (s *stubStallService) AssignStallNumber(_ context.Context, actor domain.Actor, stallID uint, number int) (domain.Stall, error) {
	return s.assignFn(actor, stallID, number)
}

func (s *stubStallService) GetStall(_ context.Context, _ domain.Actor, _ uint) (domain.Stall, error) {
	return domain.Stall{}, service.ErrStallNotFound
}

func (s *stubStallService) ListStalls(_ context.Context, _ domain.Actor, _ domain.StallFilter) ([]domain.StallSummary, error) {
	return nil, nil
}

func (s *stubStallService) MyStalls(_ context.Context, _ domain.Actor) ([]domain.Stall, error) {
	return nil, nil
}

func newStallRouter(userID uint, svc v1.StallService, uSvc v1.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := v1.NewStallHandler(svc, uSvc)
	authed := router.Group("/api/v1", func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, userID)
		ctx.Next()
	})
	authed.POST("/stalls", handler.HandleRegisterStall)
	authed.POST("/stalls/:stallID/decision", handler.HandleDecideStall)
	authed.POST("/stalls/:stallID/number", handler.HandleAssignStallNumber)

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestStallHandler_HandleRegisterStall(t *testing.T) {
	uSvc := &stubUserService{profiles: map[uint]domain.Profile{
		1: {ID: 1, Role: domain.RoleStudent},
	}}

	t.Run("creates a stall", func(t *testing.T) {
		svc := &stubStallService{
			registerFn: func(actor domain.Actor, stall domain.Stall, emails []string, phone string) (domain.Stall, error) {
				assert.Equal(t, uint(1), actor.UserID)
				assert.Equal(t, []string{"alice@example.com"}, emails)
				assert.Equal(t, "+911234567890", phone)
				stall.ID = 7
				stall.Status = domain.StallPending

				return stall, nil
			},
		}
		router := newStallRouter(1, svc, uSvc)

		w := postJSON(t, router, "/api/v1/stalls", map[string]interface{}{
			"event_id":      1,
			"name":          "Robo Wars",
			"member_emails": []string{"alice@example.com"},
			"leader_phone":  "+911234567890",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var created domain.Stall
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.Equal(t, uint(7), created.ID)
		assert.Equal(t, domain.StallPending, created.Status)
	})

	t.Run("unknown member email is a 400 naming the address", func(t *testing.T) {
		svc := &stubStallService{
			registerFn: func(_ domain.Actor, _ domain.Stall, _ []string, _ string) (domain.Stall, error) {
				return domain.Stall{}, &service.MemberNotFoundError{Email: "ghost@example.com"}
			},
		}
		router := newStallRouter(1, svc, uSvc)

		w := postJSON(t, router, "/api/v1/stalls", map[string]interface{}{
			"event_id":      1,
			"name":          "Robo Wars",
			"member_emails": []string{"ghost@example.com"},
			"leader_phone":  "+911234567890",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ghost@example.com")
	})

	t.Run("missing phone fails validation before the service runs", func(t *testing.T) {
		svc := &stubStallService{
			registerFn: func(_ domain.Actor, _ domain.Stall, _ []string, _ string) (domain.Stall, error) {
				t.Fatal("service should not be called")

				return domain.Stall{}, nil
			},
		}
		router := newStallRouter(1, svc, uSvc)

		w := postJSON(t, router, "/api/v1/stalls", map[string]interface{}{
			"event_id": 1,
			"name":     "Robo Wars",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStallHandler_HandleDecideStall(t *testing.T) {
	uSvc := &stubUserService{profiles: map[uint]domain.Profile{
		9: {ID: 9, Role: domain.RoleJuniorAdmin},
	}}

	t.Run("already decided maps to 409", func(t *testing.T) {
		svc := &stubStallService{
			decideFn: func(_ domain.Actor, _ uint, _ domain.StallStatus) (domain.Stall, error) {
				return domain.Stall{}, service.ErrStallNotPending
			},
		}
		router := newStallRouter(9, svc, uSvc)

		w := postJSON(t, router, "/api/v1/stalls/7/decision", map[string]interface{}{
			"decision": "approved",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("forbidden maps to 403", func(t *testing.T) {
		svc := &stubStallService{
			decideFn: func(_ domain.Actor, _ uint, _ domain.StallStatus) (domain.Stall, error) {
				return domain.Stall{}, service.ErrForbidden
			},
		}
		router := newStallRouter(9, svc, uSvc)

		w := postJSON(t, router, "/api/v1/stalls/7/decision", map[string]interface{}{
			"decision": "rejected",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid decision payload is a 400", func(t *testing.T) {
		svc := &stubStallService{
			decideFn: func(_ domain.Actor, _ uint, _ domain.StallStatus) (domain.Stall, error) {
				t.Fatal("service should not be called")

				return domain.Stall{}, nil
			},
		}
		router := newStallRouter(9, svc, uSvc)

		w := postJSON(t, router, "/api/v1/stalls/7/decision", map[string]interface{}{
			"decision": "maybe",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStallHandler_HandleAssignStallNumber(t *testing.T) {
	uSvc := &stubUserService{profiles: map[uint]domain.Profile{
		10: {ID: 10, Role: domain.RoleAdmin},
	}}

	t.Run("taken number maps to 409", func(t *testing.T) {
		svc := &stubStallService{
			assignFn: func(_ domain.Actor, _ uint, _ int) (domain.Stall, error) {
				return domain.Stall{}, service.ErrStallNumberTaken
			},
		}
		router := newStallRouter(10, svc, uSvc)

		w := postJSON(t, router, "/api/v1/stalls/7/number", map[string]interface{}{
			"stall_number": 3,
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("assigns and echoes the stall", func(t *testing.T) {
		svc := &stubStallService{
			assignFn: func(_ domain.Actor, stallID uint, number int) (domain.Stall, error) {
				return domain.Stall{ID: stallID, Status: domain.StallApproved, StallNumber: &number}, nil
			},
		}
		router := newStallRouter(10, svc, uSvc)

		w := postJSON(t, router, "/api/v1/stalls/7/number", map[string]interface{}{
			"stall_number": 3,
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var stall domain.Stall
		require.NoError(t, json.NewDecoder(w.Body).Decode(&stall))
		require.NotNil(t, stall.StallNumber)
		assert.Equal(t, 3, *stall.StallNumber)
	})
}
