package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/designclub49123/kalakranti/internal/api/handler/v1"
	"github.com/designclub49123/kalakranti/internal/api/handler/v1/response"
	"github.com/designclub49123/kalakranti/internal/config"
	"github.com/designclub49123/kalakranti/internal/domain"
	"github.com/designclub49123/kalakranti/internal/pkg/jwthelper"
	"github.com/designclub49123/kalakranti/internal/service"
)

type stubAuthService struct {
	signupFn func(profile domain.Profile) (domain.Profile, error)
	loginFn  func(email, password string) (domain.Profile, error)
}

func (s *stubAuthService) Signup(_ context.Context, profile domain.Profile) (domain.Profile, error) {
	return s.signupFn(profile)
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (domain.Profile, error) {
	return s.loginFn(email, password)
}

func newAuthRouter(svc v1.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := v1.NewAuthHandler(&config.APIConfig{JWTSigningKey: "test-signing-key"}, svc)
	router.POST("/api/v1/auth/signup", handler.HandleSignup)
	router.POST("/api/v1/auth/login", handler.HandleLogin)

	return router
}

func TestAuthHandler_HandleSignup(t *testing.T) {
	t.Run("creates an account", func(t *testing.T) {
		svc := &stubAuthService{
			signupFn: func(profile domain.Profile) (domain.Profile, error) {
				profile.ID = 1
				profile.Role = domain.RoleStudent

				return profile, nil
			},
		}
		router := newAuthRouter(svc)

		w := postJSON(t, router, "/api/v1/auth/signup", map[string]string{
			"full_name":        "Asha Rao",
			"email":            "asha@example.com",
			"password":         "secret123",
			"confirm_password": "secret123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var created domain.Profile
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.Equal(t, domain.RoleStudent, created.Role)
	})

	t.Run("weak passwords are rejected", func(t *testing.T) {
		svc := &stubAuthService{
			signupFn: func(_ domain.Profile) (domain.Profile, error) {
				t.Fatal("service should not be called")

				return domain.Profile{}, nil
			},
		}
		router := newAuthRouter(svc)

		w := postJSON(t, router, "/api/v1/auth/signup", map[string]string{
			"full_name":        "Asha Rao",
			"email":            "asha@example.com",
			"password":         "letters-only",
			"confirm_password": "letters-only",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate emails are a 400", func(t *testing.T) {
		svc := &stubAuthService{
			signupFn: func(_ domain.Profile) (domain.Profile, error) {
				return domain.Profile{}, service.ErrProfileEmailExists
			},
		}
		router := newAuthRouter(svc)

		w := postJSON(t, router, "/api/v1/auth/signup", map[string]string{
			"full_name":        "Asha Rao",
			"email":            "asha@example.com",
			"password":         "secret123",
			"confirm_password": "secret123",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	t.Run("returns a token bound to the user", func(t *testing.T) {
		svc := &stubAuthService{
			loginFn: func(email, password string) (domain.Profile, error) {
				return domain.Profile{ID: 42, Email: email, Role: domain.RoleStudent}, nil
			},
		}
		router := newAuthRouter(svc)

		w := postJSON(t, router, "/api/v1/auth/login", map[string]string{
			"email":    "asha@example.com",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp response.LoginResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, uint(42), resp.User.ID)

		claims, err := jwthelper.ParseToken([]byte("test-signing-key"), resp.Token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
	})

	t.Run("bad credentials are a 401", func(t *testing.T) {
		svc := &stubAuthService{
			loginFn: func(_, _ string) (domain.Profile, error) {
				return domain.Profile{}, service.ErrWrongPassword
			},
		}
		router := newAuthRouter(svc)

		w := postJSON(t, router, "/api/v1/auth/login", map[string]string{
			"email":    "asha@example.com",
			"password": "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
