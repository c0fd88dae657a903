package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubAuthService returns fixed values.
type stubAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (s *stubAuthService) Register(_ context.Context, _, _, _ string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	return s.token, s.user, nil
}

func (s *stubAuthService) GetJWTSecret() string { return "stub" }

func authRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(svc, time.Hour)
	router := gin.New()
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterHandler(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com"}
	router := authRouter(&stubAuthService{user: user})

	rec := postJSON(t, router, "/auth/register", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, user.ID.Hex(), resp.ID)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestRegisterHandler_Validation(t *testing.T) {
	router := authRouter(&stubAuthService{})

	// Short password fails binding before the service is reached.
	rec := postJSON(t, router, "/auth/register", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, router, "/auth/register", map[string]string{
		"name": "Alice", "email": "not-an-email", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterHandler_Conflict(t *testing.T) {
	router := authRouter(&stubAuthService{err: service.ErrUserAlreadyExists})

	rec := postJSON(t, router, "/auth/register", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginHandler_SetsSessionCookie(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com"}
	router := authRouter(&stubAuthService{user: user, token: "signed-token"})

	rec := postJSON(t, router, "/auth/login", map[string]string{
		"email": "alice@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, user.Email, resp.User.Email)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	assert.Equal(t, "signed-token", session.Value)
	assert.True(t, session.HttpOnly)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	router := authRouter(&stubAuthService{err: service.ErrAuthenticationFailed})

	rec := postJSON(t, router, "/auth/login", map[string]string{
		"email": "alice@example.com", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
