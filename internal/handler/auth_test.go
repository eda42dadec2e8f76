package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/internal/apperr"
	"go-storefront/internal/dto"
	"go-storefront/internal/middleware"
	"go-storefront/internal/model"
	"go-storefront/internal/service"
)

type fakeAuthService struct {
	registerFunc func(ctx context.Context, userName, email, password string) error
	loginFunc    func(ctx context.Context, email, password string) (*model.User, string, error)
}

func (f *fakeAuthService) Register(ctx context.Context, userName, email, password string) error {
	return f.registerFunc(ctx, userName, email, password)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.loginFunc(ctx, email, password)
}

func (f *fakeAuthService) ParseToken(token string) (*service.Claims, error) {
	return nil, apperr.Unauthorized("Unauthorized! Invalid or expired token.")
}

func (f *fakeAuthService) TokenTTL() time.Duration {
	return time.Hour
}

func newAuthContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_RegisterSuccess(t *testing.T) {
	fake := &fakeAuthService{
		registerFunc: func(ctx context.Context, userName, email, password string) error {
			assert.Equal(t, "jane", userName)
			assert.Equal(t, "jane@example.com", email)
			return nil
		},
	}
	h := NewAuthHandler(fake)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/register",
		`{"userName":"jane","email":"jane@example.com","password":"s3cret"}`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Registration successful", body.Message)
}

func TestAuthHandler_RegisterDuplicateAnswersSuccessFalse(t *testing.T) {
	fake := &fakeAuthService{
		registerFunc: func(ctx context.Context, userName, email, password string) error {
			return apperr.Validation("User already exists with the same email! Please try again")
		},
	}
	h := NewAuthHandler(fake)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/register",
		`{"userName":"jane","email":"jane@example.com","password":"s3cret"}`)
	require.NoError(t, h.Register(c))

	// The client branches on success, not on HTTP status.
	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "User already exists with the same email! Please try again", body.Message)
}

func TestAuthHandler_LoginSetsSessionCookie(t *testing.T) {
	fake := &fakeAuthService{
		loginFunc: func(ctx context.Context, email, password string) (*model.User, string, error) {
			return &model.User{
				ID:       "user-1",
				UserName: "jane",
				Email:    email,
				Role:     model.RoleUser,
			}, "signed-token", nil
		},
	}
	h := NewAuthHandler(fake)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"s3cret"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "user-1", body.User.ID)
	assert.Equal(t, model.RoleUser, body.User.Role)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, middleware.TokenCookieName, cookie.Name)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestAuthHandler_LoginBadCredentialsAnswersSuccessFalse(t *testing.T) {
	fake := &fakeAuthService{
		loginFunc: func(ctx context.Context, email, password string) (*model.User, string, error) {
			return nil, "", apperr.Validation("Incorrect password! Please try again")
		},
	}
	h := NewAuthHandler(fake)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/login",
		`{"email":"jane@example.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body dto.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Incorrect password! Please try again", body.Message)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})

	c, rec := newAuthContext(http.MethodPost, "/api/auth/logout", "")
	require.NoError(t, h.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.TokenCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestAuthHandler_CheckAuth(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{})

	c, rec := newAuthContext(http.MethodGet, "/api/auth/check-auth", "")
	c.Set("user", &service.Claims{
		UserID:   "user-1",
		UserName: "jane",
		Email:    "jane@example.com",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, h.CheckAuth(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool         `json:"success"`
		Data    dto.UserView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "user-1", body.Data.ID)
	assert.Equal(t, model.RoleAdmin, body.Data.Role)
}
