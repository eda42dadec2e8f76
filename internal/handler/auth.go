package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"go-storefront/internal/apperr"
	"go-storefront/internal/dto"
	"go-storefront/internal/middleware"
	"go-storefront/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.authService.Register(ctx, req.UserName, req.Email, req.Password); err != nil {
		// Duplicate email and friends answer success:false with a 200, the
		// shape the storefront client branches on.
		if apperr.KindOf(err) == apperr.KindValidation {
			return c.JSON(http.StatusOK, dto.Fail(apperr.MessageOf(err)))
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Registration successful", nil))
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return c.JSON(http.StatusOK, dto.Fail(apperr.MessageOf(err)))
		}
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.authService.TokenTTL() / time.Second),
	})

	return c.JSON(http.StatusOK, dto.LoginResponse{
		Success: true,
		Message: "Logged in successfully",
		User:    dto.NewUserView(user),
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	return c.JSON(http.StatusOK, dto.OKMessage("Logged out successfully!", nil))
}

func (h *AuthHandler) CheckAuth(c echo.Context) error {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		return c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized!"))
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Authenticated user", dto.UserView{
		ID:       claims.UserID,
		UserName: claims.UserName,
		Email:    claims.Email,
		Role:     claims.Role,
	}))
}
