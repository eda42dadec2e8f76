package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"go-storefront/internal/dto"
	"go-storefront/internal/service"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cart, err := h.cartService.AddToCart(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(cart))
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.cartService.GetCart(ctx, c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(cart))
}

func (h *CartHandler) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cart, err := h.cartService.UpdateQuantity(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(cart))
}

func (h *CartHandler) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.cartService.DeleteItem(ctx, c.Param("userId"), c.Param("productId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(cart))
}
