package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"go-storefront/internal/dto"
	"go-storefront/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// -------- shop --------

func (h *ProductHandler) ListFiltered(c echo.Context) error {
	ctx := c.Request().Context()

	var filter dto.ProductFilter
	if err := c.Bind(&filter); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	products, err := h.productService.ListFiltered(ctx, &filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(products))
}

func (h *ProductHandler) GetDetails(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.productService.GetByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(product))
}

func (h *ProductHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.Search(ctx, c.Param("keyword"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(products))
}

// -------- admin --------

func (h *ProductHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.ProductPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.productService.Add(ctx, &payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.OKMessage("Product added successfully", product))
}

func (h *ProductHandler) Edit(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.ProductPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	product, err := h.productService.Edit(ctx, c.Param("id"), &payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Product updated successfully", product))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.productService.Delete(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Product deleted successfully", nil))
}

func (h *ProductHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.GetAll(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(products))
}
