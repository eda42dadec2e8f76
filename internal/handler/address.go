package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"go-storefront/internal/dto"
	"go-storefront/internal/service"
)

type AddressHandler struct {
	addressService service.AddressService
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.AddressPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	address, err := h.addressService.Add(ctx, &payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.OKMessage("Address added successfully", address))
}

func (h *AddressHandler) GetByUser(c echo.Context) error {
	ctx := c.Request().Context()

	addresses, err := h.addressService.GetByUser(ctx, c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(addresses))
}

func (h *AddressHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var payload dto.AddressPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	address, err := h.addressService.Update(ctx, c.Param("userId"), c.Param("addressId"), &payload)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Address updated successfully", address))
}

func (h *AddressHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.addressService.Delete(ctx, c.Param("userId"), c.Param("addressId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Address deleted successfully", nil))
}
