package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"go-storefront/internal/dto"
	"go-storefront/internal/service"
)

type OrderHandler struct {
	orderService  service.OrderService
	clientBaseURL string
}

func NewOrderHandler(orderService service.OrderService, clientBaseURL string) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		clientBaseURL: clientBaseURL,
	}
}

// -------- shop --------

func (h *OrderHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"success":     true,
		"approvalURL": result.ApprovalURL,
		"orderId":     result.OrderID,
	})
}

func (h *OrderHandler) Capture(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CaptureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.CapturePayment(ctx, req.PaymentID, req.PayerID, req.OrderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Order confirmed", order))
}

// PaypalReturn is the gateway's browser redirect target. The order id was
// embedded in the return URL at creation time, so no client-side state
// survives the round trip to the provider.
func (h *OrderHandler) PaypalReturn(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.QueryParam("orderId")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing orderId")
	}
	// PayPal appends its own order token and the buyer id to the redirect.
	gatewayOrderID := c.QueryParam("token")
	payerID := c.QueryParam("PayerID")

	if _, err := h.orderService.CapturePayment(ctx, gatewayOrderID, payerID, orderID); err != nil {
		return c.Redirect(http.StatusFound, h.clientBaseURL+"/shop/payment-failed")
	}

	return c.Redirect(http.StatusFound, h.clientBaseURL+"/shop/payment-success")
}

func (h *OrderHandler) CardCheckout(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CardCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.CardCheckout(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Order confirmed", order))
}

func (h *OrderHandler) ListByUser(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.GetAllOrdersByUser(ctx, c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(orders))
}

func (h *OrderHandler) GetDetails(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.GetOrderDetails(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(order))
}

// -------- admin --------

func (h *OrderHandler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListAllOrders(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK(orders))
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.UpdateOrderStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OKMessage("Order status updated successfully!", order))
}
