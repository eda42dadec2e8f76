package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-storefront/internal/apperr"
	"go-storefront/internal/client"
	"go-storefront/internal/config"
	"go-storefront/internal/dto"
	"go-storefront/internal/model"
	"go-storefront/internal/repository"
)

// OrderService orchestrates the order/payment workflow: placing an order
// against the gateway, capturing the payment, and the read paths used by
// the shop and admin views.
type OrderService interface {
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)

	// CapturePayment finalizes a previously approved order: mark paid,
	// decrement stock, drop the source cart — atomically, and at most once
	// per order. Capturing an already-paid order returns it unchanged.
	CapturePayment(ctx context.Context, paymentID, payerID, orderID string) (*model.Order, error)

	// CardCheckout is the one-shot card flow: charge the tokenized card and
	// finalize the order in the same call, no approval redirect.
	CardCheckout(ctx context.Context, req *dto.CardCheckoutRequest) (*model.Order, error)

	GetAllOrdersByUser(ctx context.Context, userID string) ([]*model.Order, error)
	GetOrderDetails(ctx context.Context, orderID string) (*model.Order, error)

	ListAllOrders(ctx context.Context) ([]*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error)
}

type orderServiceImpl struct {
	db              *gorm.DB
	paypalClient    client.PaypalClient
	braintreeClient client.BraintreeClient
	orderRepo       repository.OrderRepository
	productRepo     repository.ProductRepository
	cartRepo        repository.CartRepository
	logger          *zap.Logger

	serviceBaseURL string
	clientBaseURL  string
}

func NewOrderService(
	db *gorm.DB,
	paypalClient client.PaypalClient,
	braintreeClient client.BraintreeClient,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	logger *zap.Logger,
	cfg *config.Config,
) OrderService {
	return &orderServiceImpl{
		db:              db,
		paypalClient:    paypalClient,
		braintreeClient: braintreeClient,
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		cartRepo:        cartRepo,
		logger:          logger,
		serviceBaseURL:  cfg.BaseURL,
		clientBaseURL:   cfg.ClientBaseURL,
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if req.UserID == "" {
		return nil, apperr.Validation("userId is required")
	}
	if len(req.CartItems) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}
	for _, item := range req.CartItems {
		if item.Quantity <= 0 {
			return nil, apperr.Validation("item quantity must be positive")
		}
	}

	// The internal order id is allocated up front and embedded in the
	// gateway return URL, so the capture after the buyer's redirect needs
	// no client-held state.
	orderID := uuid.NewString()

	purchaseItems := make([]client.PurchaseItem, len(req.CartItems))
	for i, item := range req.CartItems {
		purchaseItems[i] = client.PurchaseItem{
			Name:     item.Title,
			SKU:      item.ProductID,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	gw, err := s.paypalClient.CreateOrder(ctx, &client.CreateOrderParams{
		Items:     purchaseItems,
		Total:     req.TotalAmount,
		ReturnURL: fmt.Sprintf("%s/api/shop/order/paypal-return?orderId=%s", s.serviceBaseURL, orderID),
		CancelURL: s.clientBaseURL + "/shop/paypal-cancel",
	})
	if err != nil {
		// Nothing persisted on gateway failure: no orphaned order rows.
		return nil, apperr.Upstream("Error creating payment", err)
	}

	order := s.buildOrder(orderID, req)
	order.PaymentID = gw.OrderID

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", orderID),
		zap.String("gateway_order_id", gw.OrderID),
		zap.Float64("total", req.TotalAmount),
	)

	return &dto.CreateOrderResponse{
		ApprovalURL: gw.ApproveURL,
		OrderID:     orderID,
	}, nil
}

func (s *orderServiceImpl) CapturePayment(ctx context.Context, paymentID, payerID, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if order.PaymentStatus == model.PaymentStatusPaid {
		return order, nil
	}

	if order.PaymentMethod == model.PaymentMethodPaypal {
		gatewayOrderID := order.PaymentID
		if gatewayOrderID == "" {
			gatewayOrderID = paymentID
		}

		res, err := s.paypalClient.CaptureOrder(ctx, gatewayOrderID)
		if err != nil {
			return nil, apperr.Upstream("Error capturing payment", err)
		}
		if payerID == "" {
			payerID = res.PayerID
		}
		if paymentID == "" {
			paymentID = gatewayOrderID
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marked, err := s.orderRepo.MarkPaid(tx, orderID, paymentID, payerID)
		if err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}
		if !marked {
			// Lost the race to a concurrent capture; its transaction owns
			// the stock decrement, nothing left to do here.
			return nil
		}

		return s.finalize(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment captured",
		zap.String("order_id", orderID),
		zap.String("payer_id", payerID),
	)

	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderServiceImpl) CardCheckout(ctx context.Context, req *dto.CardCheckoutRequest) (*model.Order, error) {
	if req.Nonce == "" {
		return nil, apperr.Validation("payment nonce is required")
	}
	if len(req.CartItems) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}

	token, err := s.braintreeClient.VaultPaymentMethod(ctx, req.Nonce, req.FirstName, req.LastName, req.Email)
	if err != nil {
		return nil, apperr.Upstream("Error processing card", err)
	}

	transactionID, err := s.braintreeClient.ChargeOneTime(ctx, token, req.TotalAmount)
	if err != nil {
		return nil, apperr.Upstream("Error charging card", err)
	}

	order := s.buildOrder(uuid.NewString(), &dto.CreateOrderRequest{
		UserID:        req.UserID,
		CartItems:     req.CartItems,
		AddressInfo:   req.AddressInfo,
		PaymentMethod: model.PaymentMethodCard,
		TotalAmount:   req.TotalAmount,
		OrderDate:     req.OrderDate,
		CartID:        req.CartID,
	})
	order.Status = model.OrderStatusConfirmed
	order.PaymentStatus = model.PaymentStatusPaid
	order.PaymentID = transactionID
	order.PayerID = req.Email

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		return s.finalize(tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("card checkout completed",
		zap.String("order_id", order.ID),
		zap.String("transaction_id", transactionID),
	)

	return s.orderRepo.FindByID(ctx, order.ID)
}

func (s *orderServiceImpl) GetAllOrdersByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	orders, err := s.orderRepo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("No orders found")
	}
	return orders, nil
}

func (s *orderServiceImpl) GetOrderDetails(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

func (s *orderServiceImpl) ListAllOrders(ctx context.Context) ([]*model.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("No orders found")
	}
	return orders, nil
}

func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	if status == "" {
		return nil, apperr.Validation("status is required")
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if !updated {
		return nil, apperr.NotFound("Order not found")
	}

	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderServiceImpl) buildOrder(orderID string, req *dto.CreateOrderRequest) *model.Order {
	items := make([]model.OrderItem, len(req.CartItems))
	for i, item := range req.CartItems {
		items[i] = model.OrderItem{
			OrderID:   orderID,
			ProductID: item.ProductID,
			Title:     item.Title,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentMethodPaypal
	}

	return &model.Order{
		ID:     orderID,
		UserID: req.UserID,
		CartID: req.CartID,
		Items:  items,
		AddressInfo: model.AddressInfo{
			AddressID: req.AddressInfo.AddressID,
			Address:   req.AddressInfo.Address,
			City:      req.AddressInfo.City,
			Pincode:   req.AddressInfo.Pincode,
			Phone:     req.AddressInfo.Phone,
			Notes:     req.AddressInfo.Notes,
		},
		Status:        model.OrderStatusPending,
		PaymentMethod: paymentMethod,
		PaymentStatus: model.PaymentStatusPending,
		TotalAmount:   req.TotalAmount,
		OrderDate:     req.OrderDate,
	}
}

// finalize decrements stock for every line item and removes the source
// cart. Runs inside the caller's transaction: any failure rolls back the
// whole capture, never leaving stock partially decremented.
func (s *orderServiceImpl) finalize(tx *gorm.DB, order *model.Order) error {
	for _, item := range order.Items {
		decremented, err := s.productRepo.DecrementStock(tx, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
		}
		if decremented {
			continue
		}

		var count int64
		if err := tx.Model(&model.Product{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
			return fmt.Errorf("check product %s: %w", item.ProductID, err)
		}
		if count == 0 {
			return apperr.NotFound(fmt.Sprintf("Product not found: %s", item.ProductID))
		}
		return apperr.Validation(fmt.Sprintf("Insufficient stock for product: %s", item.ProductID))
	}

	if order.CartID != "" {
		if err := s.cartRepo.Delete(tx, order.CartID); err != nil {
			return fmt.Errorf("delete cart %s: %w", order.CartID, err)
		}
	}

	return nil
}
