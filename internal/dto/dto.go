package dto

import (
	"time"

	"go-storefront/internal/model"
)

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func OKMessage(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// -------- auth --------

type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserView struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func NewUserView(u *model.User) UserView {
	return UserView{ID: u.ID, UserName: u.UserName, Email: u.Email, Role: u.Role}
}

type LoginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	User    UserView `json:"user"`
}

// -------- catalog --------

type ProductPayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	SalePrice   float64 `json:"salePrice"`
	TotalStock  int     `json:"totalStock"`
}

// ProductFilter carries the shop listing query. Category and Brand accept
// comma-separated values; SortBy is one of price-lowtohigh, price-hightolow,
// title-atoz, title-ztoa.
type ProductFilter struct {
	Category string `query:"category"`
	Brand    string `query:"brand"`
	SortBy   string `query:"sortBy"`
}

// -------- cart --------

type AddToCartRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartItemView is a cart line joined with its product's current listing.
type CartItemView struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"salePrice"`
	Quantity  int     `json:"quantity"`
}

type CartView struct {
	CartID string         `json:"cartId"`
	UserID string         `json:"userId"`
	Items  []CartItemView `json:"items"`
}

// -------- address --------

type AddressPayload struct {
	UserID  string `json:"userId"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// -------- orders --------

type CartItemPayload struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type AddressInfoPayload struct {
	AddressID string `json:"addressId"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Pincode   string `json:"pincode"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

type CreateOrderRequest struct {
	UserID        string             `json:"userId"`
	CartItems     []CartItemPayload  `json:"cartItems"`
	AddressInfo   AddressInfoPayload `json:"addressInfo"`
	PaymentMethod string             `json:"paymentMethod"`
	TotalAmount   float64            `json:"totalAmount"`
	OrderDate     time.Time          `json:"orderDate"`
	CartID        string             `json:"cartId"`
}

type CreateOrderResponse struct {
	ApprovalURL string `json:"approvalURL"`
	OrderID     string `json:"orderId"`
}

type CaptureRequest struct {
	PaymentID string `json:"paymentId"`
	PayerID   string `json:"payerId"`
	OrderID   string `json:"orderId"`
}

// CardCheckoutRequest is the single-step card flow: the frontend tokenizes
// the card into a nonce and the order is charged and finalized in one call.
type CardCheckoutRequest struct {
	UserID      string             `json:"userId"`
	CartItems   []CartItemPayload  `json:"cartItems"`
	AddressInfo AddressInfoPayload `json:"addressInfo"`
	TotalAmount float64            `json:"totalAmount"`
	OrderDate   time.Time          `json:"orderDate"`
	CartID      string             `json:"cartId"`
	Nonce       string             `json:"nonce"`
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	Email       string             `json:"email"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
