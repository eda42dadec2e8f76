package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	PaymentMethodPaypal = "paypal"
	PaymentMethodCard   = "card"
)

type User struct {
	ID           string `gorm:"primaryKey;size:64" json:"id"`
	UserName     string `gorm:"size:128;not null" json:"userName"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	Role         string `gorm:"size:16;not null;default:user" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Product struct {
	ID          string  `gorm:"primaryKey;size:64" json:"id"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"size:64;index" json:"category"`
	Brand       string  `gorm:"size:64;index" json:"brand"`
	Image       string  `gorm:"size:512" json:"image"`
	Price       float64 `gorm:"not null" json:"price"`
	SalePrice   float64 `json:"salePrice"`
	TotalStock  int     `gorm:"not null" json:"totalStock"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Cart is a user's open, uncommitted selection. One per user; deleted once
// the order placed from it is paid.
type Cart struct {
	ID     string     `gorm:"primaryKey;size:64" json:"id"`
	UserID string     `gorm:"size:64;uniqueIndex;not null" json:"userId"`
	Items  []CartItem `gorm:"foreignKey:CartID" json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CartItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	CartID    string `gorm:"size:64;uniqueIndex:idx_cart_product;not null" json:"-"`
	ProductID string `gorm:"size:64;uniqueIndex:idx_cart_product;not null" json:"productId"`
	Quantity  int    `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Address struct {
	ID      string `gorm:"primaryKey;size:64" json:"id"`
	UserID  string `gorm:"size:64;index;not null" json:"userId"`
	Address string `gorm:"size:512" json:"address"`
	City    string `gorm:"size:128" json:"city"`
	Pincode string `gorm:"size:16" json:"pincode"`
	Phone   string `gorm:"size:32" json:"phone"`
	Notes   string `gorm:"size:512" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AddressInfo is the shipping snapshot embedded on an order. Orders keep
// their own copy so later edits to the address book don't rewrite history.
type AddressInfo struct {
	AddressID string `gorm:"size:64" json:"addressId"`
	Address   string `gorm:"size:512" json:"address"`
	City      string `gorm:"size:128" json:"city"`
	Pincode   string `gorm:"size:16" json:"pincode"`
	Phone     string `gorm:"size:32" json:"phone"`
	Notes     string `gorm:"size:512" json:"notes"`
}

type Order struct {
	ID     string `gorm:"primaryKey;size:64" json:"id"`
	UserID string `gorm:"size:64;index;not null" json:"userId"`
	// CartID references the cart this order was placed from; the cart is
	// deleted on capture, so the reference may dangle afterwards.
	CartID string      `gorm:"size:64" json:"cartId"`
	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"cartItems"`

	AddressInfo AddressInfo `gorm:"embedded;embeddedPrefix:addr_" json:"addressInfo"`

	Status        string    `gorm:"size:32;index;not null" json:"status"`
	PaymentMethod string    `gorm:"size:32;not null" json:"paymentMethod"`
	PaymentStatus string    `gorm:"size:32;index;not null" json:"paymentStatus"`
	TotalAmount   float64   `gorm:"not null" json:"totalAmount"`
	OrderDate     time.Time `gorm:"index" json:"orderDate"`

	// PaymentID holds the gateway's order/transaction id; PayerID the
	// buyer's gateway identity. Both set at creation or on capture.
	PaymentID string `gorm:"size:128" json:"paymentId"`
	PayerID   string `gorm:"size:64" json:"payerId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem is a snapshot of a cart line at order time: title, image and
// price are copied so the order history survives catalog edits.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"size:64;index;not null" json:"-"`
	ProductID string  `gorm:"size:64;index;not null" json:"productId"`
	Title     string  `gorm:"size:255" json:"title"`
	Image     string  `gorm:"size:512" json:"image"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  int     `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `json:"-"`
}
