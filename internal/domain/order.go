package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentAwaiting   PaymentStatus = "AWAITING_PAYMENT"
	PaymentSuccessful PaymentStatus = "PAYMENT_SUCCESSFUL"
	PaymentFailed     PaymentStatus = "PAYMENT_FAILED"
)

// Terminal reports whether the payment status can no longer change.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentSuccessful || s == PaymentFailed
}

type OrderItem struct {
	ProductID string
	Title     string
	Price     float64
	Quantity  int
	Size      string
}

type Order struct {
	ID            string
	FullName      string
	Email         string
	Phone         string
	Address       string
	PaymentMethod string
	Items         []OrderItem
	Subtotal      float64
	Shipping      float64
	TotalPrice    float64

	// Status is the fulfillment lifecycle, written by dashboard operators only.
	Status OrderStatus

	// PaymentStatus is written exactly once by payment reconciliation:
	// AWAITING_PAYMENT -> PAYMENT_SUCCESSFUL | PAYMENT_FAILED.
	PaymentStatus  PaymentStatus
	TransactionID  string
	PaymentDetails string

	OrderDate time.Time
	UpdatedAt time.Time
}
