package models

import (
	"time"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
)

type OrderModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	FullName      string
	Email         string `gorm:"index:idx_email"`
	Phone         string
	Address       string
	PaymentMethod string
	Items         []OrderItemModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Subtotal      float64
	Shipping      float64
	TotalPrice    float64
	Status        domain.OrderStatus   `gorm:"index:idx_status"`
	PaymentStatus domain.PaymentStatus `gorm:"index:idx_payment_status"`
	TransactionID string               `gorm:"index:idx_transaction_id"`
	// PaymentDetails holds the raw verified validator response, written once
	// together with the terminal payment status.
	PaymentDetails string    `gorm:"type:jsonb"`
	CreatedAt      time.Time `gorm:"index:idx_created_at"`
	UpdatedAt      time.Time
}

type OrderItemModel struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   string `gorm:"type:uuid;index;not null"`
	ProductID string
	Title     string
	Price     float64
	Quantity  int
	Size      string
}
