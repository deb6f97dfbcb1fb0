package usecase

import (
	"fmt"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
)

type OrderUsecase interface {
	CreateOrder(order *domain.Order) (string, error)
	GetOrderByID(orderID string) (*domain.Order, error)
	GetOrders(page, limit int64) ([]*domain.Order, int64, error)
	UpdateOrderStatus(orderID string, newStatus domain.OrderStatus) error
}

type DefaultOrderUsecase struct {
	OrderRepo domain.OrderRepository
}

func NewDefaultOrderUsecase(orderRepo domain.OrderRepository) *DefaultOrderUsecase {
	return &DefaultOrderUsecase{OrderRepo: orderRepo}
}

func (uc *DefaultOrderUsecase) CreateOrder(order *domain.Order) (string, error) {
	if order.FullName == "" || len(order.Items) == 0 {
		return "", fmt.Errorf("order requires a customer name and at least one item")
	}

	// Checkout creates orders awaiting payment; reconciliation is the only
	// writer of payment_status after this point.
	order.Status = domain.StatusPending
	order.PaymentStatus = domain.PaymentAwaiting

	return uc.OrderRepo.CreateOrder(order)
}

func (uc *DefaultOrderUsecase) GetOrderByID(orderID string) (*domain.Order, error) {
	return uc.OrderRepo.GetOrderByID(orderID)
}

func (uc *DefaultOrderUsecase) GetOrders(page, limit int64) ([]*domain.Order, int64, error) {
	return uc.OrderRepo.GetOrders(page, limit)
}

// UpdateOrderStatus is the dashboard operator path. It touches the
// fulfillment lifecycle only; payment_status is out of its reach.
func (uc *DefaultOrderUsecase) UpdateOrderStatus(orderID string, newStatus domain.OrderStatus) error {
	switch newStatus {
	case domain.StatusPending, domain.StatusProcessing, domain.StatusShipped,
		domain.StatusDelivered, domain.StatusCancelled:
	default:
		return fmt.Errorf("unknown order status: %s", newStatus)
	}

	return uc.OrderRepo.UpdateOrderStatus(orderID, newStatus)
}
