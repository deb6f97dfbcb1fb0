package mappers

import (
	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	items := make([]domain.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
		}
	}

	return &domain.Order{
		ID:             model.ID,
		FullName:       model.FullName,
		Email:          model.Email,
		Phone:          model.Phone,
		Address:        model.Address,
		PaymentMethod:  model.PaymentMethod,
		Items:          items,
		Subtotal:       model.Subtotal,
		Shipping:       model.Shipping,
		TotalPrice:     model.TotalPrice,
		Status:         model.Status,
		PaymentStatus:  model.PaymentStatus,
		TransactionID:  model.TransactionID,
		PaymentDetails: model.PaymentDetails,
		OrderDate:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	items := make([]models.OrderItemModel, len(order.Items))
	for i, item := range order.Items {
		items[i] = models.OrderItemModel{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
		}
	}

	return &models.OrderModel{
		ID:             order.ID,
		FullName:       order.FullName,
		Email:          order.Email,
		Phone:          order.Phone,
		Address:        order.Address,
		PaymentMethod:  order.PaymentMethod,
		Items:          items,
		Subtotal:       order.Subtotal,
		Shipping:       order.Shipping,
		TotalPrice:     order.TotalPrice,
		Status:         order.Status,
		PaymentStatus:  order.PaymentStatus,
		TransactionID:  order.TransactionID,
		PaymentDetails: order.PaymentDetails,
		CreatedAt:      order.OrderDate,
		UpdatedAt:      order.UpdatedAt,
	}
}
