package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
	"github.com/MdShalimSadman/maha-ecommerce/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUsecase
}

func NewOrderHandler(orderUsecase usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

type orderItemDTO struct {
	ProductID string  `json:"_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
}

type createOrderRequest struct {
	FullName      string         `json:"fullName"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	PaymentMethod string         `json:"paymentMethod"`
	Items         []orderItemDTO `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	Shipping      float64        `json:"shipping"`
	Total         float64        `json:"total"`
}

type orderResponse struct {
	ID            string         `json:"id"`
	FullName      string         `json:"fullName"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	PaymentMethod string         `json:"paymentMethod"`
	Items         []orderItemDTO `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	Shipping      float64        `json:"shipping"`
	Total         float64        `json:"total"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	TransactionID string         `json:"transactionId,omitempty"`
	CreatedAt     string         `json:"createdAt"`
}

func toOrderResponse(order *domain.Order) orderResponse {
	items := make([]orderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = orderItemDTO{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
		}
	}

	return orderResponse{
		ID:            order.ID,
		FullName:      order.FullName,
		Email:         order.Email,
		Phone:         order.Phone,
		Address:       order.Address,
		PaymentMethod: order.PaymentMethod,
		Items:         items,
		Subtotal:      order.Subtotal,
		Shipping:      order.Shipping,
		Total:         order.TotalPrice,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		TransactionID: order.TransactionID,
		CreatedAt:     order.OrderDate.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
		}
	}

	orderID, err := h.orderUsecase.CreateOrder(&domain.Order{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Items:         items,
		Subtotal:      req.Subtotal,
		Shipping:      req.Shipping,
		TotalPrice:    req.Total,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_order", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": orderID})
}

func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	order, err := h.orderUsecase.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		slog.Error("order lookup failed", "order_id", orderID, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "server_error", "failed to load order")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	orders, total, err := h.orderUsecase.GetOrders(page, limit)
	if err != nil {
		slog.Error("order list failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "server_error", "failed to list orders")
		return
	}

	responses := make([]orderResponse, len(orders))
	for i, order := range orders {
		responses[i] = toOrderResponse(order)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": responses,
		"total":  total,
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := h.orderUsecase.UpdateOrderStatus(orderID, domain.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": orderID, "status": req.Status})
}
