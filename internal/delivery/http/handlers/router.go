package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(paymentHandler *PaymentHandler, orderHandler *OrderHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/payment", func(r chi.Router) {
		r.Post("/initiate", paymentHandler.Initiate)
		r.Post("/success", paymentHandler.Success)
		r.Post("/fail", paymentHandler.Fail)
		r.Post("/cancel", paymentHandler.Cancel)
		r.Post("/ipn", paymentHandler.IPN)

		// Browsers replay the redirect URLs as GETs.
		r.Get("/success", paymentHandler.Replay)
		r.Get("/fail", paymentHandler.Replay)
		r.Get("/cancel", paymentHandler.Replay)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/", orderHandler.ListOrders)
		r.Get("/{id}", orderHandler.GetOrderByID)
		r.Patch("/{id}/status", orderHandler.UpdateStatus)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
