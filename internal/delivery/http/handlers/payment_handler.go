package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/sslcommerz"
	"github.com/MdShalimSadman/maha-ecommerce/internal/usecase/payment"
)

type PaymentInitiator interface {
	InitiatePayment(ctx context.Context, request sslcommerz.InitiateRequest) (string, error)
}

// PaymentHandler adapts the gateway's four callback channels onto the shared
// reconciliation usecase. The handlers stay thin on purpose: parse the
// payload shape, normalize, reconcile, redirect.
type PaymentHandler struct {
	paymentUsecase payment.PaymentUsecase
	initiator      PaymentInitiator
}

func NewPaymentHandler(paymentUsecase payment.PaymentUsecase, initiator PaymentInitiator) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		initiator:      initiator,
	}
}

func (h *PaymentHandler) Success(w http.ResponseWriter, r *http.Request) {
	h.handleCallback(w, r, domain.ChannelSuccess)
}

func (h *PaymentHandler) Fail(w http.ResponseWriter, r *http.Request) {
	h.handleCallback(w, r, domain.ChannelFail)
}

func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.handleCallback(w, r, domain.ChannelCancel)
}

func (h *PaymentHandler) IPN(w http.ResponseWriter, r *http.Request) {
	h.handleCallback(w, r, domain.ChannelIPN)
}

func (h *PaymentHandler) handleCallback(w http.ResponseWriter, r *http.Request, channel domain.CallbackChannel) {
	if err := r.ParseForm(); err != nil {
		slog.Error("callback form parse failed", "channel", channel, "error", err.Error())
		http.Redirect(w, r, RedirectPath(domain.Outcome{Kind: domain.OutcomeIndeterminate}), http.StatusSeeOther)
		return
	}

	amount, _ := strconv.ParseFloat(r.PostFormValue("amount"), 64)
	event := domain.CallbackEvent{
		Channel:       channel,
		TransactionID: r.PostFormValue("tran_id"),
		ValID:         r.PostFormValue("val_id"),
		Amount:        amount,
		OrderID:       r.PostFormValue("value_a"),
		ClaimedStatus: r.PostFormValue("status"),
	}

	outcome := h.paymentUsecase.Reconcile(r.Context(), event)
	http.Redirect(w, r, RedirectPath(outcome), http.StatusSeeOther)
}

// Replay serves GET hits on the callback URLs, a browser refreshing the
// gateway's redirect target. There is no val_id to verify; the query only
// selects which status page to show.
func (h *PaymentHandler) Replay(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tranID := query.Get("tran_id")
	if tranID == "" {
		tranID = query.Get("transactionId")
	}
	orderID := query.Get("orderId")
	status := query.Get("status")

	var target string
	switch {
	case tranID != "" && orderID != "" && (status == "" || status == "Success" || status == "DONE"):
		target = RedirectPath(domain.Outcome{
			Kind:          domain.OutcomeSuccess,
			OrderID:       orderID,
			TransactionID: tranID,
		})
	case status == "FAILED" || status == "CANCELLED":
		target = RedirectPath(domain.Outcome{
			Kind:          domain.OutcomeFailed,
			OrderID:       orderID,
			TransactionID: tranID,
			Reason:        status,
		})
	default:
		target = RedirectPath(domain.Outcome{Kind: domain.OutcomeIndeterminate})
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

type initiateRequest struct {
	Amount        float64 `json:"amount"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	OrderID       string  `json:"order_id"`
}

type initiateResponse struct {
	GatewayPageURL string `json:"GatewayPageURL"`
	Status         string `json:"status"`
}

func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req initiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	if req.Amount <= 0 || req.CustomerName == "" || req.CustomerEmail == "" || req.OrderID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request",
			"amount, customer_name, customer_email and order_id are required")
		return
	}

	gatewayPageURL, err := h.initiator.InitiatePayment(r.Context(), sslcommerz.InitiateRequest{
		Amount:        req.Amount,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		OrderID:       req.OrderID,
	})
	if err != nil {
		slog.Error("payment initiation failed", "order_id", req.OrderID, "error", err.Error())
		writeError(w, http.StatusBadGateway, "initiation_failed", "failed to initiate payment")
		return
	}

	writeJSON(w, http.StatusOK, initiateResponse{
		GatewayPageURL: gatewayPageURL,
		Status:         "success",
	})
}
