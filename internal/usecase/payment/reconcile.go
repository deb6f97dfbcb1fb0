package payment

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
)

// amountTolerance absorbs rounding on 2-decimal currencies; anything beyond
// it between the verified amount and the order total is treated as tampering.
const amountTolerance = 0.01

// Reconcile applies one gateway callback to its order. All four channels
// (success, fail, cancel, ipn) converge here; they differ only in the payload
// shape their HTTP adapters parsed. Step order is strict:
// correlate -> load -> terminal check -> verify -> conditional settle ->
// notify. Reordering any of these reintroduces duplicate emails, unverified
// redirects, or lost correlation.
func (uc *DefaultPaymentUsecase) Reconcile(ctx context.Context, event domain.CallbackEvent) domain.Outcome {
	uc.countCallback(event.Channel)

	if event.OrderID == "" || event.ValID == "" {
		slog.Error("callback rejected: missing correlation data",
			"channel", event.Channel, "tran_id", event.TransactionID)
		uc.countOutcome("rejected")
		// Generic error page; never disclose whether an order exists.
		return domain.Outcome{Kind: domain.OutcomeIndeterminate, Reason: "missing_data"}
	}

	order, err := uc.OrderRepo.GetOrderByID(event.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			slog.Error("callback for unknown order", "channel", event.Channel, "order_id", event.OrderID)
			uc.countOutcome("rejected")
			return domain.Outcome{Kind: domain.OutcomeIndeterminate, Reason: "unknown_order"}
		}
		slog.Error("order lookup failed", "order_id", event.OrderID, "error", err.Error())
		uc.countOutcome("store_error")
		return domain.Outcome{Kind: domain.OutcomeIndeterminate, Reason: "store_error"}
	}

	// At-least-once delivery: gateways retry callbacks and browsers replay
	// success URLs. A terminal order redirects from its stored outcome with
	// no second verification and no second email.
	if order.PaymentStatus.Terminal() {
		uc.countDuplicate(event.Channel)
		slog.Info("duplicate callback, using stored outcome",
			"channel", event.Channel, "order_id", order.ID, "payment_status", order.PaymentStatus)
		return uc.outcomeFromStored(order)
	}

	verifyStart := time.Now()
	verdict, err := uc.Verifier.Validate(ctx, event.ValID)
	if err != nil {
		uc.observeVerification("error", time.Since(verifyStart))
		// Indeterminate is not failure. The order stays AWAITING_PAYMENT so
		// a later gateway retry or the IPN can still resolve it.
		slog.Error("gateway verification indeterminate",
			"channel", event.Channel, "order_id", order.ID, "error", err.Error())
		uc.countOutcome("indeterminate")
		return domain.Outcome{
			Kind:    domain.OutcomeIndeterminate,
			OrderID: order.ID,
			Reason:  "verification_unavailable",
		}
	}
	uc.observeVerification(verdict.Status, time.Since(verifyStart))

	valid := verdict.Valid
	reason := verdict.Status
	if valid && math.Abs(verdict.Amount-order.TotalPrice) > amountTolerance {
		uc.countMismatch(event.Channel)
		slog.Error("verified amount does not match order total, treating as invalid",
			"order_id", order.ID, "verified_amount", verdict.Amount, "order_total", order.TotalPrice,
			"tran_id", verdict.TranID)
		valid = false
		reason = "AMOUNT_MISMATCH"
	}

	newStatus := domain.PaymentFailed
	if valid {
		newStatus = domain.PaymentSuccessful
	}

	transactionID := verdict.TranID
	if transactionID == "" {
		transactionID = event.TransactionID
	}

	err = uc.OrderRepo.SettlePayment(order.ID, domain.PaymentAwaiting, newStatus, transactionID, verdict.Raw)
	if err != nil {
		if errors.Is(err, domain.ErrStoreWriteConflict) {
			// A concurrent reconciliation settled this order first; its
			// outcome stands and it already fired the notifications.
			slog.Info("lost settle race, using winner's outcome", "order_id", order.ID, "channel", event.Channel)
			settled, rerr := uc.OrderRepo.GetOrderByID(order.ID)
			if rerr != nil {
				uc.countOutcome("store_error")
				return domain.Outcome{Kind: domain.OutcomeIndeterminate, OrderID: order.ID, Reason: "store_error"}
			}
			uc.countDuplicate(event.Channel)
			return uc.outcomeFromStored(settled)
		}
		slog.Error("payment settle failed", "order_id", order.ID, "error", err.Error())
		uc.countOutcome("store_error")
		return domain.Outcome{Kind: domain.OutcomeIndeterminate, OrderID: order.ID, Reason: "store_error"}
	}

	order.PaymentStatus = newStatus
	order.TransactionID = transactionID
	order.PaymentDetails = verdict.Raw

	// Side effects fire only on the winning transition, after the state is
	// durable, and never block or fail the redirect.
	if newStatus == domain.PaymentSuccessful {
		uc.Notifier.NotifyCustomer(order)
		uc.Notifier.NotifyAdmin(order)
		uc.countEmails()
	}
	uc.publishPaymentEvent(order, verdict.Currency)

	if valid {
		uc.countOutcome("success")
		return domain.Outcome{
			Kind:          domain.OutcomeSuccess,
			OrderID:       order.ID,
			TransactionID: transactionID,
		}
	}

	uc.countOutcome("failed")
	return domain.Outcome{
		Kind:          domain.OutcomeFailed,
		OrderID:       order.ID,
		TransactionID: transactionID,
		Reason:        reason,
	}
}

func (uc *DefaultPaymentUsecase) outcomeFromStored(order *domain.Order) domain.Outcome {
	switch order.PaymentStatus {
	case domain.PaymentSuccessful:
		return domain.Outcome{
			Kind:          domain.OutcomeSuccess,
			OrderID:       order.ID,
			TransactionID: order.TransactionID,
		}
	case domain.PaymentFailed:
		return domain.Outcome{
			Kind:          domain.OutcomeFailed,
			OrderID:       order.ID,
			TransactionID: order.TransactionID,
			Reason:        "FAILED",
		}
	default:
		return domain.Outcome{Kind: domain.OutcomeIndeterminate, OrderID: order.ID, Reason: "not_settled"}
	}
}

func (uc *DefaultPaymentUsecase) publishPaymentEvent(order *domain.Order, currency string) {
	if uc.Publisher == nil {
		return
	}
	if currency == "" {
		currency = "BDT"
	}

	go func(event domain.PaymentEvent) {
		if err := uc.Publisher.PublishPayment(event); err != nil {
			slog.Error("failed to publish PaymentEvent", "order_id", event.OrderID, "error", err.Error())
			if uc.Metrics != nil {
				uc.Metrics.PaymentEventsPublishErrors.Inc()
			}
		}
	}(domain.PaymentEvent{
		OrderID:       order.ID,
		TransactionID: order.TransactionID,
		Status:        string(order.PaymentStatus),
		Amount:        order.TotalPrice,
		Currency:      currency,
	})
}

func (uc *DefaultPaymentUsecase) countCallback(channel domain.CallbackChannel) {
	if uc.Metrics != nil {
		uc.Metrics.CallbacksReceivedTotal.WithLabelValues(string(channel)).Inc()
	}
}

func (uc *DefaultPaymentUsecase) countOutcome(outcome string) {
	if uc.Metrics != nil {
		uc.Metrics.ReconciliationsTotal.WithLabelValues(outcome).Inc()
	}
}

func (uc *DefaultPaymentUsecase) countDuplicate(channel domain.CallbackChannel) {
	if uc.Metrics != nil {
		uc.Metrics.DuplicateCallbacksTotal.WithLabelValues(string(channel)).Inc()
	}
}

func (uc *DefaultPaymentUsecase) countMismatch(channel domain.CallbackChannel) {
	if uc.Metrics != nil {
		uc.Metrics.AmountMismatchTotal.WithLabelValues(string(channel)).Inc()
	}
}

func (uc *DefaultPaymentUsecase) countEmails() {
	if uc.Metrics != nil {
		uc.Metrics.EmailsSentTotal.WithLabelValues("customer").Inc()
		uc.Metrics.EmailsSentTotal.WithLabelValues("admin").Inc()
	}
}

func (uc *DefaultPaymentUsecase) observeVerification(result string, elapsed time.Duration) {
	if uc.Metrics != nil {
		uc.Metrics.VerificationDuration.WithLabelValues(result).Observe(elapsed.Seconds())
	}
}
