package handlers

import (
	"net/url"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
)

// RedirectPath maps a reconciliation outcome to the user-facing page. Paths
// are same-origin relative, so the response can never open-redirect, and
// they carry correlation data only: no credentials, no raw gateway
// payloads.
func RedirectPath(outcome domain.Outcome) string {
	switch outcome.Kind {
	case domain.OutcomeSuccess:
		query := url.Values{}
		query.Set("transactionId", outcome.TransactionID)
		query.Set("orderId", outcome.OrderID)
		return "/payment-success?" + query.Encode()

	case domain.OutcomeFailed:
		query := url.Values{}
		query.Set("transactionId", outcome.TransactionID)
		query.Set("status", outcome.Reason)
		query.Set("orderId", outcome.OrderID)
		return "/payment-failed?" + query.Encode()

	default:
		// Indeterminate: "check your order status later", distinct from a
		// hard failure page. Kept bare: a missing-correlation rejection
		// must not disclose any order id here.
		return "/payment/error"
	}
}
