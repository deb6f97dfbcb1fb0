package domain

import "errors"

var (
	ErrMissingCorrelationData    = errors.New("callback missing order id or validation token")
	ErrOrderNotFound             = errors.New("order not found")
	ErrVerificationIndeterminate = errors.New("gateway verification unavailable")
	ErrVerificationInvalid       = errors.New("gateway rejected payment")
	ErrStoreWriteConflict        = errors.New("payment status already settled")
	ErrNotificationFailure       = errors.New("failed to send notification")
)
