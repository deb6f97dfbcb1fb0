package domain

import "context"

// Verdict is the gateway's server-to-server answer for one validation token.
type Verdict struct {
	Valid    bool
	Status   string
	TranID   string
	Amount   float64
	Currency string
	Raw      string
}

// GatewayVerifier exchanges a validation token for a verified outcome.
// A returned error means the verdict is indeterminate (network failure,
// timeout, non-2xx) and must never be treated as success or failure.
type GatewayVerifier interface {
	Validate(ctx context.Context, valID string) (*Verdict, error)
}
