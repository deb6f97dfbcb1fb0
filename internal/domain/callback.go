package domain

type CallbackChannel string

const (
	ChannelSuccess CallbackChannel = "success"
	ChannelFail    CallbackChannel = "fail"
	ChannelCancel  CallbackChannel = "cancel"
	ChannelIPN     CallbackChannel = "ipn"
)

// CallbackEvent is one normalized gateway callback. It lives only for the
// duration of a single HTTP exchange; every field is attacker-reachable
// and trusted only after server-side validation of ValID.
type CallbackEvent struct {
	Channel       CallbackChannel
	TransactionID string
	ValID         string
	Amount        float64
	OrderID       string
	ClaimedStatus string
}

type OutcomeKind string

const (
	OutcomeSuccess       OutcomeKind = "success"
	OutcomeFailed        OutcomeKind = "failed"
	OutcomeIndeterminate OutcomeKind = "indeterminate"
)

// Outcome is the reconciliation result handed to the redirector. It never
// carries credentials or raw gateway payloads.
type Outcome struct {
	Kind          OutcomeKind
	OrderID       string
	TransactionID string
	Reason        string
}
