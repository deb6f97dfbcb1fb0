package domain

type PaymentEvent struct {
	OrderID       string  `json:"order_id"`
	TransactionID string  `json:"transaction_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

type PublisherPort interface {
	PublishPayment(event PaymentEvent) error
}
