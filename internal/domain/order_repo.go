package domain

type OrderRepository interface {
	CreateOrder(order *Order) (string, error)
	GetOrderByID(orderID string) (*Order, error)
	GetOrders(page, limit int64) ([]*Order, int64, error)
	UpdateOrderStatus(orderID string, newStatus OrderStatus) error

	// SettlePayment transitions payment_status from "from" to "to" and writes
	// the transaction id and raw verified gateway payload in a single
	// conditional update. Returns ErrStoreWriteConflict when the order's
	// payment_status is no longer "from", so concurrent reconciliations of
	// the same order cannot both win.
	SettlePayment(orderID string, from, to PaymentStatus, transactionID, paymentDetails string) error
}
