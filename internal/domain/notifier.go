package domain

// OrderNotifier sends transactional order emails. Both calls are
// fire-and-forget: failures are logged by the implementation and never
// reach the reconciliation path.
type OrderNotifier interface {
	NotifyCustomer(order *Order)
	NotifyAdmin(order *Order)
}
