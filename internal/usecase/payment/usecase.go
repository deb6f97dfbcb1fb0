package payment

import (
	"context"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/metrics"
)

type PaymentUsecase interface {
	Reconcile(ctx context.Context, event domain.CallbackEvent) domain.Outcome
}

type DefaultPaymentUsecase struct {
	OrderRepo domain.OrderRepository
	Verifier  domain.GatewayVerifier
	Notifier  domain.OrderNotifier
	Publisher domain.PublisherPort
	Metrics   *metrics.PaymentMetrics
}

func NewDefaultPaymentUsecase(
	orderRepo domain.OrderRepository,
	verifier domain.GatewayVerifier,
	notifier domain.OrderNotifier,
	publisher domain.PublisherPort,
	paymentMetrics *metrics.PaymentMetrics) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		OrderRepo: orderRepo,
		Verifier:  verifier,
		Notifier:  notifier,
		Publisher: publisher,
		Metrics:   paymentMetrics,
	}
}
