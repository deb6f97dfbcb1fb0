package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
	"github.com/MdShalimSadman/maha-ecommerce/internal/infrastructure/sslcommerz"
)

type fakePaymentUsecase struct {
	lastEvent domain.CallbackEvent
	outcome   domain.Outcome
	calls     int
}

func (f *fakePaymentUsecase) Reconcile(ctx context.Context, event domain.CallbackEvent) domain.Outcome {
	f.calls++
	f.lastEvent = event
	return f.outcome
}

type fakeInitiator struct {
	pageURL string
	err     error
	lastReq sslcommerz.InitiateRequest
}

func (f *fakeInitiator) InitiatePayment(ctx context.Context, request sslcommerz.InitiateRequest) (string, error) {
	f.lastReq = request
	return f.pageURL, f.err
}

func postCallback(t *testing.T, handler http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/payment/success", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func gatewayForm() url.Values {
	form := url.Values{}
	form.Set("val_id", "tok_abc")
	form.Set("tran_id", "TRN_ABC123")
	form.Set("amount", "500.00")
	form.Set("value_a", "ord_1")
	form.Set("status", "VALID")
	return form
}

func TestSuccessCallbackNormalizesEvent(t *testing.T) {
	uc := &fakePaymentUsecase{outcome: domain.Outcome{
		Kind:          domain.OutcomeSuccess,
		OrderID:       "ord_1",
		TransactionID: "TRN_ABC123",
	}}
	handler := NewPaymentHandler(uc, &fakeInitiator{})

	rec := postCallback(t, handler.Success, gatewayForm())

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/payment-success?") {
		t.Errorf("unexpected redirect: %s", location)
	}
	if !strings.Contains(location, "orderId=ord_1") || !strings.Contains(location, "transactionId=TRN_ABC123") {
		t.Errorf("redirect missing correlation data: %s", location)
	}

	event := uc.lastEvent
	if event.Channel != domain.ChannelSuccess {
		t.Errorf("wrong channel: %s", event.Channel)
	}
	if event.ValID != "tok_abc" || event.TransactionID != "TRN_ABC123" ||
		event.OrderID != "ord_1" || event.Amount != 500 {
		t.Errorf("event not normalized: %+v", event)
	}
}

func TestFailCallbackUsesFailChannel(t *testing.T) {
	uc := &fakePaymentUsecase{outcome: domain.Outcome{
		Kind:          domain.OutcomeFailed,
		OrderID:       "ord_1",
		TransactionID: "TRN_ABC123",
		Reason:        "FAILED",
	}}
	handler := NewPaymentHandler(uc, &fakeInitiator{})

	rec := postCallback(t, handler.Fail, gatewayForm())

	if uc.lastEvent.Channel != domain.ChannelFail {
		t.Errorf("wrong channel: %s", uc.lastEvent.Channel)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/payment-failed?") {
		t.Errorf("unexpected redirect: %s", location)
	}
	if !strings.Contains(location, "status=FAILED") {
		t.Errorf("redirect missing status: %s", location)
	}
}

func TestIPNCallbackUsesIPNChannel(t *testing.T) {
	uc := &fakePaymentUsecase{outcome: domain.Outcome{Kind: domain.OutcomeSuccess, OrderID: "ord_1"}}
	handler := NewPaymentHandler(uc, &fakeInitiator{})

	postCallback(t, handler.IPN, gatewayForm())

	if uc.lastEvent.Channel != domain.ChannelIPN {
		t.Errorf("wrong channel: %s", uc.lastEvent.Channel)
	}
}

func TestIndeterminateOutcomeRedirectsToGenericErrorPage(t *testing.T) {
	uc := &fakePaymentUsecase{outcome: domain.Outcome{
		Kind:   domain.OutcomeIndeterminate,
		Reason: "missing_data",
	}}
	handler := NewPaymentHandler(uc, &fakeInitiator{})

	form := url.Values{}
	form.Set("tran_id", "TRN_ABC123")
	rec := postCallback(t, handler.Success, form)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if location != "/payment/error" {
		t.Errorf("expected bare generic error page, got %s", location)
	}
}

func TestReplaySuccessURL(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentUsecase{}, &fakeInitiator{})

	req := httptest.NewRequest(http.MethodGet, "/api/payment/success?transactionId=TRN_ABC123&orderId=ord_1", nil)
	rec := httptest.NewRecorder()
	handler.Replay(rec, req)

	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/payment-success?") {
		t.Errorf("unexpected redirect: %s", location)
	}
}

func TestReplayFailedStatus(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentUsecase{}, &fakeInitiator{})

	req := httptest.NewRequest(http.MethodGet, "/api/payment/fail?tran_id=TRN_ABC123&status=FAILED&orderId=ord_1", nil)
	rec := httptest.NewRecorder()
	handler.Replay(rec, req)

	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "/payment-failed?") {
		t.Errorf("unexpected redirect: %s", location)
	}
}

func TestReplayWithoutCorrelationGoesToErrorPage(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentUsecase{}, &fakeInitiator{})

	req := httptest.NewRequest(http.MethodGet, "/api/payment/success", nil)
	rec := httptest.NewRecorder()
	handler.Replay(rec, req)

	if got := rec.Header().Get("Location"); got != "/payment/error" {
		t.Errorf("expected /payment/error, got %s", got)
	}
}

func TestInitiate(t *testing.T) {
	initiator := &fakeInitiator{pageURL: "https://sandbox.sslcommerz.com/pay/abc"}
	handler := NewPaymentHandler(&fakePaymentUsecase{}, initiator)

	body := `{"amount":500,"customer_name":"Test Customer","customer_email":"customer@example.com","order_id":"ord_1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payment/initiate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Initiate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if initiator.lastReq.OrderID != "ord_1" {
		t.Errorf("order id not passed through to gateway session: %+v", initiator.lastReq)
	}
	if !strings.Contains(rec.Body.String(), "GatewayPageURL") {
		t.Errorf("missing GatewayPageURL in response: %s", rec.Body.String())
	}
}

func TestInitiateRejectsMissingFields(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentUsecase{}, &fakeInitiator{})

	req := httptest.NewRequest(http.MethodPost, "/api/payment/initiate", strings.NewReader(`{"amount":500}`))
	rec := httptest.NewRecorder()
	handler.Initiate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInitiateGatewayError(t *testing.T) {
	handler := NewPaymentHandler(&fakePaymentUsecase{}, &fakeInitiator{err: errors.New("gateway down")})

	body := `{"amount":500,"customer_name":"Test Customer","customer_email":"customer@example.com","order_id":"ord_1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payment/initiate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Initiate(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "gateway down") {
		t.Error("internal error detail leaked to client")
	}
}
