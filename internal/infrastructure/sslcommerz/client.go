package sslcommerz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MdShalimSadman/maha-ecommerce/internal/config"
	"github.com/MdShalimSadman/maha-ecommerce/internal/domain"
	"github.com/jaevor/go-nanoid"
)

const (
	sandboxValidatorURL = "https://sandbox.sslcommerz.com/validator/api/validationserverAPI.php"
	liveValidatorURL    = "https://securepay.sslcommerz.com/validator/api/validationserverAPI.php"

	sandboxSessionURL = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	liveSessionURL    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
)

// Client talks to the SSLCommerz gateway: session creation at payment
// initiation and server-to-server validation of callback tokens. Credentials
// are injected, never read from process state, so tests can run against
// httptest servers.
type Client struct {
	storeID      string
	storePasswd  string
	validatorURL string
	sessionURL   string
	baseURL      string
	httpClient   *http.Client
	newTranID    func() string
}

func NewClient(cfg config.SSLCommerz, publicBaseURL string) (*Client, error) {
	validatorURL := sandboxValidatorURL
	sessionURL := sandboxSessionURL
	if cfg.Live {
		validatorURL = liveValidatorURL
		sessionURL = liveSessionURL
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	idGenerator, err := nanoid.CustomASCII("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ", 12)
	if err != nil {
		return nil, err
	}

	return &Client{
		storeID:      cfg.StoreID,
		storePasswd:  cfg.StorePassword,
		validatorURL: validatorURL,
		sessionURL:   sessionURL,
		baseURL:      strings.TrimRight(publicBaseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		newTranID:    func() string { return "TRN_" + idGenerator() },
	}, nil
}

type validationResponse struct {
	Status   string `json:"status"`
	TranID   string `json:"tran_id"`
	ValID    string `json:"val_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	TranDate string `json:"tran_date"`
}

// Validate exchanges a val_id for a verified verdict. Only the validator's
// own VALID/VALIDATED answer counts as success; whatever the callback payload
// claimed is irrelevant here. Errors mean indeterminate, not failure.
func (c *Client) Validate(ctx context.Context, valID string) (*domain.Verdict, error) {
	params := url.Values{}
	params.Set("val_id", valID)
	params.Set("store_id", c.storeID)
	params.Set("store_passwd", c.storePasswd)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.validatorURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVerificationIndeterminate, err)
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVerificationIndeterminate, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: validator returned %s", domain.ErrVerificationIndeterminate, response.Status)
	}

	var validationData validationResponse
	if err := json.Unmarshal(responseBodyBytes, &validationData); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVerificationIndeterminate, err)
	}

	amount, _ := strconv.ParseFloat(validationData.Amount, 64)

	return &domain.Verdict{
		Valid:    validationData.Status == "VALID" || validationData.Status == "VALIDATED",
		Status:   validationData.Status,
		TranID:   validationData.TranID,
		Amount:   amount,
		Currency: validationData.Currency,
		Raw:      string(responseBodyBytes),
	}, nil
}

type InitiateRequest struct {
	Amount        float64
	CustomerName  string
	CustomerEmail string
	OrderID       string
}

type sessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// InitiatePayment creates a gateway payment session. The order id travels in
// value_a, the pass-through field SSLCommerz echoes back verbatim on every
// callback; callback correlation depends entirely on this round-trip.
func (c *Client) InitiatePayment(ctx context.Context, request InitiateRequest) (string, error) {
	tranID := c.newTranID()

	paymentData := url.Values{}
	paymentData.Set("store_id", c.storeID)
	paymentData.Set("store_passwd", c.storePasswd)
	paymentData.Set("total_amount", strconv.FormatFloat(request.Amount, 'f', 2, 64))
	paymentData.Set("currency", "BDT")
	paymentData.Set("tran_id", tranID)
	paymentData.Set("value_a", request.OrderID)
	paymentData.Set("success_url", c.baseURL+"/api/payment/success")
	paymentData.Set("fail_url", c.baseURL+"/api/payment/fail")
	paymentData.Set("cancel_url", c.baseURL+"/api/payment/cancel")
	paymentData.Set("ipn_url", c.baseURL+"/api/payment/ipn")
	paymentData.Set("cus_name", request.CustomerName)
	paymentData.Set("cus_email", request.CustomerEmail)
	paymentData.Set("cus_add1", "Dhaka")
	paymentData.Set("cus_city", "Dhaka")
	paymentData.Set("cus_country", "Bangladesh")
	paymentData.Set("cus_phone", "01711111111")
	paymentData.Set("shipping_method", "NO")
	paymentData.Set("product_name", "Order "+request.OrderID)
	paymentData.Set("product_category", "General")
	paymentData.Set("product_profile", "general")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sessionURL, strings.NewReader(paymentData.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	var apiResponse sessionResponse
	if err := json.Unmarshal(responseBodyBytes, &apiResponse); err != nil {
		return "", err
	}

	if apiResponse.Status != "SUCCESS" || apiResponse.GatewayPageURL == "" {
		if apiResponse.FailedReason != "" {
			return "", fmt.Errorf("payment initiation failed: %s", apiResponse.FailedReason)
		}
		return "", fmt.Errorf("payment initiation failed: status %q", apiResponse.Status)
	}

	return apiResponse.GatewayPageURL, nil
}

// SetEndpoints overrides gateway URLs, used by tests.
func (c *Client) SetEndpoints(validatorURL, sessionURL string) {
	c.validatorURL = validatorURL
	c.sessionURL = sessionURL
}
