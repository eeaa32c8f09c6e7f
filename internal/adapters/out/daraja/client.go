// Package daraja implements the mobile-money gateway port against a
// Daraja-style STK push API: OAuth client-credentials token, push request,
// and status query.
package daraja

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/core/ports"
	"swiftparcel/internal/pkg/errs"
)

const (
	tokenPath     = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath   = "/mpesa/stkpush/v1/processrequest"
	stkQueryPath  = "/mpesa/stkpushquery/v1/query"
	requestFormat = "20060102150405"

	// Provider round-trips routinely take tens of seconds under load.
	defaultTimeout = 30 * time.Second

	// Refresh the cached token slightly before the provider expires it.
	tokenExpirySlack = time.Minute
)

// Config carries the provider credentials and endpoints.
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
}

// Client is a PaymentGateway implementation talking to a Daraja-style API.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

var _ ports.PaymentGateway = (*Client)(nil)

// NewClient creates a gateway client with a bounded request timeout.
func NewClient(config Config, logger *slog.Logger) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	ErrorMessage        string `json:"errorMessage"`
}

// StartPushPayment asks the provider to prompt the customer's phone for the
// given amount. The provider only accepts whole shillings; fractional cents
// round up so the collected amount is never below the order total.
func (c *Client) StartPushPayment(
	ctx context.Context,
	phone kernel.Phone,
	amount kernel.Money,
	reference string,
) (ports.PushPaymentResult, error) {
	token, err := c.token(ctx)
	if err != nil {
		return ports.PushPaymentResult{}, err
	}

	timestamp := time.Now().Format(requestFormat)
	request := stkPushRequest{
		BusinessShortCode: c.config.ShortCode,
		Password:          Password(c.config.ShortCode, c.config.Passkey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amount.Amount().Ceil().IntPart(),
		PartyA:            phone.String(),
		PartyB:            c.config.ShortCode,
		PhoneNumber:       phone.String(),
		CallBackURL:       c.config.CallbackURL,
		AccountReference:  reference,
		TransactionDesc:   "Delivery payment " + reference,
	}

	var response stkPushResponse
	if err = c.post(ctx, stkPushPath, token, request, &response); err != nil {
		return ports.PushPaymentResult{}, err
	}

	if response.ResponseCode != "0" {
		message := response.ResponseDescription
		if message == "" {
			message = response.ErrorMessage
		}
		return ports.PushPaymentResult{}, errs.NewGatewayError("stk push",
			fmt.Sprintf("provider rejected push: %s", message))
	}

	c.logger.Info("stk push accepted",
		slog.String("checkout_request_id", response.CheckoutRequestID),
		slog.String("reference", reference))

	return ports.PushPaymentResult{
		CheckoutRequestID:   response.CheckoutRequestID,
		MerchantRequestID:   response.MerchantRequestID,
		ResponseDescription: response.ResponseDescription,
	}, nil
}

type stkQueryRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

type stkQueryResponse struct {
	ResponseCode string `json:"ResponseCode"`
	ResultCode   string `json:"ResultCode"`
	ResultDesc   string `json:"ResultDesc"`
	ErrorMessage string `json:"errorMessage"`
}

// QueryStatus asks the provider for the outcome of an earlier push.
func (c *Client) QueryStatus(
	ctx context.Context,
	checkoutRequestID string,
) (ports.PaymentStatusResult, error) {
	token, err := c.token(ctx)
	if err != nil {
		return ports.PaymentStatusResult{}, err
	}

	timestamp := time.Now().Format(requestFormat)
	request := stkQueryRequest{
		BusinessShortCode: c.config.ShortCode,
		Password:          Password(c.config.ShortCode, c.config.Passkey, timestamp),
		Timestamp:         timestamp,
		CheckoutRequestID: checkoutRequestID,
	}

	var response stkQueryResponse
	if err = c.post(ctx, stkQueryPath, token, request, &response); err != nil {
		return ports.PaymentStatusResult{}, err
	}

	if response.ErrorMessage != "" {
		return ports.PaymentStatusResult{}, errs.NewGatewayError("stk query", response.ErrorMessage)
	}

	resultCode, err := strconv.Atoi(response.ResultCode)
	if err != nil {
		return ports.PaymentStatusResult{}, errs.NewGatewayErrorWithCause("stk query",
			fmt.Sprintf("unparseable result code %q", response.ResultCode), err)
	}

	return ports.PaymentStatusResult{
		ResultCode:        resultCode,
		ResultDescription: response.ResultDesc,
	}, nil
}

// Password derives the API password for a request: the base64 of
// shortcode + passkey + timestamp.
func Password(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// token returns the cached OAuth token, fetching a fresh one when the cache
// is empty or close to expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+tokenPath, nil)
	if err != nil {
		return "", errs.NewGatewayErrorWithCause("oauth token", "building request", err)
	}
	req.SetBasicAuth(c.config.ConsumerKey, c.config.ConsumerSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errs.NewGatewayErrorWithCause("oauth token", "provider unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errs.NewGatewayError("oauth token",
			fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var body tokenResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errs.NewGatewayErrorWithCause("oauth token", "decoding response", err)
	}

	if body.AccessToken == "" {
		return "", errs.NewGatewayError("oauth token", "empty access token")
	}

	expiresIn, err := strconv.Atoi(body.ExpiresIn)
	if err != nil {
		expiresIn = 3600
	}

	c.accessToken = body.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(expiresIn)*time.Second - tokenExpirySlack)

	return c.accessToken, nil
}

func (c *Client) post(ctx context.Context, path, token string, request, response any) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return errs.NewGatewayErrorWithCause("gateway request", "encoding payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errs.NewGatewayErrorWithCause("gateway request", "building request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewGatewayErrorWithCause("gateway request", "provider unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewGatewayErrorWithCause("gateway request", "reading response", err)
	}

	if err = json.Unmarshal(raw, response); err != nil {
		return errs.NewGatewayErrorWithCause("gateway request",
			fmt.Sprintf("unexpected response (status %d)", resp.StatusCode), err)
	}

	return nil
}
