package daraja

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftparcel/internal/core/domain/model/kernel"
	"swiftparcel/internal/pkg/errs"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPassword(t *testing.T) {
	password := Password("174379", "passkey123", "20250827144530")

	decoded, err := base64.StdEncoding.DecodeString(password)
	require.NoError(t, err)
	assert.Equal(t, "174379passkey12320250827144530", string(decoded))
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL:        server.URL,
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		ShortCode:      "174379",
		Passkey:        "passkey123",
		CallbackURL:    "https://api.swiftparcel.co.ke/api/v1/payments/callback",
	}, discardLogger())
}

func TestStartPushPayment_Accepted(t *testing.T) {
	var pushBody stkPushRequest
	tokenCalls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token": "token-1",
			"expires_in":   "3599",
		})
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pushBody))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"MerchantRequestID":   "29115-34620561-1",
			"CheckoutRequestID":   "ws_CO_270820251445",
			"ResponseCode":        "0",
			"ResponseDescription": "Success. Request accepted for processing",
		})
	})

	client := newTestClient(t, mux)

	phone, err := kernel.NewPhone("0712345678")
	require.NoError(t, err)
	amount, err := kernel.NewMoneyFromString("462.50")
	require.NoError(t, err)

	result, err := client.StartPushPayment(context.Background(), phone, amount, "TRK-1A2B3C4D5E")

	require.NoError(t, err)
	assert.Equal(t, "ws_CO_270820251445", result.CheckoutRequestID)
	assert.Equal(t, "29115-34620561-1", result.MerchantRequestID)

	assert.Equal(t, "174379", pushBody.BusinessShortCode)
	assert.Equal(t, "254712345678", pushBody.PhoneNumber)
	assert.Equal(t, "254712345678", pushBody.PartyA)
	assert.Equal(t, int64(463), pushBody.Amount, "fractional shillings round up")
	assert.Equal(t, "TRK-1A2B3C4D5E", pushBody.AccountReference)
	assert.Equal(t, "CustomerPayBillOnline", pushBody.TransactionType)
	assert.NotEmpty(t, pushBody.Password)

	// The token survives the first call and is reused on the next push.
	_, err = client.StartPushPayment(context.Background(), phone, amount, "TRK-1A2B3C4D5E")
	require.NoError(t, err)
	assert.Equal(t, 1, tokenCalls)
}

func TestStartPushPayment_ProviderRejects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "token-1", "expires_in": "3599"})
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"ResponseCode": "1",
			"errorMessage": "Invalid PhoneNumber",
		})
	})

	client := newTestClient(t, mux)

	phone, err := kernel.NewPhone("0712345678")
	require.NoError(t, err)
	amount, err := kernel.NewMoneyFromString("462.00")
	require.NoError(t, err)

	_, err = client.StartPushPayment(context.Background(), phone, amount, "TRK-1A2B3C4D5E")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
	assert.Contains(t, err.Error(), "Invalid PhoneNumber")
}

func TestStartPushPayment_TokenEndpointDown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client := newTestClient(t, mux)

	phone, err := kernel.NewPhone("0712345678")
	require.NoError(t, err)
	amount, err := kernel.NewMoneyFromString("462.00")
	require.NoError(t, err)

	_, err = client.StartPushPayment(context.Background(), phone, amount, "TRK-1A2B3C4D5E")

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrGatewayUnavailable)
}

func TestQueryStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "token-1", "expires_in": "3599"})
	})
	mux.HandleFunc("/mpesa/stkpushquery/v1/query", func(w http.ResponseWriter, r *http.Request) {
		var body stkQueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ws_CO_270820251445", body.CheckoutRequestID)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"ResponseCode": "0",
			"ResultCode":   "1032",
			"ResultDesc":   "Request cancelled by user",
		})
	})

	client := newTestClient(t, mux)

	result, err := client.QueryStatus(context.Background(), "ws_CO_270820251445")

	require.NoError(t, err)
	assert.Equal(t, 1032, result.ResultCode)
	assert.Equal(t, "Request cancelled by user", result.ResultDescription)
}
