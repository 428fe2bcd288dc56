package duitku

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:       baseURL,
		MerchantCode:  "D1234",
		APIKey:        "secret",
		CallbackURL:   "https://api.example.com/payments/callback",
		ReturnURL:     "https://app.example.com/billing",
		ExpiryMinutes: 60,
		MinAmount:     10000,
		Timeout:       5 * time.Second,
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	var received inquiryPayload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, inquiryPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		json.NewEncoder(w).Encode(inquiryResponse{
			Reference:     "DREF123",
			PaymentURL:    "https://pay.example.com/DREF123",
			StatusCode:    "00",
			StatusMessage: "SUCCESS",
		})
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	result, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{
		MerchantOrderID: "INV-1",
		Amount:          75000,
		PaymentMethod:   "VC",
		ProductDetails:  "Langganan 1 Bulan",
		Email:           "owner@toko.example",
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/DREF123", result.PaymentURL)
	assert.Equal(t, "DREF123", result.Reference)

	// La requête sortante porte la signature du protocole
	assert.Equal(t, "D1234", received.MerchantCode)
	assert.Equal(t, 75000, received.PaymentAmount)
	assert.Equal(t, Sign("D1234", "INV-1", 75000, "secret"), received.Signature)
	assert.Equal(t, "https://api.example.com/payments/callback", received.CallbackURL)
	assert.Equal(t, 60, received.ExpiryPeriod)
}

func TestCreateTransaction_AmountBelowMinimumIsLocal(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{
		MerchantOrderID: "INV-1",
		Amount:          9999,
		PaymentMethod:   "VC",
	})

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.False(t, called, "no network call on local validation failure")
}

func TestCreateTransaction_GatewayError5xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{
		MerchantOrderID: "INV-1",
		Amount:          75000,
		PaymentMethod:   "VC",
	})

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestCreateTransaction_GatewayRejects4xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{
		MerchantOrderID: "INV-1",
		Amount:          75000,
		PaymentMethod:   "VC",
	})

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateTransaction_ProviderLevelError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(inquiryResponse{
			StatusCode:    "02",
			StatusMessage: "Invalid merchant credentials",
		})
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{
		MerchantOrderID: "INV-1",
		Amount:          75000,
		PaymentMethod:   "VC",
	})

	var businessErr *BusinessError
	assert.ErrorAs(t, err, &businessErr)
	assert.Equal(t, "02", businessErr.ProviderCode)
}

func TestCreateTransaction_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // serveur déjà fermé: échec réseau

	client := NewClient(testConfig(ts.URL))
	_, err := client.CreateTransaction(context.Background(), CreateTransactionRequest{
		MerchantOrderID: "INV-1",
		Amount:          75000,
		PaymentMethod:   "VC",
	})

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestCreateTransaction_ContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server can observe the client disconnect;
		// otherwise r.Context() is never cancelled and ts.Close() deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(testConfig(ts.URL))
	_, err := client.CreateTransaction(ctx, CreateTransactionRequest{
		MerchantOrderID: "INV-1",
		Amount:          75000,
		PaymentMethod:   "VC",
	})

	var upstreamErr *UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}
