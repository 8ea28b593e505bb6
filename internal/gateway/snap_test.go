package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"travel-crm/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(snapURL, apiURL string) *SnapClient {
	return NewSnapClient(utils.GatewayConfig{
		ServerKey:   "SB-Mid-server-testkey",
		SnapBaseURL: snapURL,
		APIBaseURL:  apiURL,
	}, zap.NewNop())
}

func TestCreateTransaction_Success(t *testing.T) {
	var gotAuth string
	var gotReq TransactionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/snap/v1/transactions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(TransactionResponse{
			Token:       "snap-token-123",
			RedirectURL: "https://app.sandbox.midtrans.com/snap/v4/redirection/snap-token-123",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)

	resp, err := client.CreateTransaction(context.Background(), &TransactionRequest{
		TransactionDetails: TransactionDetails{
			OrderID:     "TRV-20260901-ABCDEF-1756000000-XY12",
			GrossAmount: 3_000_000,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "snap-token-123", resp.Token)
	assert.True(t, strings.HasPrefix(gotAuth, "Basic "))
	assert.Equal(t, "TRV-20260901-ABCDEF-1756000000-XY12", gotReq.TransactionDetails.OrderID)
	assert.Equal(t, 3_000_000.0, gotReq.TransactionDetails.GrossAmount)
}

func TestCreateTransaction_ProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error_messages":["unauthorized"]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)

	_, err := client.CreateTransaction(context.Background(), &TransactionRequest{
		TransactionDetails: TransactionDetails{OrderID: "order-1", GrossAmount: 100},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provider returned 401")
}

func TestCreateTransaction_EmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)

	_, err := client.CreateTransaction(context.Background(), &TransactionRequest{
		TransactionDetails: TransactionDetails{OrderID: "order-1", GrossAmount: 100},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty token")
}

func TestTransactionStatus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/order-42/status", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TransactionStatusResponse{
			OrderID:           "order-42",
			TransactionStatus: "settlement",
			PaymentType:       "bank_transfer",
			GrossAmount:       "3000000.00",
			StatusCode:        "200",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)

	resp, err := client.TransactionStatus(context.Background(), "order-42")

	require.NoError(t, err)
	assert.Equal(t, "settlement", resp.TransactionStatus)
	assert.Equal(t, "bank_transfer", resp.PaymentType)
}

func TestTransactionStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)

	_, err := client.TransactionStatus(context.Background(), "no-such-order")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found at provider")
}

func TestSignature(t *testing.T) {
	// sha512(order_id + status_code + gross_amount + server_key), hex encoded.
	sig := Signature("order-1", "200", "10000.00", "key")

	assert.Len(t, sig, 128)
	assert.Equal(t, sig, Signature("order-1", "200", "10000.00", "key"))
	assert.NotEqual(t, sig, Signature("order-2", "200", "10000.00", "key"))
}

func TestVerifySignature(t *testing.T) {
	sig := Signature("order-1", "200", "10000.00", "key")

	assert.True(t, VerifySignature("order-1", "200", "10000.00", "key", sig))
	assert.False(t, VerifySignature("order-1", "200", "10000.00", "key", "bogus"))
	assert.False(t, VerifySignature("order-1", "200", "10000.01", "key", sig))
}
