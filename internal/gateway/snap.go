package gateway

import (
	"bytes"
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"travel-crm/pkg/utils"

	"go.uber.org/zap"
)

// PaymentGateway creates hosted-checkout transactions at the external
// payment provider and polls their status.
type PaymentGateway interface {
	CreateTransaction(ctx context.Context, req *TransactionRequest) (*TransactionResponse, error)
	TransactionStatus(ctx context.Context, orderID string) (*TransactionStatusResponse, error)
}

type TransactionDetails struct {
	OrderID     string  `json:"order_id"`
	GrossAmount float64 `json:"gross_amount"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

type ItemDetails struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category,omitempty"`
}

type Expiry struct {
	Unit     string `json:"unit"`
	Duration int    `json:"duration"`
}

type Callbacks struct {
	Finish  string `json:"finish,omitempty"`
	Error   string `json:"error,omitempty"`
	Pending string `json:"pending,omitempty"`
}

type TransactionRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
	ItemDetails        []ItemDetails      `json:"item_details"`
	Expiry             Expiry             `json:"expiry"`
	Callbacks          Callbacks          `json:"callbacks"`
}

// TransactionResponse carries the checkout token and redirect URL,
// stored verbatim on the payment record.
type TransactionResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

type TransactionStatusResponse struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	GrossAmount       string `json:"gross_amount"`
	StatusCode        string `json:"status_code"`
	StatusMessage     string `json:"status_message"`
}

// SnapClient talks to a Snap-style hosted checkout API.
type SnapClient struct {
	client      *http.Client
	serverKey   string
	snapBaseURL string
	apiBaseURL  string
	log         *zap.Logger
}

func NewSnapClient(config utils.GatewayConfig, log *zap.Logger) *SnapClient {
	return &SnapClient{
		client:      &http.Client{Timeout: 30 * time.Second},
		serverKey:   config.ServerKey,
		snapBaseURL: config.SnapBaseURL,
		apiBaseURL:  config.APIBaseURL,
		log:         log.With(zap.String("gateway", "snap")),
	}
}

func (c *SnapClient) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.serverKey+":"))
}

func (c *SnapClient) CreateTransaction(ctx context.Context, req *TransactionRequest) (*TransactionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal transaction request: %w", err)
	}

	url := c.snapBaseURL + "/snap/v1/transactions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build transaction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", c.authHeader())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.Error("Transaction create call failed",
			zap.Error(err),
			zap.String("order_id", req.TransactionDetails.OrderID),
		)
		return nil, fmt.Errorf("create transaction %s: %w", req.TransactionDetails.OrderID, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read transaction response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.log.Error("Transaction create rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("order_id", req.TransactionDetails.OrderID),
			zap.ByteString("body", respBody),
		)
		return nil, fmt.Errorf("create transaction %s: provider returned %d", req.TransactionDetails.OrderID, resp.StatusCode)
	}

	var txResp TransactionResponse
	if err := json.Unmarshal(respBody, &txResp); err != nil {
		return nil, fmt.Errorf("decode transaction response: %w", err)
	}

	if txResp.Token == "" || txResp.RedirectURL == "" {
		return nil, fmt.Errorf("create transaction %s: provider returned empty token", req.TransactionDetails.OrderID)
	}

	c.log.Info("Transaction created at provider",
		zap.String("order_id", req.TransactionDetails.OrderID),
		zap.Float64("gross_amount", req.TransactionDetails.GrossAmount),
	)

	return &txResp, nil
}

func (c *SnapClient) TransactionStatus(ctx context.Context, orderID string) (*TransactionStatusResponse, error) {
	url := fmt.Sprintf("%s/v2/%s/status", c.apiBaseURL, orderID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", c.authHeader())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.log.Error("Transaction status call failed",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("get transaction status %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("transaction %s not found at provider", orderID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get transaction status %s: provider returned %d", orderID, resp.StatusCode)
	}

	var statusResp TransactionStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&statusResp); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}

	return &statusResp, nil
}

// Signature computes the provider's notification signature:
// sha512 over order_id + status_code + gross_amount + server key.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature compares the supplied signature in constant time.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, supplied string) bool {
	expected := Signature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) == 1
}
