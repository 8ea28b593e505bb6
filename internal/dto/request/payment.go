package request

// PaymentNotificationRequest is the provider's webhook payload. Field
// names follow the provider's wire contract.
type PaymentNotificationRequest struct {
	OrderID           string `json:"order_id" validate:"required"`
	TransactionStatus string `json:"transaction_status" validate:"required"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	PaymentType       string `json:"payment_type,omitempty"`
	GrossAmount       string `json:"gross_amount" validate:"required"`
	StatusCode        string `json:"status_code" validate:"required"`
	SignatureKey      string `json:"signature_key" validate:"required"`
}
