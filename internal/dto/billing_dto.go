package dto

type CreateCheckoutResponse struct {
	OrderId     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// BillingWebhookRequest mirrors the payment gateway notification payload.
// SignatureKey must equal sha512(order_id + status_code + gross_amount +
// server key) or the event is discarded.
type BillingWebhookRequest struct {
	EventId           string `json:"event_id"`
	EventType         string `json:"event_type"`
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	SubscriptionId    string `json:"subscription_id"`
	CustomerId        string `json:"customer_id"`
	ProductId         string `json:"product_id"`
	PeriodEnd         string `json:"period_end"`
	UserExternalId    string `json:"user_external_id"`
	Email             string `json:"email"`
}
