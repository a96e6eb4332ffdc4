package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Provider builds hosted-checkout URLs and verifies the webhook callbacks
// the payment gateway sends back. Signatures are HMAC-SHA256 over the
// pipe-joined order fields.
type Provider struct {
	MerchantID    string
	Secret        string
	WebhookSecret string
	CheckoutURL   string
	Currency      string
}

func NewProvider(merchantID, secret, webhookSecret, checkoutURL, currency string) *Provider {
	if currency == "" {
		currency = "USD"
	}
	return &Provider{
		MerchantID:    merchantID,
		Secret:        secret,
		WebhookSecret: webhookSecret,
		CheckoutURL:   checkoutURL,
		Currency:      currency,
	}
}

// Session is one prepared checkout the client gets redirected to.
type Session struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	TourID      string    `json:"tourId"`
	CustomerID  string    `json:"customerId"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WebhookEvent is the parsed, signature-checked notification of a completed
// payment.
type WebhookEvent struct {
	SessionID  string
	TourID     string
	CustomerID string
	Amount     float64
}

// CreateSession signs a checkout order and returns the hosted payment page
// URL for it.
func (p *Provider) CreateSession(sessionID, tourID, customerID string, amount float64, description, successURL, cancelURL string) *Session {
	params := url.Values{}
	params.Set("merchant", p.MerchantID)
	params.Set("session", sessionID)
	params.Set("tour", tourID)
	params.Set("customer", customerID)
	params.Set("amount", formatAmount(amount))
	params.Set("currency", p.Currency)
	params.Set("description", description)
	params.Set("success_url", successURL)
	params.Set("cancel_url", cancelURL)
	params.Set("signature", p.orderSignature(sessionID, tourID, customerID, amount))

	return &Session{
		ID:          sessionID,
		URL:         fmt.Sprintf("%s?%s", p.CheckoutURL, params.Encode()),
		TourID:      tourID,
		CustomerID:  customerID,
		Amount:      amount,
		Currency:    p.Currency,
		Description: description,
		CreatedAt:   time.Now(),
	}
}

// VerifyWebhook checks the gateway's callback signature and extracts the
// completed order. Comparison is constant-time.
func (p *Provider) VerifyWebhook(form url.Values) (*WebhookEvent, error) {
	sessionID := form.Get("session")
	tourID := form.Get("tour")
	customerID := form.Get("customer")
	rawAmount := form.Get("amount")
	received := form.Get("signature")

	if sessionID == "" || tourID == "" || customerID == "" || received == "" {
		return nil, fmt.Errorf("payment: incomplete webhook payload")
	}
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		return nil, fmt.Errorf("payment: bad webhook amount %q", rawAmount)
	}

	expected := p.webhookSignature(sessionID, tourID, customerID, amount)
	if !hmac.Equal([]byte(expected), []byte(received)) {
		return nil, fmt.Errorf("payment: webhook signature mismatch")
	}

	return &WebhookEvent{
		SessionID:  sessionID,
		TourID:     tourID,
		CustomerID: customerID,
		Amount:     amount,
	}, nil
}

// SignWebhook produces the callback signature a gateway would send. Exposed
// for sandbox checkouts and tests.
func (p *Provider) SignWebhook(sessionID, tourID, customerID string, amount float64) string {
	return p.webhookSignature(sessionID, tourID, customerID, amount)
}

func (p *Provider) orderSignature(sessionID, tourID, customerID string, amount float64) string {
	return sign(p.Secret, p.MerchantID, sessionID, tourID, customerID, formatAmount(amount))
}

func (p *Provider) webhookSignature(sessionID, tourID, customerID string, amount float64) string {
	return sign(p.WebhookSecret, sessionID, tourID, customerID, formatAmount(amount))
}

func sign(secret string, parts ...string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	for i, part := range parts {
		if i > 0 {
			mac.Write([]byte("|"))
		}
		mac.Write([]byte(part))
	}
	return hex.EncodeToString(mac.Sum(nil))
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
