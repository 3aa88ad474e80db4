// Package terminal talks to the external card payment provider. Card
// payments are created as intents that the physical terminal completes; the
// provider reports the outcome back through a webhook.
package terminal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sdp-labs/pos-api/internal/config"
)

// Provider statuses as reported by the payment provider.
const (
	StatusRequiresAction = "requires_action"
	StatusProcessing     = "processing"
	StatusSucceeded      = "succeeded"
	StatusFailed         = "failed"
	StatusCanceled       = "canceled"
)

// Intent is the provider's record of a card payment attempt.
type Intent struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// RefundResult is the provider's record of a card refund.
type RefundResult struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

// Client is the card provider API surface the payment flow depends on.
type Client interface {
	// CreateIntent registers a card charge for amount plus tip, both in
	// minor units.
	CreateIntent(ctx context.Context, amount, tip int64, currency string) (*Intent, error)
	// CancelIntent cancels a not-yet-completed intent.
	CancelIntent(ctx context.Context, intentID string) (*Intent, error)
	// CreateRefund refunds a completed intent in full.
	CreateRefund(ctx context.Context, intentID string, amount int64) (*RefundResult, error)
}

type restyClient struct {
	http *resty.Client
}

// NewClient creates a card provider client against the configured base URL.
func NewClient(cfg *config.TerminalConfig) Client {
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &restyClient{http: c}
}

type createIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (c *restyClient) CreateIntent(ctx context.Context, amount, tip int64, currency string) (*Intent, error) {
	var intent Intent
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createIntentRequest{
			// The provider charges a single amount; tip rides along.
			Amount:   amount + tip,
			Currency: currency,
		}).
		SetResult(&intent).
		Post("/v1/payment_intents")
	if err != nil {
		return nil, fmt.Errorf("create intent: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return nil, fmt.Errorf("create intent: provider returned status %d", resp.StatusCode())
	}
	return &intent, nil
}

func (c *restyClient) CancelIntent(ctx context.Context, intentID string) (*Intent, error) {
	var intent Intent
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&intent).
		Post("/v1/payment_intents/" + intentID + "/cancel")
	if err != nil {
		return nil, fmt.Errorf("cancel intent: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("cancel intent: provider returned status %d", resp.StatusCode())
	}
	return &intent, nil
}

type createRefundRequest struct {
	PaymentIntent string `json:"payment_intent"`
	Amount        int64  `json:"amount"`
}

func (c *restyClient) CreateRefund(ctx context.Context, intentID string, amount int64) (*RefundResult, error) {
	var refund RefundResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createRefundRequest{PaymentIntent: intentID, Amount: amount}).
		SetResult(&refund).
		Post("/v1/refunds")
	if err != nil {
		return nil, fmt.Errorf("create refund: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return nil, fmt.Errorf("create refund: provider returned status %d", resp.StatusCode())
	}
	return &refund, nil
}
