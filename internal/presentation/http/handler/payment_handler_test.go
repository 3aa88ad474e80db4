package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/events"
	"github.com/sdp-labs/pos-api/internal/infrastructure/cache"
)

// stubPaymentRepo returns no payments, so any well-signed event resolves to
// an unknown payment.
type stubPaymentRepo struct{}

func (stubPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error { return nil }
func (stubPaymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	return nil, nil
}
func (stubPaymentRepo) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (*entity.Payment, error) {
	return nil, nil
}
func (stubPaymentRepo) Update(ctx context.Context, payment *entity.Payment) error { return nil }
func (stubPaymentRepo) UpdateStatus(ctx context.Context, id int64, status enum.PaymentStatus) error {
	return nil
}
func (stubPaymentRepo) GetByOrderID(ctx context.Context, orderID int64) ([]entity.Payment, error) {
	return nil, nil
}

const testWebhookSecret = "whsec_test"

func newWebhookRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	paymentService := service.NewPaymentService(
		nil, stubPaymentRepo{}, nil, nil,
		cache.NopOrderCache{}, events.NopPublisher{}, "usd", zap.NewNop(),
	)
	h := NewPaymentHandler(paymentService, testWebhookSecret, zap.NewNop())

	router := gin.New()
	router.POST("/api/webhooks/terminal", h.ProviderWebhook)
	return router
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestProviderWebhook_MissingSignatureRejected(t *testing.T) {
	router := newWebhookRouter(t)

	body := []byte(`{"paymentIntentId":"pi_1","status":"succeeded"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/terminal", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProviderWebhook_BadSignatureRejected(t *testing.T) {
	router := newWebhookRouter(t)

	body := []byte(`{"paymentIntentId":"pi_1","status":"succeeded"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/terminal", bytes.NewReader(body))
	req.Header.Set("X-Provider-Signature", sign("some-other-secret", body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProviderWebhook_TamperedBodyRejected(t *testing.T) {
	router := newWebhookRouter(t)

	signed := []byte(`{"paymentIntentId":"pi_1","status":"succeeded"}`)
	tampered := []byte(`{"paymentIntentId":"pi_2","status":"succeeded"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/terminal", bytes.NewReader(tampered))
	req.Header.Set("X-Provider-Signature", sign(testWebhookSecret, signed))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProviderWebhook_ValidSignatureReachesService(t *testing.T) {
	router := newWebhookRouter(t)

	body := []byte(`{"paymentIntentId":"pi_unknown","status":"succeeded"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/terminal", bytes.NewReader(body))
	req.Header.Set("X-Provider-Signature", sign(testWebhookSecret, body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// The signature passed; the unknown intent is the service's answer.
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProviderWebhook_MalformedBodyRejected(t *testing.T) {
	router := newWebhookRouter(t)

	body := []byte(`{"status":"succeeded"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/terminal", bytes.NewReader(body))
	req.Header.Set("X-Provider-Signature", sign(testWebhookSecret, body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
