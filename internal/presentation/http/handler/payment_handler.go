package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/request"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
	"github.com/sdp-labs/pos-api/internal/presentation/http/middleware"
	"github.com/sdp-labs/pos-api/pkg/money"
)

// PaymentHandler handles payment HTTP requests, including the card
// provider's webhook.
type PaymentHandler struct {
	paymentService *service.PaymentService
	webhookSecret  string
	logger         *zap.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService, webhookSecret string, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		webhookSecret:  webhookSecret,
		logger:         logger.Named("payment-handler"),
	}
}

// Pay applies a tender to an order, dispatching on the payment type.
func (h *PaymentHandler) Pay(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	amount := money.FromDecimal(req.Amount)
	tip := money.FromDecimal(req.Tip)
	ctx := c.Request.Context()

	switch enum.PaymentType(req.Type) {
	case enum.PaymentTypeCash:
		result, err := h.paymentService.PayCash(ctx, id, amount, tip)
		if err != nil {
			response.Error(c, err)
			return
		}
		middleware.CountPayment(req.Type)
		response.Created(c, "Cash payment recorded", gin.H{
			"payment":   result.Payment,
			"changeDue": money.ToDecimal(result.ChangeDue),
		})

	case enum.PaymentTypeGiftCard:
		if req.GiftCardCode == "" {
			response.BadRequest(c, "Gift card code is required")
			return
		}
		payment, err := h.paymentService.PayGiftCard(ctx, id, req.GiftCardCode, tip)
		if err != nil {
			response.Error(c, err)
			return
		}
		middleware.CountPayment(req.Type)
		response.Created(c, "Gift card payment recorded", payment)

	case enum.PaymentTypeCard:
		payment, err := h.paymentService.PayCard(ctx, id, amount, tip)
		if err != nil {
			response.Error(c, err)
			return
		}
		middleware.CountPayment(req.Type)
		response.Created(c, "Card payment initiated", payment)

	default:
		response.BadRequest(c, "Unsupported payment type")
	}
}

// CancelCardPayment cancels a pending card payment
func (h *PaymentHandler) CancelCardPayment(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	paymentID, ok := PathID(c, "paymentId")
	if !ok {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.CancelCardPayment(c.Request.Context(), id, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment cancelled", payment)
}

// ProviderWebhook receives card payment status events. The request body is
// authenticated with an HMAC-SHA256 signature in X-Provider-Signature.
func (h *PaymentHandler) ProviderWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "Unable to read request body")
		return
	}

	if !h.verifySignature(body, c.GetHeader("X-Provider-Signature")) {
		h.logger.Warn("webhook signature verification failed")
		response.Unauthorized(c, "Invalid signature")
		return
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	var req request.ProviderEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.paymentService.HandleProviderEvent(c.Request.Context(), req.PaymentIntentID, req.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Event processed", nil)
}

func (h *PaymentHandler) verifySignature(body []byte, signature string) bool {
	if h.webhookSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
