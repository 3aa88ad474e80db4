package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/request"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
)

// RefundHandler handles refund HTTP requests
type RefundHandler struct {
	refundService *service.RefundService
	audit         *service.AuditService
}

// NewRefundHandler creates a new refund handler
func NewRefundHandler(refundService *service.RefundService, audit *service.AuditService) *RefundHandler {
	return &RefundHandler{refundService: refundService, audit: audit}
}

// Refund refunds a paid order across its refundable payments
func (h *RefundHandler) Refund(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	refund, err := h.refundService.RefundOrder(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "ORDER_REFUNDED", "ORDER", &id, nil, refund)
	response.Created(c, "Refund processed", refund)
}

// List returns the refunds recorded for an order
func (h *RefundHandler) List(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	refunds, err := h.refundService.ListRefunds(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Refunds retrieved", refunds)
}
