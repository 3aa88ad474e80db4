package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/request"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
	"github.com/sdp-labs/pos-api/pkg/money"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// GiftCardHandler handles gift card HTTP requests
type GiftCardHandler struct {
	giftCardService *service.GiftCardService
	audit           *service.AuditService
}

// NewGiftCardHandler creates a new gift card handler
func NewGiftCardHandler(giftCardService *service.GiftCardService, audit *service.AuditService) *GiftCardHandler {
	return &GiftCardHandler{giftCardService: giftCardService, audit: audit}
}

// Create issues a gift card with a generated code
func (h *GiftCardHandler) Create(c *gin.Context) {
	var req request.CreateGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	card, err := h.giftCardService.CreateGiftCard(c.Request.Context(), &service.CreateGiftCardInput{
		InitialBalance: money.FromDecimal(req.InitialBalance),
		ExpiryDate:     req.ExpiryDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "GIFT_CARD_CREATED", "GIFT_CARD", nil, nil, card)
	response.Created(c, "Gift card created", card)
}

// Get returns a gift card by code
func (h *GiftCardHandler) Get(c *gin.Context) {
	card, err := h.giftCardService.GetGiftCard(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Gift card retrieved", card)
}

// List returns the merchant's gift cards
func (h *GiftCardHandler) List(c *gin.Context) {
	params := PaginationFromQuery(c)
	activeOnly := c.Query("active") == "true"

	cards, total, err := h.giftCardService.ListGiftCards(c.Request.Context(), params, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(cards, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Gift cards retrieved", result)
}

// Deactivate disables a gift card
func (h *GiftCardHandler) Deactivate(c *gin.Context) {
	card, err := h.giftCardService.DeactivateGiftCard(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "GIFT_CARD_DEACTIVATED", "GIFT_CARD", nil, nil, card)
	response.OK(c, "Gift card deactivated", card)
}
