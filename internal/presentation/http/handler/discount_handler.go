package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/request"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
	"github.com/sdp-labs/pos-api/pkg/money"
)

// DiscountHandler handles promotion HTTP requests
type DiscountHandler struct {
	discountService *service.DiscountService
	audit           *service.AuditService
}

// NewDiscountHandler creates a new discount handler
func NewDiscountHandler(discountService *service.DiscountService, audit *service.AuditService) *DiscountHandler {
	return &DiscountHandler{discountService: discountService, audit: audit}
}

// Create creates a discount
func (h *DiscountHandler) Create(c *gin.Context) {
	var req request.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	discountType := enum.DiscountType(req.Type)
	value := int64(req.Value)
	if discountType == enum.DiscountTypeFixedAmount {
		value = money.FromDecimal(req.Value)
	}

	discount, err := h.discountService.CreateDiscount(c.Request.Context(), &service.CreateDiscountInput{
		Code:      req.Code,
		Value:     value,
		Type:      discountType,
		Scope:     enum.DiscountScope(req.Scope),
		ProductID: req.ProductID,
		ValidFrom: req.ValidFrom,
		ValidTo:   req.ValidTo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "DISCOUNT_CREATED", "DISCOUNT", nil, nil, discount)
	response.Created(c, "Discount created", discount)
}

// List returns the merchant's discounts
func (h *DiscountHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	discounts, err := h.discountService.ListDiscounts(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discounts retrieved", discounts)
}

// Get returns a discount
func (h *DiscountHandler) Get(c *gin.Context) {
	discount, err := h.discountService.GetDiscount(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount retrieved", discount)
}

// Delete removes a discount
func (h *DiscountHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.discountService.DeleteDiscount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "DISCOUNT_DELETED", "DISCOUNT", nil, nil, gin.H{"id": id})
	response.NoContent(c)
}
