package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/request"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// MerchantHandler handles merchant profile HTTP requests
type MerchantHandler struct {
	merchantService *service.MerchantService
	audit           *service.AuditService
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchantService *service.MerchantService, audit *service.AuditService) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService, audit: audit}
}

// Get returns a merchant profile. Non-admin callers may only read their own.
func (h *MerchantHandler) Get(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid merchant ID")
		return
	}

	if !IsSuperAdmin(c) && id != GetMerchantID(c) {
		response.Forbidden(c, "Access denied")
		return
	}

	merchant, err := h.merchantService.GetMerchant(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Merchant retrieved", merchant)
}

// Update applies a partial update to a merchant profile
func (h *MerchantHandler) Update(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid merchant ID")
		return
	}

	if !IsSuperAdmin(c) && id != GetMerchantID(c) {
		response.Forbidden(c, "Access denied")
		return
	}

	var req request.UpdateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	merchant, err := h.merchantService.UpdateMerchant(c.Request.Context(), id, &service.UpdateMerchantInput{
		Name:        req.Name,
		Address:     req.Address,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), &id, "MERCHANT_UPDATED", "MERCHANT", &id, nil, merchant)
	response.OK(c, "Merchant updated", merchant)
}

// List returns all merchants (super admin only)
func (h *MerchantHandler) List(c *gin.Context) {
	params := PaginationFromQuery(c)

	merchants, total, err := h.merchantService.ListMerchants(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(merchants, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Merchants retrieved", result)
}
