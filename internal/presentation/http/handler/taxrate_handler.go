package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/request"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
)

// TaxRateHandler handles tax rate configuration HTTP requests
type TaxRateHandler struct {
	taxRateService *service.TaxRateService
	audit          *service.AuditService
}

// NewTaxRateHandler creates a new tax rate handler
func NewTaxRateHandler(taxRateService *service.TaxRateService, audit *service.AuditService) *TaxRateHandler {
	return &TaxRateHandler{taxRateService: taxRateService, audit: audit}
}

// Create creates a tax rate
func (h *TaxRateHandler) Create(c *gin.Context) {
	var req request.CreateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	taxRate, err := h.taxRateService.CreateTaxRate(c.Request.Context(), &service.CreateTaxRateInput{
		Name: req.Name,
		Rate: req.Rate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "TAX_RATE_CREATED", "TAX_RATE", nil, nil, taxRate)
	response.Created(c, "Tax rate created", taxRate)
}

// List returns the merchant's tax rates
func (h *TaxRateHandler) List(c *gin.Context) {
	taxRates, err := h.taxRateService.ListTaxRates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rates retrieved", taxRates)
}

// Update applies a partial update to a tax rate
func (h *TaxRateHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "Invalid tax rate ID")
		return
	}

	var req request.UpdateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	taxRate, err := h.taxRateService.UpdateTaxRate(c.Request.Context(), id, &service.UpdateTaxRateInput{
		Name:   req.Name,
		Rate:   req.Rate,
		Active: req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "TAX_RATE_UPDATED", "TAX_RATE", nil, nil, taxRate)
	response.OK(c, "Tax rate updated", taxRate)
}

// Delete removes a tax rate
func (h *TaxRateHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "Invalid tax rate ID")
		return
	}

	if err := h.taxRateService.DeleteTaxRate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "TAX_RATE_DELETED", "TAX_RATE", nil, nil, gin.H{"id": id})
	response.NoContent(c)
}
