package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// AuditHandler handles action log HTTP requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns action log entries. Super admins see all merchants.
func (h *AuditHandler) List(c *gin.Context) {
	params := PaginationFromQuery(c)

	var merchantID *int64
	if !IsSuperAdmin(c) {
		id := GetMerchantID(c)
		merchantID = &id
	}

	logs, total, err := h.auditService.List(c.Request.Context(), merchantID, params, c.Query("action_type"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(logs, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Action logs retrieved", result)
}
