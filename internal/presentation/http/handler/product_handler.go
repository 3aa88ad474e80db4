package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/request"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
	"github.com/sdp-labs/pos-api/pkg/money"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	audit          *service.AuditService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, audit *service.AuditService) *ProductHandler {
	return &ProductHandler{productService: productService, audit: audit}
}

// Create creates a product with its variations
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateProductInput{
		Name:      req.Name,
		Price:     money.FromDecimal(req.Price),
		TaxRateID: req.TaxRateID,
	}
	for _, v := range req.Variations {
		input.Variations = append(input.Variations, service.VariationInput{
			Name:        v.Name,
			PriceOffset: money.FromDecimal(v.PriceOffset),
		})
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "PRODUCT_CREATED", "PRODUCT", &product.ID, nil, product)
	response.Created(c, "Product created", product)
}

// Get returns a product with its variations
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateProductInput{
		Name:      req.Name,
		TaxRateID: req.TaxRateID,
	}
	if req.Price != nil {
		price := money.FromDecimal(*req.Price)
		input.Price = &price
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "PRODUCT_UPDATED", "PRODUCT", &product.ID, nil, product)
	response.OK(c, "Product updated", product)
}

// Delete soft-deletes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "PRODUCT_DELETED", "PRODUCT", &id, nil, nil)
	response.NoContent(c)
}

// List returns the merchant's products
func (h *ProductHandler) List(c *gin.Context) {
	params := PaginationFromQuery(c)

	products, total, err := h.productService.ListProducts(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved", result)
}

// AddVariation attaches a variation to a product
func (h *ProductHandler) AddVariation(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.VariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	variation, err := h.productService.AddVariation(c.Request.Context(), id, &service.VariationInput{
		Name:        req.Name,
		PriceOffset: money.FromDecimal(req.PriceOffset),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Variation added", variation)
}

// RemoveVariation removes a variation from a product
func (h *ProductHandler) RemoveVariation(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}
	variationID, ok := PathID(c, "variationId")
	if !ok {
		response.BadRequest(c, "Invalid variation ID")
		return
	}

	if err := h.productService.RemoveVariation(c.Request.Context(), id, variationID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
