package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/request"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
	"github.com/sdp-labs/pos-api/pkg/money"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	audit        *service.AuditService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, audit *service.AuditService) *OrderHandler {
	return &OrderHandler{orderService: orderService, audit: audit}
}

// Create opens a new order, optionally pre-populated with line items
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateOrderInput{}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.AddItemInput{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			VariationIDs: item.VariationIDs,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created", order)
}

// Get returns an order with its items and payments
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

// List returns the merchant's orders with optional status and date filters
func (h *OrderHandler) List(c *gin.Context) {
	params := PaginationFromQuery(c)

	filter := &repository.OrderFilterParams{
		Pagination:         params,
		SortBy:             c.DefaultQuery("sort_by", "created_at"),
		SortOrder:          c.DefaultQuery("sort_order", "desc"),
		SkipMerchantFilter: IsSuperAdmin(c),
	}
	if s := c.Query("status"); s != "" {
		status := enum.OrderStatus(s)
		filter.Status = &status
	}
	if s := c.Query("start_date"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			filter.StartDate = &t
		}
	}
	if s := c.Query("end_date"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			filter.EndDate = &t
		}
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(orders, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}

// Receipt returns the reconciled totals for an order
func (h *OrderHandler) Receipt(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, totals, err := h.orderService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt computed", gin.H{
		"orderId":       order.ID,
		"status":        order.Status,
		"subtotal":      money.ToDecimal(totals.Subtotal),
		"tax":           money.ToDecimal(totals.Tax),
		"orderDiscount": money.ToDecimal(totals.OrderDiscount),
		"itemDiscounts": money.ToDecimal(totals.ItemDiscountsTotal),
		"discounts":     money.ToDecimal(totals.TotalDiscounts),
		"total":         money.ToDecimal(totals.Total),
		"tips":          money.ToDecimal(totals.TipTotal),
		"paidApplied":   money.ToDecimal(totals.PaidApplied),
		"cashReceived":  money.ToDecimal(totals.CashReceivedTotal),
		"changeGiven":   money.ToDecimal(totals.ChangeTotal),
		"remaining":     money.ToDecimal(totals.Remaining),
	})
}

// AddItem adds a line item to an open order
func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.orderService.AddItem(c.Request.Context(), id, &service.AddItemInput{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		VariationIDs: req.VariationIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added", item)
}

// UpdateItemQuantity changes a line item's quantity
func (h *OrderHandler) UpdateItemQuantity(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, ok := PathID(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.orderService.UpdateItemQuantity(c.Request.Context(), id, itemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated", item)
}

// RemoveItem removes a line item from an open order
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, ok := PathID(c, "itemId")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.orderService.RemoveItem(c.Request.Context(), id, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ApplyDiscount applies an order-level discount
func (h *OrderHandler) ApplyDiscount(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.ApplyDiscount(c.Request.Context(), id, req.DiscountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount applied", order)
}

// RemoveDiscount clears the order-level discount
func (h *OrderHandler) RemoveDiscount(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.RemoveDiscount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Discount removed", order)
}

// Cancel cancels an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.audit.Record(c.Request.Context(), GetUserID(c), AuditMerchantID(c), "ORDER_CANCELLED", "ORDER", &id, nil, order)
	response.OK(c, "Order cancelled", order)
}
