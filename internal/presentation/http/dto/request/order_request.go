package request

// OrderItemRequest is one line item in an order mutation.
type OrderItemRequest struct {
	ProductID    int64   `json:"productId" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,min=1"`
	VariationIDs []int64 `json:"variationIds"`
}

// CreateOrderRequest is the body for POST /orders
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// UpdateItemQuantityRequest is the body for PATCH /orders/:id/items/:itemId
type UpdateItemQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ApplyDiscountRequest is the body for POST /orders/:id/discount
type ApplyDiscountRequest struct {
	DiscountID string `json:"discountId" binding:"required"`
}
