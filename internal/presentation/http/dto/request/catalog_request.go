package request

// VariationRequest is a product variation in catalog requests.
type VariationRequest struct {
	Name        string  `json:"name" binding:"required"`
	PriceOffset float64 `json:"priceOffset"`
}

// CreateProductRequest is the body for POST /products
type CreateProductRequest struct {
	Name       string             `json:"name" binding:"required"`
	Price      float64            `json:"price" binding:"required"`
	TaxRateID  *string            `json:"taxRateId"`
	Variations []VariationRequest `json:"variations"`
}

// UpdateProductRequest is the body for PUT /products/:id
type UpdateProductRequest struct {
	Name      *string  `json:"name"`
	Price     *float64 `json:"price"`
	TaxRateID *string  `json:"taxRateId"`
}

// CreateTaxRateRequest is the body for POST /tax-rates
type CreateTaxRateRequest struct {
	Name string  `json:"name" binding:"required"`
	Rate float64 `json:"rate" binding:"required"`
}

// UpdateTaxRateRequest is the body for PUT /tax-rates/:id
type UpdateTaxRateRequest struct {
	Name   *string  `json:"name"`
	Rate   *float64 `json:"rate"`
	Active *bool    `json:"isActive"`
}

// CreateDiscountRequest is the body for POST /discounts. Value is a whole
// percent for PERCENTAGE discounts and a 2-decimal amount for FIXED_AMOUNT.
type CreateDiscountRequest struct {
	Code      string  `json:"code" binding:"required"`
	Value     float64 `json:"value" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Scope     string  `json:"scope" binding:"required"`
	ProductID *int64  `json:"productId"`
	ValidFrom *string `json:"validFrom"`
	ValidTo   *string `json:"validTo"`
}

// CreateGiftCardRequest is the body for POST /gift-cards
type CreateGiftCardRequest struct {
	InitialBalance float64 `json:"initialBalance" binding:"required"`
	ExpiryDate     *string `json:"expiryDate"`
}

// UpdateMerchantRequest is the body for PUT /merchants/:id
type UpdateMerchantRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	ContactInfo *string `json:"contactInfo"`
}
