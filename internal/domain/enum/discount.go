package enum

// DiscountType determines how a discount value is interpreted: a percentage
// of the discounted base, or a fixed amount in minor units.
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "PERCENTAGE"
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

// IsValid reports whether t is a known discount type.
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixedAmount
}

// DiscountScope determines what a discount applies to: the whole order's
// subtotal, or individual line items for one product.
type DiscountScope string

const (
	DiscountScopeOrder   DiscountScope = "ORDER"
	DiscountScopeProduct DiscountScope = "PRODUCT"
)

// IsValid reports whether s is a known discount scope.
func (s DiscountScope) IsValid() bool {
	return s == DiscountScopeOrder || s == DiscountScopeProduct
}
