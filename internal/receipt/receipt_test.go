package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
)

func TestLine_VariationOffsetsAndTax(t *testing.T) {
	// 10.00 unit price, +1.50 offset, qty 2, 2.00 item discount, 10% tax
	it := entity.OrderItem{
		Price:                 1000,
		Quantity:              2,
		AppliedDiscountAmount: 200,
		AppliedTaxRate:        0.10,
		Variations: []entity.OrderItemVariation{
			{Name: "Large", PriceOffset: 150},
		},
	}

	line := Line(it)

	assert.Equal(t, int64(1150), line.BasePrice)
	assert.Equal(t, int64(2300), line.Gross)
	assert.Equal(t, int64(2100), line.Taxable)
	assert.Equal(t, int64(210), line.Tax)
}

func TestLine_NegativeOffsetAndZeroDefaults(t *testing.T) {
	it := entity.OrderItem{
		Price:    500,
		Quantity: 3,
		Variations: []entity.OrderItemVariation{
			{Name: "No cheese", PriceOffset: -50},
		},
	}

	line := Line(it)

	assert.Equal(t, int64(450), line.BasePrice)
	assert.Equal(t, int64(1350), line.Gross)
	assert.Equal(t, int64(1350), line.Taxable, "no discount leaves gross untouched")
	assert.Equal(t, int64(0), line.Tax, "zero rate yields zero tax")
}

func TestLine_TaxRoundsHalfAwayFromZero(t *testing.T) {
	// 1.25 at 10% = 0.125, rounds to 0.13
	it := entity.OrderItem{Price: 125, Quantity: 1, AppliedTaxRate: 0.10}
	assert.Equal(t, int64(13), Line(it).Tax)
}

func TestComputeCost(t *testing.T) {
	items := []entity.OrderItem{
		{Price: 1000, Quantity: 2, AppliedDiscountAmount: 200, AppliedTaxRate: 0.10,
			Variations: []entity.OrderItemVariation{{PriceOffset: 150}}},
		{Price: 500, Quantity: 1},
	}

	c := ComputeCost(items, 300)

	assert.Equal(t, int64(2800), c.Subtotal)
	assert.Equal(t, int64(210), c.TaxAmount)
	assert.Equal(t, int64(200), c.ItemDiscounts)
	assert.Equal(t, int64(300), c.DiscountAmount)
	// 2800 - 200 + 210 - 300
	assert.Equal(t, int64(2510), c.Total)
}

func TestComputeCost_TotalNeverNegative(t *testing.T) {
	items := []entity.OrderItem{{Price: 100, Quantity: 1}}
	c := ComputeCost(items, 5000)
	assert.Equal(t, int64(0), c.Total)
}

func TestCompute_PaidAppliedSumsAllStatuses(t *testing.T) {
	o := &entity.Order{
		Subtotal:  5000,
		TaxAmount: 0,
		Total:     5000,
		Payments: []entity.Payment{
			{Type: enum.PaymentTypeCard, Amount: 2000, Status: enum.PaymentStatusSucceeded},
			{Type: enum.PaymentTypeCard, Amount: 2000, Status: enum.PaymentStatusFailed},
			{Type: enum.PaymentTypeCard, Amount: 1000, Status: enum.PaymentStatusRequiresAction},
		},
	}

	totals := Compute(o)

	assert.Equal(t, int64(5000), totals.PaidApplied)
	assert.Equal(t, int64(0), totals.Remaining)
	assert.Equal(t, int64(2000), SucceededPaid(o.Payments))
	assert.Equal(t, int64(3000), RemainingBalance(o))
}

func TestCompute_CashReceivedAndChange(t *testing.T) {
	// Tendered 20.00 against 25.00 applied in full, then 5.00 covers the rest
	// with a 25.00 note: change 20.00 total across both is 5.00.
	o := &entity.Order{
		Total: 3000,
		Payments: []entity.Payment{
			{Type: enum.PaymentTypeCash, Amount: 2000, CashReceived: 2000, Status: enum.PaymentStatusSucceeded},
			{Type: enum.PaymentTypeCash, Amount: 1000, CashReceived: 1500, Status: enum.PaymentStatusSucceeded},
		},
	}

	totals := Compute(o)

	assert.Equal(t, int64(3500), totals.CashReceivedTotal)
	assert.Equal(t, int64(500), totals.ChangeTotal)
	assert.Equal(t, int64(3000), totals.PaidApplied)
	assert.Equal(t, int64(0), totals.Remaining)
}

func TestCompute_CardPaymentsIgnoredForCashFigures(t *testing.T) {
	o := &entity.Order{
		Total: 2000,
		Payments: []entity.Payment{
			{Type: enum.PaymentTypeCard, Amount: 2000, Tip: 300, Status: enum.PaymentStatusSucceeded},
		},
	}

	totals := Compute(o)

	assert.Equal(t, int64(0), totals.CashReceivedTotal)
	assert.Equal(t, int64(0), totals.ChangeTotal)
	assert.Equal(t, int64(300), totals.TipTotal)
}

func TestCompute_RemainingClampedOnOverpayment(t *testing.T) {
	o := &entity.Order{
		Total: 5000,
		Payments: []entity.Payment{
			{Type: enum.PaymentTypeGiftCard, Amount: 6000, Status: enum.PaymentStatusSucceeded},
		},
	}

	assert.Equal(t, int64(0), Compute(o).Remaining)
}

func TestCompute_FallbackTotalWhenUnset(t *testing.T) {
	o := &entity.Order{
		Subtotal:       2300,
		TaxAmount:      210,
		DiscountAmount: 300,
		Total:          0,
	}

	totals := Compute(o)

	assert.Equal(t, int64(2210), totals.Total)
}

func TestCompute_FullyItemDiscountedOrderStaysZero(t *testing.T) {
	// ComputeCost persists Total=0 for this order; the receipt must agree.
	items := []entity.OrderItem{
		{Price: 1000, Quantity: 1, AppliedDiscountAmount: 1000},
	}
	cost := ComputeCost(items, 0)
	assert.Equal(t, int64(0), cost.Total)

	o := &entity.Order{
		Subtotal: cost.Subtotal,
		Total:    cost.Total,
		Items:    items,
	}

	totals := Compute(o)

	assert.Equal(t, int64(0), totals.Total)
	assert.Equal(t, int64(0), totals.Remaining)
	assert.Equal(t, int64(1000), totals.ItemDiscountsTotal)
}

func TestCompute_FallbackNeverNegative(t *testing.T) {
	o := &entity.Order{
		Subtotal:       1000,
		DiscountAmount: 1500,
		Total:          0,
	}

	assert.Equal(t, int64(0), Compute(o).Total)
}

func TestCompute_DiscountTotals(t *testing.T) {
	o := &entity.Order{
		Subtotal:       5000,
		DiscountAmount: 400,
		Total:          4400,
		Items: []entity.OrderItem{
			{Price: 2500, Quantity: 2, AppliedDiscountAmount: 200},
		},
	}

	totals := Compute(o)

	assert.Equal(t, int64(200), totals.ItemDiscountsTotal)
	assert.Equal(t, int64(400), totals.OrderDiscount)
	assert.Equal(t, int64(600), totals.TotalDiscounts)
	assert.Equal(t, int64(4400), totals.Total)
}

func TestCompute_EmptyOrder(t *testing.T) {
	totals := Compute(&entity.Order{})
	assert.Equal(t, Totals{}, totals)
}
