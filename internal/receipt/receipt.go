// Package receipt derives all display monetary figures for an order or
// refund receipt from raw entity data. Everything here is pure: no I/O, no
// state, the same order always reconciles to the same totals. All amounts
// are int64 cents; fractional tax rates are rounded half away from zero at
// the cent when applied.
package receipt

import (
	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/pkg/money"
)

// LineTotals is the per-line breakdown printed for each order item.
type LineTotals struct {
	BasePrice int64 // unit price plus all variation offsets
	Gross     int64 // base price times quantity
	Taxable   int64 // gross minus the item-level discount
	Tax       int64 // taxable times the item's applied tax rate
}

// Line computes the breakdown for a single order item. The item-level
// discount and tax rate default to zero when unset.
func Line(it entity.OrderItem) LineTotals {
	basePrice := it.Price
	for _, v := range it.Variations {
		basePrice += v.PriceOffset
	}
	gross := basePrice * int64(it.Quantity)
	taxable := gross - it.AppliedDiscountAmount
	tax := money.ApplyRate(taxable, it.AppliedTaxRate)
	return LineTotals{
		BasePrice: basePrice,
		Gross:     gross,
		Taxable:   taxable,
		Tax:       tax,
	}
}

// Cost is the order-level cost summary the server persists on the order
// after every item or discount mutation.
type Cost struct {
	Subtotal       int64 // sum of line gross amounts, before any discount
	TaxAmount      int64 // sum of line tax amounts
	DiscountAmount int64 // order-level discount only
	ItemDiscounts  int64 // sum of item-level applied discounts
	Total          int64 // subtotal - itemDiscounts + tax - orderDiscount, floored at 0
}

// ComputeCost derives the authoritative order cost from its items and the
// order-level discount amount.
func ComputeCost(items []entity.OrderItem, orderDiscount int64) Cost {
	var c Cost
	c.DiscountAmount = orderDiscount
	for _, it := range items {
		line := Line(it)
		c.Subtotal += line.Gross
		c.TaxAmount += line.Tax
		c.ItemDiscounts += it.AppliedDiscountAmount
	}
	c.Total = money.MaxZero(c.Subtotal - c.ItemDiscounts + c.TaxAmount - orderDiscount)
	return c
}

// Totals is the full receipt reconciliation for an order.
type Totals struct {
	Subtotal           int64
	Tax                int64
	OrderDiscount      int64
	ItemDiscountsTotal int64
	TotalDiscounts     int64
	Total              int64
	TipTotal           int64
	PaidApplied        int64
	CashReceivedTotal  int64
	ChangeTotal        int64
	Remaining          int64
}

// Compute reconciles an order into receipt totals.
//
// The order's persisted total is authoritative; only when it is absent
// (zero) is the grand total rederived the same way ComputeCost persists it,
// so a fully discounted order reconciles to zero either way.
//
// PaidApplied sums payment amounts across ALL statuses. The refund
// eligibility path filters to SUCCEEDED instead (see SucceededPaid); the
// receipt view's looser sum is long-standing behavior and is kept as-is.
func Compute(o *entity.Order) Totals {
	var t Totals

	t.Subtotal = o.Subtotal
	t.Tax = o.TaxAmount
	t.OrderDiscount = o.DiscountAmount

	for _, it := range o.Items {
		t.ItemDiscountsTotal += it.AppliedDiscountAmount
	}
	t.TotalDiscounts = t.ItemDiscountsTotal + t.OrderDiscount

	t.Total = o.Total
	if t.Total == 0 {
		t.Total = money.MaxZero(t.Subtotal - t.ItemDiscountsTotal + t.Tax - t.OrderDiscount)
	}

	for _, p := range o.Payments {
		t.PaidApplied += p.Amount
		t.TipTotal += p.Tip
		if p.Type == enum.PaymentTypeCash {
			t.CashReceivedTotal += p.CashReceived
			t.ChangeTotal += money.MaxZero(p.CashReceived - p.Amount)
		}
	}

	t.Remaining = money.MaxZero(t.Total - t.PaidApplied)
	return t
}

// SucceededPaid sums the applied amounts of SUCCEEDED payments only. The
// payment flow uses this for remaining-balance checks, so a failed or
// pending card attempt never blocks further tenders.
func SucceededPaid(payments []entity.Payment) int64 {
	var paid int64
	for _, p := range payments {
		if p.Status == enum.PaymentStatusSucceeded {
			paid += p.Amount
		}
	}
	return paid
}

// RemainingBalance is the amount still owed on an order, counting only
// SUCCEEDED payments against the persisted total. Never negative.
func RemainingBalance(o *entity.Order) int64 {
	return money.MaxZero(o.Total - SucceededPaid(o.Payments))
}
