package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/infrastructure/cache"
	"github.com/sdp-labs/pos-api/pkg/apperror"
)

type refundFixture struct {
	svc       *RefundService
	orders    *fakeOrderRepo
	payments  *fakePaymentRepo
	refunds   *fakeRefundRepo
	provider  *fakeProvider
	publisher *fakePublisher
}

func newRefundFixture() *refundFixture {
	payments := newFakePaymentRepo()
	orders := newFakeOrderRepo(payments)
	refunds := newFakeRefundRepo()
	provider := &fakeProvider{}
	publisher := &fakePublisher{}

	svc := NewRefundService(orders, payments, refunds, provider, cache.NopOrderCache{}, publisher, zap.NewNop())
	return &refundFixture{
		svc:       svc,
		orders:    orders,
		payments:  payments,
		refunds:   refunds,
		provider:  provider,
		publisher: publisher,
	}
}

func (f *refundFixture) paidOrder(t *testing.T, total int64) *entity.Order {
	t.Helper()
	order := &entity.Order{
		MerchantID: 1,
		Status:     enum.OrderStatusPaid,
		Subtotal:   total,
		Total:      total,
	}
	require.NoError(t, f.orders.Create(context.Background(), order))
	return order
}

func (f *refundFixture) addPayment(t *testing.T, p entity.Payment) entity.Payment {
	t.Helper()
	require.NoError(t, f.payments.Create(context.Background(), &p))
	return p
}

func TestRefundOrder_CashOnly(t *testing.T) {
	f := newRefundFixture()
	order := f.paidOrder(t, 5000)
	payment := f.addPayment(t, entity.Payment{
		OrderID: order.ID,
		Type:    enum.PaymentTypeCash,
		Amount:  5000,
		Status:  enum.PaymentStatusSucceeded,
	})

	refund, err := f.svc.RefundOrder(context.Background(), order.ID, "customer returned goods")

	require.NoError(t, err)
	assert.Equal(t, enum.RefundStatusCompleted, refund.Status)
	assert.Equal(t, int64(5000), refund.TotalAmount)
	assert.Equal(t, "customer returned goods", refund.Reason)
	require.Len(t, refund.Breakdown, 1)
	assert.Equal(t, "pay_1", refund.Breakdown[0].OriginalPaymentID)
	assert.Equal(t, "cash", refund.Breakdown[0].PaymentType)
	assert.Equal(t, "completed", refund.Breakdown[0].RefundStatus)

	stored, _ := f.payments.GetByID(context.Background(), payment.ID)
	assert.Equal(t, enum.PaymentStatusRefunded, stored.Status)

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusRefunded, fresh.Status)
	assert.Equal(t, 1, f.publisher.refunded)
}

func TestRefundOrder_GiftCardTendersAreSkipped(t *testing.T) {
	f := newRefundFixture()
	order := f.paidOrder(t, 5000)
	f.addPayment(t, entity.Payment{
		OrderID: order.ID, Type: enum.PaymentTypeCash, Amount: 3000, Status: enum.PaymentStatusSucceeded,
	})
	gift := f.addPayment(t, entity.Payment{
		OrderID: order.ID, Type: enum.PaymentTypeGiftCard, Amount: 2000, Status: enum.PaymentStatusSucceeded,
	})

	refund, err := f.svc.RefundOrder(context.Background(), order.ID, "")

	require.NoError(t, err)
	assert.Equal(t, int64(3000), refund.TotalAmount, "gift card tender stays spent")
	require.Len(t, refund.Breakdown, 1)

	stored, _ := f.payments.GetByID(context.Background(), gift.ID)
	assert.Equal(t, enum.PaymentStatusSucceeded, stored.Status, "gift card payment is untouched")
}

func TestRefundOrder_OnlyGiftCardPayments(t *testing.T) {
	f := newRefundFixture()
	order := f.paidOrder(t, 2000)
	f.addPayment(t, entity.Payment{
		OrderID: order.ID, Type: enum.PaymentTypeGiftCard, Amount: 2000, Status: enum.PaymentStatusSucceeded,
	})

	_, err := f.svc.RefundOrder(context.Background(), order.ID, "")
	assert.ErrorIs(t, err, apperror.ErrNoRefundablePayment)

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusPaid, fresh.Status, "order is left as-is")
}

func TestRefundOrder_FailedPaymentsIgnored(t *testing.T) {
	f := newRefundFixture()
	order := f.paidOrder(t, 5000)
	f.addPayment(t, entity.Payment{
		OrderID: order.ID, Type: enum.PaymentTypeCard, Amount: 5000, Status: enum.PaymentStatusFailed,
	})
	f.addPayment(t, entity.Payment{
		OrderID: order.ID, Type: enum.PaymentTypeCash, Amount: 5000, Status: enum.PaymentStatusSucceeded,
	})

	refund, err := f.svc.RefundOrder(context.Background(), order.ID, "")

	require.NoError(t, err)
	assert.Equal(t, int64(5000), refund.TotalAmount)
	require.Len(t, refund.Breakdown, 1, "the failed card attempt never shows up")
}

func TestRefundOrder_CardGoesThroughProvider(t *testing.T) {
	f := newRefundFixture()
	order := f.paidOrder(t, 5000)
	intentID := "pi_1"
	f.addPayment(t, entity.Payment{
		OrderID:           order.ID,
		Type:              enum.PaymentTypeCard,
		Amount:            5000,
		Status:            enum.PaymentStatusSucceeded,
		ProviderPaymentID: &intentID,
	})

	refund, err := f.svc.RefundOrder(context.Background(), order.ID, "")

	require.NoError(t, err)
	assert.Equal(t, enum.RefundStatusCompleted, refund.Status)
	assert.Equal(t, []string{"pi_1"}, f.provider.refunded)
	require.Len(t, refund.Breakdown, 1)
	assert.Equal(t, "card", refund.Breakdown[0].PaymentType)
	require.NotNil(t, refund.Breakdown[0].ProviderRefundID)
	assert.Equal(t, "re_pi_1", *refund.Breakdown[0].ProviderRefundID)
}

func TestRefundOrder_PersistedAsProcessingThenFinalized(t *testing.T) {
	f := newRefundFixture()
	order := f.paidOrder(t, 5000)
	f.addPayment(t, entity.Payment{
		OrderID: order.ID, Type: enum.PaymentTypeCash, Amount: 5000, Status: enum.PaymentStatusSucceeded,
	})

	refund, err := f.svc.RefundOrder(context.Background(), order.ID, "")

	require.NoError(t, err)
	assert.Equal(t, enum.RefundStatusProcessing, f.refunds.createdStatus, "the row is created before any payment settles")
	assert.Equal(t, enum.RefundStatusCompleted, refund.Status)

	stored, _ := f.refunds.GetByID(context.Background(), refund.ID)
	require.NotNil(t, stored)
	assert.Equal(t, enum.RefundStatusCompleted, stored.Status)
	require.Len(t, stored.Breakdown, 1)
}

func TestRefundOrder_ProviderDeclineMarksEntryFailed(t *testing.T) {
	f := newRefundFixture()
	f.provider.refundErr = errors.New("intent not refundable")
	order := f.paidOrder(t, 8000)
	intentID := "pi_1"
	card := f.addPayment(t, entity.Payment{
		OrderID:           order.ID,
		Type:              enum.PaymentTypeCard,
		Amount:            5000,
		Status:            enum.PaymentStatusSucceeded,
		ProviderPaymentID: &intentID,
	})
	cash := f.addPayment(t, entity.Payment{
		OrderID: order.ID, Type: enum.PaymentTypeCash, Amount: 3000, Status: enum.PaymentStatusSucceeded,
	})

	refund, err := f.svc.RefundOrder(context.Background(), order.ID, "")

	require.NoError(t, err)
	assert.Equal(t, enum.RefundStatusFailed, refund.Status)
	assert.Equal(t, int64(3000), refund.TotalAmount, "only the cash leg counts")
	require.Len(t, refund.Breakdown, 2)

	byPayment := map[string]entity.RefundBreakdown{}
	for _, entry := range refund.Breakdown {
		byPayment[entry.OriginalPaymentID] = entry
	}
	assert.Equal(t, "failed", byPayment["pay_1"].RefundStatus)
	assert.Equal(t, "completed", byPayment["pay_2"].RefundStatus)

	storedCard, _ := f.payments.GetByID(context.Background(), card.ID)
	assert.Equal(t, enum.PaymentStatusSucceeded, storedCard.Status, "declined leg keeps its status")
	storedCash, _ := f.payments.GetByID(context.Background(), cash.ID)
	assert.Equal(t, enum.PaymentStatusRefunded, storedCash.Status)

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusRefunded, fresh.Status)
}

func TestRefundOrder_MissingProviderIDFailsEntry(t *testing.T) {
	f := newRefundFixture()
	order := f.paidOrder(t, 5000)
	f.addPayment(t, entity.Payment{
		OrderID: order.ID, Type: enum.PaymentTypeCard, Amount: 5000, Status: enum.PaymentStatusSucceeded,
	})

	refund, err := f.svc.RefundOrder(context.Background(), order.ID, "")

	require.NoError(t, err)
	assert.Equal(t, enum.RefundStatusFailed, refund.Status)
	assert.Equal(t, int64(0), refund.TotalAmount)
}

func TestRefundOrder_StatusGates(t *testing.T) {
	f := newRefundFixture()

	open := &entity.Order{MerchantID: 1, Status: enum.OrderStatusOpen, Total: 1000}
	require.NoError(t, f.orders.Create(context.Background(), open))
	_, err := f.svc.RefundOrder(context.Background(), open.ID, "")
	assert.ErrorIs(t, err, apperror.ErrOrderNotPaid)

	refunded := &entity.Order{MerchantID: 1, Status: enum.OrderStatusRefunded, Total: 1000}
	require.NoError(t, f.orders.Create(context.Background(), refunded))
	_, err = f.svc.RefundOrder(context.Background(), refunded.ID, "")
	assert.ErrorIs(t, err, apperror.ErrOrderRefunded)

	cancelled := &entity.Order{MerchantID: 1, Status: enum.OrderStatusCancelled, Total: 1000}
	require.NoError(t, f.orders.Create(context.Background(), cancelled))
	_, err = f.svc.RefundOrder(context.Background(), cancelled.ID, "")
	assert.ErrorIs(t, err, apperror.ErrOrderNotPaid)

	_, err = f.svc.RefundOrder(context.Background(), 999, "")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestListRefunds(t *testing.T) {
	f := newRefundFixture()
	order := f.paidOrder(t, 5000)
	f.addPayment(t, entity.Payment{
		OrderID: order.ID, Type: enum.PaymentTypeCash, Amount: 5000, Status: enum.PaymentStatusSucceeded,
	})

	_, err := f.svc.RefundOrder(context.Background(), order.ID, "")
	require.NoError(t, err)

	refunds, err := f.svc.ListRefunds(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	assert.Equal(t, order.ID, refunds[0].OrderID)

	_, err = f.svc.ListRefunds(context.Background(), 999)
	require.Error(t, err)
}
