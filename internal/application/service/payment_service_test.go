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

type paymentFixture struct {
	svc       *PaymentService
	orders    *fakeOrderRepo
	payments  *fakePaymentRepo
	giftCards *fakeGiftCardRepo
	provider  *fakeProvider
	publisher *fakePublisher
}

func newPaymentFixture() *paymentFixture {
	payments := newFakePaymentRepo()
	orders := newFakeOrderRepo(payments)
	giftCards := newFakeGiftCardRepo()
	provider := &fakeProvider{}
	publisher := &fakePublisher{}

	svc := NewPaymentService(orders, payments, giftCards, provider, cache.NopOrderCache{}, publisher, "usd", zap.NewNop())
	return &paymentFixture{
		svc:       svc,
		orders:    orders,
		payments:  payments,
		giftCards: giftCards,
		provider:  provider,
		publisher: publisher,
	}
}

func (f *paymentFixture) openOrder(t *testing.T, total int64) *entity.Order {
	t.Helper()
	order := &entity.Order{
		MerchantID: 1,
		Status:     enum.OrderStatusOpen,
		Subtotal:   total,
		Total:      total,
	}
	require.NoError(t, f.orders.Create(context.Background(), order))
	return order
}

func TestPayCash_ExactAmountClosesOrder(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	result, err := f.svc.PayCash(context.Background(), order.ID, 5000, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(5000), result.Payment.Amount)
	assert.Equal(t, int64(0), result.ChangeDue)
	assert.Equal(t, enum.PaymentStatusSucceeded, result.Payment.Status)

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusPaid, fresh.Status)
	assert.Equal(t, 1, f.publisher.statusChanged)
	assert.Equal(t, enum.OrderStatusPaid, f.publisher.lastStatus)
}

func TestPayCash_OverpaymentReturnsChange(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	result, err := f.svc.PayCash(context.Background(), order.ID, 6000, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(5000), result.Payment.Amount, "applied amount is capped at the remaining balance")
	assert.Equal(t, int64(6000), result.Payment.CashReceived)
	assert.Equal(t, int64(1000), result.ChangeDue)

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusPaid, fresh.Status)
}

func TestPayCash_PartialKeepsOrderOpen(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	result, err := f.svc.PayCash(context.Background(), order.ID, 2000, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2000), result.Payment.Amount)
	assert.Equal(t, int64(0), result.ChangeDue)

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusOpen, fresh.Status)
	assert.Equal(t, 0, f.publisher.statusChanged)
}

func TestPayCash_SplitTendersAccumulate(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	_, err := f.svc.PayCash(context.Background(), order.ID, 2000, 0)
	require.NoError(t, err)

	result, err := f.svc.PayCash(context.Background(), order.ID, 4000, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), result.Payment.Amount, "second tender only covers what remains")
	assert.Equal(t, int64(1000), result.ChangeDue)

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusPaid, fresh.Status)
}

func TestPayCash_FullyPaidOrderRejectsTender(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	_, err := f.svc.PayCash(context.Background(), order.ID, 5000, 0)
	require.NoError(t, err)

	// finalizeIfPaid moved the order to PAID, so the status gate fires first
	_, err = f.svc.PayCash(context.Background(), order.ID, 100, 0)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestPayCash_CoveredButOpenOrderReportsFullyPaid(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	// A succeeded payment covering the total without the status having moved
	require.NoError(t, f.payments.Create(context.Background(), &entity.Payment{
		OrderID: order.ID,
		Type:    enum.PaymentTypeCash,
		Amount:  5000,
		Status:  enum.PaymentStatusSucceeded,
	}))

	_, err := f.svc.PayCash(context.Background(), order.ID, 100, 0)
	assert.ErrorIs(t, err, apperror.ErrOrderFullyPaid)
}

func TestPayCash_FailedPaymentDoesNotBlockNextTender(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	require.NoError(t, f.payments.Create(context.Background(), &entity.Payment{
		OrderID: order.ID,
		Type:    enum.PaymentTypeCard,
		Amount:  5000,
		Status:  enum.PaymentStatusFailed,
	}))

	result, err := f.svc.PayCash(context.Background(), order.ID, 5000, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), result.Payment.Amount)
}

func TestPayCash_RejectsNonPositiveAmount(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	_, err := f.svc.PayCash(context.Background(), order.ID, 0, 0)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestPayGiftCard_PartialBalanceDeactivatesAtZero(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)
	require.NoError(t, f.giftCards.Create(context.Background(), &entity.GiftCard{
		Code:           "4242424242424242",
		InitialBalance: 3000,
		CurrentBalance: 3000,
		Active:         true,
		MerchantID:     1,
	}))

	payment, err := f.svc.PayGiftCard(context.Background(), order.ID, "4242424242424242", 0)

	require.NoError(t, err)
	assert.Equal(t, int64(3000), payment.Amount, "charge is capped at the card balance")
	assert.Equal(t, enum.PaymentStatusSucceeded, payment.Status)

	card, _ := f.giftCards.GetByCode(context.Background(), "4242424242424242")
	assert.Equal(t, int64(0), card.CurrentBalance)
	assert.False(t, card.Active, "drained cards deactivate")

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusOpen, fresh.Status, "2000 still owed")
}

func TestPayGiftCard_LargeBalanceChargesRemainingOnly(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)
	require.NoError(t, f.giftCards.Create(context.Background(), &entity.GiftCard{
		Code:           "4242424242424242",
		CurrentBalance: 10000,
		Active:         true,
		MerchantID:     1,
	}))

	payment, err := f.svc.PayGiftCard(context.Background(), order.ID, "4242424242424242", 0)

	require.NoError(t, err)
	assert.Equal(t, int64(5000), payment.Amount)

	card, _ := f.giftCards.GetByCode(context.Background(), "4242424242424242")
	assert.Equal(t, int64(5000), card.CurrentBalance)
	assert.True(t, card.Active)

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusPaid, fresh.Status)
}

func TestPayGiftCard_InactiveCardRejected(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)
	require.NoError(t, f.giftCards.Create(context.Background(), &entity.GiftCard{
		Code:           "4242424242424242",
		CurrentBalance: 3000,
		Active:         false,
		MerchantID:     1,
	}))

	_, err := f.svc.PayGiftCard(context.Background(), order.ID, "4242424242424242", 0)
	assert.ErrorIs(t, err, apperror.ErrGiftCardInactive)
}

func TestPayGiftCard_ZeroBalanceRejected(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)
	require.NoError(t, f.giftCards.Create(context.Background(), &entity.GiftCard{
		Code:           "4242424242424242",
		CurrentBalance: 0,
		Active:         true,
		MerchantID:     1,
	}))

	_, err := f.svc.PayGiftCard(context.Background(), order.ID, "4242424242424242", 0)
	assert.ErrorIs(t, err, apperror.ErrGiftCardBalance)
}

func TestPayGiftCard_OtherMerchantsCardNotFound(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)
	require.NoError(t, f.giftCards.Create(context.Background(), &entity.GiftCard{
		Code:           "4242424242424242",
		CurrentBalance: 3000,
		Active:         true,
		MerchantID:     99,
	}))

	_, err := f.svc.PayGiftCard(context.Background(), order.ID, "4242424242424242", 0)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestPayCard_CreatesIntentAndWaitsForWebhook(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	payment, err := f.svc.PayCard(context.Background(), order.ID, 5000, 500)

	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusRequiresAction, payment.Status)
	require.NotNil(t, payment.ProviderPaymentID)
	assert.Equal(t, "pi_1", *payment.ProviderPaymentID)
	assert.Equal(t, int64(5500), f.provider.lastAmount, "tip rides on the provider charge")

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusOpen, fresh.Status, "order stays open until the provider confirms")
}

func TestPayCard_AmountAboveRemainingCapped(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	payment, err := f.svc.PayCard(context.Background(), order.ID, 6000, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(5000), payment.Amount, "charge is capped at the remaining balance")
	assert.Equal(t, enum.PaymentStatusRequiresAction, payment.Status)
	assert.Equal(t, int64(5000), f.provider.lastAmount, "the intent carries the capped amount")
}

func TestPayCard_CapUsesRemainingAfterPriorTender(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	_, err := f.svc.PayCash(context.Background(), order.ID, 2000, 0)
	require.NoError(t, err)

	payment, err := f.svc.PayCard(context.Background(), order.ID, 5000, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), payment.Amount)
}

func TestPayCard_NonPositiveAmountRejected(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	_, err := f.svc.PayCard(context.Background(), order.ID, 0, 0)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
	assert.Equal(t, 0, f.provider.intents, "no intent is created for an invalid amount")
}

func TestPayCard_ProviderFailureMapsToBadGateway(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)
	f.provider.intentErr = errors.New("connection refused")

	_, err := f.svc.PayCard(context.Background(), order.ID, 5000, 0)
	require.Error(t, err)
	assert.Equal(t, 502, apperror.GetAppError(err).Code)
}

func TestHandleProviderEvent_SucceededClosesOrder(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	payment, err := f.svc.PayCard(context.Background(), order.ID, 5000, 0)
	require.NoError(t, err)

	err = f.svc.HandleProviderEvent(context.Background(), *payment.ProviderPaymentID, "succeeded")
	require.NoError(t, err)

	stored, _ := f.payments.GetByID(context.Background(), payment.ID)
	assert.Equal(t, enum.PaymentStatusSucceeded, stored.Status)

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusPaid, fresh.Status)
}

func TestHandleProviderEvent_FailedKeepsOrderOpen(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	payment, err := f.svc.PayCard(context.Background(), order.ID, 5000, 0)
	require.NoError(t, err)

	err = f.svc.HandleProviderEvent(context.Background(), *payment.ProviderPaymentID, "failed")
	require.NoError(t, err)

	stored, _ := f.payments.GetByID(context.Background(), payment.ID)
	assert.Equal(t, enum.PaymentStatusFailed, stored.Status)

	fresh, _ := f.orders.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStatusOpen, fresh.Status)
}

func TestHandleProviderEvent_UnknownPaymentOrStatus(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	err := f.svc.HandleProviderEvent(context.Background(), "pi_missing", "succeeded")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)

	payment, err := f.svc.PayCard(context.Background(), order.ID, 5000, 0)
	require.NoError(t, err)

	err = f.svc.HandleProviderEvent(context.Background(), *payment.ProviderPaymentID, "exploded")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCancelCardPayment(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	payment, err := f.svc.PayCard(context.Background(), order.ID, 5000, 0)
	require.NoError(t, err)

	cancelled, err := f.svc.CancelCardPayment(context.Background(), order.ID, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentStatusCanceled, cancelled.Status)
}

func TestCancelCardPayment_SucceededPaymentRejected(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	payment, err := f.svc.PayCard(context.Background(), order.ID, 5000, 0)
	require.NoError(t, err)
	require.NoError(t, f.svc.HandleProviderEvent(context.Background(), *payment.ProviderPaymentID, "succeeded"))

	_, err = f.svc.CancelCardPayment(context.Background(), order.ID, payment.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCancelCardPayment_CashPaymentRejected(t *testing.T) {
	f := newPaymentFixture()
	order := f.openOrder(t, 5000)

	result, err := f.svc.PayCash(context.Background(), order.ID, 2000, 0)
	require.NoError(t, err)

	_, err = f.svc.CancelCardPayment(context.Background(), order.ID, result.Payment.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
