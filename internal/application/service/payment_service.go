package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/internal/events"
	"github.com/sdp-labs/pos-api/internal/infrastructure/cache"
	"github.com/sdp-labs/pos-api/internal/receipt"
	"github.com/sdp-labs/pos-api/internal/terminal"
	"github.com/sdp-labs/pos-api/pkg/apperror"
	"github.com/sdp-labs/pos-api/pkg/money"
)

// PaymentService records tenders against orders. Remaining-balance checks
// count SUCCEEDED payments only, so an abandoned card attempt never blocks
// the next tender. An order closes (moves to PAID) the moment succeeded
// payments cover its total.
type PaymentService struct {
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
	giftCardRepo repository.GiftCardRepository
	provider     terminal.Client
	cache        cache.OrderCache
	publisher    events.Publisher
	logger       *zap.Logger
	currency     string
	now          nowFunc
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	giftCardRepo repository.GiftCardRepository,
	provider terminal.Client,
	orderCache cache.OrderCache,
	publisher events.Publisher,
	currency string,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		giftCardRepo: giftCardRepo,
		provider:     provider,
		cache:        orderCache,
		publisher:    publisher,
		currency:     currency,
		logger:       logger.Named("payment-service"),
		now:          defaultNow,
	}
}

// CashPaymentResult reports what a cash tender did.
type CashPaymentResult struct {
	Payment   *entity.Payment
	ChangeDue int64
}

// PayCash applies a cash tender. The applied amount is capped at the
// remaining balance; the rest is change due.
func (s *PaymentService) PayCash(ctx context.Context, orderID, amountReceived, tip int64) (*CashPaymentResult, error) {
	if amountReceived <= 0 {
		return nil, apperror.NewBadRequestError("Amount received must be positive")
	}

	order, remaining, err := s.payableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	applied := money.Min(amountReceived, remaining)
	payment := &entity.Payment{
		OrderID:      orderID,
		Type:         enum.PaymentTypeCash,
		Amount:       applied,
		CashReceived: amountReceived,
		Tip:          tip,
		Status:       enum.PaymentStatusSucceeded,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.finalizeIfPaid(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("cash payment recorded",
		zap.Int64("order_id", orderID),
		zap.Int64("applied", applied),
		zap.Int64("change_due", amountReceived-applied),
	)
	return &CashPaymentResult{Payment: payment, ChangeDue: amountReceived - applied}, nil
}

// PayGiftCard charges a gift card for up to the remaining balance. The card
// is deactivated when its balance reaches zero.
func (s *PaymentService) PayGiftCard(ctx context.Context, orderID int64, code string, tip int64) (*entity.Payment, error) {
	order, remaining, err := s.payableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	card, err := s.giftCardRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Gift card")
	}
	if card.MerchantID != order.MerchantID {
		return nil, apperror.NewNotFoundError("Gift card")
	}
	if !card.Active || (card.ExpiryDate != nil && s.now().After(*card.ExpiryDate)) {
		return nil, apperror.ErrGiftCardInactive
	}
	if card.CurrentBalance <= 0 {
		return nil, apperror.ErrGiftCardBalance
	}

	charge := money.Min(remaining, card.CurrentBalance)
	card.CurrentBalance -= charge
	if card.CurrentBalance == 0 {
		card.Active = false
	}
	if err := s.giftCardRepo.Update(ctx, card); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		OrderID: orderID,
		Type:    enum.PaymentTypeGiftCard,
		Amount:  charge,
		Tip:     tip,
		Status:  enum.PaymentStatusSucceeded,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.finalizeIfPaid(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("gift card payment recorded",
		zap.Int64("order_id", orderID),
		zap.Int64("charged", charge),
		zap.Int64("card_balance", card.CurrentBalance),
	)
	return payment, nil
}

// PayCard creates a card payment intent with the provider. Like cash, the
// requested amount is capped at the remaining balance. The payment stays at
// REQUIRES_ACTION until the provider webhook reports the terminal outcome.
func (s *PaymentService) PayCard(ctx context.Context, orderID, amount, tip int64) (*entity.Payment, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be positive")
	}

	order, remaining, err := s.payableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	applied := money.Min(amount, remaining)

	intent, err := s.provider.CreateIntent(ctx, applied, tip, s.currency)
	if err != nil {
		s.logger.Error("card intent creation failed", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, apperror.NewAppError(502, "Card provider unavailable")
	}

	payment := &entity.Payment{
		OrderID:           order.ID,
		ProviderPaymentID: &intent.ID,
		Type:              enum.PaymentTypeCard,
		Amount:            applied,
		Tip:               tip,
		Status:            enum.PaymentStatusRequiresAction,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.invalidate(ctx, orderID)
	s.logger.Info("card payment intent created",
		zap.Int64("order_id", orderID),
		zap.String("provider_payment_id", intent.ID),
		zap.Int64("amount", applied),
	)
	return payment, nil
}

// CancelCardPayment cancels a pending card payment with the provider.
func (s *PaymentService) CancelCardPayment(ctx context.Context, orderID, paymentID int64) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.OrderID != orderID {
		return nil, apperror.NewNotFoundError("Payment")
	}
	if payment.Type != enum.PaymentTypeCard {
		return nil, apperror.NewBadRequestError("Only card payments can be cancelled")
	}
	if payment.Status != enum.PaymentStatusRequiresAction && payment.Status != enum.PaymentStatusProcessing {
		return nil, apperror.NewConflictError(fmt.Sprintf("Payment in status %s cannot be cancelled", payment.Status))
	}

	if payment.ProviderPaymentID != nil {
		if _, err := s.provider.CancelIntent(ctx, *payment.ProviderPaymentID); err != nil {
			s.logger.Error("provider intent cancel failed",
				zap.Int64("payment_id", paymentID), zap.Error(err))
			return nil, apperror.NewAppError(502, "Card provider unavailable")
		}
	}

	payment.Status = enum.PaymentStatusCanceled
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.invalidate(ctx, orderID)
	return payment, nil
}

// HandleProviderEvent advances a card payment from a provider webhook. A
// SUCCEEDED outcome closes the order when nothing remains owed.
func (s *PaymentService) HandleProviderEvent(ctx context.Context, providerPaymentID, providerStatus string) error {
	payment, err := s.paymentRepo.GetByProviderPaymentID(ctx, providerPaymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}

	status, ok := paymentStatusFromProvider(providerStatus)
	if !ok {
		return apperror.NewBadRequestError(fmt.Sprintf("Unknown provider status %q", providerStatus))
	}

	payment.Status = status
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return err
	}

	s.logger.Info("card payment updated from provider",
		zap.Int64("payment_id", payment.ID),
		zap.String("status", string(status)),
	)

	if status == enum.PaymentStatusSucceeded {
		order, err := s.orderRepo.GetByID(ctx, payment.OrderID)
		if err != nil {
			return err
		}
		if order != nil {
			return s.finalizeIfPaid(ctx, order)
		}
	}

	s.invalidate(ctx, payment.OrderID)
	return nil
}

func paymentStatusFromProvider(providerStatus string) (enum.PaymentStatus, bool) {
	switch providerStatus {
	case terminal.StatusRequiresAction:
		return enum.PaymentStatusRequiresAction, true
	case terminal.StatusProcessing:
		return enum.PaymentStatusProcessing, true
	case terminal.StatusSucceeded:
		return enum.PaymentStatusSucceeded, true
	case terminal.StatusFailed:
		return enum.PaymentStatusFailed, true
	case terminal.StatusCanceled:
		return enum.PaymentStatusCanceled, true
	}
	return "", false
}

// payableOrder loads the order and returns its remaining balance, rejecting
// orders that are not OPEN or already covered by succeeded payments.
func (s *PaymentService) payableOrder(ctx context.Context, orderID int64) (*entity.Order, int64, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, 0, err
	}
	if order == nil {
		return nil, 0, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusOpen {
		return nil, 0, apperror.NewConflictError(fmt.Sprintf("Order in status %s cannot accept payments", order.Status))
	}

	remaining := receipt.RemainingBalance(order)
	if remaining == 0 {
		return nil, 0, apperror.ErrOrderFullyPaid
	}
	return order, remaining, nil
}

// finalizeIfPaid reloads the order and moves it to PAID when succeeded
// payments cover the total.
func (s *PaymentService) finalizeIfPaid(ctx context.Context, order *entity.Order) error {
	s.invalidate(ctx, order.ID)

	fresh, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return err
	}
	if fresh == nil || fresh.Status != enum.OrderStatusOpen {
		return nil
	}
	if receipt.RemainingBalance(fresh) > 0 {
		return nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, fresh.ID, enum.OrderStatusPaid); err != nil {
		return err
	}
	s.invalidate(ctx, fresh.ID)

	previous := fresh.Status
	fresh.Status = enum.OrderStatusPaid
	if err := s.publisher.PublishOrderStatusChanged(ctx, fresh, previous); err != nil {
		s.logger.Warn("publish order paid failed", zap.Int64("order_id", fresh.ID), zap.Error(err))
	}

	s.logger.Info("order fully paid", zap.Int64("order_id", fresh.ID))
	return nil
}

func (s *PaymentService) invalidate(ctx context.Context, orderID int64) {
	if err := s.cache.Delete(ctx, orderID); err != nil {
		s.logger.Warn("order cache invalidation failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
}
