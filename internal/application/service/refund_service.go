package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/internal/events"
	"github.com/sdp-labs/pos-api/internal/infrastructure/cache"
	"github.com/sdp-labs/pos-api/internal/terminal"
	"github.com/sdp-labs/pos-api/pkg/apperror"
)

// RefundService reverses fully paid orders. Only SUCCEEDED payments are
// refundable; gift card payments are skipped (the card balance is not
// restored), cash refunds complete immediately, and card refunds go back
// through the provider. The breakdown records the per-payment outcome.
type RefundService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	refundRepo  repository.RefundRepository
	provider    terminal.Client
	cache       cache.OrderCache
	publisher   events.Publisher
	logger      *zap.Logger
}

// NewRefundService creates a new refund service
func NewRefundService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	refundRepo repository.RefundRepository,
	provider terminal.Client,
	orderCache cache.OrderCache,
	publisher events.Publisher,
	logger *zap.Logger,
) *RefundService {
	return &RefundService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		refundRepo:  refundRepo,
		provider:    provider,
		cache:       orderCache,
		publisher:   publisher,
		logger:      logger.Named("refund-service"),
	}
}

const (
	refundEntryCompleted = "completed"
	refundEntryFailed    = "failed"
)

// RefundOrder refunds a PAID order in full and moves it to REFUNDED.
func (s *RefundService) RefundOrder(ctx context.Context, orderID int64, reason string) (*entity.Refund, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	switch order.Status {
	case enum.OrderStatusRefunded:
		return nil, apperror.ErrOrderRefunded
	case enum.OrderStatusPaid:
		// refundable
	default:
		return nil, apperror.ErrOrderNotPaid
	}

	var refundable []*entity.Payment
	for i := range order.Payments {
		p := &order.Payments[i]
		if p.Status != enum.PaymentStatusSucceeded {
			continue
		}
		// Gift card tenders are not refundable; the balance stays spent.
		if p.Type == enum.PaymentTypeGiftCard {
			continue
		}
		refundable = append(refundable, p)
	}
	if len(refundable) == 0 {
		return nil, apperror.ErrNoRefundablePayment
	}

	// The refund row is persisted as PROCESSING up front, then finalized
	// once every payment has been settled.
	refund := &entity.Refund{
		OrderID: orderID,
		Status:  enum.RefundStatusProcessing,
		Reason:  reason,
	}
	if err := s.refundRepo.Create(ctx, refund); err != nil {
		return nil, err
	}

	finalStatus := enum.RefundStatusCompleted
	for _, p := range refundable {
		entry := entity.RefundBreakdown{
			OriginalPaymentID: fmt.Sprintf("pay_%d", p.ID),
			PaymentType:       strings.ToLower(string(p.Type)),
			Amount:            p.Amount,
			RefundStatus:      refundEntryCompleted,
		}

		if p.Type == enum.PaymentTypeCard {
			entry = s.refundCardPayment(ctx, p, entry)
		}

		if entry.RefundStatus == refundEntryCompleted {
			refund.TotalAmount += entry.Amount
			p.Status = enum.PaymentStatusRefunded
			if err := s.paymentRepo.Update(ctx, p); err != nil {
				return nil, err
			}
		} else {
			finalStatus = enum.RefundStatusFailed
		}

		refund.Breakdown = append(refund.Breakdown, entry)
	}

	refund.Status = finalStatus
	if err := s.refundRepo.Update(ctx, refund); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusRefunded); err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, orderID); err != nil {
		s.logger.Warn("order cache invalidation failed", zap.Int64("order_id", orderID), zap.Error(err))
	}

	order.Status = enum.OrderStatusRefunded
	if err := s.publisher.PublishOrderRefunded(ctx, order, refund); err != nil {
		s.logger.Warn("publish order refunded failed", zap.Int64("order_id", orderID), zap.Error(err))
	}

	s.logger.Info("order refunded",
		zap.Int64("order_id", orderID),
		zap.Int64("refund_id", refund.ID),
		zap.Int64("total", refund.TotalAmount),
		zap.String("status", string(refund.Status)),
	)
	return refund, nil
}

// refundCardPayment refunds one card payment through the provider, marking
// the breakdown entry failed when the provider declines.
func (s *RefundService) refundCardPayment(ctx context.Context, p *entity.Payment, entry entity.RefundBreakdown) entity.RefundBreakdown {
	if p.ProviderPaymentID == nil {
		entry.RefundStatus = refundEntryFailed
		return entry
	}

	result, err := s.provider.CreateRefund(ctx, *p.ProviderPaymentID, p.Amount)
	if err != nil {
		s.logger.Error("provider refund failed",
			zap.Int64("payment_id", p.ID),
			zap.String("provider_payment_id", *p.ProviderPaymentID),
			zap.Error(err),
		)
		entry.RefundStatus = refundEntryFailed
		return entry
	}

	entry.ProviderRefundID = &result.ID
	return entry
}

// ListRefunds returns the refunds recorded for an order.
func (s *RefundService) ListRefunds(ctx context.Context, orderID int64) ([]entity.Refund, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.refundRepo.GetByOrderID(ctx, orderID)
}
