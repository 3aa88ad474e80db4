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
	infraRepo "github.com/sdp-labs/pos-api/internal/infrastructure/repository"
	"github.com/sdp-labs/pos-api/internal/receipt"
	"github.com/sdp-labs/pos-api/pkg/apperror"
)

// OrderService handles order lifecycle and line item operations. The server
// is authoritative for order totals: every item or discount mutation ends
// with a recompute-and-persist of the cost columns.
type OrderService struct {
	orderRepo    repository.OrderRepository
	itemRepo     repository.OrderItemRepository
	productRepo  repository.ProductRepository
	taxRateRepo  repository.TaxRateRepository
	discountRepo repository.DiscountRepository
	cache        cache.OrderCache
	publisher    events.Publisher
	logger       *zap.Logger
	now          nowFunc
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
	taxRateRepo repository.TaxRateRepository,
	discountRepo repository.DiscountRepository,
	orderCache cache.OrderCache,
	publisher events.Publisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		productRepo:  productRepo,
		taxRateRepo:  taxRateRepo,
		discountRepo: discountRepo,
		cache:        orderCache,
		publisher:    publisher,
		logger:       logger.Named("order-service"),
		now:          defaultNow,
	}
}

// AddItemInput represents a line item to add to an order
type AddItemInput struct {
	ProductID    int64
	Quantity     int
	VariationIDs []int64
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	Items []AddItemInput
}

// CreateOrder creates a new OPEN order, optionally pre-populated with items.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Merchant context required")
	}

	order := &entity.Order{
		MerchantID: merchantID,
		Status:     enum.OrderStatusOpen,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range input.Items {
		if _, err := s.addItem(ctx, order, &item); err != nil {
			return nil, err
		}
	}

	if err := s.recomputeTotals(ctx, order.ID); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("merchant_id", merchantID),
		zap.Int("items", len(input.Items)),
	)

	created, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if err := s.publisher.PublishOrderCreated(ctx, created); err != nil {
		s.logger.Warn("publish order created failed", zap.Int64("order_id", order.ID), zap.Error(err))
	}
	return created, nil
}

// GetOrder returns the order with items, variations and payments loaded.
// Reads go through the cache first.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if err := s.cache.Set(ctx, order); err != nil {
		s.logger.Warn("order cache set failed", zap.Int64("order_id", id), zap.Error(err))
	}
	return order, nil
}

// ListOrders returns the merchant's orders with filtering and pagination.
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok && !params.SkipMerchantFilter {
		return nil, 0, apperror.NewBadRequestError("Merchant context required")
	}
	return s.orderRepo.List(ctx, merchantID, params)
}

// GetReceipt returns the order together with its reconciled receipt totals.
func (s *OrderService) GetReceipt(ctx context.Context, id int64) (*entity.Order, receipt.Totals, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, receipt.Totals{}, err
	}
	return order, receipt.Compute(order), nil
}

// AddItem adds a line item to an OPEN order, snapshotting the product's
// price, tax rate and selected variations.
func (s *OrderService) AddItem(ctx context.Context, orderID int64, input *AddItemInput) (*entity.OrderItem, error) {
	order, err := s.mutableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item, err := s.addItem(ctx, order, input)
	if err != nil {
		return nil, err
	}

	if err := s.recomputeTotals(ctx, orderID); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *OrderService) addItem(ctx context.Context, order *entity.Order, input *AddItemInput) (*entity.OrderItem, error) {
	if input.Quantity < 1 {
		return nil, apperror.NewBadRequestError("Quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %d", input.ProductID))
	}

	item := &entity.OrderItem{
		OrderID:  order.ID,
		ItemID:   product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: input.Quantity,
	}

	if product.TaxRateID != nil {
		taxRate, err := s.taxRateRepo.GetByID(ctx, *product.TaxRateID)
		if err != nil {
			return nil, err
		}
		if taxRate != nil && taxRate.Active {
			item.TaxRateID = &taxRate.ID
			item.AppliedTaxRate = taxRate.Rate
		}
	}

	variationByID := make(map[int64]*entity.ProductVariation, len(product.Variations))
	for i := range product.Variations {
		variationByID[product.Variations[i].ID] = &product.Variations[i]
	}
	for _, vid := range input.VariationIDs {
		v, exists := variationByID[vid]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product variation %d", vid))
		}
		id := v.ID
		item.Variations = append(item.Variations, entity.OrderItemVariation{
			ProductVariationID: &id,
			Name:               v.Name,
			PriceOffset:        v.PriceOffset,
		})
	}

	item.AppliedDiscountAmount = s.productDiscountFor(ctx, order.MerchantID, item)

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// productDiscountFor finds a currently valid PRODUCT-scope discount for the
// item's product and computes its amount against the line gross.
func (s *OrderService) productDiscountFor(ctx context.Context, merchantID int64, item *entity.OrderItem) int64 {
	discounts, err := s.discountRepo.List(ctx, merchantID, true)
	if err != nil {
		s.logger.Warn("discount lookup failed", zap.Error(err))
		return 0
	}

	line := receipt.Line(*item)
	now := s.now()
	for i := range discounts {
		d := &discounts[i]
		if d.Scope != enum.DiscountScopeProduct || d.ProductID == nil {
			continue
		}
		if *d.ProductID == item.ItemID && d.IsValidAt(now) {
			return d.AmountFor(line.Gross)
		}
	}
	return 0
}

// UpdateItemQuantity changes a line item's quantity on an OPEN order. The
// item-level discount is recomputed against the new line gross.
func (s *OrderService) UpdateItemQuantity(ctx context.Context, orderID, itemID int64, quantity int) (*entity.OrderItem, error) {
	if quantity < 1 {
		return nil, apperror.NewBadRequestError("Quantity must be at least 1")
	}

	order, err := s.mutableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item, err := s.orderItem(ctx, orderID, itemID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	item.AppliedDiscountAmount = s.productDiscountFor(ctx, order.MerchantID, item)
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err := s.recomputeTotals(ctx, orderID); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a line item from an OPEN order.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	if _, err := s.mutableOrder(ctx, orderID); err != nil {
		return err
	}

	item, err := s.orderItem(ctx, orderID, itemID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		return err
	}
	return s.recomputeTotals(ctx, orderID)
}

// ApplyDiscount attaches an ORDER-scope discount to an OPEN order.
func (s *OrderService) ApplyDiscount(ctx context.Context, orderID int64, discountID string) (*entity.Order, error) {
	order, err := s.mutableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	discount, err := s.discountRepo.GetByID(ctx, discountID)
	if err != nil {
		return nil, err
	}
	if discount == nil || discount.MerchantID != order.MerchantID {
		return nil, apperror.NewNotFoundError("Discount")
	}
	if discount.Scope != enum.DiscountScopeOrder {
		return nil, apperror.NewBadRequestError("Discount is not applicable to orders")
	}
	if !discount.IsValidAt(s.now()) {
		return nil, apperror.NewConflictError("Discount is not currently valid")
	}

	order.DiscountID = &discount.ID
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.recomputeTotals(ctx, orderID); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}

// RemoveDiscount detaches the order-level discount from an OPEN order.
func (s *OrderService) RemoveDiscount(ctx context.Context, orderID int64) (*entity.Order, error) {
	order, err := s.mutableOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.DiscountID = nil
	order.DiscountAmount = 0
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err := s.recomputeTotals(ctx, orderID); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}

// CancelOrder moves an OPEN order to CANCELLED.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int64) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	previous := order.Status
	if !previous.CanTransitionTo(enum.OrderStatusCancelled) {
		return nil, apperror.NewConflictError(fmt.Sprintf("Cannot cancel order in status %s", previous))
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, enum.OrderStatusCancelled); err != nil {
		return nil, err
	}
	s.invalidate(ctx, orderID)

	order.Status = enum.OrderStatusCancelled
	if err := s.publisher.PublishOrderStatusChanged(ctx, order, previous); err != nil {
		s.logger.Warn("publish order cancelled failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
	return order, nil
}

// mutableOrder loads the order and verifies it still accepts item and
// discount mutations.
func (s *OrderService) mutableOrder(ctx context.Context, orderID int64) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusOpen {
		return nil, apperror.NewConflictError(fmt.Sprintf("Order in status %s cannot be modified", order.Status))
	}
	return order, nil
}

func (s *OrderService) orderItem(ctx context.Context, orderID, itemID int64) (*entity.OrderItem, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrderID != orderID {
		return nil, apperror.NewNotFoundError("Order item")
	}
	return item, nil
}

// recomputeTotals rebuilds the order's cost columns from its current items
// and order-level discount, persists them and invalidates the cache.
func (s *OrderService) recomputeTotals(ctx context.Context, orderID int64) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	items, err := s.itemRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	var orderDiscount int64
	if order.DiscountID != nil {
		discount, err := s.discountRepo.GetByID(ctx, *order.DiscountID)
		if err != nil {
			return err
		}
		if discount != nil {
			var itemDiscounts int64
			var subtotal int64
			for _, it := range items {
				subtotal += receipt.Line(it).Gross
				itemDiscounts += it.AppliedDiscountAmount
			}
			orderDiscount = discount.AmountFor(subtotal - itemDiscounts)
		}
	}

	cost := receipt.ComputeCost(items, orderDiscount)
	if err := s.orderRepo.UpdateTotals(ctx, orderID, cost.Subtotal, cost.TaxAmount, cost.DiscountAmount, cost.Total); err != nil {
		return err
	}

	s.invalidate(ctx, orderID)
	return nil
}

func (s *OrderService) invalidate(ctx context.Context, orderID int64) {
	if err := s.cache.Delete(ctx, orderID); err != nil {
		s.logger.Warn("order cache invalidation failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
}
