package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/internal/terminal"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// fakeOrderRepo keeps orders in memory, reattaching payments from the shared
// payment store on every read so reloads observe new tenders.
type fakeOrderRepo struct {
	orders   map[int64]*entity.Order
	payments *fakePaymentRepo
	nextID   int64
}

func newFakeOrderRepo(payments *fakePaymentRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*entity.Order), payments: payments, nextID: 1}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	order.ID = r.nextID
	r.nextID++
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	stored, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	order := *stored
	if r.payments != nil {
		order.Payments = r.payments.forOrder(id)
	}
	return &order, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	stored := *order
	r.orders[order.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id int64) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, merchantID int64, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	for _, o := range r.orders {
		orders = append(orders, *o)
	}
	return orders, int64(len(orders)), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id int64, status enum.OrderStatus) error {
	stored, ok := r.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	stored.Status = status
	return nil
}

func (r *fakeOrderRepo) UpdateTotals(ctx context.Context, id int64, subtotal, taxAmount, discountAmount, total int64) error {
	stored, ok := r.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	stored.Subtotal = subtotal
	stored.TaxAmount = taxAmount
	stored.DiscountAmount = discountAmount
	stored.Total = total
	return nil
}

type fakePaymentRepo struct {
	payments []entity.Payment
	nextID   int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	payment.ID = r.nextID
	r.nextID++
	r.payments = append(r.payments, *payment)
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	for i := range r.payments {
		if r.payments[i].ID == id {
			p := r.payments[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (*entity.Payment, error) {
	for i := range r.payments {
		if r.payments[i].ProviderPaymentID != nil && *r.payments[i].ProviderPaymentID == providerPaymentID {
			p := r.payments[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	for i := range r.payments {
		if r.payments[i].ID == payment.ID {
			r.payments[i] = *payment
			return nil
		}
	}
	return errors.New("payment not found")
}

func (r *fakePaymentRepo) UpdateStatus(ctx context.Context, id int64, status enum.PaymentStatus) error {
	for i := range r.payments {
		if r.payments[i].ID == id {
			r.payments[i].Status = status
			return nil
		}
	}
	return errors.New("payment not found")
}

func (r *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID int64) ([]entity.Payment, error) {
	return r.forOrder(orderID), nil
}

func (r *fakePaymentRepo) forOrder(orderID int64) []entity.Payment {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out
}

type fakeGiftCardRepo struct {
	cards map[string]*entity.GiftCard
}

func newFakeGiftCardRepo() *fakeGiftCardRepo {
	return &fakeGiftCardRepo{cards: make(map[string]*entity.GiftCard)}
}

func (r *fakeGiftCardRepo) Create(ctx context.Context, card *entity.GiftCard) error {
	stored := *card
	r.cards[card.Code] = &stored
	return nil
}

func (r *fakeGiftCardRepo) GetByCode(ctx context.Context, code string) (*entity.GiftCard, error) {
	stored, ok := r.cards[code]
	if !ok {
		return nil, nil
	}
	card := *stored
	return &card, nil
}

func (r *fakeGiftCardRepo) Update(ctx context.Context, card *entity.GiftCard) error {
	stored := *card
	r.cards[card.Code] = &stored
	return nil
}

func (r *fakeGiftCardRepo) List(ctx context.Context, merchantID int64, params *pagination.PaginationParams, activeOnly bool) ([]entity.GiftCard, int64, error) {
	var out []entity.GiftCard
	for _, c := range r.cards {
		if c.MerchantID != merchantID {
			continue
		}
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeRefundRepo struct {
	refunds       []entity.Refund
	nextID        int64
	createdStatus enum.RefundStatus
}

func newFakeRefundRepo() *fakeRefundRepo {
	return &fakeRefundRepo{nextID: 1}
}

func (r *fakeRefundRepo) Create(ctx context.Context, refund *entity.Refund) error {
	refund.ID = r.nextID
	r.nextID++
	r.createdStatus = refund.Status
	r.refunds = append(r.refunds, *refund)
	return nil
}

func (r *fakeRefundRepo) Update(ctx context.Context, refund *entity.Refund) error {
	for i := range r.refunds {
		if r.refunds[i].ID == refund.ID {
			r.refunds[i] = *refund
			return nil
		}
	}
	return errors.New("refund not found")
}

func (r *fakeRefundRepo) GetByID(ctx context.Context, id int64) (*entity.Refund, error) {
	for i := range r.refunds {
		if r.refunds[i].ID == id {
			ref := r.refunds[i]
			return &ref, nil
		}
	}
	return nil, nil
}

func (r *fakeRefundRepo) GetByOrderID(ctx context.Context, orderID int64) ([]entity.Refund, error) {
	var out []entity.Refund
	for _, ref := range r.refunds {
		if ref.OrderID == orderID {
			out = append(out, ref)
		}
	}
	return out, nil
}

// fakeProvider stands in for the card terminal provider.
type fakeProvider struct {
	intentErr  error
	cancelErr  error
	refundErr  error
	intents    int
	refunded   []string
	lastAmount int64
}

func (p *fakeProvider) CreateIntent(ctx context.Context, amount, tip int64, currency string) (*terminal.Intent, error) {
	if p.intentErr != nil {
		return nil, p.intentErr
	}
	p.intents++
	p.lastAmount = amount + tip
	return &terminal.Intent{
		ID:       "pi_" + strconv.Itoa(p.intents),
		Amount:   amount + tip,
		Currency: currency,
		Status:   terminal.StatusRequiresAction,
	}, nil
}

func (p *fakeProvider) CancelIntent(ctx context.Context, intentID string) (*terminal.Intent, error) {
	if p.cancelErr != nil {
		return nil, p.cancelErr
	}
	return &terminal.Intent{ID: intentID, Status: terminal.StatusCanceled}, nil
}

func (p *fakeProvider) CreateRefund(ctx context.Context, intentID string, amount int64) (*terminal.RefundResult, error) {
	if p.refundErr != nil {
		return nil, p.refundErr
	}
	p.refunded = append(p.refunded, intentID)
	return &terminal.RefundResult{ID: "re_" + intentID, Amount: amount, Status: terminal.StatusSucceeded}, nil
}

// fakePublisher records which order events were emitted.
type fakePublisher struct {
	created       int
	statusChanged int
	refunded      int
	lastStatus    enum.OrderStatus
}

func (p *fakePublisher) PublishOrderCreated(ctx context.Context, order *entity.Order) error {
	p.created++
	return nil
}

func (p *fakePublisher) PublishOrderStatusChanged(ctx context.Context, order *entity.Order, previousStatus enum.OrderStatus) error {
	p.statusChanged++
	p.lastStatus = order.Status
	return nil
}

func (p *fakePublisher) PublishOrderRefunded(ctx context.Context, order *entity.Order, refund *entity.Refund) error {
	p.refunded++
	return nil
}

func (p *fakePublisher) Close() error { return nil }
