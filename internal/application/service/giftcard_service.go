package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/theplant/luhn"
	"go.uber.org/zap"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	infraRepo "github.com/sdp-labs/pos-api/internal/infrastructure/repository"
	"github.com/sdp-labs/pos-api/pkg/apperror"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// GiftCardService manages stored-value cards. Codes are 16-digit numbers
// with a Luhn check digit so the POS client can reject typos before hitting
// the server.
type GiftCardService struct {
	giftCardRepo repository.GiftCardRepository
	logger       *zap.Logger
	now          nowFunc
}

// NewGiftCardService creates a new gift card service
func NewGiftCardService(giftCardRepo repository.GiftCardRepository, logger *zap.Logger) *GiftCardService {
	return &GiftCardService{
		giftCardRepo: giftCardRepo,
		logger:       logger.Named("giftcard-service"),
		now:          defaultNow,
	}
}

// CreateGiftCardInput represents the gift card creation input
type CreateGiftCardInput struct {
	InitialBalance int64
	ExpiryDate     *string
}

// CreateGiftCard issues a new card with a generated code.
func (s *GiftCardService) CreateGiftCard(ctx context.Context, input *CreateGiftCardInput) (*entity.GiftCard, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Merchant context required")
	}
	if input.InitialBalance <= 0 {
		return nil, apperror.NewBadRequestError("Initial balance must be positive")
	}

	expiry, err := parseTimePtr(input.ExpiryDate)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid expiry date")
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	card := &entity.GiftCard{
		Code:           code,
		InitialBalance: input.InitialBalance,
		CurrentBalance: input.InitialBalance,
		Active:         true,
		ExpiryDate:     expiry,
		MerchantID:     merchantID,
	}
	if err := s.giftCardRepo.Create(ctx, card); err != nil {
		return nil, err
	}

	s.logger.Info("gift card issued",
		zap.String("code", code),
		zap.Int64("merchant_id", merchantID),
		zap.Int64("balance", input.InitialBalance),
	)
	return card, nil
}

// GetGiftCard looks up a card by code after validating its check digit.
func (s *GiftCardService) GetGiftCard(ctx context.Context, code string) (*entity.GiftCard, error) {
	if !ValidCode(code) {
		return nil, apperror.NewBadRequestError("Invalid gift card code")
	}

	card, err := s.giftCardRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NewNotFoundError("Gift card")
	}
	return card, nil
}

// ListGiftCards returns the merchant's cards.
func (s *GiftCardService) ListGiftCards(ctx context.Context, params *pagination.PaginationParams, activeOnly bool) ([]entity.GiftCard, int64, error) {
	merchantID, ok := infraRepo.GetMerchantID(ctx)
	if !ok {
		return nil, 0, apperror.NewBadRequestError("Merchant context required")
	}
	return s.giftCardRepo.List(ctx, merchantID, params, activeOnly)
}

// DeactivateGiftCard manually deactivates a card, voiding its remaining
// balance for payment purposes.
func (s *GiftCardService) DeactivateGiftCard(ctx context.Context, code string) (*entity.GiftCard, error) {
	card, err := s.GetGiftCard(ctx, code)
	if err != nil {
		return nil, err
	}

	card.Active = false
	if err := s.giftCardRepo.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// ValidCode reports whether code is a well-formed Luhn-checked card number.
func ValidCode(code string) bool {
	if len(code) != 16 {
		return false
	}
	n, ok := new(big.Int).SetString(code, 10)
	if !ok || !n.IsInt64() {
		return false
	}
	return luhn.Valid(int(n.Int64()))
}

// uniqueCode generates a fresh 16-digit Luhn-valid code, retrying on the
// unlikely collision with an issued card.
func (s *GiftCardService) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateCode()
		if err != nil {
			return "", err
		}
		existing, err := s.giftCardRepo.GetByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", apperror.ErrInternalServer
}

func generateCode() (string, error) {
	// 15 random digits plus a Luhn check digit gives a 16-digit code.
	max := big.NewInt(0)
	max.SetString("900000000000000", 10)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	body := n.Int64() + 100000000000000 // keep a leading non-zero digit
	check := luhn.CalculateLuhn(int(body))
	return fmt.Sprintf("%d%d", body, check), nil
}
