package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	infraRepo "github.com/sdp-labs/pos-api/internal/infrastructure/repository"
	"github.com/sdp-labs/pos-api/pkg/apperror"
)

func merchantCtx(id int64) context.Context {
	return infraRepo.WithMerchant(context.Background(), id)
}

func TestCreateGiftCard(t *testing.T) {
	repo := newFakeGiftCardRepo()
	svc := NewGiftCardService(repo, zap.NewNop())

	card, err := svc.CreateGiftCard(merchantCtx(1), &CreateGiftCardInput{InitialBalance: 5000})

	require.NoError(t, err)
	assert.Len(t, card.Code, 16)
	assert.True(t, ValidCode(card.Code), "issued codes carry a valid check digit")
	assert.Equal(t, int64(5000), card.InitialBalance)
	assert.Equal(t, int64(5000), card.CurrentBalance)
	assert.True(t, card.Active)
	assert.Equal(t, int64(1), card.MerchantID)
}

func TestCreateGiftCard_RequiresMerchantContext(t *testing.T) {
	svc := NewGiftCardService(newFakeGiftCardRepo(), zap.NewNop())

	_, err := svc.CreateGiftCard(context.Background(), &CreateGiftCardInput{InitialBalance: 5000})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateGiftCard_RejectsNonPositiveBalance(t *testing.T) {
	svc := NewGiftCardService(newFakeGiftCardRepo(), zap.NewNop())

	_, err := svc.CreateGiftCard(merchantCtx(1), &CreateGiftCardInput{InitialBalance: 0})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestCreateGiftCard_InvalidExpiryRejected(t *testing.T) {
	svc := NewGiftCardService(newFakeGiftCardRepo(), zap.NewNop())

	bad := "tomorrow-ish"
	_, err := svc.CreateGiftCard(merchantCtx(1), &CreateGiftCardInput{InitialBalance: 100, ExpiryDate: &bad})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestGetGiftCard_CodeValidationBeforeLookup(t *testing.T) {
	repo := newFakeGiftCardRepo()
	svc := NewGiftCardService(repo, zap.NewNop())

	// Malformed codes never reach the repository
	_, err := svc.GetGiftCard(merchantCtx(1), "123")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	// 16 digits with a wrong check digit
	_, err = svc.GetGiftCard(merchantCtx(1), "4242424242424241")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	// Well-formed but unknown
	_, err = svc.GetGiftCard(merchantCtx(1), "4242424242424242")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestDeactivateGiftCard(t *testing.T) {
	repo := newFakeGiftCardRepo()
	svc := NewGiftCardService(repo, zap.NewNop())

	card, err := svc.CreateGiftCard(merchantCtx(1), &CreateGiftCardInput{InitialBalance: 5000})
	require.NoError(t, err)

	deactivated, err := svc.DeactivateGiftCard(merchantCtx(1), card.Code)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	stored, _ := repo.GetByCode(context.Background(), card.Code)
	assert.False(t, stored.Active)
	assert.Equal(t, int64(5000), stored.CurrentBalance, "deactivation leaves the balance on record")
}

func TestValidCode(t *testing.T) {
	assert.True(t, ValidCode("4242424242424242"))
	assert.False(t, ValidCode("4242424242424241"), "wrong check digit")
	assert.False(t, ValidCode("42424242424242"), "too short")
	assert.False(t, ValidCode("424242424242424242"), "too long")
	assert.False(t, ValidCode("4242-4242-4242-42"), "non-numeric")
	assert.False(t, ValidCode(""))
}

func TestGeneratedCodesAreUniqueEnough(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Len(t, code, 16)
		assert.True(t, ValidCode(code))
		assert.False(t, seen[code], "collision in 50 draws points at a broken generator")
		seen[code] = true
	}
}
