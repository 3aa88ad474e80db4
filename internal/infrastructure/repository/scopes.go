package repository

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey string

const (
	// MerchantIDKey is the context key for merchant ID
	MerchantIDKey ctxKey = "merchant_id"
	// SkipMerchantScopeKey is the context key for skipping merchant scope (super admin)
	SkipMerchantScopeKey ctxKey = "skip_merchant_scope"
)

// MerchantScope returns a GORM scope that filters by merchant
// This should be applied to all queries for merchant-scoped entities
// If SkipMerchantScopeKey is true in context (super admin), returns all records
func MerchantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skipScope, ok := ctx.Value(SkipMerchantScopeKey).(bool); ok && skipScope {
			return db // Return unfiltered query for super admins
		}

		merchantID, ok := ctx.Value(MerchantIDKey).(int64)
		if !ok {
			// Fail-safe: return no results if merchant context missing
			// This prevents accidental cross-merchant data access
			return db.Where("1 = 0")
		}
		return db.Where("merchant_id = ?", merchantID)
	}
}

// WithSkipMerchantScope adds skip merchant scope flag to context (for super admins)
func WithSkipMerchantScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipMerchantScopeKey, skip)
}

// WithMerchant adds merchant ID to context
func WithMerchant(ctx context.Context, merchantID int64) context.Context {
	return context.WithValue(ctx, MerchantIDKey, merchantID)
}

// GetMerchantID extracts merchant ID from context
func GetMerchantID(ctx context.Context) (int64, bool) {
	merchantID, ok := ctx.Value(MerchantIDKey).(int64)
	return merchantID, ok
}
