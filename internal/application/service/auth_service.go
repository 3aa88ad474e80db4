package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/pkg/apperror"
	"github.com/sdp-labs/pos-api/pkg/utils"
)

// AuthService handles registration, login and token refresh.
type AuthService struct {
	userRepo     repository.UserRepository
	merchantRepo repository.MerchantRepository
	jwtManager   *utils.JWTManager
	logger       *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	merchantRepo repository.MerchantRepository,
	jwtManager *utils.JWTManager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		merchantRepo: merchantRepo,
		jwtManager:   jwtManager,
		logger:       logger.Named("auth-service"),
	}
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	BusinessName string
}

// TokenPair holds an access and refresh token
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates a business owner account together with its merchant.
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, *TokenPair, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         enum.RoleBusinessOwner,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	merchant := &entity.Merchant{
		Name:    input.BusinessName,
		OwnerID: user.ID,
	}
	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, nil, err
	}

	user.MerchantID = &merchant.ID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("business owner registered",
		zap.Int64("user_id", user.ID),
		zap.Int64("merchant_id", merchant.ID),
	)
	return user, tokens, nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entity.User) (*TokenPair, error) {
	var merchantID int64
	if user.MerchantID != nil {
		merchantID = *user.MerchantID
	}

	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role), merchantID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
