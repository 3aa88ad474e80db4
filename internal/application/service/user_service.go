package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/sdp-labs/pos-api/internal/domain/entity"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	"github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/pkg/apperror"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// UserService handles employee account management within a merchant.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateEmployeeInput represents the employee creation input
type CreateEmployeeInput struct {
	Name       string
	Email      string
	Password   string
	MerchantID int64
}

// CreateEmployee creates an EMPLOYEE account scoped to a merchant.
func (s *UserService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         enum.RoleEmployee,
		MerchantID:   &input.MerchantID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers returns users, scoped to a merchant unless merchantID is nil.
func (s *UserService) ListUsers(ctx context.Context, merchantID *int64, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	return s.userRepo.List(ctx, merchantID, params, search)
}

// DeleteUser removes an employee account. Owner accounts cannot be deleted
// this way.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	if user.Role != enum.RoleEmployee {
		return apperror.NewConflictError("Only employee accounts can be deleted")
	}
	return s.userRepo.Delete(ctx, id)
}
