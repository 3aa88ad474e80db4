package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/request"
	"github.com/sdp-labs/pos-api/internal/presentation/http/dto/response"
	"github.com/sdp-labs/pos-api/pkg/pagination"
)

// UserHandler handles employee management HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateEmployee creates an employee account for the caller's merchant
func (h *UserHandler) CreateEmployee(c *gin.Context) {
	var req request.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateEmployee(c.Request.Context(), &service.CreateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		MerchantID: GetMerchantID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created", user)
}

// List returns users. Super admins see all users; others see their
// merchant's staff.
func (h *UserHandler) List(c *gin.Context) {
	params := PaginationFromQuery(c)
	search := c.Query("search")

	var merchantID *int64
	if !IsSuperAdmin(c) {
		id := GetMerchantID(c)
		merchantID = &id
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), merchantID, params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Users retrieved", result)
}

// Get returns a single user
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved", user)
}

// Delete removes an employee account
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
