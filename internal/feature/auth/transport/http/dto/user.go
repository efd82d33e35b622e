package dto

import (
	"time"

	"brokerage_backend/internal/feature/auth/domain/entity"
)

// UpdateProfileReq is the body of PUT /users/me. Omitted fields are left unchanged.
type UpdateProfileReq struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	PANNumber *string `json:"pan_number"`
	Phone     *string `json:"phone"`
}

// FundsReq is the body of POST /users/funds.
type FundsReq struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// UserRes is the public view of a user. The password hash is never included.
type UserRes struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PANNumber *string   `json:"pan_number"`
	Phone     *string   `json:"phone"`
	IsActive  bool      `json:"is_active"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserRes converts a user entity to its response form.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		PANNumber: u.PANNumber,
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
	}
}
