// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account holder.
// Balance is the cash available for trading; it is changed only by fund deposits and trade settlement.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"size:255;not null;index"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. It never stores plaintext passwords.
	Password string `gorm:"size:255;not null"`

	PANNumber *string `gorm:"column:pan_number;size:20"`
	Phone     *string `gorm:"size:32"`

	IsActive bool `gorm:"not null;default:true"`

	// Balance is non-negative after every committed trade.
	Balance float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
