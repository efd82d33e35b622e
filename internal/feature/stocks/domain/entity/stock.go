// Package entity defines the domain entities for the stocks feature.
package entity

import "time"

// Stock is a tradable instrument and its latest quote.
// Price fields are written only through the stocks usecase; settlement and
// portfolio valuation read them.
type Stock struct {
	ID uint `gorm:"primaryKey"`

	// Symbol is the ticker, stored upper-case and unique across exchanges.
	Symbol   string `gorm:"size:32;not null;uniqueIndex"`
	Name     string `gorm:"size:255;not null"`
	Exchange string `gorm:"size:16;not null;index"`

	CurrentPrice float64 `gorm:"not null;default:0"`
	DayHigh      float64 `gorm:"not null;default:0"`
	DayLow       float64 `gorm:"not null;default:0"`

	LastUpdated time.Time `gorm:"autoUpdateTime"`
}
