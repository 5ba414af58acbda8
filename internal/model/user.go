package model

import "time"

// User represents a registered bank customer or banker.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsBanker     bool      `json:"isBanker" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`

	// Relations
	Accounts []Account `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}
