package models

import "gorm.io/gorm"

// User represents a registered creator account.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Identity is the viewer identity supplied by the authentication layer.
// A nil *Identity means anonymous viewing.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
