package model

import (
	"gorm.io/gorm"
)

// Favorite links a user to a cafe. The row's existence is the whole state.
type Favorite struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_cafe_favorite"`
	CafeID uint `json:"cafe_id" gorm:"not null;uniqueIndex:idx_user_cafe_favorite"`
}
