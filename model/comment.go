package model

import (
	"gorm.io/gorm"
)

// Comment is append-only: no edit or delete path exists.
type Comment struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"not null;index"`
	CafeID  uint   `json:"cafe_id" gorm:"not null;index"`
	Content string `json:"content" gorm:"not null"`
	User    User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
