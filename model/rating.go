package model

import (
	"gorm.io/gorm"
)

// Rating holds one user's score for one cafe. The composite unique index
// on (user_id, cafe_id) is the authoritative guard against duplicates.
type Rating struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_cafe_rating"`
	CafeID uint `json:"cafe_id" gorm:"not null;uniqueIndex:idx_user_cafe_rating"`
	Value  int  `json:"rating" gorm:"not null;check:value >= 0 AND value <= 5"`
	User   User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
