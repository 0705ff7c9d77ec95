package model

import (
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	gorm.Model
	Name         string   `json:"name"`
	Email        string   `json:"email" gorm:"uniqueIndex"`
	Password     string   `json:"-"`
	ProfileImage string   `json:"profile_image"`
	Role         UserRole `json:"role"`
}
