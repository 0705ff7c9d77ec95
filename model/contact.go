package model

import (
	"gorm.io/gorm"
)

// Contact is one message from the contact-us form.
type Contact struct {
	gorm.Model
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
