package controller

import (
	"net/http"
	"strconv"

	"cafehub/database"
	"cafehub/model"
	"cafehub/utils"

	"github.com/gin-gonic/gin"
)

const contactsPageSize = 50

// CreateContact stores one contact-us message. Every field is required
// and gets its own validation message.
func CreateContact(c *gin.Context) {
	type Request struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload"})
		return
	}

	required := []struct {
		value string
		msg   string
	}{
		{req.Name, "Name field cannot be empty"},
		{req.Email, "Email field cannot be empty"},
		{req.Phone, "Phone field cannot be empty"},
		{req.Subject, "Subject field cannot be empty"},
		{req.Message, "Message field cannot be empty"},
	}
	for _, field := range required {
		if field.value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": field.msg})
			return
		}
	}

	contact := model.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	if err := database.DB.WithContext(ctx).Create(&contact).Error; err != nil {
		storeFailure(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Your message has been sent successfully",
	})
}

// GetContacts pages through contact messages for the admin inbox.
func GetContacts(c *gin.Context) {
	if !utils.RequireRole(c, model.RoleAdmin) {
		return
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	db := database.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&model.Contact{}).Count(&total).Error; err != nil {
		storeFailure(c, err)
		return
	}

	var contacts []model.Contact
	err = db.
		Order("created_at DESC").
		Offset((page - 1) * contactsPageSize).
		Limit(contactsPageSize).
		Find(&contacts).Error
	if err != nil {
		storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contacts,
		"total":   total,
		"page":    page,
	})
}
