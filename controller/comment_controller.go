package controller

import (
	"errors"
	"net/http"
	"strings"

	"cafehub/database"
	"cafehub/model"
	"cafehub/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PostComment appends a comment to a cafe. Comments are never edited or
// deleted; reads return them newest first.
func PostComment(c *gin.Context) {
	userID, ok := utils.CallerID(c)
	if !ok {
		return
	}

	cafeID, ok := parseCafeID(c)
	if !ok {
		return
	}

	type Request struct {
		Content string `json:"content"`
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Comment content is required",
		})
		return
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	db := database.DB.WithContext(ctx)

	var cafe model.Cafe
	if err := db.First(&cafe, cafeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cafe not found"})
		} else {
			storeFailure(c, err)
		}
		return
	}

	comment := model.Comment{
		UserID:  userID,
		CafeID:  cafeID,
		Content: strings.TrimSpace(req.Content),
	}
	if err := db.Create(&comment).Error; err != nil {
		storeFailure(c, err)
		return
	}

	updated, err := loadCafeDetail(db, cafeID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Comment saved, refresh to see it listed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Comment added successfully",
		"data":    cafeDetailView(updated),
	})
}
