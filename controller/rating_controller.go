package controller

import (
	"errors"
	"net/http"

	"cafehub/database"
	"cafehub/model"
	"cafehub/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmitRating upserts the caller's score for a cafe, keyed directly on
// the (user_id, cafe_id) pair. The ON CONFLICT clause and the composite
// unique index make a concurrent first-time double submit collapse into
// one row.
func SubmitRating(c *gin.Context) {
	userID, ok := utils.CallerID(c)
	if !ok {
		return
	}

	cafeID, ok := parseCafeID(c)
	if !ok {
		return
	}

	type Request struct {
		Rating *int `json:"rating" binding:"required"`
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil || *req.Rating < 0 || *req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Rating must be an integer between 0 and 5",
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

	rating := model.Rating{
		UserID: userID,
		CafeID: cafeID,
		Value:  *req.Rating,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "cafe_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": *req.Rating}),
	}).Create(&rating).Error
	if err != nil {
		storeFailure(c, err)
		return
	}

	// The write stands even if the recompute read below fails; the client
	// then gets success with a degraded confirmation.
	updated, err := loadCafeDetail(db, cafeID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Rating saved, refresh to see updated totals",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Rating saved successfully",
		"data":    cafeDetailView(updated),
	})
}
