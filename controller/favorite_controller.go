package controller

import (
	"errors"
	"net/http"

	"cafehub/database"
	"cafehub/model"
	"cafehub/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddFavorite marks a cafe as favorited by the caller. Adding twice is a
// conflict, not a no-op; the unique index on (user_id, cafe_id) is what
// detects the duplicate.
func AddFavorite(c *gin.Context) {
	userID, ok := utils.CallerID(c)
	if !ok {
		return
	}

	cafeID, ok := parseCafeID(c)
	if !ok {
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

	favorite := model.Favorite{UserID: userID, CafeID: cafeID}
	if err := db.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "Cafe is already in favorites",
			})
			return
		}
		storeFailure(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Cafe added to favorites",
	})
}

// RemoveFavorite deletes the caller's favorite row for the cafe. Removing
// a favorite that does not exist is a NotFound.
func RemoveFavorite(c *gin.Context) {
	userID, ok := utils.CallerID(c)
	if !ok {
		return
	}

	cafeID, ok := parseCafeID(c)
	if !ok {
		return
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	db := database.DB.WithContext(ctx)

	var favorite model.Favorite
	if err := db.Where("user_id = ? AND cafe_id = ?", userID, cafeID).First(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Favorite not found",
			})
		} else {
			storeFailure(c, err)
		}
		return
	}

	if err := db.Delete(&favorite).Error; err != nil {
		storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cafe removed from favorites",
	})
}
