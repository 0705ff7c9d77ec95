package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cafehub/database"
	"cafehub/model"
	"cafehub/ranking"
	"cafehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type contactInfoInput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

var allowedContactTypes = map[model.ContactType]bool{
	model.ContactPhone:     true,
	model.ContactEmail:     true,
	model.ContactWebsite:   true,
	model.ContactInstagram: true,
	model.ContactFacebook:  true,
	model.ContactTwitter:   true,
}

// GetCafesByLocation lists cafes matching city and district exactly.
// Both parameters are required; matching is case-insensitive.
func GetCafesByLocation(c *gin.Context) {
	city := c.Query("city")
	district := c.Query("district")
	if city == "" || district == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "City and district parameters are required",
		})
		return
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	var cafes []model.Cafe
	err := database.DB.WithContext(ctx).
		Preload("Images").
		Preload("Ratings").
		Where("city_key = ? AND district_key = ?", model.LocationKey(city), model.LocationKey(district)).
		Find(&cafes).Error
	if err != nil {
		storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cafes,
	})
}

// GetCafesForRanking lists cafes ordered by descending average rating.
// The optional city+district pair narrows the set; either alone is ignored.
func GetCafesForRanking(c *gin.Context) {
	city := c.Query("city")
	district := c.Query("district")

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	query := database.DB.WithContext(ctx).
		Preload("Images").
		Preload("Ratings").
		Order("created_at DESC")

	if city != "" && district != "" {
		query = query.Where("city_key = ? AND district_key = ?", model.LocationKey(city), model.LocationKey(district))
	}

	var cafes []model.Cafe
	if err := query.Find(&cafes).Error; err != nil {
		storeFailure(c, err)
		return
	}

	ranked := ranking.Rank(cafes)
	top, rest := ranking.TopSplit(ranked)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ranked,
		"top":     top,
		"rest":    rest,
	})
}

// GetCafeByID returns the full detail view: images, ratings and comments
// with their users, favorites and contact infos.
func GetCafeByID(c *gin.Context) {
	cafeID, ok := parseCafeID(c)
	if !ok {
		return
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	cafe, err := loadCafeDetail(database.DB.WithContext(ctx), cafeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Cafe not found",
			})
		} else {
			storeFailure(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cafeDetailView(cafe),
	})
}

func CreateCafe(c *gin.Context) {
	if !utils.RequireRole(c, model.RoleAdmin) {
		return
	}

	type Request struct {
		Name          string             `json:"name" binding:"required"`
		City          string             `json:"city" binding:"required"`
		District      string             `json:"district" binding:"required"`
		Category      string             `json:"category"`
		Description   string             `json:"description"`
		GoogleMapsURL string             `json:"google_maps_url"`
		Images        []string           `json:"images"`
		ContactInfos  []contactInfoInput `json:"contact_infos"`
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Name, city and district are required",
		})
		return
	}

	contactInfos, err := buildContactInfos(req.ContactInfos)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	cafe := model.Cafe{
		Name:          req.Name,
		City:          req.City,
		District:      req.District,
		Category:      req.Category,
		Description:   req.Description,
		GoogleMapsURL: req.GoogleMapsURL,
		ContactInfos:  contactInfos,
	}
	for _, url := range req.Images {
		if url == "" {
			continue
		}
		cafe.Images = append(cafe.Images, model.Image{URL: url})
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	tx := database.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Unexpected error occurred",
			})
		}
	}()

	if err := tx.Create(&cafe).Error; err != nil {
		tx.Rollback()
		storeFailure(c, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		storeFailure(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Cafe created successfully",
		"data":    cafe,
	})
}

func UpdateCafe(c *gin.Context) {
	if !utils.RequireRole(c, model.RoleAdmin) {
		return
	}

	cafeID, ok := parseCafeID(c)
	if !ok {
		return
	}

	type Request struct {
		Name          *string            `json:"name"`
		City          *string            `json:"city"`
		District      *string            `json:"district"`
		Category      *string            `json:"category"`
		Description   *string            `json:"description"`
		GoogleMapsURL *string            `json:"google_maps_url"`
		Images        []string           `json:"images"`
		ContactInfos  []contactInfoInput `json:"contact_infos"`
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload"})
		return
	}

	newContactInfos, err := buildContactInfos(req.ContactInfos)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	tx := database.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Unexpected error occurred",
			})
		}
	}()

	var cafe model.Cafe
	if err := tx.First(&cafe, cafeID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cafe not found"})
		} else {
			storeFailure(c, err)
		}
		return
	}

	if req.Name != nil {
		cafe.Name = *req.Name
	}
	if req.City != nil {
		cafe.City = *req.City
	}
	if req.District != nil {
		cafe.District = *req.District
	}
	if req.Category != nil {
		cafe.Category = *req.Category
	}
	if req.Description != nil {
		cafe.Description = *req.Description
	}
	if req.GoogleMapsURL != nil {
		cafe.GoogleMapsURL = *req.GoogleMapsURL
	}

	if req.ContactInfos != nil {
		if err := tx.Where("cafe_id = ?", cafe.ID).Delete(&model.ContactInfo{}).Error; err != nil {
			tx.Rollback()
			storeFailure(c, err)
			return
		}
		for i := range newContactInfos {
			newContactInfos[i].CafeID = cafe.ID
		}
		if len(newContactInfos) > 0 {
			if err := tx.Create(&newContactInfos).Error; err != nil {
				tx.Rollback()
				storeFailure(c, err)
				return
			}
		}
		cafe.ContactInfos = newContactInfos
	}

	if req.Images != nil {
		if err := tx.Where("cafe_id = ?", cafe.ID).Delete(&model.Image{}).Error; err != nil {
			tx.Rollback()
			storeFailure(c, err)
			return
		}
		var newImages []model.Image
		for _, url := range req.Images {
			if url == "" {
				continue
			}
			newImages = append(newImages, model.Image{CafeID: cafe.ID, URL: url})
		}
		if len(newImages) > 0 {
			if err := tx.Create(&newImages).Error; err != nil {
				tx.Rollback()
				storeFailure(c, err)
				return
			}
		}
		cafe.Images = newImages
	}

	if err := tx.Save(&cafe).Error; err != nil {
		tx.Rollback()
		storeFailure(c, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cafe updated successfully",
		"data":    cafe,
	})
}

// DeleteCafe removes the cafe together with everything it owns.
func DeleteCafe(c *gin.Context) {
	if !utils.RequireRole(c, model.RoleAdmin) {
		return
	}

	cafeID, ok := parseCafeID(c)
	if !ok {
		return
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	tx := database.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Unexpected error occurred",
			})
		}
	}()

	var cafe model.Cafe
	if err := tx.First(&cafe, cafeID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Cafe not found"})
		} else {
			storeFailure(c, err)
		}
		return
	}

	for _, owned := range []interface{}{
		&model.Image{}, &model.ContactInfo{}, &model.Rating{}, &model.Comment{}, &model.Favorite{},
	} {
		if err := tx.Where("cafe_id = ?", cafe.ID).Delete(owned).Error; err != nil {
			tx.Rollback()
			storeFailure(c, err)
			return
		}
	}

	if err := tx.Delete(&cafe).Error; err != nil {
		tx.Rollback()
		storeFailure(c, err)
		return
	}

	if err := tx.Commit().Error; err != nil {
		storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cafe deleted successfully",
		"data":    gin.H{"cafe_id": cafe.ID},
	})
}

// BulkAddCafes imports cafes from an Excel sheet with columns
// name, city, district, category, description. Invalid rows are skipped.
func BulkAddCafes(c *gin.Context) {
	if !utils.RequireRole(c, model.RoleAdmin) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Excel file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Unable to open Excel file"})
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to parse Excel file"})
		return
	}

	rows, err := xl.GetRows("Sheet1")
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Excel must have at least one row of data"})
		return
	}

	var cafes []model.Cafe
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}

		name := strings.TrimSpace(row[0])
		city := strings.TrimSpace(row[1])
		district := strings.TrimSpace(row[2])
		if name == "" || city == "" || district == "" {
			continue
		}

		cafe := model.Cafe{
			Name:     name,
			City:     city,
			District: district,
		}
		if len(row) > 3 {
			cafe.Category = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			cafe.Description = strings.TrimSpace(row[4])
		}

		cafes = append(cafes, cafe)
	}

	if len(cafes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No valid rows found"})
		return
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	if err := database.DB.WithContext(ctx).Create(&cafes).Error; err != nil {
		storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bulk cafe import successful",
		"count":   len(cafes),
	})
}

// GetRecentCafes returns the five newest cafes for the admin dashboard.
func GetRecentCafes(c *gin.Context) {
	if !utils.RequireRole(c, model.RoleAdmin) {
		return
	}

	ctx, cancel := database.RequestContext(c.Request.Context())
	defer cancel()

	var cafes []model.Cafe
	err := database.DB.WithContext(ctx).
		Preload("Images").
		Order("created_at DESC").
		Limit(5).
		Find(&cafes).Error
	if err != nil {
		storeFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cafes,
	})
}

func parseCafeID(c *gin.Context) (uint, bool) {
	id := c.Param("id")
	cafeID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid cafe ID format",
		})
		return 0, false
	}
	return uint(cafeID), true
}

func buildContactInfos(inputs []contactInfoInput) ([]model.ContactInfo, error) {
	var infos []model.ContactInfo
	for _, in := range inputs {
		contactType := model.ContactType(strings.ToUpper(in.Type))
		if !allowedContactTypes[contactType] {
			return nil, fmt.Errorf("invalid contact type: %s", in.Type)
		}
		if in.Value == "" {
			continue
		}
		infos = append(infos, model.ContactInfo{Type: contactType, Value: in.Value})
	}
	return infos, nil
}

func loadCafeDetail(db *gorm.DB, cafeID uint) (model.Cafe, error) {
	var cafe model.Cafe
	err := db.
		Preload("Images").
		Preload("Ratings.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.User").
		Preload("Favorites").
		Preload("ContactInfos").
		First(&cafe, cafeID).Error
	return cafe, err
}

// cafeDetailView decorates the record with derived aggregates and the
// per-type contact lookup.
func cafeDetailView(cafe model.Cafe) gin.H {
	return gin.H{
		"cafe":           cafe,
		"average_rating": ranking.CafeAverage(cafe),
		"rating_count":   len(cafe.Ratings),
		"contact_map":    cafe.ContactMap(),
	}
}
