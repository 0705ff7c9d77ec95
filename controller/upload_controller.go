package controller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"cafehub/model"
	"cafehub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 5 << 20

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// UploadImages stores the posted image files under the uploads directory
// and returns their public URLs in upload order.
func UploadImages(c *gin.Context) {
	if !utils.RequireRole(c, model.RoleAdmin) {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Multipart form is required"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No files uploaded"})
		return
	}

	// Validate the whole batch before writing anything, so a rejected
	// upload leaves no partial files behind.
	for _, file := range files {
		if file.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   fmt.Sprintf("%s exceeds the 5MB limit", file.Filename),
			})
			return
		}
		if !allowedImageExts[strings.ToLower(filepath.Ext(file.Filename))] {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid file type, only JPG/JPEG/PNG allowed",
			})
			return
		}
	}

	dir := uploadDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create upload directory",
		})
		return
	}

	var urls []string
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		newFileName := uuid.NewString() + ext
		filePath := filepath.Join(dir, newFileName)

		if err := c.SaveUploadedFile(file, filePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to save file",
			})
			return
		}

		urls = append(urls, "/uploads/"+newFileName)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    urls,
	})
}
