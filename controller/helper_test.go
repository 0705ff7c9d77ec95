package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafehub/database"
	"cafehub/model"
	"cafehub/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the handlers the same way route.CafeRoutes does,
// against a fresh in-memory store.
func newTestRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	db := database.InitTestDatabase()

	router := gin.New()
	api := router.Group("/api")

	api.POST("/auth/register", Register)
	api.POST("/auth/login", Login)
	api.POST("/auth/refresh", RefreshTokenFunc)

	api.GET("/cafes", GetCafesByLocation)
	api.GET("/cafes/ranking", GetCafesForRanking)
	api.GET("/cafes/:id", GetCafeByID)
	api.POST("/contacts", CreateContact)

	authed := api.Group("")
	authed.Use(utils.AuthMiddleware())
	{
		authed.POST("/cafes/:id/ratings", SubmitRating)
		authed.POST("/cafes/:id/favorites", AddFavorite)
		authed.DELETE("/cafes/:id/favorites", RemoveFavorite)
		authed.POST("/cafes/:id/comments", PostComment)

		authed.POST("/admin/cafes", CreateCafe)
		authed.PUT("/admin/cafes/:id", UpdateCafe)
		authed.DELETE("/admin/cafes/:id", DeleteCafe)
		authed.POST("/admin/cafes/import", BulkAddCafes)
		authed.GET("/admin/cafes/recent", GetRecentCafes)
		authed.GET("/admin/contacts", GetContacts)
		authed.POST("/admin/uploadImages", UploadImages)
	}

	return db, router
}

func createTestUser(t *testing.T, db *gorm.DB, name string, role model.UserRole) (model.User, string) {
	t.Helper()

	user := model.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}

	access, _, err := utils.GenerateTokens(string(role), user.ID)
	if err != nil {
		t.Fatalf("failed to generate token for %s: %v", name, err)
	}

	return user, access
}

func createTestCafe(t *testing.T, db *gorm.DB, name, city, district string) model.Cafe {
	t.Helper()

	cafe := model.Cafe{Name: name, City: city, District: district}
	if err := db.Create(&cafe).Error; err != nil {
		t.Fatalf("failed to create cafe %s: %v", name, err)
	}
	return cafe
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func cafePath(cafe model.Cafe, suffix string) string {
	return fmt.Sprintf("/api/cafes/%d%s", cafe.ID, suffix)
}

type uploadFile struct {
	field   string
	name    string
	content []byte
}

func doMultipart(t *testing.T, router *gin.Engine, path string, files []uploadFile, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, file := range files {
		part, err := mw.CreateFormFile(file.field, file.name)
		if err != nil {
			t.Fatalf("failed to create form file %s: %v", file.name, err)
		}
		if _, err := part.Write(file.content); err != nil {
			t.Fatalf("failed to write form file %s: %v", file.name, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
