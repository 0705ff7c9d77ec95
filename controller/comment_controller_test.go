package controller

import (
	"net/http"
	"testing"
	"time"

	"cafehub/model"
)

func TestPostComment_AppendsAndReturnsDetail(t *testing.T) {
	db, router := newTestRouter(t)
	user, token := createTestUser(t, db, "yorumcu", model.RoleUser)
	cafe := createTestCafe(t, db, "Sohbet", "Ankara", "Çankaya")

	w := doJSON(t, router, http.MethodPost, cafePath(cafe, "/comments"), map[string]string{"content": "Çok güzel bir mekan"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var comments []model.Comment
	if err := db.Where("cafe_id = ?", cafe.ID).Find(&comments).Error; err != nil {
		t.Fatalf("failed to load comments: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("comment rows = %d, want 1", len(comments))
	}
	if comments[0].UserID != user.ID {
		t.Errorf("comment user = %d, want %d", comments[0].UserID, user.ID)
	}
	if comments[0].Content != "Çok güzel bir mekan" {
		t.Errorf("comment content = %q", comments[0].Content)
	}
}

func TestPostComment_Validation(t *testing.T) {
	db, router := newTestRouter(t)
	_, token := createTestUser(t, db, "sessiz", model.RoleUser)
	cafe := createTestCafe(t, db, "Eleştiri", "Ankara", "Çankaya")

	tests := []struct {
		name       string
		body       interface{}
		token      string
		path       string
		wantStatus int
	}{
		{name: "empty content", body: map[string]string{"content": ""}, token: token, path: cafePath(cafe, "/comments"), wantStatus: http.StatusBadRequest},
		{name: "whitespace content", body: map[string]string{"content": "   "}, token: token, path: cafePath(cafe, "/comments"), wantStatus: http.StatusBadRequest},
		{name: "missing content", body: map[string]string{}, token: token, path: cafePath(cafe, "/comments"), wantStatus: http.StatusBadRequest},
		{name: "unauthenticated", body: map[string]string{"content": "merhaba"}, token: "", path: cafePath(cafe, "/comments"), wantStatus: http.StatusUnauthorized},
		{name: "missing cafe", body: map[string]string{"content": "merhaba"}, token: token, path: "/api/cafes/99999/comments", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, tt.path, tt.body, tt.token)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestCafeDetail_CommentsNewestFirst(t *testing.T) {
	db, router := newTestRouter(t)
	user, _ := createTestUser(t, db, "tarihci", model.RoleUser)
	cafe := createTestCafe(t, db, "Kronoloji", "Ankara", "Çankaya")

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"oldest", "middle", "newest"} {
		comment := model.Comment{UserID: user.ID, CafeID: cafe.ID, Content: content}
		comment.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := db.Create(&comment).Error; err != nil {
			t.Fatalf("seed comment %q: %v", content, err)
		}
	}

	w := doJSON(t, router, http.MethodGet, cafePath(cafe, ""), nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	detail := data["cafe"].(map[string]interface{})
	comments := detail["comments"].([]interface{})

	if len(comments) != 3 {
		t.Fatalf("comments = %d, want 3", len(comments))
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		got := comments[i].(map[string]interface{})["content"].(string)
		if got != want {
			t.Errorf("comment %d = %q, want %q", i, got, want)
		}
	}
}
