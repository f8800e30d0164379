package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/newsblog/newsblog/config"
	"github.com/newsblog/newsblog/models"
)

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dir := t.TempDir()
	config.SetForTesting(config.AppConfig{
		JWTSecret:          "test-secret",
		GinMode:            "test",
		GinPath:            filepath.Join(dir, "gin.log"),
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 6000,
	})

	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Article{}, &models.Comment{},
		&models.Feedback{}, &models.PageView{},
	))

	return SetupRouter(db)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := decodeBody(t, w)
	data, _ := body["data"].(map[string]interface{})
	require.NotNil(t, data, w.Body.String())
	return data
}

func TestHealthEndpoint(t *testing.T) {
	h := setupTestRouter(t)
	w := doJSON(t, h, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["code"])
}

func TestUnknownRoute(t *testing.T) {
	h := setupTestRouter(t)
	w := doJSON(t, h, http.MethodGet, "/api/v1/nope", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.EqualValues(t, 40400, decodeBody(t, w)["code"])
}

func TestAuthAndArticleFlow(t *testing.T) {
	h := setupTestRouter(t)

	register := func(name, email string) {
		w := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"name": name, "email": email,
			"password": "hunter22", "confirm_password": "hunter22",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	login := func(email string) string {
		w := doJSON(t, h, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email": email, "password": "hunter22",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		token, _ := dataOf(t, w)["token"].(string)
		require.NotEmpty(t, token)
		return token
	}

	register("Ann", "ann@example.com")

	// Re-registration with the same address fails at the form boundary.
	w := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Ann again", "email": "ann@example.com",
		"password": "hunter22", "confirm_password": "hunter22",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 40022, decodeBody(t, w)["code"])

	w = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "ann@example.com", "password": "wrong-password",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	annToken := login("ann@example.com")

	w = doJSON(t, h, http.MethodGet, "/api/v1/auth/me", nil, annToken)
	require.Equal(t, http.StatusOK, w.Code)
	user, _ := dataOf(t, w)["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "Ann", user["name"])
	assert.NotContains(t, w.Body.String(), "password", "credentials never leave the server")

	articleBody := map[string]string{
		"title":    "Hello World!!",
		"body":     strings.Repeat("All work and no play makes Jack a dull boy. ", 2),
		"category": models.CategoryArt,
	}

	// Publishing requires a session.
	w = doJSON(t, h, http.MethodPost, "/api/v1/articles", articleBody, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/v1/articles", articleBody, annToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	article, _ := dataOf(t, w)["article"].(map[string]interface{})
	require.NotNil(t, article)
	assert.Equal(t, "Hello World!!", article["title"])
	assert.Equal(t, "Ann", article["author_name"])
	articlePath := fmt.Sprintf("/api/v1/articles/%d", int(article["id"].(float64)))

	w = doJSON(t, h, http.MethodGet, "/api/v1/articles", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	items, _ := dataOf(t, w)["items"].([]interface{})
	require.Len(t, items, 1)

	// Anyone may comment, no session needed.
	w = doJSON(t, h, http.MethodPost, articlePath+"/comments", map[string]string{
		"author_name": "Passerby", "body": "great piece",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Another user may read but not touch Ann's article.
	register("Bob", "bob@example.com")
	bobToken := login("bob@example.com")

	w = doJSON(t, h, http.MethodPut, articlePath, articleBody, bobToken)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, h, http.MethodDelete, articlePath, nil, bobToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, h, http.MethodGet, articlePath, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	detail := dataOf(t, w)
	comments, _ := detail["comments"].([]interface{})
	assert.Len(t, comments, 1)

	// Logout revokes the token for subsequent requests.
	w = doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", nil, annToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, h, http.MethodGet, "/api/v1/auth/me", nil, annToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.EqualValues(t, 40104, decodeBody(t, w)["code"])
}

func TestCategoriesEndpoint(t *testing.T) {
	h := setupTestRouter(t)
	w := doJSON(t, h, http.MethodGet, "/api/v1/categories", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cats, _ := dataOf(t, w)["categories"].([]interface{})
	assert.Equal(t, []interface{}{"Art", "Fashion", "Miscellaneous", "Politics"}, cats)
}

func TestFeedbackEndpoint(t *testing.T) {
	h := setupTestRouter(t)

	w := doJSON(t, h, http.MethodPost, "/api/v1/feedback", map[string]string{
		"name": "Ann", "email": "ann@example.com", "message": "hi",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs, _ := dataOf(t, w)["errors"].(map[string]interface{})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "message")
	assert.Len(t, errs, 1)

	w = doJSON(t, h, http.MethodPost, "/api/v1/feedback", map[string]string{
		"name": "Ann", "email": "ann@example.com", "message": "the comment box is hard to find",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestStatsEndpoint(t *testing.T) {
	h := setupTestRouter(t)

	w := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Ann", "email": "ann@example.com",
		"password": "hunter22", "confirm_password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// One successful GET is recorded by the page-view counter; POSTs and the
	// stats endpoint itself are not.
	w = doJSON(t, h, http.MethodGet, "/api/v1/articles", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/v1/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := dataOf(t, w)
	assert.EqualValues(t, 1, stats["user_count"])
	assert.EqualValues(t, 0, stats["article_count"])
	assert.EqualValues(t, 1, stats["today_views"], "the articles listing hit counts toward today")
}

func TestArticleDetailNotFound(t *testing.T) {
	h := setupTestRouter(t)
	w := doJSON(t, h, http.MethodGet, "/api/v1/articles/999", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}
