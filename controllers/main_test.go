package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amravati-mc/e-library-backend/config"
	"github.com/amravati-mc/e-library-backend/models"
	"github.com/amravati-mc/e-library-backend/routes"
	"github.com/amravati-mc/e-library-backend/ws"
)

// newTestEnv builds the full router against a fresh in-memory database.
func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(config.AllModels()...))

	r := gin.New()
	r = routes.SetupRouter(r, db, ws.NewHub(db))
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerUser registers through the API and returns the session cookies.
func registerUser(t *testing.T, r *gin.Engine, name, email string) []*http.Cookie {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

// createAdmin inserts an admin user directly and logs in through the API.
func createAdmin(t *testing.T, r *gin.Engine, db *gorm.DB, email string) []*http.Cookie {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	admin := models.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	require.NoError(t, db.Create(&admin).Error)

	w := doJSON(t, r, "POST", "/api/auth/login", map[string]string{
		"email":    email,
		"password": "admin123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return w.Result().Cookies()
}

func createBook(t *testing.T, db *gorm.DB, title string) models.Book {
	t.Helper()
	book := models.Book{Title: title, Author: "Test Author"}
	require.NoError(t, db.Create(&book).Error)
	return book
}
