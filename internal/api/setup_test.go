package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"futsal_club/internal/domain"
	"futsal_club/internal/middleware"
	"futsal_club/internal/storage"
	"futsal_club/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Per-test in-memory database to avoid cross-test interference
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.AttendanceLog{},
		&domain.TreasuryTransaction{},
		&domain.WeeklyDue{},
		&domain.Notification{},
		&domain.ActivityLog{},
	))
	return db
}

// setupRouter wires the attendance and treasury routes the way cmd/server
// does, minus Redis (nil client behaves as a cache miss).
func setupRouter(t *testing.T, db *gorm.DB) (*gin.Engine, *storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)

	r := gin.New()
	authGroup := r.Group("")
	authGroup.Use(middleware.JWTAuthMiddleware(testSecret))
	authGroup.POST("/attendance/scan", ScanHandler(db, nil))
	authGroup.GET("/attendance", ListMyAttendanceHandler(db))
	authGroup.POST("/treasury/submit", SubmitTreasuryHandler(db, store))
	authGroup.GET("/treasury", ListTreasuryHandler(db))
	authGroup.GET("/treasury/summary", TreasurySummaryHandler(db, nil))

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(testSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/treasury/pending", ListPendingHandler(db))
	adminGroup.POST("/treasury/:id/approve", ApproveHandler(db, nil))
	adminGroup.DELETE("/treasury/:id", DeleteTreasuryHandler(db, nil, store))
	adminGroup.POST("/treasury", ManualEntryHandler(db, nil))
	adminGroup.GET("/dues", DuesGridHandler(db, nil))
	adminGroup.PUT("/players/:id/score", UpdateScoreHandler(db, nil))
	return r, store
}

// createUser inserts an account and returns it with a valid bearer token
func createUser(t *testing.T, db *gorm.DB, username, role string) (domain.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{Username: username, Password: string(hash), Role: role, FullName: username}
	require.NoError(t, db.Create(&user).Error)
	token, err := utils.GenerateJWT(user.ID, user.Role, testSecret)
	require.NoError(t, err)
	return user, token
}

// httpDo performs a JSON request against the test router
func httpDo(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// httpSubmitProof performs the multipart dues submission request
func httpSubmitProof(t *testing.T, r *gin.Engine, token, amount, category string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("amount", amount))
	require.NoError(t, mw.WriteField("category", category))
	fw, err := mw.CreateFormFile("proof", "transfer.jpg")
	require.NoError(t, err)
	_, err = io.WriteString(fw, "not-a-real-jpeg")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/treasury/submit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
