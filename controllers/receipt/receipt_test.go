package receiptControllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Receipt{}))
	return db
}

func uploadReceipt(t *testing.T, r *gin.Engine, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("receipt", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake file contents"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/receipts", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadReceiptSavesFileAndRecord(t *testing.T) {
	t.Setenv("UPLOADS_DIR", t.TempDir())
	db := newTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/receipts", UploadReceipt(db))

	w := uploadReceipt(t, r, "دفع انستاباي.jpg")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.FileURL, "/uploads/receipts/"))
	assert.True(t, strings.HasSuffix(resp.FileName, ".jpg"))
	assert.NotContains(t, resp.FileName, " ")

	// file landed on disk
	saved := filepath.Join(os.Getenv("UPLOADS_DIR"), "receipts", resp.FileName)
	_, err := os.Stat(saved)
	assert.NoError(t, err)

	// and is recorded in the DB
	var count int64
	db.Model(&models.Receipt{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUploadReceiptRejectsUnsupportedTypes(t *testing.T) {
	t.Setenv("UPLOADS_DIR", t.TempDir())
	db := newTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/receipts", UploadReceipt(db))

	for _, name := range []string{"receipt.exe", "receipt.svg", "receipt"} {
		w := uploadReceipt(t, r, name)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}

	var count int64
	db.Model(&models.Receipt{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
