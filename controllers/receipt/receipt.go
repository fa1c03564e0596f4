// Package receiptControllers stores uploaded proof-of-payment files.
// Orders and club memberships reference the returned URL.
package receiptControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/models"
	"gorm.io/gorm"
)

var allowedReceiptExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".pdf":  true,
}

func receiptsDir() string {
	dir := os.Getenv("UPLOADS_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return filepath.Join(dir, "receipts")
}

// POST /uploads/receipts
// Accepts a multipart "receipt" field (image or PDF), saves it under
// the uploads tree and records it, returning the public URL.
func UploadReceipt(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("receipt")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No receipt uploaded"})
			return
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if !allowedReceiptExts[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt must be an image or a PDF"})
			return
		}

		if err := os.MkdirAll(receiptsDir(), os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		base := strings.TrimSuffix(filepath.Base(fileHeader.Filename), filepath.Ext(fileHeader.Filename))
		base = strings.ReplaceAll(base, " ", "_")
		filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
		savePath := filepath.Join(receiptsDir(), filename)

		if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save receipt"})
			return
		}

		fileURL := fmt.Sprintf("/uploads/receipts/%s", filename)
		receipt, err := models.SaveReceipt(db, filename, fileURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record receipt"})
			return
		}

		c.JSON(http.StatusCreated, receipt)
	}
}

// GET /admin/receipts
func GetReceipts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		receipts, err := models.GetAllReceipts(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch receipts"})
			return
		}
		c.JSON(http.StatusOK, receipts)
	}
}
