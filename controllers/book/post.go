package bookControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/models"
	"gorm.io/gorm"
)

func uploadsDir() string {
	dir := os.Getenv("UPLOADS_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return dir
}

// saveUploadedImage stores a multipart image under uploads/<subdir> with
// a timestamped, space-free filename and returns the public URL.
func saveUploadedImage(c *gin.Context, field, subdir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", err
	}

	saveDir := filepath.Join(uploadsDir(), subdir)
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	base = strings.ReplaceAll(base, " ", "_")
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s", subdir, filename), nil
}

// CreateBook creates a new book with categories and an optional cover
// image upload.
func CreateBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		artitle := c.PostForm("artitle")
		author := c.PostForm("author")
		priceStr := c.PostForm("price")
		if artitle == "" || author == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "artitle, author and price are required"})
			return
		}

		etitle := c.PostForm("etitle")
		edescription := c.PostForm("edescription")
		ardescription := c.PostForm("ardescription")
		stockStr := c.PostForm("stock")
		categoryIDsStr := c.PostForm("category_ids")

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		var stock int
		if stockStr != "" {
			if s, parseErr := strconv.Atoi(stockStr); parseErr == nil {
				stock = s
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
		}

		var categories []models.Category
		if categoryIDsStr != "" {
			var parsedIDs []uint
			for _, tok := range strings.Split(categoryIDsStr, ",") {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				if id64, parseErr := strconv.ParseUint(tok, 10, 64); parseErr == nil {
					parsedIDs = append(parsedIDs, uint(id64))
				} else {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_ids format"})
					return
				}
			}
			if len(parsedIDs) > 0 {
				if err := db.Where("id IN ?", parsedIDs).Find(&categories).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
					return
				}
			}
		}

		var coverURL string
		if _, err := c.FormFile("cover"); err == nil {
			coverURL, err = saveUploadedImage(c, "cover", "books")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cover image"})
				return
			}
		}

		newBook := models.Book{
			ETitle:        etitle,
			ARTitle:       artitle,
			Author:        author,
			EDescription:  edescription,
			ARDescription: ardescription,
			Price:         price,
			CoverImage:    coverURL,
			Stock:         stock,
			Categories:    categories,
		}

		if err := db.Create(&newBook).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
			return
		}

		c.JSON(http.StatusCreated, newBook)
	}
}
