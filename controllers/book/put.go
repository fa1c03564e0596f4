package bookControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/models"
	"gorm.io/gorm"
)

// UpdateBook updates an existing book by ID. Accepts the same fields as
// CreateBook and an optional "cover" file; empty fields are left alone.
func UpdateBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
			return
		}

		var book models.Book
		if err := db.Preload("Categories").First(&book, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}

		if v := c.PostForm("etitle"); v != "" {
			book.ETitle = v
		}
		if v := c.PostForm("artitle"); v != "" {
			book.ARTitle = v
		}
		if v := c.PostForm("author"); v != "" {
			book.Author = v
		}
		if v := c.PostForm("edescription"); v != "" {
			book.EDescription = v
		}
		if v := c.PostForm("ardescription"); v != "" {
			book.ARDescription = v
		}
		if v := c.PostForm("price"); v != "" {
			if f, parseErr := strconv.ParseFloat(v, 64); parseErr == nil {
				book.Price = f
			}
		}
		if v := c.PostForm("stock"); v != "" {
			if s, parseErr := strconv.Atoi(v); parseErr == nil {
				book.Stock = s
			}
		}

		if categoryIDsStr := c.PostForm("category_ids"); categoryIDsStr != "" {
			var parsedIDs []uint
			for _, tok := range strings.Split(categoryIDsStr, ",") {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				if id64, parseErr := strconv.ParseUint(tok, 10, 64); parseErr == nil {
					parsedIDs = append(parsedIDs, uint(id64))
				}
			}
			if len(parsedIDs) > 0 {
				var categories []models.Category
				if err := db.Where("id IN ?", parsedIDs).Find(&categories).Error; err == nil {
					if err := db.Model(&book).Association("Categories").Replace(categories); err != nil {
						c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update categories"})
						return
					}
				}
			}
		}

		if _, err := c.FormFile("cover"); err == nil {
			coverURL, saveErr := saveUploadedImage(c, "cover", "books")
			if saveErr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cover image"})
				return
			}
			book.CoverImage = coverURL
		}

		if err := db.Save(&book).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
			return
		}

		c.JSON(http.StatusOK, book)
	}
}
