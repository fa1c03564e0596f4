package bookControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ImportBooksFromExcel bulk-creates or updates catalog rows. Columns:
// ID, ETitle, ARTitle, Author, EDescription, ARDescription, Price,
// Stock, CoverImage, CategoryIDs. Rows with a missing Arabic title,
// author or unparsable price are skipped, not failed.
func ImportBooksFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			etitle := get(1)
			artitle := get(2)
			author := get(3)
			edesc := get(4)
			ardesc := get(5)
			price, priceErr := strconv.ParseFloat(get(6), 64)
			stock, _ := strconv.Atoi(get(7))
			cover := get(8)
			categoryIDStr := get(9)

			if artitle == "" || author == "" || priceErr != nil {
				skippedCount++
				continue
			}

			var categories []models.Category
			for _, part := range strings.Split(categoryIDStr, ",") {
				if id, parseErr := strconv.Atoi(strings.TrimSpace(part)); parseErr == nil {
					categories = append(categories, models.Category{ID: uint(id)})
				}
			}

			book := models.Book{
				ETitle:        etitle,
				ARTitle:       artitle,
				Author:        author,
				EDescription:  edesc,
				ARDescription: ardesc,
				Price:         price,
				Stock:         stock,
				CoverImage:    cover,
				Categories:    categories,
			}

			if idStr != "" {
				if id, parseErr := strconv.ParseUint(idStr, 10, 64); parseErr == nil {
					var existing models.Book
					if db.First(&existing, uint(id)).Error == nil {
						book.ID = existing.ID
						if err := db.Save(&book).Error; err != nil {
							skippedCount++
							continue
						}
						updatedCount++
						continue
					}
				}
			}

			if err := db.Create(&book).Error; err != nil {
				skippedCount++
				continue
			}
			createdCount++
		}

		c.JSON(http.StatusOK, gin.H{
			"created": createdCount,
			"updated": updatedCount,
			"skipped": skippedCount,
		})
	}
}

// GET /admin/books/export-excel
func ExportBooksToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var books []models.Book
		if err := db.Preload("Categories").Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Books")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "ETitle", "ARTitle", "Author", "EDescription", "ARDescription",
			"Price", "Stock", "CoverImage", "CategoryIDs", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, b := range books {
			row := sheet.AddRow()

			row.AddCell().SetValue(b.ID)
			row.AddCell().SetValue(b.ETitle)
			row.AddCell().SetValue(b.ARTitle)
			row.AddCell().SetValue(b.Author)
			row.AddCell().SetValue(b.EDescription)
			row.AddCell().SetValue(b.ARDescription)
			row.AddCell().SetValue(b.Price)
			row.AddCell().SetValue(b.Stock)
			row.AddCell().SetValue(b.CoverImage)

			var catIDs []string
			for _, cat := range b.Categories {
				catIDs = append(catIDs, strconv.Itoa(int(cat.ID)))
			}
			row.AddCell().SetValue(strings.Join(catIDs, ","))

			row.AddCell().SetValue(b.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(b.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=books.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
