package drawControllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/models"
	"gorm.io/gorm"
)

// GET /draws/winners
// Public listing of published draw results. Phones are masked by the
// model's JSON marshalling.
func GetWinners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var winners []models.DrawWinner
		if err := db.Order("draw_date DESC").Find(&winners).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch winners"})
			return
		}
		c.JSON(http.StatusOK, winners)
	}
}

type CreateWinnerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Sponsor  string `json:"sponsor"`
	Prize    string `json:"prize" binding:"required"`
	DrawDate string `json:"draw_date"` // YYYY-MM-DD, defaults to today
}

// POST /admin/draws/winners
func CreateWinner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateWinnerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		drawDate := time.Now()
		if req.DrawDate != "" {
			parsed, err := time.Parse("2006-01-02", req.DrawDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "draw_date must be YYYY-MM-DD"})
				return
			}
			drawDate = parsed
		}

		winner := models.DrawWinner{
			Name:     strings.TrimSpace(req.Name),
			Phone:    req.Phone,
			Sponsor:  strings.TrimSpace(req.Sponsor),
			Prize:    req.Prize,
			DrawDate: drawDate,
		}
		if err := db.Create(&winner).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create winner"})
			return
		}
		c.JSON(http.StatusCreated, winner)
	}
}

// DELETE /admin/draws/winners/:id
func DeleteWinner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		result := db.Delete(&models.DrawWinner{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete winner"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Winner not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Winner deleted"})
	}
}
