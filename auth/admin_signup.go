package auth

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shaher200/roeia-est/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type adminSignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminSignupHandler serves POST /auth/admin-signup. It creates a
// ready-to-use account with a placeholder email synthesized from the
// phone number, then upserts the profile row. The profile write is
// best-effort; only the account insert can fail the request.
func AdminSignupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminSignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		if !ValidPhone(req.Phone) {
			log.Printf("Phone validation failed: %s", req.Phone)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone format. Must start with 01 and be 11 digits"})
			return
		}
		if !ValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be exactly 6 digits"})
			return
		}

		var existing models.User
		err := db.Where("phone = ?", req.Phone).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrDuplicatePhone.Error()})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		user := models.User{
			ID:           uuid.NewString(),
			Phone:        req.Phone,
			Name:         req.Name,
			Email:        fmt.Sprintf("%s@temp.com", req.Phone),
			PasswordHash: HashPassword(req.Password),
			Role:         models.RoleUser,
			IsActive:     true,
			Cart:         models.Cart{},
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("User creation error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create user"})
			return
		}

		profile := models.Profile{
			UserID: user.ID,
			Name:   req.Name,
			Phone:  req.Phone,
			Role:   models.RoleUser,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "role"}),
		}).Create(&profile).Error; err != nil {
			// Not fatal: just log server-side
			log.Printf("Profile upsert error: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
