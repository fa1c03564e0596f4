// Package clubControllers handles the knowledge club: a one-time paid
// subscription granting discounts and monthly draw entries for two
// years. Each extra subscription by the same person is another draw
// chance.
package clubControllers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/models"
	"gorm.io/gorm"
)

var clubPhonePattern = regexp.MustCompile(`^(010|011|012|015)\d{8}$`)

type JoinClubRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	ReceiptURL string `json:"receipt_url"`
}

// membershipTerm is fixed by the club terms: two years from payment.
const membershipTerm = 2 * 365 * 24 * time.Hour

// POST /club/join
func JoinClub(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinClubRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		if !clubPhonePattern.MatchString(req.Phone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone must be 11 digits starting with 010, 011, 012 or 015"})
			return
		}
		if strings.TrimSpace(req.ReceiptURL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "a payment receipt is required"})
			return
		}

		membership := models.KnowledgeClubMembership{
			Name:       strings.TrimSpace(req.Name),
			Phone:      req.Phone,
			Status:     models.MembershipStatusActive,
			ReceiptURL: req.ReceiptURL,
			CreatedAt:  time.Now(),
			ExpiresAt:  time.Now().Add(membershipTerm),
		}

		// Attach the account when the request carries a valid token;
		// memberships without an account are accepted too.
		if userIDVal, exists := c.Get("user_id"); exists {
			if userID, ok := userIDVal.(string); ok && userID != "" {
				membership.UserID = &userID
			}
		}

		if err := db.Create(&membership).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create membership"})
			return
		}

		c.JSON(http.StatusCreated, membership)
	}
}

// GET /admin/club/memberships
func GetAllMemberships(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var memberships []models.KnowledgeClubMembership
		query := db.Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if err := query.Find(&memberships).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch memberships"})
			return
		}
		c.JSON(http.StatusOK, memberships)
	}
}

type UpdateMembershipStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /admin/club/memberships/:id/status
func UpdateMembershipStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req UpdateMembershipStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		switch models.MembershipStatus(req.Status) {
		case models.MembershipStatusActive, models.MembershipStatusExpired, models.MembershipStatusCancelled:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership status"})
			return
		}

		result := db.Model(&models.KnowledgeClubMembership{}).Where("id = ?", id).
			Update("status", models.MembershipStatus(req.Status))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update membership"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Membership status updated"})
	}
}

// GET /user/memberships
func GetUserMemberships(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var memberships []models.KnowledgeClubMembership
		if err := db.Where("user_id = ?", userIDVal.(string)).
			Order("created_at DESC").Find(&memberships).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch memberships"})
			return
		}
		c.JSON(http.StatusOK, memberships)
	}
}
