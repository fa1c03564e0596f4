package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/auth"
	cartControllers "github.com/shaher200/roeia-est/controllers/cart"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		// Phone + password signup/signin; merges the guest cart on success
		authGroup.POST("/custom", auth.CustomAuthHandler(db, cartControllers.MergeGuestCart))

		// Admin-provisioned accounts
		authGroup.POST("/admin-signup", auth.AdminSignupHandler(db))

		authGroup.POST("/guest", auth.CreateGuestUser(db))
	}
}
