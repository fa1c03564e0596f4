package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/shaher200/roeia-est/controllers/cart"
	clubControllers "github.com/shaher200/roeia-est/controllers/club"
	userControllers "github.com/shaher200/roeia-est/controllers/user"
	"github.com/shaher200/roeia-est/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))               // GET /user/cart
			cartGroup.POST("/", cartControllers.AddCartLine(db))              // POST /user/cart
			cartGroup.PUT("/:book_id", cartControllers.UpdateCartLine(db))    // PUT /user/cart/:book_id
			cartGroup.DELETE("/:book_id", cartControllers.DeleteCartLine(db)) // DELETE /user/cart/:book_id
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))          // DELETE /user/cart
		}

		// ──────────────── Knowledge Club ────────────────
		userGroup.GET("/memberships", clubControllers.GetUserMemberships(db)) // GET /user/memberships
	}
}
