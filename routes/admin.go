package routes

import (
	"github.com/gin-gonic/gin"
	bookControllers "github.com/shaher200/roeia-est/controllers/book"
	cartControllers "github.com/shaher200/roeia-est/controllers/cart"
	clubControllers "github.com/shaher200/roeia-est/controllers/club"
	drawControllers "github.com/shaher200/roeia-est/controllers/draw"
	receiptControllers "github.com/shaher200/roeia-est/controllers/receipt"
	userControllers "github.com/shaher200/roeia-est/controllers/user"
	"github.com/shaher200/roeia-est/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.PUT("/users/:id/active", userControllers.SetUserActive(db))

		// ─────────── Book Management ───────────
		bookAdmin := adminGroup.Group("/books")
		{
			bookAdmin.POST("", bookControllers.CreateBook(db))
			bookAdmin.PUT("/:id", bookControllers.UpdateBook(db))
			bookAdmin.GET("", bookControllers.GetBooks(db))
			bookAdmin.DELETE("/:id", bookControllers.DeleteBook(db))
			bookAdmin.POST("/import-excel", bookControllers.ImportBooksFromExcel(db))
			bookAdmin.GET("/export-excel", bookControllers.ExportBooksToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", bookControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", bookControllers.UpdateCategory(db))
			categoryAdmin.GET("", bookControllers.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", bookControllers.DeleteCategory(db))
		}

		// ─────────── Knowledge Club ───────────
		clubAdmin := adminGroup.Group("/club")
		{
			clubAdmin.GET("/memberships", clubControllers.GetAllMemberships(db))
			clubAdmin.PUT("/memberships/:id/status", clubControllers.UpdateMembershipStatus(db))
		}

		// ─────────── Prize Draws ───────────
		drawAdmin := adminGroup.Group("/draws")
		{
			drawAdmin.POST("/winners", drawControllers.CreateWinner(db))
			drawAdmin.DELETE("/winners/:id", drawControllers.DeleteWinner(db))
		}

		// ─────────── Receipts ───────────
		adminGroup.GET("/receipts", receiptControllers.GetReceipts(db))

		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}
