package routes

import (
	"github.com/gin-gonic/gin"
	bookControllers "github.com/shaher200/roeia-est/controllers/book"
	cartControllers "github.com/shaher200/roeia-est/controllers/cart"
	clubControllers "github.com/shaher200/roeia-est/controllers/club"
	drawControllers "github.com/shaher200/roeia-est/controllers/draw"
	receiptControllers "github.com/shaher200/roeia-est/controllers/receipt"
	"github.com/shaher200/roeia-est/middleware"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers the endpoints the storefront hits without
// signing in: catalog browsing, the guest cart, receipt upload, the
// knowledge club, and the prize-draw winners list.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	// ──────────────── Catalog ────────────────
	r.GET("/books", bookControllers.GetBooks(db))
	r.GET("/books/:id", bookControllers.GetBookByID(db))
	r.GET("/categories", bookControllers.GetAllCategoriesWithBooks(db))

	// ──────────────── Guest Cart ────────────────
	guestCart := r.Group("/guest/cart")
	{
		guestCart.GET("", cartControllers.GetGuestCart())
		guestCart.POST("", cartControllers.AddGuestCartLine(db))
		guestCart.PUT("", cartControllers.UpdateGuestCartLine())
		guestCart.DELETE("", cartControllers.DeleteGuestCartLine())
	}

	// ──────────────── Payment Receipts ────────────────
	r.POST("/receipts", receiptControllers.UploadReceipt(db))

	// ──────────────── Knowledge Club ────────────────
	// Works for both signed-in and anonymous visitors.
	r.POST("/club/join", middleware.OptionalToken, clubControllers.JoinClub(db))

	// ──────────────── Prize Draws ────────────────
	r.GET("/draws/winners", drawControllers.GetWinners(db))
}
