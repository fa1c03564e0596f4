package cartControllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/cart"
	"github.com/shaher200/roeia-est/models"
	"gorm.io/gorm"
)

// Guest carts never touch the database: each guest gets a file-backed
// cart.Store under DATA_DIR/carts, the server-side stand-in for the
// storefront's local-storage cart.

// guestIDPattern matches the IDs CreateGuestUser issues. Anything else
// is rejected before it can reach the filesystem.
var guestIDPattern = regexp.MustCompile(`^guest_[0-9a-f]+$`)

// ValidGuestID reports whether guestID is a server-issued guest ID.
func ValidGuestID(guestID string) bool {
	return guestIDPattern.MatchString(guestID)
}

func requireGuestID(c *gin.Context, guestID string) bool {
	if !ValidGuestID(guestID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guest_id"})
		return false
	}
	return true
}

func guestCartPath(guestID string) string {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	return filepath.Join(dataDir, "carts", guestID+".json")
}

// OpenGuestStore loads (or starts) the cart for a guest ID.
func OpenGuestStore(guestID string) *cart.Store {
	return cart.NewStore(cart.NewFilePersistence(guestCartPath(guestID)))
}

type GuestCartInput struct {
	GuestID  string `json:"guest_id" binding:"required"`
	BookID   uint   `json:"book_id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// GET /guest/cart?guest_id=...
func GetGuestCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := c.Query("guest_id")
		if !requireGuestID(c, guestID) {
			return
		}

		store := OpenGuestStore(guestID)
		c.JSON(http.StatusOK, gin.H{
			"items":       store.Lines(),
			"total_items": store.TotalItems(),
			"total_price": store.TotalPrice(),
		})
	}
}

// POST /guest/cart
func AddGuestCartLine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input GuestCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !requireGuestID(c, input.GuestID) {
			return
		}

		var book models.Book
		if err := db.First(&book, "id = ?", input.BookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Book does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate book"})
			return
		}

		store := OpenGuestStore(input.GuestID)
		store.Add(cart.Line{
			BookID:     book.ID,
			Title:      book.ARTitle,
			Author:     book.Author,
			CoverImage: book.CoverImage,
			UnitPrice:  book.Price,
		}, input.Quantity)

		c.JSON(http.StatusOK, gin.H{"items": store.Lines()})
	}
}

// PUT /guest/cart
func UpdateGuestCartLine() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input GuestCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if !requireGuestID(c, input.GuestID) {
			return
		}

		store := OpenGuestStore(input.GuestID)
		store.UpdateQuantity(input.BookID, input.Quantity)
		c.JSON(http.StatusOK, gin.H{"items": store.Lines()})
	}
}

// DELETE /guest/cart?guest_id=...&book_id=... (book_id omitted clears the cart)
func DeleteGuestCartLine() gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := c.Query("guest_id")
		if !requireGuestID(c, guestID) {
			return
		}

		store := OpenGuestStore(guestID)
		if bookIDStr := c.Query("book_id"); bookIDStr != "" {
			bookID, err := strconv.ParseUint(bookIDStr, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book_id"})
				return
			}
			store.Remove(uint(bookID))
		} else {
			store.Clear()
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	}
}

// MergeGuestCart folds a guest's file-backed cart into the user's DB
// cart, summing quantities for books present in both, then discards the
// guest cart. Runs in one transaction on the DB side.
func MergeGuestCart(db *gorm.DB, guestID, userID string) error {
	if !ValidGuestID(guestID) {
		return errors.New("invalid guest id")
	}
	store := OpenGuestStore(guestID)
	lines := store.Lines()
	if len(lines) == 0 {
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var userCart models.Cart
		err := tx.Where("user_id = ?", userID).First(&userCart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			userCart = models.Cart{UserID: userID}
			if err := tx.Create(&userCart).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var maxPos int
		tx.Model(&models.CartLine{}).Where("cart_id = ?", userCart.CartID).
			Select("COALESCE(MAX(position), 0)").Scan(&maxPos)

		for _, guestLine := range lines {
			var line models.CartLine
			lookupErr := tx.Where("cart_id = ? AND book_id = ?", userCart.CartID, guestLine.BookID).
				First(&line).Error

			switch {
			case lookupErr == nil:
				line.Quantity += guestLine.Quantity
				line.AddedAt = time.Now()
				if err := tx.Save(&line).Error; err != nil {
					return err
				}
			case errors.Is(lookupErr, gorm.ErrRecordNotFound):
				maxPos++
				newLine := models.CartLine{
					CartID:      userCart.CartID,
					BookID:      guestLine.BookID,
					BookARTitle: guestLine.Title,
					BookAuthor:  guestLine.Author,
					BookCover:   guestLine.CoverImage,
					UnitPrice:   guestLine.UnitPrice,
					Quantity:    guestLine.Quantity,
					Position:    maxPos,
					AddedAt:     time.Now(),
				}
				if err := tx.Create(&newLine).Error; err != nil {
					return err
				}
			default:
				return lookupErr
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	store.Clear()
	return nil
}
