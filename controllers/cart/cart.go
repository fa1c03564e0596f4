package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/models"
	"gorm.io/gorm"
)

type AddCartLineInput struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// userCart loads the user's cart with lines in insertion order,
// creating the cart row if signup predates the cart table.
func userCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func cartTotals(lines []models.CartLine) (int, float64) {
	items := 0
	price := 0.0
	for _, l := range lines {
		items += l.Quantity
		price += l.UnitPrice * float64(l.Quantity)
	}
	return items, price
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cart, err := userCart(db, userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		totalItems, totalPrice := cartTotals(cart.Items)
		c.JSON(http.StatusOK, gin.H{
			"items":       cart.Items,
			"total_items": totalItems,
			"total_price": totalPrice,
		})
	}
}

// POST /user/cart
// Adds a book to the cart, incrementing the quantity when a line for
// that book already exists.
func AddCartLine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddCartLineInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity < 1 {
			input.Quantity = 1
		}

		var book models.Book
		if err := db.First(&book, "id = ?", input.BookID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate book"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				errMsg = "Book does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		cart, err := userCart(db, userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User cart not found"})
			return
		}

		var line models.CartLine
		err = db.Where("cart_id = ? AND book_id = ?", cart.CartID, input.BookID).First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var maxPos int
			db.Model(&models.CartLine{}).Where("cart_id = ?", cart.CartID).
				Select("COALESCE(MAX(position), 0)").Scan(&maxPos)

			newLine := models.CartLine{
				CartID:      cart.CartID,
				BookID:      book.ID,
				BookETitle:  book.ETitle,
				BookARTitle: book.ARTitle,
				BookAuthor:  book.Author,
				BookCover:   book.CoverImage,
				UnitPrice:   book.Price,
				Quantity:    input.Quantity,
				Position:    maxPos + 1,
				AddedAt:     time.Now(),
			}
			if err := db.Create(&newLine).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusCreated, newLine)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		line.Quantity += input.Quantity
		line.AddedAt = time.Now()
		if err := db.Save(&line).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, line)
	}
}

// PUT /user/cart/:book_id
// Sets a line's quantity. Zero or negative removes the line; an absent
// line is a no-op.
func UpdateCartLine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		bookID, err := strconv.Atoi(c.Param("book_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, err := userCart(db, userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User cart not found"})
			return
		}

		if input.Quantity <= 0 {
			db.Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).Delete(&models.CartLine{})
			c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
			return
		}

		db.Model(&models.CartLine{}).
			Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).
			Updates(map[string]interface{}{"quantity": input.Quantity, "added_at": time.Now()})
		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
	}
}

// DELETE /user/cart/:book_id
func DeleteCartLine(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		bookID := c.Param("book_id")

		cart, err := userCart(db, userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		result := db.Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).Delete(&models.CartLine{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cart, err := userCart(db, userIDVal.(string))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartLine{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		cart, err := userCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cart.Items)
	}
}
