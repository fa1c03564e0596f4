package orderControllers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shaher200/roeia-est/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Egyptian mobile prefixes accepted at checkout.
var checkoutPhonePattern = regexp.MustCompile(`^(010|011|012|015)\d{8}$`)

var (
	ErrMissingName          = errors.New("customer name is required")
	ErrInvalidCheckoutPhone = errors.New("phone must be 11 digits starting with 010, 011, 012 or 015")
	ErrMissingAddress       = errors.New("customer address is required")
	ErrInvalidPaymentMethod = errors.New("payment method must be wallet_transfer or instapay")
	ErrMissingReceipt       = errors.New("a payment receipt is required")
	ErrEmptyCart            = errors.New("cart is empty")
)

type PlaceOrderRequest struct {
	UserID          string           `json:"user_id"` // empty for anonymous checkout
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerAddress string           `json:"customer_address"`
	PaymentMethod   string           `json:"payment_method"`
	ReceiptURL      string           `json:"receipt_url"`
	Items           []OrderLineInput `json:"items"` // used only when no user cart exists
}

type OrderLineInput struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// ValidateCheckout applies every order-form rule before anything is
// written. The first violated rule is returned.
func ValidateCheckout(req PlaceOrderRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return ErrMissingName
	}
	if !checkoutPhonePattern.MatchString(req.CustomerPhone) {
		return ErrInvalidCheckoutPhone
	}
	if strings.TrimSpace(req.CustomerAddress) == "" {
		return ErrMissingAddress
	}
	switch models.PaymentMethod(req.PaymentMethod) {
	case models.PaymentMethodWallet, models.PaymentMethodInstapay:
	default:
		return ErrInvalidPaymentMethod
	}
	if strings.TrimSpace(req.ReceiptURL) == "" {
		return ErrMissingReceipt
	}
	return nil
}

// PlaceOrder validates the checkout form, snapshots the cart, deducts
// stock and creates a pending order in one transaction. For signed-in
// customers the DB cart is the source of lines and prices and is
// cleared with the order; anonymous checkout posts its lines directly.
func PlaceOrder(db *gorm.DB, req PlaceOrderRequest) (*models.Order, error) {
	if err := ValidateCheckout(req); err != nil {
		return nil, err
	}

	var (
		cart      *models.Cart
		lineSpecs []OrderLineInput
	)
	if req.UserID != "" {
		var userCart models.Cart
		if err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).Where("user_id = ?", req.UserID).First(&userCart).Error; err != nil {
			return nil, err
		}
		if len(userCart.Items) == 0 {
			return nil, ErrEmptyCart
		}
		cart = &userCart
		for _, item := range userCart.Items {
			lineSpecs = append(lineSpecs, OrderLineInput{BookID: item.BookID, Quantity: item.Quantity})
		}
	} else {
		if len(req.Items) == 0 {
			return nil, ErrEmptyCart
		}
		lineSpecs = req.Items
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var total float64
		var orderItems []models.OrderItem

		for _, spec := range lineSpecs {
			q := tx
			if tx.Dialector.Name() == "postgres" {
				// sqlite has no row locks
				q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			var book models.Book
			if err := q.First(&book, "id = ?", spec.BookID).Error; err != nil {
				return err
			}

			if book.Stock < spec.Quantity {
				return errors.New("insufficient stock for book: " + book.ARTitle)
			}
			book.Stock -= spec.Quantity
			if err := tx.Save(&book).Error; err != nil {
				return err
			}

			// Anonymous lines have no snapshot, so they bill the live
			// book row.
			if cart == nil {
				total += book.Price * float64(spec.Quantity)
				orderItems = append(orderItems, models.OrderItem{
					BookID:      book.ID,
					BookETitle:  book.ETitle,
					BookARTitle: book.ARTitle,
					BookAuthor:  book.Author,
					BookCover:   book.CoverImage,
					UnitPrice:   book.Price,
					Quantity:    spec.Quantity,
				})
			}
		}

		// Signed-in orders bill the cart-line snapshot: the customer
		// pays the prices their cart showed, whatever the catalog says
		// now. The live book rows above are touched only for stock.
		if cart != nil {
			for _, line := range cart.Items {
				total += line.UnitPrice * float64(line.Quantity)
				orderItems = append(orderItems, models.OrderItem{
					BookID:      line.BookID,
					BookETitle:  line.BookETitle,
					BookARTitle: line.BookARTitle,
					BookAuthor:  line.BookAuthor,
					BookCover:   line.BookCover,
					UnitPrice:   line.UnitPrice,
					Quantity:    line.Quantity,
				})
			}
		}

		order = models.Order{
			OrderRef:        generateOrderRef(),
			Items:           orderItems,
			TotalAmount:     total,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerPhone:   req.CustomerPhone,
			CustomerAddress: strings.TrimSpace(req.CustomerAddress),
			PaymentMethod:   models.PaymentMethod(req.PaymentMethod),
			ReceiptURL:      req.ReceiptURL,
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
			CreatedAt:       time.Now(),
		}
		if req.UserID != "" {
			userID := req.UserID
			order.UserID = &userID
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if cart != nil {
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// POST /orders/place
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(db, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		broadcastNewOrder(*order)
		c.JSON(http.StatusOK, gin.H{
			"message":   "Order placed successfully",
			"order_ref": order.OrderRef,
			"order":     order,
		})
	}
}
