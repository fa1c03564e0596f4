package orderControllers

import (
	"path/filepath"
	"testing"

	"github.com/shaher200/roeia-est/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Category{},
		&models.Cart{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func validRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		CustomerName:    "أحمد محمد",
		CustomerPhone:   "01012345678",
		CustomerAddress: "القاهرة، مدينة نصر",
		PaymentMethod:   string(models.PaymentMethodWallet),
		ReceiptURL:      "/uploads/receipts/123.jpg",
	}
}

func TestValidateCheckout(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PlaceOrderRequest)
		wantErr error
	}{
		{"valid wallet", func(r *PlaceOrderRequest) {}, nil},
		{"valid instapay", func(r *PlaceOrderRequest) {
			r.PaymentMethod = string(models.PaymentMethodInstapay)
		}, nil},
		{"missing name", func(r *PlaceOrderRequest) { r.CustomerName = "  " }, ErrMissingName},
		{"short phone", func(r *PlaceOrderRequest) { r.CustomerPhone = "0101234567" }, ErrInvalidCheckoutPhone},
		{"landline prefix", func(r *PlaceOrderRequest) { r.CustomerPhone = "02012345678" }, ErrInvalidCheckoutPhone},
		{"unassigned prefix", func(r *PlaceOrderRequest) { r.CustomerPhone = "01312345678" }, ErrInvalidCheckoutPhone},
		{"missing address", func(r *PlaceOrderRequest) { r.CustomerAddress = "" }, ErrMissingAddress},
		{"unknown payment method", func(r *PlaceOrderRequest) { r.PaymentMethod = "cash" }, ErrInvalidPaymentMethod},
		{"missing receipt", func(r *PlaceOrderRequest) { r.ReceiptURL = "" }, ErrMissingReceipt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := ValidateCheckout(req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func seedUserWithCart(t *testing.T, db *gorm.DB, books []models.Book, quantities []int) string {
	t.Helper()
	user := models.User{ID: "user-1", Phone: "01012345678", Name: "أحمد", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	cart := models.Cart{UserID: user.ID}
	require.NoError(t, db.Create(&cart).Error)
	for i, book := range books {
		require.NoError(t, db.Create(&models.CartLine{
			CartID:      cart.CartID,
			BookID:      book.ID,
			BookETitle:  book.ETitle,
			BookARTitle: book.ARTitle,
			BookAuthor:  book.Author,
			BookCover:   book.CoverImage,
			UnitPrice:   book.Price,
			Quantity:    quantities[i],
			Position:    i + 1,
		}).Error)
	}
	return user.ID
}

func TestPlaceOrderChargesUserCart(t *testing.T) {
	db := newTestDB(t)

	book1 := models.Book{ARTitle: "البداية والنهاية", Author: "ابن كثير", Price: 150, Stock: 10}
	book2 := models.Book{ARTitle: "صحيح البخاري", Author: "البخاري", Price: 200, Stock: 5}
	require.NoError(t, db.Create(&book1).Error)
	require.NoError(t, db.Create(&book2).Error)

	userID := seedUserWithCart(t, db, []models.Book{book1, book2}, []int{2, 1})

	req := validRequest()
	req.UserID = userID

	order, err := PlaceOrder(db, req)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.NotEmpty(t, order.OrderRef)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.InDelta(t, 500.0, order.TotalAmount, 0.0001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "البداية والنهاية", order.Items[0].BookARTitle)

	// stock was deducted
	var b1, b2 models.Book
	require.NoError(t, db.First(&b1, book1.ID).Error)
	require.NoError(t, db.First(&b2, book2.ID).Error)
	assert.Equal(t, 8, b1.Stock)
	assert.Equal(t, 4, b2.Stock)

	// cart was emptied in the same transaction
	var lineCount int64
	db.Model(&models.CartLine{}).Count(&lineCount)
	assert.EqualValues(t, 0, lineCount)
}

func TestPlaceOrderBillsCartSnapshotAfterPriceChange(t *testing.T) {
	db := newTestDB(t)

	book := models.Book{ARTitle: "كتاب", Author: "مؤلف", Price: 100, Stock: 10}
	require.NoError(t, db.Create(&book).Error)

	// cart line snapshots 100 × 2, then the catalog price rises
	userID := seedUserWithCart(t, db, []models.Book{book}, []int{2})
	require.NoError(t, db.Model(&models.Book{}).Where("id = ?", book.ID).
		Update("price", 150).Error)

	req := validRequest()
	req.UserID = userID

	order, err := PlaceOrder(db, req)
	require.NoError(t, err)

	// the customer pays what their cart showed, not the new price
	assert.InDelta(t, 200.0, order.TotalAmount, 0.0001)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 100.0, order.Items[0].UnitPrice, 0.0001)

	// stock still comes off the live row
	var stored models.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.Equal(t, 8, stored.Stock)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)

	book1 := models.Book{ARTitle: "كتاب أول", Author: "مؤلف", Price: 100, Stock: 10}
	book2 := models.Book{ARTitle: "كتاب ثان", Author: "مؤلف", Price: 100, Stock: 1}
	require.NoError(t, db.Create(&book1).Error)
	require.NoError(t, db.Create(&book2).Error)

	userID := seedUserWithCart(t, db, []models.Book{book1, book2}, []int{2, 5})

	req := validRequest()
	req.UserID = userID

	_, err := PlaceOrder(db, req)
	require.Error(t, err)

	// nothing changed: stock, cart and orders all untouched
	var b1 models.Book
	require.NoError(t, db.First(&b1, book1.ID).Error)
	assert.Equal(t, 10, b1.Stock)

	var lineCount, orderCount int64
	db.Model(&models.CartLine{}).Count(&lineCount)
	db.Model(&models.Order{}).Count(&orderCount)
	assert.EqualValues(t, 2, lineCount)
	assert.EqualValues(t, 0, orderCount)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	userID := seedUserWithCart(t, db, nil, nil)

	req := validRequest()
	req.UserID = userID

	_, err := PlaceOrder(db, req)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderAnonymousWithPostedLines(t *testing.T) {
	db := newTestDB(t)

	book := models.Book{ARTitle: "كتاب", Author: "مؤلف", Price: 75, Stock: 3}
	require.NoError(t, db.Create(&book).Error)

	req := validRequest()
	req.Items = []OrderLineInput{{BookID: book.ID, Quantity: 2}}

	order, err := PlaceOrder(db, req)
	require.NoError(t, err)
	assert.Nil(t, order.UserID)
	assert.InDelta(t, 150.0, order.TotalAmount, 0.0001)

	var stored models.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.Equal(t, 1, stored.Stock)
}

func TestPlaceOrderAnonymousWithoutLines(t *testing.T) {
	db := newTestDB(t)

	req := validRequest()
	_, err := PlaceOrder(db, req)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderValidatesBeforeTouchingAnything(t *testing.T) {
	db := newTestDB(t)

	book := models.Book{ARTitle: "كتاب", Author: "مؤلف", Price: 75, Stock: 3}
	require.NoError(t, db.Create(&book).Error)

	req := validRequest()
	req.ReceiptURL = ""
	req.Items = []OrderLineInput{{BookID: book.ID, Quantity: 2}}

	_, err := PlaceOrder(db, req)
	assert.ErrorIs(t, err, ErrMissingReceipt)

	var stored models.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.Equal(t, 3, stored.Stock)
}
