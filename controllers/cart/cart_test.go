package cartControllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shaher200/roeia-est/cart"
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
		&models.Cart{},
		&models.CartLine{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID: id, Phone: "0101234" + id, Name: "user " + id, IsActive: true,
	}).Error)
}

func TestUserCartCreatedOnFirstAccess(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")

	c, err := userCart(db, "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	again, err := userCart(db, "u1")
	require.NoError(t, err)
	assert.Equal(t, c.CartID, again.CartID)
}

func TestMergeGuestCartSumsQuantities(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	db := newTestDB(t)
	seedUser(t, db, "u1")

	userCartRow := models.Cart{UserID: "u1"}
	require.NoError(t, db.Create(&userCartRow).Error)
	require.NoError(t, db.Create(&models.CartLine{
		CartID: userCartRow.CartID, BookID: 1, Quantity: 2, Position: 1, UnitPrice: 100,
	}).Error)

	guest := OpenGuestStore("guest_abc123")
	guest.Add(cart.Line{BookID: 1, Title: "كتاب", UnitPrice: 100}, 3)
	guest.Add(cart.Line{BookID: 2, Title: "كتاب آخر", UnitPrice: 50}, 1)

	require.NoError(t, MergeGuestCart(db, "guest_abc123", "u1"))

	merged, err := userCart(db, "u1")
	require.NoError(t, err)
	require.Len(t, merged.Items, 2)

	// shared book sums, new book appended after existing lines
	assert.Equal(t, uint(1), merged.Items[0].BookID)
	assert.Equal(t, 5, merged.Items[0].Quantity)
	assert.Equal(t, uint(2), merged.Items[1].BookID)
	assert.Equal(t, 1, merged.Items[1].Quantity)
	assert.Greater(t, merged.Items[1].Position, merged.Items[0].Position)

	// guest cart is gone
	assert.Empty(t, OpenGuestStore("guest_abc123").Lines())
}

func TestMergeGuestCartCreatesUserCart(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	db := newTestDB(t)
	seedUser(t, db, "u1")

	guest := OpenGuestStore("guest_beef01")
	guest.Add(cart.Line{BookID: 7, Title: "كتاب", UnitPrice: 80}, 2)

	require.NoError(t, MergeGuestCart(db, "guest_beef01", "u1"))

	merged, err := userCart(db, "u1")
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, uint(7), merged.Items[0].BookID)
	assert.Equal(t, 2, merged.Items[0].Quantity)
}

func TestValidGuestID(t *testing.T) {
	assert.True(t, ValidGuestID("guest_0a1b2c3d4e5f6789"))
	assert.True(t, ValidGuestID("guest_00ff"))

	assert.False(t, ValidGuestID(""))
	assert.False(t, ValidGuestID("guest_"))
	assert.False(t, ValidGuestID("0a1b2c"))
	assert.False(t, ValidGuestID("guest_XYZ"))
	assert.False(t, ValidGuestID("guest_../secrets"))
	assert.False(t, ValidGuestID("../../outside/evil"))
}

func TestGuestCartRejectsPathTraversalIDs(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("DATA_DIR", dataDir)
	db := newTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guest/cart", GetGuestCart())
	r.DELETE("/guest/cart", DeleteGuestCartLine())

	for _, target := range []string{
		"/guest/cart?guest_id=" + url.QueryEscape("../../outside/evil"),
		"/guest/cart?guest_id=" + url.QueryEscape("guest_../evil"),
		"/guest/cart",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)

		req = httptest.NewRequest(http.MethodDelete, target, nil)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}

	// nothing escaped the data dir: merging with a crafted ID fails
	// before touching the filesystem too
	err := MergeGuestCart(db, "../../outside/evil", "u1")
	assert.Error(t, err)

	parent := filepath.Dir(dataDir)
	_, statErr := os.Stat(filepath.Join(parent, "outside"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMergeGuestCartEmptyGuestIsNoOp(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	db := newTestDB(t)
	seedUser(t, db, "u1")

	require.NoError(t, MergeGuestCart(db, "guest_ee00", "u1"))

	var count int64
	db.Model(&models.Cart{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
