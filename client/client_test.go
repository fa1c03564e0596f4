package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shaher200/roeia-est/cart"
	orderControllers "github.com/shaher200/roeia-est/controllers/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/custom", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req["password"] != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "error": "Invalid phone or password",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"user":    map[string]string{"id": "u1", "phone": req["phone"], "name": "أحمد", "role": "user"},
			"token":   "tok-123",
		})
	}))
}

func TestSignInStoresSession(t *testing.T) {
	srv := newAuthServer(t)
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	user, err := c.SignIn(context.Background(), "01012345678", "123456")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, c.Session.Authenticated())
	assert.Equal(t, "tok-123", c.Session.Token())
}

func TestSignInFailureLeavesSessionSignedOut(t *testing.T) {
	srv := newAuthServer(t)
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	_, err := c.SignIn(context.Background(), "01012345678", "999999")
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid phone or password")
	assert.False(t, c.Session.Authenticated())
}

func TestCheckoutValidatesLocally(t *testing.T) {
	// No server: local validation must fail before any request is sent.
	c := New("http://127.0.0.1:0", nil, nil)
	c.Cart.Add(cart.Line{BookID: 1, UnitPrice: 100}, 1)

	_, err := c.Checkout(context.Background(), CheckoutForm{
		CustomerName:    "أحمد",
		CustomerPhone:   "02012345678",
		CustomerAddress: "القاهرة",
		PaymentMethod:   "wallet_transfer",
		ReceiptURL:      "/uploads/receipts/1.jpg",
	})
	assert.ErrorIs(t, err, orderControllers.ErrInvalidCheckoutPhone)
	assert.Len(t, c.Cart.Lines(), 1)
}

func TestCheckoutRejectsEmptyLocalCart(t *testing.T) {
	c := New("http://127.0.0.1:0", nil, nil)

	_, err := c.Checkout(context.Background(), CheckoutForm{
		CustomerName:    "أحمد",
		CustomerPhone:   "01012345678",
		CustomerAddress: "القاهرة",
		PaymentMethod:   "instapay",
		ReceiptURL:      "/uploads/receipts/1.jpg",
	})
	assert.ErrorIs(t, err, orderControllers.ErrEmptyCart)
}

func TestCheckoutClearsCartOnlyAfterConfirmation(t *testing.T) {
	accepted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/place", r.URL.Path)

		var req orderControllers.PlaceOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Items, 1)
		assert.Equal(t, uint(5), req.Items[0].BookID)

		if !accepted {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "insufficient stock for book: كتاب"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Order placed successfully", "order_ref": "20260829-abc",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil)
	c.Cart.Add(cart.Line{BookID: 5, UnitPrice: 100}, 2)

	form := CheckoutForm{
		CustomerName:    "أحمد",
		CustomerPhone:   "01012345678",
		CustomerAddress: "القاهرة",
		PaymentMethod:   "wallet_transfer",
		ReceiptURL:      "/uploads/receipts/1.jpg",
	}

	// server rejects: cart stays intact
	_, err := c.Checkout(context.Background(), form)
	require.Error(t, err)
	assert.Len(t, c.Cart.Lines(), 1)

	// server accepts: cart is cleared
	accepted = true
	ref, err := c.Checkout(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "20260829-abc", ref)
	assert.Empty(t, c.Cart.Lines())
}
