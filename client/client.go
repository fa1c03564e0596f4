package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shaher200/roeia-est/cart"
	orderControllers "github.com/shaher200/roeia-est/controllers/order"
)

// Client talks to the storefront API. It owns the local cart and the
// session; the local cart is only emptied once the server has accepted
// the order.
type Client struct {
	BaseURL string
	Session *Session
	Cart    *cart.Store

	httpClient *http.Client
}

func New(baseURL string, session *Session, cartStore *cart.Store) *Client {
	if session == nil {
		session = NewSession(nil)
	}
	if cartStore == nil {
		cartStore = cart.NewStore(&cart.MemoryPersistence{})
	}
	return &Client{
		BaseURL:    baseURL,
		Session:    session,
		Cart:       cartStore,
		httpClient: &http.Client{},
	}
}

type authRequest struct {
	Action   string `json:"action"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Token   string `json:"token"`
	Error   string `json:"error"`
}

// SignUp registers a new account and signs the session in.
func (c *Client) SignUp(ctx context.Context, name, phone, password string) (*User, error) {
	return c.authenticate(ctx, authRequest{Action: "signup", Name: name, Phone: phone, Password: password})
}

// SignIn authenticates an existing account and signs the session in.
func (c *Client) SignIn(ctx context.Context, phone, password string) (*User, error) {
	return c.authenticate(ctx, authRequest{Action: "signin", Phone: phone, Password: password})
}

func (c *Client) authenticate(ctx context.Context, req authRequest) (*User, error) {
	var resp authResponse
	if err := c.post(ctx, "/auth/custom", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" {
		if resp.Error != "" {
			return nil, errors.New(resp.Error)
		}
		return nil, errors.New("authentication failed")
	}
	c.Session.SignIn(resp.User, resp.Token)
	return &resp.User, nil
}

// SignOut clears the session. The local cart is untouched.
func (c *Client) SignOut() {
	c.Session.SignOut()
}

// CheckoutForm is what the customer fills in before submitting an order.
type CheckoutForm struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   string
	ReceiptURL      string
}

type placeOrderResponse struct {
	Message  string `json:"message"`
	OrderRef string `json:"order_ref"`
	Error    string `json:"error"`
}

// Checkout validates the form locally with the server's own rules, then
// submits the order. When signed in the server charges the DB cart;
// anonymous checkout posts the local lines. The local cart is cleared
// only after the server confirms.
func (c *Client) Checkout(ctx context.Context, form CheckoutForm) (string, error) {
	req := orderControllers.PlaceOrderRequest{
		CustomerName:    form.CustomerName,
		CustomerPhone:   form.CustomerPhone,
		CustomerAddress: form.CustomerAddress,
		PaymentMethod:   form.PaymentMethod,
		ReceiptURL:      form.ReceiptURL,
	}
	if user := c.Session.User(); user != nil {
		req.UserID = user.ID
	} else {
		for _, line := range c.Cart.Lines() {
			req.Items = append(req.Items, orderControllers.OrderLineInput{
				BookID:   line.BookID,
				Quantity: line.Quantity,
			})
		}
	}
	if err := orderControllers.ValidateCheckout(req); err != nil {
		return "", err
	}
	if req.UserID == "" && len(req.Items) == 0 {
		return "", orderControllers.ErrEmptyCart
	}

	var resp placeOrderResponse
	if err := c.post(ctx, "/orders/place", req, &resp); err != nil {
		return "", err
	}
	if resp.OrderRef == "" {
		if resp.Error != "" {
			return "", errors.New(resp.Error)
		}
		return "", errors.New("order was not accepted")
	}

	c.Cart.Clear()
	return resp.OrderRef, nil
}

// post sends a JSON request and decodes the JSON response, regardless
// of status code: the API reports failures in the body.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token := c.Session.Token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}
