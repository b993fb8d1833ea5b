package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cinemago-cli/model"
)

// Login exchanges credentials for a bearer token. On success the token is
// installed on the client for all subsequent requests.
func (c *Client) Login(ctx context.Context, email string, password string) (model.AuthResponse, error) {
	endpoint := c.baseURL + "/login"
	body := map[string]string{"email": email, "password": password}

	var auth model.AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, body, &auth); err != nil {
		return model.AuthResponse{}, err
	}
	if auth.Token == "" {
		return model.AuthResponse{}, &SchemaError{Endpoint: endpoint, Reason: "missing token field"}
	}
	c.SetToken(auth.Token)
	return auth, nil
}

// Register creates an account. The server does not log the user in; the
// caller follows up with Login.
func (c *Client) Register(ctx context.Context, email string, username string, password string) error {
	endpoint := c.baseURL + "/register"
	body := map[string]string{"email": email, "username": username, "password": password}
	return c.sendJSON(ctx, http.MethodPost, endpoint, body, nil)
}

// Sessions fetches screenings matching the filter. The server requires a
// date; "all" disables date filtering.
func (c *Client) Sessions(ctx context.Context, filter model.SessionFilter) ([]model.Session, error) {
	date := strings.TrimSpace(filter.Date)
	if date == "" {
		return nil, errors.New("date is required")
	}

	query := url.Values{}
	query.Set("date", date)
	if filter.Cinema != "" {
		query.Set("cinema", filter.Cinema)
	}
	if filter.MaxPrice > 0 {
		query.Set("max_price", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}
	if filter.OnlyWithSeats {
		query.Set("only_with_seats", "true")
	}
	endpoint := c.baseURL + "/sessions?" + query.Encode()

	var sessions []model.Session
	if err := c.getJSON(ctx, endpoint, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Session fetches a single screening by id via the list endpoint, used to
// refresh availability right before seat selection.
func (c *Client) Session(ctx context.Context, date string, id int) (model.Session, bool, error) {
	sessions, err := c.Sessions(ctx, model.SessionFilter{Date: date})
	if err != nil {
		return model.Session{}, false, err
	}
	for _, s := range sessions {
		if s.ID == id {
			return s, true, nil
		}
	}
	return model.Session{}, false, nil
}

// Book submits a booking request. Exactly one attempt; seat-taken races
// surface as an *APIError with the server's message.
func (c *Client) Book(ctx context.Context, req model.BookingRequest) (model.Order, error) {
	endpoint := c.baseURL + "/book"

	var payload struct {
		Status string       `json:"status"`
		Order  *model.Order `json:"order"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, req, &payload); err != nil {
		return model.Order{}, err
	}
	if payload.Order == nil {
		return model.Order{}, &SchemaError{Endpoint: endpoint, Reason: "missing order field"}
	}
	return *payload.Order, nil
}

// InitPayment asks the server to prepare the external payment widget for an
// order. Both returned blobs are opaque to this client.
func (c *Client) InitPayment(ctx context.Context, orderID int) (model.PaymentInit, error) {
	if orderID <= 0 {
		return model.PaymentInit{}, errors.New("order id is required")
	}
	endpoint := c.baseURL + "/pay/init"

	var init model.PaymentInit
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, map[string]int{"order_id": orderID}, &init); err != nil {
		return model.PaymentInit{}, err
	}
	if len(init.PaymentObj) == 0 {
		return model.PaymentInit{}, &SchemaError{Endpoint: endpoint, Reason: "missing payment_obj field"}
	}
	return init, nil
}

// PaymentPageURL is the browser page that hosts the payment widget for an
// order. The terminal hands off there; the widget itself never runs here.
func (c *Client) PaymentPageURL(orderID int) string {
	return fmt.Sprintf("%s/pages/pay.html?order_id=%d", c.baseURL, orderID)
}

// MovieByID fetches movie metadata by TMDb id.
func (c *Client) MovieByID(ctx context.Context, id int) (model.Movie, error) {
	if id <= 0 {
		return model.Movie{}, errors.New("movie id is required")
	}
	endpoint := fmt.Sprintf("%s/movies?id=%d", c.baseURL, id)

	var movie model.Movie
	if err := c.getJSON(ctx, endpoint, &movie); err != nil {
		return model.Movie{}, err
	}
	if movie.Title == "" {
		return model.Movie{}, &SchemaError{Endpoint: endpoint, Reason: "missing title field"}
	}
	return movie, nil
}

// MovieByTitle fetches the best metadata match for a title.
func (c *Client) MovieByTitle(ctx context.Context, title string) (model.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Movie{}, errors.New("movie title is required")
	}
	endpoint := c.baseURL + "/movies?title=" + url.QueryEscape(title)

	var movie model.Movie
	if err := c.getJSON(ctx, endpoint, &movie); err != nil {
		return model.Movie{}, err
	}
	if movie.Title == "" {
		return model.Movie{}, &SchemaError{Endpoint: endpoint, Reason: "missing title field"}
	}
	return movie, nil
}

// Chat sends one message to the assistant and returns its reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", errors.New("message is required")
	}
	endpoint := c.baseURL + "/ai/chat"

	var payload struct {
		Reply string `json:"reply"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, map[string]string{"message": message}, &payload); err != nil {
		return "", err
	}
	if payload.Reply == "" {
		return "", &SchemaError{Endpoint: endpoint, Reason: "missing reply field"}
	}
	return payload.Reply, nil
}

// Profile fetches the signed-in user's tickets and bonus balance.
func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	endpoint := c.baseURL + "/user/profile"

	var profile model.Profile
	if err := c.getJSON(ctx, endpoint, &profile); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

// Orders lists all orders. Admin only; non-admin tokens get 403.
func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	endpoint := c.baseURL + "/orders"

	var orders []model.Order
	if err := c.getJSON(ctx, endpoint, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateSession adds a screening. Admin only.
func (c *Client) CreateSession(ctx context.Context, s model.Session) (model.Session, error) {
	endpoint := c.baseURL + "/sessions"

	var created model.Session
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, s, &created); err != nil {
		return model.Session{}, err
	}
	return created, nil
}

// DeleteSession removes a screening. Admin only.
func (c *Client) DeleteSession(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.New("session id is required")
	}
	endpoint := fmt.Sprintf("%s/sessions/%d", c.baseURL, id)
	return c.sendJSON(ctx, http.MethodDelete, endpoint, nil, nil)
}
