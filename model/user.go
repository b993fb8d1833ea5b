package model

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthResponse is the body of a successful POST /login.
type AuthResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Ticket is one booked ticket in the profile view.
type Ticket struct {
	OrderID    int     `json:"order_id"`
	MovieTitle string  `json:"movie_title"`
	Seat       string  `json:"seat"`
	StartTime  string  `json:"start_time"`
	FinalPrice float64 `json:"final_price"`
}

// Profile is the body of GET /user/profile.
type Profile struct {
	Tickets      []Ticket `json:"tickets"`
	TotalBonuses int      `json:"total_bonuses"`
}

// TokenClaims are the fields the client reads out of the bearer token to
// personalize screens and route admins. The signature is NOT checked here:
// the server is the only party that verifies tokens, the client just needs
// the display data the original UI pulled out of the payload.
type TokenClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// ParseTokenClaims decodes the claims of a JWT without verifying it.
func ParseTokenClaims(token string) (TokenClaims, error) {
	if strings.TrimSpace(token) == "" {
		return TokenClaims{}, errors.New("empty token")
	}
	var claims TokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return TokenClaims{}, err
	}
	if claims.Role == "" {
		claims.Role = "user"
	}
	return claims, nil
}

// IsAdmin reports whether the claims carry the admin role.
func (c TokenClaims) IsAdmin() bool {
	return c.Role == "admin"
}
