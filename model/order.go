package model

// BookingRequest is the body of POST /book. Sent once per user action,
// never retried automatically.
type BookingRequest struct {
	Email     string `json:"email"`
	SessionID int    `json:"session_id"`
	Seat      string `json:"seat"`
	IsStudent bool   `json:"is_student"`
	Age       int    `json:"age"`
}

// Order is the server's receipt for a successful booking. Every field is
// server-computed; the client only displays them.
type Order struct {
	ID            int     `json:"id"`
	CustomerEmail string  `json:"customer_email"`
	MovieTitle    string  `json:"movie_title"`
	FinalPrice    float64 `json:"final_price"`
	PromoCode     string  `json:"promo_code"`
	BonusesEarned int     `json:"bonuses_earned"`
}
