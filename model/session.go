package model

// Session is one scheduled screening as reported by the server. The client
// never mutates it; availability is refetched, not patched.
type Session struct {
	ID             int      `json:"id"`
	MovieTitle     string   `json:"movie_title"`
	CinemaName     string   `json:"cinema_name"`
	Hall           string   `json:"hall"`
	StartTime      string   `json:"start_time"`
	BasePrice      float64  `json:"base_price"`
	TotalSeats     int      `json:"total_seats"`
	AvailableSeats []string `json:"available_seats"`
}

// SessionFilter mirrors the query parameters of GET /sessions. Date is
// required by the server ("all" is accepted).
type SessionFilter struct {
	Date          string
	Cinema        string
	MaxPrice      float64
	OnlyWithSeats bool
}

// Cinemas is the fixed set of halls the server accepts sessions for.
var Cinemas = []string{
	"Chaplin MEGA Silk Way",
	"Chaplin Khan Shatyr",
	"Arman Asia Park",
	"Kinopark 6 Keruencity",
	"Kinopark 8 IMAX Saryarqa",
}
