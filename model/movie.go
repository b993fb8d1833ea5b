package model

// Movie is the metadata payload of GET /movies (backed by TMDb upstream).
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Adult       bool    `json:"adult"`
	VoteAverage float64 `json:"vote_average"`
}
