package db

// Actor is a row of the actors table.
type Actor struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Age    int32  `json:"age"`
	Gender string `json:"gender"`
}

// Movie is a row of the movies table. ReleaseDate is stored as text.
type Movie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}
