package model

// Movie is the subset of the metadata provider's movie record the dashboard
// renders on its carousels.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int64   `json:"vote_count"`
	GenreIDs         []int64 `json:"genre_ids,omitempty"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
}

// Genre is a metadata provider genre.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieDetail carries the extra fields shown on the detail page.
type MovieDetail struct {
	Movie
	Runtime             int64     `json:"runtime"`
	Homepage            string    `json:"homepage,omitempty"`
	Genres              []Genre   `json:"genres"`
	ProductionCompanies []Company `json:"production_companies,omitempty"`
}

// Company is a production company credited on a movie.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
