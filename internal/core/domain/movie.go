package domain

import (
	"errors"
	"time"
)

var ErrMovieNotFound = errors.New("movie not found")
var ErrMovieExists = errors.New("movie already exists")
var ErrShowtimeNotFound = errors.New("showtime not found")
var ErrHallNotFound = errors.New("cinema hall not found")

// Genre tags a movie (a movie may carry several).
type Genre struct {
	ID    string `json:"id" bson:"_id,omitempty"`
	Title string `json:"title" bson:"title"`
}

// Movie is the catalogue entry shown to customers.
type Movie struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Title           string    `json:"title" bson:"title"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes" bson:"duration_minutes"`
	ReleaseDate     time.Time `json:"release_date" bson:"release_date"`
	PosterURL       string    `json:"poster_url" bson:"poster_url"`
	Genres          []string  `json:"genres" bson:"genres"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

// CinemaHall groups seats; every showtime plays in exactly one hall.
type CinemaHall struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Showtime schedules a movie in a hall for a time window.
type Showtime struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	MovieID   string    `json:"movie_id" bson:"movie_id"`
	HallID    string    `json:"hall_id" bson:"hall_id"`
	StartTime time.Time `json:"start_time" bson:"start_time"`
	EndTime   time.Time `json:"end_time" bson:"end_time"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
