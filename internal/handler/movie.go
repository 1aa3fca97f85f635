package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/theaterops/theater-dashboard/internal/repository"
)

// MovieHandler serves the movie listing endpoints.
type MovieHandler struct {
	Movies *repository.MovieRepo
}

// MovieResponse is a movie as exposed over the API. ReleaseDate is a plain
// calendar date; Price is the theater's cost per showing.
type MovieResponse struct {
	MovieID     int64   `json:"movie_id"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	Runtime     int     `json:"runtime"`
	ReleaseDate string  `json:"release_date"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"is_active"`
}

// List returns all movies regardless of status.
func (h *MovieHandler) List(c echo.Context) error {
	return h.respond(c, h.Movies.ListAll)
}

// NowPlaying returns the movies that are currently active.
func (h *MovieHandler) NowPlaying(c echo.Context) error {
	return h.respond(c, h.Movies.ListNowPlaying)
}

// Upcoming returns movies whose release date is still in the future.
func (h *MovieHandler) Upcoming(c echo.Context) error {
	return h.respond(c, h.Movies.ListUpcoming)
}

func (h *MovieHandler) respond(c echo.Context, list func(context.Context) ([]repository.Movie, error)) error {
	movies, err := list(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, MovieResponse{
			MovieID:     m.MovieID,
			Title:       m.Title,
			Genre:       m.Genre,
			Runtime:     m.Runtime,
			ReleaseDate: m.ReleaseDate.Format("2006-01-02"),
			Price:       m.Price,
			IsActive:    m.IsActive,
		})
	}
	return c.JSON(http.StatusOK, out)
}
