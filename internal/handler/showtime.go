package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/theaterops/theater-dashboard/internal/repository"
)

// ShowtimeHandler serves the showtime listing endpoint.
type ShowtimeHandler struct {
	Showtimes *repository.ShowtimeRepo
}

// ShowtimeResponse is a showtime as exposed over the API.
type ShowtimeResponse struct {
	ShowtimeID int64     `json:"showtime_id"`
	MovieID    int64     `json:"movie_id"`
	TheaterID  int64     `json:"theater_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// List returns all showtimes ordered by start time. Useful for populating
// dropdowns when selecting a showtime for purchase or availability checks.
func (h *ShowtimeHandler) List(c echo.Context) error {
	showtimes, err := h.Showtimes.ListAll(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	out := make([]ShowtimeResponse, 0, len(showtimes))
	for _, s := range showtimes {
		out = append(out, ShowtimeResponse{
			ShowtimeID: s.ShowtimeID,
			MovieID:    s.MovieID,
			TheaterID:  s.TheaterID,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
		})
	}
	return c.JSON(http.StatusOK, out)
}
