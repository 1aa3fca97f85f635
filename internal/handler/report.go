// Reporting endpoints. Each one validates its parameters, runs a single
// repository query and maps the rows. Dates are accepted as YYYY-MM-DD;
// ids must be positive integers; optional counts must parse when present.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/theaterops/theater-dashboard/internal/repository"
)

const dateLayout = "2006-01-02"

// ReportHandler serves the reporting endpoints.
type ReportHandler struct {
	Reports *repository.ReportRepo
}

// MovieShowtimeResponse is one showtime of a movie on a requested date.
type MovieShowtimeResponse struct {
	Title      string    `json:"title"`
	ShowtimeID int64     `json:"showtime_id"`
	TheaterID  int64     `json:"theater_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// AvailabilityResponse reports seats for a showtime.
type AvailabilityResponse struct {
	ShowtimeID     int64 `json:"showtime_id"`
	SeatCapacity   int   `json:"seat_capacity"`
	TicketsSold    int   `json:"tickets_sold"`
	SeatsRemaining int   `json:"seats_remaining"`
}

// CategoryRevenueResponse is the summed revenue of one concession category.
type CategoryRevenueResponse struct {
	Category     string  `json:"category"`
	TotalRevenue float64 `json:"total_revenue"`
}

// LifetimeSalesResponse is the all-time ticket count for a movie.
type LifetimeSalesResponse struct {
	MovieID             int64  `json:"movie_id"`
	Title               string `json:"title"`
	LifetimeTicketSales int64  `json:"lifetime_ticket_sales"`
}

// UpcomingShowtimeResponse is a row of the upcoming-showtimes view.
type UpcomingShowtimeResponse struct {
	ShowtimeID    int64     `json:"showtime_id"`
	MovieID       int64     `json:"movie_id"`
	MovieTitle    string    `json:"movie_title"`
	TheaterID     int64     `json:"theater_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	IsSoldOut     bool      `json:"is_sold_out"`
	DynamicStatus string    `json:"dynamic_status"`
}

// DailySalesResponse is the ticket count for one calendar date.
type DailySalesResponse struct {
	ReportDate  string `json:"report_date"`
	TicketsSold int64  `json:"tickets_sold"`
}

// ProfitResponse is a movie's net profit.
type ProfitResponse struct {
	MovieID   int64   `json:"movie_id"`
	Title     string  `json:"title"`
	NetProfit float64 `json:"net_profit"`
}

// MovieShowtimes lists the showtimes of a movie on a date. Both the title
// and the date query parameters are required; title matching is exact.
func (h *ReportHandler) MovieShowtimes(c echo.Context) error {
	title := c.QueryParam("title")
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	rows, err := h.Reports.MovieShowtimes(c.Request().Context(), title, date)
	if err != nil {
		return dbError(c, err)
	}
	out := make([]MovieShowtimeResponse, 0, len(rows))
	for _, ms := range rows {
		out = append(out, MovieShowtimeResponse{
			Title:      ms.Title,
			ShowtimeID: ms.ShowtimeID,
			TheaterID:  ms.TheaterID,
			StartTime:  ms.StartTime,
			EndTime:    ms.EndTime,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// ShowtimeAvailability reports capacity, tickets sold and seats remaining
// for one showtime. 404 when the showtime id does not exist.
func (h *ReportHandler) ShowtimeAvailability(c echo.Context) error {
	showtimeID, err := strconv.ParseInt(c.QueryParam("showtime_id"), 10, 64)
	if err != nil || showtimeID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime_id"})
	}
	av, err := h.Reports.ShowtimeAvailability(c.Request().Context(), showtimeID)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, AvailabilityResponse{
		ShowtimeID:     av.ShowtimeID,
		SeatCapacity:   av.SeatCapacity,
		TicketsSold:    av.TicketsSold,
		SeatsRemaining: av.SeatsRemaining,
	})
}

// TopConcessionCategories returns revenue per concession category, highest
// first. The optional limit parameter caps the result to the top N.
func (h *ReportHandler) TopConcessionCategories(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		limit = n
	}
	rows, err := h.Reports.ConcessionCategoryRevenue(c.Request().Context(), limit)
	if err != nil {
		return dbError(c, err)
	}
	out := make([]CategoryRevenueResponse, 0, len(rows))
	for _, cr := range rows {
		out = append(out, CategoryRevenueResponse{Category: cr.Category, TotalRevenue: cr.TotalRevenue})
	}
	return c.JSON(http.StatusOK, out)
}

// MovieLifetimeSales returns the all-time ticket count for one movie. The
// count is zero for a movie with no sales; 404 when the id does not exist.
func (h *ReportHandler) MovieLifetimeSales(c echo.Context) error {
	movieID, err := strconv.ParseInt(c.QueryParam("movie_id"), 10, 64)
	if err != nil || movieID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie_id"})
	}
	ls, err := h.Reports.MovieLifetimeSales(c.Request().Context(), movieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, LifetimeSalesResponse{
		MovieID:             ls.MovieID,
		Title:               ls.Title,
		LifetimeTicketSales: ls.LifetimeTicketSales,
	})
}

// UpcomingShowtimes lists upcoming showtimes with their database-computed
// status labels. The optional days_ahead parameter caps the horizon.
func (h *ReportHandler) UpcomingShowtimes(c echo.Context) error {
	daysAhead := 0
	if raw := c.QueryParam("days_ahead"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "days_ahead must be a positive integer"})
		}
		daysAhead = n
	}
	rows, err := h.Reports.UpcomingShowtimes(c.Request().Context(), daysAhead)
	if err != nil {
		return dbError(c, err)
	}
	out := make([]UpcomingShowtimeResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, UpcomingShowtimeResponse{
			ShowtimeID:    u.ShowtimeID,
			MovieID:       u.MovieID,
			MovieTitle:    u.MovieTitle,
			TheaterID:     u.TheaterID,
			StartTime:     u.StartTime,
			EndTime:       u.EndTime,
			IsSoldOut:     u.IsSoldOut,
			DynamicStatus: u.DynamicStatus,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// DailyTicketSales returns the number of tickets sold on a date, as
// computed by the get_number_of_ticket_sales database function.
func (h *ReportHandler) DailyTicketSales(c echo.Context) error {
	date, err := time.Parse(dateLayout, c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	n, err := h.Reports.DailyTicketSales(c.Request().Context(), date)
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, DailySalesResponse{
		ReportDate:  date.Format(dateLayout),
		TicketsSold: n,
	})
}

// MovieProfit returns a movie's net profit as computed by the
// get_movie_profits database function. 404 when the id does not exist.
func (h *ReportHandler) MovieProfit(c echo.Context) error {
	movieID, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil || movieID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie_id"})
	}
	mp, err := h.Reports.MovieProfit(c.Request().Context(), movieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, ProfitResponse{
		MovieID:   mp.MovieID,
		Title:     mp.Title,
		NetProfit: mp.NetProfit,
	})
}
