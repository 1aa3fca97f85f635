package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/theaterops/theater-dashboard/internal/repository"
)

// newReportHandler returns a handler over a sqlmock database; the mock is
// also returned so tests can queue expected queries.
func newReportHandler(t *testing.T) (*ReportHandler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &ReportHandler{Reports: repository.NewReportRepo(db)}, mock, db
}

func getContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestShowtimeAvailabilityHandler(t *testing.T) {
	h, mock, _ := newReportHandler(t)
	rows := sqlmock.NewRows([]string{"ShowtimeID", "SeatCapacity", "TicketsSold", "SeatsRemaining"}).
		AddRow(5, 120, 85, 35)
	mock.ExpectQuery("FROM Showtimes s JOIN Auditoriums a").WithArgs(int64(5)).WillReturnRows(rows)

	c, rec := getContext(t, "/reports/showtime-availability?showtime_id=5")
	if err := h.ShowtimeAvailability(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body AvailabilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := AvailabilityResponse{ShowtimeID: 5, SeatCapacity: 120, TicketsSold: 85, SeatsRemaining: 35}
	if body != want {
		t.Errorf("body = %+v, want %+v", body, want)
	}
}

func TestShowtimeAvailabilityHandlerNotFound(t *testing.T) {
	h, mock, _ := newReportHandler(t)
	rows := sqlmock.NewRows([]string{"ShowtimeID", "SeatCapacity", "TicketsSold", "SeatsRemaining"})
	mock.ExpectQuery("FROM Showtimes s JOIN Auditoriums a").WithArgs(int64(999)).WillReturnRows(rows)

	c, rec := getContext(t, "/reports/showtime-availability?showtime_id=999")
	if err := h.ShowtimeAvailability(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestShowtimeAvailabilityHandlerBadID(t *testing.T) {
	// Validation failure must not touch the pool: the mock has no queued
	// expectations and would fail the test if a query reached it.
	h, mock, _ := newReportHandler(t)

	c, rec := getContext(t, "/reports/showtime-availability?showtime_id=abc")
	if err := h.ShowtimeAvailability(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("no database call expected: %v", err)
	}
}

func TestMovieShowtimesHandlerMissingTitle(t *testing.T) {
	h, _, _ := newReportHandler(t)
	c, rec := getContext(t, "/reports/movie-showtimes?date=2025-11-05")
	if err := h.MovieShowtimes(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMovieShowtimesHandlerBadDate(t *testing.T) {
	h, _, _ := newReportHandler(t)
	c, rec := getContext(t, "/reports/movie-showtimes?title=Minecraft&date=11-05-2025")
	if err := h.MovieShowtimes(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTopConcessionCategoriesHandlerBadLimit(t *testing.T) {
	h, _, _ := newReportHandler(t)
	c, rec := getContext(t, "/reports/concessions/top-categories?limit=-3")
	if err := h.TopConcessionCategories(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMovieLifetimeSalesHandlerNotFound(t *testing.T) {
	h, mock, _ := newReportHandler(t)
	rows := sqlmock.NewRows([]string{"MovieID", "Title", "LifetimeTicketSales"})
	mock.ExpectQuery("FROM Movies m WHERE m.MovieID").WithArgs(int64(999)).WillReturnRows(rows)

	c, rec := getContext(t, "/reports/movie-lifetime-sales?movie_id=999")
	if err := h.MovieLifetimeSales(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	// The not-found body must not look like the success schema.
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["lifetime_ticket_sales"]; ok {
		t.Errorf("404 body should not carry success fields: %v", body)
	}
}

func TestDailyTicketSalesHandler(t *testing.T) {
	h, mock, _ := newReportHandler(t)
	rows := sqlmock.NewRows([]string{"count"}).AddRow(42)
	mock.ExpectQuery("SELECT get_number_of_ticket_sales").WithArgs("2025-11-05").WillReturnRows(rows)

	c, rec := getContext(t, "/reports/daily-ticket-sales?date=2025-11-05")
	if err := h.DailyTicketSales(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body DailySalesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ReportDate != "2025-11-05" || body.TicketsSold != 42 {
		t.Errorf("body = %+v", body)
	}
}

func TestMovieProfitHandler(t *testing.T) {
	h, mock, _ := newReportHandler(t)
	rows := sqlmock.NewRows([]string{"Title", "NetProfit"}).AddRow("Tron", 5432.10)
	mock.ExpectQuery("SELECT m.Title, get_movie_profits").WithArgs(int64(2), int64(2)).WillReturnRows(rows)

	c, rec := getContext(t, "/reports/movies/2/profit")
	c.SetParamNames("movie_id")
	c.SetParamValues("2")
	if err := h.MovieProfit(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body ProfitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.MovieID != 2 || body.Title != "Tron" || body.NetProfit != 5432.10 {
		t.Errorf("body = %+v", body)
	}
}

func TestUpcomingShowtimesHandlerEmpty(t *testing.T) {
	h, mock, _ := newReportHandler(t)
	rows := sqlmock.NewRows([]string{"ShowtimeID", "MovieID", "MovieTitle", "TheaterID", "StartTime", "EndTime", "IsSoldOut", "DynamicStatus"})
	mock.ExpectQuery("FROM UpcomingShowtimesView").WillReturnRows(rows)

	c, rec := getContext(t, "/reports/upcoming-showtimes")
	if err := h.UpcomingShowtimes(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("empty view should serialize as [], got %q", got)
	}
}
