// Package repository: reporting queries. These are read-only joins and
// aggregates over the theater schema, plus two database-resident functions
// (get_number_of_ticket_sales, get_movie_profits) the database owns. Each
// result struct mirrors one response shape.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// MovieShowtime is one showtime of a given movie on a given date.
type MovieShowtime struct {
	Title      string    // Movies.Title
	ShowtimeID int64     // Showtimes.ShowtimeID
	TheaterID  int64     // Showtimes.TheaterID
	StartTime  time.Time // Showtimes.StartTime
	EndTime    time.Time // Showtimes.EndTime
}

// ShowtimeAvailability reports seats for a showtime. SeatsRemaining is
// always SeatCapacity - TicketsSold; the database's purchase triggers keep
// it non-negative.
type ShowtimeAvailability struct {
	ShowtimeID     int64
	SeatCapacity   int
	TicketsSold    int
	SeatsRemaining int
}

// ConcessionCategoryRevenue is the summed revenue of one concession category.
type ConcessionCategoryRevenue struct {
	Category     string
	TotalRevenue float64
}

// MovieLifetimeSales is the all-time ticket count for a movie.
type MovieLifetimeSales struct {
	MovieID             int64
	Title               string
	LifetimeTicketSales int64
}

// UpcomingShowtime is a row of UpcomingShowtimesView. DynamicStatus and
// IsSoldOut are computed inside the view from the clock and sales state.
type UpcomingShowtime struct {
	ShowtimeID    int64
	MovieID       int64
	MovieTitle    string
	TheaterID     int64
	StartTime     time.Time
	EndTime       time.Time
	IsSoldOut     bool
	DynamicStatus string
}

// MovieProfit is a movie's net profit as computed by get_movie_profits.
type MovieProfit struct {
	MovieID   int64
	Title     string
	NetProfit float64
}

// ReportRepo runs the reporting queries.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepo constructs a ReportRepo with the given DB handle.
func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// MovieShowtimes returns all showtimes of the titled movie on the given
// calendar date, ordered by start time. Title matching is exact string
// equality against Movies.Title (case and whitespace sensitive under the
// column's collation); no normalization or fuzzy matching is applied.
// An unknown title or a date with no showings yields an empty slice.
func (r *ReportRepo) MovieShowtimes(ctx context.Context, title string, date time.Time) ([]MovieShowtime, error) {
	const q = `SELECT m.Title, s.ShowtimeID, s.TheaterID, s.StartTime, s.EndTime
               FROM Showtimes s
               JOIN Movies m ON s.MovieID = m.MovieID
               WHERE m.Title = ?
                 AND DATE(s.StartTime) = ?
               ORDER BY s.StartTime`
	rows, err := r.db.QueryContext(ctx, q, title, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]MovieShowtime, 0)
	for rows.Next() {
		var ms MovieShowtime
		if err := rows.Scan(&ms.Title, &ms.ShowtimeID, &ms.TheaterID, &ms.StartTime, &ms.EndTime); err != nil {
			return nil, err
		}
		result = append(result, ms)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ShowtimeAvailability returns capacity, tickets sold and seats remaining
// for one showtime. The LEFT JOIN keeps showtimes with zero sales in the
// result; ErrShowtimeNotFound is returned when the id has no row at all.
func (r *ReportRepo) ShowtimeAvailability(ctx context.Context, showtimeID int64) (*ShowtimeAvailability, error) {
	const q = `SELECT s.ShowtimeID,
                      a.SeatCapacity,
                      COUNT(t.TicketSaleID),
                      (a.SeatCapacity - COUNT(t.TicketSaleID))
               FROM Showtimes s
               JOIN Auditoriums a ON s.TheaterID = a.TheaterID
               LEFT JOIN TicketSales t ON s.ShowtimeID = t.ShowtimeID
               WHERE s.ShowtimeID = ?
               GROUP BY s.ShowtimeID, a.SeatCapacity`
	var av ShowtimeAvailability
	err := r.db.QueryRowContext(ctx, q, showtimeID).Scan(
		&av.ShowtimeID, &av.SeatCapacity, &av.TicketsSold, &av.SeatsRemaining,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &av, nil
}

// ConcessionCategoryRevenue returns total revenue per concession category,
// highest first. A positive limit caps the result to the top N categories;
// limit <= 0 returns all of them.
func (r *ReportRepo) ConcessionCategoryRevenue(ctx context.Context, limit int) ([]ConcessionCategoryRevenue, error) {
	q := `SELECT c.Category, SUM(c.ConcessionPrice)
          FROM ConcessionSales cs
          JOIN Concessions c ON cs.ConcessionID = c.ConcessionID
          GROUP BY c.Category
          ORDER BY SUM(c.ConcessionPrice) DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]ConcessionCategoryRevenue, 0)
	for rows.Next() {
		var cr ConcessionCategoryRevenue
		if err := rows.Scan(&cr.Category, &cr.TotalRevenue); err != nil {
			return nil, err
		}
		result = append(result, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MovieLifetimeSales returns the movie's title and the count of every
// ticket ever sold for any of its showtimes, via a correlated subquery.
// The count is zero (never NULL) for a movie with no sales;
// ErrMovieNotFound is returned when the movie id has no row.
func (r *ReportRepo) MovieLifetimeSales(ctx context.Context, movieID int64) (*MovieLifetimeSales, error) {
	const q = `SELECT m.MovieID, m.Title,
                      (SELECT COUNT(*)
                       FROM TicketSales ts
                       JOIN Showtimes s ON ts.ShowtimeID = s.ShowtimeID
                       WHERE s.MovieID = m.MovieID)
               FROM Movies m
               WHERE m.MovieID = ?`
	var ls MovieLifetimeSales
	err := r.db.QueryRowContext(ctx, q, movieID).Scan(&ls.MovieID, &ls.Title, &ls.LifetimeTicketSales)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &ls, nil
}

// UpcomingShowtimes reads UpcomingShowtimesView, which already excludes
// past showtimes and computes IsSoldOut and DynamicStatus server-side. A
// positive daysAhead additionally caps results to showtimes starting
// within that many days from now; daysAhead <= 0 returns all upcoming.
// Rows are ordered by start time ascending.
func (r *ReportRepo) UpcomingShowtimes(ctx context.Context, daysAhead int) ([]UpcomingShowtime, error) {
	q := `SELECT ShowtimeID, MovieID, MovieTitle, TheaterID, StartTime, EndTime, IsSoldOut, DynamicStatus
          FROM UpcomingShowtimesView`
	args := []any{}
	if daysAhead > 0 {
		// The view already filters out past showtimes; this only caps the horizon.
		q += ` WHERE StartTime <= DATE_ADD(NOW(), INTERVAL ? DAY)`
		args = append(args, daysAhead)
	}
	q += ` ORDER BY StartTime`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]UpcomingShowtime, 0)
	for rows.Next() {
		var u UpcomingShowtime
		if err := rows.Scan(
			&u.ShowtimeID, &u.MovieID, &u.MovieTitle, &u.TheaterID,
			&u.StartTime, &u.EndTime, &u.IsSoldOut, &u.DynamicStatus,
		); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DailyTicketSales delegates the count to the get_number_of_ticket_sales
// database function. A NULL result (no sales recorded) maps to zero.
func (r *ReportRepo) DailyTicketSales(ctx context.Context, date time.Time) (int64, error) {
	const q = `SELECT get_number_of_ticket_sales(?)`
	var n sql.NullInt64
	if err := r.db.QueryRowContext(ctx, q, date.Format("2006-01-02")).Scan(&n); err != nil {
		return 0, err
	}
	if !n.Valid {
		return 0, nil
	}
	return n.Int64, nil
}

// MovieProfit returns the movie's title and its net profit (ticket revenue
// minus distributor fee) as computed by the get_movie_profits database
// function. A NULL profit maps to zero; ErrMovieNotFound is returned when
// the movie id has no row.
func (r *ReportRepo) MovieProfit(ctx context.Context, movieID int64) (*MovieProfit, error) {
	const q = `SELECT m.Title, get_movie_profits(?)
               FROM Movies m
               WHERE m.MovieID = ?`
	var (
		title  string
		profit sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, q, movieID, movieID).Scan(&title, &profit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	mp := &MovieProfit{MovieID: movieID, Title: title}
	if profit.Valid {
		mp.NetProfit = profit.Float64
	}
	return mp, nil
}
