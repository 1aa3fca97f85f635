package repository

import (
	"context"
	"database/sql"
	"time"
)

// Showtime represents a row of the Showtimes table. TheaterID references
// the auditorium the showing runs in; seat capacity lives on Auditoriums.
type Showtime struct {
	ShowtimeID int64     // Showtimes.ShowtimeID
	MovieID    int64     // Showtimes.MovieID
	TheaterID  int64     // Showtimes.TheaterID
	StartTime  time.Time // Showtimes.StartTime
	EndTime    time.Time // Showtimes.EndTime
}

// ShowtimeRepo manages read access to showtimes.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
	return &ShowtimeRepo{db: db}
}

// ListAll returns every showtime ordered by start time ascending. When no
// showtimes exist it returns an empty slice and nil error.
func (r *ShowtimeRepo) ListAll(ctx context.Context) ([]Showtime, error) {
	const q = `SELECT ShowtimeID, MovieID, TheaterID, StartTime, EndTime
               FROM Showtimes
               ORDER BY StartTime`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]Showtime, 0)
	for rows.Next() {
		var s Showtime
		if err := rows.Scan(&s.ShowtimeID, &s.MovieID, &s.TheaterID, &s.StartTime, &s.EndTime); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
