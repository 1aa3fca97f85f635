// Package repository contains data access logic for the theater's
// operational tables. This file defines the Movie model and repository
// methods over the Movies table. Every column is scanned explicitly so a
// renamed or missing column fails at the mapping boundary instead of
// producing a malformed record.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"time"         // time for DATE/DATETIME columns
)

// Movie represents a row of the Movies table. Price is the per-showing
// cost the theater pays the distributor, not a ticket price.
type Movie struct {
	MovieID     int64     // Movies.MovieID
	Title       string    // Movies.Title
	Genre       string    // Movies.Genre
	Runtime     int       // Movies.Runtime (minutes)
	ReleaseDate time.Time // Movies.ReleaseDate
	Price       float64   // Movies.Price (cost per showing)
	IsActive    bool      // Movies.IsActive
}

// MovieRepo manages read access to movies.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// ListAll returns every movie regardless of status, ordered by title.
// When the table is empty it returns an empty slice and nil error.
func (r *MovieRepo) ListAll(ctx context.Context) ([]Movie, error) {
	const q = `SELECT MovieID, Title, Genre, Runtime, ReleaseDate, Price, IsActive
               FROM Movies
               ORDER BY Title`
	return r.list(ctx, q)
}

// ListNowPlaying returns the movies that are currently active, ordered by
// title. Active means the theater can schedule showings for them today.
func (r *MovieRepo) ListNowPlaying(ctx context.Context) ([]Movie, error) {
	const q = `SELECT MovieID, Title, Genre, Runtime, ReleaseDate, Price, IsActive
               FROM Movies
               WHERE IsActive = 1
               ORDER BY Title`
	return r.list(ctx, q)
}

// ListUpcoming returns movies whose release date lies in the future
// relative to the database server's current date, ordered by release date
// ascending so the soonest release comes first.
func (r *MovieRepo) ListUpcoming(ctx context.Context) ([]Movie, error) {
	const q = `SELECT MovieID, Title, Genre, Runtime, ReleaseDate, Price, IsActive
               FROM Movies
               WHERE ReleaseDate > CURDATE()
               ORDER BY ReleaseDate ASC`
	return r.list(ctx, q)
}

// list runs one of the movie SELECTs above and scans the rows.
func (r *MovieRepo) list(ctx context.Context, q string) ([]Movie, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]Movie, 0)
	for rows.Next() {
		var m Movie
		if err := rows.Scan(
			&m.MovieID, &m.Title, &m.Genre, &m.Runtime, &m.ReleaseDate, &m.Price, &m.IsActive,
		); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
