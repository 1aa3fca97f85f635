// Package repository: ticket sales. Reads are plain SELECTs; the purchase
// path wraps the Process_Ticket_Purchase stored procedure in a transaction.
// The procedure and its triggers own all purchase rules (overselling,
// showings already started or finished, unknown ids) — this layer only
// commits, rolls back and translates the database's verdict.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
)

// mysqlSignalException is ER_SIGNAL_EXCEPTION, raised by SIGNAL SQLSTATE
// '45000' inside the purchase procedure and its triggers.
const mysqlSignalException = 1644

// TicketSale represents a row of the TicketSales table.
type TicketSale struct {
	TicketSaleID   int64     // TicketSales.TicketSaleID
	CustomerID     int64     // TicketSales.CustomerID
	ShowtimeID     int64     // TicketSales.ShowtimeID
	TicketPrice    float64   // TicketSales.TicketPrice
	TimeTicketSold time.Time // TicketSales.TimeTicketSold
}

// TicketHistoryEntry is one row of a customer's purchase history: the sale
// joined with its showtime and movie.
type TicketHistoryEntry struct {
	TicketSaleID   int64     // TicketSales.TicketSaleID
	MovieTitle     string    // Movies.Title
	ShowtimeID     int64     // Showtimes.ShowtimeID
	TheaterID      int64     // Showtimes.TheaterID
	StartTime      time.Time // Showtimes.StartTime
	TicketPrice    float64   // TicketSales.TicketPrice
	TimeTicketSold time.Time // TicketSales.TimeTicketSold
}

// TicketRepo manages ticket sales, including the transactional purchase.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// ListAll returns every ticket sale, most recent first. When no sales
// exist it returns an empty slice and nil error.
func (r *TicketRepo) ListAll(ctx context.Context) ([]TicketSale, error) {
	const q = `SELECT TicketSaleID, CustomerID, ShowtimeID, TicketPrice, TimeTicketSold
               FROM TicketSales
               ORDER BY TimeTicketSold DESC`
	return r.list(ctx, q)
}

// ListSoldToday returns the ticket sales recorded on the database server's
// current date, most recent first.
func (r *TicketRepo) ListSoldToday(ctx context.Context) ([]TicketSale, error) {
	const q = `SELECT TicketSaleID, CustomerID, ShowtimeID, TicketPrice, TimeTicketSold
               FROM TicketSales
               WHERE DATE(TimeTicketSold) = CURDATE()
               ORDER BY TimeTicketSold DESC`
	return r.list(ctx, q)
}

func (r *TicketRepo) list(ctx context.Context, q string) ([]TicketSale, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]TicketSale, 0)
	for rows.Next() {
		var t TicketSale
		if err := rows.Scan(&t.TicketSaleID, &t.CustomerID, &t.ShowtimeID, &t.TicketPrice, &t.TimeTicketSold); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// HistoryByCustomer returns a customer's full purchase history joined with
// showtime and movie details, most recent sale first. A customer with no
// purchases yields an empty slice, not an error.
func (r *TicketRepo) HistoryByCustomer(ctx context.Context, customerID int64) ([]TicketHistoryEntry, error) {
	const q = `SELECT t.TicketSaleID, m.Title, s.ShowtimeID, s.TheaterID, s.StartTime, t.TicketPrice, t.TimeTicketSold
               FROM TicketSales t
               JOIN Showtimes s ON t.ShowtimeID = s.ShowtimeID
               JOIN Movies m ON s.MovieID = m.MovieID
               WHERE t.CustomerID = ?
               ORDER BY t.TimeTicketSold DESC`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]TicketHistoryEntry, 0)
	for rows.Next() {
		var e TicketHistoryEntry
		if err := rows.Scan(
			&e.TicketSaleID, &e.MovieTitle, &e.ShowtimeID, &e.TheaterID, &e.StartTime, &e.TicketPrice, &e.TimeTicketSold,
		); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// PurchaseTicket calls the Process_Ticket_Purchase stored procedure inside
// a transaction. On success the transaction is committed and the new sale
// row exists. When the procedure or a trigger raises a rule violation
// (SIGNAL SQLSTATE '45000') the transaction is rolled back and a
// *PurchaseRejectedError carrying the database's message is returned. Any
// other failure also rolls back and is propagated untranslated. There is no
// retry: a rejected purchase must be resubmitted by the caller.
func (r *TicketRepo) PurchaseTicket(ctx context.Context, customerID, showtimeID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `CALL Process_Ticket_Purchase(?, ?)`, customerID, showtimeID); err != nil {
		_ = tx.Rollback()
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlSignalException {
			return &PurchaseRejectedError{Message: me.Message}
		}
		return err
	}
	return tx.Commit()
}
