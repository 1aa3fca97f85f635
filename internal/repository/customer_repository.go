package repository

import (
	"context"
	"database/sql"
)

// Customer represents a row of the Customers table. MembershipStatus is
// stored as TINYINT(1): true means the customer holds a membership.
type Customer struct {
	CustomerID       int64  // Customers.CustomerID
	FName            string // Customers.FName
	LName            string // Customers.LName
	MembershipStatus bool   // Customers.MembershipStatus
}

// CustomerRepo manages read access to customers.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo with the given DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// ListAll returns every customer ordered by id. When no customers exist it
// returns an empty slice and nil error.
func (r *CustomerRepo) ListAll(ctx context.Context) ([]Customer, error) {
	const q = `SELECT CustomerID, FName, LName, MembershipStatus
               FROM Customers
               ORDER BY CustomerID`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]Customer, 0)
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.CustomerID, &c.FName, &c.LName, &c.MembershipStatus); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
