// internal/directory/store.go

// Package directory resolves the platform entities the return-status
// operation depends on: sellers, contractors, employees, status names and
// notification permissions. Absence is reported as a nil entity (or empty
// value), never as an error; errors mean the lookup itself failed.
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SellerByID returns the seller or nil when unknown.
func (s *Store) SellerByID(ctx context.Context, id int) (*Seller, error) {
	var seller Seller
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM sellers WHERE id = $1`, id,
	).Scan(&seller.ID, &seller.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("seller lookup: %w", err)
	}
	return &seller, nil
}

// ContractorByID returns the contractor or nil when unknown.
func (s *Store) ContractorByID(ctx context.Context, id int) (*Contractor, error) {
	var c Contractor
	err := s.db.QueryRowContext(ctx,
		`SELECT id, type, seller_id, email, mobile, first_name, last_name, name
		 FROM contractors WHERE id = $1`, id,
	).Scan(&c.ID, &c.Type, &c.SellerID, &c.Email, &c.Mobile, &c.FirstName, &c.LastName, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("contractor lookup: %w", err)
	}
	return &c, nil
}

// EmployeeByID returns the employee or nil when unknown.
func (s *Store) EmployeeByID(ctx context.Context, id int) (*Employee, error) {
	var e Employee
	err := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM employees WHERE id = $1`, id,
	).Scan(&e.ID, &e.FirstName, &e.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("employee lookup: %w", err)
	}
	return &e, nil
}

// StatusName returns the display name of a complaint status code, or ""
// when the code is unknown.
func (s *Store) StatusName(ctx context.Context, id int) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM complaint_statuses WHERE id = $1`, id,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("status lookup: %w", err)
	}
	return name, nil
}

// EmailsByPermit returns the employee addresses permitted to receive events
// of the given kind for a seller.
func (s *Store) EmailsByPermit(ctx context.Context, sellerID int, permit string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.email
		 FROM employees e
		 JOIN employee_permits p ON p.employee_id = e.id
		 WHERE p.seller_id = $1 AND p.permit = $2 AND e.email <> ''`,
		sellerID, permit,
	)
	if err != nil {
		return nil, fmt.Errorf("permit lookup: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("permit lookup: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("permit lookup: %w", err)
	}
	return emails, nil
}

// SellerEmailFrom returns the sender address configured for a seller, or
// "" when none is set.
func (s *Store) SellerEmailFrom(ctx context.Context, sellerID int) (string, error) {
	var email string
	err := s.db.QueryRowContext(ctx,
		`SELECT email_from FROM sellers WHERE id = $1`, sellerID,
	).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("sender address lookup: %w", err)
	}
	return email, nil
}
