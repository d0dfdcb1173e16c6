// internal/directory/store_test.go
package directory

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestStore_SellerByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM sellers WHERE id = \$1`).
		WithArgs(14).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(14, "Acme Resellers"))

	store := NewStore(db)
	seller, err := store.SellerByID(context.Background(), 14)

	assert.NoError(t, err)
	assert.NotNil(t, seller)
	assert.Equal(t, 14, seller.ID)
	assert.Equal(t, "Acme Resellers", seller.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SellerByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM sellers WHERE id = \$1`).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	store := NewStore(db)
	seller, err := store.SellerByID(context.Background(), 99)

	// Absence is not an error.
	assert.NoError(t, err)
	assert.Nil(t, seller)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SellerByID_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name FROM sellers WHERE id = \$1`).
		WithArgs(14).
		WillReturnError(errors.New("connection reset"))

	store := NewStore(db)
	seller, err := store.SellerByID(context.Background(), 14)

	assert.Error(t, err)
	assert.Nil(t, seller)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ContractorByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, type, seller_id, email, mobile, first_name, last_name, name`).
		WithArgs(201).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "type", "seller_id", "email", "mobile", "first_name", "last_name", "name",
		}).AddRow(201, ContractorTypeCustomer, 14, "client@example.com", "+15550100", "Jane", "Cooper", "J. Cooper"))

	store := NewStore(db)
	c, err := store.ContractorByID(context.Background(), 201)

	assert.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, ContractorTypeCustomer, c.Type)
	assert.Equal(t, 14, c.SellerID)
	assert.Equal(t, "Jane Cooper", c.FullName())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractor_FullName_Fallback(t *testing.T) {
	c := &Contractor{Name: "J. Cooper"}
	assert.Empty(t, c.FullName())

	c.FirstName = "Jane"
	assert.Equal(t, "Jane", c.FullName())

	c.LastName = "Cooper"
	assert.Equal(t, "Jane Cooper", c.FullName())
}

func TestStore_EmployeeByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, first_name, last_name FROM employees WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}).
			AddRow(7, "Alex", "Morgan"))

	store := NewStore(db)
	e, err := store.EmployeeByID(context.Background(), 7)

	assert.NoError(t, err)
	assert.NotNil(t, e)
	assert.Equal(t, "Alex Morgan", e.FullName())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_StatusName_Unknown(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT name FROM complaint_statuses WHERE id = \$1`).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	store := NewStore(db)
	name, err := store.StatusName(context.Background(), 42)

	assert.NoError(t, err)
	assert.Empty(t, name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_EmailsByPermit(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT e.email`).
		WithArgs(14, "tsGoodsReturn").
		WillReturnRows(sqlmock.NewRows([]string{"email"}).
			AddRow("returns@acme.example").
			AddRow("support@acme.example"))

	store := NewStore(db)
	emails, err := store.EmailsByPermit(context.Background(), 14, "tsGoodsReturn")

	assert.NoError(t, err)
	assert.Equal(t, []string{"returns@acme.example", "support@acme.example"}, emails)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_EmailsByPermit_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT e.email`).
		WithArgs(14, "tsGoodsReturn").
		WillReturnRows(sqlmock.NewRows([]string{"email"}))

	store := NewStore(db)
	emails, err := store.EmailsByPermit(context.Background(), 14, "tsGoodsReturn")

	assert.NoError(t, err)
	assert.Empty(t, emails)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SellerEmailFrom(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT email_from FROM sellers WHERE id = \$1`).
		WithArgs(14).
		WillReturnRows(sqlmock.NewRows([]string{"email_from"}).
			AddRow("noreply@acme.example"))

	store := NewStore(db)
	from, err := store.SellerEmailFrom(context.Background(), 14)

	assert.NoError(t, err)
	assert.Equal(t, "noreply@acme.example", from)

	assert.NoError(t, mock.ExpectationsWereMet())
}
