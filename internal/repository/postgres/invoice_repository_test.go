package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/Dhoini/invoice-dashboard/internal/domain"
	"github.com/Dhoini/invoice-dashboard/internal/repository"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	calls   []execCall
	tag     pgconn.CommandTag
	execErr error
	row     pgx.Row
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return f.tag, f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return nil, errors.New("query not supported by fake")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	return f.row
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// invoiceRow отдает в Scan готовые значения колонок счета
type invoiceRow struct{ invoice domain.Invoice }

func (r invoiceRow) Scan(dest ...any) error {
	*dest[0].(*string) = r.invoice.ID
	*dest[1].(*string) = r.invoice.CustomerID
	*dest[2].(*int64) = r.invoice.Amount
	*dest[3].(*domain.InvoiceStatus) = r.invoice.Status
	*dest[4].(*string) = r.invoice.Date
	return nil
}

var input = domain.InvoiceInput{CustomerID: "c1", Amount: 45.50, Status: domain.InvoiceStatusPending}

func TestInvoiceRepository_CreateParameters(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := NewPostgresInvoiceRepository(db, logger.NewNop())

	require.NoError(t, repo.Create(context.Background(), input, "2026-10-14"))

	require.Len(t, db.calls, 1)
	assert.Equal(t, "INSERT INTO invoices (customer_id, amount, status, date) VALUES ($1, $2, $3, $4)", db.calls[0].sql)
	assert.Equal(t, []any{"c1", int64(4550), "pending", "2026-10-14"}, db.calls[0].args)
}

func TestInvoiceRepository_UpdateParameters(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("UPDATE 1")}
	repo := NewPostgresInvoiceRepository(db, logger.NewNop())

	require.NoError(t, repo.Update(context.Background(), "inv-1", input))

	require.Len(t, db.calls, 1)
	assert.Equal(t, "UPDATE invoices SET customer_id = $1, amount = $2, status = $3 WHERE id = $4", db.calls[0].sql)
	assert.Equal(t, []any{"c1", int64(4550), "pending", "inv-1"}, db.calls[0].args)
}

func TestInvoiceRepository_UpdateMissingRow(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("UPDATE 0")}
	repo := NewPostgresInvoiceRepository(db, logger.NewNop())

	err := repo.Update(context.Background(), "inv-404", input)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInvoiceRepository_Delete(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 1")}
	repo := NewPostgresInvoiceRepository(db, logger.NewNop())

	require.NoError(t, repo.Delete(context.Background(), "inv-1"))
	assert.Equal(t, "DELETE FROM invoices WHERE id = $1", db.calls[0].sql)
	assert.Equal(t, []any{"inv-1"}, db.calls[0].args)
}

func TestInvoiceRepository_ExecErrorIsWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	db := &fakeDB{execErr: boom}
	repo := NewPostgresInvoiceRepository(db, logger.NewNop())

	err := repo.Delete(context.Background(), "inv-1")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to delete invoice")
}

func TestInvoiceRepository_GetByIDNotFound(t *testing.T) {
	db := &fakeDB{row: errRow{err: pgx.ErrNoRows}}
	repo := NewPostgresInvoiceRepository(db, logger.NewNop())

	_, err := repo.GetByID(context.Background(), "inv-404")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInvoiceRepository_GetByID(t *testing.T) {
	want := domain.Invoice{ID: "inv-1", CustomerID: "c1", Amount: 4550, Status: domain.InvoiceStatusPaid, Date: "2026-10-14"}
	db := &fakeDB{row: invoiceRow{invoice: want}}
	repo := NewPostgresInvoiceRepository(db, logger.NewNop())

	got, err := repo.GetByID(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInvoiceRepository_GetByIDRejectsUnknownStatus(t *testing.T) {
	db := &fakeDB{row: invoiceRow{invoice: domain.Invoice{ID: "inv-1", Status: "overdue"}}}
	repo := NewPostgresInvoiceRepository(db, logger.NewNop())

	_, err := repo.GetByID(context.Background(), "inv-1")
	assert.ErrorIs(t, err, repository.ErrInvalidData)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_GetByEmailNotFound(t *testing.T) {
	db := &fakeDB{row: errRow{err: pgx.ErrNoRows}}
	repo := NewPostgresUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, []any{"nobody@example.com"}, db.calls[0].args)
}
