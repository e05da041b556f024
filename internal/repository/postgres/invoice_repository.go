package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dhoini/invoice-dashboard/internal/domain"
	"github.com/Dhoini/invoice-dashboard/internal/repository"
	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// Набор колонок и порядок параметров совпадают с тем, что читают
// существующие потребители таблицы invoices.
const (
	insertInvoiceQuery = `INSERT INTO invoices (customer_id, amount, status, date) VALUES ($1, $2, $3, $4)`
	updateInvoiceQuery = `UPDATE invoices SET customer_id = $1, amount = $2, status = $3 WHERE id = $4`
	deleteInvoiceQuery = `DELETE FROM invoices WHERE id = $1`

	selectInvoiceQuery = `
		SELECT id::text, customer_id::text, amount, status, to_char(date, 'YYYY-MM-DD')
		FROM invoices
		WHERE id = $1
	`
	listInvoicesQuery = `
		SELECT id::text, customer_id::text, amount, status, to_char(date, 'YYYY-MM-DD')
		FROM invoices
		ORDER BY date DESC
	`
)

// PostgresInvoiceRepository реализация репозитория счетов через PostgreSQL
type PostgresInvoiceRepository struct {
	db  DBTX
	log *logger.Logger
}

// NewPostgresInvoiceRepository создает новый репозиторий счетов через PostgreSQL
func NewPostgresInvoiceRepository(db DBTX, log *logger.Logger) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{
		db:  db,
		log: log,
	}
}

var _ repository.InvoiceRepository = (*PostgresInvoiceRepository)(nil)

// Create создает новый счет. ID присваивает база.
func (r *PostgresInvoiceRepository) Create(ctx context.Context, in domain.InvoiceInput, date string) error {
	_, err := r.db.Exec(ctx, insertInvoiceQuery,
		in.CustomerID,
		in.AmountInCents(),
		string(in.Status),
		date,
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	r.log.Debugw("Invoice inserted", "customer_id", in.CustomerID, "date", date)
	return nil
}

// Update обновляет клиента, сумму и статус счета. Дата и ID не меняются.
func (r *PostgresInvoiceRepository) Update(ctx context.Context, id string, in domain.InvoiceInput) error {
	result, err := r.db.Exec(ctx, updateInvoiceQuery,
		in.CustomerID,
		in.AmountInCents(),
		string(in.Status),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete удаляет счет
func (r *PostgresInvoiceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, deleteInvoiceQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	if result.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetByID возвращает счет по ID
func (r *PostgresInvoiceRepository) GetByID(ctx context.Context, id string) (domain.Invoice, error) {
	invoice, err := scanInvoice(r.db.QueryRow(ctx, selectInvoiceQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Invoice{}, repository.ErrNotFound
		}
		return domain.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}

	return invoice, nil
}

// List возвращает все счета, новые первыми
func (r *PostgresInvoiceRepository) List(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := r.db.Query(ctx, listInvoicesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}

// scanInvoice читает строку счета. Строка со статусом вне допустимого набора
// считается поврежденной.
func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var invoice domain.Invoice
	if err := row.Scan(
		&invoice.ID,
		&invoice.CustomerID,
		&invoice.Amount,
		&invoice.Status,
		&invoice.Date,
	); err != nil {
		return domain.Invoice{}, err
	}

	if !invoice.Status.Valid() {
		return domain.Invoice{}, fmt.Errorf("%w: invoice %s has status %q", repository.ErrInvalidData, invoice.ID, invoice.Status)
	}

	return invoice, nil
}
