package repository

import (
	"context"

	"github.com/Dhoini/invoice-dashboard/internal/domain"
)

// InvoiceRepository хранилище счетов. Каждый метод выполняет ровно один SQL-запрос.
type InvoiceRepository interface {
	Create(ctx context.Context, in domain.InvoiceInput, date string) error
	Update(ctx context.Context, id string, in domain.InvoiceInput) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (domain.Invoice, error)
	List(ctx context.Context) ([]domain.Invoice, error)
}

// UserRepository чтение пользователей для входа по логину и паролю
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}
