package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dhoini/invoice-dashboard/internal/domain"
	"github.com/Dhoini/invoice-dashboard/internal/repository"
	"github.com/jackc/pgx/v5"
)

// PostgresUserRepository чтение пользователей из PostgreSQL
type PostgresUserRepository struct {
	db DBTX
}

// NewPostgresUserRepository создает новый репозиторий пользователей
func NewPostgresUserRepository(db DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var _ repository.UserRepository = (*PostgresUserRepository)(nil)

// GetByEmail возвращает пользователя по email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `SELECT id::text, name, email, password FROM users WHERE email = $1`

	var user domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, repository.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
