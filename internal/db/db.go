package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Dhoini/invoice-dashboard/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

//go:embed schema.sql
var schema string

// DBClient служебный клиент базы данных для миграций и заполнения
// демонстрационными данными. Обработка запросов идет через pgxpool.
type DBClient struct {
	db  *sqlx.DB
	log *logger.Logger
}

// NewDBClient создает новый экземпляр DBClient.
func NewDBClient(ctx context.Context, dsn string, log *logger.Logger) (*DBClient, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		log.Errorw("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewDBClientWithDB(db, log), nil
}

// NewDBClientWithDB оборачивает уже открытое соединение
func NewDBClientWithDB(db *sqlx.DB, log *logger.Logger) *DBClient {
	return &DBClient{db: db, log: log}
}

// Close закрывает соединение с базой данных.
func (dc *DBClient) Close() error {
	if err := dc.db.Close(); err != nil {
		dc.log.Errorw("Failed to close database connection", "error", err)
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// Migrate создает таблицы, если их еще нет. Повторный запуск безопасен.
func (dc *DBClient) Migrate(ctx context.Context) error {
	return dc.inTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		dc.log.Infow("Database schema applied")
		return nil
	})
}

// SeedUser описывает пользователя для заполнения базы
type SeedUser struct {
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"-"`
	Hash     string `db:"password"`
}

// DefaultSeedUsers пользователь для локального входа
var DefaultSeedUsers = []SeedUser{
	{Name: "User", Email: "user@nextmail.com", Password: "123456"},
}

// SeedInvoice описывает счет для заполнения базы
type SeedInvoice struct {
	CustomerID string `db:"customer_id"`
	Amount     int64  `db:"amount"`
	Status     string `db:"status"`
	Date       string `db:"date"`
}

const insertUserQuery = `
	INSERT INTO users (name, email, password)
	VALUES (:name, :email, :password)
	ON CONFLICT (email) DO NOTHING
`

const insertInvoiceQuery = `
	INSERT INTO invoices (customer_id, amount, status, date)
	VALUES (:customer_id, :amount, :status, :date)
`

// Seed добавляет пользователей и счета одной транзакцией. Пароли хешируются bcrypt.
func (dc *DBClient) Seed(ctx context.Context, users []SeedUser, invoices []SeedInvoice) error {
	for i := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(users[i].Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", users[i].Email, err)
		}
		users[i].Hash = string(hash)
	}

	return dc.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, u := range users {
			if _, err := tx.NamedExecContext(ctx, insertUserQuery, u); err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
			}
		}
		for _, inv := range invoices {
			if _, err := tx.NamedExecContext(ctx, insertInvoiceQuery, inv); err != nil {
				return fmt.Errorf("failed to seed invoice: %w", err)
			}
		}
		dc.log.Infow("Database seeded", "users", len(users), "invoices", len(invoices))
		return nil
	})
}

func (dc *DBClient) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := dc.db.BeginTxx(ctx, nil)
	if err != nil {
		dc.log.Errorw("Failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			dc.log.Errorw("Failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		dc.log.Errorw("Failed to commit transaction", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
