package repository

import (
	"context"
	"fmt"

	"mailgate/internal/data/entity"
	"mailgate/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindAll(ctx context.Context) ([]*entity.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindActiveByEmail(ctx context.Context, email string) (*entity.Account, error)
	UpdateIsActive(ctx context.Context, id uuid.UUID, isActive bool) error
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type accountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccountRepository(db database.PgxIface, log *zap.Logger) AccountRepository {
	return &accountRepository{
		db:  db,
		log: log.With(zap.String("repository", "account")),
	}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, email, display_name, password, is_active)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.Email,
		account.DisplayName,
		account.Password,
		account.IsActive,
	)

	if err != nil {
		r.log.Error("Failed to create account",
			zap.Error(err),
			zap.String("email", account.Email),
		)
		return fmt.Errorf("create account %s: %w", account.Email, err)
	}

	return nil
}

func (r *accountRepository) scanAccount(row pgx.Row) (*entity.Account, error) {
	var account entity.Account
	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.DisplayName,
		&account.Password,
		&account.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindAll(ctx context.Context) ([]*entity.Account, error) {
	query := `
		SELECT id, email, display_name, password, is_active
		FROM accounts
		ORDER BY email ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get all accounts", zap.Error(err))
		return nil, fmt.Errorf("find all accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*entity.Account
	for rows.Next() {
		var account entity.Account
		err := rows.Scan(
			&account.ID,
			&account.Email,
			&account.DisplayName,
			&account.Password,
			&account.IsActive,
		)
		if err != nil {
			r.log.Error("Failed to scan account row", zap.Error(err))
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	query := `
		SELECT id, email, display_name, password, is_active
		FROM accounts
		WHERE id = $1
	`

	account, err := r.scanAccount(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by ID",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return nil, fmt.Errorf("find account by ID %s: %w", id.String(), err)
	}

	return account, nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `
		SELECT id, email, display_name, password, is_active
		FROM accounts
		WHERE email = $1
	`

	account, err := r.scanAccount(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find account by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find account by email %s: %w", email, err)
	}

	return account, nil
}

// FindActiveByEmail: match exact dan case-sensitive, hanya account aktif.
func (r *accountRepository) FindActiveByEmail(ctx context.Context, email string) (*entity.Account, error) {
	query := `
		SELECT id, email, display_name, password, is_active
		FROM accounts
		WHERE email = $1 AND is_active = true
	`

	account, err := r.scanAccount(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active account by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find active account by email %s: %w", email, err)
	}

	return account, nil
}

func (r *accountRepository) UpdateIsActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	query := `UPDATE accounts SET is_active = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, isActive)
	if err != nil {
		r.log.Error("Failed to update account is_active",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return fmt.Errorf("update is_active for account %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %s not found", id.String())
	}

	return nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, password string) error {
	query := `UPDATE accounts SET password = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, password)
	if err != nil {
		r.log.Error("Failed to update account password",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return fmt.Errorf("update password for account %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %s not found", id.String())
	}

	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM accounts WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete account",
			zap.Error(err),
			zap.String("account_id", id.String()),
		)
		return fmt.Errorf("delete account %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account %s not found", id.String())
	}

	return nil
}
