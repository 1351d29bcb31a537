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

type AliasRepository interface {
	Create(ctx context.Context, alias *entity.Alias) error
	FindAllWithAccount(ctx context.Context) ([]*entity.AliasWithAccount, error)
	FindByIDWithAccount(ctx context.Context, id uuid.UUID) (*entity.AliasWithAccount, error)
	FindByEmailWithAccount(ctx context.Context, aliasEmail string) (*entity.AliasWithAccount, error)
	ExistsByAliasEmail(ctx context.Context, aliasEmail string) (bool, error)
	UpdateAccountID(ctx context.Context, id, accountID uuid.UUID) error
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error
	UpdateIsActive(ctx context.Context, id uuid.UUID, isActive bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type aliasRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAliasRepository(db database.PgxIface, log *zap.Logger) AliasRepository {
	return &aliasRepository{
		db:  db,
		log: log.With(zap.String("repository", "alias")),
	}
}

const aliasWithAccountColumns = `
	aliases.id,
	aliases.alias_email,
	aliases.display_name,
	aliases.is_active,
	aliases.account_id,
	accounts.email,
	accounts.display_name,
	accounts.password,
	accounts.is_active
`

func (r *aliasRepository) scanAliasWithAccount(row pgx.Row) (*entity.AliasWithAccount, error) {
	var alias entity.AliasWithAccount
	err := row.Scan(
		&alias.ID,
		&alias.AliasEmail,
		&alias.DisplayName,
		&alias.IsActive,
		&alias.AccountID,
		&alias.AccountEmail,
		&alias.AccountDisplayName,
		&alias.AccountPassword,
		&alias.AccountIsActive,
	)
	if err != nil {
		return nil, err
	}
	return &alias, nil
}

func (r *aliasRepository) Create(ctx context.Context, alias *entity.Alias) error {
	query := `
		INSERT INTO aliases (id, alias_email, display_name, is_active, account_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		alias.ID,
		alias.AliasEmail,
		alias.DisplayName,
		alias.IsActive,
		alias.AccountID,
	)

	if err != nil {
		r.log.Error("Failed to create alias",
			zap.Error(err),
			zap.String("alias_email", alias.AliasEmail),
		)
		return fmt.Errorf("create alias %s: %w", alias.AliasEmail, err)
	}

	return nil
}

func (r *aliasRepository) FindAllWithAccount(ctx context.Context) ([]*entity.AliasWithAccount, error) {
	query := `
		SELECT ` + aliasWithAccountColumns + `
		FROM aliases
		JOIN accounts ON aliases.account_id = accounts.id
		ORDER BY aliases.alias_email ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get all aliases", zap.Error(err))
		return nil, fmt.Errorf("find all aliases: %w", err)
	}
	defer rows.Close()

	var aliases []*entity.AliasWithAccount
	for rows.Next() {
		var alias entity.AliasWithAccount
		err := rows.Scan(
			&alias.ID,
			&alias.AliasEmail,
			&alias.DisplayName,
			&alias.IsActive,
			&alias.AccountID,
			&alias.AccountEmail,
			&alias.AccountDisplayName,
			&alias.AccountPassword,
			&alias.AccountIsActive,
		)
		if err != nil {
			r.log.Error("Failed to scan alias row", zap.Error(err))
			return nil, fmt.Errorf("scan alias row: %w", err)
		}
		aliases = append(aliases, &alias)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate alias rows: %w", err)
	}

	return aliases, nil
}

func (r *aliasRepository) FindByIDWithAccount(ctx context.Context, id uuid.UUID) (*entity.AliasWithAccount, error) {
	query := `
		SELECT ` + aliasWithAccountColumns + `
		FROM aliases
		JOIN accounts ON aliases.account_id = accounts.id
		WHERE aliases.id = $1
	`

	alias, err := r.scanAliasWithAccount(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find alias by ID",
			zap.Error(err),
			zap.String("alias_id", id.String()),
		)
		return nil, fmt.Errorf("find alias by ID %s: %w", id.String(), err)
	}

	return alias, nil
}

func (r *aliasRepository) FindByEmailWithAccount(ctx context.Context, aliasEmail string) (*entity.AliasWithAccount, error) {
	query := `
		SELECT ` + aliasWithAccountColumns + `
		FROM aliases
		JOIN accounts ON aliases.account_id = accounts.id
		WHERE aliases.alias_email = $1
	`

	alias, err := r.scanAliasWithAccount(r.db.QueryRow(ctx, query, aliasEmail))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find alias by email",
			zap.Error(err),
			zap.String("alias_email", aliasEmail),
		)
		return nil, fmt.Errorf("find alias by email %s: %w", aliasEmail, err)
	}

	return alias, nil
}

func (r *aliasRepository) ExistsByAliasEmail(ctx context.Context, aliasEmail string) (bool, error) {
	query := `SELECT COUNT(1) FROM aliases WHERE alias_email = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, aliasEmail).Scan(&count)
	if err != nil {
		r.log.Error("Failed to check alias existence",
			zap.Error(err),
			zap.String("alias_email", aliasEmail),
		)
		return false, fmt.Errorf("check alias %s: %w", aliasEmail, err)
	}

	return count > 0, nil
}

func (r *aliasRepository) UpdateAccountID(ctx context.Context, id, accountID uuid.UUID) error {
	query := `UPDATE aliases SET account_id = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, accountID)
	if err != nil {
		r.log.Error("Failed to update alias account",
			zap.Error(err),
			zap.String("alias_id", id.String()),
		)
		return fmt.Errorf("update account for alias %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("alias %s not found", id.String())
	}

	return nil
}

func (r *aliasRepository) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	query := `UPDATE aliases SET display_name = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, displayName)
	if err != nil {
		r.log.Error("Failed to update alias display name",
			zap.Error(err),
			zap.String("alias_id", id.String()),
		)
		return fmt.Errorf("update display name for alias %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("alias %s not found", id.String())
	}

	return nil
}

func (r *aliasRepository) UpdateIsActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	query := `UPDATE aliases SET is_active = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, isActive)
	if err != nil {
		r.log.Error("Failed to update alias is_active",
			zap.Error(err),
			zap.String("alias_id", id.String()),
		)
		return fmt.Errorf("update is_active for alias %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("alias %s not found", id.String())
	}

	return nil
}

func (r *aliasRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM aliases WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete alias",
			zap.Error(err),
			zap.String("alias_id", id.String()),
		)
		return fmt.Errorf("delete alias %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("alias %s not found", id.String())
	}

	return nil
}
