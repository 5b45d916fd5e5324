package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fate-inyeon/internal/database"
	"fate-inyeon/internal/domain/account"
)

type AccountRepository struct {
	db database.DB
}

func NewAccountRepository(db database.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, a account.Account) (account.Account, error) {
	a.ID = uuid.NewString()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO accounts (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Email, a.PasswordHash, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return account.Account{}, account.ErrEmailTaken
		}
		return account.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (account.Account, error) {
	if !validID(id) {
		return account.Account{}, account.ErrNotFound
	}
	return r.getOne(ctx, `SELECT id, email, password_hash, created_at FROM accounts WHERE id = $1`, id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, created_at FROM accounts WHERE email = $1`, email)
}

func (r *AccountRepository) getOne(ctx context.Context, q string, arg string) (account.Account, error) {
	var a account.Account
	if err := r.db.QueryRow(ctx, q, arg).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		if isNoRows(err) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, fmt.Errorf("select account: %w", err)
	}
	return a, nil
}
