package account

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no account matches the lookup.
var ErrNotFound = errors.New("account not found")

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, u User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindBySocial(ctx context.Context, provider, subject string) (User, error)
	UpdateRole(ctx context.Context, id string, role Role) error
	UpdateFullName(ctx context.Context, id, fullName string) error
	UpdateTokenVersion(ctx context.Context, id string, version int) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user.
func (r *PostgresRepository) Create(ctx context.Context, u User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users
        (id, email, full_name, role, password_hash, provider, provider_subject, token_version, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Email, u.FullName, string(u.Role), u.PasswordHash, u.Provider, u.ProviderSubject, u.TokenVersion, u.CreatedAt.UTC())
	return err
}

// FindByID fetches a user by ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	return r.scanOne(r.db.QueryRow(ctx, selectUser+` WHERE id = $1`, id))
}

// FindByEmail fetches a user by email address.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.scanOne(r.db.QueryRow(ctx, selectUser+` WHERE email = $1`, email))
}

// FindBySocial fetches a user by social provider identity.
func (r *PostgresRepository) FindBySocial(ctx context.Context, provider, subject string) (User, error) {
	return r.scanOne(r.db.QueryRow(ctx, selectUser+` WHERE provider = $1 AND provider_subject = $2`, provider, subject))
}

// UpdateRole stores the user's selected role.
func (r *PostgresRepository) UpdateRole(ctx context.Context, id string, role Role) error {
	return r.exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, string(role), id)
}

// UpdateFullName backfills the user's display name.
func (r *PostgresRepository) UpdateFullName(ctx context.Context, id, fullName string) error {
	return r.exec(ctx, `UPDATE users SET full_name = $1 WHERE id = $2`, fullName, id)
}

// UpdateTokenVersion bumps the token version, invalidating outstanding tokens.
func (r *PostgresRepository) UpdateTokenVersion(ctx context.Context, id string, version int) error {
	return r.exec(ctx, `UPDATE users SET token_version = $1 WHERE id = $2`, version, id)
}

const selectUser = `SELECT id, email, full_name, role, password_hash, provider, provider_subject, token_version, created_at FROM users`

func (r *PostgresRepository) scanOne(row pgx.Row) (User, error) {
	var (
		u         User
		role      string
		createdAt time.Time
	)
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &role, &u.PasswordHash, &u.Provider, &u.ProviderSubject, &u.TokenVersion, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.Role = Role(role)
	u.CreatedAt = createdAt.UTC()
	return u, nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
