package user

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"homesteadhub/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Postgres-backed user repository.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const userColumns = `id::text, username, password_hash, email, role, COALESCE(shipping_address, ''), COALESCE(farm_name, ''), COALESCE(location, ''), created_at`

func (r *postgresRepo) Save(ctx context.Context, user domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (id, username, password_hash, email, role, shipping_address, farm_name, location)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
ON CONFLICT (username) DO UPDATE SET
    password_hash = EXCLUDED.password_hash,
    email = EXCLUDED.email,
    shipping_address = EXCLUDED.shipping_address,
    farm_name = EXCLUDED.farm_name,
    location = EXCLUDED.location
RETURNING id::text, created_at
`
	res := user
	err := r.pool.QueryRow(ctx, q,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Email,
		string(user.Role),
		user.ShippingAddress,
		user.FarmName,
		user.Location,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: save username=%s error=%v", user.Username, err)
		return nil, err
	}
	r.logger.Printf("user repo: saved username=%s id=%s role=%s", res.Username, res.ID, res.Role)
	return &res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.fetchUser(ctx, q, id)
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1)`
	return r.fetchUser(ctx, q, username)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("user repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var u domain.User
		var role string
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &role, &u.ShippingAddress, &u.FarmName, &u.Location, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = domain.Role(role)
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) fetchUser(ctx context.Context, q string, args ...interface{}) (*domain.User, error) {
	var u domain.User
	var role string
	err := r.pool.QueryRow(ctx, q, args...).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
		&role,
		&u.ShippingAddress,
		&u.FarmName,
		&u.Location,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: fetch error=%v", err)
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}
