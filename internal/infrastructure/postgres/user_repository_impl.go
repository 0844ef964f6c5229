package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zagroshq/cmms-api/internal/domain"
	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/repository"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// UserRepository persists the user aggregate. Roles are stored as a JSONB
// array on the row.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	roles, err := json.Marshal(u.Roles())
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, roles, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			roles = EXCLUDED.roles,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`, u.ID, u.Email.String(), u.PasswordHash, u.FirstName, u.LastName, u.Phone, roles, u.Active, u.CreatedAt, u.UpdatedAt)
	return err
}

const userColumns = `id, email, password_hash, first_name, last_name, phone, roles, is_active, created_at, updated_at`

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.String())
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email valueobject.Email) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email.String()).Scan(&exists)
	return exists, err
}

func (r *UserRepository) FindAll(ctx context.Context, page, limit int) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, pageOffset(page, limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// FindByRole matches on JSONB containment over the roles array.
func (r *UserRepository) FindByRole(ctx context.Context, role string) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE is_active AND roles @> to_jsonb(ARRAY[$1::text])
		ORDER BY created_at ASC
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("user %s not found", id)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id, email, passwordHash    string
		firstName, lastName, phone string
		rolesRaw                   []byte
		active                     bool
		createdAt, updatedAt       time.Time
	)
	if err := row.Scan(&id, &email, &passwordHash, &firstName, &lastName, &phone,
		&rolesRaw, &active, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("user not found")
		}
		return nil, err
	}
	var roles []string
	if len(rolesRaw) > 0 {
		if err := json.Unmarshal(rolesRaw, &roles); err != nil {
			return nil, err
		}
	}
	return entity.RestoreUser(id, valueobject.RestoreEmail(email), passwordHash,
		firstName, lastName, phone, roles, active, createdAt, updatedAt), nil
}

// pageOffset converts a 1-indexed page into a row offset.
func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

var _ repository.UserRepository = (*UserRepository)(nil)
