package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (name, email, gender, password_hash, created_at)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Gender, user.PasswordHash, user.CreatedAt).Scan(&id)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = models.UserID(id)
	return user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, gender, password_hash, created_at FROM users
		 WHERE email = $1
		 `

	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id models.UserID) (*models.User, error) {
	if _, err := uuid.Parse(id.String()); err != nil {
		return nil, common.ErrorMalformedID
	}

	query :=
		`SELECT id, name, email, gender, password_hash, created_at FROM users
		 WHERE id = $1
		 `

	return r.getOne(ctx, query, id.String())
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var (
		id   string
		user = &models.User{}
	)

	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&id, &user.Name, &user.Email, &user.Gender, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = models.UserID(id)
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
