package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.CreatedAt = time.Now()
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO users(uid, email, first_name, last_name, avatar_url, created_at) VALUES($1, $2, $3, $4, $5, $6) RETURNING id",
		user.UID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.AvatarURL,
		user.CreatedAt,
	).Scan(&user.ID); err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByUID resolves the profile document by the auth-issued uid. At
// most one row exists per uid; zero rows surface as pgx.ErrNoRows so
// callers can report the integrity fault instead of defaulting.
func (r *userRepo) FindByUID(ctx context.Context, uid uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(
		ctx,
		"SELECT u.id, u.uid, u.email, u.first_name, u.last_name, u.avatar_url, u.created_at FROM users u WHERE u.uid = $1",
		uid,
	).Scan(
		&user.ID,
		&user.UID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.AvatarURL,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	query, args, err := buildUpdateQuery("users", updates, []string{"first_name", "last_name", "avatar_url"}, []string{"id"})
	if err != nil {
		return err
	}
	args = append(args, id)

	_, err = r.db.Exec(ctx, query, args...)
	return err
}
