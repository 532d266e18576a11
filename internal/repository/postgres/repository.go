package postgres

import (
	"context"
	"fmt"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const MAX_LIMIT = 20

func maxLimit(limit *int) {
	if *limit > MAX_LIMIT {
		*limit = MAX_LIMIT
	}
}

type User interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	FindByUID(ctx context.Context, uid uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
}

type Credential interface {
	Create(ctx context.Context, cred model.Credential) error
	FindByEmail(ctx context.Context, email string) (*model.Credential, error)
	UpdatePassword(ctx context.Context, uid uuid.UUID, passwordHash string) error
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindAll(ctx context.Context, limit int, offset int) ([]*model.Post, error)
	FindAuthorPosts(ctx context.Context, uid uuid.UUID, limit int, offset int) ([]*model.Post, error)
	FindAllAuthorPosts(ctx context.Context, uid uuid.UUID) ([]*model.Post, error)
	Update(ctx context.Context, id int64, authorUID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64, authorUID uuid.UUID) error
	BatchUpdateFields(ctx context.Context, posts []*model.Post, updates map[string]interface{}) error
}

type PostgresRepository struct {
	User
	Credential
	Post
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		User:       newUserRepo(db),
		Credential: newCredentialRepo(db),
		Post:       newPostRepo(db),
	}
}

func DB(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, dsn(cfg))
}

func dsn(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)
}
