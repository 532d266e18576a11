package postgres

import (
	"context"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// credentialRepo backs the auth facade. Credentials commit
// independently from profile documents: there is deliberately no
// transaction spanning both tables.
type credentialRepo struct {
	db *pgxpool.Pool
}

func newCredentialRepo(db *pgxpool.Pool) Credential {
	return &credentialRepo{
		db: db,
	}
}

func (r *credentialRepo) Create(ctx context.Context, cred model.Credential) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO credentials(uid, email, password_hash) VALUES($1, $2, $3)",
		cred.UID,
		cred.Email,
		cred.PasswordHash,
	)
	return err
}

func (r *credentialRepo) FindByEmail(ctx context.Context, email string) (*model.Credential, error) {
	var cred model.Credential
	if err := r.db.QueryRow(
		ctx,
		"SELECT c.uid, c.email, c.password_hash FROM credentials c WHERE c.email = $1",
		email,
	).Scan(
		&cred.UID,
		&cred.Email,
		&cred.PasswordHash,
	); err != nil {
		return nil, err
	}

	return &cred, nil
}

func (r *credentialRepo) UpdatePassword(ctx context.Context, uid uuid.UUID, passwordHash string) error {
	_, err := r.db.Exec(ctx, "UPDATE credentials SET password_hash = $1 WHERE uid = $2", passwordHash, uid)
	return err
}
