package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/BloggingApp/blog-service/internal/session"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeCredentialRepo struct {
	creds map[string]*model.Credential

	createErr error
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{creds: make(map[string]*model.Credential)}
}

func (f *fakeCredentialRepo) Create(ctx context.Context, cred model.Credential) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.creds[cred.Email] = &cred
	return nil
}

func (f *fakeCredentialRepo) FindByEmail(ctx context.Context, email string) (*model.Credential, error) {
	cred, ok := f.creds[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cred, nil
}

func (f *fakeCredentialRepo) UpdatePassword(ctx context.Context, uid uuid.UUID, passwordHash string) error {
	for _, cred := range f.creds {
		if cred.UID == uid {
			cred.PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newAuthEnv(t *testing.T) (*fakeCredentialRepo, *fakeUserRepo, *fakeUploader, Auth) {
	t.Helper()
	t.Setenv("ACCESS_SECRET", "access-secret")
	t.Setenv("REFRESH_SECRET", "refresh-secret")

	creds := newFakeCredentialRepo()
	users := &fakeUserRepo{user: testProfile()}
	uploader := &fakeUploader{url: "https://cdn.example.com/blog-assets/profileImages/x"}

	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			User:       users,
			Credential: creds,
		},
		Redis: &redisrepo.RedisRepository{Default: fakeRedis{}},
	}

	auth := newAuthService(zap.NewNop(), repo, uploader, session.NewObserver())
	return creds, users, uploader, auth
}

func TestSignUp_PasswordMismatch(t *testing.T) {
	_, _, uploader, auth := newAuthEnv(t)

	_, err := auth.SignUp(context.Background(), dto.SignUpRequest{
		FirstName:       "Ada",
		LastName:        "L",
		Email:           "ada@example.com",
		Password:        "secret",
		ConfirmPassword: "different",
	}, nil, "")

	assert.ErrorIs(t, err, ErrPasswordsDoNotMatch)
	assert.Equal(t, 0, uploader.calls)
}

func TestSignUp_CreatesCredentialAndProfile(t *testing.T) {
	creds, _, uploader, auth := newAuthEnv(t)

	user, err := auth.SignUp(context.Background(), dto.SignUpRequest{
		FirstName:       "Ada",
		LastName:        "L",
		Email:           "ada@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	}, bytes.NewBufferString("img"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, 1, uploader.calls)
	require.NotNil(t, user.AvatarURL)
	assert.Equal(t, uploader.url, *user.AvatarURL)

	cred, ok := creds.creds["ada@example.com"]
	require.True(t, ok)
	assert.Equal(t, user.UID, cred.UID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte("secret")))
}

func TestSignIn_WrongPassword(t *testing.T) {
	creds, _, _, auth := newAuthEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	creds.creds["ada@example.com"] = &model.Credential{UID: uuid.New(), Email: "ada@example.com", PasswordHash: string(hash)}

	_, err = auth.SignIn(context.Background(), dto.SignInRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignIn_MissingProfileIsIntegrityFault(t *testing.T) {
	creds, users, _, auth := newAuthEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	creds.creds["ada@example.com"] = &model.Credential{UID: uuid.New(), Email: "ada@example.com", PasswordHash: string(hash)}
	users.findErr = pgx.ErrNoRows

	_, err = auth.SignIn(context.Background(), dto.SignInRequest{Email: "ada@example.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestSignIn_ReturnsTokenPair(t *testing.T) {
	creds, users, _, auth := newAuthEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	uid := users.user.UID
	creds.creds["ada@example.com"] = &model.Credential{UID: uid, Email: "ada@example.com", PasswordHash: string(hash)}

	resp, err := auth.SignIn(context.Background(), dto.SignInRequest{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, uid, resp.User.UID)
}

func TestReverifyCredential(t *testing.T) {
	creds, _, _, auth := newAuthEnv(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	creds.creds["ada@example.com"] = &model.Credential{UID: uuid.New(), Email: "ada@example.com", PasswordHash: string(hash)}

	assert.NoError(t, auth.ReverifyCredential(context.Background(), "ada@example.com", "secret"))
	assert.ErrorIs(t, auth.ReverifyCredential(context.Background(), "ada@example.com", "wrong"), ErrCredentialRejected)
	assert.ErrorIs(t, auth.ReverifyCredential(context.Background(), "nobody@example.com", "secret"), ErrCredentialRejected)
}

func TestSetNewPassword_ReplacesHash(t *testing.T) {
	creds, _, _, auth := newAuthEnv(t)

	uid := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("old"), bcrypt.DefaultCost)
	require.NoError(t, err)
	creds.creds["ada@example.com"] = &model.Credential{UID: uid, Email: "ada@example.com", PasswordHash: string(hash)}

	require.NoError(t, auth.SetNewPassword(context.Background(), uid, "brand-new"))

	cred := creds.creds["ada@example.com"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte("brand-new")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte("old")))
}
