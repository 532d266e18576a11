package service

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/session"
	"github.com/BloggingApp/blog-service/internal/storage"
	"github.com/BloggingApp/blog-service/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = time.Minute * 15
	refreshTokenTTL = time.Hour * 24 * 30
)

type authService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	uploader storage.Uploader
	observer *session.Observer
}

func newAuthService(logger *zap.Logger, repo *repository.Repository, uploader storage.Uploader, observer *session.Observer) Auth {
	return &authService{
		logger:   logger,
		repo:     repo,
		uploader: uploader,
		observer: observer,
	}
}

// SignUp registers a new identity. The avatar is uploaded before the
// credential and profile writes, so a later failure can leave an
// orphaned blob behind. Credential and profile are two independent
// inserts with no shared transaction.
func (s *authService) SignUp(ctx context.Context, input dto.SignUpRequest, avatar io.Reader, avatarContentType string) (*model.User, error) {
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordsDoNotMatch
	}

	var avatarURL *string
	if avatar != nil {
		url, err := s.uploader.Upload(ctx, avatar, input.Email, avatarContentType)
		if err != nil {
			s.logger.Sugar().Errorf("failed to upload avatar for new user(%s): %s", input.Email, err.Error())
			return nil, ErrUploadFailed
		}
		avatarURL = &url
	}

	uid := uuid.New()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password for new user(%s): %s", input.Email, err.Error())
		return nil, ErrInternal
	}

	cred := model.Credential{
		UID:          uid,
		Email:        input.Email,
		PasswordHash: string(passwordHash),
	}
	if err := s.repo.Postgres.Credential.Create(ctx, cred); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}

		s.logger.Sugar().Errorf("failed to create credential for new user(%s): %s", input.Email, err.Error())
		return nil, ErrInternal
	}

	user := model.User{
		UID:       uid,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		AvatarURL: avatarURL,
	}
	createdUser, err := s.repo.Postgres.User.Create(ctx, user)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create profile for new user(%s): %s", input.Email, err.Error())
		return nil, ErrInternal
	}

	return createdUser, nil
}

func (s *authService) SignIn(ctx context.Context, input dto.SignInRequest) (*dto.SignInResponse, error) {
	cred, err := s.repo.Postgres.Credential.FindByEmail(ctx, input.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrInvalidCredentials
		}

		s.logger.Sugar().Errorf("failed to find credential(%s): %s", input.Email, err.Error())
		return nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Every authenticated uid is expected to have exactly one profile
	// document. A missing one is an integrity fault, never defaulted.
	user, err := s.repo.Postgres.User.FindByUID(ctx, cred.UID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProfileNotFound
		}

		s.logger.Sugar().Errorf("failed to find profile(%s): %s", cred.UID.String(), err.Error())
		return nil, ErrInternal
	}

	accessToken, refreshToken, err := s.generateTokenPair(cred.UID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate token pair for user(%s): %s", cred.UID.String(), err.Error())
		return nil, ErrInternal
	}

	s.observer.Set(session.Identity{UID: cred.UID, Email: cred.Email})

	return &dto.SignInResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (s *authService) SignOut(ctx context.Context) {
	s.observer.Clear()
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.SignInResponse, error) {
	claims, err := utils.DecodeJWT(refreshToken, []byte(os.Getenv("REFRESH_SECRET")))
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, ErrInvalidRefreshToken
	}
	uid, err := uuid.Parse(idString)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.repo.Postgres.User.FindByUID(ctx, uid)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProfileNotFound
		}

		s.logger.Sugar().Errorf("failed to find profile(%s): %s", uid.String(), err.Error())
		return nil, ErrInternal
	}

	accessToken, newRefreshToken, err := s.generateTokenPair(uid)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate token pair for user(%s): %s", uid.String(), err.Error())
		return nil, ErrInternal
	}

	return &dto.SignInResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         user,
	}, nil
}

// ReverifyCredential re-proves the caller's identity with a freshly
// supplied password. Mandatory before SetNewPassword.
func (s *authService) ReverifyCredential(ctx context.Context, email string, oldPassword string) error {
	cred, err := s.repo.Postgres.Credential.FindByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrCredentialRejected
		}

		s.logger.Sugar().Errorf("failed to find credential(%s): %s", email, err.Error())
		return ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrCredentialRejected
	}

	return nil
}

func (s *authService) SetNewPassword(ctx context.Context, uid uuid.UUID, newPassword string) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash new password for user(%s): %s", uid.String(), err.Error())
		return ErrPasswordChangeFailed
	}

	if err := s.repo.Postgres.Credential.UpdatePassword(ctx, uid, string(passwordHash)); err != nil {
		s.logger.Sugar().Errorf("failed to set new password for user(%s): %s", uid.String(), err.Error())
		return ErrPasswordChangeFailed
	}

	return nil
}

func (s *authService) generateTokenPair(uid uuid.UUID) (string, string, error) {
	accessToken, err := utils.GenerateJWT(jwt.MapClaims{"id": uid.String()}, []byte(os.Getenv("ACCESS_SECRET")), accessTokenTTL)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := utils.GenerateJWT(jwt.MapClaims{"id": uid.String()}, []byte(os.Getenv("REFRESH_SECRET")), refreshTokenTTL)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
