package service

import (
	"context"
	"io"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/rabbitmq"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/session"
	"github.com/BloggingApp/blog-service/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher is the slice of the message queue connection the services
// need. Satisfied by *rabbitmq.MQConn.
type Publisher interface {
	PublishJSON(ctx context.Context, queue string, msg interface{}) error
}

type Auth interface {
	SignUp(ctx context.Context, input dto.SignUpRequest, avatar io.Reader, avatarContentType string) (*model.User, error)
	SignIn(ctx context.Context, input dto.SignInRequest) (*dto.SignInResponse, error)
	SignOut(ctx context.Context)
	Refresh(ctx context.Context, refreshToken string) (*dto.SignInResponse, error)
	ReverifyCredential(ctx context.Context, email string, oldPassword string) error
	SetNewPassword(ctx context.Context, uid uuid.UUID, newPassword string) error
}

type User interface {
	FindProfile(ctx context.Context, uid uuid.UUID) (*model.User, error)
	SubmitProfileUpdate(ctx context.Context, identity session.Identity, req *dto.UpdateProfileRequest) (*dto.ProfileUpdateResult, error)
}

type Post interface {
	Create(ctx context.Context, author *model.User, input dto.CreatePostRequest) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	FindAll(ctx context.Context, limit int, offset int) ([]*model.Post, error)
	FindAuthorPosts(ctx context.Context, uid uuid.UUID, limit int, offset int) ([]*model.Post, error)
	Edit(ctx context.Context, authorUID uuid.UUID, input dto.EditPostRequest) error
	Delete(ctx context.Context, id int64, authorUID uuid.UUID) error
}

type Service struct {
	Auth
	User
	Post
}

func New(logger *zap.Logger, repo *repository.Repository, uploader storage.Uploader, mq *rabbitmq.MQConn, observer *session.Observer) *Service {
	auth := newAuthService(logger, repo, uploader, observer)
	return &Service{
		Auth: auth,
		User: newUserService(logger, repo, uploader, auth, mq, observer),
		Post: newPostService(logger, repo, mq),
	}
}
