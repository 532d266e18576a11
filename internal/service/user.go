package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/rabbitmq"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/BloggingApp/blog-service/internal/session"
	"github.com/BloggingApp/blog-service/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type userService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	uploader storage.Uploader
	auth     Auth
	mq       Publisher
	observer *session.Observer

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func newUserService(logger *zap.Logger, repo *repository.Repository, uploader storage.Uploader, auth Auth, mq Publisher, observer *session.Observer) User {
	s := &userService{
		logger:   logger,
		repo:     repo,
		uploader: uploader,
		auth:     auth,
		mq:       mq,
		observer: observer,
		inFlight: make(map[uuid.UUID]struct{}),
	}

	// On sign-out the cached profile/post state of the identity that
	// just left must not survive the session.
	var lastUID uuid.UUID
	observer.Subscribe(func(identity *session.Identity) {
		if identity != nil {
			lastUID = identity.UID
			return
		}
		if lastUID == uuid.Nil {
			return
		}
		s.invalidateCaches(context.Background(), lastUID)
		lastUID = uuid.Nil
	})

	return s
}

func (s *userService) FindProfile(ctx context.Context, uid uuid.UUID) (*model.User, error) {
	cachedUser, err := redisrepo.Get[model.User](s.repo.Redis.Default, ctx, redisrepo.UserProfileKey(uid.String()))
	if err == nil && cachedUser != nil {
		return cachedUser, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get profile(%s) from redis: %s", uid.String(), err.Error())
		return nil, ErrInternal
	}

	user, err := s.repo.Postgres.User.FindByUID(ctx, uid)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProfileNotFound
		}

		s.logger.Sugar().Errorf("failed to find profile(%s) from postgres: %s", uid.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserProfileKey(uid.String()), user, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set profile(%s) in redis: %s", uid.String(), err.Error())
	}

	return user, nil
}

// SubmitProfileUpdate runs the profile "Save" action as a forward-only
// sequence: avatar upload, then password change, then profile merge,
// then post fan-out. Once a step commits a remote side effect, later
// failures never roll it back; auth, documents, and blobs are three
// independently committed systems with no shared transaction.
//
// The avatar is uploaded before password verification. A rejected
// password therefore leaves the already-uploaded blob orphaned in the
// object store; that window is accepted and not compensated.
func (s *userService) SubmitProfileUpdate(ctx context.Context, identity session.Identity, req *dto.UpdateProfileRequest) (*dto.ProfileUpdateResult, error) {
	// An all-empty request completes without any remote call.
	if req.Empty() {
		return &dto.ProfileUpdateResult{}, nil
	}

	if !s.beginUpdate(identity.UID) {
		return nil, ErrUpdateInFlight
	}
	defer s.endUpdate(identity.UID)

	// The form resets whatever happens past this point.
	defer req.Clear()

	profile, err := s.FindProfile(ctx, identity.UID)
	if err != nil {
		return nil, err
	}

	var newAvatarURL *string
	if req.Avatar != nil {
		url, err := s.uploader.Upload(ctx, req.Avatar, profile.Email, req.AvatarContentType)
		if err != nil {
			s.logger.Sugar().Errorf("failed to upload avatar for user(%s): %s", identity.UID.String(), err.Error())
			return nil, ErrUploadFailed
		}
		newAvatarURL = &url
	}

	passwordChanged := false
	if req.HasPasswordChange() {
		if req.NewPassword != req.ConfirmPassword {
			return nil, ErrPasswordsDoNotMatch
		}

		if err := s.auth.ReverifyCredential(ctx, profile.Email, req.OldPassword); err != nil {
			return nil, err
		}

		if err := s.auth.SetNewPassword(ctx, identity.UID, req.NewPassword); err != nil {
			return nil, err
		}

		passwordChanged = true
	}

	firstNameChanged := req.FirstName != "" && req.FirstName != profile.FirstName
	lastNameChanged := req.LastName != "" && req.LastName != profile.LastName
	avatarChanged := newAvatarURL != nil

	updates := make(map[string]interface{})
	if firstNameChanged {
		updates["first_name"] = req.FirstName
	}
	if lastNameChanged {
		updates["last_name"] = req.LastName
	}
	if avatarChanged {
		updates["avatar_url"] = *newAvatarURL
	}

	profileChanged := len(updates) > 0
	if profileChanged {
		if err := s.repo.Postgres.User.Update(ctx, profile.ID, updates); err != nil {
			s.logger.Sugar().Errorf("failed to update profile(%s): %s", identity.UID.String(), err.Error())
			// A password change committed in the previous step stays
			// committed.
			return nil, ErrProfileUpdateFailed
		}

		s.invalidateCaches(ctx, identity.UID)
	}

	result := &dto.ProfileUpdateResult{
		ProfileChanged:  profileChanged,
		PasswordChanged: passwordChanged,
	}

	// Author/avatar snapshots on posts are caches with workflow-driven
	// invalidation. A fan-out failure demotes to a warning; the profile
	// update itself already committed.
	if firstNameChanged || avatarChanged {
		if err := s.fanOutToPosts(ctx, profile, firstNameChanged, req.FirstName, lastNameChanged, req.LastName, newAvatarURL); err != nil {
			s.logger.Sugar().Errorf("failed to fan out profile(%s) changes to posts: %s", identity.UID.String(), err.Error())
			result.FanOutWarning = "profile saved, but existing posts could not be refreshed"
		}
	}

	return result, nil
}

func (s *userService) fanOutToPosts(ctx context.Context, profile *model.User, firstNameChanged bool, newFirstName string, lastNameChanged bool, newLastName string, newAvatarURL *string) error {
	postUpdates := make(map[string]interface{})

	if firstNameChanged {
		firstName := newFirstName
		lastName := profile.LastName
		if lastNameChanged {
			lastName = newLastName
		}
		postUpdates["author"] = strings.TrimSpace(firstName + " " + lastName)
	}
	if newAvatarURL != nil {
		postUpdates["avatar_url"] = *newAvatarURL
	}

	posts, err := s.repo.Postgres.Post.FindAllAuthorPosts(ctx, profile.UID)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	if err := s.repo.Postgres.Post.BatchUpdateFields(ctx, posts, postUpdates); err != nil {
		return err
	}

	go func() {
		msg := dto.MQUserUpdatedMsg{UserID: profile.UID, Updates: postUpdates}
		if err := s.mq.PublishJSON(context.Background(), rabbitmq.USER_INFO_UPDATED_QUEUE, msg); err != nil {
			s.logger.Sugar().Errorf("failed to publish user(%s) updated message: %s", profile.UID.String(), err.Error())
		}
	}()

	return nil
}

func (s *userService) invalidateCaches(ctx context.Context, uid uuid.UUID) {
	keys := []string{redisrepo.UserProfileKey(uid.String())}

	authorKeys, err := s.repo.Redis.Default.Keys(ctx, redisrepo.AuthorPostsPattern(uid.String())).Result()
	if err != nil {
		s.logger.Sugar().Errorf("failed to list cached post keys for user(%s): %s", uid.String(), err.Error())
	}
	keys = append(keys, authorKeys...)

	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate caches for user(%s): %s", uid.String(), err.Error())
	}
}

// beginUpdate reserves the workflow for one identity; a second
// submission while one is in flight is rejected, not queued.
func (s *userService) beginUpdate(uid uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.inFlight[uid]; exists {
		return false
	}

	s.inFlight[uid] = struct{}{}
	return true
}

func (s *userService) endUpdate(uid uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, uid)
}
