package service

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/rabbitmq"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type postService struct {
	logger *zap.Logger
	repo   *repository.Repository
	mq     Publisher
}

func newPostService(logger *zap.Logger, repo *repository.Repository, mq Publisher) Post {
	return &postService{
		logger: logger,
		repo:   repo,
		mq:     mq,
	}
}

// Create stamps the author's display name and avatar onto the post as
// denormalized snapshots. They stay as written until the profile
// update workflow re-propagates them.
func (s *postService) Create(ctx context.Context, author *model.User, input dto.CreatePostRequest) (*model.Post, error) {
	post := model.Post{
		UID:       author.UID,
		Title:     input.Title,
		Content:   input.Content,
		Author:    author.DisplayName(),
		AvatarURL: author.AvatarURL,
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", author.UID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidateListCaches(ctx, author.UID)

	go func() {
		msg := dto.MQPostCreatedMsg{
			PostID:    createdPost.ID,
			UserID:    createdPost.UID,
			PostTitle: createdPost.Title,
			CreatedAt: createdPost.CreatedAt,
		}
		if err := s.mq.PublishJSON(context.Background(), rabbitmq.POST_CREATED_QUEUE, msg); err != nil {
			s.logger.Sugar().Errorf("failed to publish post(%d) created message: %s", createdPost.ID, err.Error())
		}
	}()

	return createdPost, nil
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPostNotFound
		}

		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) FindAll(ctx context.Context, limit int, offset int) ([]*model.Post, error) {
	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.AllPostsKey(limit, offset))
	if err == nil {
		return cachedPosts, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get posts from redis: %s", err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Postgres.Post.FindAll(ctx, limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.AllPostsKey(limit, offset), posts, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set posts in redis: %s", err.Error())
	}

	return posts, nil
}

func (s *postService) FindAuthorPosts(ctx context.Context, uid uuid.UUID, limit int, offset int) ([]*model.Post, error) {
	cachedPosts, err := redisrepo.GetMany[model.Post](s.repo.Redis.Default, ctx, redisrepo.AuthorPostsKey(uid.String(), limit, offset))
	if err == nil {
		return cachedPosts, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get author(%s) posts from redis: %s", uid.String(), err.Error())
		return nil, ErrInternal
	}

	posts, err := s.repo.Postgres.Post.FindAuthorPosts(ctx, uid, limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find author(%s) posts from postgres: %s", uid.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.AuthorPostsKey(uid.String(), limit, offset), posts, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set author(%s) posts in redis: %s", uid.String(), err.Error())
	}

	return posts, nil
}

func (s *postService) Edit(ctx context.Context, authorUID uuid.UUID, input dto.EditPostRequest) error {
	updates := make(map[string]interface{})
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.repo.Postgres.Post.Update(ctx, input.ID, authorUID, updates); err != nil {
		s.logger.Sugar().Errorf("failed to edit post(%d): %s", input.ID, err.Error())
		return ErrInternal
	}

	s.invalidateListCaches(ctx, authorUID)

	return nil
}

func (s *postService) Delete(ctx context.Context, id int64, authorUID uuid.UUID) error {
	if err := s.repo.Postgres.Post.Delete(ctx, id, authorUID); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d): %s", id, err.Error())
		return ErrInternal
	}

	s.invalidateListCaches(ctx, authorUID)

	return nil
}

func (s *postService) invalidateListCaches(ctx context.Context, uid uuid.UUID) {
	var keys []string

	for _, pattern := range []string{"posts:*", redisrepo.AuthorPostsPattern(uid.String())} {
		patternKeys, err := s.repo.Redis.Default.Keys(ctx, pattern).Result()
		if err != nil {
			s.logger.Sugar().Errorf("failed to list cached keys(%s): %s", pattern, err.Error())
			continue
		}
		keys = append(keys, patternKeys...)
	}

	if len(keys) == 0 {
		return
	}

	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate post caches for user(%s): %s", uid.String(), err.Error())
	}
}
