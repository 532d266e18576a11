package service

import (
	"context"
	"testing"

	"github.com/BloggingApp/blog-service/internal/dto"
	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"github.com/BloggingApp/blog-service/internal/repository/redisrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPostEnv(t *testing.T, posts []*model.Post) (*fakePostRepo, Post) {
	t.Helper()

	postRepo := &fakePostRepo{posts: posts}
	repo := &repository.Repository{
		Postgres: &postgres.PostgresRepository{Post: postRepo},
		Redis:    &redisrepo.RedisRepository{Default: fakeRedis{}},
	}

	return postRepo, newPostService(zap.NewNop(), repo, &fakePublisher{})
}

func TestPostCreate_StampsAuthorSnapshot(t *testing.T) {
	_, svc := newPostEnv(t, nil)

	author := testProfile()
	post, err := svc.Create(context.Background(), author, dto.CreatePostRequest{
		Title:   "First post",
		Content: "Some content long enough to publish",
	})

	require.NoError(t, err)
	assert.Equal(t, author.UID, post.UID)
	assert.Equal(t, "A L", post.Author)
	require.NotNil(t, post.AvatarURL)
	assert.Equal(t, "old.png", *post.AvatarURL)
}

func TestPostEdit_EmptyPatchIsNoOp(t *testing.T) {
	_, svc := newPostEnv(t, nil)

	author := testProfile()
	err := svc.Edit(context.Background(), author.UID, dto.EditPostRequest{ID: 1})

	assert.NoError(t, err)
}

func TestPostFindByID_NotFound(t *testing.T) {
	_, svc := newPostEnv(t, nil)

	_, err := svc.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostFindAuthorPosts(t *testing.T) {
	author := testProfile()
	posts := []*model.Post{
		{ID: 1, UID: author.UID},
		{ID: 2, UID: author.UID},
	}
	_, svc := newPostEnv(t, posts)

	got, err := svc.FindAuthorPosts(context.Background(), author.UID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
