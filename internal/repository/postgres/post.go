package postgres

import (
	"context"
	"time"

	"github.com/BloggingApp/blog-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO posts(uid, title, content, author, avatar_url, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7) RETURNING id",
		post.UID,
		post.Title,
		post.Content,
		post.Author,
		post.AvatarURL,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		"SELECT p.id, p.uid, p.title, p.content, p.author, p.avatar_url, p.created_at, p.updated_at FROM posts p WHERE p.id = $1",
		id,
	).Scan(
		&post.ID,
		&post.UID,
		&post.Title,
		&post.Content,
		&post.Author,
		&post.AvatarURL,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindAll(ctx context.Context, limit int, offset int) ([]*model.Post, error) {
	maxLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`SELECT
		p.id, p.uid, p.title, p.content, p.author, p.avatar_url, p.created_at, p.updated_at
		FROM posts p
		ORDER BY p.created_at DESC
		LIMIT $1
		OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepo) FindAuthorPosts(ctx context.Context, uid uuid.UUID, limit int, offset int) ([]*model.Post, error) {
	maxLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`SELECT
		p.id, p.uid, p.title, p.content, p.author, p.avatar_url, p.created_at, p.updated_at
		FROM posts p
		WHERE p.uid = $1
		LIMIT $2
		OFFSET $3`,
		uid,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// FindAllAuthorPosts returns every post of one author, unpaged. The
// fan-out step must reach all of them, so no limit clamp applies here.
func (r *postRepo) FindAllAuthorPosts(ctx context.Context, uid uuid.UUID) ([]*model.Post, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT
		p.id, p.uid, p.title, p.content, p.author, p.avatar_url, p.created_at, p.updated_at
		FROM posts p
		WHERE p.uid = $1`,
		uid,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows pgx.Rows) ([]*model.Post, error) {
	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID,
			&post.UID,
			&post.Title,
			&post.Content,
			&post.Author,
			&post.AvatarURL,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepo) Update(ctx context.Context, id int64, authorUID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	updates["updated_at"] = time.Now()

	query, args, err := buildUpdateQuery("posts", updates, []string{"title", "content", "updated_at"}, []string{"id", "uid"})
	if err != nil {
		return err
	}
	args = append(args, id, authorUID)

	_, err = r.db.Exec(ctx, query, args...)
	return err
}

func (r *postRepo) Delete(ctx context.Context, id int64, authorUID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1 AND uid = $2", id, authorUID)
	return err
}

// BatchUpdateFields applies one merge-patch to every given post inside
// a single transaction. Either every post gets the patch or none does;
// a partial batch never commits.
func (r *postRepo) BatchUpdateFields(ctx context.Context, posts []*model.Post, updates map[string]interface{}) error {
	if len(posts) == 0 || len(updates) == 0 {
		return nil
	}

	query, args, err := buildUpdateQuery("posts", updates, []string{"author", "avatar_url"}, []string{"id"})
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, post := range posts {
		postArgs := make([]interface{}, len(args), len(args)+1)
		copy(postArgs, args)
		postArgs = append(postArgs, post.ID)
		batch.Queue(query, postArgs...)
	}

	results := tx.SendBatch(ctx, batch)
	for range posts {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
