package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nghiatran/devconnect/internal/domain/post"
	"github.com/nghiatran/devconnect/pkg/logger"
)

// Likes and comments are JSONB columns on the post row; the whole document
// is rewritten on every mutation, which is what makes concurrent toggles a
// last-write-wins race.
type postgresPostRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPostRepo(db *pgxpool.Pool, log logger.Logger) post.Repository {
	return &postgresPostRepo{db: db, logger: log}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const postColumns = "id, owner_id, text, name, avatar, likes, comments, created_at"

func scanPost(row pgx.Row) (*post.Post, error) {
	p := &post.Post{}
	var likesBytes, commentsBytes []byte

	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Text,
		&p.Name,
		&p.Avatar,
		&likesBytes,
		&commentsBytes,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to scan post row: %w", err)
	}

	if err := json.Unmarshal(likesBytes, &p.Likes); err != nil {
		p.Likes = []post.Like{}
	}
	if err := json.Unmarshal(commentsBytes, &p.Comments); err != nil {
		p.Comments = []post.Comment{}
	}
	return p, nil
}

func (r *postgresPostRepo) Save(ctx context.Context, p *post.Post) error {
	likesBytes, err := json.Marshal(p.Likes)
	if err != nil {
		return fmt.Errorf("failed to marshal post likes: %w", err)
	}
	commentsBytes, err := json.Marshal(p.Comments)
	if err != nil {
		return fmt.Errorf("failed to marshal post comments: %w", err)
	}

	query := `
		INSERT INTO posts (id, owner_id, text, name, avatar, likes, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query,
		p.ID, p.OwnerID, p.Text, p.Name, p.Avatar, likesBytes, commentsBytes, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

func (r *postgresPostRepo) Update(ctx context.Context, p *post.Post) error {
	likesBytes, err := json.Marshal(p.Likes)
	if err != nil {
		return fmt.Errorf("failed to marshal post likes: %w", err)
	}
	commentsBytes, err := json.Marshal(p.Comments)
	if err != nil {
		return fmt.Errorf("failed to marshal post comments: %w", err)
	}

	query := `
		UPDATE posts SET likes = $2, comments = $3
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query, p.ID, likesBytes, commentsBytes)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (r *postgresPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id = $1`, postColumns)
	return scanPost(r.db.QueryRow(ctx, query, id))
}

func (r *postgresPostRepo) ListAll(ctx context.Context) ([]*post.Post, error) {
	query, args, err := psql.
		Select(postColumns).
		From("posts").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build post list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*post.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row during iteration: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

func (r *postgresPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

// DeleteByOwner removes every post the user owns; deleting zero rows is fine.
func (r *postgresPostRepo) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM posts WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete posts by owner: %w", err)
	}
	return nil
}
