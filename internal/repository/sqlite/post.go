package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/repository"
)

// compile-time check that *DB implements repository.PostRepository
var _ repository.PostRepository = (*DB)(nil)

const postColumns = `id, title, slug, content, image, summary, is_published, created_at`

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Image,
		&p.Summary, &p.IsPublished, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPosts returns posts newest-first. By default only published posts are
// returned; the admin listing asks for unpublished ones too.
func (db *DB) ListPosts(ctx context.Context, opts repository.PostListOptions) ([]model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id DESC`
	if !opts.IncludeUnpublished {
		query = `SELECT ` + postColumns + ` FROM posts WHERE is_published = 1 ORDER BY created_at DESC, id DESC`
	}

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning post row: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating posts: %w", err)
	}

	return posts, nil
}

// GetPostByID retrieves a post by its numeric ID.
func (db *DB) GetPostByID(ctx context.Context, id int64) (*model.Post, error) {
	p, err := scanPost(db.conn.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("post", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting post %d: %w", id, err)
	}
	return p, nil
}

// GetPostBySlug retrieves a post by its unique slug.
func (db *DB) GetPostBySlug(ctx context.Context, slug string) (*model.Post, error) {
	p, err := scanPost(db.conn.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("post", slug)
		}
		return nil, fmt.Errorf("sqlite: getting post by slug %s: %w", slug, err)
	}
	return p, nil
}

// SlugExists reports whether a post already uses the given slug.
func (db *DB) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE slug = ?`, slug,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking slug %s: %w", slug, err)
	}
	return count > 0, nil
}

// CreatePost inserts a new post. The UNIQUE constraint on slug backs up the
// service-level collision handling; a race between two identical titles
// surfaces as Conflict.
func (db *DB) CreatePost(ctx context.Context, post *model.Post) error {
	post.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO posts (title, slug, content, image, summary, is_published, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		post.Title,
		post.Slug,
		post.Content,
		post.Image,
		post.Summary,
		post.IsPublished,
		post.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict(fmt.Sprintf("slug %s already in use", post.Slug))
		}
		return fmt.Errorf("sqlite: inserting post %s: %w", post.Slug, err)
	}

	post.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading inserted post id: %w", err)
	}

	return nil
}

// UpdatePost applies a partial update and returns the resulting record.
// Same shape as UpdateProduct: fixed column names, caller values only.
func (db *DB) UpdatePost(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error) {
	set := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if patch.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		set = append(set, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.Image != nil {
		set = append(set, "image = ?")
		args = append(args, *patch.Image)
	}
	if patch.Summary != nil {
		set = append(set, "summary = ?")
		args = append(args, *patch.Summary)
	}
	if patch.IsPublished != nil {
		set = append(set, "is_published = ?")
		args = append(args, *patch.IsPublished)
	}

	if len(set) > 0 {
		args = append(args, id)
		res, err := db.conn.ExecContext(ctx,
			`UPDATE posts SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: updating post %d: %w", id, err)
		}
		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return nil, apperror.NotFound("post", strconv.FormatInt(id, 10))
		}
	}

	return db.GetPostByID(ctx, id)
}

// DeletePost removes a post permanently. Posts have no referential history
// to preserve, so unlike products this is a hard delete.
func (db *DB) DeletePost(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM posts WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting post %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("post", strconv.FormatInt(id, 10))
	}

	return nil
}
