package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/repository"
)

// PostService handles business logic for blog posts.
type PostService struct {
	repo   repository.PostRepository
	logger *slog.Logger
}

func NewPostService(repo repository.PostRepository, logger *slog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

// PostInput carries the fields accepted when creating a post.
// IsPublished defaults to true when absent.
type PostInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Image       string `json:"image"`
	Summary     string `json:"summary"`
	IsPublished *bool  `json:"is_published"`
}

// List returns posts newest-first. Unpublished drafts are included only
// when includeUnpublished is set (the admin listing).
func (s *PostService) List(ctx context.Context, includeUnpublished bool) ([]model.Post, error) {
	posts, err := s.repo.ListPosts(ctx, repository.PostListOptions{
		IncludeUnpublished: includeUnpublished,
	})
	if err != nil {
		s.logger.Error("failed to list posts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return posts, nil
}

// Get resolves a post by numeric ID or by slug — integer syntax selects the
// ID lookup, anything else is treated as a slug. Slugs never look like bare
// integers (they come from titles), so the two key spaces don't collide.
func (s *PostService) Get(ctx context.Context, idOrSlug string) (*model.Post, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return nil, apperror.ValidationFailed("id", "post id or slug is required")
	}

	if id, err := strconv.ParseInt(idOrSlug, 10, 64); err == nil {
		return s.repo.GetPostByID(ctx, id)
	}
	return s.repo.GetPostBySlug(ctx, idOrSlug)
}

// Create validates and persists a new post. The slug is derived from the
// title; if it is already taken, a numeric suffix is appended (-2, -3, ...)
// rather than failing — two posts may legitimately share a title.
func (s *PostService) Create(ctx context.Context, in PostInput) (*model.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "post title is required")
	}

	slug, err := s.uniqueSlug(ctx, Slugify(title))
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	isPublished := true
	if in.IsPublished != nil {
		isPublished = *in.IsPublished
	}

	post := &model.Post{
		Title:       title,
		Slug:        slug,
		Content:     in.Content,
		Image:       in.Image,
		Summary:     in.Summary,
		IsPublished: isPublished,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost a race on the slug; extremely rare.
			return nil, err
		}
		s.logger.Error("failed to create post",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.Int64("id", post.ID),
		slog.String("slug", post.Slug),
	)

	return post, nil
}

// Update applies a partial update from the fixed allow-list (title, content,
// image, summary, is_published). The slug is immutable — editing the title
// does not break existing links.
func (s *PostService) Update(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, apperror.ValidationFailed("title", "post title must not be empty")
	}

	post, err := s.repo.UpdatePost(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		s.logger.Info("post updated", slog.Int64("id", id))
	}

	return post, nil
}

// Delete removes a post permanently.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return err
	}
	s.logger.Info("post deleted", slog.Int64("id", id))
	return nil
}

// uniqueSlug returns base, or base-2, base-3, ... — the first form not yet
// present in the store.
func (s *PostService) uniqueSlug(ctx context.Context, base string) (string, error) {
	slug := base
	for n := 2; ; n++ {
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
