package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"testing"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/repository"
)

// =========================================================================
// MOCK REPOSITORY
// =========================================================================

type mockPostRepo struct {
	posts  map[int64]*model.Post
	nextID int64
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[int64]*model.Post)}
}

func (m *mockPostRepo) ListPosts(_ context.Context, opts repository.PostListOptions) ([]model.Post, error) {
	result := make([]model.Post, 0, len(m.posts))
	for _, p := range m.posts {
		if !opts.IncludeUnpublished && !p.IsPublished {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockPostRepo) GetPostByID(_ context.Context, id int64) (*model.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, apperror.NotFound("post", strconv.FormatInt(id, 10))
	}
	result := *p
	return &result, nil
}

func (m *mockPostRepo) GetPostBySlug(_ context.Context, slug string) (*model.Post, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			result := *p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("post", slug)
}

func (m *mockPostRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPostRepo) CreatePost(_ context.Context, post *model.Post) error {
	for _, p := range m.posts {
		if p.Slug == post.Slug {
			return apperror.Conflict("slug already exists")
		}
	}
	m.nextID++
	post.ID = m.nextID
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockPostRepo) UpdatePost(_ context.Context, id int64, patch model.PostPatch) (*model.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, apperror.NotFound("post", strconv.FormatInt(id, 10))
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Summary != nil {
		p.Summary = *patch.Summary
	}
	if patch.IsPublished != nil {
		p.IsPublished = *patch.IsPublished
	}
	result := *p
	return &result, nil
}

func (m *mockPostRepo) DeletePost(_ context.Context, id int64) error {
	if _, ok := m.posts[id]; !ok {
		return apperror.NotFound("post", strconv.FormatInt(id, 10))
	}
	delete(m.posts, id)
	return nil
}

// =========================================================================
// TEST HELPER
// =========================================================================

func newTestPostService(t *testing.T) (*PostService, *mockPostRepo) {
	t.Helper()
	repo := newMockPostRepo()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewPostService(repo, logger), repo
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestPostCreate_GeneratesSlug(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, PostInput{Title: "Yeni Ürün Duyurusu", Content: "body"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if post.Slug != "yeni-urun-duyurusu" {
		t.Errorf("Create() slug = %q, want %q", post.Slug, "yeni-urun-duyurusu")
	}
	if !post.IsPublished {
		t.Error("Create() should default to published")
	}
}

func TestPostCreate_DuplicateTitleGetsSuffixedSlug(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, PostInput{Title: "Summer Sale"})
	if err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	second, err := svc.Create(ctx, PostInput{Title: "Summer Sale"})
	if err != nil {
		t.Fatalf("second Create() error = %v", err)
	}
	third, err := svc.Create(ctx, PostInput{Title: "Summer Sale"})
	if err != nil {
		t.Fatalf("third Create() error = %v", err)
	}

	if first.Slug != "summer-sale" {
		t.Errorf("first slug = %q, want %q", first.Slug, "summer-sale")
	}
	if second.Slug != "summer-sale-2" {
		t.Errorf("second slug = %q, want %q", second.Slug, "summer-sale-2")
	}
	if third.Slug != "summer-sale-3" {
		t.Errorf("third slug = %q, want %q", third.Slug, "summer-sale-3")
	}
}

func TestPostCreate_RequiresTitle(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, PostInput{Title: "   ", Content: "body"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Create(blank title) error = %v, want ErrValidation", err)
	}
}

func TestPostCreate_ExplicitDraft(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()

	draft := false
	post, err := svc.Create(ctx, PostInput{Title: "Draft Post", IsPublished: &draft})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if post.IsPublished {
		t.Error("Create() ignored is_published=false")
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestPostGet_ByIDAndBySlug(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, PostInput{Title: "Atölyeden Haberler"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Integer syntax resolves by ID, anything else by slug. Both paths must
	// land on the same record.
	byID, err := svc.Get(ctx, "1")
	if err != nil {
		t.Fatalf("Get(by id) error = %v", err)
	}
	bySlug, err := svc.Get(ctx, created.Slug)
	if err != nil {
		t.Fatalf("Get(by slug) error = %v", err)
	}

	if byID.ID != bySlug.ID {
		t.Errorf("Get() by id and by slug returned different posts: %d vs %d", byID.ID, bySlug.ID)
	}
}

func TestPostGet_Unknown(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "999"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get(unknown id) error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Get(ctx, "no-such-slug"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Get(unknown slug) error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Get(ctx, "  "); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Get(blank) error = %v, want ErrValidation", err)
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestPostUpdate_SlugIsImmutable(t *testing.T) {
	svc, repo := newTestPostService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, PostInput{Title: "Original Title"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newTitle := "Completely Different Title"
	updated, err := svc.Update(ctx, created.ID, model.PostPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != newTitle {
		t.Errorf("Update() title = %q, want %q", updated.Title, newTitle)
	}
	if updated.Slug != created.Slug {
		t.Errorf("Update() changed the slug from %q to %q — existing links would break", created.Slug, updated.Slug)
	}
	if repo.posts[created.ID].Slug != created.Slug {
		t.Error("Update() changed the stored slug")
	}
}

func TestPostUpdate_BlankTitleRejected(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, PostInput{Title: "Keep Me"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	blank := "  "
	_, err = svc.Update(ctx, created.ID, model.PostPatch{Title: &blank})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Update(blank title) error = %v, want ErrValidation", err)
	}
}

// =========================================================================
// LIST / DELETE TESTS
// =========================================================================

func TestPostList_FiltersDrafts(t *testing.T) {
	svc, _ := newTestPostService(t)
	ctx := context.Background()

	draft := false
	if _, err := svc.Create(ctx, PostInput{Title: "Published One"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, PostInput{Title: "Hidden Draft", IsPublished: &draft}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	public, err := svc.List(ctx, false)
	if err != nil {
		t.Fatalf("List(public) error = %v", err)
	}
	if len(public) != 1 {
		t.Errorf("public List() returned %d posts, want 1", len(public))
	}

	all, err := svc.List(ctx, true)
	if err != nil {
		t.Fatalf("List(all) error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin List() returned %d posts, want 2", len(all))
	}
}

func TestPostDelete(t *testing.T) {
	svc, repo := newTestPostService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, PostInput{Title: "Short Lived"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(repo.posts) != 0 {
		t.Error("Delete() left the post in the store")
	}

	if err := svc.Delete(ctx, created.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete(again) error = %v, want ErrNotFound", err)
	}
}
