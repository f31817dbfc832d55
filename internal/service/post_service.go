package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloghub/internal/cache"
	apperrors "bloghub/internal/errors"
	"bloghub/internal/identifier"
	"bloghub/internal/model"
	"bloghub/internal/repository"
	"bloghub/internal/slug"
)

const (
	feedCacheKey = "posts:all"
	feedCacheTTL = 30 * time.Second

	// maxCreateAttempts bounds the allocate-insert retry loop. Each lost
	// insert race makes the next allocation see the winner's slug, so a
	// handful of attempts is plenty.
	maxCreateAttempts = 5

	// fallbackSlug is used when a title reduces to an empty slug
	// (all punctuation); the uniquifying suffix keeps these apart.
	fallbackSlug = "post"
)

// CreatePostInput carries the fields accepted at post creation.
type CreatePostInput struct {
	Title         string
	Content       string
	Excerpt       string
	Category      string
	Tags          []string
	FeaturedImage string
	Published     bool
}

// UpdatePostInput is a partial patch; nil fields are left unchanged.
// The slug is never part of a patch: it is immutable after first assignment.
type UpdatePostInput struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Category      *string
	Tags          []string // nil means unchanged
	FeaturedImage *string
	Published     *bool
}

// PostService handles post operations.
type PostService interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, in CreatePostInput) (*model.Post, error)
	GetPost(ctx context.Context, ident string, countView bool) (*model.Post, error)
	UpdatePost(ctx context.Context, actorID uuid.UUID, actorRole, ident string, in UpdatePostInput) (*model.Post, error)
	DeletePost(ctx context.Context, actorID uuid.UUID, actorRole, ident string) error
	ToggleLike(ctx context.Context, userID uuid.UUID, ident string) (*model.Post, bool, error)
	ListPosts(ctx context.Context, params FeedParams) (*FeedView, error)
}

type postService struct {
	repo  repository.PostRepository
	cache *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(repo repository.PostRepository, cache *cache.Client) PostService {
	return &postService{repo: repo, cache: cache}
}

// CreatePost validates input, allocates a unique slug, and inserts the post.
// Slug allocation is check-then-act: a concurrent creation with the same title
// can win the insert race, in which case the store's unique constraint fires
// and the loop re-allocates against the new state.
func (s *postService) CreatePost(ctx context.Context, authorID uuid.UUID, in CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.ErrEmptyTitle
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyContent
	}

	candidate := slug.Generate(title)
	if candidate == "" {
		candidate = fallbackSlug
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		allocated, err := slug.AllocateUnique(ctx, candidate, s.repo.ExistsBySlug)
		if err != nil {
			if errors.Is(err, slug.ErrSpaceExhausted) {
				return nil, apperrors.ErrSlugConflict
			}
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
		}

		post := &model.Post{
			Title:         title,
			Content:       content,
			Excerpt:       strings.TrimSpace(in.Excerpt),
			Slug:          allocated,
			AuthorID:      authorID,
			Category:      strings.TrimSpace(in.Category),
			Tags:          normalizeTags(in.Tags),
			FeaturedImage: strings.TrimSpace(in.FeaturedImage),
			Likes:         model.StringList{},
		}
		post.SetPublished(in.Published, time.Now())

		err = s.repo.Create(ctx, post)
		if err == nil {
			s.invalidateFeed(ctx)
			return post, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race; the allocator will see the winner's row next pass.
			continue
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	return nil, apperrors.ErrSlugConflict
}

// GetPost resolves the identifier and fetches the post with exactly one
// record lookup. countView bumps the view counter for public reads.
func (s *postService) GetPost(ctx context.Context, ident string, countView bool) (*model.Post, error) {
	post, err := resolvePost(ctx, s.repo, ident)
	if err != nil {
		return nil, err
	}

	if countView {
		if err := s.repo.IncrementViews(ctx, post.ID); err != nil {
			return nil, fmt.Errorf("increment views: %w", err)
		}
		post.Views++
	}

	return post, nil
}

// UpdatePost applies a partial patch to the post addressed by either
// identifier scheme. Toggling publication keeps the invariant
// published == (publishedAt != nil). The slug is left untouched.
func (s *postService) UpdatePost(ctx context.Context, actorID uuid.UUID, actorRole, ident string, in UpdatePostInput) (*model.Post, error) {
	post, err := resolvePost(ctx, s.repo, ident)
	if err != nil {
		return nil, err
	}
	if err := authorizeMutation(post, actorID, actorRole); err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperrors.ErrEmptyTitle
		}
		post.Title = title
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, apperrors.ErrEmptyContent
		}
		post.Content = content
	}
	if in.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*in.Excerpt)
	}
	if in.Category != nil {
		post.Category = strings.TrimSpace(*in.Category)
	}
	if in.Tags != nil {
		post.Tags = normalizeTags(in.Tags)
	}
	if in.FeaturedImage != nil {
		post.FeaturedImage = strings.TrimSpace(*in.FeaturedImage)
	}
	if in.Published != nil {
		post.SetPublished(*in.Published, time.Now())
	}

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	s.invalidateFeed(ctx)
	return post, nil
}

// DeletePost removes the post addressed by either identifier scheme.
func (s *postService) DeletePost(ctx context.Context, actorID uuid.UUID, actorRole, ident string) error {
	post, err := resolvePost(ctx, s.repo, ident)
	if err != nil {
		return err
	}
	if err := authorizeMutation(post, actorID, actorRole); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, post); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.invalidateFeed(ctx)
	return nil
}

// ToggleLike adds or removes the user from the post's like set and reports
// whether the post is now liked.
func (s *postService) ToggleLike(ctx context.Context, userID uuid.UUID, ident string) (*model.Post, bool, error) {
	post, err := resolvePost(ctx, s.repo, ident)
	if err != nil {
		return nil, false, err
	}

	liked := post.ToggleLike(userID)
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, false, fmt.Errorf("toggle like: %w", err)
	}
	s.invalidateFeed(ctx)
	return post, liked, nil
}

// ListPosts fetches the collection (through a short-lived cache) and composes
// the requested view. Composition is pure, so the same cached snapshot serves
// every combination of parameters.
func (s *postService) ListPosts(ctx context.Context, params FeedParams) (*FeedView, error) {
	posts, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	view := ComposeFeed(posts, params)
	return &view, nil
}

// resolvePost classifies the identifier and performs exactly one record
// fetch. The same classification backs get, update, delete, like, and
// comment listing, so a given identifier always routes the same way.
func resolvePost(ctx context.Context, repo repository.PostRepository, ident string) (*model.Post, error) {
	var (
		post *model.Post
		err  error
	)
	switch identifier.Classify(ident) {
	case identifier.Surrogate:
		id, parseErr := uuid.Parse(ident)
		if parseErr != nil {
			return nil, apperrors.ErrPostNotFound
		}
		post, err = repo.FindByID(ctx, id)
	default:
		post, err = repo.FindBySlug(ctx, ident)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return post, nil
}

func (s *postService) fetchAll(ctx context.Context) ([]model.Post, error) {
	if data, _ := s.cache.Get(ctx, feedCacheKey); data != nil {
		var cached []model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	if payload, err := json.Marshal(posts); err == nil {
		_ = s.cache.Set(ctx, feedCacheKey, payload, feedCacheTTL)
	}
	return posts, nil
}

func (s *postService) invalidateFeed(ctx context.Context) {
	_ = s.cache.Delete(ctx, feedCacheKey)
}

func authorizeMutation(post *model.Post, actorID uuid.UUID, actorRole string) error {
	if post.AuthorID == actorID || actorRole == model.RoleAdmin {
		return nil
	}
	return apperrors.ErrForbidden
}

// normalizeTags trims entries and drops empties, preserving order.
func normalizeTags(tags []string) model.StringList {
	out := make(model.StringList, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
