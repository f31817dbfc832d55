package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bloghub/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Save(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindBySlug(ctx context.Context, slug string) (*model.Post, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ListAll(ctx context.Context) ([]model.Post, error)
	Delete(ctx context.Context, post *model.Post) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	CountByCategory(ctx context.Context, category string) (int64, error)
	ClearCategory(ctx context.Context, category string) error
	RenameCategory(ctx context.Context, from, to string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Save persists all fields of an existing post.
func (r *postRepository) Save(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// FindByID finds a post by its surrogate key.
func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Author").Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug finds a post by its slug.
func (r *postRepository) FindBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ExistsBySlug reports whether a slug is already taken.
func (r *postRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAll lists all posts with their author, newest first by creation time.
func (r *postRepository) ListAll(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Preload("Author").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes a post. Comments go with it via the FK cascade.
func (r *postRepository) Delete(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Delete(post).Error
}

// IncrementViews bumps the view counter without touching updated_at.
func (r *postRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// CountByCategory counts posts referencing a category name.
func (r *postRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("category = ?", category).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ClearCategory removes a category name from all posts that reference it.
func (r *postRepository) ClearCategory(ctx context.Context, category string) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("category = ?", category).
		Update("category", "").Error
}

// RenameCategory updates the category name on all posts that reference it.
func (r *postRepository) RenameCategory(ctx context.Context, from, to string) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("category = ?", from).
		Update("category", to).Error
}
