package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "bloghub/internal/errors"
	"bloghub/internal/model"
	"bloghub/internal/repository"
)

// CategoryWithCount pairs a category with the number of posts referencing it.
type CategoryWithCount struct {
	model.Category
	Count int64 `json:"count"`
}

// CategoryService manages the category vocabulary. Posts reference categories
// by name, so renames and deletions are propagated to the post table.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]CategoryWithCount, error)
	CreateCategory(ctx context.Context, name, color string) (*model.Category, error)
	RenameCategory(ctx context.Context, id uuid.UUID, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	postRepo repository.PostRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepository, postRepo repository.PostRepository) CategoryService {
	return &categoryService{repo: repo, postRepo: postRepo}
}

// ListCategories lists all categories with per-name post counts.
func (s *categoryService) ListCategories(ctx context.Context) ([]CategoryWithCount, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := s.postRepo.CountByCategory(ctx, category.Name)
		if err != nil {
			return nil, fmt.Errorf("count posts for %q: %w", category.Name, err)
		}
		out = append(out, CategoryWithCount{Category: category, Count: count})
	}
	return out, nil
}

// CreateCategory adds a new category name to the vocabulary.
func (s *categoryService) CreateCategory(ctx context.Context, name, color string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrEmptyName
	}

	category := &model.Category{Name: name, Color: color}
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// RenameCategory renames a category and rewrites the name on all posts.
func (s *categoryService) RenameCategory(ctx context.Context, id uuid.UUID, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ErrEmptyName
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	oldName := category.Name
	category.Name = name
	if err := s.repo.Save(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, fmt.Errorf("rename category: %w", err)
	}

	if oldName != name {
		if err := s.postRepo.RenameCategory(ctx, oldName, name); err != nil {
			return nil, fmt.Errorf("propagate rename: %w", err)
		}
	}
	return category, nil
}

// DeleteCategory removes a category and clears it from all posts.
func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}

	if err := s.repo.Delete(ctx, category); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if err := s.postRepo.ClearCategory(ctx, category.Name); err != nil {
		return fmt.Errorf("clear category from posts: %w", err)
	}
	return nil
}
