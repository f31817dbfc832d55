package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "bloghub/internal/errors"
	"bloghub/internal/model"
)

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func TestCategoryService_ListCategories(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockPostRepo := new(MockPostRepository)

	mockRepo.On("List", mock.Anything).Return([]model.Category{
		{Name: "Food"},
		{Name: "Travel"},
	}, nil)
	mockPostRepo.On("CountByCategory", mock.Anything, "Food").Return(int64(3), nil)
	mockPostRepo.On("CountByCategory", mock.Anything, "Travel").Return(int64(0), nil)

	service := NewCategoryService(mockRepo, mockPostRepo)
	categories, err := service.ListCategories(context.Background())

	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, int64(3), categories[0].Count)
	assert.Equal(t, int64(0), categories[1].Count)
	mockRepo.AssertExpectations(t)
	mockPostRepo.AssertExpectations(t)
}

func TestCategoryService_CreateCategory(t *testing.T) {
	t.Run("creates with trimmed name", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

		service := NewCategoryService(mockRepo, new(MockPostRepository))
		category, err := service.CreateCategory(context.Background(), "  Science  ", "#ff0000")

		assert.NoError(t, err)
		assert.Equal(t, "Science", category.Name)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		service := NewCategoryService(new(MockCategoryRepository), new(MockPostRepository))
		_, err := service.CreateCategory(context.Background(), "   ", "")

		assert.ErrorIs(t, err, apperrors.ErrEmptyName)
	})

	t.Run("duplicate name reported as conflict", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(gorm.ErrDuplicatedKey)

		service := NewCategoryService(mockRepo, new(MockPostRepository))
		_, err := service.CreateCategory(context.Background(), "Science", "")

		assert.ErrorIs(t, err, apperrors.ErrCategoryExists)
	})
}

func TestCategoryService_RenameCategory_PropagatesToPosts(t *testing.T) {
	categoryID := uuid.New()

	mockRepo := new(MockCategoryRepository)
	mockPostRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, categoryID).Return(&model.Category{ID: categoryID, Name: "Tech"}, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
	mockPostRepo.On("RenameCategory", mock.Anything, "Tech", "Technology").Return(nil)

	service := NewCategoryService(mockRepo, mockPostRepo)
	category, err := service.RenameCategory(context.Background(), categoryID, "Technology")

	assert.NoError(t, err)
	assert.Equal(t, "Technology", category.Name)
	mockPostRepo.AssertExpectations(t)
}

func TestCategoryService_DeleteCategory_ClearsPosts(t *testing.T) {
	categoryID := uuid.New()

	mockRepo := new(MockCategoryRepository)
	mockPostRepo := new(MockPostRepository)
	mockRepo.On("FindByID", mock.Anything, categoryID).Return(&model.Category{ID: categoryID, Name: "Tech"}, nil)
	mockRepo.On("Delete", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
	mockPostRepo.On("ClearCategory", mock.Anything, "Tech").Return(nil)

	service := NewCategoryService(mockRepo, mockPostRepo)
	err := service.DeleteCategory(context.Background(), categoryID)

	assert.NoError(t, err)
	mockPostRepo.AssertExpectations(t)

	t.Run("missing category reported", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByID", mock.Anything, categoryID).Return(nil, gorm.ErrRecordNotFound)

		service := NewCategoryService(mockRepo, new(MockPostRepository))
		assert.ErrorIs(t, service.DeleteCategory(context.Background(), categoryID), apperrors.ErrCategoryNotFound)
	})
}
