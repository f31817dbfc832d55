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

// CommentService handles comment operations. Posts are addressed by either
// identifier scheme, same as the post endpoints.
type CommentService interface {
	ListForPost(ctx context.Context, postIdent string) ([]model.Comment, error)
	AddComment(ctx context.Context, authorID uuid.UUID, postIdent, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, actorID uuid.UUID, actorRole string, commentID uuid.UUID) error
}

type commentService struct {
	repo     repository.CommentRepository
	postRepo repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(repo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{repo: repo, postRepo: postRepo}
}

// ListForPost lists a post's comments, oldest first.
func (s *commentService) ListForPost(ctx context.Context, postIdent string) ([]model.Comment, error) {
	post, err := resolvePost(ctx, s.postRepo, postIdent)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// AddComment attaches a comment to the addressed post.
func (s *commentService) AddComment(ctx context.Context, authorID uuid.UUID, postIdent, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ErrEmptyContent
	}

	post, err := resolvePost(ctx, s.postRepo, postIdent)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content:  content,
		AuthorID: authorID,
		PostID:   post.ID,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a comment; allowed for its author or an admin.
func (s *commentService) DeleteComment(ctx context.Context, actorID uuid.UUID, actorRole string, commentID uuid.UUID) error {
	comment, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return fmt.Errorf("find comment: %w", err)
	}

	if comment.AuthorID != actorID && actorRole != model.RoleAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, comment); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
