package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bloghub/internal/errors"
	"bloghub/internal/model"
	"bloghub/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a comment creation request.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CommentResponse is the API projection of a comment.
type CommentResponse struct {
	ID        uuid.UUID     `json:"id"`
	Content   string        `json:"content"`
	Author    AuthorSummary `json:"author"`
	PostID    uuid.UUID     `json:"post_id"`
	CreatedAt time.Time     `json:"created_at"`
}

func toCommentResponse(cm *model.Comment) CommentResponse {
	return CommentResponse{
		ID:      cm.ID,
		Content: cm.Content,
		// AuthorID is authoritative; the Author relation is only populated
		// on list reads where it is preloaded.
		Author: AuthorSummary{
			ID:       cm.AuthorID,
			Username: cm.Author.Username,
			Avatar:   cm.Author.Avatar,
		},
		PostID:    cm.PostID,
		CreatedAt: cm.CreatedAt,
	}
}

// ListComments godoc
// @Summary List comments on a post
// @Description The post is addressed by UUID or slug; comments are returned oldest first
// @Tags comments
// @Produce json
// @Param identifier path string true "Post UUID or slug"
// @Success 200 {array} CommentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/{identifier}/comments [get]
func (h *CommentHandler) ListComments(c echo.Context) error {
	comments, err := h.commentService.ListForPost(c.Request().Context(), c.Param("identifier"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentResponse(&comments[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateComment godoc
// @Summary Add a comment to a post
// @Tags comments
// @Accept json
// @Produce json
// @Param identifier path string true "Post UUID or slug"
// @Param request body CreateCommentRequest true "Comment data"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{identifier}/comments [post]
func (h *CommentHandler) CreateComment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.AddComment(c.Request().Context(), claims.UserID, c.Param("identifier"), req.Content)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Only the comment author or an admin may delete
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid comment ID")
	}

	if err := h.commentService.DeleteComment(c.Request().Context(), claims.UserID, claims.Role, commentID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "comment deleted successfully",
	})
}
