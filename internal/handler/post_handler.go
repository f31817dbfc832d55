package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bloghub/internal/auth"
	"bloghub/internal/errors"
	"bloghub/internal/model"
	"bloghub/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title         string   `json:"title" validate:"required"`
	Content       string   `json:"content" validate:"required"`
	Excerpt       string   `json:"excerpt"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featured_image"`
	Published     bool     `json:"published"`
}

// UpdatePostRequest represents a partial post update. Absent fields are
// left unchanged; the slug is not updatable.
type UpdatePostRequest struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	Category      *string  `json:"category"`
	Tags          []string `json:"tags"`
	FeaturedImage *string  `json:"featured_image"`
	Published     *bool    `json:"published"`
}

// AuthorSummary is the author projection embedded in post responses.
type AuthorSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar,omitempty"`
}

// PostResponse is the API projection of a post.
type PostResponse struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Content       string        `json:"content"`
	Excerpt       string        `json:"excerpt,omitempty"`
	Slug          string        `json:"slug"`
	Author        AuthorSummary `json:"author"`
	Category      string        `json:"category,omitempty"`
	Tags          []string      `json:"tags"`
	FeaturedImage string        `json:"featured_image,omitempty"`
	Published     bool          `json:"published"`
	PublishedAt   *time.Time    `json:"published_at,omitempty"`
	Views         int64         `json:"views"`
	LikeCount     int           `json:"like_count"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// FeedResponse is the composed feed returned by the list endpoint.
type FeedResponse struct {
	Posts     []PostResponse `json:"posts"`
	Total     int            `json:"total"`
	Published int            `json:"published"`
	Drafts    int            `json:"drafts"`
}

// LikeResponse reports the like state after a toggle.
type LikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

func toPostResponse(p *model.Post) PostResponse {
	tags := p.Tags
	if tags == nil {
		tags = model.StringList{}
	}
	return PostResponse{
		ID:      p.ID,
		Title:   p.Title,
		Content: p.Content,
		Excerpt: p.Excerpt,
		Slug:    p.Slug,
		Author: AuthorSummary{
			ID:       p.Author.ID,
			Username: p.Author.Username,
			Avatar:   p.Author.Avatar,
		},
		Category:      p.Category,
		Tags:          tags,
		FeaturedImage: p.FeaturedImage,
		Published:     p.Published,
		PublishedAt:   p.PublishedAt,
		Views:         p.Views,
		LikeCount:     len(p.Likes),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// currentClaims extracts the authenticated user's claims set by the JWT middleware.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// ListPosts godoc
// @Summary List posts
// @Description Returns the post feed filtered, sorted, and searched per query parameters
// @Tags posts
// @Produce json
// @Param filter query string false "Publication filter" Enums(all, published, draft) default(all)
// @Param sortBy query string false "Sort order" Enums(newest, oldest, views, title) default(newest)
// @Param search query string false "Case-insensitive search over title, excerpt, and tags"
// @Param category query string false "Restrict to a category name"
// @Success 200 {object} FeedResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	params := service.FeedParams{
		Filter:   c.QueryParam("filter"),
		SortBy:   c.QueryParam("sortBy"),
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
	}

	view, err := h.postService.ListPosts(c.Request().Context(), params)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	posts := make([]PostResponse, 0, len(view.Items))
	for i := range view.Items {
		posts = append(posts, toPostResponse(&view.Items[i]))
	}

	return c.JSON(http.StatusOK, FeedResponse{
		Posts:     posts,
		Total:     view.Total,
		Published: view.Published,
		Drafts:    view.Drafts,
	})
}

// GetPost godoc
// @Summary Get a post by UUID or slug
// @Description The identifier is treated as a surrogate ID when it parses as a canonical UUID, otherwise as a slug
// @Tags posts
// @Produce json
// @Param identifier path string true "Post UUID or slug"
// @Success 200 {object} PostResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts/{identifier} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("identifier"), true)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} PostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.CreatePost(c.Request().Context(), claims.UserID, service.CreatePostInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Category:      req.Category,
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
		Published:     req.Published,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, toPostResponse(post))
}

// UpdatePost godoc
// @Summary Update a post
// @Description Partial update addressed by UUID or slug; only the post author or an admin may update
// @Tags posts
// @Accept json
// @Produce json
// @Param identifier path string true "Post UUID or slug"
// @Param request body UpdatePostRequest true "Fields to update"
// @Success 200 {object} PostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{identifier} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), claims.UserID, claims.Role, c.Param("identifier"), service.UpdatePostInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Category:      req.Category,
		Tags:          req.Tags,
		FeaturedImage: req.FeaturedImage,
		Published:     req.Published,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, toPostResponse(post))
}

// DeletePost godoc
// @Summary Delete a post
// @Description Addressed by UUID or slug; only the post author or an admin may delete
// @Tags posts
// @Produce json
// @Param identifier path string true "Post UUID or slug"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{identifier} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), claims.UserID, claims.Role, c.Param("identifier")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "post deleted successfully",
	})
}

// ToggleLike godoc
// @Summary Toggle a like on a post
// @Tags posts
// @Produce json
// @Param identifier path string true "Post UUID or slug"
// @Success 200 {object} LikeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /posts/{identifier}/like [post]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	post, liked, err := h.postService.ToggleLike(c.Request().Context(), claims.UserID, c.Param("identifier"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, LikeResponse{
		Liked:     liked,
		LikeCount: len(post.Likes),
	})
}
