package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrPostNotFound is returned when no post matches the given identifier.
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrEmailTaken is returned when registering with an email that is already in use.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUsernameTaken is returned when registering with a username that is already in use.
	ErrUsernameTaken = errors.New("username already in use")
	// ErrCategoryExists is returned when creating a category whose name already exists.
	ErrCategoryExists = errors.New("category already exists")
	// ErrEmptyTitle is returned when a post title is empty after trimming.
	ErrEmptyTitle = errors.New("title must not be empty")
	// ErrEmptyContent is returned when post or comment content is empty after trimming.
	ErrEmptyContent = errors.New("content must not be empty")
	// ErrEmptyName is returned when a category name is empty after trimming.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrSlugConflict is returned when slug allocation cannot find a free value.
	ErrSlugConflict = errors.New("could not allocate a unique slug")
	// ErrForbidden is returned when the actor is not allowed to mutate the record.
	ErrForbidden = errors.New("not allowed to modify this resource")
	// ErrStoreUnavailable is returned when the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, ErrPostNotFound.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCommentNotFound.Error(), "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCategoryNotFound.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, ErrUsernameTaken.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrCategoryExists):
		return NewHTTPError(http.StatusConflict, ErrCategoryExists.Error(), "CATEGORY_EXISTS")
	case errors.Is(err, ErrSlugConflict):
		return NewHTTPError(http.StatusConflict, ErrSlugConflict.Error(), "SLUG_CONFLICT")
	case errors.Is(err, ErrEmptyTitle):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyTitle.Error(), "EMPTY_TITLE")
	case errors.Is(err, ErrEmptyContent):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyContent.Error(), "EMPTY_CONTENT")
	case errors.Is(err, ErrEmptyName):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyName.Error(), "EMPTY_NAME")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrStoreUnavailable):
		return NewHTTPError(http.StatusInternalServerError, ErrStoreUnavailable.Error(), "STORE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
