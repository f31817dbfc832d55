package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bloghub/internal/auth"
	"bloghub/internal/config"
	"bloghub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	categoryHandler *handler.CategoryHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	api.GET("/posts", postHandler.ListPosts)
	api.GET("/posts/:identifier", postHandler.GetPost)
	api.GET("/posts/:identifier/comments", commentHandler.ListComments)
	api.GET("/categories", categoryHandler.ListCategories)
	api.GET("/users/:id", userHandler.GetUser)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", userHandler.GetMe)
	secured.PUT("/me", userHandler.UpdateMe)

	// Post routes
	secured.POST("/posts", postHandler.CreatePost)
	secured.PUT("/posts/:identifier", postHandler.UpdatePost)
	secured.DELETE("/posts/:identifier", postHandler.DeletePost)
	secured.POST("/posts/:identifier/like", postHandler.ToggleLike)

	// Comment routes
	secured.POST("/posts/:identifier/comments", commentHandler.CreateComment)
	secured.DELETE("/comments/:id", commentHandler.DeleteComment)

	// Category routes
	secured.POST("/categories", categoryHandler.CreateCategory)
	secured.PUT("/categories/:id", categoryHandler.RenameCategory)
	secured.DELETE("/categories/:id", categoryHandler.DeleteCategory)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
