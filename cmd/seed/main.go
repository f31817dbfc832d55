package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bloghub/internal/config"
	"bloghub/internal/db"
	"bloghub/internal/model"
	"bloghub/internal/repository"
)

// seedUser holds a demo account to create.
type seedUser struct {
	Email    string
	Username string
	Password string
	Role     string
	Bio      string
}

// seedPost holds a demo post keyed by its slug.
type seedPost struct {
	Slug        string
	Title       string
	Content     string
	Excerpt     string
	AuthorEmail string
	Category    string
	Tags        []string
	Published   bool
	Views       int64
}

var seedUsers = []seedUser{
	{
		Email:    "admin@bloghub.dev",
		Username: "admin",
		Password: "admin123",
		Role:     model.RoleAdmin,
		Bio:      "Platform administrator.",
	},
	{
		Email:    "jane@bloghub.dev",
		Username: "janedoe",
		Password: "password123",
		Role:     model.RoleUser,
		Bio:      "Travel and food writer.",
	},
}

var seedCategories = []model.Category{
	{Name: "Technology", Color: "#3b82f6"},
	{Name: "Travel", Color: "#10b981"},
	{Name: "Food", Color: "#f59e0b"},
	{Name: "Lifestyle", Color: "#8b5cf6"},
}

var seedPosts = []seedPost{
	{
		Slug:        "welcome-to-bloghub",
		Title:       "Welcome to BlogHub",
		Content:     "BlogHub is a place to write, share, and discover posts. This first post walks through the editor, categories, and tags.",
		Excerpt:     "A quick tour of the platform.",
		AuthorEmail: "admin@bloghub.dev",
		Category:    "Technology",
		Tags:        []string{"announcement", "getting-started"},
		Published:   true,
		Views:       128,
	},
	{
		Slug:        "draft-post-example",
		Title:       "Draft Post Example",
		Content:     "Drafts stay private until published. Use them to iterate on a post before sharing it.",
		AuthorEmail: "admin@bloghub.dev",
		Category:    "Technology",
		Tags:        []string{"drafts"},
		Published:   false,
	},
	{
		Slug:        "my-travel-adventures",
		Title:       "My Travel Adventures",
		Content:     "Last month I visited three countries in two weeks. Here is what I packed, what I skipped, and what I would do differently.",
		Excerpt:     "Three countries, two weeks, one backpack.",
		AuthorEmail: "jane@bloghub.dev",
		Category:    "Travel",
		Tags:        []string{"travel", "backpacking"},
		Published:   true,
		Views:       342,
	},
	{
		Slug:        "healthy-recipes-busy-people",
		Title:       "Healthy Recipes for Busy People",
		Content:     "Five recipes that take under twenty minutes and keep well in the fridge for the rest of the week.",
		Excerpt:     "Twenty minutes, five meals.",
		AuthorEmail: "jane@bloghub.dev",
		Category:    "Food",
		Tags:        []string{"recipes", "meal-prep"},
		Published:   true,
		Views:       87,
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Post{}, &model.Comment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)

	usersByEmail, created, err := ensureUsers(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Printf("Users ready (%d created)", created)

	created, err = ensureCategories(ctx, categoryRepo)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Categories ready (%d created)", created)

	created, updated, err := ensurePosts(ctx, postRepo, usersByEmail)
	if err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New posts created: %d", created)
	log.Printf("  - Existing posts updated: %d", updated)
}

// ensureUsers creates the demo users that do not exist yet and returns
// all of them keyed by email.
func ensureUsers(ctx context.Context, repo repository.UserRepository) (map[string]*model.User, int, error) {
	out := make(map[string]*model.User, len(seedUsers))
	created := 0
	for _, su := range seedUsers {
		existing, err := repo.FindByEmail(ctx, su.Email)
		if err == nil {
			out[su.Email] = existing
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, created, fmt.Errorf("check user %s: %w", su.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, created, fmt.Errorf("hash password for %s: %w", su.Email, err)
		}

		user := &model.User{
			Email:        su.Email,
			Username:     su.Username,
			PasswordHash: string(hash),
			Role:         su.Role,
			Bio:          su.Bio,
		}
		if err := repo.Create(ctx, user); err != nil {
			return nil, created, fmt.Errorf("create user %s: %w", su.Email, err)
		}
		out[su.Email] = user
		created++
	}
	return out, created, nil
}

// ensureCategories creates the demo categories that do not exist yet.
func ensureCategories(ctx context.Context, repo repository.CategoryRepository) (int, error) {
	created := 0
	for _, sc := range seedCategories {
		_, err := repo.FindByName(ctx, sc.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("check category %s: %w", sc.Name, err)
		}

		category := sc
		if err := repo.Create(ctx, &category); err != nil {
			return created, fmt.Errorf("create category %s: %w", sc.Name, err)
		}
		created++
	}
	return created, nil
}

// ensurePosts creates new demo posts or refreshes the content of existing
// ones, matching by slug.
func ensurePosts(ctx context.Context, repo repository.PostRepository, users map[string]*model.User) (created int, updated int, err error) {
	for _, sp := range seedPosts {
		author, ok := users[sp.AuthorEmail]
		if !ok {
			return created, updated, fmt.Errorf("no seed user for email %s", sp.AuthorEmail)
		}

		existing, err := repo.FindBySlug(ctx, sp.Slug)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, updated, fmt.Errorf("check post %s: %w", sp.Slug, err)
		}

		if existing != nil && err == nil {
			existing.Title = sp.Title
			existing.Content = sp.Content
			existing.Excerpt = sp.Excerpt
			existing.Category = sp.Category
			existing.Tags = model.StringList(sp.Tags)
			existing.SetPublished(sp.Published, time.Now())
			if err := repo.Save(ctx, existing); err != nil {
				return created, updated, fmt.Errorf("update post %s: %w", sp.Slug, err)
			}
			updated++
			continue
		}

		post := &model.Post{
			ID:       uuid.New(),
			Title:    sp.Title,
			Content:  sp.Content,
			Excerpt:  sp.Excerpt,
			Slug:     sp.Slug,
			AuthorID: author.ID,
			Category: sp.Category,
			Tags:     model.StringList(sp.Tags),
			Views:    sp.Views,
			Likes:    model.StringList{},
		}
		post.SetPublished(sp.Published, time.Now())
		if err := repo.Create(ctx, post); err != nil {
			return created, updated, fmt.Errorf("create post %s: %w", sp.Slug, err)
		}
		created++
	}
	return created, updated, nil
}
