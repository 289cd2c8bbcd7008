package core

import (
	"context"
	"log/slog"

	"github.com/siahsang/blog-orms/models"
)

type ArticleRepository interface {
	FindAll(ctx context.Context, options models.FetchArticlesOptions) ([]*models.Article, error)
	// FindByID returns nil and no error when the article does not exist.
	FindByID(ctx context.Context, id string, options models.FetchArticlesOptions) (*models.Article, error)
	Create(ctx context.Context, input models.CreateArticleInput) (*models.Article, error)
	Update(ctx context.Context, id string, input models.UpdateArticleInput) (*models.Article, error)
	Delete(ctx context.Context, id string) (bool, error)
	AddTagToArticle(ctx context.Context, articleID, tagID string) (*models.Article, error)
	RemoveTagFromArticle(ctx context.Context, articleID, tagID string) (*models.Article, error)
}

type CommentRepository interface {
	FindByArticleID(ctx context.Context, articleID string) ([]*models.Comment, error)
	Create(ctx context.Context, input models.CreateCommentInput) (*models.Comment, error)
	Update(ctx context.Context, id string, input models.UpdateCommentInput) (*models.Comment, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type TagRepository interface {
	FindAll(ctx context.Context) ([]*models.Tag, error)
	FindByID(ctx context.Context, id string) (*models.Tag, error)
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	// Create always inserts. A duplicate name surfaces as the store's
	// unique violation.
	Create(ctx context.Context, name string) (*models.Tag, error)
	Update(ctx context.Context, id, name string) (*models.Tag, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type UserRepository interface {
	FindAll(ctx context.Context) ([]*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, input models.CreateUserInput) (*models.User, error)
	Update(ctx context.Context, id string, input models.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Repositories is the set of repositories produced by one backend.
type Repositories struct {
	Articles ArticleRepository
	Comments CommentRepository
	Tags     TagRepository
	Users    UserRepository
}

type Core struct {
	Articles *ArticleService
	Users    *UserService
}

func NewCore(repos Repositories, log *slog.Logger) *Core {
	return &Core{
		Articles: NewArticleService(repos.Articles, repos.Comments, repos.Tags, log),
		Users:    NewUserService(repos.Users, log),
	}
}
