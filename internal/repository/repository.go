package repository

import (
	"context"
	"database/sql"

	"blog/internal/models"
)

// Credentials is the user store.
type Credentials interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Articles is the article store. Update and Delete do not check ownership;
// callers authorize with GetByAuthorAndID first.
type Articles interface {
	Create(ctx context.Context, a models.Article) (int64, error)
	List(ctx context.Context) ([]models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	ListByAuthor(ctx context.Context, author string) ([]models.Article, error)
	GetByAuthorAndID(ctx context.Context, author string, id int64) (*models.Article, error)
	Update(ctx context.Context, id int64, title, content string) error
	Delete(ctx context.Context, id int64) error
	SearchByTitle(ctx context.Context, keyword string) ([]models.Article, error)
}

type Repository struct {
	Users    Credentials
	Articles Articles
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Articles: NewArticleRepository(db),
	}
}
