package service

import (
	"context"

	"blog/internal/models"
	"blog/internal/repository"
)

// Authorization registers users and checks their credentials.
type Authorization interface {
	Register(ctx context.Context, p RegisterParams) (int64, error)
	Authenticate(ctx context.Context, username, password string) error
}

// Articles exposes article CRUD. Writes take the caller's username and only
// touch articles that caller authored.
type Articles interface {
	Create(ctx context.Context, author, title, content string) (int64, error)
	List(ctx context.Context) ([]models.Article, error)
	Get(ctx context.Context, id int64) (*models.Article, error)
	ListByAuthor(ctx context.Context, author string) ([]models.Article, error)
	GetOwned(ctx context.Context, author string, id int64) (*models.Article, error)
	Update(ctx context.Context, author string, id int64, title, content string) error
	Delete(ctx context.Context, author string, id int64) error
	Search(ctx context.Context, keyword string) ([]models.Article, error)
}

type Service struct {
	Authorization
	Articles
}

func NewService(repos *repository.Repository) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users),
		Articles:      NewArticleService(repos.Articles),
	}
}
