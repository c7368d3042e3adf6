package service

import (
	"context"
	"errors"
	"strings"

	"blog/internal/models"
	"blog/internal/repository"
)

// ErrArticleNotFound covers both a missing article and one owned by someone
// else, so callers cannot tell the two apart.
var ErrArticleNotFound = errors.New("no such article or not authorized")

type ArticleService struct {
	articles repository.Articles
}

func NewArticleService(articles repository.Articles) *ArticleService {
	return &ArticleService{articles: articles}
}

func (s *ArticleService) Create(ctx context.Context, author, title, content string) (int64, error) {
	return s.articles.Create(ctx, models.Article{Title: title, Author: author, Content: content})
}

func (s *ArticleService) List(ctx context.Context) ([]models.Article, error) {
	return s.articles.List(ctx)
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrArticleNotFound
	}
	return a, nil
}

func (s *ArticleService) ListByAuthor(ctx context.Context, author string) ([]models.Article, error) {
	return s.articles.ListByAuthor(ctx, author)
}

// GetOwned returns the article only if author wrote it.
func (s *ArticleService) GetOwned(ctx context.Context, author string, id int64) (*models.Article, error) {
	a, err := s.articles.GetByAuthorAndID(ctx, author, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrArticleNotFound
	}
	return a, nil
}

func (s *ArticleService) Update(ctx context.Context, author string, id int64, title, content string) error {
	if _, err := s.GetOwned(ctx, author, id); err != nil {
		return err
	}
	return s.articles.Update(ctx, id, title, content)
}

func (s *ArticleService) Delete(ctx context.Context, author string, id int64) error {
	if _, err := s.GetOwned(ctx, author, id); err != nil {
		return err
	}
	return s.articles.Delete(ctx, id)
}

// Search matches keyword case-insensitively against titles. A blank keyword
// matches nothing.
func (s *ArticleService) Search(ctx context.Context, keyword string) ([]models.Article, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.Article{}, nil
	}
	return s.articles.SearchByTitle(ctx, keyword)
}
