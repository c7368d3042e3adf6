package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"blog/internal/models"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

var _ Articles = (*ArticleRepository)(nil)

const articleColumns = `id, title, author, content, created_at`

const (
	insertArticleSQL              = `INSERT INTO articles (title, author, content) VALUES (?, ?, ?)`
	selectArticlesSQL             = `SELECT ` + articleColumns + ` FROM articles ORDER BY id ASC`
	selectArticleByIDSQL          = `SELECT ` + articleColumns + ` FROM articles WHERE id = ?`
	selectArticlesByAuthorSQL     = `SELECT ` + articleColumns + ` FROM articles WHERE author = ? ORDER BY id ASC`
	selectArticleByAuthorAndIDSQL = `SELECT ` + articleColumns + ` FROM articles WHERE author = ? AND id = ?`
	updateArticleSQL              = `UPDATE articles SET title = ?, content = ? WHERE id = ?`
	deleteArticleSQL              = `DELETE FROM articles WHERE id = ?`
	searchArticlesByTitleSQL      = `SELECT ` + articleColumns + ` FROM articles WHERE LOWER(title) LIKE ? ESCAPE '!' ORDER BY id ASC`
)

// likeEscaper neutralises LIKE wildcards in user input; '!' is the ESCAPE character.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern turns keyword into a case-insensitive substring LIKE pattern.
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(keyword)) + "%"
}

func (r *ArticleRepository) Create(ctx context.Context, a models.Article) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertArticleSQL, a.Title, a.Author, a.Content)
	if err != nil {
		return 0, fmt.Errorf("insert article by %q: %w", a.Author, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for article: %w", err)
	}
	return id, nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]models.Article, error) {
	return r.query(ctx, "list articles", selectArticlesSQL)
}

// GetByID returns (nil, nil) when no article has that id.
func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	return r.queryOne(ctx, fmt.Sprintf("select article %d", id), selectArticleByIDSQL, id)
}

func (r *ArticleRepository) ListByAuthor(ctx context.Context, author string) ([]models.Article, error) {
	return r.query(ctx, fmt.Sprintf("list articles by %q", author), selectArticlesByAuthorSQL, author)
}

// GetByAuthorAndID returns the article only when both id and author match,
// (nil, nil) otherwise.
func (r *ArticleRepository) GetByAuthorAndID(ctx context.Context, author string, id int64) (*models.Article, error) {
	return r.queryOne(ctx, fmt.Sprintf("select article %d by %q", id, author), selectArticleByAuthorAndIDSQL, author, id)
}

func (r *ArticleRepository) Update(ctx context.Context, id int64, title, content string) error {
	if _, err := r.db.ExecContext(ctx, updateArticleSQL, title, content, id); err != nil {
		return fmt.Errorf("update article %d: %w", id, err)
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, deleteArticleSQL, id); err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}
	return nil
}

// SearchByTitle matches keyword as a case-insensitive substring of the title.
func (r *ArticleRepository) SearchByTitle(ctx context.Context, keyword string) ([]models.Article, error) {
	return r.query(ctx, fmt.Sprintf("search articles %q", keyword), searchArticlesByTitleSQL, containsPattern(keyword))
}

func (r *ArticleRepository) queryOne(ctx context.Context, op, q string, args ...any) (*models.Article, error) {
	var a models.Article
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&a.ID, &a.Title, &a.Author, &a.Content, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

func (r *ArticleRepository) query(ctx context.Context, op, q string, args ...any) ([]models.Article, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.Article, 0, 16)
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Author, &a.Content, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
