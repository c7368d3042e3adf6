package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"blog/internal/config"
	"blog/internal/models"
	"blog/internal/repository"
	"blog/internal/repository/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.InitDB(config.DB{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "blog.db")}, nil)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestSQLite_DuplicateUsernameIsMapped(t *testing.T) {
	repos := repository.NewRepository(openTestDB(t))
	ctx := context.Background()

	u := models.User{Name: "Alice A", Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
	if _, err := repos.Users.Create(ctx, u); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := repos.Users.Create(ctx, u)
	if !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestSQLite_ArticleRoundTripAndOwnership(t *testing.T) {
	repos := repository.NewRepository(openTestDB(t))
	ctx := context.Background()

	id, err := repos.Articles.Create(ctx, models.Article{Title: "Hello World", Author: "alice", Content: "This is a test body"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	a, err := repos.Articles.GetByID(ctx, id)
	if err != nil || a == nil {
		t.Fatalf("GetByID: %+v, %v", a, err)
	}
	if a.Title != "Hello World" || a.Content != "This is a test body" || a.Author != "alice" {
		t.Fatalf("round trip mismatch: %+v", a)
	}
	if a.CreatedAt.IsZero() {
		t.Fatalf("created_at not populated")
	}

	if owned, err := repos.Articles.GetByAuthorAndID(ctx, "bob", id); err != nil || owned != nil {
		t.Fatalf("bob must not see alice's article: %+v, %v", owned, err)
	}
	if owned, err := repos.Articles.GetByAuthorAndID(ctx, "alice", id); err != nil || owned == nil {
		t.Fatalf("alice must see her article: %+v, %v", owned, err)
	}

	if err := repos.Articles.Update(ctx, id, "Hello Again", "Updated body text"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	a, _ = repos.Articles.GetByID(ctx, id)
	if a.Title != "Hello Again" || a.Content != "Updated body text" {
		t.Fatalf("update not applied: %+v", a)
	}

	if err := repos.Articles.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if a, _ := repos.Articles.GetByID(ctx, id); a != nil {
		t.Fatalf("article still present after delete: %+v", a)
	}
}

func TestSQLite_SearchByTitle(t *testing.T) {
	repos := repository.NewRepository(openTestDB(t))
	ctx := context.Background()

	for _, title := range []string{"Hello World", "Goodbye World", "100% pure"} {
		if _, err := repos.Articles.Create(ctx, models.Article{Title: title, Author: "alice", Content: "content content"}); err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
	}

	cases := []struct {
		keyword string
		want    int
	}{
		{"Hello", 1},
		{"hello", 1}, // case-insensitive
		{"WORLD", 2},
		{"Zzz", 0},
		{"%", 1},           // literal percent, not a wildcard
		{"_", 0},           // literal underscore
		{"' OR 1=1 --", 0}, // bound, never interpreted
	}
	for _, tc := range cases {
		got, err := repos.Articles.SearchByTitle(ctx, tc.keyword)
		if err != nil {
			t.Fatalf("SearchByTitle(%q): %v", tc.keyword, err)
		}
		if len(got) != tc.want {
			t.Errorf("SearchByTitle(%q) = %d results, want %d", tc.keyword, len(got), tc.want)
		}
	}
}
