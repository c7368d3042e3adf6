package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blog/internal/config"
	"blog/internal/models"
	"blog/internal/service"
	"blog/internal/session"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerID  int64
	registerErr error
	authErr     error

	registerCalls []service.RegisterParams
	authCalls     []string
}

func (m *mockAuth) Register(_ context.Context, p service.RegisterParams) (int64, error) {
	m.registerCalls = append(m.registerCalls, p)
	return m.registerID, m.registerErr
}

func (m *mockAuth) Authenticate(_ context.Context, username, _ string) error {
	m.authCalls = append(m.authCalls, username)
	return m.authErr
}

type mockArticles struct {
	articles []models.Article
	owned    *models.Article
	err      error
	ownedErr error
	writeErr error

	created []models.Article
	updated []int64
	deleted []int64
	calls   int
}

func (m *mockArticles) Create(_ context.Context, author, title, content string) (int64, error) {
	m.calls++
	m.created = append(m.created, models.Article{Author: author, Title: title, Content: content})
	return int64(len(m.created)), m.writeErr
}

func (m *mockArticles) List(context.Context) ([]models.Article, error) {
	m.calls++
	return m.articles, m.err
}

func (m *mockArticles) Get(_ context.Context, id int64) (*models.Article, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.articles {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, service.ErrArticleNotFound
}

func (m *mockArticles) ListByAuthor(_ context.Context, author string) ([]models.Article, error) {
	m.calls++
	var out []models.Article
	for _, a := range m.articles {
		if a.Author == author {
			out = append(out, a)
		}
	}
	return out, m.err
}

func (m *mockArticles) GetOwned(context.Context, string, int64) (*models.Article, error) {
	m.calls++
	if m.ownedErr != nil {
		return nil, m.ownedErr
	}
	if m.owned == nil {
		return nil, service.ErrArticleNotFound
	}
	return m.owned, nil
}

func (m *mockArticles) Update(_ context.Context, _ string, id int64, _, _ string) error {
	m.calls++
	if m.owned == nil {
		return service.ErrArticleNotFound
	}
	m.updated = append(m.updated, id)
	return m.writeErr
}

func (m *mockArticles) Delete(_ context.Context, _ string, id int64) error {
	m.calls++
	if m.owned == nil {
		return service.ErrArticleNotFound
	}
	m.deleted = append(m.deleted, id)
	return m.writeErr
}

func (m *mockArticles) Search(_ context.Context, keyword string) ([]models.Article, error) {
	m.calls++
	var out []models.Article
	for _, a := range m.articles {
		if keyword != "" && strings.Contains(strings.ToLower(a.Title), strings.ToLower(keyword)) {
			out = append(out, a)
		}
	}
	return out, m.err
}

// ---- Shared Test Helpers ----

var testSessionCfg = config.Session{Secret: "handler-test-secret", CookieName: "blog_session", TTL: time.Hour}

func newTestRouter(s *service.Service) (*gin.Engine, *session.Manager) {
	gin.SetMode(gin.TestMode)
	m := session.NewManager(testSessionCfg)
	return NewHandler(s, m, nil).InitRoutes(), m
}

// doRequest sends a request, posting form as urlencoded when non-nil.
func doRequest(r http.Handler, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// loginCookie returns a session cookie for an authenticated user.
func loginCookie(t *testing.T, m *session.Manager, username string) *http.Cookie {
	t.Helper()
	s := &session.Session{}
	s.Login(username)
	value, err := m.Encode(s)
	if err != nil {
		t.Fatalf("encode session: %v", err)
	}
	return &http.Cookie{Name: testSessionCfg.CookieName, Value: value}
}

// responseSession decodes the session cookie written by w (nil if none was set).
func responseSession(t *testing.T, m *session.Manager, w *httptest.ResponseRecorder) *session.Session {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name != testSessionCfg.CookieName || c.MaxAge < 0 {
			continue
		}
		s, err := m.Decode(c.Value)
		if err != nil {
			t.Fatalf("decode session cookie: %v", err)
		}
		return s
	}
	return nil
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testSessionCfg.CookieName {
			return c
		}
	}
	return nil
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302 (body=%s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func assertFlash(t *testing.T, m *session.Manager, w *httptest.ResponseRecorder, category, message string) {
	t.Helper()
	s := responseSession(t, m, w)
	if s == nil {
		t.Fatalf("no session cookie written")
	}
	for _, f := range s.Flashes() {
		if f.Category == category && f.Message == message {
			return
		}
	}
	t.Fatalf("flash %s/%q not found", category, message)
}
