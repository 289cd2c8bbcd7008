package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/siahsang/blog-orms/internal/config"
	"github.com/siahsang/blog-orms/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, repoType string) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Repository.Type = repoType
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "blog.db")
	cfg.Database.AutoMigrate = true
	cfg.Database.QueryTimeout = 5 * time.Second
	cfg.Database.MaxIdleConns = 2

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, closeBackend, err := newApplication(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	t.Cleanup(closeBackend)

	return app.routes()
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

type errorEnvelope struct {
	ErrorMessage string            `json:"errorMessage"`
	ErrorDetails map[string]string `json:"errorDetails"`
}

func TestArticleEndpoints(t *testing.T) {
	for _, repoType := range []string{config.RepositorySQL, config.RepositoryGorm} {
		t.Run(repoType, func(t *testing.T) {
			srv := newTestServer(t, repoType)

			rec := doRequest(t, srv, http.MethodPost, "/api/users", models.CreateUserInput{Name: "Ada", Email: "ada@example.com"})
			expectStatus(t, rec, http.StatusCreated)
			user := decode[models.User](t, rec)

			rec = doRequest(t, srv, http.MethodPost, "/api/articles", models.CreateArticleInput{
				Title:    "Hello",
				Content:  "World",
				AuthorID: user.ID,
			})
			expectStatus(t, rec, http.StatusCreated)
			if !bytes.Contains(rec.Body.Bytes(), []byte(`"tags":[]`)) || !bytes.Contains(rec.Body.Bytes(), []byte(`"comments":[]`)) {
				t.Fatalf("created article must encode empty lists, got %s", rec.Body.String())
			}
			article := decode[models.Article](t, rec)

			rec = doRequest(t, srv, http.MethodGet, "/api/articles/"+article.ID+"?includeComments=true", nil)
			expectStatus(t, rec, http.StatusOK)

			rec = doRequest(t, srv, http.MethodPatch, "/api/articles/"+article.ID, map[string]string{"title": "Hello again"})
			expectStatus(t, rec, http.StatusOK)
			if got := decode[models.Article](t, rec); got.Title != "Hello again" || got.Content != "World" {
				t.Fatalf("unexpected updated article %+v", got)
			}

			rec = doRequest(t, srv, http.MethodPost, "/api/articles/"+article.ID+"/tag", models.PushTagInput{TagName: "go"})
			expectStatus(t, rec, http.StatusCreated)
			tagged := decode[models.Article](t, rec)
			if len(tagged.Tags) != 1 {
				t.Fatalf("expected one tag, got %+v", tagged.Tags)
			}

			rec = doRequest(t, srv, http.MethodGet, "/api/articles?tagName=go&page=1&limit=10", nil)
			expectStatus(t, rec, http.StatusOK)
			if list := decode[[]models.Article](t, rec); len(list) != 1 {
				t.Fatalf("expected one tagged article, got %d", len(list))
			}

			rec = doRequest(t, srv, http.MethodGet, "/api/articles/tags", nil)
			expectStatus(t, rec, http.StatusOK)
			if tags := decode[[]models.Tag](t, rec); len(tags) != 1 || tags[0].Name != "go" {
				t.Fatalf("unexpected tags %+v", tags)
			}

			rec = doRequest(t, srv, http.MethodDelete, "/api/articles/"+article.ID+"/tag/"+tagged.Tags[0].ID, nil)
			expectStatus(t, rec, http.StatusOK)

			rec = doRequest(t, srv, http.MethodDelete, "/api/articles/"+article.ID, nil)
			expectStatus(t, rec, http.StatusNoContent)

			rec = doRequest(t, srv, http.MethodGet, "/api/articles/"+article.ID, nil)
			expectStatus(t, rec, http.StatusNotFound)
			if env := decode[errorEnvelope](t, rec); env.ErrorMessage != "Article with id "+article.ID+" not found" {
				t.Fatalf("unexpected error message %q", env.ErrorMessage)
			}
		})
	}
}

func TestCommentEndpoints(t *testing.T) {
	srv := newTestServer(t, config.RepositorySQL)

	rec := doRequest(t, srv, http.MethodPost, "/api/users", models.CreateUserInput{Name: "Ada", Email: "ada@example.com"})
	expectStatus(t, rec, http.StatusCreated)
	user := decode[models.User](t, rec)

	rec = doRequest(t, srv, http.MethodPost, "/api/articles", models.CreateArticleInput{Title: "T", Content: "C", AuthorID: user.ID})
	expectStatus(t, rec, http.StatusCreated)
	article := decode[models.Article](t, rec)
	base := "/api/articles/" + article.ID + "/comments"

	rec = doRequest(t, srv, http.MethodGet, base, nil)
	expectStatus(t, rec, http.StatusNotFound)

	rec = doRequest(t, srv, http.MethodPost, base, map[string]string{"content": "first", "authorId": user.ID})
	expectStatus(t, rec, http.StatusCreated)
	comment := decode[models.Comment](t, rec)
	if comment.ArticleID != article.ID {
		t.Fatalf("expected article id from path, got %s", comment.ArticleID)
	}

	rec = doRequest(t, srv, http.MethodPatch, base+"/"+comment.ID, map[string]string{"content": "edited"})
	expectStatus(t, rec, http.StatusOK)

	rec = doRequest(t, srv, http.MethodGet, base, nil)
	expectStatus(t, rec, http.StatusOK)
	if comments := decode[[]models.Comment](t, rec); len(comments) != 1 || comments[0].Content != "edited" {
		t.Fatalf("unexpected comments %+v", comments)
	}

	rec = doRequest(t, srv, http.MethodDelete, base+"/"+comment.ID, nil)
	expectStatus(t, rec, http.StatusNoContent)

	rec = doRequest(t, srv, http.MethodDelete, base+"/"+comment.ID, nil)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestTagAndUserEndpoints(t *testing.T) {
	srv := newTestServer(t, config.RepositoryGorm)

	rec := doRequest(t, srv, http.MethodPost, "/api/articles/tags", map[string]string{"name": "go"})
	expectStatus(t, rec, http.StatusCreated)
	tag := decode[models.Tag](t, rec)

	rec = doRequest(t, srv, http.MethodPost, "/api/articles/tags", map[string]string{"name": "go"})
	expectStatus(t, rec, http.StatusNotFound)

	rec = doRequest(t, srv, http.MethodPatch, "/api/articles/tags/"+tag.ID, map[string]string{"name": "golang"})
	expectStatus(t, rec, http.StatusOK)

	rec = doRequest(t, srv, http.MethodDelete, "/api/articles/tags/"+tag.ID, nil)
	expectStatus(t, rec, http.StatusNoContent)

	rec = doRequest(t, srv, http.MethodPost, "/api/users", models.CreateUserInput{Name: "Ada", Email: "ada@example.com"})
	expectStatus(t, rec, http.StatusCreated)
	user := decode[models.User](t, rec)

	rec = doRequest(t, srv, http.MethodPost, "/api/users", models.CreateUserInput{Name: "Copy", Email: "ada@example.com"})
	expectStatus(t, rec, http.StatusConflict)

	rec = doRequest(t, srv, http.MethodPatch, "/api/users/"+user.ID, map[string]any{"name": "Grace"})
	expectStatus(t, rec, http.StatusOK)

	rec = doRequest(t, srv, http.MethodDelete, "/api/users/"+user.ID, nil)
	expectStatus(t, rec, http.StatusNoContent)

	rec = doRequest(t, srv, http.MethodGet, "/api/users/"+user.ID, nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.User](t, rec); got.Active || got.Name != "Grace" {
		t.Fatalf("expected inactive user named Grace, got %+v", got)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/users", nil)
	expectStatus(t, rec, http.StatusOK)
	if users := decode[[]models.User](t, rec); len(users) != 1 {
		t.Fatalf("expected one user, got %d", len(users))
	}
}

func TestArticlesEncodeEmptyComments(t *testing.T) {
	for _, repoType := range []string{config.RepositorySQL, config.RepositoryGorm} {
		t.Run(repoType, func(t *testing.T) {
			srv := newTestServer(t, repoType)

			rec := doRequest(t, srv, http.MethodPost, "/api/users", models.CreateUserInput{Name: "Ada", Email: "ada@example.com"})
			expectStatus(t, rec, http.StatusCreated)
			user := decode[models.User](t, rec)

			rec = doRequest(t, srv, http.MethodPost, "/api/articles", models.CreateArticleInput{Title: "Hello", Content: "World", AuthorID: user.ID})
			expectStatus(t, rec, http.StatusCreated)
			article := decode[models.Article](t, rec)

			requests := []struct {
				name   string
				method string
				path   string
				body   any
			}{
				{name: "get one", method: http.MethodGet, path: "/api/articles/" + article.ID},
				{name: "get one with comments", method: http.MethodGet, path: "/api/articles/" + article.ID + "?includeComments=true"},
				{name: "list", method: http.MethodGet, path: "/api/articles"},
				{name: "update", method: http.MethodPatch, path: "/api/articles/" + article.ID, body: map[string]string{"content": "Again"}},
			}
			for _, r := range requests {
				rec := doRequest(t, srv, r.method, r.path, r.body)
				expectStatus(t, rec, http.StatusOK)
				if !bytes.Contains(rec.Body.Bytes(), []byte(`"comments":[]`)) {
					t.Fatalf("%s: expected empty comments list, got %s", r.name, rec.Body.String())
				}
				if bytes.Contains(rec.Body.Bytes(), []byte(`"comments":null`)) {
					t.Fatalf("%s: comments encoded as null: %s", r.name, rec.Body.String())
				}
			}
		})
	}
}

func TestListArticlesAcceptsLargeLimit(t *testing.T) {
	srv := newTestServer(t, config.RepositorySQL)

	rec := doRequest(t, srv, http.MethodGet, "/api/articles?limit=500", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[[]models.Article](t, rec); len(got) != 0 {
		t.Fatalf("expected no articles, got %d", len(got))
	}
}

func TestValidationErrors(t *testing.T) {
	srv := newTestServer(t, config.RepositorySQL)

	tests := []struct {
		name      string
		method    string
		path      string
		body      any
		wantField string
	}{
		{name: "blank title", method: http.MethodPost, path: "/api/articles", body: map[string]string{"title": " ", "content": "c", "authorId": uuid.NewString()}, wantField: "title"},
		{name: "bad author id", method: http.MethodPost, path: "/api/articles", body: map[string]string{"title": "t", "content": "c", "authorId": "42"}, wantField: "authorId"},
		{name: "bad path id", method: http.MethodGet, path: "/api/articles/not-a-uuid", wantField: "id"},
		{name: "zero limit", method: http.MethodGet, path: "/api/articles?limit=0", wantField: "limit"},
		{name: "page not a number", method: http.MethodGet, path: "/api/articles?page=two", wantField: "page"},
		{name: "bad email", method: http.MethodPost, path: "/api/users", body: map[string]string{"name": "Ada", "email": "nope"}, wantField: "email"},
		{name: "bad tag id", method: http.MethodPost, path: "/api/articles/" + uuid.NewString() + "/tag", body: map[string]string{"tagId": "x"}, wantField: "tagId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, tt.method, tt.path, tt.body)
			expectStatus(t, rec, http.StatusBadRequest)
			env := decode[errorEnvelope](t, rec)
			if _, ok := env.ErrorDetails[tt.wantField]; !ok {
				t.Fatalf("expected error on %s, got %+v", tt.wantField, env.ErrorDetails)
			}
		})
	}
}

func TestMalformedBodies(t *testing.T) {
	srv := newTestServer(t, config.RepositorySQL)

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: "body must not be empty"},
		{name: "unknown field", body: `{"title":"t","extra":1}`, want: `body contains unknown key "extra"`},
		{name: "two values", body: `{"title":"t"}{"title":"u"}`, want: "body must contain only a single JSON value"},
		{name: "wrong type", body: `{"title":1}`, want: `body contains incorrect JSON type for field "title"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/articles", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			expectStatus(t, rec, http.StatusBadRequest)
			if env := decode[errorEnvelope](t, rec); env.ErrorMessage != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, env.ErrorMessage)
			}
		})
	}
}

func TestAddTagWithoutIDOrName(t *testing.T) {
	srv := newTestServer(t, config.RepositorySQL)

	rec := doRequest(t, srv, http.MethodPost, "/api/articles/"+uuid.NewString()+"/tag", map[string]string{})
	expectStatus(t, rec, http.StatusNotFound)
	if env := decode[errorEnvelope](t, rec); env.ErrorMessage != "Either tagId or tagName must be provided" {
		t.Fatalf("unexpected message %q", env.ErrorMessage)
	}
}

type failingHealth struct{}

func (failingHealth) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, config.RepositorySQL)
	rec := doRequest(t, srv, http.MethodGet, "/api/health", nil)
	expectStatus(t, rec, http.StatusOK)

	app := &application{
		config: &config.Config{},
		health: failingHealth{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	rec = doRequest(t, app.routes(), http.MethodGet, "/api/health", nil)
	expectStatus(t, rec, http.StatusServiceUnavailable)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, config.RepositorySQL)
	rec := doRequest(t, srv, http.MethodGet, "/api/nothing-here", nil)
	expectStatus(t, rec, http.StatusNotFound)
}
