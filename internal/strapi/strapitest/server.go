// Package strapitest provides an in-memory fake of the Strapi REST endpoints
// used by this repository, for tests that exercise the real strapi.Client.
package strapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"agencyweb/internal/models"
)

// Token is the bearer token the fake server accepts.
const Token = "test-token"

// Server is a fake Strapi instance. Exported slices may be seeded before the
// first request; afterwards use the accessor methods.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	Categories    []models.Category
	Localizations []models.CategoryLocalization
	Articles      []models.Article
	Authors       []models.Author

	// Fail maps "METHOD /path" to a status code returned instead of the
	// normal response, e.g. "PUT /api/articles/2": 500.
	Fail map[string]int

	requests   []string
	requestIDs []string
	nextID     int
}

// NewServer starts a fake server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{Fail: map[string]int{}, nextID: 1000}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Get("/api/categories", s.listCategories)
	r.Post("/api/categories", s.createCategory)
	r.Get("/api/category-i18ns", s.listLocalizations)
	r.Post("/api/category-i18ns", s.createLocalization)
	r.Get("/api/articles", s.listArticles)
	r.Post("/api/articles", s.createArticle)
	r.Get("/api/articles/{id}", s.getArticle)
	r.Put("/api/articles/{id}", s.updateArticle)
	r.Get("/api/authors", s.listAuthors)
	r.Post("/api/authors", s.createAuthor)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// SetFail injects (status > 0) or clears (status 0) a failure for key once
// the server is in use.
func (s *Server) SetFail(key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.Fail, key)
		return
	}
	s.Fail[key] = status
}

// Requests returns "METHOD /path" for every request received so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// RequestIDs returns the X-Request-ID header of every request received so far.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

// RequestCount returns the number of requests received so far.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Article returns the stored article with the given id.
func (s *Server) Article(id int) (models.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return models.Article{}, false
}

// Snapshot returns copies of the stored collections.
func (s *Server) Snapshot() (cats []models.Category, locs []models.CategoryLocalization, articles []models.Article, authors []models.Author) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(cats, s.Categories...), append(locs, s.Localizations...),
		append(articles, s.Articles...), append(authors, s.Authors...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		s.mu.Lock()
		s.requests = append(s.requests, key)
		s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
		status, fail := s.Fail[key]
		s.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeError(w, http.StatusUnauthorized, "Missing or invalid credentials")
			return
		}
		if fail {
			writeError(w, status, "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeList(w, s.Categories)
}

func (s *Server) listLocalizations(w http.ResponseWriter, r *http.Request) {
	want := r.URL.Query().Get("filters[locale][$eq]")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.CategoryLocalization{}
	for _, l := range s.Localizations {
		if want == "" || l.Locale == want {
			out = append(out, l)
		}
	}
	writeList(w, out)
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Article{}
	for _, a := range s.Articles {
		if q.Get("filters[publishedAt][$null]") == "true" && a.PublishedAt != nil {
			continue
		}
		if q.Get("filters[publishedAt][$notNull]") == "true" && a.PublishedAt == nil {
			continue
		}
		if id := q.Get("filters[category][id][$eq]"); id != "" && (a.Category == nil || strconv.Itoa(a.Category.ID) != id) {
			continue
		}
		out = append(out, a)
	}
	writeList(w, out)
}

// getArticle matches ?locale= against the article's locale; articles stored
// without one are served in every locale.
func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	loc := r.URL.Query().Get("locale")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.Articles {
		if a.ID == id && (loc == "" || a.Locale == "" || a.Locale == loc) {
			writeJSON(w, http.StatusOK, models.SingleResponse[models.Article]{Data: a})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Not Found")
}

func (s *Server) updateArticle(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var body struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Data == nil {
		writeError(w, http.StatusBadRequest, "Missing \"data\" payload in the request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Articles {
		a := &s.Articles[i]
		if a.ID != id {
			continue
		}
		for field, raw := range body.Data {
			switch field {
			case "publishedAt":
				a.PublishedAt = decodeTime(raw)
			case "reviewedAt":
				a.ReviewedAt = decodeTime(raw)
			case "reviewedBy":
				json.Unmarshal(raw, &a.ReviewedBy)
			case "reviewNotes":
				json.Unmarshal(raw, &a.ReviewNotes)
			case "title":
				json.Unmarshal(raw, &a.Title)
			case "category":
				var catID int
				json.Unmarshal(raw, &catID)
				a.Category = s.categoryByID(catID)
			}
		}
		writeJSON(w, http.StatusOK, models.SingleResponse[models.Article]{Data: *a})
		return
	}
	writeError(w, http.StatusNotFound, "Not Found")
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data models.Category `json:"data"`
	}
	if !decode(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := body.Data
	c.ID = s.id()
	s.Categories = append(s.Categories, c)
	writeJSON(w, http.StatusCreated, models.SingleResponse[models.Category]{Data: c})
}

func (s *Server) createLocalization(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data struct {
			models.CategoryLocalization
			Category int `json:"category"`
		} `json:"data"`
	}
	if !decode(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l := body.Data.CategoryLocalization
	l.ID = s.id()
	l.Category = s.categoryByID(body.Data.Category)
	s.Localizations = append(s.Localizations, l)
	writeJSON(w, http.StatusCreated, models.SingleResponse[models.CategoryLocalization]{Data: l})
}

func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data struct {
			Title    string `json:"title"`
			Slug     string `json:"slug"`
			Excerpt  string `json:"excerpt"`
			Content  string `json:"content"`
			Locale   string `json:"locale"`
			Category int    `json:"category"`
			Author   int    `json:"author"`
		} `json:"data"`
	}
	if !decode(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a := models.Article{
		ID:        s.id(),
		Title:     body.Data.Title,
		Slug:      body.Data.Slug,
		Excerpt:   body.Data.Excerpt,
		Content:   body.Data.Content,
		Locale:    body.Data.Locale,
		Category:  s.categoryByID(body.Data.Category),
		CreatedAt: time.Now().UTC(),
	}
	for _, au := range s.Authors {
		if au.ID == body.Data.Author {
			au := au
			a.Author = &au
		}
	}
	s.Articles = append(s.Articles, a)
	writeJSON(w, http.StatusCreated, models.SingleResponse[models.Article]{Data: a})
}

func (s *Server) listAuthors(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("filters[email][$eq]")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Author{}
	for _, a := range s.Authors {
		if email == "" || a.Email == email {
			out = append(out, a)
		}
	}
	writeList(w, out)
}

func (s *Server) createAuthor(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data models.Author `json:"data"`
	}
	if !decode(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a := body.Data
	a.ID = s.id()
	s.Authors = append(s.Authors, a)
	writeJSON(w, http.StatusCreated, models.SingleResponse[models.Author]{Data: a})
}

// categoryByID must be called with s.mu held.
func (s *Server) categoryByID(id int) *models.Category {
	for _, c := range s.Categories {
		if c.ID == id {
			c := c
			return &c
		}
	}
	return nil
}

// id must be called with s.mu held.
func (s *Server) id() int {
	s.nextID++
	return s.nextID
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func decodeTime(raw json.RawMessage) *time.Time {
	if strings.TrimSpace(string(raw)) == "null" {
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil
	}
	return &t
}

func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, models.ListResponse[T]{
		Data: items,
		Meta: models.ListMeta{Pagination: models.Pagination{
			Page:      1,
			PageSize:  len(items),
			PageCount: 1,
			Total:     len(items),
		}},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"data":  nil,
		"error": map[string]any{"status": status, "message": msg},
	})
}
