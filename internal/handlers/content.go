// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the read-only JSON API the website front-end uses
// to render the blog: merged bilingual categories and published articles.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"agencyweb/internal/cache"
	"agencyweb/internal/markdown"
	"agencyweb/internal/merge"
	"agencyweb/internal/models"
	"agencyweb/internal/strapi"
)

// CategorySource yields merged categories for a display locale.
// *merge.Merger satisfies it.
type CategorySource interface {
	BilingualCategories(ctx context.Context, displayLocale string) ([]models.BilingualCategory, error)
}

// ArticleSource reads articles. *strapi.Client satisfies it.
type ArticleSource interface {
	ListArticles(ctx context.Context, q strapi.ArticleQuery) ([]models.Article, error)
	GetArticle(ctx context.Context, id, locale string) (models.Article, bool, error)
}

// Cache stores JSON documents. *cache.ContentCache satisfies it.
type Cache interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, v any)
}

// Content groups the blog API handlers. Responses are cached when a cache
// is configured; the CMS stays the source of truth.
type Content struct {
	categories CategorySource
	articles   ArticleSource
	cache      Cache
}

// NewContent creates the content handlers. c may be nil to disable caching.
func NewContent(categories CategorySource, articles ArticleSource, c Cache) *Content {
	return &Content{categories: categories, articles: articles, cache: c}
}

// categoriesResponse is the body of GET /api/categories.
type categoriesResponse struct {
	Data   []models.BilingualCategory `json:"data"`
	Locale string                     `json:"locale"`
}

// articlesResponse is the body of GET /api/articles.
type articlesResponse struct {
	Data     []articleView `json:"data"`
	Locale   string        `json:"locale"`
	Category string        `json:"category,omitempty"`
}

type articleView struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Excerpt     string       `json:"excerpt,omitempty"`
	Category    *categoryRef `json:"category,omitempty"`
	Author      string       `json:"author,omitempty"`
	PublishedAt *time.Time   `json:"publishedAt"`
}

// articleDetail is the body of GET /api/articles/{id}.
type articleDetail struct {
	articleView
	ContentHTML string `json:"contentHtml"`
	Locale      string `json:"locale"`
}

type categoryRef struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Categories serves the active bilingual categories for ?locale= (default cs).
func (h *Content) Categories(w http.ResponseWriter, r *http.Request) {
	l, msg := validateLocale(r.URL.Query().Get("locale"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	cats, err := h.activeCategories(r.Context(), l)
	if err != nil {
		slog.Error("load categories failed", "locale", l, "error", err)
		writeError(w, http.StatusBadGateway, "Content service unavailable.")
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Data: cats, Locale: l})
}

// Articles serves published articles for ?locale=, optionally narrowed to
// the category whose slug in that locale is ?category=.
func (h *Content) Articles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	l, msg := validateLocale(q.Get("locale"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	catSlug := q.Get("category")
	if msg := validateCategorySlug(catSlug); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	key := cache.ArticlesKey(l, catSlug)
	var resp articlesResponse
	if h.cache != nil && h.cache.Get(ctx, key, &resp) {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	cats, err := h.activeCategories(ctx, l)
	if err != nil {
		if catSlug != "" {
			slog.Error("load categories failed", "locale", l, "error", err)
			writeError(w, http.StatusBadGateway, "Content service unavailable.")
			return
		}
		// Articles are still listed, with their canonical category names.
		slog.Warn("article categories not localized", "locale", l, "error", err)
	}
	byID := categoriesByID(cats)

	query := strapi.ArticleQuery{Status: strapi.StatusPublished, Locale: l}
	if catSlug != "" {
		id, ok := categoryIDBySlug(cats, catSlug)
		if !ok {
			writeError(w, http.StatusNotFound, "Category not found.")
			return
		}
		query.CategoryID = id
	}

	articles, err := h.articles.ListArticles(ctx, query)
	if err != nil {
		slog.Error("list articles failed", "locale", l, "category", catSlug, "error", err)
		writeError(w, http.StatusBadGateway, "Content service unavailable.")
		return
	}

	resp = articlesResponse{Data: make([]articleView, 0, len(articles)), Locale: l, Category: catSlug}
	for _, a := range articles {
		resp.Data = append(resp.Data, toView(a, byID, l))
	}
	if h.cache != nil {
		h.cache.Set(ctx, key, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Article serves one published article with its Markdown body rendered to
// HTML. Drafts are reported as not found.
func (h *Content) Article(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if n, err := strconv.Atoi(id); err != nil || n <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid article id.")
		return
	}
	l, msg := validateLocale(r.URL.Query().Get("locale"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	key := cache.ArticleKey(l, id)
	var resp articleDetail
	if h.cache != nil && h.cache.Get(ctx, key, &resp) {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	article, ok, err := h.articles.GetArticle(ctx, id, l)
	if err != nil {
		slog.Error("get article failed", "id", id, "locale", l, "error", err)
		writeError(w, http.StatusBadGateway, "Content service unavailable.")
		return
	}
	if !ok || !article.IsPublished() {
		writeError(w, http.StatusNotFound, "Article not found.")
		return
	}

	body, err := markdown.ToHTML(article.Content)
	if err != nil {
		slog.Error("render article failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Article could not be rendered.")
		return
	}

	cats, err := h.activeCategories(ctx, l)
	if err != nil {
		slog.Warn("article category not localized", "id", id, "error", err)
	}

	resp = articleDetail{articleView: toView(article, categoriesByID(cats), l), ContentHTML: body, Locale: l}
	if h.cache != nil {
		h.cache.Set(ctx, key, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

// activeCategories returns the cached or freshly merged active categories.
func (h *Content) activeCategories(ctx context.Context, l string) ([]models.BilingualCategory, error) {
	key := cache.CategoriesKey(l)
	var cats []models.BilingualCategory
	if h.cache != nil && h.cache.Get(ctx, key, &cats) {
		return cats, nil
	}

	all, err := h.categories.BilingualCategories(ctx, l)
	if err != nil {
		return nil, err
	}
	cats = merge.ActiveOnly(all)
	if h.cache != nil {
		h.cache.Set(ctx, key, cats)
	}
	return cats, nil
}

func categoriesByID(cats []models.BilingualCategory) map[string]models.BilingualCategory {
	byID := make(map[string]models.BilingualCategory, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	return byID
}

func categoryIDBySlug(cats []models.BilingualCategory, slug string) (int, bool) {
	for _, c := range cats {
		if c.Slug != slug {
			continue
		}
		id, err := strconv.Atoi(c.ID)
		return id, err == nil
	}
	return 0, false
}

func toView(a models.Article, byID map[string]models.BilingualCategory, l string) articleView {
	v := articleView{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt,
		Author:      a.AuthorName(),
		PublishedAt: a.PublishedAt,
	}
	if a.Category != nil {
		id := strconv.Itoa(a.Category.ID)
		if bc, ok := byID[id]; ok {
			v.Category = &categoryRef{ID: id, Slug: bc.Slug, Name: bc.Name[l]}
		} else {
			v.Category = &categoryRef{ID: id, Slug: a.Category.Slug, Name: a.Category.Name}
		}
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
