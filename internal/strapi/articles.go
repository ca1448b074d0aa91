// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package strapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"agencyweb/internal/models"
)

// ArticleStatus filters articles by publication state.
type ArticleStatus int

const (
	StatusAny ArticleStatus = iota
	StatusPublished
	StatusPending
)

// ArticleQuery narrows ListArticles. Zero values mean no filter.
type ArticleQuery struct {
	Status       ArticleStatus
	CategoryID   int
	CategorySlug string
	Locale       string
}

// ListArticles returns articles with their category and author populated.
// Published articles are sorted newest first by publication date; everything
// else by creation date.
func (c *Client) ListArticles(ctx context.Context, aq ArticleQuery) ([]models.Article, error) {
	q := url.Values{}
	q.Set("populate[0]", "category")
	q.Set("populate[1]", "author")

	switch aq.Status {
	case StatusPublished:
		q.Set("filters[publishedAt][$notNull]", "true")
		q.Set("sort", "publishedAt:desc")
	case StatusPending:
		q.Set("filters[publishedAt][$null]", "true")
		q.Set("sort", "createdAt:desc")
	default:
		q.Set("sort", "createdAt:desc")
	}
	if aq.CategoryID != 0 {
		q.Set("filters[category][id][$eq]", strconv.Itoa(aq.CategoryID))
	}
	if aq.CategorySlug != "" {
		q.Set("filters[category][slug][$eq]", aq.CategorySlug)
	}
	if aq.Locale != "" {
		q.Set("locale", aq.Locale)
	}

	return listAll[models.Article](ctx, c, "/api/articles", q)
}

// GetArticle fetches one article by id in locale ("" for the CMS default
// locale). ok is false if it does not exist.
func (c *Client) GetArticle(ctx context.Context, id, locale string) (models.Article, bool, error) {
	q := url.Values{}
	q.Set("populate[0]", "category")
	q.Set("populate[1]", "author")
	if locale != "" {
		q.Set("locale", locale)
	}
	return getOne[models.Article](ctx, c, "/api/articles/"+url.PathEscape(id), RequestOptions{Query: q})
}

// UpdateArticle writes fields to an article with PUT /api/articles/:id.
// Keys are Strapi attribute names; a nil value clears the attribute.
func (c *Client) UpdateArticle(ctx context.Context, id string, fields map[string]any) (models.Article, bool, error) {
	return getOne[models.Article](ctx, c, "/api/articles/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodPut,
		Body:   models.WriteRequest{Data: fields},
	})
}

// NewArticle holds the fields written when creating an article.
type NewArticle struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Excerpt  string `json:"excerpt,omitempty"`
	Content  string `json:"content,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Category int    `json:"category,omitempty"`
	Author   int    `json:"author,omitempty"`
}

// CreateArticle posts a new article. Strapi creates it as a draft.
func (c *Client) CreateArticle(ctx context.Context, in NewArticle) (models.Article, bool, error) {
	return getOne[models.Article](ctx, c, "/api/articles", RequestOptions{
		Method: http.MethodPost,
		Body:   models.WriteRequest{Data: in},
	})
}

// NewAuthor holds the fields written when creating an author.
type NewAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

// FindAuthorByEmail returns the first author with the given email. ok is
// false when there is none.
func (c *Client) FindAuthorByEmail(ctx context.Context, email string) (models.Author, bool, error) {
	q := url.Values{}
	q.Set("filters[email][$eq]", email)
	authors, err := listAll[models.Author](ctx, c, "/api/authors", q)
	if err != nil || len(authors) == 0 {
		return models.Author{}, false, err
	}
	return authors[0], true, nil
}

// CreateAuthor posts a new author.
func (c *Client) CreateAuthor(ctx context.Context, in NewAuthor) (models.Author, bool, error) {
	return getOne[models.Author](ctx, c, "/api/authors", RequestOptions{
		Method: http.MethodPost,
		Body:   models.WriteRequest{Data: in},
	})
}
