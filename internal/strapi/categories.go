package strapi

import (
	"context"
	"net/http"
	"net/url"

	"agencyweb/internal/models"
)

// ListCategories returns all canonical categories ordered by sortOrder.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	q := url.Values{}
	q.Set("sort", "sortOrder:asc")
	return listAll[models.Category](ctx, c, "/api/categories", q)
}

// ListCategoryLocalizations returns every localization record for one locale
// with its canonical category populated.
func (c *Client) ListCategoryLocalizations(ctx context.Context, locale string) ([]models.CategoryLocalization, error) {
	q := url.Values{}
	q.Set("filters[locale][$eq]", locale)
	q.Set("populate", "category")
	return listAll[models.CategoryLocalization](ctx, c, "/api/category-i18ns", q)
}

// NewCategory holds the fields written when creating a canonical category.
type NewCategory struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	IsActive  bool   `json:"isActive"`
	SortOrder int    `json:"sortOrder"`
	Color     string `json:"color,omitempty"`
}

// CreateCategory posts a new canonical category. ok is false if the CMS rejected it.
func (c *Client) CreateCategory(ctx context.Context, in NewCategory) (models.Category, bool, error) {
	return getOne[models.Category](ctx, c, "/api/categories", RequestOptions{
		Method: http.MethodPost,
		Body:   models.WriteRequest{Data: in},
	})
}

// NewCategoryLocalization holds the fields written when creating a localization.
type NewCategoryLocalization struct {
	Category    int    `json:"category"`
	Locale      string `json:"locale"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// CreateCategoryLocalization posts a localization linked to an existing category.
func (c *Client) CreateCategoryLocalization(ctx context.Context, in NewCategoryLocalization) (models.CategoryLocalization, bool, error) {
	return getOne[models.CategoryLocalization](ctx, c, "/api/category-i18ns", RequestOptions{
		Method: http.MethodPost,
		Body:   models.WriteRequest{Data: in},
	})
}
