package workflow

import (
	"cmp"
	"context"
	"slices"

	"agencyweb/internal/models"
	"agencyweb/internal/strapi"
)

// Stats summarizes the article collection.
type Stats struct {
	Total         int
	Published     int
	Pending       int
	Uncategorized int
	ByCategory    []CategoryCount
}

// CategoryCount is the number of articles in one category.
type CategoryCount struct {
	Name      string
	Published int
	Pending   int
}

// Total returns the category's article count.
func (c CategoryCount) Total() int {
	return c.Published + c.Pending
}

// Stats fetches every article and summarizes it.
func (r *Reviewer) Stats(ctx context.Context) (Stats, error) {
	articles, err := r.cms.ListArticles(ctx, strapi.ArticleQuery{})
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(articles), nil
}

// ComputeStats counts articles by publication state and category. Categories
// are ordered by article count, largest first, then by name.
func ComputeStats(articles []models.Article) Stats {
	var s Stats
	byName := map[string]*CategoryCount{}

	for _, a := range articles {
		s.Total++
		if a.IsPublished() {
			s.Published++
		} else {
			s.Pending++
		}

		name := a.CategoryName()
		if name == "" {
			s.Uncategorized++
			continue
		}
		cc, ok := byName[name]
		if !ok {
			cc = &CategoryCount{Name: name}
			byName[name] = cc
		}
		if a.IsPublished() {
			cc.Published++
		} else {
			cc.Pending++
		}
	}

	for _, cc := range byName {
		s.ByCategory = append(s.ByCategory, *cc)
	}
	slices.SortFunc(s.ByCategory, func(a, b CategoryCount) int {
		if c := cmp.Compare(b.Total(), a.Total()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return s
}
