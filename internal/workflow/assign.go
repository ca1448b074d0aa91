// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package workflow

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"agencyweb/internal/slug"
	"agencyweb/internal/strapi"
)

// Rule maps title keywords to a category slug. Keywords are slugs
// themselves and match whole hyphen-separated words of the slugged title.
type Rule struct {
	CategorySlug string
	Keywords     []string
}

// DefaultRules is the lookup table used to backfill article categories.
// Earlier rules win.
var DefaultRules = []Rule{
	{CategorySlug: "pripadove-studie", Keywords: []string{"case-study", "pripadova-studie", "reference", "klient", "client"}},
	{CategorySlug: "automatizace", Keywords: []string{"automatizace", "automation", "workflow", "proces", "process", "n8n", "zapier"}},
	{CategorySlug: "umela-inteligence", Keywords: []string{"ai", "umela-inteligence", "gpt", "chatgpt", "llm", "machine-learning", "strojove-uceni", "agent"}},
	{CategorySlug: "novinky", Keywords: []string{"novinky", "news", "oznameni", "announcement", "novinka"}},
}

// Match returns the category slug of the first rule with a keyword in title.
func Match(rules []Rule, title string) (string, bool) {
	words := "-" + slug.Generate(title) + "-"
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(words, "-"+kw+"-") {
				return rule.CategorySlug, true
			}
		}
	}
	return "", false
}

// Assignment records one category chosen for an article.
type Assignment struct {
	ArticleID    int
	Title        string
	CategorySlug string
}

// AssignResult summarizes a category backfill run.
type AssignResult struct {
	Updated     int
	Failed      int
	Skipped     int
	Assignments []Assignment
}

// Assigner backfills categories on uncategorized articles.
type Assigner struct {
	cms   *strapi.Client
	rules []Rule
	log   *slog.Logger
}

// NewAssigner creates an Assigner using rules (DefaultRules when nil).
func NewAssigner(cms *strapi.Client, rules []Rule, logger *slog.Logger) *Assigner {
	if rules == nil {
		rules = DefaultRules
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assigner{cms: cms, rules: rules, log: logger}
}

// Run assigns a category to every article that has none and whose title
// matches a rule. With dryRun set, nothing is written. A failed update is
// logged and counted; the run continues with the next article.
func (a *Assigner) Run(ctx context.Context, dryRun bool) (AssignResult, error) {
	var res AssignResult

	categories, err := a.cms.ListCategories(ctx)
	if err != nil {
		return res, err
	}
	idBySlug := make(map[string]int, len(categories))
	for _, c := range categories {
		idBySlug[c.Slug] = c.ID
	}

	articles, err := a.cms.ListArticles(ctx, strapi.ArticleQuery{})
	if err != nil {
		return res, err
	}

	for _, article := range articles {
		if article.Category != nil {
			continue
		}

		catSlug, ok := Match(a.rules, article.Title)
		if !ok {
			a.log.Debug("no category rule matched", "id", article.ID, "title", article.Title)
			res.Skipped++
			continue
		}
		catID, ok := idBySlug[catSlug]
		if !ok {
			a.log.Warn("category missing in CMS", "slug", catSlug, "article", article.ID)
			res.Skipped++
			continue
		}

		assignment := Assignment{ArticleID: article.ID, Title: article.Title, CategorySlug: catSlug}
		if dryRun {
			res.Assignments = append(res.Assignments, assignment)
			continue
		}

		id := strconv.Itoa(article.ID)
		_, ok, err := a.cms.UpdateArticle(ctx, id, map[string]any{"category": catID})
		if err != nil || !ok {
			a.log.Error("assign category failed", "id", id, "category", catSlug, "error", err)
			res.Failed++
			continue
		}

		a.log.Info("category assigned", "id", id, "title", article.Title, "category", catSlug)
		res.Updated++
		res.Assignments = append(res.Assignments, assignment)
	}

	return res, nil
}
