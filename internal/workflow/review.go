// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package workflow implements the operator procedures run against the CMS:
// reviewing (approving and unpublishing) articles, reporting statistics,
// backfilling article categories and seeding test content. Each procedure
// runs sequentially and treats failures per entity.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"agencyweb/internal/models"
	"agencyweb/internal/strapi"
)

var (
	// ErrInvalidID is returned when an article id is empty.
	ErrInvalidID = errors.New("article id is required")
	// ErrMissingReviewer is returned when no reviewer name is given.
	ErrMissingReviewer = errors.New("reviewer is required")
	// ErrNotFound is returned when the CMS has no article with the id.
	ErrNotFound = errors.New("article not found")
	// ErrAlreadyPublished is returned when approving a published article.
	ErrAlreadyPublished = errors.New("article is already published")
	// ErrNotPublished is returned when unpublishing a pending article.
	ErrNotPublished = errors.New("article is not published")
	// ErrRejected is returned when the CMS refuses an update.
	ErrRejected = errors.New("CMS rejected the update")
)

// Reviewer drives the article approval workflow.
type Reviewer struct {
	cms *strapi.Client
	log *slog.Logger
	now func() time.Time
}

// NewReviewer creates a Reviewer. A nil logger means slog.Default().
func NewReviewer(cms *strapi.Client, logger *slog.Logger) *Reviewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reviewer{cms: cms, log: logger, now: time.Now}
}

// Pending lists articles awaiting review, newest first.
func (r *Reviewer) Pending(ctx context.Context) ([]models.Article, error) {
	return r.cms.ListArticles(ctx, strapi.ArticleQuery{Status: strapi.StatusPending})
}

// Published lists published articles, most recently published first.
func (r *Reviewer) Published(ctx context.Context) ([]models.Article, error) {
	return r.cms.ListArticles(ctx, strapi.ArticleQuery{Status: strapi.StatusPublished})
}

// Approve publishes a pending article and records who reviewed it.
func (r *Reviewer) Approve(ctx context.Context, id, reviewer, notes string) (models.Article, error) {
	article, err := r.load(ctx, id, reviewer)
	if err != nil {
		return models.Article{}, err
	}
	if article.IsPublished() {
		return article, ErrAlreadyPublished
	}

	now := r.now().UTC()
	updated, err := r.update(ctx, id, map[string]any{
		"publishedAt": now.Format(time.RFC3339),
		"reviewedBy":  reviewer,
		"reviewNotes": notes,
		"reviewedAt":  now.Format(time.RFC3339),
	})
	if err != nil {
		return article, err
	}

	r.log.Info("article approved", "id", id, "title", article.Title, "reviewer", reviewer)
	return updated, nil
}

// Unpublish withdraws a published article back to pending, keeping the
// reason in the review notes.
func (r *Reviewer) Unpublish(ctx context.Context, id, reviewer, reason string) (models.Article, error) {
	article, err := r.load(ctx, id, reviewer)
	if err != nil {
		return models.Article{}, err
	}
	if !article.IsPublished() {
		return article, ErrNotPublished
	}

	updated, err := r.update(ctx, id, map[string]any{
		"publishedAt": nil,
		"reviewedBy":  reviewer,
		"reviewNotes": reason,
		"reviewedAt":  r.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return article, err
	}

	r.log.Info("article unpublished", "id", id, "title", article.Title, "reviewer", reviewer)
	return updated, nil
}

func (r *Reviewer) load(ctx context.Context, id, reviewer string) (models.Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Article{}, ErrInvalidID
	}
	if strings.TrimSpace(reviewer) == "" {
		return models.Article{}, ErrMissingReviewer
	}

	article, ok, err := r.cms.GetArticle(ctx, id, "")
	if err != nil {
		return models.Article{}, fmt.Errorf("workflow: get article %s: %w", id, err)
	}
	if !ok {
		return models.Article{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return article, nil
}

func (r *Reviewer) update(ctx context.Context, id string, fields map[string]any) (models.Article, error) {
	updated, ok, err := r.cms.UpdateArticle(ctx, id, fields)
	if err != nil {
		return models.Article{}, fmt.Errorf("workflow: update article %s: %w", id, err)
	}
	if !ok {
		return models.Article{}, fmt.Errorf("%w: article %s", ErrRejected, id)
	}
	return updated, nil
}
