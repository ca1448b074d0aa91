// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package merge joins the per-locale category localizations stored in the
// CMS into bilingual category records used by the website.
package merge

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"agencyweb/internal/locale"
	"agencyweb/internal/models"
)

// Source lists the category localizations of one locale.
// *strapi.Client satisfies it.
type Source interface {
	ListCategoryLocalizations(ctx context.Context, locale string) ([]models.CategoryLocalization, error)
}

// Merger fetches both locales and merges them.
type Merger struct {
	src Source
	log *slog.Logger
}

// New creates a Merger reading from src. A nil logger means slog.Default().
func New(src Source, logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{src: src, log: logger}
}

// BilingualCategories fetches the primary and secondary localization lists
// concurrently and merges them for displayLocale. An empty primary list
// yields an empty result, not an error.
func (m *Merger) BilingualCategories(ctx context.Context, displayLocale string) ([]models.BilingualCategory, error) {
	var primary, secondary []models.CategoryLocalization

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		primary, err = m.src.ListCategoryLocalizations(gctx, locale.Primary)
		if err != nil {
			return fmt.Errorf("merge: list %s localizations: %w", locale.Primary, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		secondary, err = m.src.ListCategoryLocalizations(gctx, locale.Secondary)
		if err != nil {
			return fmt.Errorf("merge: list %s localizations: %w", locale.Secondary, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return merge(m.log, primary, secondary, displayLocale), nil
}

// Merge joins primary and secondary localizations by key. The primary list
// drives membership and order; keys only present in the secondary list are
// dropped. Records whose resolved slug is empty are skipped with a warning.
// displayLocale is normalized like locale.Parse, so "EN" and "en-US" select
// the secondary slug.
func Merge(primary, secondary []models.CategoryLocalization, displayLocale string) []models.BilingualCategory {
	return merge(slog.Default(), primary, secondary, displayLocale)
}

func merge(log *slog.Logger, primary, secondary []models.CategoryLocalization, displayLocale string) []models.BilingualCategory {
	if l, err := locale.Parse(displayLocale); err == nil {
		displayLocale = l
	}

	byKey := make(map[string]models.CategoryLocalization, len(secondary))
	for _, s := range secondary {
		if _, dup := byKey[s.Key()]; dup {
			continue
		}
		byKey[s.Key()] = s
	}

	out := make([]models.BilingualCategory, 0, len(primary))
	seen := make(map[string]bool, len(primary))

	for _, p := range primary {
		key := p.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		s, ok := byKey[key]
		if !ok {
			// Secondary falls back to the primary values.
			s = p
		}

		bc := models.BilingualCategory{
			ID: key,
			Name: map[string]string{
				locale.Primary:   p.Name,
				locale.Secondary: s.Name,
			},
			Description: map[string]string{
				locale.Primary:   p.Description,
				locale.Secondary: s.Description,
			},
			IsActive: p.Active() && s.Active(),
			Slug:     p.Slug,
		}
		if locale.IsSecondary(displayLocale) {
			bc.Slug = s.Slug
		}
		if p.Category != nil {
			bc.Color = p.Category.Color
			bc.SortOrder = p.Category.SortOrder
		}

		if bc.Slug == "" {
			log.Warn("skipping category without slug",
				"id", key,
				"locale", displayLocale,
				"name", p.Name,
			)
			continue
		}
		out = append(out, bc)
	}

	var dropped int
	for key := range byKey {
		if !seen[key] {
			dropped++
		}
	}
	if dropped > 0 {
		log.Debug("secondary-only categories dropped",
			"count", dropped,
			"locale", locale.Secondary,
		)
	}

	return out
}

// ActiveOnly returns the categories whose combined active flag is set.
func ActiveOnly(cats []models.BilingualCategory) []models.BilingualCategory {
	out := make([]models.BilingualCategory, 0, len(cats))
	for _, c := range cats {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}
