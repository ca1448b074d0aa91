package workflow

import (
	"context"
	"log/slog"

	"agencyweb/internal/locale"
	"agencyweb/internal/models"
	"agencyweb/internal/slug"
	"agencyweb/internal/strapi"
)

// SeedCategory describes a test category with its localized copy.
type SeedCategory struct {
	Color        string
	Names        map[string]string // by locale
	Descriptions map[string]string // by locale
	SampleTitle  string
}

// DefaultSeed is the test content created by the seed command.
var DefaultSeed = []SeedCategory{
	{
		Color:        "#2563eb",
		Names:        map[string]string{"cs": "Novinky", "en": "News"},
		Descriptions: map[string]string{"cs": "Novinky z naší agentury", "en": "News from our agency"},
		SampleTitle:  "Novinky: otevíráme pobočku v Brně",
	},
	{
		Color:        "#7c3aed",
		Names:        map[string]string{"cs": "Umělá inteligence", "en": "Artificial Intelligence"},
		Descriptions: map[string]string{"cs": "Praktické využití AI ve firmách", "en": "Practical AI for businesses"},
		SampleTitle:  "Jak nasadit AI agenta do zákaznické podpory",
	},
	{
		Color:        "#059669",
		Names:        map[string]string{"cs": "Automatizace", "en": "Automation"},
		Descriptions: map[string]string{"cs": "Automatizace firemních procesů", "en": "Business process automation"},
		SampleTitle:  "Automatizace fakturace krok za krokem",
	},
	{
		Color:        "#d97706",
		Names:        map[string]string{"cs": "Případové studie", "en": "Case Studies"},
		Descriptions: map[string]string{"cs": "Výsledky našich klientů", "en": "Results from our clients"},
		SampleTitle:  "Případová studie: e-shop s chatbotem",
	},
}

// SeedResult counts what a seed run created. Existing counts seed
// categories that were already in the CMS.
type SeedResult struct {
	Categories    int
	Localizations int
	Authors       int
	Articles      int
	Existing      int
	Failed        int
}

// Changed reports whether the run wrote any site content.
func (r SeedResult) Changed() bool {
	return r.Categories+r.Localizations+r.Articles > 0
}

// Seeder creates test categories, localizations, an author and draft articles.
type Seeder struct {
	cms  *strapi.Client
	seed []SeedCategory
	log  *slog.Logger
}

// NewSeeder creates a Seeder for seed (DefaultSeed when nil).
func NewSeeder(cms *strapi.Client, seed []SeedCategory, logger *slog.Logger) *Seeder {
	if seed == nil {
		seed = DefaultSeed
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{cms: cms, seed: seed, log: logger}
}

// seedAuthor is the author linked to the seeded articles.
var seedAuthor = strapi.NewAuthor{
	Name:  "Test Author",
	Email: "test.author@example.com",
	Bio:   "Seeded for local development.",
}

// Run creates the seed content and can be repeated. Categories whose slug
// already exists are kept and only their missing localizations are created;
// sample articles are written for new categories only. The author is looked
// up by email before creating one. A failed create is logged and counted,
// and the run continues; only failing to list categories or localizations
// aborts it.
func (s *Seeder) Run(ctx context.Context) (SeedResult, error) {
	var res SeedResult

	existing, err := s.cms.ListCategories(ctx)
	if err != nil {
		return res, err
	}
	bySlug := make(map[string]models.Category, len(existing))
	for _, c := range existing {
		bySlug[c.Slug] = c
	}

	localized, err := s.localized(ctx)
	if err != nil {
		return res, err
	}

	author := s.author(ctx, &res)

	for i, sc := range s.seed {
		name := sc.Names[locale.Primary]
		catSlug := slug.Generate(name)

		cat, found := bySlug[catSlug]
		if found {
			s.log.Info("seed category exists", "slug", catSlug)
			res.Existing++
		} else {
			created, ok, err := s.cms.CreateCategory(ctx, strapi.NewCategory{
				Name:      name,
				Slug:      catSlug,
				IsActive:  true,
				SortOrder: i + 1,
				Color:     sc.Color,
			})
			if err != nil || !ok {
				s.log.Error("seed category failed", "slug", catSlug, "error", err)
				res.Failed++
				continue
			}
			cat = created
			res.Categories++
		}

		for _, l := range locale.Supported {
			if localized[l][cat.ID] {
				continue
			}
			_, ok, err := s.cms.CreateCategoryLocalization(ctx, strapi.NewCategoryLocalization{
				Category:    cat.ID,
				Locale:      l,
				Name:        sc.Names[l],
				Slug:        slug.Generate(sc.Names[l]),
				Description: sc.Descriptions[l],
				IsActive:    true,
			})
			if err != nil || !ok {
				s.log.Error("seed localization failed", "slug", catSlug, "locale", l, "error", err)
				res.Failed++
				continue
			}
			res.Localizations++
		}

		if found || sc.SampleTitle == "" {
			continue
		}
		_, ok, err := s.cms.CreateArticle(ctx, strapi.NewArticle{
			Title:    sc.SampleTitle,
			Slug:     slug.Generate(sc.SampleTitle),
			Excerpt:  sc.Descriptions[locale.Primary],
			Content:  "## " + sc.SampleTitle + "\n\n" + sc.Descriptions[locale.Primary] + ".\n",
			Locale:   locale.Primary,
			Category: cat.ID,
			Author:   author.ID,
		})
		if err != nil || !ok {
			s.log.Error("seed article failed", "title", sc.SampleTitle, "error", err)
			res.Failed++
			continue
		}
		res.Articles++
	}

	return res, nil
}

// localized returns, per supported locale, the IDs of categories that
// already have a localization in it.
func (s *Seeder) localized(ctx context.Context) (map[string]map[int]bool, error) {
	out := make(map[string]map[int]bool, len(locale.Supported))
	for _, l := range locale.Supported {
		locs, err := s.cms.ListCategoryLocalizations(ctx, l)
		if err != nil {
			return nil, err
		}
		ids := make(map[int]bool, len(locs))
		for _, loc := range locs {
			if loc.Category != nil {
				ids[loc.Category.ID] = true
			}
		}
		out[l] = ids
	}
	return out, nil
}

// author returns the seed author, creating it when the CMS has none. A zero
// Author is returned when it can be neither found nor created.
func (s *Seeder) author(ctx context.Context, res *SeedResult) models.Author {
	found, ok, err := s.cms.FindAuthorByEmail(ctx, seedAuthor.Email)
	if err != nil {
		s.log.Warn("seed author lookup failed", "error", err)
	}
	if ok {
		s.log.Info("seed author exists", "id", found.ID)
		return found
	}

	created, ok, err := s.cms.CreateAuthor(ctx, seedAuthor)
	if err != nil || !ok {
		s.log.Warn("seed author not created", "error", err)
		res.Failed++
		return models.Author{}
	}
	res.Authors++
	return created
}
