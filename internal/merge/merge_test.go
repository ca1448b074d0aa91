package merge

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"agencyweb/internal/models"
)

// fakeSource serves fixed localization lists per locale and records calls.
type fakeSource struct {
	mu     sync.Mutex
	lists  map[string][]models.CategoryLocalization
	errs   map[string]error
	calls  []string
	delay  time.Duration
	active int
	peak   int
}

func (f *fakeSource) ListCategoryLocalizations(ctx context.Context, locale string) ([]models.CategoryLocalization, error) {
	f.mu.Lock()
	f.calls = append(f.calls, locale)
	f.active++
	if f.active > f.peak {
		f.peak = f.active
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.active--
	f.mu.Unlock()

	if err := f.errs[locale]; err != nil {
		return nil, err
	}
	return f.lists[locale], nil
}

func loc(id int, slug, name string, active *bool) models.CategoryLocalization {
	return models.CategoryLocalization{ID: id, Slug: slug, Name: name, Description: name + " desc", IsActive: active}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// TestMerge_Example reproduces the documented example: English display
// locale picks the English slug and ANDs the active flags.
func TestMerge_Example(t *testing.T) {
	primary := []models.CategoryLocalization{loc(1, "novinky", "Novinky", models.Bool(true))}
	secondary := []models.CategoryLocalization{loc(1, "news", "News", models.Bool(false))}

	got := Merge(primary, secondary, "en")

	want := []models.BilingualCategory{{
		ID:          "1",
		Slug:        "news",
		Name:        map[string]string{"cs": "Novinky", "en": "News"},
		Description: map[string]string{"cs": "Novinky desc", "en": "News desc"},
		IsActive:    false,
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %+v\nwant %+v", got, want)
	}
}

func TestMerge_EmptyPrimary(t *testing.T) {
	secondary := []models.CategoryLocalization{loc(1, "news", "News", nil)}

	got := Merge(nil, secondary, "en")
	if got == nil {
		t.Fatal("Merge() should return an empty, non-nil slice")
	}
	if len(got) != 0 {
		t.Errorf("Merge() = %v, want empty", got)
	}
}

func TestMerge_SecondaryOnlyDropped(t *testing.T) {
	primary := []models.CategoryLocalization{loc(1, "novinky", "Novinky", nil)}
	secondary := []models.CategoryLocalization{
		loc(1, "news", "News", nil),
		loc(2, "english-only", "English only", nil),
	}

	for _, display := range []string{"cs", "en"} {
		got := Merge(primary, secondary, display)
		if len(got) != 1 || got[0].ID != "1" {
			t.Errorf("display %s: got %+v, want only id 1", display, got)
		}
	}
}

func TestMerge_MissingSecondaryFallsBack(t *testing.T) {
	primary := []models.CategoryLocalization{loc(3, "skoleni", "Školení", models.Bool(true))}

	got := Merge(primary, nil, "en")
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	bc := got[0]
	if bc.Name["en"] != "Školení" || bc.Description["en"] != "Školení desc" {
		t.Errorf("secondary values should fall back to primary: %+v", bc)
	}
	if bc.Slug != "skoleni" {
		t.Errorf("slug: got %q, want primary slug as fallback", bc.Slug)
	}
	if !bc.IsActive {
		t.Error("missing secondary flag should default to true")
	}
}

func TestMerge_ActiveFlag(t *testing.T) {
	tests := []struct {
		name      string
		primary   *bool
		secondary *bool
		want      bool
	}{
		{"both true", models.Bool(true), models.Bool(true), true},
		{"primary false", models.Bool(false), models.Bool(true), false},
		{"secondary false", models.Bool(true), models.Bool(false), false},
		{"both false", models.Bool(false), models.Bool(false), false},
		{"secondary absent", models.Bool(true), nil, true},
		{"both absent", nil, nil, true},
		{"primary absent secondary false", nil, models.Bool(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(
				[]models.CategoryLocalization{loc(1, "a", "A", tt.primary)},
				[]models.CategoryLocalization{loc(1, "b", "B", tt.secondary)},
				"cs",
			)
			if len(got) != 1 {
				t.Fatalf("got %d records", len(got))
			}
			if got[0].IsActive != tt.want {
				t.Errorf("IsActive = %v, want %v", got[0].IsActive, tt.want)
			}
		})
	}
}

func TestMerge_SlugResolution(t *testing.T) {
	primary := []models.CategoryLocalization{loc(1, "novinky", "Novinky", nil)}
	secondary := []models.CategoryLocalization{loc(1, "news", "News", nil)}

	tests := []struct {
		display string
		want    string
	}{
		{"en", "news"},
		{"EN", "news"},
		{"en-US", "news"},
		{"cs", "novinky"},
		{"CS", "novinky"},
		{"", "novinky"},
		{"de", "novinky"},
	}
	for _, tt := range tests {
		got := Merge(primary, secondary, tt.display)
		if got[0].Slug != tt.want {
			t.Errorf("display %q: slug = %q, want %q", tt.display, got[0].Slug, tt.want)
		}
	}
}

func TestMerge_PreservesPrimaryOrder(t *testing.T) {
	primary := []models.CategoryLocalization{
		loc(3, "c", "C", nil),
		loc(1, "a", "A", nil),
		loc(2, "b", "B", nil),
	}
	secondary := []models.CategoryLocalization{
		loc(1, "a-en", "A", nil),
		loc(2, "b-en", "B", nil),
		loc(3, "c-en", "C", nil),
	}

	got := Merge(primary, secondary, "en")
	var ids []string
	for _, bc := range got {
		ids = append(ids, bc.ID)
	}
	if strings.Join(ids, ",") != "3,1,2" {
		t.Errorf("order = %v, want 3,1,2", ids)
	}
}

func TestMerge_DuplicatePrimaryKeys(t *testing.T) {
	primary := []models.CategoryLocalization{
		loc(1, "a", "A", nil),
		loc(1, "a-again", "A again", nil),
	}

	got := Merge(primary, nil, "cs")
	if len(got) != 1 || got[0].Slug != "a" {
		t.Errorf("got %+v, want one record for id 1", got)
	}
}

// TestMerge_SkipsMissingSlug verifies the sanity check filters only the bad
// record and logs a warning.
func TestMerge_SkipsMissingSlug(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	primary := []models.CategoryLocalization{
		loc(1, "novinky", "Novinky", nil),
		loc(2, "pripady", "Případy", nil),
	}
	secondary := []models.CategoryLocalization{
		loc(1, "news", "News", nil),
		loc(2, "", "Cases", nil),
	}

	got := merge(logger, primary, secondary, "en")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("got %+v, want only id 1", got)
	}
	if !strings.Contains(logs.String(), "skipping category without slug") {
		t.Errorf("expected warning in logs: %s", logs.String())
	}

	// The same record is fine in the primary locale.
	if got := merge(logger, primary, secondary, "cs"); len(got) != 2 {
		t.Errorf("cs display: got %d records, want 2", len(got))
	}
}

func TestMerge_JoinsOnCategoryRelation(t *testing.T) {
	cat := &models.Category{ID: 10, Color: "#00ff00", SortOrder: 4}
	primary := []models.CategoryLocalization{{ID: 100, Category: cat, Slug: "novinky", Name: "Novinky"}}
	secondary := []models.CategoryLocalization{{ID: 200, Category: cat, Slug: "news", Name: "News"}}

	got := Merge(primary, secondary, "en")
	if len(got) != 1 {
		t.Fatalf("got %d records", len(got))
	}
	if got[0].ID != "10" || got[0].Slug != "news" || got[0].Name["en"] != "News" {
		t.Errorf("unexpected record: %+v", got[0])
	}
	if got[0].Color != "#00ff00" || got[0].SortOrder != 4 {
		t.Errorf("canonical fields not copied: %+v", got[0])
	}
}

func TestActiveOnly(t *testing.T) {
	in := []models.BilingualCategory{{ID: "1", IsActive: true}, {ID: "2"}, {ID: "3", IsActive: true}}
	got := ActiveOnly(in)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("ActiveOnly() = %+v", got)
	}
}

// =====================================================================
// Merger
// =====================================================================

func TestBilingualCategories_FetchesBothLocalesConcurrently(t *testing.T) {
	src := &fakeSource{
		lists: map[string][]models.CategoryLocalization{
			"cs": {loc(1, "novinky", "Novinky", models.Bool(true))},
			"en": {loc(1, "news", "News", models.Bool(true))},
		},
		delay: 50 * time.Millisecond,
	}

	got, err := New(src, discardLogger()).BilingualCategories(context.Background(), "EN-us")
	if err != nil {
		t.Fatalf("BilingualCategories: %v", err)
	}
	if len(got) != 1 || got[0].Slug != "news" {
		t.Errorf("got %+v", got)
	}
	if len(src.calls) != 2 {
		t.Errorf("calls = %v, want one per locale", src.calls)
	}
	if src.peak != 2 {
		t.Errorf("peak concurrent fetches = %d, want 2", src.peak)
	}
}

func TestBilingualCategories_PropagatesFetchError(t *testing.T) {
	boom := errors.New("connection refused")
	src := &fakeSource{errs: map[string]error{"en": boom}}

	_, err := New(src, nil).BilingualCategories(context.Background(), "cs")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if !strings.Contains(err.Error(), "en localizations") {
		t.Errorf("error should name the locale: %v", err)
	}
}

func TestBilingualCategories_EmptyCMS(t *testing.T) {
	got, err := New(&fakeSource{}, discardLogger()).BilingualCategories(context.Background(), "cs")
	if err != nil {
		t.Fatalf("BilingualCategories: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}
