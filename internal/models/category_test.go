package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCategoryLocalizationKey(t *testing.T) {
	tests := []struct {
		name string
		loc  CategoryLocalization
		want string
	}{
		{
			name: "own id when relation missing",
			loc:  CategoryLocalization{ID: 7},
			want: "7",
		},
		{
			name: "canonical category id when populated",
			loc:  CategoryLocalization{ID: 7, Category: &Category{ID: 3}},
			want: "3",
		},
		{
			name: "zero category id falls back to own id",
			loc:  CategoryLocalization{ID: 9, Category: &Category{}},
			want: "9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActiveFlags(t *testing.T) {
	if !(CategoryLocalization{}).Active() {
		t.Error("absent localization flag should default to true")
	}
	if (CategoryLocalization{IsActive: Bool(false)}).Active() {
		t.Error("explicit false should be honoured")
	}
	if !(Category{}).Active() {
		t.Error("absent category flag should default to true")
	}
	if (Category{IsActive: Bool(false)}).Active() {
		t.Error("explicit false should be honoured on category")
	}
}

// TestCategoryLocalizationDecode checks decoding of a flat Strapi v5 record
// with a populated category relation and a missing isActive flag.
func TestCategoryLocalizationDecode(t *testing.T) {
	raw := `{"id":12,"documentId":"abc","locale":"en","name":"News","slug":"news",
		"description":"Latest","category":{"id":4,"name":"Novinky","slug":"novinky","sortOrder":2,"color":"#ff0000"}}`

	var loc CategoryLocalization
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if loc.IsActive != nil {
		t.Errorf("IsActive = %v, want nil when absent", *loc.IsActive)
	}
	if loc.Key() != "4" {
		t.Errorf("Key() = %q, want %q", loc.Key(), "4")
	}
	if loc.Category.Color != "#ff0000" || loc.Category.SortOrder != 2 {
		t.Errorf("category = %+v", loc.Category)
	}
}

func TestArticleHelpers(t *testing.T) {
	now := time.Now()
	a := Article{Title: "Draft"}
	if a.IsPublished() {
		t.Error("article without publishedAt should be pending")
	}
	if a.CategoryName() != "" || a.AuthorName() != "" {
		t.Error("missing relations should yield empty names")
	}

	a.PublishedAt = &now
	a.Category = &Category{Name: "AI"}
	a.Author = &Author{Name: "Jana"}
	if !a.IsPublished() {
		t.Error("article with publishedAt should be published")
	}
	if a.CategoryName() != "AI" || a.AuthorName() != "Jana" {
		t.Errorf("names = %q/%q", a.CategoryName(), a.AuthorName())
	}
}

func TestArticleDecode_NullPublishedAt(t *testing.T) {
	var a Article
	if err := json.Unmarshal([]byte(`{"id":1,"title":"T","slug":"t","publishedAt":null,"category":null}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.IsPublished() || a.Category != nil {
		t.Errorf("unexpected decode: %+v", a)
	}
}
