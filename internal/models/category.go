// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strconv"

// Category is the canonical CMS category record (collection "categories").
type Category struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId,omitempty"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	IsActive   *bool  `json:"isActive,omitempty"`
	SortOrder  int    `json:"sortOrder"`
	Color      string `json:"color,omitempty"`
}

// Active returns the category's active flag, treating an absent flag as true.
func (c Category) Active() bool {
	return flagOrTrue(c.IsActive)
}

// CategoryLocalization is a locale-specific copy of a category's display
// fields (collection "category-i18ns").
type CategoryLocalization struct {
	ID          int       `json:"id"`
	DocumentID  string    `json:"documentId,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Locale      string    `json:"locale"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsActive    *bool     `json:"isActive,omitempty"`
}

// Key returns the identifier localizations are joined on: the canonical
// category's ID when the relation is populated, otherwise the record's own ID.
func (l CategoryLocalization) Key() string {
	if l.Category != nil && l.Category.ID != 0 {
		return strconv.Itoa(l.Category.ID)
	}
	return strconv.Itoa(l.ID)
}

// Active returns the localization's active flag, treating an absent flag as true.
func (l CategoryLocalization) Active() bool {
	return flagOrTrue(l.IsActive)
}

// BilingualCategory is the in-memory merge of a category's Czech and English
// localizations. It is derived per request and never written back to the CMS.
type BilingualCategory struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Name        map[string]string `json:"name"`
	Description map[string]string `json:"description"`
	IsActive    bool              `json:"isActive"`

	// Populated from the canonical category when the relation is present.
	Color     string `json:"color,omitempty"`
	SortOrder int    `json:"sortOrder,omitempty"`
}

// Bool returns a pointer to b, for optional CMS flags.
func Bool(b bool) *bool {
	return &b
}

func flagOrTrue(b *bool) bool {
	if b == nil {
		return true
	}
	return *b
}
