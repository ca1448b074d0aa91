package models

import "time"

// Article is a blog article stored in the CMS. A nil PublishedAt means the
// article is a pending draft awaiting review.
type Article struct {
	ID          int        `json:"id"`
	DocumentID  string     `json:"documentId,omitempty"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"` // Markdown
	Locale      string     `json:"locale,omitempty"`
	Category    *Category  `json:"category,omitempty"`
	Author      *Author    `json:"author,omitempty"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`

	// Review trail written by the approval workflow.
	ReviewedBy  string     `json:"reviewedBy,omitempty"`
	ReviewNotes string     `json:"reviewNotes,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}

// IsPublished reports whether the article has a publication timestamp.
func (a Article) IsPublished() bool {
	return a.PublishedAt != nil
}

// CategoryName returns the assigned category's name, or "" when uncategorized.
func (a Article) CategoryName() string {
	if a.Category == nil {
		return ""
	}
	return a.Category.Name
}

// AuthorName returns the author's name, or "" when no author is linked.
func (a Article) AuthorName() string {
	if a.Author == nil {
		return ""
	}
	return a.Author.Name
}

// Author is an article author (collection "authors").
type Author struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Bio   string `json:"bio,omitempty"`
}
