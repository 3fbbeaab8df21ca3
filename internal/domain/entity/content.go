// Package entity defines the core domain entities for the marketing
// automation pipeline: generated content, storefront products, and
// researched keywords, along with their validation rules.
package entity

import "time"

// ContentType identifies the kind of marketing copy a piece of content is.
type ContentType string

const (
	ContentTypeBlogPost           ContentType = "blog_post"
	ContentTypeProductDescription ContentType = "product_description"
	ContentTypeSocialMedia        ContentType = "social_media"
	ContentTypeEmail              ContentType = "email"
)

// Valid reports whether the content type is one of the known kinds.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeBlogPost, ContentTypeProductDescription, ContentTypeSocialMedia, ContentTypeEmail:
		return true
	}
	return false
}

// ContentStatus tracks a content piece through its publishing lifecycle.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusScheduled ContentStatus = "scheduled"
	ContentStatusPublished ContentStatus = "published"
)

// Content is a generated piece of marketing copy.
type Content struct {
	ID              int64
	Type            ContentType
	Title           string
	Body            string
	MetaDescription string
	Keywords        []string
	WordCount       int
	SEOScore        float64
	Status          ContentStatus
	// Platform is set for social media content (instagram, pinterest, ...).
	Platform  string
	CreatedAt time.Time
}

// SocialPost is the platform-specific payload produced for social channels.
type SocialPost struct {
	Platform        string
	Caption         string
	Hashtags        []string
	CallToAction    string
	ImageSuggestion string
	CreatedAt       time.Time
}
