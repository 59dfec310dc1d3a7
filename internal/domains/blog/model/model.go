package model

import (
	"time"

	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "blogs"
	EntityName = "blog"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldExcerpt     = "excerpt"
	FieldContent     = "content"
	FieldAuthor      = "author"
	FieldCoverImage  = "cover_image"
	FieldTags        = "tags"
	FieldPublished   = "published"
	FieldPublishedAt = "published_at"
)

type Blog struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Slug        string         `db:"slug"`
	Excerpt     string         `db:"excerpt"`
	Content     string         `db:"content"`
	Author      string         `db:"author"`
	CoverImage  string         `db:"cover_image"`
	Tags        pq.StringArray `db:"tags"`
	Published   bool           `db:"published"`
	PublishedAt *time.Time     `db:"published_at"`
	model.Metadata
}
