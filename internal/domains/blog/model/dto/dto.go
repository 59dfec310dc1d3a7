package dto

import (
	"time"

	"hotel/internal/domains/blog/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateBlogRequest struct {
	Title      string   `json:"title"       validate:"required,notblank,max=200"`
	Slug       string   `json:"slug"        validate:"required,notblank,max=200"`
	Excerpt    string   `json:"excerpt"     validate:"omitempty,max=500"`
	Content    string   `json:"content"     validate:"required,notblank"`
	Author     string   `json:"author"      validate:"omitempty,max=100"`
	CoverImage string   `json:"cover_image" validate:"omitempty,url"`
	Tags       []string `json:"tags"        validate:"omitempty,max=20,dive,notblank"`
	Published  *bool    `json:"published"`
}

func (c *CreateBlogRequest) ToModel(user string) model.Blog {
	published := false
	if c.Published != nil {
		published = *c.Published
	}

	now := timezone.Now()

	return model.Blog{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Slug:        c.Slug,
		Excerpt:     c.Excerpt,
		Content:     c.Content,
		Author:      c.Author,
		CoverImage:  c.CoverImage,
		Tags:        pq.StringArray(c.Tags),
		Published:   published,
		PublishedAt: publishedAt(published, now),
		Metadata:    gModel.CreatedBy(user, now),
	}
}

type UpdateBlogRequest struct {
	Title      *string        `db:"title"       json:"title"       validate:"omitempty,notblank,max=200"`
	Slug       *string        `db:"slug"        json:"slug"        validate:"omitempty,notblank,max=200"`
	Excerpt    *string        `db:"excerpt"     json:"excerpt"     validate:"omitempty,max=500"`
	Content    *string        `db:"content"     json:"content"     validate:"omitempty,notblank"`
	Author     *string        `db:"author"      json:"author"      validate:"omitempty,max=100"`
	CoverImage *string        `db:"cover_image" json:"cover_image" validate:"omitempty,url"`
	Tags       pq.StringArray `db:"tags"        json:"tags"        validate:"omitempty,max=20,dive,notblank"`
	Published  *bool          `db:"published"   json:"published"`
}

type BlogResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Author      string   `json:"author"`
	CoverImage  string   `json:"cover_image"`
	Tags        []string `json:"tags"`
	Published   bool     `json:"published"`
	PublishedAt *string  `json:"published_at"`
	gDto.Metadata
}

func (r *BlogResponse) FromModel(model model.Blog) {
	r.ID = model.ID
	r.Title = model.Title
	r.Slug = model.Slug
	r.Excerpt = model.Excerpt
	r.Content = model.Content
	r.Author = model.Author
	r.CoverImage = model.CoverImage
	r.Tags = nonNil(model.Tags)
	r.Published = model.Published
	r.PublishedAt = formatTime(model.PublishedAt)
	r.Metadata.FromModel(model.Metadata)
}

type GetBlogsResponse struct {
	Blogs     []BlogResponse `json:"blogs"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetBlogsResponse) FromModels(models []model.Blog, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Blogs = make([]BlogResponse, len(models))
	for i, mod := range models {
		r.Blogs[i].FromModel(mod)
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

func publishedAt(published bool, now time.Time) *time.Time {
	if !published {
		return nil
	}

	return &now
}

func formatTime(value *time.Time) *string {
	if value == nil {
		return nil
	}

	formatted := timezone.Format(*value, constant.DateFormat)

	return &formatted
}
