package model

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Post struct {
	ID            int64              `json:"id"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	FeaturedImage *string            `json:"featured_image,omitempty"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (p *Post) HasFeaturedImage() bool {
	return p.FeaturedImage != nil && *p.FeaturedImage != ""
}
