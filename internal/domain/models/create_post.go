package model

type CreatePostDTO struct {
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	FeaturedImage *ImageUpload `json:"-"`
}
