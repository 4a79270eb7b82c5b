package model

type UpdatePostDTO struct {
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	FeaturedImage *ImageUpload `json:"-"`
}
