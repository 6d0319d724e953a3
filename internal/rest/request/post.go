package request

import "github.com/movietalk/feed-client/domain"

// Post is the multipart compose form; the image travels as the "image" file part
type Post struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Review      string `form:"review"`
}

// ToDomain: Request -> Domain
func (r *Post) ToDomain(image *domain.ImageUpload) domain.PostDraft {
	return domain.PostDraft{
		Title:       r.Title,
		Description: r.Description,
		Review:      r.Review,
		Image:       image,
	}
}
