package request

type Comment struct {
	Body string `json:"body"` // blank bodies are rejected by the dialog service
}

type OpenDialog struct {
	PostID string `json:"post_id" binding:"required"`
}
