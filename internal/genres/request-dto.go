package genres

type CreateGenreRequest struct {
	Text string `json:"text" binding:"required,min=2,max=50"`
}

type UpdateGenreRequest struct {
	Text string `json:"text" binding:"required,min=2,max=50"`
}
