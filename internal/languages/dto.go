package languages

type LanguageRequest struct {
	Text string `json:"text" binding:"required,min=2,max=50"`
}

type LanguageResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Slug string `json:"slug"`
}
