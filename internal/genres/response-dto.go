package genres

type GenreResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Slug string `json:"slug"`
}
