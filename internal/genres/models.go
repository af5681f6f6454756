package genres

import (
	"time"

	"github.com/google/uuid"
)

// Genre is a movie category such as "Action" or "Drama"
type Genre struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Text      string    `json:"text" gorm:"not null;size:50"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null;size:60"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (g *Genre) ToResponse() GenreResponse {
	return GenreResponse{
		ID:   g.ID.String(),
		Text: g.Text,
		Slug: g.Slug,
	}
}

// TableName specifies the table name for GORM
func (Genre) TableName() string {
	return "genres"
}
