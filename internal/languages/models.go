package languages

import (
	"time"

	"github.com/google/uuid"
)

// Language is the spoken language a session is screened in
type Language struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Text      string    `json:"text" gorm:"not null;size:50"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null;size:60"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (l *Language) ToResponse() LanguageResponse {
	return LanguageResponse{
		ID:   l.ID.String(),
		Text: l.Text,
		Slug: l.Slug,
	}
}

func (Language) TableName() string {
	return "languages"
}
