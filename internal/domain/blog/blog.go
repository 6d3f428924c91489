package blog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bloglist-backend/internal/stats"
)

type Blog struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title  string     `gorm:"not null;column:title" json:"title"`
	Author string     `gorm:"column:author;index" json:"author"`
	URL    string     `gorm:"not null;column:url" json:"url"`
	Likes  int        `gorm:"not null;default:0;column:likes" json:"likes"`
	UserID *uuid.UUID `gorm:"type:uuid;column:user_id;index" json:"user_id,omitempty"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Blog) TableName() string { return "blog" }

// BeforeCreate assigns an id so both Postgres and SQLite rows get one
// without a database-side default.
func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b Blog) Record() stats.Record {
	return stats.Record{
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
	}
}

// Records converts blogs to aggregation input, keeping their order. Nil
// entries are skipped.
func Records(blogs []*Blog) []stats.Record {
	out := make([]stats.Record, 0, len(blogs))
	for _, b := range blogs {
		if b == nil {
			continue
		}
		out = append(out, b.Record())
	}
	return out
}
