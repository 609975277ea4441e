package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Note rows also carry a generated search_vector column (see cmd/migrate);
// it is maintained by PostgreSQL and never written from Go.
type Note struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title      string         `gorm:"type:text;not null"`
	Content    string         `gorm:"type:text;not null"`
	Tags       pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	IsFavorite bool           `gorm:"not null;default:false"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
