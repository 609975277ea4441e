package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Bookmark struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title       string         `gorm:"type:text;not null"`
	Url         string         `gorm:"type:text;not null"`
	Description string         `gorm:"type:text;not null;default:''"`
	Tags        pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	IsFavorite  bool           `gorm:"not null;default:false"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
