package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedRow pins a write to a single row of a single owner.
func OwnedRow(ownerID, id uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND user_id = ?", id, ownerID)
	}
}
