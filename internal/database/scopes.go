package database

import (
	"gorm.io/gorm"

	"github.com/medicheck/medicheck-api/internal/utils"
)

// OwnedBy restricts a query to rows belonging to the given user. Every
// repository query over user-owned tables goes through this scope so an
// unscoped read cannot slip in.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
