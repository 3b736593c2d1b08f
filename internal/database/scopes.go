package database

import (
	"gorm.io/gorm"

	"github.com/mizuki-dev/project-task-api/internal/utils"
)

// NotDeleted excludes soft-deleted rows from a query.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
