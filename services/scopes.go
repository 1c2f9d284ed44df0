package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hands-live/api-go/models"
)

// notDeleted keeps soft-deleted rows out of a query. There is no default
// scope; every read path applies it explicitly.
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// lockForUpdate takes a row lock held until the surrounding transaction
// commits. SQLite has no SELECT ... FOR UPDATE; its single-writer model
// already serializes writers there.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// softDelete flips the paired deletion flags on the row with the given id,
// skipping rows already deleted. Returns the number of rows affected: 1 for
// a live row, 0 otherwise.
func softDelete(tx *gorm.DB, model interface{}, id uint) (int64, error) {
	result := tx.Model(model).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"status":     models.StatusDeleted,
		})
	return result.RowsAffected, result.Error
}
