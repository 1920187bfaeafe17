package tenant

import "gorm.io/gorm"

func Scope(gymID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("gym_id = ?", gymID)
	}
}
