package specification

import "gorm.io/gorm"

// ByEmail matches the stored email exactly (case-sensitive).
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
