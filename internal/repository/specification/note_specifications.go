package specification

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// HasAnyTag matches notes sharing at least one tag with the filter set
// (array overlap, not subset). Backed by the GIN index on the tags column.
type HasAnyTag struct {
	Tags []string
}

func (s HasAnyTag) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tags && ?", pq.Array(s.Tags))
}
