package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is owned by exactly one account. Tags keep the order the caller sent;
// deduplication is the caller's business.
type Note struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
