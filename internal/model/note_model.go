package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Note struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title     string         `gorm:"type:varchar(255);not null"`
	Content   string         `gorm:"type:text"`
	Tags      pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`

	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (Note) TableName() string {
	return "notes"
}
