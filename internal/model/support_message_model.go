package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SupportMessage is one side of a resolved turn. A turn is stored as a user
// row and a bot row sharing TurnId.
type SupportMessage struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TurnId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserId    string         `gorm:"type:varchar(255);not null;index"`
	Role      string         `gorm:"type:varchar(20);not null"`
	Content   string         `gorm:"type:text;not null"`
	Path      string         `gorm:"type:varchar(50)"`
	Sources   datatypes.JSON `gorm:"type:jsonb"`
	Links     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SupportMessage) TableName() string {
	return "support_messages"
}
