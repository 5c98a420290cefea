package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByUserID struct {
	UserID string
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByTurnID struct {
	TurnID uuid.UUID
}

func (s ByTurnID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("turn_id = ?", s.TurnID)
}

// ByRole filters transcript rows to one side of the conversation
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}
