package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

type SupportMessage struct {
	Id        uuid.UUID
	TurnId    uuid.UUID
	UserId    string
	Role      string
	Content   string
	Path      string
	Sources   []string
	Links     []string
	CreatedAt time.Time
}
