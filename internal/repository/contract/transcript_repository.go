package contract

import (
	"context"

	"os-help-bot/internal/entity"
	"os-help-bot/internal/repository/specification"
)

type TranscriptRepository interface {
	Create(ctx context.Context, message *entity.SupportMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SupportMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByUserId(ctx context.Context, userId string) error
}
