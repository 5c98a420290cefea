package unitofwork

import (
	"context"

	"os-help-bot/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TranscriptRepository() contract.TranscriptRepository
}
