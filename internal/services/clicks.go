package services

import (
	"context"
	"time"

	"github.com/zinal-app/apiserver/types"
)

// ClickLogRepository defines persistence operations for click logs.
type ClickLogRepository interface {
	Insert(ctx context.Context, log types.ClickLog) (types.ClickLog, error)
	ListRecent(ctx context.Context, limit int) ([]types.ClickLog, error)
	ListSince(ctx context.Context, start time.Time) ([]types.ClickLog, error)
}

// ClickService records button-click events.
type ClickService struct {
	repo ClickLogRepository
}

func NewClickService(repo ClickLogRepository) *ClickService {
	return &ClickService{repo: repo}
}

// Register persists one click for the user. Only the two known buttons are
// accepted; there is no de-duplication.
func (s *ClickService) Register(ctx context.Context, userID int64, buttonName string) (types.ClickLog, error) {
	if buttonName != types.ButtonTelegram && buttonName != types.ButtonCompra {
		return types.ClickLog{}, ErrInvalidButton
	}
	return s.repo.Insert(ctx, types.ClickLog{UserID: userID, ButtonName: buttonName})
}

// ListRecent returns the newest click logs, capped at limit.
func (s *ClickService) ListRecent(ctx context.Context, limit int) ([]types.ClickLog, error) {
	return s.repo.ListRecent(ctx, limit)
}
