package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/zinal-app/apiserver/types"
)

// ClickLogRepository handles persistence for click logs.
type ClickLogRepository struct {
	db *sql.DB
}

func NewClickLogRepository(db *sql.DB) *ClickLogRepository {
	return &ClickLogRepository{db: db}
}

func (r *ClickLogRepository) Insert(ctx context.Context, log types.ClickLog) (types.ClickLog, error) {
	if log.ClickedAt.IsZero() {
		log.ClickedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO click_logs (user_id, button_name, clicked_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		log.UserID,
		log.ButtonName,
		log.ClickedAt,
	).Scan(&log.ID); err != nil {
		return types.ClickLog{}, err
	}
	return log, nil
}

// ListRecent returns up to limit click logs, newest first, with the owning
// username joined in.
func (r *ClickLogRepository) ListRecent(ctx context.Context, limit int) ([]types.ClickLog, error) {
	const query = `
		SELECT c.id, c.user_id, c.button_name, c.clicked_at, u.username
		FROM click_logs c
		LEFT JOIN users u ON u.id = c.user_id
		ORDER BY c.clicked_at DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]types.ClickLog, 0, limit)
	for rows.Next() {
		var log types.ClickLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.ButtonName, &log.ClickedAt, &log.Username); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// ListSince returns all click logs with clicked_at at or after start.
func (r *ClickLogRepository) ListSince(ctx context.Context, start time.Time) ([]types.ClickLog, error) {
	const query = `
		SELECT id, user_id, button_name, clicked_at
		FROM click_logs
		WHERE clicked_at >= $1`
	rows, err := r.db.QueryContext(ctx, query, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]types.ClickLog, 0)
	for rows.Next() {
		var log types.ClickLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.ButtonName, &log.ClickedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
