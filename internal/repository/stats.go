package repository

import (
	"context"

	"github.com/wordsnap/wordsnap/internal/entity"
)

// StatisticsRepository persists the per-user statistics rollup.
type StatisticsRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserStatistics, error)
	Upsert(ctx context.Context, stats *entity.UserStatistics) (*entity.UserStatistics, error)
	// ActiveUserIDs lists users with any activity, for scheduled refreshes.
	ActiveUserIDs(ctx context.Context) ([]string, error)
}
