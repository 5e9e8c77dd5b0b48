package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type LogsInterface interface {
	GetPaginatedLogs(ctx context.Context, requestID uuid.UUID, page, pageSize int, levelFilter string) (PaginatedResult[[]LogEntry], error)
	DeleteBefore(ctx context.Context, requestID uuid.UUID, cutoff time.Time) (int64, error)
}

var _ LogsInterface = (*LogStore)(nil)

type LogStore struct {
	db     *gorm.DB
	logger *zerolog.Logger
}

func NewLogStore(logger *zerolog.Logger, db *gorm.DB) LogsInterface {
	return &LogStore{
		db:     db,
		logger: logger,
	}
}

func (l *LogStore) GetPaginatedLogs(ctx context.Context, requestID uuid.UUID, page, pageSize int, levelFilter string) (PaginatedResult[[]LogEntry], error) {
	log := l.logger.With().
		Str(MethodStrHelper, "logs.GetPaginatedLogs").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to get paginated logs")

	offset := (page - 1) * pageSize
	result := PaginatedResult[[]LogEntry]{
		Result:   []LogEntry{},
		Page:     page,
		PageSize: pageSize,
	}

	countQuery := l.db.WithContext(ctx).Model(&LogEntry{})
	if levelFilter != "" {
		countQuery = countQuery.Where("level = ?", levelFilter)
	}

	if err := countQuery.Count(&result.TotalCount).Error; err != nil {
		return result, err
	}

	query := l.db.WithContext(ctx).
		Model(&LogEntry{}).
		Order("timestamp DESC").
		Limit(pageSize).
		Offset(offset)
	if levelFilter != "" {
		query = query.Where("level = ?", levelFilter)
	}

	if err := query.Find(&result.Result).Error; err != nil {
		log.Err(err).Msg("Failed to get paginated logs")
		return result, err
	}

	return result, nil
}

// DeleteBefore drops log rows older than the cutoff. Used by the retention
// sweeper so the SQLite sink does not grow without bound.
func (l *LogStore) DeleteBefore(ctx context.Context, requestID uuid.UUID, cutoff time.Time) (int64, error) {
	log := l.logger.With().
		Str(MethodStrHelper, "logs.DeleteBefore").
		Str(RequestID, requestID.String()).
		Logger()

	res := l.db.WithContext(ctx).Where("timestamp < ?", cutoff.Unix()).Delete(&LogEntry{})
	if res.Error != nil {
		log.Err(res.Error).Msg("Failed to prune log entries")
		return 0, res.Error
	}

	return res.RowsAffected, nil
}
