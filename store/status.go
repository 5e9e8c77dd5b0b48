package store

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type StatusInterface interface {
	Create(ctx context.Context, requestID uuid.UUID, payload StatusEntry) (*StatusEntry, error)
	GetLatest(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) (*StatusEntry, error)
	GetHistory(ctx context.Context, requestID uuid.UUID, userID uuid.UUID, limit int) ([]StatusEntry, error)
	DeleteAll(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) (int64, error)
	GetStats(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) (*StatusStats, error)
}

// Compile-time check
var _ StatusInterface = (*StatusStore)(nil)

type StatusStore struct {
	db     *gorm.DB
	logger *zerolog.Logger
}

func NewStatusStore(logger *zerolog.Logger, db *gorm.DB) StatusInterface {
	return &StatusStore{
		db:     db,
		logger: logger,
	}
}

// Create appends a new status row. Entries are never updated in place, so
// every write goes through here.
func (s *StatusStore) Create(ctx context.Context, requestID uuid.UUID, payload StatusEntry) (*StatusEntry, error) {
	log := s.logger.With().
		Str(MethodStrHelper, "status.Create").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to create status entry")

	if err := s.db.WithContext(ctx).Create(&payload).Error; err != nil {
		log.Err(err).Msg("Failed to create status entry")
		return nil, err
	}

	return &payload, nil
}

// GetLatest returns the newest entry for the user, or nil when the user has
// no history yet.
func (s *StatusStore) GetLatest(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) (*StatusEntry, error) {
	log := s.logger.With().
		Str(MethodStrHelper, "status.GetLatest").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to get latest status")

	var entry StatusEntry

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).Msg("Failed to get latest status")
		return nil, err
	}

	return &entry, nil
}

func (s *StatusStore) GetHistory(ctx context.Context, requestID uuid.UUID, userID uuid.UUID, limit int) ([]StatusEntry, error) {
	log := s.logger.With().
		Str(MethodStrHelper, "status.GetHistory").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to get status history")

	entries := []StatusEntry{}

	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		log.Err(err).Msg("Failed to get status history")
		return nil, err
	}

	return entries, nil
}

func (s *StatusStore) DeleteAll(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) (int64, error) {
	log := s.logger.With().
		Str(MethodStrHelper, "status.DeleteAll").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msgf("Got request to delete status entries for user %v", userID)

	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&StatusEntry{})
	if res.Error != nil {
		log.Err(res.Error).Msg("Failed to delete status entries")
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

// GetStats returns entry count, mean altitude rounded to 2 decimals and the
// newest entry timestamp. An empty history yields a zero-valued result.
func (s *StatusStore) GetStats(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) (*StatusStats, error) {
	log := s.logger.With().
		Str(MethodStrHelper, "status.GetStats").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to get status stats")

	var agg struct {
		TotalEntries    int64
		AverageAltitude float64
	}

	if err := s.db.WithContext(ctx).
		Model(&StatusEntry{}).
		Select("COUNT(*) AS total_entries, COALESCE(AVG(altitude), 0) AS average_altitude").
		Where("user_id = ?", userID).
		Scan(&agg).Error; err != nil {
		log.Err(err).Msg("Failed to aggregate status stats")
		return nil, err
	}

	stats := &StatusStats{
		TotalEntries:    agg.TotalEntries,
		AverageAltitude: math.Round(agg.AverageAltitude*100) / 100,
	}

	if agg.TotalEntries > 0 {
		latest, err := s.GetLatest(ctx, requestID, userID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			stats.LastActivityDate = &latest.CreatedAt
		}
	}

	return stats, nil
}
