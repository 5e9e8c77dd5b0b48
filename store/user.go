package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type UserInterface interface {
	Create(ctx context.Context, requestID uuid.UUID, payload User) (*User, error)
	GetByID(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, requestID uuid.UUID, username string) (*User, error)
	GetAll(ctx context.Context, requestID uuid.UUID) ([]User, error)
	GetAdmins(ctx context.Context, requestID uuid.UUID) ([]User, error)
	UpdateLastLogin(ctx context.Context, requestID uuid.UUID, userID uuid.UUID, now time.Time) error
	Delete(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) (int64, error)
}

// Compile-time check
var _ UserInterface = (*UserStore)(nil)

type UserStore struct {
	db     *gorm.DB
	logger *zerolog.Logger
}

func NewUserStore(logger *zerolog.Logger, db *gorm.DB) UserInterface {
	return &UserStore{
		db:     db,
		logger: logger,
	}
}

func (u *UserStore) Create(ctx context.Context, requestID uuid.UUID, payload User) (*User, error) {
	log := u.logger.With().
		Str(MethodStrHelper, "user.Create").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to create user")

	if err := u.db.WithContext(ctx).Create(&payload).Error; err != nil {
		log.Err(err).Msg("Failed to create user")
		return nil, err
	}

	return &payload, nil
}

func (u *UserStore) GetByID(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) (*User, error) {
	log := u.logger.With().
		Str(MethodStrHelper, "user.GetByID").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to get a user by id")

	var user User

	if err := u.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		log.Err(err).Msg("Failed to get user by id")
		return nil, err
	}

	return &user, nil
}

func (u *UserStore) GetByUsername(ctx context.Context, requestID uuid.UUID, username string) (*User, error) {
	log := u.logger.With().
		Str(MethodStrHelper, "user.GetByUsername").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to get a user by username")

	var user User

	if err := u.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		log.Err(err).Msg("Failed to get user by username")
		return nil, err
	}

	return &user, nil
}

func (u *UserStore) GetAll(ctx context.Context, requestID uuid.UUID) ([]User, error) {
	log := u.logger.With().
		Str(MethodStrHelper, "user.GetAll").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to list users")

	users := []User{}

	if err := u.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		log.Err(err).Msg("Failed to list users")
		return nil, err
	}

	return users, nil
}

func (u *UserStore) GetAdmins(ctx context.Context, requestID uuid.UUID) ([]User, error) {
	log := u.logger.With().
		Str(MethodStrHelper, "user.GetAdmins").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to list admin users")

	admins := []User{}

	if err := u.db.WithContext(ctx).
		Where("role = ?", RoleAdmin).
		Order("created_at ASC").
		Find(&admins).Error; err != nil {
		log.Err(err).Msg("Failed to list admin users")
		return nil, err
	}

	return admins, nil
}

func (u *UserStore) UpdateLastLogin(ctx context.Context, requestID uuid.UUID, userID uuid.UUID, now time.Time) error {
	log := u.logger.With().
		Str(MethodStrHelper, "user.UpdateLastLogin").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msg("Got a request to record last login")

	if err := u.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("last_login", now).Error; err != nil {
		log.Err(err).Msg("Failed to record last login")
		return err
	}

	return nil
}

func (u *UserStore) Delete(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) (int64, error) {
	log := u.logger.With().
		Str(MethodStrHelper, "user.Delete").
		Str(RequestID, requestID.String()).
		Logger()

	log.Info().Msgf("Got request to delete user with ID %v", userID)

	res := u.db.WithContext(ctx).Where("id = ?", userID).Delete(&User{})
	if res.Error != nil {
		log.Err(res.Error).Msg("Failed to delete user")
		return 0, res.Error
	}

	return res.RowsAffected, nil
}
