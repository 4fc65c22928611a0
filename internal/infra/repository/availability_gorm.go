package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Reads used by the resolver
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetWeeklyAvailability(
	ctx context.Context,
	barberID uint,
	day time.Weekday,
) (*models.WeeklyAvailability, error) {

	var wa models.WeeklyAvailability
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ?", barberID, int(day)).
		First(&wa).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wa, nil
}

func (r *AvailabilityGormRepository) ListActiveBookings(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "date", "start_time", "status").
		Where("barber_id = ? AND date = ? AND status <> ?", barberID, date, "cancelled").
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *AvailabilityGormRepository) ListBlockedTimes(
	ctx context.Context,
	barberID uint,
) ([]models.BlockedTime, error) {

	var blocks []models.BlockedTime
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("start_datetime ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// --------------------------------------------------
// Weekly schedule (barber settings)
// --------------------------------------------------

func (r *AvailabilityGormRepository) ListWeekly(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklyAvailability, error) {

	var rows []models.WeeklyAvailability
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceWeekly swaps the barber's whole weekly schedule in one transaction.
func (r *AvailabilityGormRepository) ReplaceWeekly(
	ctx context.Context,
	barberID uint,
	rows []models.WeeklyAvailability,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WeeklyAvailability{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].BarberID = barberID
		}
		return tx.Create(&rows).Error
	})
}

// --------------------------------------------------
// Blocked times
// --------------------------------------------------

func (r *AvailabilityGormRepository) CreateBlockedTime(
	ctx context.Context,
	b *models.BlockedTime,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *AvailabilityGormRepository) GetBlockedTime(
	ctx context.Context,
	id uint,
) (*models.BlockedTime, error) {

	var b models.BlockedTime
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("blocked_time_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *AvailabilityGormRepository) DeleteBlockedTime(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.BlockedTime{}, id).Error
}

// Compile-time check
var _ availability.Store = (*AvailabilityGormRepository)(nil)
