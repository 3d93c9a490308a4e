package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/nannyhub/babysitter-api/internal/domain/booking"
	"github.com/nannyhub/babysitter-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

var _ domain.Repository = (*BookingGormRepository)(nil)

var activeStatuses = []string{
	string(domain.StatusRequested),
	string(domain.StatusConfirmed),
}

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Sitter
// --------------------------------------------------

func (r *BookingGormRepository) GetSitterProfile(
	ctx context.Context,
	id uint,
) (*models.SitterProfile, error) {

	var p models.SitterProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&p, id).Error; err != nil {
		return nil, sitterErr(err)
	}
	return &p, nil
}

func (r *BookingGormRepository) LockSitterProfile(
	ctx context.Context,
	id uint,
) (*models.SitterProfile, error) {

	var p models.SitterProfile
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id).Error; err != nil {
		return nil, sitterErr(err)
	}
	return &p, nil
}

func sitterErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrSitterNotFound
	}
	return fmt.Errorf("load sitter profile: %w", err)
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) HasOverlappingBooking(
	ctx context.Context,
	sitterProfileID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"sitter_profile_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			sitterProfileID,
			activeStatuses,
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check overlap: %w", err)
	}

	return count > 0, nil
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Family").
		Preload("SitterProfile.User").
		Preload("Review").
		First(&b, id).Error; err != nil {
		return nil, bookingErr(err)
	}
	return &b, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) LockBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error; err != nil {
		return nil, bookingErr(err)
	}

	if err := r.db.WithContext(ctx).First(&b.SitterProfile, b.SitterProfileID).Error; err != nil {
		return nil, fmt.Errorf("load booking sitter: %w", err)
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{ID: b.ID}).
		Updates(map[string]any{
			"status":       b.Status,
			"confirmed_at": b.ConfirmedAt,
			"completed_at": b.CompletedAt,
			"cancelled_at": b.CancelledAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func bookingErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("load booking: %w", err)
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForFamily(
	ctx context.Context,
	familyUserID uint,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("SitterProfile.User").
		Preload("Review").
		Where("family_user_id = ?", familyUserID).
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list family bookings: %w", err)
	}
	return list, nil
}

func (r *BookingGormRepository) ListBookingsForSitterUser(
	ctx context.Context,
	sitterUserID uint,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Joins("JOIN sitter_profiles ON sitter_profiles.id = bookings.sitter_profile_id").
		Where("sitter_profiles.user_id = ?", sitterUserID).
		Preload("Family").
		Preload("SitterProfile").
		Preload("Review").
		Order("bookings.created_at DESC, bookings.id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list sitter bookings: %w", err)
	}
	return list, nil
}
