package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/nannyhub/babysitter-api/internal/domain/review"
	"github.com/nannyhub/babysitter-api/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

var _ domain.Repository = (*ReviewGormRepository)(nil)

func (r *ReviewGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReviewGormRepository{db: tx})
	})
}

func (r *ReviewGormRepository) GetBookingForFamily(
	ctx context.Context,
	bookingID uint,
	familyUserID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND family_user_id = ?", bookingID, familyUserID).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return &b, nil
}

func (r *ReviewGormRepository) ReviewExistsForBooking(
	ctx context.Context,
	bookingID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return count > 0, nil
}

func (r *ReviewGormRepository) LockSitterProfile(
	ctx context.Context,
	sitterProfileID uint,
) error {

	var p models.SitterProfile
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&p, sitterProfileID).Error; err != nil {
		return fmt.Errorf("lock sitter profile %d: %w", sitterProfileID, err)
	}
	return nil
}

func (r *ReviewGormRepository) CreateReview(
	ctx context.Context,
	rv *models.Review,
) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rv).Error; err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewGormRepository) RatingTotals(
	ctx context.Context,
	sitterProfileID uint,
) (int64, int64, error) {

	var row struct {
		Total int64
		N     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS n").
		Where("sitter_profile_id = ?", sitterProfileID).
		Scan(&row).Error; err != nil {
		return 0, 0, fmt.Errorf("sum ratings: %w", err)
	}
	return row.Total, row.N, nil
}

func (r *ReviewGormRepository) UpdateAverageRating(
	ctx context.Context,
	sitterProfileID uint,
	avg decimal.NullDecimal,
) error {
	if err := r.db.WithContext(ctx).
		Model(&models.SitterProfile{}).
		Where("id = ?", sitterProfileID).
		Update("average_rating", avg).Error; err != nil {
		return fmt.Errorf("update average rating: %w", err)
	}
	return nil
}

func (r *ReviewGormRepository) ListReviewsForSitter(
	ctx context.Context,
	sitterProfileID uint,
) ([]models.Review, error) {

	var list []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("sitter_profile_id = ?", sitterProfileID).
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list sitter reviews: %w", err)
	}
	return list, nil
}

func (r *ReviewGormRepository) ListReviewsByAuthor(
	ctx context.Context,
	authorUserID uint,
) ([]models.Review, error) {

	var list []models.Review
	if err := r.db.WithContext(ctx).
		Preload("SitterProfile.User").
		Where("author_user_id = ?", authorUserID).
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list authored reviews: %w", err)
	}
	return list, nil
}
