package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/nannyhub/babysitter-api/internal/domain/account"
	"github.com/nannyhub/babysitter-api/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

var _ domain.Repository = (*AccountGormRepository)(nil)

func (r *AccountGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AccountGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Accounts
// --------------------------------------------------

func (r *AccountGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *AccountGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("SitterProfile").
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, userErr(err)
	}
	return &u, nil
}

func (r *AccountGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("SitterProfile").
		First(&u, id).Error; err != nil {
		return nil, userErr(err)
	}
	return &u, nil
}

func userErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("load user: %w", err)
}

// --------------------------------------------------
// Sitter profiles
// --------------------------------------------------

func (r *AccountGormRepository) CreateSitterProfile(
	ctx context.Context,
	p *models.SitterProfile,
) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("insert sitter profile: %w", err)
	}
	return nil
}

func orderedSlots(db *gorm.DB) *gorm.DB {
	return db.Order("weekday ASC, start_time ASC")
}

func (r *AccountGormRepository) GetSitterProfile(
	ctx context.Context,
	id uint,
) (*models.SitterProfile, error) {

	var p models.SitterProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Availability", orderedSlots).
		First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSitterNotFound
		}
		return nil, fmt.Errorf("load sitter profile: %w", err)
	}
	return &p, nil
}

// likePattern escapes LIKE wildcards in s and wraps it for a substring match.
func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(s))
	return "%" + s + "%"
}

func (r *AccountGormRepository) ListSitters(
	ctx context.Context,
	f domain.SitterFilter,
) ([]models.SitterProfile, error) {

	q := r.db.WithContext(ctx).
		Model(&models.SitterProfile{}).
		Joins("JOIN users ON users.id = sitter_profiles.user_id").
		Preload("User").
		Preload("Availability", orderedSlots)

	if f.City != "" {
		q = q.Where(`LOWER(users.city) LIKE ? ESCAPE '\'`, likePattern(f.City))
	}

	if f.Weekday != 0 {
		q = q.Where(
			"EXISTS (SELECT 1 FROM availability_slots a WHERE a.sitter_profile_id = sitter_profiles.id AND a.weekday = ?)",
			f.Weekday,
		)
	}

	var list []models.SitterProfile
	if err := q.
		Order("sitter_profiles.average_rating IS NULL, sitter_profiles.average_rating DESC, sitter_profiles.id ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list sitters: %w", err)
	}
	return list, nil
}

func (r *AccountGormRepository) SaveSitterProfile(
	ctx context.Context,
	p *models.SitterProfile,
) error {

	if err := r.db.WithContext(ctx).
		Model(&models.User{ID: p.UserID}).
		Updates(map[string]any{
			"first_name": p.User.FirstName,
			"last_name":  p.User.LastName,
			"phone":      p.User.Phone,
			"city":       p.User.City,
		}).Error; err != nil {
		return fmt.Errorf("update sitter account: %w", err)
	}

	res := r.db.WithContext(ctx).
		Model(&models.SitterProfile{ID: p.ID}).
		Updates(map[string]any{
			"bio":              p.Bio,
			"years_experience": p.YearsExperience,
			"hourly_rate":      p.HourlyRate,
		})
	if res.Error != nil {
		return fmt.Errorf("update sitter profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrSitterNotFound
	}
	return nil
}

func (r *AccountGormRepository) ReplaceAvailability(
	ctx context.Context,
	sitterProfileID uint,
	slots []models.AvailabilitySlot,
) error {

	if err := r.db.WithContext(ctx).
		Where("sitter_profile_id = ?", sitterProfileID).
		Delete(&models.AvailabilitySlot{}).Error; err != nil {
		return fmt.Errorf("clear availability: %w", err)
	}

	if len(slots) == 0 {
		return nil
	}

	for i := range slots {
		slots[i].ID = 0
		slots[i].SitterProfileID = sitterProfileID
	}

	if err := r.db.WithContext(ctx).Create(&slots).Error; err != nil {
		return fmt.Errorf("insert availability: %w", err)
	}
	return nil
}

func (r *AccountGormRepository) SetPhotoURL(
	ctx context.Context,
	sitterProfileID uint,
	url string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.SitterProfile{ID: sitterProfileID}).
		Update("photo_url", url)
	if res.Error != nil {
		return fmt.Errorf("set photo url: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrSitterNotFound
	}
	return nil
}
