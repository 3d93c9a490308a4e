package review

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/nannyhub/babysitter-api/internal/domain/review"
	"github.com/nannyhub/babysitter-api/internal/models"
)

// fakeRepo serialises transactions with a mutex, standing in for the
// sitter row lock, and rolls back reviews and averages when fn fails.
type fakeRepo struct {
	mu       sync.Mutex
	users    map[uint]models.User
	sitters  map[uint]models.SitterProfile
	bookings map[uint]models.Booking
	reviews  map[uint]models.Review
	nextID   uint

	updateAvgErr error
	// skipExistsCheck simulates a racing writer slipping past the
	// existence check so the unique index has to catch it.
	skipExistsCheck bool
	lockCalls       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[uint]models.User{},
		sitters:  map[uint]models.SitterProfile{},
		bookings: map[uint]models.Booking{},
		reviews:  map[uint]models.Review{},
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

var errDuplicate = fmt.Errorf("insert review: %w", gorm.ErrDuplicatedKey)

func (r *fakeRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews := make(map[uint]models.Review, len(r.reviews))
	for k, v := range r.reviews {
		reviews[k] = v
	}
	sitters := make(map[uint]models.SitterProfile, len(r.sitters))
	for k, v := range r.sitters {
		sitters[k] = v
	}

	if err := fn(r); err != nil {
		r.reviews = reviews
		r.sitters = sitters
		return err
	}
	return nil
}

func (r *fakeRepo) GetBookingForFamily(_ context.Context, bookingID, familyUserID uint) (*models.Booking, error) {
	b, ok := r.bookings[bookingID]
	if !ok || b.FamilyUserID != familyUserID {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (r *fakeRepo) ReviewExistsForBooking(_ context.Context, bookingID uint) (bool, error) {
	if r.skipExistsCheck {
		return false, nil
	}
	for _, rv := range r.reviews {
		if rv.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) LockSitterProfile(_ context.Context, sitterProfileID uint) error {
	r.lockCalls++
	if _, ok := r.sitters[sitterProfileID]; !ok {
		return errors.New("sitter missing")
	}
	return nil
}

func (r *fakeRepo) CreateReview(_ context.Context, rv *models.Review) error {
	for _, existing := range r.reviews {
		if existing.BookingID == rv.BookingID {
			return errDuplicate
		}
	}
	r.nextID++
	rv.ID = r.nextID
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *fakeRepo) RatingTotals(_ context.Context, sitterProfileID uint) (int64, int64, error) {
	var sum, count int64
	for _, rv := range r.reviews {
		if rv.SitterProfileID == sitterProfileID {
			sum += int64(rv.Rating)
			count++
		}
	}
	return sum, count, nil
}

func (r *fakeRepo) UpdateAverageRating(_ context.Context, sitterProfileID uint, avg decimal.NullDecimal) error {
	if r.updateAvgErr != nil {
		return r.updateAvgErr
	}
	p := r.sitters[sitterProfileID]
	p.AverageRating = avg
	r.sitters[sitterProfileID] = p
	return nil
}

func (r *fakeRepo) sorted(keep func(models.Review) bool) []models.Review {
	out := []models.Review{}
	for _, rv := range r.reviews {
		if !keep(rv) {
			continue
		}
		rv.Author = r.users[rv.AuthorUserID]
		rv.SitterProfile = r.sitters[rv.SitterProfileID]
		out = append(out, rv)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *fakeRepo) ListReviewsForSitter(_ context.Context, sitterProfileID uint) ([]models.Review, error) {
	return r.sorted(func(rv models.Review) bool { return rv.SitterProfileID == sitterProfileID }), nil
}

func (r *fakeRepo) ListReviewsByAuthor(_ context.Context, authorUserID uint) ([]models.Review, error) {
	return r.sorted(func(rv models.Review) bool { return rv.AuthorUserID == authorUserID }), nil
}
