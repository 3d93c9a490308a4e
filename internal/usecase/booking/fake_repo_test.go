package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/nannyhub/babysitter-api/internal/domain/booking"
	"github.com/nannyhub/babysitter-api/internal/models"
)

// fakeRepo keeps everything in maps. Transaction serialises callers and
// restores the booking table when fn fails.
type fakeRepo struct {
	mu       *sync.Mutex
	users    map[uint]models.User
	sitters  map[uint]models.SitterProfile
	bookings map[uint]models.Booking
	nextID   uint

	createErr error
	inTx      bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		mu:       &sync.Mutex{},
		users:    map[uint]models.User{},
		sitters:  map[uint]models.SitterProfile{},
		bookings: map[uint]models.Booking{},
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) addFamily(id uint) models.User {
	u := models.User{ID: id, FirstName: "Fam", LastName: "Ily", Phone: "100", Address: "Elm 1", Role: models.RoleFamily}
	r.users[id] = u
	return u
}

func (r *fakeRepo) addSitter(userID, profileID uint, rate string) models.SitterProfile {
	u := models.User{ID: userID, FirstName: "Sit", LastName: "Ter", Phone: "200", Role: models.RoleSitter}
	r.users[userID] = u
	p := models.SitterProfile{ID: profileID, UserID: userID, User: u, HourlyRate: decimal.RequireFromString(rate)}
	r.sitters[profileID] = p
	return p
}

func (r *fakeRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[uint]models.Booking, len(r.bookings))
	for k, v := range r.bookings {
		snapshot[k] = v
	}

	r.inTx = true
	err := fn(r)
	r.inTx = false

	if err != nil {
		r.bookings = snapshot
	}
	return err
}

func (r *fakeRepo) GetSitterProfile(_ context.Context, id uint) (*models.SitterProfile, error) {
	p, ok := r.sitters[id]
	if !ok {
		return nil, domain.ErrSitterNotFound
	}
	return &p, nil
}

func (r *fakeRepo) LockSitterProfile(ctx context.Context, id uint) (*models.SitterProfile, error) {
	return r.GetSitterProfile(ctx, id)
}

func (r *fakeRepo) HasOverlappingBooking(_ context.Context, sitterProfileID uint, start, end time.Time) (bool, error) {
	for _, b := range r.bookings {
		if b.SitterProfileID != sitterProfileID || !domain.Status(b.Status).Active() {
			continue
		}
		if b.StartTime.Before(end) && start.Before(b.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	b.ID = r.nextID
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeRepo) hydrate(b models.Booking) *models.Booking {
	b.Family = r.users[b.FamilyUserID]
	b.SitterProfile = r.sitters[b.SitterProfileID]
	return &b
}

func (r *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.hydrate(b), nil
}

func (r *fakeRepo) LockBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return r.GetBooking(ctx, id)
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *b
	stored.Family = models.User{}
	stored.SitterProfile = models.SitterProfile{}
	r.bookings[b.ID] = stored
	return nil
}

func (r *fakeRepo) list(keep func(b models.Booking) bool) []models.Booking {
	out := []models.Booking{}
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, *r.hydrate(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *fakeRepo) ListBookingsForFamily(_ context.Context, familyUserID uint) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return b.FamilyUserID == familyUserID }), nil
}

func (r *fakeRepo) ListBookingsForSitterUser(_ context.Context, sitterUserID uint) ([]models.Booking, error) {
	return r.list(func(b models.Booking) bool { return r.sitters[b.SitterProfileID].UserID == sitterUserID }), nil
}
