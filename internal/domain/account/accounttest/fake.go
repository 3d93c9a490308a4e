// Package accounttest provides an in-memory account.Repository for tests.
package accounttest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nannyhub/babysitter-api/internal/domain/account"
	"github.com/nannyhub/babysitter-api/internal/models"
)

type Repo struct {
	mu       sync.Mutex
	Users    map[uint]models.User
	Profiles map[uint]models.SitterProfile
	Slots    map[uint][]models.AvailabilitySlot
	nextID   uint

	// FailProfileInsert makes CreateSitterProfile fail, for rollback tests.
	FailProfileInsert error
}

var _ account.Repository = (*Repo)(nil)

func New() *Repo {
	return &Repo{
		Users:    map[uint]models.User{},
		Profiles: map[uint]models.SitterProfile{},
		Slots:    map[uint][]models.AvailabilitySlot{},
	}
}

func (r *Repo) id() uint {
	r.nextID++
	return r.nextID
}

// AddSitter stores a sitter account with its profile and returns both ids.
func (r *Repo) AddSitter(first, city, rate string) (userID, profileID uint) {
	u := models.User{ID: r.id(), FirstName: first, LastName: "Sitter", Email: strings.ToLower(first) + "@example.com", City: city, Role: models.RoleSitter}
	r.Users[u.ID] = u
	p := models.SitterProfile{ID: r.id(), UserID: u.ID, HourlyRate: decimal.RequireFromString(rate)}
	r.Profiles[p.ID] = p
	return u.ID, p.ID
}

func (r *Repo) Transaction(_ context.Context, fn func(tx account.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := clone(r.Users)
	profiles := clone(r.Profiles)
	slots := clone(r.Slots)

	if err := fn(r); err != nil {
		r.Users, r.Profiles, r.Slots = users, profiles, slots
		return err
	}
	return nil
}

func clone[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (r *Repo) CreateUser(_ context.Context, u *models.User) error {
	for _, existing := range r.Users {
		if existing.Email == u.Email {
			return fmt.Errorf("insert user: %w", gorm.ErrDuplicatedKey)
		}
	}
	u.ID = r.id()
	r.Users[u.ID] = *u
	return nil
}

func (r *Repo) withProfile(u models.User) *models.User {
	for _, p := range r.Profiles {
		if p.UserID == u.ID {
			p := p
			u.SitterProfile = &p
		}
	}
	return &u
}

func (r *Repo) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.Users {
		if u.Email == email {
			return r.withProfile(u), nil
		}
	}
	return nil, account.ErrUserNotFound
}

func (r *Repo) GetUser(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.Users[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	return r.withProfile(u), nil
}

func (r *Repo) CreateSitterProfile(_ context.Context, p *models.SitterProfile) error {
	if r.FailProfileInsert != nil {
		return r.FailProfileInsert
	}
	p.ID = r.id()
	r.Profiles[p.ID] = *p
	return nil
}

func (r *Repo) hydrate(p models.SitterProfile) models.SitterProfile {
	p.User = r.Users[p.UserID]
	p.Availability = append([]models.AvailabilitySlot(nil), r.Slots[p.ID]...)
	return p
}

func (r *Repo) GetSitterProfile(_ context.Context, id uint) (*models.SitterProfile, error) {
	p, ok := r.Profiles[id]
	if !ok {
		return nil, account.ErrSitterNotFound
	}
	h := r.hydrate(p)
	return &h, nil
}

func (r *Repo) ListSitters(_ context.Context, f account.SitterFilter) ([]models.SitterProfile, error) {
	out := []models.SitterProfile{}
	for _, p := range r.Profiles {
		h := r.hydrate(p)
		if f.City != "" && !strings.Contains(strings.ToLower(h.User.City), strings.ToLower(f.City)) {
			continue
		}
		if f.Weekday != 0 && !hasWeekday(h.Availability, f.Weekday) {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func hasWeekday(slots []models.AvailabilitySlot, weekday int) bool {
	for _, s := range slots {
		if s.Weekday == weekday {
			return true
		}
	}
	return false
}

func (r *Repo) SaveSitterProfile(_ context.Context, p *models.SitterProfile) error {
	stored, ok := r.Profiles[p.ID]
	if !ok {
		return account.ErrSitterNotFound
	}

	u := r.Users[p.UserID]
	u.FirstName, u.LastName, u.Phone, u.City = p.User.FirstName, p.User.LastName, p.User.Phone, p.User.City
	r.Users[u.ID] = u

	stored.Bio, stored.YearsExperience, stored.HourlyRate = p.Bio, p.YearsExperience, p.HourlyRate
	r.Profiles[p.ID] = stored
	return nil
}

func (r *Repo) ReplaceAvailability(_ context.Context, sitterProfileID uint, slots []models.AvailabilitySlot) error {
	for i := range slots {
		slots[i].SitterProfileID = sitterProfileID
	}
	r.Slots[sitterProfileID] = slots
	return nil
}

func (r *Repo) SetPhotoURL(_ context.Context, sitterProfileID uint, url string) error {
	p, ok := r.Profiles[sitterProfileID]
	if !ok {
		return account.ErrSitterNotFound
	}
	p.PhotoURL = url
	r.Profiles[sitterProfileID] = p
	return nil
}
