package sitter

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nannyhub/babysitter-api/internal/auth"
	domain "github.com/nannyhub/babysitter-api/internal/domain/account"
	"github.com/nannyhub/babysitter-api/internal/domain/account/accounttest"
	"github.com/nannyhub/babysitter-api/internal/httperr"
	"github.com/nannyhub/babysitter-api/internal/models"
)

func sitterCaller(userID uint) auth.Identity {
	return auth.Identity{UserID: userID, Role: models.RoleSitter}
}

func TestListAndGetSitters(t *testing.T) {
	repo := accounttest.New()
	_, lisboa := repo.AddSitter("Sara", "Lisboa", "20")
	repo.AddSitter("Paula", "Porto", "25")
	require.NoError(t, repo.ReplaceAvailability(context.Background(), lisboa, []models.AvailabilitySlot{{Weekday: 6, StartTime: "10:00", EndTime: "14:00"}}))

	all, err := NewListSitters(repo).Execute(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	lis, err := NewListSitters(repo).Execute(context.Background(), " lis ", 0)
	require.NoError(t, err)
	require.Len(t, lis, 1)
	assert.Equal(t, "Sara", lis[0].FirstName)
	require.Len(t, lis[0].Availability, 1)

	sat, err := NewListSitters(repo).Execute(context.Background(), "", 6)
	require.NoError(t, err)
	assert.Len(t, sat, 1)

	_, err = NewListSitters(repo).Execute(context.Background(), "", 9)
	assert.True(t, httperr.IsBusiness(err, "invalid_weekday"))

	got, err := NewGetSitter(repo).Execute(context.Background(), lisboa)
	require.NoError(t, err)
	assert.Equal(t, "Lisboa", got.City)

	_, err = NewGetSitter(repo).Execute(context.Background(), 404)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestSetAvailability(t *testing.T) {
	repo := accounttest.New()
	owner, profile := repo.AddSitter("Sara", "Lisboa", "20")
	other, _ := repo.AddSitter("Paula", "Porto", "25")

	uc := NewSetAvailability(repo, nil)

	view, err := uc.Execute(context.Background(), sitterCaller(owner), profile, []domain.Slot{
		{Weekday: 1, StartTime: "08:00", EndTime: "12:00"},
		{Weekday: 3, StartTime: "18:00", EndTime: "22:00"},
	})
	require.NoError(t, err)
	assert.Len(t, view.Availability, 2)

	_, err = uc.Execute(context.Background(), sitterCaller(other), profile, nil)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
	assert.Len(t, repo.Slots[profile], 2)

	_, err = uc.Execute(context.Background(), sitterCaller(owner), profile, []domain.Slot{{Weekday: 1, StartTime: "12:00", EndTime: "08:00"}})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	assert.Len(t, repo.Slots[profile], 2)

	_, err = uc.Execute(context.Background(), sitterCaller(owner), 404, nil)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestUpdateProfile(t *testing.T) {
	repo := accounttest.New()
	owner, profile := repo.AddSitter("Sara", "Lisboa", "20")

	bio := "  first aid certified "
	rate := decimal.RequireFromString("27.50")
	years := 6
	city := "Sintra"

	view, err := NewUpdateProfile(repo, nil).Execute(context.Background(), sitterCaller(owner), profile, UpdateProfileInput{
		Bio: &bio, HourlyRate: &rate, YearsExperience: &years, City: &city,
	})
	require.NoError(t, err)
	assert.Equal(t, "first aid certified", view.Bio)
	assert.Equal(t, "27.50", view.HourlyRate.StringFixed(2))
	assert.Equal(t, 6, view.YearsExperience)
	assert.Equal(t, "Sintra", view.City)
	assert.Equal(t, "Sara", view.FirstName)

	zero := decimal.Zero
	_, err = NewUpdateProfile(repo, nil).Execute(context.Background(), sitterCaller(owner), profile, UpdateProfileInput{HourlyRate: &zero})
	assert.True(t, httperr.IsBusiness(err, "invalid_hourly_rate"))

	blank := " "
	_, err = NewUpdateProfile(repo, nil).Execute(context.Background(), sitterCaller(owner), profile, UpdateProfileInput{FirstName: &blank})
	assert.True(t, httperr.IsBusiness(err, "invalid_name"))

	_, err = NewUpdateProfile(repo, nil).Execute(context.Background(), sitterCaller(owner+100), profile, UpdateProfileInput{Bio: &bio})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	assert.Equal(t, "27.50", repo.Profiles[profile].HourlyRate.StringFixed(2))
}

type fakeStore struct {
	key         string
	body        []byte
	contentType string
	err         error
}

func (s *fakeStore) PutPhoto(_ context.Context, key string, body []byte, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.key, s.body, s.contentType = key, body, contentType
	return "https://cdn.example.com/" + key, nil
}

type fakeProcessor struct{ err error }

func (p fakeProcessor) Normalize(r io.Reader) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	b, _ := io.ReadAll(r)
	return append([]byte("webp:"), b...), nil
}

func TestUploadPhoto(t *testing.T) {
	repo := accounttest.New()
	owner, profile := repo.AddSitter("Sara", "Lisboa", "20")
	store := &fakeStore{}

	view, err := NewUploadPhoto(repo, store, fakeProcessor{}, nil).Execute(context.Background(), sitterCaller(owner), profile, strings.NewReader("raw"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(store.key, "sitters/"))
	assert.True(t, strings.HasSuffix(store.key, ".webp"))
	assert.Equal(t, "image/webp", store.contentType)
	assert.Equal(t, []byte("webp:raw"), store.body)
	assert.Equal(t, "https://cdn.example.com/"+store.key, view.PhotoURL)
}

func TestUploadPhoto_Failures(t *testing.T) {
	repo := accounttest.New()
	owner, profile := repo.AddSitter("Sara", "Lisboa", "20")

	_, err := NewUploadPhoto(repo, nil, fakeProcessor{}, nil).Execute(context.Background(), sitterCaller(owner), profile, strings.NewReader("x"))
	assert.True(t, httperr.IsKind(err, httperr.KindUnavailable))

	bad := httperr.Validation("unsupported_image", "nope")
	_, err = NewUploadPhoto(repo, &fakeStore{}, fakeProcessor{err: bad}, nil).Execute(context.Background(), sitterCaller(owner), profile, strings.NewReader("x"))
	assert.True(t, httperr.IsBusiness(err, "unsupported_image"))

	_, err = NewUploadPhoto(repo, &fakeStore{err: errors.New("s3 down")}, fakeProcessor{}, nil).Execute(context.Background(), sitterCaller(owner), profile, strings.NewReader("x"))
	require.Error(t, err)
	assert.Empty(t, repo.Profiles[profile].PhotoURL)

	_, err = NewUploadPhoto(repo, &fakeStore{}, fakeProcessor{}, nil).Execute(context.Background(), sitterCaller(owner+50), profile, strings.NewReader("x"))
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}
