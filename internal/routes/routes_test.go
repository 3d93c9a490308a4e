package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nannyhub/babysitter-api/internal/config"
	"github.com/nannyhub/babysitter-api/internal/db"
)

type testServer struct {
	t   *testing.T
	r   *gin.Engine
	now time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), db.GormConfig())
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	s := &testServer{t: t, now: time.Now().UTC().Truncate(time.Second)}

	cfg := &config.Config{
		Env:            "test",
		JWTSecret:      "routes-test-secret-0123456789",
		JWTTTL:         24 * time.Hour,
		AuthRatePerMin: 1000,
		PhotoMaxBytes:  1 << 20,
	}

	s.r = gin.New()
	RegisterRoutes(s.r, Deps{
		DB:     gdb,
		Config: cfg,
		Log:    zap.NewNop(),
		Now:    func() time.Time { return s.now },
	})
	return s
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

type authBody struct {
	Token string `json:"token"`
	User  struct {
		ID              uint  `json:"id"`
		SitterProfileID *uint `json:"sitter_profile_id"`
	} `json:"user"`
}

func (s *testServer) register(body map[string]any) authBody {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var out authBody
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func family(email string) map[string]any {
	return map[string]any{
		"first_name": "Fam", "last_name": "Ily", "email": email, "password": "secret123",
		"phone": "555", "address": "Rua 1", "city": "Lisboa", "role": "Family",
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, w.Body.String())
}

func TestBookingAndReviewFlow(t *testing.T) {
	s := newTestServer(t)

	f1 := s.register(family("f1@example.com"))
	f2 := s.register(family("f2@example.com"))
	sitter := s.register(map[string]any{
		"first_name": "Sara", "last_name": "Sitter", "email": "sara@example.com", "password": "secret123",
		"city": "Lisboa", "role": "Sitter", "hourly_rate": "25.00", "years_experience": 3,
	})
	require.NotNil(t, sitter.User.SitterProfileID)
	profileID := *sitter.User.SitterProfileID

	// public discovery
	w := s.do(http.MethodGet, "/api/nannies?city=lis", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"first_name":"Sara"`)

	// family books two hours
	start := s.now.Add(time.Hour)
	w = s.do(http.MethodPost, "/api/bookings", f1.Token, map[string]any{
		"sitter_id": profileID,
		"start":     start.Format(time.RFC3339),
		"end":       start.Add(2 * time.Hour).Format(time.RFC3339),
		"note":      "  bedtime at 8  ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booking struct {
		ID         uint            `json:"id"`
		Status     string          `json:"status"`
		TotalCost  decimal.Decimal `json:"total_cost"`
		SitterName *string         `json:"sitter_name"`
		FamilyName *string         `json:"family_name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, "Requested", booking.Status)
	assert.True(t, decimal.RequireFromString("50").Equal(booking.TotalCost))
	require.NotNil(t, booking.SitterName)
	assert.Nil(t, booking.FamilyName)

	// another family cannot see F1's bookings
	w = s.do(http.MethodGet, fmt.Sprintf("/api/bookings/user/%d", f1.User.ID), f2.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// a family cannot confirm
	w = s.do(http.MethodPatch, fmt.Sprintf("/api/bookings/%d/confirm", booking.ID), f1.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodPatch, fmt.Sprintf("/api/bookings/%d/confirm", booking.ID), sitter.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// too early to complete
	w = s.do(http.MethodPatch, fmt.Sprintf("/api/bookings/%d/complete", booking.ID), sitter.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "service_not_finished")

	canReview := func() string {
		w := s.do(http.MethodGet, fmt.Sprintf("/api/reviews/reservation/%d/can-review", booking.ID), f1.Token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Body.String()
	}
	assert.Equal(t, "false", canReview())

	s.now = s.now.Add(4 * time.Hour)
	w = s.do(http.MethodPatch, fmt.Sprintf("/api/bookings/%d/complete", booking.ID), sitter.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"family_name":"Fam Ily"`)
	assert.Contains(t, w.Body.String(), `"sitter_name":null`)

	assert.Equal(t, "true", canReview())

	w = s.do(http.MethodPost, "/api/reviews", f1.Token, map[string]any{
		"booking_id": booking.ID, "rating": 5, "comment": "Great!",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var receipt struct {
		Rating              int                 `json:"rating"`
		SitterAverageRating decimal.NullDecimal `json:"sitter_average_rating"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Equal(t, 5, receipt.Rating)
	require.True(t, receipt.SitterAverageRating.Valid)
	assert.True(t, decimal.NewFromInt(5).Equal(receipt.SitterAverageRating.Decimal))

	assert.Equal(t, "false", canReview())

	w = s.do(http.MethodPost, "/api/reviews", f1.Token, map[string]any{
		"booking_id": booking.ID, "rating": 3,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "review_exists")

	// public review list and refreshed average
	w = s.do(http.MethodGet, fmt.Sprintf("/api/reviews/nanny/%d", profileID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"author_name":"Fam Ily"`)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/nannies/%d", profileID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"average_rating":"5"`)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/reviews/user/%d", f1.User.ID), f1.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sitter_name":"Sara Sitter"`)
}

func TestReviewValidation(t *testing.T) {
	s := newTestServer(t)
	f1 := s.register(family("f1@example.com"))

	w := s.do(http.MethodPost, "/api/reviews", f1.Token, map[string]any{"booking_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")

	w = s.do(http.MethodPost, "/api/reviews", f1.Token, map[string]any{"booking_id": 999, "rating": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "booking_not_completed")
}

func TestAuthEndpoints(t *testing.T) {
	s := newTestServer(t)
	f1 := s.register(family("f1@example.com"))

	w := s.do(http.MethodPost, "/api/auth/register", "", family("F1@example.com"))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "f1@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": " F1@Example.com ", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/me", f1.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"f1@example.com"`)
	assert.Contains(t, w.Body.String(), `"sitter_profile_id":null`)

	w = s.do(http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/logout", f1.Token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/me/audit-logs", f1.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"limit":50`)
}

func TestPhotoUploadDisabled(t *testing.T) {
	s := newTestServer(t)
	sitter := s.register(map[string]any{
		"first_name": "Sara", "last_name": "Sitter", "email": "sara@example.com", "password": "secret123",
		"role": "Sitter", "hourly_rate": 20,
	})

	var body bytes.Buffer
	body.WriteString("--x\r\nContent-Disposition: form-data; name=\"photo\"; filename=\"a.png\"\r\nContent-Type: image/png\r\n\r\nnot-an-image\r\n--x--\r\n")
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/nannies/%d/photo", *sitter.User.SitterProfileID), &body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	req.Header.Set("Authorization", "Bearer "+sitter.Token)

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "photo_storage_disabled")
}
