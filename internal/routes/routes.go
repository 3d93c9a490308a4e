package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nannyhub/babysitter-api/internal/audit"
	"github.com/nannyhub/babysitter-api/internal/auth"
	"github.com/nannyhub/babysitter-api/internal/clock"
	"github.com/nannyhub/babysitter-api/internal/config"
	"github.com/nannyhub/babysitter-api/internal/handlers"
	infraRepo "github.com/nannyhub/babysitter-api/internal/infra/repository"
	"github.com/nannyhub/babysitter-api/internal/media"
	"github.com/nannyhub/babysitter-api/internal/middleware"
	"github.com/nannyhub/babysitter-api/internal/models"
	ucAccount "github.com/nannyhub/babysitter-api/internal/usecase/account"
	ucBooking "github.com/nannyhub/babysitter-api/internal/usecase/booking"
	ucReview "github.com/nannyhub/babysitter-api/internal/usecase/review"
	ucSitter "github.com/nannyhub/babysitter-api/internal/usecase/sitter"
	"github.com/nannyhub/babysitter-api/internal/validators"
)

// Deps are the process-wide singletons the router is built from.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Log         *zap.Logger
	Audit       *audit.Dispatcher
	Revocations auth.RevocationStore
	// nil disables photo uploads
	Photos ucSitter.PhotoStore
	Now    clock.Func
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	if d.Now == nil {
		d.Now = clock.Now
	}
	if d.Revocations == nil {
		d.Revocations = auth.NoopRevocationStore{}
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.Recovery(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
	)

	// ======================================================
	// INFRA
	// ======================================================
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	auditLogRepo := infraRepo.NewAuditLogGormRepository(d.DB)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL, d.Now)

	var checkDomain func(string) bool
	if cfg.CheckEmailDomain {
		checkDomain = validators.NewDomainChecker(0).Valid
	}

	// ======================================================
	// USE CASES
	// ======================================================
	registerUC := ucAccount.NewRegister(accountRepo, issuer, d.Audit, d.Now, checkDomain)
	loginUC := ucAccount.NewLogin(accountRepo, issuer)
	logoutUC := ucAccount.NewLogout(d.Revocations, d.Audit)
	getMeUC := ucAccount.NewGetMe(accountRepo)

	listSittersUC := ucSitter.NewListSitters(accountRepo)
	getSitterUC := ucSitter.NewGetSitter(accountRepo)
	setAvailabilityUC := ucSitter.NewSetAvailability(accountRepo, d.Audit)
	updateProfileUC := ucSitter.NewUpdateProfile(accountRepo, d.Audit)
	uploadPhotoUC := ucSitter.NewUploadPhoto(accountRepo, d.Photos, media.NewPhotoProcessor(media.DefaultMaxSide), d.Audit)

	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, d.Audit, d.Now, cfg.BookingRejectOverlap)
	listBookingsUC := ucBooking.NewListBookingsForUser(bookingRepo)
	confirmBookingUC := ucBooking.NewConfirmBooking(bookingRepo, d.Audit, d.Now)
	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, d.Audit, d.Now)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, d.Audit, d.Now)

	createReviewUC := ucReview.NewCreateReview(reviewRepo, d.Audit, d.Now)
	canReviewUC := ucReview.NewCanReview(reviewRepo)
	sitterReviewsUC := ucReview.NewListReviewsForSitter(reviewRepo)
	authoredReviewsUC := ucReview.NewListReviewsForUser(reviewRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB, d.Log)
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, logoutUC, d.Log)
	meHandler := handlers.NewMeHandler(getMeUC, auditLogRepo, d.Log)
	sitterHandler := handlers.NewSitterHandler(
		listSittersUC,
		getSitterUC,
		setAvailabilityUC,
		updateProfileUC,
		uploadPhotoUC,
		cfg.PhotoMaxBytes,
		d.Log,
	)
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		listBookingsUC,
		confirmBookingUC,
		completeBookingUC,
		cancelBookingUC,
		d.Log,
	)
	reviewHandler := handlers.NewReviewHandler(
		createReviewUC,
		canReviewUC,
		sitterReviewsUC,
		authoredReviewsUC,
		d.Log,
	)

	authRequired := middleware.AuthMiddleware(issuer, d.Revocations, d.Log)
	authLimiter := middleware.NewIPRateLimiter(cfg.AuthRatePerMin)

	r.GET("/health", healthHandler.Health)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		authAPI := api.Group("/auth")
		authAPI.Use(authLimiter.Middleware(d.Log))
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
		}

		api.GET("/nannies", sitterHandler.List)
		api.GET("/nannies/:id", sitterHandler.Get)
		api.GET("/reviews/nanny/:id", reviewHandler.ListForSitter)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(authRequired)
		{
			secured.POST("/auth/logout", authHandler.Logout)

			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/audit-logs", meHandler.AuditLogs)

			sitterOnly := middleware.RequireRole(models.RoleSitter)
			secured.PUT("/nannies/:id/availability", sitterOnly, sitterHandler.SetAvailability)
			secured.PUT("/nannies/:id/profile", sitterOnly, sitterHandler.UpdateProfile)
			secured.PUT("/nannies/:id/photo", sitterOnly, sitterHandler.UploadPhoto)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/user/:id", bookingHandler.ListForUser)
			secured.PATCH("/bookings/:id/confirm", sitterOnly, bookingHandler.Confirm())
			secured.PATCH("/bookings/:id/complete", sitterOnly, bookingHandler.Complete())
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel())

			secured.POST("/reviews", reviewHandler.Create)
			secured.GET("/reviews/reservation/:id/can-review", reviewHandler.CanReview)
			secured.GET("/reviews/user/:id", reviewHandler.ListForUser)
		}
	}
}
