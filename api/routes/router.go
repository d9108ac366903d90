package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jobhive/jobhive-backend/api/controllers"
	"github.com/jobhive/jobhive-backend/api/middleware"
	"github.com/jobhive/jobhive-backend/api/responses"
	"github.com/jobhive/jobhive-backend/internal/auth"
	"github.com/jobhive/jobhive-backend/internal/companies"
	"github.com/jobhive/jobhive-backend/internal/jobs"
	"github.com/jobhive/jobhive-backend/internal/users"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	"github.com/jobhive/jobhive-backend/pkg/logger"
	"github.com/jobhive/jobhive-backend/pkg/metrics"
	"github.com/jobhive/jobhive-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface: public auth and job listings, plus
// authenticated user, company, and job management.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	userService users.Service,
	companyService companies.Service,
	jobService jobs.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)
	forgetPolicy := middleware.NewAuthRateLimitPolicy(
		"forget",
		cfg.AuthRateLimit.ForgetWindow,
		cfg.AuthRateLimit.ForgetIPLimit,
		cfg.AuthRateLimit.ForgetEmailLimit,
	)

	authenticated := middleware.Authenticated(cfg.JWT.BearerMarker, authService, logg)
	anyRole := middleware.RequireRoles(logg, string(enums.UserRoleUser), string(enums.UserRoleCompanyHR))
	hrOnly := middleware.RequireRoles(logg, string(enums.UserRoleCompanyHR))
	applicantOnly := middleware.RequireRoles(logg, string(enums.UserRoleUser))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})
	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, redisClient, logg)).
			Post("/signup", controllers.AuthSignup(authService, logg))
		r.Get("/account-activation/{token}", controllers.AuthActivateAccount(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(forgetPolicy, redisClient, logg)).
			Post("/forget-password", controllers.AuthForgetPassword(authService, logg))
		r.Post("/reset-code", controllers.AuthResetCode(authService, logg))
		r.Post("/change-password", controllers.AuthChangePassword(authService, logg))
	})

	r.Route("/user", func(r chi.Router) {
		// public lookups
		r.Post("/with-same-recovery-email", controllers.UserAccountsWithRecoveryEmail(userService, logg))
		r.Get("/{userId}", controllers.UserGetByID(userService, logg))

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Patch("/profile-picture", controllers.UserProfilePicture(userService, cfg.Upload, logg))
			r.Put("/", controllers.UserUpdate(userService, logg))
			r.Delete("/", controllers.UserDelete(userService, logg))
			r.Get("/", controllers.UserGet(userService, logg))
			r.Patch("/update-password", controllers.UserUpdatePassword(userService, logg))
		})
	})

	r.Route("/company", func(r chi.Router) {
		r.Use(authenticated)

		r.Group(func(r chi.Router) {
			r.Use(hrOnly)
			r.Post("/", controllers.CompanyAdd(companyService, logg))
			r.Patch("/company-photo/{companyId}", controllers.CompanyPhoto(companyService, cfg.Upload, logg))
			r.Put("/{companyId}", controllers.CompanyUpdate(companyService, logg))
			r.Delete("/{companyId}", controllers.CompanyDelete(companyService, logg))
			r.Get("/get-company/{companyId}", controllers.CompanyGet(companyService, logg))
			r.Get("/{companyId}/job/{jobId}/job-applications", controllers.CompanyJobApplications(companyService, logg))
			r.Get("/{companyId}/jobs-applications", controllers.CompanyApplicationsByDay(companyService, logg))

			r.Post("/{companyId}/job/", controllers.JobAdd(jobService, logg))
			r.Put("/{companyId}/job/{jobId}", controllers.JobUpdate(jobService, logg))
			r.Delete("/{companyId}/job/{jobId}", controllers.JobDelete(jobService, logg))
		})

		r.With(anyRole).Get("/search-by-name", controllers.CompanySearchByName(companyService, logg))
		r.With(applicantOnly).Post("/{companyId}/job/{jobId}/application",
			controllers.JobApply(jobService, cfg.Upload, logg))
	})

	r.Route("/job", func(r chi.Router) {
		r.Use(authenticated, anyRole)
		r.Get("/all-jobs", controllers.JobAll(jobService, logg))
		r.Get("/company-jobs", controllers.JobsForCompany(jobService, logg))
		r.Get("/filtered-jobs", controllers.JobsFiltered(jobService, logg))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteNotFoundPage(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteNotFoundPage(w)
	})

	return r
}
