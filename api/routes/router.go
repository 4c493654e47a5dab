package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neocodenexus/vendorx-backend/api/controllers"
	"github.com/neocodenexus/vendorx-backend/api/middleware"
	"github.com/neocodenexus/vendorx-backend/internal/auth"
	"github.com/neocodenexus/vendorx-backend/internal/details"
	"github.com/neocodenexus/vendorx-backend/internal/files"
	"github.com/neocodenexus/vendorx-backend/internal/followups"
	"github.com/neocodenexus/vendorx-backend/internal/otp"
	"github.com/neocodenexus/vendorx-backend/internal/roles"
	"github.com/neocodenexus/vendorx-backend/internal/users"
	"github.com/neocodenexus/vendorx-backend/internal/vendors"
	"github.com/neocodenexus/vendorx-backend/pkg/config"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
	"github.com/neocodenexus/vendorx-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Vendors   vendors.Service
	Details   details.Service
	Followups followups.Service
	Drafter   followups.Drafter
	Roles     roles.Service
	Users     users.Service
	Auth      auth.Service
	OTP       otp.Service
	Files     files.Service
}

// NewRouter wires middleware and the route table. The token endpoint is rate
// limited only when redis is configured; user reads and writes sit behind the
// bearer middleware plus the active-account gate.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	userSource middleware.UserSource,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		if redisClient != nil {
			r.Get("/ready", controllers.HealthReady(logg, dbP, redisClient))
		} else {
			r.Get("/ready", controllers.HealthReady(logg, dbP))
		}
	})

	tokenPolicy := middleware.NewAuthRateLimitPolicy(
		"token",
		cfg.AuthRateLimit.TokenWindow,
		cfg.AuthRateLimit.TokenIPLimit,
		cfg.AuthRateLimit.TokenUsernameLimit,
	)
	r.Route("/auth", func(r chi.Router) {
		if redisClient != nil {
			r.With(middleware.AuthRateLimit(tokenPolicy, redisClient, logg)).Post("/token", controllers.AuthToken(svcs.Auth, logg))
		} else {
			r.Post("/token", controllers.AuthToken(svcs.Auth, logg))
		}
	})

	r.Route("/vendors", func(r chi.Router) {
		r.Post("/", controllers.VendorCreate(svcs.Vendors, logg))
		r.Get("/", controllers.VendorList(svcs.Vendors, logg))
		r.Get("/comprehensive", controllers.VendorListComprehensive(svcs.Vendors, logg))
		r.Get("/{id}", controllers.VendorGet(svcs.Vendors, logg))
		r.Put("/{id}", controllers.VendorUpdate(svcs.Vendors, logg))
		r.Delete("/{id}", controllers.VendorDelete(svcs.Vendors, logg))
	})

	r.Route("/business-details", func(r chi.Router) {
		r.Post("/", controllers.BusinessDetailCreate(svcs.Details, logg))
		r.Get("/", controllers.BusinessDetailList(svcs.Details, logg))
		r.Get("/{id}", controllers.BusinessDetailGet(svcs.Details, logg))
		r.Put("/{id}", controllers.BusinessDetailUpdate(svcs.Details, logg))
		r.Delete("/{id}", controllers.BusinessDetailDelete(svcs.Details, logg))
	})
	r.Route("/contact-details", func(r chi.Router) {
		r.Post("/", controllers.ContactDetailCreate(svcs.Details, logg))
		r.Get("/", controllers.ContactDetailList(svcs.Details, logg))
		r.Get("/{id}", controllers.ContactDetailGet(svcs.Details, logg))
		r.Put("/{id}", controllers.ContactDetailUpdate(svcs.Details, logg))
		r.Delete("/{id}", controllers.ContactDetailDelete(svcs.Details, logg))
	})
	r.Route("/banking-details", func(r chi.Router) {
		r.Post("/", controllers.BankingDetailCreate(svcs.Details, logg))
		r.Get("/", controllers.BankingDetailList(svcs.Details, logg))
		r.Get("/{id}", controllers.BankingDetailGet(svcs.Details, logg))
		r.Put("/{id}", controllers.BankingDetailUpdate(svcs.Details, logg))
		r.Delete("/{id}", controllers.BankingDetailDelete(svcs.Details, logg))
	})
	r.Route("/compliance-details", func(r chi.Router) {
		r.Post("/", controllers.ComplianceDetailCreate(svcs.Details, logg))
		r.Get("/", controllers.ComplianceDetailList(svcs.Details, logg))
		r.Get("/{id}", controllers.ComplianceDetailGet(svcs.Details, logg))
		r.Put("/{id}", controllers.ComplianceDetailUpdate(svcs.Details, logg))
		r.Delete("/{id}", controllers.ComplianceDetailDelete(svcs.Details, logg))
	})

	r.Route("/followup-records", func(r chi.Router) {
		r.Post("/", controllers.FollowupRecordCreate(svcs.Followups, logg))
		r.Get("/", controllers.FollowupRecordList(svcs.Followups, logg))
		r.Get("/{id}", controllers.FollowupRecordGet(svcs.Followups, logg))
		r.Put("/{id}", controllers.FollowupRecordUpdate(svcs.Followups, logg))
		r.Delete("/{id}", controllers.FollowupRecordDelete(svcs.Followups, logg))
	})
	r.Post("/followups/draft", controllers.FollowupDraft(svcs.Drafter, logg))

	r.Route("/roles", func(r chi.Router) {
		r.Post("/", controllers.RoleCreate(svcs.Roles, logg))
		r.Get("/", controllers.RoleList(svcs.Roles, logg))
		r.Get("/{id}", controllers.RoleGet(svcs.Roles, logg))
		r.Put("/{id}", controllers.RoleUpdate(svcs.Roles, logg))
		r.Delete("/{id}", controllers.RoleDelete(svcs.Roles, logg))
	})

	r.Route("/users", func(r chi.Router) {
		// Account creation is open so the first admin can be provisioned.
		r.Post("/", controllers.UserCreate(svcs.Users, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, userSource, logg))
			r.Use(middleware.RequireActiveUser(logg))
			r.Get("/", controllers.UserList(svcs.Users, logg))
			r.Get("/{id}", controllers.UserGet(svcs.Users, logg))
			r.Put("/{id}", controllers.UserUpdate(svcs.Users, logg))
			r.Delete("/{id}", controllers.UserDelete(svcs.Users, logg))
		})
	})

	r.Route("/otp", func(r chi.Router) {
		r.Post("/", controllers.OTPIssue(svcs.OTP, logg))
		r.Post("/verify", controllers.OTPVerify(svcs.OTP, logg))
		r.Post("/send-mail", controllers.OTPSendMail(svcs.OTP, logg))
		r.Post("/send-invitation", controllers.OTPSendInvitation(svcs.OTP, logg))
	})

	r.Post("/files/upload", controllers.FileUpload(svcs.Files, logg))

	return r
}
