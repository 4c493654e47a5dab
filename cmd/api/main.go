package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/neocodenexus/vendorx-backend/api/routes"
	"github.com/neocodenexus/vendorx-backend/internal/auth"
	"github.com/neocodenexus/vendorx-backend/internal/details"
	"github.com/neocodenexus/vendorx-backend/internal/files"
	"github.com/neocodenexus/vendorx-backend/internal/followups"
	internalotp "github.com/neocodenexus/vendorx-backend/internal/otp"
	"github.com/neocodenexus/vendorx-backend/internal/roles"
	"github.com/neocodenexus/vendorx-backend/internal/users"
	"github.com/neocodenexus/vendorx-backend/internal/vendors"
	"github.com/neocodenexus/vendorx-backend/pkg/config"
	"github.com/neocodenexus/vendorx-backend/pkg/db"
	"github.com/neocodenexus/vendorx-backend/pkg/groq"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
	"github.com/neocodenexus/vendorx-backend/pkg/mail"
	"github.com/neocodenexus/vendorx-backend/pkg/otp"
	"github.com/neocodenexus/vendorx-backend/pkg/redis"
	"github.com/neocodenexus/vendorx-backend/pkg/storage/azure"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate {
		if err := dbClient.AutoMigrate(); err != nil {
			logg.Error(context.Background(), "failed to run schema migration", err)
			os.Exit(1)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, using in-memory OTP store and disabling rate limits")
	}

	var otpStore otp.Store
	if redisClient != nil {
		otpStore = otp.NewRedisStore(redisClient)
	} else {
		otpStore = otp.NewMemoryStore()
	}

	var mailer mail.Sender
	if smtpSender, err := mail.NewSMTPSender(cfg.SMTP, logg); err != nil {
		logg.Warn(context.Background(), "smtp not configured, OTP and mail endpoints disabled")
	} else {
		mailer = smtpSender
	}

	vendorsRepo := vendors.NewRepository(dbClient.DB())
	usersRepo := users.NewRepository(dbClient.DB())

	vendorsService, err := vendors.NewService(vendorsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendors service", err)
		os.Exit(1)
	}

	detailsService, err := details.NewService(details.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create details service", err)
		os.Exit(1)
	}

	followupsService, err := followups.NewService(followups.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create followups service", err)
		os.Exit(1)
	}

	var drafter followups.Drafter
	if groqClient, err := groq.NewClient(cfg.Groq, logg); err != nil {
		logg.Warn(context.Background(), "groq not configured, followup drafting disabled")
	} else {
		drafter, err = followups.NewDrafter(groqClient)
		if err != nil {
			logg.Error(context.Background(), "failed to create followup drafter", err)
			os.Exit(1)
		}
	}

	rolesService, err := roles.NewService(roles.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create roles service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(usersRepo, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	var otpService internalotp.Service
	if mailer != nil {
		otpService, err = internalotp.NewService(otpStore, mailer, vendorsRepo, cfg.OTP)
		if err != nil {
			logg.Error(context.Background(), "failed to create otp service", err)
			os.Exit(1)
		}
	}

	var filesService files.Service
	if azureClient, err := azure.NewClient(cfg.AzureBlob, logg); err != nil {
		logg.Warn(context.Background(), "azure blob storage not configured, file uploads disabled")
	} else {
		filesService, err = files.NewService(azureClient)
		if err != nil {
			logg.Error(context.Background(), "failed to create files service", err)
			os.Exit(1)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, usersRepo, routes.Services{
			Vendors:   vendorsService,
			Details:   detailsService,
			Followups: followupsService,
			Drafter:   drafter,
			Roles:     rolesService,
			Users:     usersService,
			Auth:      authService,
			OTP:       otpService,
			Files:     filesService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
