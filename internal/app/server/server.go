package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"officetime/internal/domain/auth"
	"officetime/internal/domain/balance"
	"officetime/internal/domain/employee"
	"officetime/internal/domain/leave"
	"officetime/internal/domain/notifications"
	"officetime/internal/domain/reports"
	"officetime/internal/domain/settings"
	"officetime/internal/domain/timeentry"
	"officetime/internal/platform/config"
	"officetime/internal/platform/db"
	"officetime/internal/platform/email"
	"officetime/internal/platform/jobs"
	"officetime/internal/platform/metrics"
	"officetime/internal/transport/http/api"
	authhandler "officetime/internal/transport/http/handlers/auth"
	balancehandler "officetime/internal/transport/http/handlers/balance"
	employeehandler "officetime/internal/transport/http/handlers/employees"
	leavehandler "officetime/internal/transport/http/handlers/leave"
	notificationshandler "officetime/internal/transport/http/handlers/notifications"
	reportshandler "officetime/internal/transport/http/handlers/reports"
	settingshandler "officetime/internal/transport/http/handlers/settings"
	timeentryhandler "officetime/internal/transport/http/handlers/timeentry"
	"officetime/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	employeeStore := employee.NewStore(pool)
	settingsSvc := settings.NewService(pool)
	leaveSvc := leave.NewService(leave.NewStore(pool), employeeStore)
	timeentrySvc := timeentry.NewService(pool)
	balanceSvc := balance.NewService(balance.NewStore(pool), settingsSvc)
	notifySvc := notifications.New(notifications.NewStore(pool), email.New(cfg), cfg.EmailFrom)
	reportsSvc := reports.NewService(balanceSvc, employeeStore, cfg.ReportsDir)
	collector := metrics.New()

	jobsSvc := jobs.New(pool, cfg, settingsSvc, balanceSvc, employeeStore, notifySvc, collector)
	jobsSvc.Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(1 << 20))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.With(middleware.RequireRole(auth.RoleAdmin)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(pool, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore).RegisterRoutes(r)
		settingshandler.NewHandler(settingsSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, notifySvc).RegisterRoutes(r)
		timeentryhandler.NewHandler(timeentrySvc, employeeStore).RegisterRoutes(r)
		balancehandler.NewHandler(balanceSvc, employeeStore).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc, employeeStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc).RegisterRoutes(r)

		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/admin/jobs/carry-over-sweep", func(w http.ResponseWriter, req *http.Request) {
			user, _ := middleware.GetUser(req.Context())
			details, err := jobsSvc.RunNow(req.Context(), jobs.JobCarryOverSweep, user.TenantID, func(ctx context.Context) (any, error) {
				return jobsSvc.SweepCarryOver(ctx, user.TenantID, time.Now().UTC())
			})
			if err != nil {
				api.Fail(w, http.StatusInternalServerError, "job_failed", "carry-over sweep failed", middleware.GetRequestID(req.Context()))
				return
			}
			api.Success(w, details, middleware.GetRequestID(req.Context()))
		})
	})

	slog.Info("server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
