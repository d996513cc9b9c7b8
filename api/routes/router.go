package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/fuelstation-backend/api/controllers"
	"github.com/angelmondragon/fuelstation-backend/api/middleware"
	"github.com/angelmondragon/fuelstation-backend/internal/auth"
	"github.com/angelmondragon/fuelstation-backend/internal/dashboard"
	"github.com/angelmondragon/fuelstation-backend/internal/fuels"
	"github.com/angelmondragon/fuelstation-backend/internal/reports"
	"github.com/angelmondragon/fuelstation-backend/internal/sales"
	"github.com/angelmondragon/fuelstation-backend/pkg/auth/session"
	"github.com/angelmondragon/fuelstation-backend/pkg/config"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
	"github.com/angelmondragon/fuelstation-backend/pkg/metrics"
	pkgredis "github.com/angelmondragon/fuelstation-backend/pkg/redis"
)

type pinger interface {
	Ping(context.Context) error
}

// Dependencies is everything the HTTP surface needs. Redis backed fields are
// interfaces so a nil value simply disables that concern.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    pinger
	RedisPinger pinger
	Sessions    session.AccessSessionChecker
	RateLimiter middleware.RateLimitStore
	Idempotency pkgredis.IdempotencyStore
	Rollups     controllers.RollupReader
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics

	AuthService      auth.Service
	FuelService      fuels.Service
	SaleService      sales.Service
	ReportService    reports.Service
	DashboardService dashboard.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(cfg.App.AllowedOrigins()),
	)
	r.NotFound(controllers.NotFound(logg))
	r.MethodNotAllowed(controllers.MethodNotAllowed(logg))

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	requireAuth := middleware.Auth(cfg.JWT, deps.Sessions, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.With(requireAuth).Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(middleware.Idempotency(deps.Idempotency, cfg.Idempotency, logg))

		r.Get("/dashboard", controllers.DashboardSummary(deps.DashboardService, logg))

		r.Route("/fuels", func(r chi.Router) {
			r.Get("/", controllers.FuelList(deps.FuelService, logg))
			r.Get("/{fuelId}", controllers.FuelGet(deps.FuelService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.OperatorRoleAdmin))
				r.Post("/", controllers.FuelCreate(deps.FuelService, logg))
				r.Put("/{fuelId}", controllers.FuelUpdate(deps.FuelService, logg))
				r.Delete("/{fuelId}", controllers.FuelDelete(deps.FuelService, logg))
			})
		})

		r.Route("/sales", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.OperatorRoleAdmin, enums.OperatorRoleAttendant))
			r.Get("/", controllers.SaleList(deps.SaleService, logg))
			r.Post("/", controllers.SaleRecord(deps.SaleService, logg))
			r.Get("/quote", controllers.SaleQuote(deps.SaleService, logg))
			r.Get("/{saleId}", controllers.SaleGet(deps.SaleService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Post("/", controllers.ReportGenerate(deps.ReportService, logg))
			r.Get("/daily/{date}", controllers.ReportDaily(deps.ReportService, deps.Rollups, logg))
		})
	})

	return r
}
