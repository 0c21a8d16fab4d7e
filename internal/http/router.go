package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	authhttp "github.com/MrJamesThe3rd/tally/internal/http/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/contact"
	"github.com/MrJamesThe3rd/tally/internal/http/export"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	"github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	mw "github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/http/permission"
	"github.com/MrJamesThe3rd/tally/internal/http/report"
	"github.com/MrJamesThe3rd/tally/internal/http/role"
	"github.com/MrJamesThe3rd/tally/internal/http/settings"
	"github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/http/user"
	"github.com/MrJamesThe3rd/tally/internal/observability"
	ledger "github.com/MrJamesThe3rd/tally/internal/transaction"
)

const requestsPerMinute = 300

type Options struct {
	Logger         *slog.Logger
	Tokens         mw.TokenParser
	Metrics        *observability.Metrics
	AllowedOrigins []string
	RequestTimeout time.Duration
	Production     bool
	// Health reports whether the backing store is reachable.
	Health func(ctx context.Context) error
}

type Handlers struct {
	Auth         *authhttp.Handler
	Users        *user.Handler
	Roles        *role.Handler
	Permissions  *permission.Handler
	Customers    *contact.Handler
	Vendors      *contact.Handler
	Transactions *transaction.Handler
	Import       *importcsv.Handler
	Export       *export.Handler
	Reports      *report.Handler
	Settings     *settings.Handler
}

func New(opts Options, v1 Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}

	router.Use(securityHeaders(opts.Production, opts.Logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", health(opts.Health))

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics.Handler())
	}

	authenticate := mw.Authenticate(opts.Tokens, opts.Logger)

	router.Route("/api/v1", func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(middleware.Timeout(opts.RequestTimeout))
		}

		r.Use(httprate.LimitByIP(requestsPerMinute, time.Minute))

		r.Route("/auth", func(r chi.Router) {
			v1.Auth.PublicRoutes(r)
			r.With(authenticate).Group(v1.Auth.Routes)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/users", v1.Users.Routes)
			r.Route("/roles", v1.Roles.Routes)
			r.Route("/permissions", v1.Permissions.Routes)

			r.Route("/customers", func(r chi.Router) {
				v1.Customers.Routes(r)
				r.Route("/{id}/transactions", v1.Transactions.CounterpartyRoutes(ledger.TypeCustomer))
			})

			r.Route("/vendors", func(r chi.Router) {
				v1.Vendors.Routes(r)
				r.Route("/{id}/transactions", v1.Transactions.CounterpartyRoutes(ledger.TypeVendor))
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Route("/import", v1.Import.Routes)
				r.Route("/export", v1.Export.Routes)
				v1.Transactions.Routes(r)
			})

			r.Route("/dashboard", v1.Reports.DashboardRoutes)
			r.Route("/reports", v1.Reports.ReportRoutes)
			r.Route("/settings", v1.Settings.Routes)
		})
	})

	return router
}

func securityHeaders(production bool, logger *slog.Logger) func(http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sm.Process(w, r); err != nil {
				logger.Warn("secure headers blocked request", "error", err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func health(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "database unreachable")
				return
			}
		}

		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
