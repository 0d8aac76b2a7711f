package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bowlnow/crm/internal/auth"
	authhttp "github.com/bowlnow/crm/internal/http/auth"
	"github.com/bowlnow/crm/internal/http/boost"
	"github.com/bowlnow/crm/internal/http/client"
	"github.com/bowlnow/crm/internal/http/contact"
	"github.com/bowlnow/crm/internal/http/dashboard"
	"github.com/bowlnow/crm/internal/http/export"
	"github.com/bowlnow/crm/internal/http/invoice"
	"github.com/bowlnow/crm/internal/http/onboarding"
	"github.com/bowlnow/crm/internal/http/revenue"
	"github.com/bowlnow/crm/internal/http/stripebridge"
	"github.com/bowlnow/crm/internal/metrics"
)

// Options collects everything the router needs beyond the resource
// handlers.
type Options struct {
	AllowedOrigins []string
	AuthVerifier   auth.Verifier
	AuthDisabled   bool
	Metrics        *metrics.Metrics
}

func New(
	opts Options,
	authH *authhttp.Handler,
	clientsH *client.Handler,
	boostH *boost.Handler,
	revenueH *revenue.Handler,
	invoicesH *invoice.Handler,
	onboardingH *onboarding.Handler,
	contactsH *contact.Handler,
	exportH *export.Handler,
	dashboardH *dashboard.Handler,
	stripeH *stripebridge.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	if opts.Metrics != nil {
		router.Use(instrument(opts.Metrics))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		// Login authenticates by credentials and the webhook by its
		// signature; neither can sit behind the bearer-token guard.
		r.Route("/auth", authH.Routes)

		// Stripe routes split across the guard boundary, so the
		// handler is mounted route by route rather than as a group.
		r.Post("/stripe/webhook", stripeH.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(opts.AuthVerifier, opts.AuthDisabled))

			r.Post("/stripe/sync-invoices", stripeH.SyncInvoices)

			r.Route("/clients", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				clientsH.Routes(r)
			})

			r.Route("/boost-clients", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				boostH.Routes(r)
			})

			r.Route("/revenue", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				revenueH.Routes(r)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				invoicesH.Routes(r)
			})

			r.Route("/onboarding", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				onboardingH.Routes(r)
			})

			r.Route("/contacts", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				contactsH.Routes(r)
			})

			r.Route("/export", exportH.Routes)
			r.Route("/dashboard", dashboardH.Routes)
		})
	})

	return router
}

// instrument records request counts and latencies per route pattern.
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				route := chi.RouteContext(r.Context()).RoutePattern()
				status := ww.Status()

				m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
				m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())

				if status >= http.StatusInternalServerError {
					m.Errors.WithLabelValues("http").Inc()
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
