package http

import (
	"net/http"

	"clinic-site-api/internal/delivery/http/handler"
	"clinic-site-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router              *mux.Router
	log                 *logrus.Logger
	siteHandler         *handler.SiteHandler
	availabilityHandler *handler.AvailabilityHandler
	bookingHandler      *handler.BookingHandler
	chatHandler         *handler.ChatHandler
	healthHandler       *handler.HealthHandler
	corsMiddleware      *middleware.CORSMiddleware
	rateLimiter         *middleware.RateLimiter
	metricsHandler      http.Handler
}

func NewRouter(
	log *logrus.Logger,
	siteHandler *handler.SiteHandler,
	availabilityHandler *handler.AvailabilityHandler,
	bookingHandler *handler.BookingHandler,
	chatHandler *handler.ChatHandler,
	healthHandler *handler.HealthHandler,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimiter *middleware.RateLimiter,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		log:                 log,
		siteHandler:         siteHandler,
		availabilityHandler: availabilityHandler,
		bookingHandler:      bookingHandler,
		chatHandler:         chatHandler,
		healthHandler:       healthHandler,
		corsMiddleware:      corsMiddleware,
		rateLimiter:         rateLimiter,
		metricsHandler:      metricsHandler,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)
	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// Site routes (public)
	api.HandleFunc("/sites", handler.MissingSlug)
	api.HandleFunc("/sites/", handler.MissingSlug)
	sites := api.PathPrefix("/sites/{slug}").Subrouter()
	sites.HandleFunc("", r.siteHandler.GetWebsite).Methods(http.MethodGet)
	sites.HandleFunc("/doctors/{doctorId}/slots", r.availabilityHandler.GetAvailableSlots).Methods(http.MethodGet)
	sites.HandleFunc("/chat/sessions/{id}", r.chatHandler.GetSession).Methods(http.MethodGet)

	// Writes are rate limited per client
	sites.Handle("/bookings", r.limited(r.bookingHandler.CreateBooking)).Methods(http.MethodPost)
	sites.Handle("/chat/sessions", r.limited(r.chatHandler.StartSession)).Methods(http.MethodPost)
	sites.Handle("/chat/sessions/{id}/messages", r.limited(r.chatHandler.SendMessage)).Methods(http.MethodPost)
	sites.Handle("/chat/sessions/{id}", r.limited(r.chatHandler.ResetSession)).Methods(http.MethodDelete)

	// Preflight requests only need the CORS headers
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Add CORS and request logging middleware
	r.router.Use(middleware.RequestLogger(r.log))
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) limited(h http.HandlerFunc) http.Handler {
	if r.rateLimiter == nil {
		return h
	}
	return r.rateLimiter.Limit(h)
}
