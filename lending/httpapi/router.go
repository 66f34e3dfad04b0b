package httpapi

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending/lending/app"
)

// API holds the use cases behind the routes.
type API struct {
	handlers *app.Handlers
	validate *validator.Validate
	logger   *slog.Logger
	newID    func() string
}

type Option func(*API)

// WithIDGenerator replaces the UUIDv7 generator used for new books and borrowers.
func WithIDGenerator(newID func() string) Option {
	return func(a *API) {
		a.newID = newID
	}
}

// NewRouter builds the routes on top of handlers. The logger must not be nil.
func NewRouter(handlers *app.Handlers, logger *slog.Logger, opts ...Option) http.Handler {
	api := &API{
		handlers: handlers,
		validate: newValidator(),
		logger:   logger,
		newID:    newUUIDv7,
	}

	for _, opt := range opts {
		opt(api)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", api.health)

	r.Route("/books", func(r chi.Router) {
		r.Post("/", api.addBook)
		r.Get("/", api.listCatalog)
		r.Get("/availability-summary", api.availabilitySummary)
		r.Put("/{id}", api.updateBook)
		r.Delete("/{id}", api.removeBook)
		r.Get("/{id}/similar", api.similarBooks)
	})

	r.Route("/borrowers", func(r chi.Router) {
		r.Post("/", api.registerBorrower)
		r.Get("/overdue", api.overdueBorrowers)
		r.Put("/{id}/tier", api.changeMembershipTier)
		r.Get("/{id}/records", api.borrowerHistory)
	})

	r.Route("/borrows", func(r chi.Router) {
		r.Post("/", api.borrow)
		r.Post("/return", api.returnBook)
		r.Get("/active", api.activeBorrowRecords)
	})

	r.Route("/fine-policies", func(r chi.Router) {
		r.Get("/", api.finePolicies)
		r.Put("/{category}", api.setFinePolicy)
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/top-borrowed-books", api.topBorrowedBooks)
		r.Get("/borrower-activity", api.borrowerActivity)
	})

	return r
}

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) now() time.Time {
	return a.handlers.Now()
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.InfoContext(
				r.Context(),
				"http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func newUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}
