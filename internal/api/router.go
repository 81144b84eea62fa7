package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/rgehrsitz/taxgo/internal/api/response"
)

// RouterOptions configure cross-cutting middleware
type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

func NewRouter(handler TaxHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.Health)

		r.Route("/calculate-tax", func(r chi.Router) {
			r.Post("/", handler.CalculateTax)
			r.Post("/{regime}", handler.CalculateRegime)
		})
		r.Post("/compare-regimes", handler.CompareRegimes)
		r.Get("/tax-slabs/{regime}", handler.TaxSlabs)
		r.Get("/tax-saving-suggestions", handler.Suggestions)
		r.Post("/tax-saving-suggestions", handler.Suggestions)
		r.Post("/break-even", handler.BreakEven)

		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("multipart/form-data"))
			r.Post("/upload", handler.Upload)
		})
		r.Post("/chatbot", handler.Chatbot)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}

// NewRequestLogger builds the slog logger used for request logs, in the ECS schema
func NewRequestLogger(w io.Writer, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "taxgo"),
		slog.String("version", Version),
		slog.String("env", env),
	)
}
