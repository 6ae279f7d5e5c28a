package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	apicontract "github.com/tuanvumaihuynh/product-admin/api-contract"
	"github.com/tuanvumaihuynh/product-admin/internal/apperr"
	"github.com/tuanvumaihuynh/product-admin/internal/config"
	"github.com/tuanvumaihuynh/product-admin/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-admin/internal/http/metric"
	"github.com/tuanvumaihuynh/product-admin/internal/http/middleware"
	"github.com/tuanvumaihuynh/product-admin/internal/http/page"
	"github.com/tuanvumaihuynh/product-admin/internal/http/swagger"
	"github.com/tuanvumaihuynh/product-admin/internal/service"
	"github.com/tuanvumaihuynh/product-admin/internal/shopify"
	"github.com/tuanvumaihuynh/product-admin/internal/storage/db"
	"github.com/tuanvumaihuynh/product-admin/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

const (
	productsPagePath = "/app/products"
	healthPath       = "/healthz"
)

// Service represents the HTTP service.
type Service struct {
	cfg      config.HTTP
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metric.Metrics
	renderer *page.Renderer

	validateRequest func(http.Handler) http.Handler

	session        shopify.Session
	productSvc     service.ProductService
	healthCheckers []db.HealthChecker
	validator      validator.Validator
}

type CleanupFunc func(ctx context.Context) error

// New creates the HTTP service. Requests without a shop session run with
// session; healthCheckers back the /healthz endpoint.
func New(
	cfg config.HTTP,
	log *slog.Logger,
	productSvc service.ProductService,
	session shopify.Session,
	healthCheckers ...db.HealthChecker,
) (*Service, error) {
	renderer, err := page.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("create page renderer: %w", err)
	}

	contract, err := openapi3.NewLoader().LoadFromData(apicontract.GetSpecBytes())
	if err != nil {
		return nil, fmt.Errorf("load api contract: %w", err)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	s := &Service{
		cfg:            cfg,
		logger:         log.With(slog.String("service", "http")),
		renderer:       renderer,
		session:        session,
		productSvc:     productSvc,
		healthCheckers: healthCheckers,
		validator:      v,
	}

	s.validateRequest, err = middleware.OpenAPIValidator(contract, s.handleRequestError)
	if err != nil {
		return nil, fmt.Errorf("create request validator: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s.registry = registry
	s.metrics = metric.New(registry)

	return s, nil
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Router())
}

// Router builds the full handler tree of the service.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return r
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		s.logger.InfoContext(ctx, "http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Session(s.session),
		middleware.Cors(s.cfg.AllowedOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	pages := newProductPageHandler(s.productSvc, s.renderer, s.validator)
	api := newProductAPIHandler(s.productSvc)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, productsPagePath, http.StatusFound)
	})
	r.Get(productsPagePath, s.page(pages.Show))
	r.Post(productsPagePath, s.page(pages.Submit))

	r.Group(func(r chi.Router) {
		r.Use(s.validateRequest)
		r.Get("/api/products", s.api(api.ListProducts))
		r.Post("/api/products/actions", s.api(api.SubmitProductAction))
	})

	r.Get(healthPath, s.handleHealth)
	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Service) page(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.handlePageError(w, r, err)
		}
	}
}

func (s *Service) api(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.handleResponseError(w, r, err)
		}
	}
}

func (s *Service) handleRequestError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(apperr.ValidationErr.WrapParent(err))

	s.logger.WarnContext(r.Context(), "http request error", slog.Any("error", err))
	s.respondJSON(w, r, res.StatusCode, res)
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)
	s.logResponseError(r, res, err)
	s.respondJSON(w, r, res.StatusCode, res)
}

func (s *Service) handlePageError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)
	s.logResponseError(r, res, err)

	if err := s.renderer.Error(w, page.ErrorData{
		StatusCode: res.StatusCode,
		Code:       res.Code,
		Message:    res.Message,
	}); err != nil {
		s.logger.ErrorContext(r.Context(), "error rendering error page", slog.Any("error", err))
		http.Error(w, res.Message, res.StatusCode)
	}
}

func (s *Service) logResponseError(r *http.Request, res apierr.ErrorResponse, err error) {
	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))
}

func (s *Service) respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding response", slog.Any("error", err))
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	for _, hc := range s.healthCheckers {
		if ok, err := hc.IsHealthy(r.Context()); !ok {
			s.logger.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
			s.respondJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}

	s.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
