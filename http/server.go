package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/programme-lv/unsolved/httpjson"
	"github.com/programme-lv/unsolved/logger"
	"github.com/programme-lv/unsolved/unsolved/unsolvedhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestIDHeader = "X-Request-Id"

type Options struct {
	LogLevel    slog.Level
	Env         string
	Version     string
	CorsOrigins []string
}

type HttpServer struct {
	router *chi.Mux
}

func NewHttpServer(
	unsolvedHandler *unsolvedhttp.UnsolvedHttpHandler,
	gatherer prometheus.Gatherer,
	opts Options,
) *HttpServer {
	router := chi.NewRouter()

	reqLogger := httplog.NewLogger("unsolved", httplog.Options{
		LogLevel:         opts.LogLevel,
		JSON:             opts.Env == "prod" || opts.Env == "production",
		Concise:          true,
		RequestHeaders:   false,
		MessageFieldName: "message",
		Tags: map[string]string{
			"version": opts.Version,
			"env":     opts.Env,
		},
	})

	router.Use(requestID(reqLogger.Logger))
	router.Use(httplog.RequestLogger(reqLogger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CorsOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           3000,
	}))

	router.Use(func(next http.Handler) http.Handler {
		return gzhttp.GzipHandler(next)
	})

	server := &HttpServer{router: router}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpjson.WriteSuccessJson(w, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	unsolvedHandler.RegisterRoutes(router)

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

func (httpserver *HttpServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpserver.router.ServeHTTP(w, r)
}

// requestID tags every request with an id, reusing the caller's one when
// present, and stores a logger carrying it in the request context.
func requestID(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			ctx := logger.WithLogger(r.Context(), base)
			ctx = logger.WithRequestID(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
