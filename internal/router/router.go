package router

import (
	"net/http"
	"time"

	_ "adoptme-web/internal/docs"
	"adoptme-web/internal/domain/account"
	"adoptme-web/internal/domain/animals"
	"adoptme-web/internal/domain/metrics"
	"adoptme-web/internal/middleware"
	"adoptme-web/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Backend es todo lo que el front necesita del API; backend.Client lo implementa.
type Backend interface {
	account.Backend
	animals.Backend
	metrics.Backend
}

type Options struct {
	Backend Backend
	Logger  logger.Logger // puede ser nil

	RecommendationsN int
	SessionTTL       time.Duration
	CookieSecure     bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.SessionCookie(middleware.SessionCookieOptions{
		Secure: opts.CookieSecure,
		TTL:    opts.SessionTTL,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	animalsSvc := animals.NewService(opts.Backend, log.With(map[string]any{"module": "animals"}), opts.RecommendationsN)
	metricsSvc := metrics.NewService(opts.Backend, log.With(map[string]any{"module": "metrics"}))
	accountSvc := account.NewService(opts.Backend, animalsSvc.Forget)

	account.RegisterPublicRoutes(r, accountSvc, log)

	// Todo lo demás requiere sesión
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.AuthGate(opts.Backend, log))

		account.RegisterProtectedRoutes(pr, accountSvc)
		animals.RegisterRoutes(pr, animalsSvc)
		metrics.RegisterRoutes(pr, metricsSvc)
	})

	return r
}
