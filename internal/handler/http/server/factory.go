package server

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/Siroshun09/go-httplib"
	"github.com/Siroshun09/go-httplib/httplog"
	"github.com/Siroshun09/go-httplib/runner"
	"github.com/Siroshun09/logs"
	"github.com/Siroshun09/serrors"
	"github.com/Siroshun09/serrors/errorlogs"
	"github.com/famtree-app/auth-service/internal/config"
	"github.com/famtree-app/auth-service/internal/ratelimit"
	"github.com/famtree-app/auth-service/internal/repositories/database"
	"github.com/famtree-app/auth-service/internal/usecases"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
)

type HTTPServerFactory struct {
	cfg      config.HTTPServerConfig
	logger   logs.Logger
	database database.DB
	redis    redis.UniversalClient
}

func NewHTTPServerFactory(cfg config.HTTPServerConfig, logger *slog.Logger, database database.DB, redisClient redis.UniversalClient) HTTPServerFactory {
	return HTTPServerFactory{
		cfg: cfg,
		logger: errorlogs.NewLoggerWithOption(
			logs.NewLoggerWithSlog(slog.New(httplog.NewHTTPAttrHandler(logger.Handler()))),
			errorlogs.LoggerOption{
				StackTraceLogLevel:                  errorlogs.StackTraceLogLevelWarn,
				PrintStackTraceOnWarn:               cfg.Debug,
				PrintCurrentStackTraceIfNotAttached: true,
			},
		),
		database: database,
		redis:    redisClient,
	}
}

func (f HTTPServerFactory) NewHTTPServer() runner.HTTPServerRunner {
	r := chi.NewRouter()

	r.Use(f.newRecoverer)
	r.Use(f.newLoggerMiddleware)
	r.Use(f.newRecovererForAPIHandler)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			if _, ok := f.cfg.AllowedOrigins[origin]; ok {
				return true
			}

			if f.cfg.Debug {
				logs.Warnf(r.Context(), "Unknown origin: "+origin)
			}
			return false
		},
		AllowedOrigins:   slices.Collect(maps.Keys(f.cfg.AllowedOrigins)),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	f.registerRoutes(r)

	return runner.NewHTTPServerRunner(
		&http.Server{
			Addr:    ":" + f.cfg.Port,
			Handler: r,
		},
		func(ctx context.Context, err error) {
			logs.Error(ctx, err)
		},
		func(ctx context.Context, rvr any) {
			logs.Error(ctx, serrors.Errorf("%v", rvr))
		},
	)
}

func (f HTTPServerFactory) newRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				logs.Error(r.Context(), serrors.Errorf("%v", rvr))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (f HTTPServerFactory) newRecovererForAPIHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				httplib.RenderInternalServerError(r.Context(), w, serrors.Errorf("%v", rvr))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (f HTTPServerFactory) newLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = logs.WithContext(ctx, f.logger)

		requestLog := httplib.NewRequestLog(r, time.Now())
		ctx = httplib.WithRequestLog(ctx, requestLog)

		responseLog := httplib.ResponseLog{}
		ctx = httplib.WithResponseLogPtr(ctx, &responseLog)

		next.ServeHTTP(w, r.WithContext(ctx))

		latency := time.Now().Sub(requestLog.Timestamp)
		ctx = httplib.WithLatency(ctx, latency)

		switch {
		case responseLog.Error == nil:
			logs.Info(ctx, "http access handled")
		case responseLog.StatusCode < http.StatusInternalServerError:
			logs.Warn(ctx, responseLog.Error)
		default:
			logs.Error(ctx, responseLog.Error)
		}
	})
}

func (f HTTPServerFactory) registerRoutes(r chi.Router) {
	limiter := ratelimit.New(f.redis)
	usecaseFactory := usecases.NewUsecaseFactory(f.cfg.AuthConfig, f.database, limiter)

	auth := newAuthHandler(
		f.cfg.AuthConfig,
		f.cfg.RateLimitConfig,
		usecaseFactory.NewTokenRotationUsecase(),
		usecaseFactory.NewSessionTerminationUsecase(),
		usecaseFactory.NewRateLimitUsecase(),
		usecaseFactory.NewSecurityAuditUsecase(),
	)
	google := newGoogleAuthHandler(
		f.cfg.GoogleAuthConfig,
		f.cfg.AuthConfig,
		usecaseFactory.NewTokenIssuanceUsecase(),
		usecaseFactory.NewUserUsecase(),
		usecaseFactory.NewSecurityAuditUsecase(),
	)

	r.Post("/auth/google/login", google.LoginWithGoogle)
	r.Get("/auth/google/callback", google.CallbackFromGoogle)
	r.Post("/auth/token/refresh", auth.RefreshAccessToken)
	r.Post("/auth/logout", auth.Logout)
}
