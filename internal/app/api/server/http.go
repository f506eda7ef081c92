package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/internal/app/api/handlers"
	mw "github.com/salamene/horoscope-backend/internal/app/api/middleware"
	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/internal/app/service/analytics"
	"github.com/salamene/horoscope-backend/internal/app/service/compatibility"
	"github.com/salamene/horoscope-backend/internal/app/service/horoscope"
	"github.com/salamene/horoscope-backend/internal/app/service/payment"
	cfgpkg "github.com/salamene/horoscope-backend/pkg/config"
	"github.com/salamene/horoscope-backend/pkg/metrics"
)

func newEngine(cfg *cfgpkg.Config) *gin.Engine {
	if cfg.Env == cfgpkg.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(mw.TraceMiddleware())
	return r
}

func registerRoutes(
	r *gin.Engine,
	log *zap.SugaredLogger,
	cfg *cfgpkg.Config,
	accounts *account.Service,
	horoscopes *horoscope.Service,
	compat *compatibility.Service,
	payments *payment.Service,
	events *analytics.Service,
) {
	if cfg.MetricsAddr != "" {
		m := metrics.NewHTTP("horoscope")
		r.Use(m.Middleware())
		go m.Serve(cfg.MetricsAddr, log)
		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub)

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterAuthRoutes(apiV1, accounts, log)
	handlers.RegisterUserRoutes(apiV1, accounts, log)
	handlers.RegisterPredictionRoutes(apiV1, horoscopes, accounts, log)
	handlers.RegisterCompatibilityRoutes(apiV1, compat, accounts, log)
	handlers.RegisterPaymentRoutes(apiV1, payments, accounts, log)
	handlers.RegisterAnalyticsRoutes(apiV1, events, accounts, log)
}

// seedCatalog loads static reference data before the listener starts.
func seedCatalog(lc fx.Lifecycle, payments *payment.Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return payments.SeedPlans(ctx)
		},
	})
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(seedCatalog),
	fx.Invoke(runServer),
)
