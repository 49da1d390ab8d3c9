package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slopengine/slopengine/internal/config"
	"github.com/slopengine/slopengine/internal/handler"
	"github.com/slopengine/slopengine/internal/llm"
	"github.com/slopengine/slopengine/internal/oauth"
	"github.com/slopengine/slopengine/internal/repository"
	"github.com/slopengine/slopengine/internal/service"
	"github.com/slopengine/slopengine/internal/utils"
	"github.com/slopengine/slopengine/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	infra  Infrastructure
	config *config.Config
	router *gin.Engine
	server *http.Server
}

func NewApp(infra Infrastructure, cfg *config.Config) *App {
	repos := repository.NewRepositories(infra.Postgres())

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry.Duration,
	)

	registry := oauth.NewRegistry(cfg.OAuth, cfg.Server.BaseURL)
	stateStore := service.NewOAuthStateService(infra.Redis(), cfg.OAuth.StateTTL.Duration)
	healthChecker := NewHealthChecker(infra)

	authService := service.NewAuthService(
		repos.User,
		jwtManager,
		cfg.Security.BCryptCost,
	)

	oauthService := service.NewOAuthService(
		registry,
		repos.User,
		jwtManager,
		stateStore,
		infra.Logger(),
	)

	var enhancer llm.PromptEnhancer = llm.Passthrough{}
	if cfg.OpenAI.APIKey != "" {
		enhancer = llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	videoService := service.NewVideoService(
		repos.Video,
		enhancer,
		cfg.Video.OutputDir,
		cfg.Video.MaxDuration,
		infra.Logger(),
	)

	authHandler := handler.NewAuthHandler(authService)
	oauthHandler := handler.NewOAuthHandler(oauthService, cfg.Frontend.URL)
	videoHandler := handler.NewVideoHandler(videoService)

	router := gin.Default()
	router.Use(otelgin.Middleware("slopengine"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, authHandler, oauthHandler, videoHandler, authService, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		router: router,
		server: srv,
	}
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	oauthHandler *handler.OAuthHandler,
	videoHandler *handler.VideoHandler,
	authService service.AuthService,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", handler.AuthMiddleware(authService), authHandler.GetMe)
		}

		oauthGroup := api.Group("/oauth")
		{
			oauthGroup.GET("/:provider", oauthHandler.Redirect)
			oauthGroup.GET("/:provider/callback", oauthHandler.Callback)
		}

		videos := api.Group("/videos", handler.AuthMiddleware(authService))
		{
			videos.POST("/generate", videoHandler.Generate)
			videos.GET("", videoHandler.List)
			videos.GET("/:video_id", videoHandler.Download)
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
