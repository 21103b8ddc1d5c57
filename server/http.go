package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"petawards/config"
	"petawards/constant"
	"petawards/dto"
	apiHandler "petawards/handler"
	"petawards/pkg/rabbitmq"
	"petawards/repository"
	"petawards/service"
	"petawards/storage"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Events are best effort; the HTTP surface comes up without a broker.
	var events rabbitmq.Publisher
	conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewRabbitMQConn")
	} else {
		events = rabbitmq.NewPublisher(conn, cfg.Queue)
	}

	store := storage.NewMinioStore(cfg.Storage, cfg.MinIOBucket, cfg.App.PublicStorageURL)
	if err := storage.EnsureBucket(ctx, cfg.Storage, cfg.MinIOBucket); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("EnsureBucket")
	}

	repo := repository.NewRepo(cfg.DB)
	listingCache := service.NewSlotCache[[]dto.SubmissionEntry](cfg.Cache.ListingTTL)
	catalogService := service.NewCatalogService(store, listingCache, events, cfg.Server.Workers)
	favoriteService := service.NewFavoriteService(store)
	voteService := service.NewVoteService(repo, events)

	r := gin.Default()
	r.Use(requestLogger(ctx))
	addHealth(r)

	h := apiHandler.New(catalogService, favoriteService, voteService, cfg.Upload.VideoMaxBytes, cfg.Upload.JSONMaxBytes)
	h.Register(r)

	handler := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("start http server")
		if err := handler.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	if err := handler.Shutdown(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

// requestLogger carries the base logger into each request context.
func requestLogger(base context.Context) gin.HandlerFunc {
	logger := zerolog.Ctx(base)
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()
	}
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Log to standard output
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
