package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/qs3c/commentblock/internal/api"
	"github.com/qs3c/commentblock/internal/api/handler"
	"github.com/qs3c/commentblock/internal/database"
	"github.com/qs3c/commentblock/internal/pkg/block"
	"github.com/qs3c/commentblock/internal/pkg/pubsub"
	"github.com/qs3c/commentblock/internal/pkg/ws"
	"github.com/qs3c/commentblock/internal/repository"
	"github.com/qs3c/commentblock/internal/service"
)

const (
	shutdownTimeout   = 10 * time.Second
	keepaliveInterval = 30 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	// 加载配置
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	log.Info().Str("host", cfg.Database.Host).Msg("Database connected")

	// 初始化 Redis（可选）
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb, err = database.NewRedis(&cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		log.Info().Str("host", cfg.Redis.Host).Msg("Redis connected")
	} else {
		log.Info().Msg("Redis not configured, live updates stay in-process")
	}

	renderer, err := block.NewRenderer(cfg.Block)
	if err != nil {
		return err
	}

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	nodeRepo := repository.NewNodeRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, cfg)
	nodeService := service.NewNodeService(nodeRepo)
	blockService := service.NewCommentBlockService(commentRepo, nodeRepo, userRepo, renderer, cfg)
	liveService := service.NewLiveBlockService(blockService, wsHub)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go wsHub.RunKeepalive(ctx, keepaliveInterval)

	var notifier service.BlockNotifier = liveService
	if rdb != nil {
		notifier = pubsub.NewPublisher(rdb, cfg.Redis.Channel)
		subscriber := pubsub.NewSubscriber(rdb, cfg.Redis.Channel)
		go func() {
			if err := liveService.Run(ctx, subscriber); err != nil {
				log.Error().Err(err).Msg("Block subscriber stopped")
			}
		}()
	}
	commentService := service.NewCommentService(commentRepo, nodeRepo, notifier, cfg)

	// 初始化 Handler
	router := api.NewRouter(
		handler.NewAuthHandler(authService),
		handler.NewNodeHandler(nodeService),
		handler.NewCommentHandler(commentService),
		handler.NewCommentBlockHandler(blockService),
		handler.NewProfileHandler(blockService),
		handler.NewWebSocketHandler(wsHub, authService),
		cfg,
	)

	engine, err := router.Setup()
	if err != nil {
		return fmt.Errorf("setup router: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}
