package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noorulain276775/pizza-delivery-app/internal/adapters/cache"
	"github.com/noorulain276775/pizza-delivery-app/internal/adapters/events"
	httpadapter "github.com/noorulain276775/pizza-delivery-app/internal/adapters/http"
	"github.com/noorulain276775/pizza-delivery-app/internal/adapters/memory"
	"github.com/noorulain276775/pizza-delivery-app/internal/adapters/model"
	"github.com/noorulain276775/pizza-delivery-app/internal/adapters/postgres"
	"github.com/noorulain276775/pizza-delivery-app/internal/application"
	"github.com/noorulain276775/pizza-delivery-app/internal/ports"
)

// Runtime owns the wired service graph and its lifecycle.
type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	cleanupFn  func()
}

// NewRuntime wires configuration, storage, cache, events, the model client and
// the HTTP surface into a ready-to-run service.
func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("service", cfg.ServiceID),
	)
	slog.SetDefault(logger)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := postgres.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	repos := postgres.NewRepositories(db)

	cleanups := make([]func(), 0, 2)

	var limiter ports.RateLimiter
	if cfg.RedisURL != "" {
		redisClient, redisErr := cache.Connect(ctx, cfg.RedisURL)
		if redisErr != nil {
			return nil, fmt.Errorf("connect redis: %w", redisErr)
		}
		cleanups = append(cleanups, func() { _ = redisClient.Close() })
		limiter = cache.NewRedisRateLimiter(redisClient, cfg.ChatRateLimit, cfg.ChatRateWindow)
	} else {
		logger.Warn("redis not configured, using in-process rate limiter",
			slog.String("module", "bootstrap"))
		limiter = memory.NewRateLimiter(cfg.ChatRateLimit, cfg.ChatRateWindow)
	}

	var publisher ports.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, kafkaErr := events.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
			"order.created": "pizza.orders",
		})
		if kafkaErr != nil {
			return nil, fmt.Errorf("connect kafka: %w", kafkaErr)
		}
		cleanups = append(cleanups, func() { _ = kafkaPublisher.Close() })
		publisher = kafkaPublisher
	} else {
		logger.Warn("kafka not configured, order events will be logged only",
			slog.String("module", "bootstrap"))
		publisher = events.NewLoggingPublisher(logger)
	}

	strategy := application.NewResponseStrategy(cfg.GenerationTimeout, logger)
	if cfg.ModelURL != "" {
		client := model.NewClient(model.ClientConfig{
			BaseURL:      cfg.ModelURL,
			Timeout:      cfg.GenerationTimeout,
			MaxNewTokens: cfg.ModelMaxNewTokens,
			Temperature:  cfg.ModelTemperature,
		})
		strategy.StartLoading(ctx, model.NewLoader(client, cfg.ModelLoadTimeout))
	} else {
		logger.Warn("model not configured, chat runs in fallback mode",
			slog.String("module", "bootstrap"))
	}

	orderService := application.NewOrderService(application.OrderServiceDeps{
		Pizzas:    repos.Pizzas,
		Orders:    repos.Orders,
		Publisher: publisher,
		Ceiling:   cfg.OrderTotalCeiling,
		Logger:    logger,
	})
	chatService := application.NewChatService(application.ChatServiceDeps{
		Sessions: memory.NewSessionStore(),
		Limiter:  limiter,
		Strategy: strategy,
		Logger:   logger,
	})

	router := httpadapter.NewRouter(httpadapter.NewHandler(orderService, chatService))

	return &Runtime{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		cleanupFn: func() {
			for _, cleanup := range cleanups {
				cleanup()
			}
		},
	}, nil
}

// RunAPI serves HTTP until the process receives an interrupt, then shuts down
// gracefully and releases external connections.
func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer r.cleanupFn()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server listening",
			slog.String("module", "bootstrap"),
			slog.String("addr", r.httpServer.Addr))
		if err := r.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	r.logger.Info("http server stopped", slog.String("module", "bootstrap"))
	return nil
}
