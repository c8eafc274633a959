package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/payment/square"
	"github.com/fekuna/omnipos-storefront-service/internal/payment/stripe"
	"github.com/fekuna/omnipos-storefront-service/internal/server"
	"github.com/fekuna/omnipos-storefront-service/migrations"
	"github.com/fekuna/omnipos-storefront-service/pkg/broker"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-storefront-service/pkg/httpx"
	"github.com/fekuna/omnipos-storefront-service/pkg/i18n"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/fekuna/omnipos-storefront-service/pkg/metrics"
	"github.com/fekuna/omnipos-storefront-service/pkg/search"

	accountH "github.com/fekuna/omnipos-storefront-service/internal/account/handler"
	accountRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/account/repository"
	accountUCPkg "github.com/fekuna/omnipos-storefront-service/internal/account/usecase"

	cartH "github.com/fekuna/omnipos-storefront-service/internal/cart/handler"
	cartRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/cart/repository"
	cartUCPkg "github.com/fekuna/omnipos-storefront-service/internal/cart/usecase"

	catalogH "github.com/fekuna/omnipos-storefront-service/internal/catalog/handler"

	catH "github.com/fekuna/omnipos-storefront-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-storefront-service/internal/category/usecase"

	checkoutH "github.com/fekuna/omnipos-storefront-service/internal/checkout/handler"
	checkoutUCPkg "github.com/fekuna/omnipos-storefront-service/internal/checkout/usecase"

	couponH "github.com/fekuna/omnipos-storefront-service/internal/coupon/handler"
	couponRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/coupon/repository"
	couponUCPkg "github.com/fekuna/omnipos-storefront-service/internal/coupon/usecase"

	invH "github.com/fekuna/omnipos-storefront-service/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-storefront-service/internal/inventory/usecase"

	orderH "github.com/fekuna/omnipos-storefront-service/internal/order/handler"
	orderRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/order/repository"
	orderUCPkg "github.com/fekuna/omnipos-storefront-service/internal/order/usecase"

	prodH "github.com/fekuna/omnipos-storefront-service/internal/product/handler"
	prodListenerPkg "github.com/fekuna/omnipos-storefront-service/internal/product/listener"
	prodRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-storefront-service/internal/product/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Configuration
	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		panic(err)
	}

	// 2. Logger
	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	// 2.5 Error titles
	translator, err := i18n.New()
	if err != nil {
		appLogger.Warn("Failed to load locales, error titles fall back to messages", zap.Error(err))
	} else {
		httpx.SetTranslator(translator)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, db, migrations.FS); err != nil {
			appLogger.Fatal("Could not apply migrations", zap.Error(err))
		}
	}

	// 4. Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Elasticsearch, optional
	var searchIndex prodUCPkg.SearchIndex
	if esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	}); err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, listings served from Postgres", zap.Error(err))
	} else {
		searchIndex = esClient
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Kafka, optional
	var events checkoutUCPkg.EventPublisher
	var consumer *broker.KafkaConsumer
	if len(cfg.Kafka.Brokers) > 0 {
		producer := broker.NewProducer(&broker.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		defer producer.Close()
		events = producer

		consumer = broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		appLogger.Info("Kafka configured", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	// 7. Payment providers, optional
	var stripeGateway checkoutUCPkg.StripeGateway
	if cfg.Stripe.SecretKey != "" {
		stripeGateway = stripe.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	} else {
		appLogger.Warn("STRIPE_SECRET_KEY not set, Stripe checkout disabled")
	}

	var squareGateway checkoutUCPkg.SquareGateway
	squareClient := square.NewClient(square.Config{
		AccessToken: cfg.Square.AccessToken,
		LocationID:  cfg.Square.LocationID,
		BaseURL:     cfg.Square.BaseURL,
		Timeout:     cfg.Square.Timeout,
	})
	if squareClient.Configured() {
		squareGateway = squareClient
	} else {
		appLogger.Warn("Square credentials not set, Square checkout disabled")
	}

	// 8. Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	couponRepo := couponRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	accountRepo := accountRepoPkg.NewPGRepository(db)
	cartStore := cartRepoPkg.NewRedisStore(redisClient, cfg.Store.CartTTL)

	// 9. UseCases
	recorder := metrics.NewRecorder()

	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, searchIndex, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, redisClient, prodUC, appLogger)
	couponUC := couponUCPkg.NewCouponUseCase(couponRepo, redisClient, appLogger)
	accountUC := accountUCPkg.NewAccountUseCase(accountRepo, cfg.Store.DefaultCountry, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(cartStore, prodUC, couponUC, cfg.Store, appLogger)
	checkoutUC := checkoutUCPkg.NewCheckoutUseCase(checkoutUCPkg.Deps{
		Carts:          cartUC,
		Orders:         orderUC,
		Inventory:      invUC,
		Coupons:        couponUC,
		Accounts:       accountUC,
		Events:         events,
		PublishTimeout: cfg.Kafka.PublishTimeout,
		Stripe:         stripeGateway,
		Square:         squareGateway,
		Metrics:        recorder,
		DefaultCountry: cfg.Store.DefaultCountry,
		Logger:         appLogger,
	})
	importer := catalog.NewImporter(catRepo, prodRepo, couponRepo, prodUC, appLogger)

	// 9.5 Listener
	if consumer != nil {
		go prodListenerPkg.NewCatalogListener(consumer, prodUC, appLogger).Start(ctx)
	}

	// 10. Health
	watcher := server.NewHealthWatcher(appLogger)
	watcher.AddCheck("postgres", db.PingContext)
	watcher.AddCheck("redis", redisClient.Ping)
	go watcher.Run(ctx)

	// 11. HTTP
	router := server.NewRouter(server.RouterConfig{
		Handlers: server.Handlers{
			Category:  catH.NewCategoryHandler(catUC, appLogger),
			Product:   prodH.NewProductHandler(prodUC, appLogger),
			Inventory: invH.NewInventoryHandler(invUC, appLogger),
			Coupon:    couponH.NewCouponHandler(couponUC, appLogger),
			Cart:      cartH.NewCartHandler(cartUC, appLogger),
			Checkout:  checkoutH.NewCheckoutHandler(checkoutUC, cfg.Store.PublicURL, appLogger),
			Order:     orderH.NewOrderHandler(orderUC, appLogger),
			Account:   accountH.NewAccountHandler(accountUC, appLogger),
			Catalog:   catalogH.NewCatalogHandler(importer, appLogger),
		},
		Auth:           auth.NewMiddleware(auth.NewVerifier(cfg.JWT.SecretKey), accountUC, appLogger),
		Metrics:        recorder,
		Health:         watcher,
		RequestTimeout: cfg.Server.RequestTimeout,
		Logger:         appLogger,
	})

	httpServer := &http.Server{
		Addr:              listenAddr(cfg.Server.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 12. gRPC health
	grpcAddr := listenAddr(cfg.Server.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("addr", grpcAddr), zap.Error(err))
	}
	grpcServer := server.NewGRPCServer(watcher, appLogger)
	go func() {
		appLogger.Info("Starting gRPC server", zap.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	watcher.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", zap.Error(err))
	}
	if err := prodUC.Wait(shutdownCtx); err != nil {
		appLogger.Warn("background catalog sync did not finish", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func listenAddr(port string) string {
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
