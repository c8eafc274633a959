package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/fekuna/omnipos-storefront-service/config"
	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	catRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/category/repository"
	couponRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/coupon/repository"
	prodRepoPkg "github.com/fekuna/omnipos-storefront-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-storefront-service/internal/product/usecase"
	"github.com/fekuna/omnipos-storefront-service/migrations"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-storefront-service/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "seed/catalog.yaml", "YAML catalog document to import")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadEnv()
	if err != nil {
		panic(err)
	}

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	doc, err := catalog.LoadFile(*file)
	if err != nil {
		appLogger.Fatal("Could not read catalog file", zap.String("file", *file), zap.Error(err))
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, db, migrations.FS); err != nil {
		appLogger.Fatal("Could not apply migrations", zap.Error(err))
	}

	// Redis is optional here; without it cached listings simply expire.
	var redisClient *cache.RedisClient
	if rc, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		appLogger.Warn("Redis unavailable, product cache not invalidated", zap.Error(err))
	} else {
		redisClient = rc
		defer redisClient.Close()
	}

	prodRepo := prodRepoPkg.NewPGRepository(db)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, nil, appLogger)

	importer := catalog.NewImporter(
		catRepoPkg.NewPGRepository(db),
		prodRepo,
		couponRepoPkg.NewPGRepository(db),
		prodUC,
		appLogger,
	)

	res, err := importer.Import(ctx, doc)
	if err != nil {
		appLogger.Error("Catalog import failed", zap.Error(err))
		os.Exit(1)
	}
	if err := prodUC.Wait(ctx); err != nil {
		appLogger.Warn("Cache refresh did not finish", zap.Error(err))
	}
	appLogger.Info("Seed complete",
		zap.String("file", *file),
		zap.Int("categories", res.Categories),
		zap.Int("products", res.Products),
		zap.Int("coupons", res.Coupons))
}
